package tui

import (
	"sync"

	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

// ProgramSender is the interface for sending messages to Bubble Tea.
// Matches *tea.Program's Send method.
type ProgramSender interface {
	Send(msg tea.Msg)
}

// Bridge is the terminal's service.View. It turns render calls into tea
// messages for the running program.
//
// Render calls arrive with the controller locked, so the controller must
// only be called from tea.Cmds, never from Update: Send blocks until the
// event loop receives the message.
type Bridge struct {
	mu      sync.RWMutex
	program ProgramSender
}

var _ service.View = (*Bridge)(nil)

// NewBridge creates a bridge with no program attached. Renders before
// Attach are dropped.
func NewBridge() *Bridge {
	return &Bridge{}
}

// Attach sets the program that receives messages.
func (b *Bridge) Attach(program ProgramSender) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.program = program
}

func (b *Bridge) send(msg tea.Msg) {
	b.mu.RLock()
	program := b.program
	b.mu.RUnlock()
	if program != nil {
		program.Send(msg)
	}
}

// RenderSwatch implements service.View.
func (b *Bridge) RenderSwatch(current model.Color, label int, labelColor model.Color) {
	b.send(SwatchMsg{Current: current, Label: label, LabelColor: labelColor})
}

// RenderList implements service.View.
func (b *Bridge) RenderList(kind model.ListKind, entries []model.Entry) {
	b.send(ListMsg{List: kind, Entries: entries})
}

// SetListVisibility implements service.View.
func (b *Bridge) SetListVisibility(kind model.ListKind, visible bool) {
	b.send(VisibilityMsg{List: kind, Visible: visible})
}
