package tui

import (
	"sync"
	"testing"

	"github.com/amterp/swatch/internal/id"
	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/reorder"
	"github.com/amterp/swatch/internal/service"
	"github.com/amterp/swatch/internal/store"
	"github.com/amterp/swatch/testutil"
	tea "github.com/charmbracelet/bubbletea"
)

// mockSender collects messages sent via Send for assertion.
type mockSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (s *mockSender) Send(msg tea.Msg) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msg)
}

func (s *mockSender) Messages() []tea.Msg {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]tea.Msg, len(s.msgs))
	copy(cp, s.msgs)
	return cp
}

func newTestController() *service.Controller {
	s := store.NewStackStore(id.Sequential("e"))
	return service.NewController(s, testutil.NewScriptedColors("#112233", "#445566", "#778899"), reorder.DefaultSettings())
}

func TestBridge_DropsBeforeAttach(t *testing.T) {
	b := NewBridge()
	b.RenderSwatch(model.White, 0, model.White.Contrast()) // Should not panic
}

func TestBridge_RenderMapping(t *testing.T) {
	sender := &mockSender{}
	b := NewBridge()
	b.Attach(sender)

	c := model.MustParseHex("#112233")
	b.RenderSwatch(c, 2, c.Contrast())
	b.RenderList(model.Redo, []model.Entry{{ID: "a", Color: c}})
	b.SetListVisibility(model.Undo, true)

	msgs := sender.Messages()
	if len(msgs) != 3 {
		t.Fatalf("got %d messages; want 3", len(msgs))
	}
	if m, ok := msgs[0].(SwatchMsg); !ok || m.Current != c || m.Label != 2 || m.LabelColor.Hex() != "#EEDDCC" {
		t.Errorf("msgs[0] = %#v; want SwatchMsg for #112233", msgs[0])
	}
	if m, ok := msgs[1].(ListMsg); !ok || m.List != model.Redo || len(m.Entries) != 1 {
		t.Errorf("msgs[1] = %#v; want ListMsg for redo", msgs[1])
	}
	if m, ok := msgs[2].(VisibilityMsg); !ok || m.List != model.Undo || !m.Visible {
		t.Errorf("msgs[2] = %#v; want VisibilityMsg undo=true", msgs[2])
	}
}

func TestBridge_AsControllerView(t *testing.T) {
	sender := &mockSender{}
	b := NewBridge()
	b.Attach(sender)
	controller := newTestController()

	controller.AddView(b)
	initial := len(sender.Messages())
	if initial != 5 {
		t.Fatalf("got %d messages on AddView; want 5 (swatch, 2 lists, 2 visibility)", initial)
	}

	controller.ApplyClicked()
	msgs := sender.Messages()[initial:]
	if len(msgs) != 3 {
		t.Fatalf("got %d messages after apply; want 3", len(msgs))
	}
	if m, ok := msgs[0].(SwatchMsg); !ok || m.Current.Hex() != "#112233" || m.Label != 1 {
		t.Errorf("msgs[0] = %#v; want SwatchMsg #112233/1", msgs[0])
	}
}
