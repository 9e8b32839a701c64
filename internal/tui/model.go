// Package tui is the terminal front end: a Bubble Tea program that renders
// the swatch and both history lists and drives the controller from keys
// and the mouse.
package tui

import (
	"fmt"
	"strings"

	"github.com/amterp/swatch/internal/model"
	"github.com/amterp/swatch/internal/reorder"
	"github.com/amterp/swatch/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Model is the Bubble Tea model. Its swatch and list fields are only ever
// written from render messages, so the screen always shows what the
// controller last rendered.
type Model struct {
	controller *service.Controller
	bridge     *Bridge

	current    model.Color
	label      int
	labelColor model.Color
	lists      map[model.ListKind][]model.Entry
	visible    map[model.ListKind]bool

	focus       model.ListKind
	cursor      int
	dragging    mo.Option[model.Target]
	placeholder mo.Option[model.Target]
	status      string
	width       int
}

// NewModel creates the model. The bridge is registered with the controller
// once the program starts.
func NewModel(controller *service.Controller, bridge *Bridge) Model {
	return Model{
		controller: controller,
		bridge:     bridge,
		current:    model.White,
		labelColor: model.White.Contrast(),
		lists:      make(map[model.ListKind][]model.Entry),
		visible:    make(map[model.ListKind]bool),
		focus:      model.Undo,
	}
}

func (m Model) Init() tea.Cmd {
	controller, bridge := m.controller, m.bridge
	return func() tea.Msg {
		controller.AddView(bridge)
		return nil
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SwatchMsg:
		m.current, m.label, m.labelColor = msg.Current, msg.Label, msg.LabelColor
	case ListMsg:
		m.lists[msg.List] = msg.Entries
		m.clampCursor()
	case VisibilityMsg:
		m.visible[msg.List] = msg.Visible
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case dragStartedMsg:
		if msg.err != nil {
			m.status = "Cannot move: " + msg.err.Error()
			break
		}
		m.dragging = mo.Some(msg.source)
		m.placeholder = mo.None[model.Target]()
		m.status = fmt.Sprintf("Moving %s[%d]. enter drops, x flicks, esc cancels", msg.source.List, msg.source.Index)
	case placeholderMsg:
		if msg.moved {
			m.placeholder = mo.Some(msg.target)
		}
	case dragEndedMsg:
		m.dragging = mo.None[model.Target]()
		m.placeholder = mo.None[model.Target]()
		m.status = describeOutcome(msg.outcome)
		m.clampCursor()
	case statusMsg:
		m.status = string(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func describeOutcome(out reorder.Outcome) string {
	switch out.Kind {
	case reorder.Committed, reorder.Flicked:
		return fmt.Sprintf("Moved %s to %s[%d]", out.Entry.Color.Hex(), out.To.List, out.To.Index)
	case reorder.Cancelled:
		return "Move cancelled"
	default:
		return ""
	}
}

func (m *Model) clampCursor() {
	limit := len(m.lists[m.focus])
	if m.dragging.IsAbsent() {
		limit--
	}
	m.cursor = lo.Clamp(m.cursor, 0, max(limit, 0))
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := m.controller
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ", "n":
		return m, func() tea.Msg { c.ApplyClicked(); return nil }
	case "u":
		return m, func() tea.Msg { c.UndoClicked(); return nil }
	case "r":
		return m, func() tea.Msg { c.RedoClicked(); return nil }
	case "R":
		return m, func() tea.Msg { c.ResetClicked(); return statusMsg("Reset") }
	case "1":
		return m.toggle(model.Undo)
	case "2":
		return m.toggle(model.Redo)
	case "tab":
		prev := m.focus
		m.focus = m.focus.Other()
		m.clampCursor()
		if m.dragging.IsPresent() {
			return m, tea.Sequence(
				func() tea.Msg { c.DragLeave(prev); return nil },
				m.placeAtCursor(),
			)
		}
		return m, nil
	case "left", "h":
		m.cursor--
		m.clampCursor()
		return m, m.placeIfDragging()
	case "right", "l":
		m.cursor++
		m.clampCursor()
		return m, m.placeIfDragging()
	case "enter":
		if m.dragging.IsPresent() {
			return m, m.dropAtCursor()
		}
		return m, m.pickUpAtCursor()
	case "x":
		if src, ok := m.dragging.Get(); ok {
			other := src.List.Other()
			target := reorder.At(other, len(m.lists[other]))
			return m, func() tea.Msg {
				out, _ := c.Drop(mo.Some(target))
				return dragEndedMsg{outcome: out}
			}
		}
	case "esc":
		if m.dragging.IsPresent() {
			return m, func() tea.Msg {
				out, _ := c.DragCancel()
				return dragEndedMsg{outcome: out}
			}
		}
	}
	return m, nil
}

func (m Model) toggle(kind model.ListKind) (tea.Model, tea.Cmd) {
	c := m.controller
	if !m.visible[kind] {
		m.focus = kind
		m.clampCursor()
	}
	return m, func() tea.Msg {
		if _, err := c.ToggleList(kind); err != nil {
			return statusMsg(err.Error())
		}
		return nil
	}
}

// Keyboard drags start as touch gestures, so the split point is not
// nudged and a cursor gap maps exactly onto an item half.
func (m Model) pickUpAtCursor() tea.Cmd {
	entries := m.lists[m.focus]
	if !m.visible[m.focus] || m.cursor >= len(entries) {
		return nil
	}
	c, source, id := m.controller, model.Target{List: m.focus, Index: m.cursor}, entries[m.cursor].ID
	return func() tea.Msg {
		return dragStartedMsg{source: source, err: c.TouchStart(source.List, source.Index, id)}
	}
}

func (m Model) placeIfDragging() tea.Cmd {
	if m.dragging.IsAbsent() {
		return nil
	}
	return m.placeAtCursor()
}

// placeAtCursor moves the placeholder into the gap before the cursor, or
// after the last entry when the cursor is past the end.
func (m Model) placeAtCursor() tea.Cmd {
	c, list, gap, n := m.controller, m.focus, m.cursor, len(m.lists[m.focus])
	return func() tea.Msg {
		target, moved := place(c, list, gap, n)
		return placeholderMsg{target: target, moved: moved}
	}
}

func place(c *service.Controller, list model.ListKind, gap, n int) (model.Target, bool) {
	if n == 0 {
		return c.DragOverEmpty(list)
	}
	rect := itemRect(list, min(gap, n-1))
	x := rect.Left
	if gap >= n {
		x = rect.Left + rect.Width - 0.5
	}
	return c.DragOver(x, rect)
}

func (m Model) dropAtCursor() tea.Cmd {
	c, list, gap, n := m.controller, m.focus, m.cursor, len(m.lists[m.focus])
	return func() tea.Msg {
		place(c, list, gap, n)
		out, _ := c.Drop(mo.Some(reorder.InList(list)))
		return dragEndedMsg{outcome: out}
	}
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	c := m.controller
	lengths := lo.MapValues(m.lists, func(entries []model.Entry, _ model.ListKind) int {
		return len(entries)
	})
	h, onRow := hitTest(msg.X, msg.Y, lengths, m.visible)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !onRow || h.index < 0 || m.dragging.IsPresent() {
			return m, nil
		}
		m.focus, m.cursor = h.list, h.index
		source, id := model.Target{List: h.list, Index: h.index}, m.lists[h.list][h.index].ID
		return m, func() tea.Msg {
			return dragStartedMsg{source: source, err: c.DragStart(source.List, source.Index, id)}
		}

	case tea.MouseActionMotion:
		if m.dragging.IsAbsent() || !onRow {
			return m, nil
		}
		x := float64(msg.X)
		if h.index < 0 {
			list := h.list
			return m, func() tea.Msg {
				target, moved := c.DragOverEmpty(list)
				return placeholderMsg{target: target, moved: moved}
			}
		}
		rect := itemRect(h.list, h.index)
		return m, func() tea.Msg {
			target, moved := c.DragOver(x, rect)
			return placeholderMsg{target: target, moved: moved}
		}

	case tea.MouseActionRelease:
		if m.dragging.IsAbsent() {
			return m, nil
		}
		target := mo.None[model.Target]()
		if onRow {
			target = mo.Some(reorder.InList(h.list))
		}
		return m, func() tea.Msg {
			out, _ := c.Drop(target)
			return dragEndedMsg{outcome: out}
		}
	}
	return m, nil
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	focusStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("swatch"))
	b.WriteString("\n")

	swatch := lipgloss.NewStyle().
		Background(lipgloss.Color(m.current.Hex())).
		Foreground(lipgloss.Color(m.labelColor.Hex())).
		Bold(true).
		Width(swatchWidth).
		Height(swatchHeight).
		Align(lipgloss.Center, lipgloss.Center).
		Render(fmt.Sprintf("%d", m.label))
	b.WriteString(swatch)
	b.WriteString("\n\n")

	for _, kind := range model.ListKinds {
		b.WriteString(m.renderRow(kind))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.fit(m.status)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.fit(helpText)))
	return b.String()
}

const helpText = "n new · u undo · r redo · R reset · 1/2 lists · tab/←/→ select · enter move · x flick · esc cancel · q quit"

// fit wraps s to the terminal width once it is known.
func (m Model) fit(s string) string {
	if m.width <= 0 {
		return s
	}
	return wrap.String(s, m.width)
}

func (m Model) renderRow(kind model.ListKind) string {
	label := fmt.Sprintf(" %-*s", rowLabelW-1, kind.String())
	if kind == m.focus {
		label = focusStyle.Render(fmt.Sprintf("›%-*s", rowLabelW-1, kind.String()))
	}
	if !m.visible[kind] {
		key := "1"
		if kind == model.Redo {
			key = "2"
		}
		return label + dimStyle.Render(fmt.Sprintf("hidden (%s to show)", key))
	}

	entries := m.lists[kind]
	if len(entries) == 0 && !m.placeholderAt(kind, 0) {
		return label + dimStyle.Render("empty")
	}

	var b strings.Builder
	b.WriteString(label)
	for i, entry := range entries {
		b.WriteString(m.gap(kind, i))
		b.WriteString(m.cell(kind, i, entry))
	}
	b.WriteString(m.gap(kind, len(entries)))
	return b.String()
}

func (m Model) placeholderAt(kind model.ListKind, index int) bool {
	p, ok := m.placeholder.Get()
	return ok && p.List == kind && p.Index == index
}

func (m Model) gap(kind model.ListKind, index int) string {
	if m.placeholderAt(kind, index) {
		return "│"
	}
	return " "
}

func (m Model) cell(kind model.ListKind, index int, entry model.Entry) string {
	style := lipgloss.NewStyle().Background(lipgloss.Color(entry.Color.Hex()))
	if src, ok := m.dragging.Get(); ok && src.List == kind && src.Index == index {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(entry.Color.Hex())).Render("░░")
	}
	if kind == m.focus && index == m.cursor && m.dragging.IsAbsent() {
		return style.Foreground(lipgloss.Color(entry.Color.Contrast().Hex())).Render("◆ ")
	}
	return style.Render("  ")
}
