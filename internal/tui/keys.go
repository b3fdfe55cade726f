package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gdamore/tcell/v2"

	"github.com/chazuruo/hui/internal/picker"
)

// keyMap is the picker keymap shared by the help line and the bubbletea
// translation. The tview and basic backends use the same bindings.
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Home      key.Binding
	End       key.Binding
	Backspace key.Binding
	Clear     key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑/ctrl+p", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓/ctrl+n", "down")),
		PageUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Home:      key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
		End:       key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last")),
		Backspace: key.NewBinding(key.WithKeys("backspace", "ctrl+h"), key.WithHelp("⌫", "delete")),
		Clear:     key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "clear")),
		Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "copy")),
		Cancel:    key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Up, k.Down, k.Clear, k.Cancel}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Home, k.End, k.Backspace, k.Clear},
		{k.Confirm, k.Cancel},
	}
}

// teaEvents translates a key message into controller events. Pasted text
// arrives as a single message and yields one event per rune.
func (k keyMap) teaEvents(msg tea.KeyMsg) []picker.Event {
	bindings := []struct {
		binding key.Binding
		kind    picker.EventKind
	}{
		{k.Up, picker.EventUp},
		{k.Down, picker.EventDown},
		{k.PageUp, picker.EventPageUp},
		{k.PageDown, picker.EventPageDown},
		{k.Home, picker.EventHome},
		{k.End, picker.EventEnd},
		{k.Backspace, picker.EventBackspace},
		{k.Clear, picker.EventClear},
		{k.Confirm, picker.EventConfirm},
		{k.Cancel, picker.EventCancel},
	}
	for _, b := range bindings {
		if key.Matches(msg, b.binding) {
			return []picker.Event{picker.Key(b.kind)}
		}
	}

	switch msg.Type {
	case tea.KeyRunes:
		events := make([]picker.Event, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			events = append(events, picker.Char(r))
		}
		return events
	case tea.KeySpace:
		return []picker.Event{picker.Char(' ')}
	}
	return nil
}

// tcellEvent translates a tcell key event for the tview backend.
func tcellEvent(ev *tcell.EventKey) picker.Event {
	switch ev.Key() {
	case tcell.KeyRune:
		return picker.Char(ev.Rune())
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return picker.Key(picker.EventBackspace)
	case tcell.KeyUp, tcell.KeyCtrlP:
		return picker.Key(picker.EventUp)
	case tcell.KeyDown, tcell.KeyCtrlN:
		return picker.Key(picker.EventDown)
	case tcell.KeyPgUp:
		return picker.Key(picker.EventPageUp)
	case tcell.KeyPgDn:
		return picker.Key(picker.EventPageDown)
	case tcell.KeyHome:
		return picker.Key(picker.EventHome)
	case tcell.KeyEnd:
		return picker.Key(picker.EventEnd)
	case tcell.KeyCtrlU:
		return picker.Key(picker.EventClear)
	case tcell.KeyEnter:
		return picker.Key(picker.EventConfirm)
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return picker.Key(picker.EventCancel)
	}
	return picker.Key(picker.EventNone)
}
