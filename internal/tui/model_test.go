package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazuruo/hui/internal/history"
	"github.com/chazuruo/hui/internal/picker"
	"github.com/chazuruo/hui/internal/rank"
)

// newTestController ranks bash history lines, oldest first.
func newTestController(t *testing.T, lines ...string) *picker.Controller {
	t.Helper()
	var data []byte
	if len(lines) > 0 {
		data = []byte(strings.Join(lines, "\n") + "\n")
	}
	entries, err := history.ParseBytes(history.ShellBash, data)
	require.NoError(t, err)
	return picker.NewController(rank.Rank(entries), picker.WithHeight(5))
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return out, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

var sampleHistory = []string{"git status", "kubectl get pods", "git log", "ls -la"}

// TestNewModel verifies that the model starts on the controller's frame.
func TestNewModel(t *testing.T) {
	ctrl := newTestController(t, sampleHistory...)
	m := NewModel(ctrl, Options{})

	f := m.Frame()
	assert.Equal(t, 4, f.Total)
	assert.Equal(t, 4, f.Matches)
	assert.Equal(t, "", f.Query)
	assert.Equal(t, picker.Browsing, f.State)
	// Most recent first
	assert.Equal(t, []string{"ls -la", "git log", "kubectl get pods", "git status"}, f.Visible)
	assert.Contains(t, m.View(), "kubectl get pods")
	assert.Contains(t, m.View(), "4/4")
}

// TestModel_EmptyHistory verifies the empty state and that confirm is a no-op.
func TestModel_EmptyHistory(t *testing.T) {
	ctrl := newTestController(t)
	m := NewModel(ctrl, Options{ShowHelp: true})

	assert.Contains(t, m.View(), "No commands found in shell history.")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, isQuit(cmd))
	assert.Equal(t, picker.Browsing, ctrl.State())

	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, isQuit(cmd))
	assert.Equal(t, picker.Cancelled, ctrl.State())
}

// TestModel_FilterAndConfirm types a query and confirms the top match.
func TestModel_FilterAndConfirm(t *testing.T) {
	ctrl := newTestController(t, sampleHistory...)
	m := NewModel(ctrl, Options{})

	m, cmd := update(t, m, runes("git"))
	assert.False(t, isQuit(cmd))
	assert.Equal(t, "git", ctrl.Query())
	assert.Equal(t, []string{"git log", "git status"}, m.Frame().Visible)
	assert.Contains(t, m.View(), "2/4")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, ctrl.Cursor())

	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, isQuit(cmd))
	text, ok := ctrl.Selected()
	assert.True(t, ok)
	assert.Equal(t, "git status", text)
	assert.Empty(t, m.View())
}

// TestModel_NoMatches verifies the placeholder row for an empty result.
func TestModel_NoMatches(t *testing.T) {
	ctrl := newTestController(t, sampleHistory...)
	m := NewModel(ctrl, Options{})

	m, _ = update(t, m, runes("zzz"))
	assert.Equal(t, 0, m.Frame().Matches)
	assert.Contains(t, m.View(), "(no matches)")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlU})
	assert.Equal(t, "", ctrl.Query())
	assert.Equal(t, 4, m.Frame().Matches)
}

// TestModel_Backspace verifies that deleting a rune widens the result.
func TestModel_Backspace(t *testing.T) {
	ctrl := newTestController(t, sampleHistory...)
	m := NewModel(ctrl, Options{})

	m, _ = update(t, m, runes("git s"))
	assert.Equal(t, 1, m.Frame().Matches)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "git", ctrl.Query())
	assert.Equal(t, 2, m.Frame().Matches)
}

// TestModel_CtrlC verifies that ctrl+c cancels instead of killing the program.
func TestModel_CtrlC(t *testing.T) {
	ctrl := newTestController(t, sampleHistory...)
	m := NewModel(ctrl, Options{})

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, isQuit(cmd))
	_, ok := ctrl.Selected()
	assert.False(t, ok)
	assert.Equal(t, picker.Cancelled, ctrl.State())
}

// TestModel_WindowSize verifies that the list shrinks to fit the terminal.
func TestModel_WindowSize(t *testing.T) {
	tests := []struct {
		name       string
		opts       Options
		termHeight int
		want       int
	}{
		{"roomy terminal keeps configured height", Options{}, 40, 5},
		{"bare layout", Options{}, 4, 2},
		{"help and preview", Options{ShowHelp: true, ShowPreview: true}, 10, 2},
		{"tiny terminal", Options{ShowHelp: true, ShowPreview: true}, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := newTestController(t, sampleHistory...)
			m := NewModel(ctrl, tt.opts)

			m, cmd := update(t, m, tea.WindowSizeMsg{Width: 100, Height: tt.termHeight})
			assert.Nil(t, cmd)
			assert.Equal(t, tt.want, ctrl.Height())
			assert.Len(t, m.Frame().Visible, min(tt.want, 4))
		})
	}
}

// TestModel_Preview verifies the usage line under the highlighted command.
func TestModel_Preview(t *testing.T) {
	ctrl := newTestController(t, "make test", "make test", "make build")
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewModel(ctrl, Options{ShowPreview: true, Now: func() time.Time { return now }})

	cur := m.Frame().Current
	require.NotNil(t, cur)
	view := m.View()
	if cur.Occurrences == 2 {
		assert.Contains(t, view, "used 2 times")
	} else {
		assert.Contains(t, view, "used 1 time")
	}
	// Bash history carries no timestamps
	assert.Contains(t, view, "last -")
}

// TestModel_Help verifies that the help line follows the option.
func TestModel_Help(t *testing.T) {
	ctrl := newTestController(t, sampleHistory...)

	withHelp := NewModel(ctrl, Options{ShowHelp: true}).View()
	assert.Contains(t, withHelp, "copy")
	assert.Contains(t, withHelp, "quit")

	without := NewModel(ctrl, Options{}).View()
	assert.NotContains(t, without, "ctrl+u")
}
