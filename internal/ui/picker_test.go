package ui

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathmark/internal/store"
)

var pickerBookmarks = []store.Bookmark{
	{ID: 1, Name: "work", Path: "/home/u/work"},
	{ID: 2, Name: "docs", Path: "/home/u/docs"},
	{ID: 3, Name: "src", Path: "/home/u/src"},
}

var plainStyles = NewStyles(lipgloss.NewRenderer(io.Discard))

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send feeds msgs to m and returns the final model and the last command.
func send(t *testing.T, m Picker, msgs ...tea.Msg) (Picker, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	var model tea.Model = m
	for _, msg := range msgs {
		model, cmd = model.Update(msg)
	}
	p, ok := model.(Picker)
	require.True(t, ok, "Update must return a Picker")
	return p, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestPicker_ItemsKeepOrder(t *testing.T) {
	m := NewPicker(pickerBookmarks, plainStyles)

	items := m.list.Items()
	require.Len(t, items, 3)
	for i, item := range items {
		bi := item.(bookmarkItem)
		assert.Equal(t, pickerBookmarks[i].Name, bi.Title())
		assert.Equal(t, pickerBookmarks[i].Path, bi.Description())
		assert.Contains(t, bi.FilterValue(), pickerBookmarks[i].Path)
	}
}

func TestPicker_EnterChoosesHighlighted(t *testing.T) {
	m, cmd := send(t, NewPicker(pickerBookmarks, plainStyles),
		tea.WindowSizeMsg{Width: 80, Height: 24},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyEnter},
	)

	assert.True(t, isQuit(cmd))
	chosen, ok := m.Chosen()
	require.True(t, ok)
	assert.Equal(t, "docs", chosen.Name)
	assert.Equal(t, "/home/u/docs", chosen.Path)
	assert.Empty(t, m.View())
}

func TestPicker_Cancel(t *testing.T) {
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
		runes("q"),
	} {
		t.Run(key.String(), func(t *testing.T) {
			m, cmd := send(t, NewPicker(pickerBookmarks, plainStyles),
				tea.WindowSizeMsg{Width: 80, Height: 24},
				key,
			)

			assert.True(t, isQuit(cmd))
			_, ok := m.Chosen()
			assert.False(t, ok)
		})
	}
}

func TestPicker_EnterOnEmptyList(t *testing.T) {
	m, cmd := send(t, NewPicker(nil, plainStyles),
		tea.WindowSizeMsg{Width: 80, Height: 24},
		tea.KeyMsg{Type: tea.KeyEnter},
	)

	assert.True(t, isQuit(cmd))
	_, ok := m.Chosen()
	assert.False(t, ok)
}

func TestPicker_KeysGoToFilterWhileFiltering(t *testing.T) {
	m, _ := send(t, NewPicker(pickerBookmarks, plainStyles),
		tea.WindowSizeMsg{Width: 80, Height: 24},
		runes("/"),
	)
	require.Equal(t, list.Filtering, m.list.FilterState())

	m, _ = send(t, m, runes("q"))

	assert.False(t, m.quitting, "q typed into the filter must not quit")
	assert.Equal(t, list.Filtering, m.list.FilterState())
	assert.NotEmpty(t, m.View())
}

func TestPicker_CopyPath(t *testing.T) {
	orig := clipboardWriteAll
	t.Cleanup(func() { clipboardWriteAll = orig })

	var copied string
	clipboardWriteAll = func(s string) error {
		copied = s
		return nil
	}

	m, _ := send(t, NewPicker(pickerBookmarks, plainStyles),
		tea.WindowSizeMsg{Width: 80, Height: 24},
		runes("y"),
	)

	assert.Equal(t, "/home/u/work", copied)
	assert.False(t, m.quitting)
	_, ok := m.Chosen()
	assert.False(t, ok)
}

func TestPicker_CopyFailureKeepsRunning(t *testing.T) {
	orig := clipboardWriteAll
	t.Cleanup(func() { clipboardWriteAll = orig })
	clipboardWriteAll = func(string) error { return errors.New("no clipboard") }

	m, cmd := send(t, NewPicker(pickerBookmarks, plainStyles),
		tea.WindowSizeMsg{Width: 80, Height: 24},
		runes("y"),
	)

	assert.False(t, m.quitting)
	assert.NotNil(t, cmd, "a status message command is expected")
}

func TestPicker_UsesStylesOfItsOutput(t *testing.T) {
	tty := lipgloss.NewRenderer(io.Discard)
	tty.SetColorProfile(termenv.TrueColor)

	m, _ := send(t, NewPicker(pickerBookmarks, NewStyles(tty)),
		tea.WindowSizeMsg{Width: 80, Height: 24},
	)
	assert.Contains(t, m.View(), "\x1b[", "a color renderer should style the title")
}
