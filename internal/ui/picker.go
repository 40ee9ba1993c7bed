package ui

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"pathmark/internal/store"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

// bookmarkItem adapts store.Bookmark to list.Item.
type bookmarkItem struct {
	bookmark store.Bookmark
}

func (i bookmarkItem) Title() string       { return i.bookmark.Name }
func (i bookmarkItem) Description() string { return i.bookmark.Path }
func (i bookmarkItem) FilterValue() string { return i.bookmark.Name + " " + i.bookmark.Path }

var (
	chooseKey = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "choose"))
	copyKey   = key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy path"))
	cancelKey = key.NewBinding(key.WithKeys("esc", "q", "ctrl+c"), key.WithHelp("esc", "cancel"))
)

// Picker is a bubbletea model that lets the user choose one bookmark.
type Picker struct {
	list     list.Model
	styles   Styles
	chosen   *store.Bookmark
	quitting bool
}

// NewPicker builds a picker over bookmarks, in the order given. styles
// should be bound to the renderer of the output the picker is drawn on.
func NewPicker(bookmarks []store.Bookmark, styles Styles) Picker {
	items := make([]list.Item, 0, len(bookmarks))
	for _, b := range bookmarks {
		items = append(items, bookmarkItem{bookmark: b})
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Saved paths"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = styles.Name.Padding(0, 1)
	// Quitting is handled here so that it never leaves a stale selection.
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{chooseKey, copyKey}
	}

	return Picker{list: l, styles: styles}
}

// Init initializes the model.
func (m Picker) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		// While the filter input is active, keys belong to it.
		if m.list.FilterState() != list.Filtering {
			switch {
			case key.Matches(msg, chooseKey):
				if item, ok := m.list.SelectedItem().(bookmarkItem); ok {
					b := item.bookmark
					m.chosen = &b
				}
				m.quitting = true
				return m, tea.Quit
			case key.Matches(msg, copyKey):
				cmd := m.copySelected()
				return m, cmd
			case key.Matches(msg, cancelKey) && m.list.FilterState() == list.Unfiltered:
				m.quitting = true
				return m, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Picker) copySelected() tea.Cmd {
	item, ok := m.list.SelectedItem().(bookmarkItem)
	if !ok {
		return nil
	}
	if err := clipboardWriteAll(item.bookmark.Path); err != nil {
		return m.list.NewStatusMessage(m.styles.Error.Render("Failed to copy path"))
	}
	return m.list.NewStatusMessage(m.styles.Success.Render(fmt.Sprintf("Copied %s", item.bookmark.Path)))
}

// View renders the list.
func (m Picker) View() string {
	if m.quitting {
		return ""
	}
	return m.list.View()
}

// Chosen returns the bookmark selected with enter, if any.
func (m Picker) Chosen() (store.Bookmark, bool) {
	if m.chosen == nil {
		return store.Bookmark{}, false
	}
	return *m.chosen, true
}
