package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pathmark/internal/logging"
	"pathmark/internal/ui"
)

func newPickCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Choose a saved path interactively",
		Long: `Opens an interactive list of saved paths. The chosen path is printed
on stdout and the list is drawn on stderr, so the command works inside
command substitution:

  cd "$(pathmark pick)"

Keys: / filter, enter choose, y copy path to clipboard, esc or q cancel.`,
		Args: cobra.NoArgs,
		RunE: a.runPick,
	}
}

func (a *app) runPick(cmd *cobra.Command, args []string) error {
	bookmarks, err := a.store.List()
	if err != nil {
		return err
	}
	if len(bookmarks) == 0 {
		a.errOut.Bookmarks(nil, false)
		return nil
	}

	final, err := a.runPicker(ui.NewPicker(bookmarks, a.errOut.Styles()))
	if err != nil {
		return err
	}

	chosen, ok := final.Chosen()
	log := logging.For(a.logger, logging.CategoryPicker)
	if !ok {
		log.Debug("nothing chosen")
		return nil
	}
	log.Debug("path chosen", zap.String("name", chosen.Name))
	a.out.Path(chosen.Path)
	return nil
}

// runPickerProgram runs m as a full-screen program drawn on stderr.
func (a *app) runPickerProgram(m ui.Picker) (ui.Picker, error) {
	final, err := tea.NewProgram(m, tea.WithOutput(a.stderr), tea.WithAltScreen()).Run()
	if err != nil {
		return m, fmt.Errorf("picker failed: %w", err)
	}
	p, ok := final.(ui.Picker)
	if !ok {
		return m, fmt.Errorf("picker returned unexpected model %T", final)
	}
	return p, nil
}
