package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pathmark/internal/logging"
	"pathmark/internal/store"
)

func newSaveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "save [name]",
		Short: "Save the current directory under a name",
		Long: `Saves the current working directory. Without a name, the last
component of the directory is used (saving in /home/u/work saves "work").`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runSave,
	}
}

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <name>",
		Short: "Print the path saved under a name",
		Args:  cobra.ExactArgs(1),
		RunE:  a.runGet,
	}
}

func newListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved paths in the order they were saved",
		Args:    cobra.NoArgs,
		RunE:    a.runList,
	}
	cmd.Flags().BoolP("long", "l", false, "Show when each path was saved")
	return cmd
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <name>",
		Aliases: []string{"rm"},
		Short:   "Remove a saved path",
		Args:    cobra.ExactArgs(1),
		RunE:    a.runRemove,
	}
}

func (a *app) runSave(cmd *cobra.Command, args []string) error {
	cwd, err := a.getwd()
	if err != nil {
		return fmt.Errorf("failed to read current directory: %w", err)
	}

	name := ""
	if len(args) == 1 {
		name = args[0]
	} else if name, err = deriveName(cwd); err != nil {
		return err
	}

	log := logging.For(a.logger, logging.CategoryCLI).With(zap.String("name", name), zap.String("path", cwd))

	err = a.store.Insert(name, cwd)
	switch store.KindOf(err) {
	case store.KindDuplicateName:
		log.Info("name already used")
		a.out.DuplicateName(name)
		return nil
	case store.KindInvalid:
		return userErrorf("Invalid bookmark: %v", errors.Unwrap(err))
	}
	if err != nil {
		return err
	}

	log.Debug("bookmark saved")
	a.out.Saved(name, cwd)
	return nil
}

func (a *app) runGet(cmd *cobra.Command, args []string) error {
	name := args[0]
	path, err := a.store.Lookup(name)
	if store.KindOf(err) == store.KindNotFound {
		return userErrorf("Path '%s' not found.", name)
	}
	if err != nil {
		return err
	}
	a.out.Path(path)
	return nil
}

func (a *app) runList(cmd *cobra.Command, args []string) error {
	long, _ := cmd.Flags().GetBool("long")

	bookmarks, err := a.store.List()
	if err != nil {
		return err
	}
	a.out.Bookmarks(bookmarks, long)
	return nil
}

func (a *app) runRemove(cmd *cobra.Command, args []string) error {
	name := args[0]
	removed, err := a.store.Remove(name)
	if err != nil {
		return err
	}
	logging.For(a.logger, logging.CategoryCLI).Debug("remove",
		zap.String("name", name), zap.Bool("removed", removed))
	a.out.Removed(name, removed)
	return nil
}

// deriveName returns the last element of dir, the default bookmark name.
func deriveName(dir string) (string, error) {
	name := filepath.Base(filepath.Clean(dir))
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "", userErrorf("Cannot derive a name from %s; pass one explicitly.", dir)
	}
	return name, nil
}
