package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pathmark/internal/config"
	"pathmark/internal/logging"
	"pathmark/internal/store"
	"pathmark/internal/ui"
)

var version = "dev"

// skipStoreAnnotation marks commands that run without opening the database.
const skipStoreAnnotation = "pathmark/skip-store"

// app carries the state of one invocation. The store handle is opened in
// PersistentPreRunE and closed by run.
type app struct {
	// Global flags
	configPath string
	dbLocation string
	driver     string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
	store  *store.Store

	out    *ui.Printer
	errOut *ui.Printer
	stdout io.Writer
	stderr io.Writer

	getwd     func() (string, error)
	runPicker func(ui.Picker) (ui.Picker, error)
}

func newApp(stdout, stderr io.Writer) *app {
	a := &app{
		logger: zap.NewNop(),
		out:    ui.NewPrinter(stdout),
		errOut: ui.NewPrinter(stderr),
		stdout: stdout,
		stderr: stderr,
		getwd:  os.Getwd,
	}
	a.runPicker = a.runPickerProgram
	return a
}

// userError is a failure whose message is shown verbatim.
type userError struct {
	msg string
}

func (e *userError) Error() string { return e.msg }

func userErrorf(format string, args ...any) error {
	return &userError{msg: fmt.Sprintf(format, args...)}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pathmark",
		Short: "Bookmark directories by name",
		Long: `pathmark saves the current directory under a short name and resolves
the name back to the path later.

  cd "$(pathmark get work)"

Bookmarks are kept in a SQLite database under the user config directory
(override with --db, PATHMARK_DB or storage.location in config.yaml).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.logger.Debug("command finished", zap.String("command", cmd.Name()))
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default: <user config dir>/pathmark/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.dbLocation, "db", "", "Database file or sqlite:// connection string")
	rootCmd.PersistentFlags().StringVar(&a.driver, "driver", "", "SQLite driver: sqlite3 (cgo) or sqlite (pure Go)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(newSaveCmd(a))
	rootCmd.AddCommand(newGetCmd(a))
	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newRemoveCmd(a))
	rootCmd.AddCommand(newPickCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))

	return rootCmd
}

// setup loads configuration, builds the logger and opens the store.
func (a *app) setup(cmd *cobra.Command) error {
	path := a.configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
		a.configPath = path
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if a.dbLocation != "" {
		cfg.Storage.Location = a.dbLocation
	}
	if a.driver != "" {
		cfg.Storage.Driver = a.driver
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.Logging, a.verbose, a.stderr)
	if err != nil {
		return err
	}
	a.logger = logger
	logging.For(logger, logging.CategoryBoot).Debug("configuration loaded",
		zap.String("config", path),
		zap.String("location", cfg.Storage.Location),
		zap.String("driver", cfg.Storage.Driver),
	)

	if !needsStore(cmd) {
		return nil
	}

	driver, err := store.ParseDriver(cfg.Storage.Driver)
	if err != nil {
		return err
	}
	s, err := store.Open(cfg.Storage.Location, store.WithDriver(driver))
	if err != nil {
		logging.For(logger, logging.CategoryStore).Debug("failed to open store", zap.Error(err))
		return err
	}
	a.store = s
	logging.For(logger, logging.CategoryStore).Debug("store opened",
		zap.String("location", s.Location()),
		zap.String("driver", string(s.Driver())),
	)
	return nil
}

// needsStore reports whether cmd works on bookmarks. help, shell completion
// and annotated commands run without touching the database.
func needsStore(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "help", "completion", cobra.ShellCompRequestCmd, cobra.ShellCompNoDescRequestCmd:
			return false
		}
		if c.Annotations[skipStoreAnnotation] != "" {
			return false
		}
	}
	return true
}

// close releases the store and flushes the logger.
func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("failed to close store", zap.Error(err))
		}
		a.store = nil
	}
	_ = a.logger.Sync()
}

// run executes the CLI with args and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	return runApp(newApp(stdout, stderr), args)
}

func runApp(a *app, args []string) int {
	defer a.close()

	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	var ue *userError
	if errors.As(err, &ue) {
		a.errOut.Error(ue.msg)
	} else {
		a.errOut.Error("Error: " + err.Error())
	}
	return 1
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
