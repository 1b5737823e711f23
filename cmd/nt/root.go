package main

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/nt/internal/storage"
	"github.com/nikbrunner/nt/internal/tree"
	"github.com/nikbrunner/nt/internal/tui"
)

// app carries global flags and the resolved configuration to subcommands.
type app struct {
	configPath string
	dbPath     string
	backend    string
	debug      bool

	cfg    *storage.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "nt",
		Short:         "vim-style nested notes tree",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Open the interactive tree browser
  nt

  # Print the tree with item ids
  nt tree

  # Move two items under a parent, starting at position 0
  nt mv <id> <id> --to <parent-id> --index 0
`),
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(a)
		},
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default ~/.config/nt/config.yaml)")
	cmd.PersistentFlags().StringVar(&a.dbPath, "db", "", "Data file, overrides dataPath from config")
	cmd.PersistentFlags().StringVar(&a.backend, "backend", "", "Storage backend (sqlite|json), overrides config")
	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging on stderr")

	cmd.AddCommand(newTreeCmd(a))
	cmd.AddCommand(newAddCmd(a))
	cmd.AddCommand(newMoveCmd(a))
	cmd.AddCommand(newRenameCmd(a))
	cmd.AddCommand(newRemoveCmd(a))
	cmd.AddCommand(newFindCmd(a))
	cmd.AddCommand(newNormalizeCmd(a))
	cmd.AddCommand(newImportCmd(a))
	cmd.AddCommand(newExportCmd(a))

	return cmd
}

// setup builds the logger and resolves config with flag overrides.
func (a *app) setup(cmd *cobra.Command) error {
	level := slog.LevelWarn
	if a.debug {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	path := a.configPath
	if path == "" {
		p, err := storage.DefaultConfigFilePath()
		if err != nil {
			return fmt.Errorf("config path: %w", err)
		}
		path = p
	}

	cfg, err := storage.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if a.backend != "" && a.backend != cfg.Backend {
		// Follow the backend's default file unless a path was configured.
		if def, err := storage.DefaultDataPath(cfg.Backend); err == nil && def == cfg.DataPath {
			cfg.DataPath = ""
		}
		cfg.Backend = a.backend
	}
	if a.dbPath != "" {
		cfg.DataPath = a.dbPath
	}
	if err := cfg.ApplyDefaults(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger.Debug("config loaded", "path", path, "backend", cfg.Backend, "data", cfg.DataPath)
	return nil
}

// openEngine opens the configured storage and wraps it in an engine.
// The returned close function must be called when done.
func (a *app) openEngine() (*tree.Engine, func(), error) {
	st, err := storage.OpenStorage(a.cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}

	engine := tree.NewEngine(tree.EngineParams{
		Repository:   st,
		Logger:       a.logger,
		OrphanPolicy: tree.ParseOrphanPolicy(a.cfg.Orphans),
	})

	closeFn := func() {
		if err := st.Close(); err != nil {
			a.logger.Warn("close storage failed", "err", err)
		}
	}
	return engine, closeFn, nil
}

// runTUI runs the full interactive tree browser.
func runTUI(a *app) error {
	engine, closeFn, err := a.openEngine()
	if err != nil {
		return err
	}
	defer closeFn()

	model := tui.NewApp(tui.AppParams{
		Engine: engine,
		Icon:   a.cfg.Icon,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	stop, err := tui.StartWatcher(a.cfg.DataPath, p)
	if err != nil {
		a.logger.Warn("live reload disabled", "err", err)
	} else {
		defer stop()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run app: %w", err)
	}
	return nil
}

// fprintf writes to the command's stdout.
func fprintf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
