package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/marcus/sidetree/internal/app"
	"github.com/marcus/sidetree/internal/config"
	"github.com/marcus/sidetree/internal/state"
	"github.com/marcus/sidetree/internal/tree"
	"github.com/marcus/sidetree/internal/version"
)

// Version is set at build time via ldflags
var Version = ""

type flags struct {
	configPath string
	noCache    bool
	selectPath string
	exec       string
	debug      bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:          "sidetree",
		Short:        "A file tree side panel for the terminal",
		Version:      version.Resolve(Version),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Browse the current directory
  sidetree

  # Start with a file selected and hidden files shown
  sidetree -s src/main.go -e 'set show_hidden true'
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(f)
		},
	}

	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "script to run at startup (default $XDG_CONFIG_HOME/sidetree/sidetreerc)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "do not restore or save the selection and expanded directories")
	cmd.Flags().StringVarP(&f.selectPath, "select", "s", "", "expand to and select this path")
	cmd.Flags().StringVarP(&f.exec, "exec", "e", "", "commands to run after the startup script")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "write debug logs to $XDG_STATE_HOME/sidetree/sidetree.log")
	return cmd
}

func run(f *flags) error {
	logger, closeLog, err := newLogger(f.debug)
	if err != nil {
		return err
	}
	defer closeLog()

	exec, store, err := setup(f, logger)
	if err != nil {
		return err
	}

	// The startup commands may have quit already; nothing to draw then.
	if exec.ShouldExit() && !exec.HasPending() {
		return saveCache(store, exec, logger)
	}

	model := app.New(exec, logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, runErr := p.Run()
	if m, ok := final.(app.Model); ok {
		_ = m.Close()
	}
	if err := saveCache(store, exec, logger); err != nil {
		logger.Warn("save cache", "err", err)
	}
	if runErr != nil {
		return fmt.Errorf("running application: %w", runErr)
	}
	return nil
}

// setup builds the executor and applies the startup script, the cache,
// --select and --exec, in that order. store is nil with --no-cache.
func setup(f *flags, logger *slog.Logger) (*app.Executor, *state.Store, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve working directory: %w", err)
	}

	exec := app.NewExecutor(config.Default(), tree.New(cwd, logger), nil, logger)
	exec.Refresh()

	script := config.ExpandPath(f.configPath)
	if script == "" {
		if script, err = config.DefaultScript(); err != nil {
			return nil, nil, fmt.Errorf("config: %w", err)
		}
	}
	if err := exec.RunScriptFile(script); err != nil {
		return nil, nil, err
	}
	logger.Debug("startup script", "path", script, "options", exec.Opts.Summary())

	var store *state.Store
	if !f.noCache {
		path, err := config.CachePath()
		if err != nil {
			return nil, nil, fmt.Errorf("cache: %w", err)
		}
		store = state.NewStore(path)
		restoreCache(store, exec, logger)
	}

	if f.selectPath != "" {
		target, err := filepath.Abs(config.ExpandPath(f.selectPath))
		if err != nil {
			return nil, nil, fmt.Errorf("select: %w", err)
		}
		exec.Tree.ExpandToPath(target)
		exec.Refresh()
		if !exec.Tree.SelectPath(target) {
			logger.Debug("select: path not in tree", "path", target)
		}
	}

	if f.exec != "" {
		if err := exec.RunScript(f.exec); err != nil {
			return nil, nil, fmt.Errorf("exec: %w", err)
		}
	}
	return exec, store, nil
}

// restoreCache applies the cached state. The cache is optional, so a bad
// file is logged and ignored.
func restoreCache(store *state.Store, exec *app.Executor, logger *slog.Logger) {
	c, err := store.Load()
	if err != nil {
		logger.Warn("load cache", "path", store.Path(), "err", err)
		return
	}
	exec.Tree.ExtendExpanded(c.ExpandedPaths)
	exec.Refresh()
	if c.SelectedPath != "" {
		exec.Tree.SelectPath(c.SelectedPath)
	}
}

func saveCache(store *state.Store, exec *app.Executor, logger *slog.Logger) error {
	if store == nil {
		return nil
	}
	c := &state.Cache{ExpandedPaths: exec.Tree.ExpandedPaths()}
	if line, ok := exec.Tree.Selected(); ok {
		c.SelectedPath = line.Path
	}
	logger.Debug("save cache", "path", store.Path(), "expanded", len(c.ExpandedPaths))
	return store.Save(c)
}

// newLogger returns the debug file logger under --debug and a discarding
// logger otherwise. The TUI owns the terminal, so logs never go there.
func newLogger(debug bool) (*slog.Logger, func(), error) {
	if !debug {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}

	path, err := config.LogPath()
	if err != nil {
		return nil, nil, fmt.Errorf("log: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("log: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("log: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	return logger, func() { _ = file.Close() }, nil
}
