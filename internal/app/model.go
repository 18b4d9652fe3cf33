package app

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/sidetree/internal/keymap"
	"github.com/marcus/sidetree/internal/watch"
)

// Model is the bubbletea model for the tree panel.
type Model struct {
	exec    *Executor
	actions *keymap.Registry[keymap.Action]
	logger  *slog.Logger

	// watcher is set once the watcher has started.
	watcher *watch.Watcher
	noWatch bool

	width  int
	height int

	help  *helpView
	cache *viewCache
}

// Option configures a Model.
type Option func(*Model)

// WithoutWatcher disables the filesystem watcher; the tree is still
// rescanned on every tick.
func WithoutWatcher() Option {
	return func(m *Model) { m.noWatch = true }
}

// New creates the model around an executor.
func New(exec *Executor, logger *slog.Logger, opts ...Option) Model {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	m := Model{
		exec:    exec,
		actions: keymap.DefaultRegistry(),
		logger:  logger,
		help:    &helpView{},
		cache:   &viewCache{},
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init starts the tick, the watcher and any process queued by the
// startup script.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd()}
	if !m.noWatch {
		cmds = append(cmds, startWatcher(m.logger))
	}
	if cmd := m.afterCommand(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Executor returns the model's executor.
func (m Model) Executor() *Executor {
	return m.exec
}

// Close releases the watcher.
func (m Model) Close() error {
	if m.watcher != nil {
		return m.watcher.Close()
	}
	return nil
}

// treeHeight is the number of rows available to tree lines.
func (m Model) treeHeight() int {
	return max(m.height-1, 0)
}

// afterCommand runs queued processes and quits if a command asked to.
func (m Model) afterCommand() tea.Cmd {
	var cmds []tea.Cmd
	for _, p := range m.exec.TakePending() {
		cmds = append(cmds, execProcess(p))
	}
	if m.exec.ShouldExit() {
		cmds = append(cmds, tea.Quit)
	}
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	}
	return tea.Sequence(cmds...)
}

func (m *Model) syncWatcher() {
	if m.watcher != nil {
		m.watcher.Sync(m.exec.Tree.ExpandedDirs())
	}
}

func startWatcher(logger *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		w, err := watch.New(logger)
		if err != nil {
			logger.Debug("watcher unavailable", "err", err)
			return nil
		}
		return WatchStartedMsg{Watcher: w}
	}
}
