package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/marcus/sidetree/internal/command"
	"github.com/marcus/sidetree/internal/config"
	"github.com/marcus/sidetree/internal/keymap"
	"github.com/marcus/sidetree/internal/styles"
	"github.com/marcus/sidetree/internal/tree"
)

// Executor runs commands against the tree, the options and the keymap.
// It is owned by a single goroutine.
type Executor struct {
	Opts   *config.Options
	Tree   *tree.Tree
	Keys   *keymap.Registry[command.Command]
	Status *StatusLine

	spawner Spawner
	logger  *slog.Logger

	exit    bool
	pending []Process
}

// NewExecutor creates an executor. A nil spawner runs processes with
// ShellSpawner.
func NewExecutor(opts *config.Options, tr *tree.Tree, spawner Spawner, logger *slog.Logger) *Executor {
	if spawner == nil {
		spawner = ShellSpawner{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Executor{
		Opts:    opts,
		Tree:    tr,
		Keys:    keymap.NewRegistry[command.Command](),
		Status:  NewStatusLine(),
		spawner: spawner,
		logger:  logger,
	}
}

// ShouldExit reports whether a Quit has run.
func (e *Executor) ShouldExit() bool {
	return e.exit
}

// HasPending reports whether open has queued a process.
func (e *Executor) HasPending() bool {
	return len(e.pending) > 0
}

// TakePending returns and clears the processes queued by open. They need
// the terminal, so the caller runs them.
func (e *Executor) TakePending() []Process {
	p := e.pending
	e.pending = nil
	return p
}

// TreeOptions returns the tree options derived from the current options.
func (e *Executor) TreeOptions() tree.Options {
	o := tree.Options{ShowHidden: e.Opts.ShowHidden}
	if e.Opts.FileIcons {
		o.Icon = styles.Icon
	}
	return o
}

// Refresh rescans the tree with the current options.
func (e *Executor) Refresh() {
	e.Tree.Update(e.TreeOptions())
}

// Execute runs one command and refreshes the tree.
func (e *Executor) Execute(c command.Command) {
	e.run(c)
	e.Refresh()
}

// ExecuteAll runs commands in order.
func (e *Executor) ExecuteAll(cmds []command.Command) {
	for _, c := range cmds {
		e.Execute(c)
	}
}

// RunScript parses text and runs it. A parse error runs nothing.
func (e *Executor) RunScript(text string) error {
	cmds, err := command.Parse(text)
	if err != nil {
		return err
	}
	e.ExecuteAll(cmds)
	return nil
}

// RunScriptFile reads and runs a script file.
func (e *Executor) RunScriptFile(path string) error {
	cmds, err := command.ReadScript(path)
	if err != nil {
		return err
	}
	e.ExecuteAll(cmds)
	return nil
}

func (e *Executor) errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	e.logger.Debug("command error", "msg", msg)
	e.Status.Error(msg)
}

func (e *Executor) process(cmdText, entry, dir string) Process {
	return Process{
		Command: cmdText,
		Root:    e.Tree.Root(),
		Entry:   entry,
		Dir:     dir,
	}
}

// entryDir is path itself when it is a directory, otherwise its parent.
func entryDir(path string) string {
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		return path
	}
	return filepath.Dir(path)
}

func (e *Executor) run(c command.Command) {
	e.logger.Debug("execute", "command", command.Describe(c))

	switch c := c.(type) {
	case command.Quit:
		e.exit = true

	case command.Shell:
		if err := e.spawner.Run(e.process(c.Text, e.Tree.Entry().Path, e.Tree.CurrentDir())); err != nil {
			e.errorf("%v", err)
		}

	case command.Open:
		entry, dir := e.Tree.Entry().Path, e.Tree.CurrentDir()
		if c.Path != nil {
			entry = *c.Path
			dir = entryDir(entry)
		}
		e.pending = append(e.pending, e.process(e.Opts.OpenCmd, entry, dir))
		if e.Opts.QuitOnOpen {
			e.exit = true
		}

	case command.RunCommandString:
		if err := e.RunScript(c.Text); err != nil {
			e.errorf("%v", err)
		}

	case command.SetOption:
		if err := e.Opts.SetOpt(c.Name, c.Value); err != nil {
			e.errorf("%v", err)
		}

	case command.Echo:
		e.Status.Info(c.Text)

	case command.ChangeDirectory:
		path := e.Tree.Entry().Path
		if c.Path != nil {
			path = config.ExpandPath(*c.Path)
		}
		if err := os.Chdir(path); err != nil {
			e.errorf("%v", err)
			return
		}
		cwd, err := os.Getwd()
		if err != nil {
			e.errorf("%v", err)
			return
		}
		e.Tree.ChangeRoot(cwd, e.TreeOptions())

	case command.BindKey:
		e.Keys.Bind(c.Key, c.Cmd)

	case command.Rename:
		if c.Name == nil {
			e.Status.Prompt(PromptRename, filepath.Base(e.Tree.Entry().Path))
			return
		}
		src := e.Tree.Entry().Path
		if src == e.Tree.Root() {
			e.errorf("cannot rename the tree root")
			return
		}
		dst, err := renameEntry(src, *c.Name)
		if err != nil {
			e.errorf("rename: %v", err)
			return
		}
		e.Tree.MoveExpanded(src, dst)
		e.Refresh()
		e.Tree.SelectPath(dst)

	case command.NewFile:
		if c.Name == nil {
			e.Status.Prompt(PromptNewFile, "")
			return
		}
		e.create(*c.Name, false)

	case command.NewDirectory:
		if c.Name == nil {
			e.Status.Prompt(PromptNewDir, "")
			return
		}
		e.create(*c.Name, true)

	case command.Delete:
		if c.Confirm {
			e.Status.Prompt(PromptDelete, "")
			return
		}
		if err := deleteEntry(e.Tree.Root(), e.Tree.Entry().Path); err != nil {
			e.errorf("delete: %v", err)
		}
	}
}

func (e *Executor) create(name string, isDir bool) {
	path, err := createEntry(e.Tree.Root(), e.Tree.CurrentDir(), name, isDir)
	if err != nil {
		e.errorf("create: %v", err)
		return
	}
	e.Tree.ExpandToPath(path)
	e.Refresh()
	e.Tree.SelectPath(path)
}
