package app

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/sidetree/internal/command"
	"github.com/marcus/sidetree/internal/keymap"
)

// Update handles all messages and returns the updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.help.visible {
			m.help.resize(m.width, m.height)
		}
		return m, nil

	case TickMsg:
		m.exec.Refresh()
		m.syncWatcher()
		return m, tickCmd()

	case WatchStartedMsg:
		m.watcher = msg.Watcher
		m.syncWatcher()
		return m, waitForWatch(m.watcher)

	case WatchEventMsg:
		m.logger.Debug("watch event", "dir", msg.Dir, "op", msg.Op.String())
		m.exec.Refresh()
		m.syncWatcher()
		return m, waitForWatch(m.watcher)

	case watchStoppedMsg:
		m.watcher = nil
		return m, nil

	case ExecDoneMsg:
		if msg.Err != nil {
			m.exec.Status.Error(fmt.Sprintf("open: %v", msg.Err))
		}
		m.exec.Refresh()
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key, known := keymap.FromTea(msg)

	// ctrl+c always quits, whatever is open.
	if known && key == keymap.Ctrl('c') {
		m.exec.Execute(command.Quit{})
		return m, m.afterCommand()
	}

	if _, active := m.exec.Status.Active(); active {
		cmd, inputCmd := m.exec.Status.HandleKey(msg)
		if cmd != nil {
			m.exec.Execute(cmd)
		} else {
			m.exec.Refresh()
		}
		return m, batch(inputCmd, m.afterCommand())
	}

	if m.help.visible {
		return m, m.help.handleKey(msg)
	}

	if !known {
		return m, nil
	}

	if cmd, ok := m.exec.Keys.Lookup(key); ok {
		m.exec.Execute(cmd)
		return m, m.afterCommand()
	}
	if action, ok := m.actions.Lookup(key); ok {
		return m, m.doAction(action)
	}
	return m, nil
}

// doAction runs a built-in action.
func (m *Model) doAction(action keymap.Action) tea.Cmd {
	t := m.exec.Tree

	switch action {
	case keymap.ActionQuit:
		m.exec.Execute(command.Quit{})

	case keymap.ActionDown:
		t.SelectNext()
	case keymap.ActionUp:
		t.SelectPrev()
	case keymap.ActionFirst:
		t.SelectFirst()
	case keymap.ActionLast:
		t.SelectLast()
	case keymap.ActionHalfPageDown:
		t.MoveBy(max(m.treeHeight()/2, 1))
	case keymap.ActionHalfPageUp:
		t.MoveBy(-max(m.treeHeight()/2, 1))

	case keymap.ActionToggle:
		m.activate()

	case keymap.ActionExpand:
		line, ok := t.Selected()
		if !ok || !line.IsDir {
			break
		}
		if !line.Expanded {
			t.Expand(line.Path)
			m.exec.Refresh()
		} else {
			t.SelectNext()
		}

	case keymap.ActionCollapse:
		line, ok := t.Selected()
		if !ok {
			break
		}
		if line.IsDir && line.Expanded {
			t.Collapse(line.Path)
			m.exec.Refresh()
		} else {
			t.SelectUp()
		}

	case keymap.ActionShellPrompt:
		return m.exec.Status.Prompt(PromptShell, "")

	case keymap.ActionCommandPrompt:
		return m.exec.Status.Prompt(PromptCommand, "")

	case keymap.ActionChangeDir:
		m.exec.Execute(command.ChangeDirectory{})

	case keymap.ActionToggleHidden:
		m.exec.Opts.ShowHidden = !m.exec.Opts.ShowHidden
		m.exec.Refresh()

	case keymap.ActionYankPath:
		line, ok := t.Selected()
		if !ok {
			break
		}
		if err := clipboard.WriteAll(line.Path); err != nil {
			m.exec.Status.Error(fmt.Sprintf("copy failed: %v", err))
			break
		}
		m.exec.Status.Info("copied " + line.Path)

	case keymap.ActionHelp:
		m.help.open(m.exec, m.width, m.height)
	}

	return m.afterCommand()
}

// activate toggles the selected directory or opens the selected file.
func (m *Model) activate() {
	line, ok := m.exec.Tree.Selected()
	if !ok {
		return
	}
	if line.IsDir {
		m.exec.Tree.ToggleExpanded(line.Path)
		m.exec.Refresh()
		return
	}
	m.exec.Execute(command.Open{})
}

func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if _, active := m.exec.Status.Active(); active {
		return m, nil
	}
	if m.help.visible {
		return m, m.help.handleMouse(msg)
	}
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	t := m.exec.Tree
	switch msg.Button {
	case tea.MouseButtonWheelDown:
		t.SelectNext()
	case tea.MouseButtonWheelUp:
		t.SelectPrev()
	case tea.MouseButtonLeft, tea.MouseButtonRight:
		if msg.Y < 0 || msg.Y >= m.treeHeight() {
			return m, nil
		}
		idx := t.Offset() + msg.Y
		if idx >= len(t.Lines()) {
			return m, nil
		}
		if idx == t.SelectedIndex() {
			m.activate()
			return m, m.afterCommand()
		}
		t.SelectIndex(idx)
	}
	return m, nil
}

func batch(cmds ...tea.Cmd) tea.Cmd {
	var nonNil []tea.Cmd
	for _, c := range cmds {
		if c != nil {
			nonNil = append(nonNil, c)
		}
	}
	switch len(nonNil) {
	case 0:
		return nil
	case 1:
		return nonNil[0]
	}
	return tea.Batch(nonNil...)
}
