package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/sidetree/internal/watch"
)

// tickInterval is how often the tree is rescanned without a watch event.
const tickInterval = 250 * time.Millisecond

// Message types for tea.Cmd
type (
	// TickMsg is sent on each clock tick.
	TickMsg time.Time

	// ExecDoneMsg is sent when a process run with the terminal exits.
	ExecDoneMsg struct {
		Err error
	}

	// WatchStartedMsg carries a watcher that started successfully.
	WatchStartedMsg struct {
		Watcher *watch.Watcher
	}

	// WatchEventMsg reports a change in a watched directory.
	WatchEventMsg watch.Event

	// watchStoppedMsg is sent when the watcher's event channel closes.
	watchStoppedMsg struct{}
)

// tickCmd returns a command that ticks every tickInterval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// execProcess runs p with the terminal released.
func execProcess(p Process) tea.Cmd {
	return tea.ExecProcess(p.Cmd(), func(err error) tea.Msg {
		return ExecDoneMsg{Err: err}
	})
}

// waitForWatch waits for the next watcher event.
func waitForWatch(w *watch.Watcher) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-w.Events()
		if !ok {
			return watchStoppedMsg{}
		}
		return WatchEventMsg(ev)
	}
}
