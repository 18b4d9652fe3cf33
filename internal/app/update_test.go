package app

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/sidetree/internal/command"
	"github.com/marcus/sidetree/internal/keymap"
)

func newTestModel(t *testing.T, names ...string) (Model, string) {
	t.Helper()
	e, _, root := newTestExecutor(t, names...)
	m := New(e, nil, WithoutWatcher())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	return next.(Model), root
}

func press(t *testing.T, m Model, msgs ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestUpdate_Navigation(t *testing.T) {
	m, root := newTestModel(t, "a/inner.txt", "b.txt", "c.txt")
	tr := m.Executor().Tree

	m, _ = press(t, m, runes("j"))
	if line, _ := tr.Selected(); line.Path != filepath.Join(root, "b.txt") {
		t.Errorf("j selected %s", line.Path)
	}
	m, _ = press(t, m, runes("G"))
	if line, _ := tr.Selected(); line.Path != filepath.Join(root, "c.txt") {
		t.Errorf("G selected %s", line.Path)
	}
	m, _ = press(t, m, runes("g"), runes("l"))
	if !tr.IsExpanded(filepath.Join(root, "a")) {
		t.Fatal("l should expand the directory")
	}
	m, _ = press(t, m, runes("l"))
	if line, _ := tr.Selected(); line.Path != filepath.Join(root, "a", "inner.txt") {
		t.Errorf("l on an expanded dir should move into it, got %s", line.Path)
	}
	m, _ = press(t, m, runes("h"))
	if line, _ := tr.Selected(); line.Path != filepath.Join(root, "a") {
		t.Errorf("h on a file should select the parent, got %s", line.Path)
	}
	_, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if tr.IsExpanded(filepath.Join(root, "a")) {
		t.Error("enter should toggle the directory closed")
	}
}

func TestUpdate_QuitKeys(t *testing.T) {
	for _, msg := range []tea.KeyMsg{runes("q"), {Type: tea.KeyCtrlC}} {
		m, _ := newTestModel(t)
		m, cmd := press(t, m, msg)
		if !m.Executor().ShouldExit() {
			t.Errorf("%s should quit", msg)
		}
		if cmd == nil {
			t.Errorf("%s should return tea.Quit", msg)
		}
	}
}

func TestUpdate_UserBindingsWin(t *testing.T) {
	m, _ := newTestModel(t, "a.txt")
	e := m.Executor()
	e.Keys.Bind(keymap.Char('j'), command.Echo{Text: "mapped"})

	m, _ = press(t, m, runes("j"))
	if msg, _ := e.Status.Message(); msg != "mapped" {
		t.Errorf("status = %q, want the mapped echo", msg)
	}

	// While a prompt is open keys go to the input, not the bindings.
	m, _ = press(t, m, runes(":"))
	if kind, ok := e.Status.Active(); !ok || kind != PromptCommand {
		t.Fatal("':' should open the command prompt")
	}
	m, _ = press(t, m, runes("e"), runes("c"), runes("h"), runes("o"), runes(" "), runes("j"))
	if e.Status.Value() != "echo j" {
		t.Errorf("prompt value = %q", e.Status.Value())
	}
	_, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if msg, _ := e.Status.Message(); msg != "j" {
		t.Errorf("status = %q, want j", msg)
	}
}

func TestUpdate_OpenReturnsExec(t *testing.T) {
	m, root := newTestModel(t, "a.txt")
	e := m.Executor()
	e.Tree.SelectPath(filepath.Join(root, "a.txt"))

	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("opening a file should return a command")
	}
	if len(e.TakePending()) != 0 {
		t.Error("the model should take the pending process")
	}
}

func TestUpdate_ToggleHiddenAndHelp(t *testing.T) {
	m, root := newTestModel(t, ".dot", "vis")
	tr := m.Executor().Tree
	vis := filepath.Join(root, "vis")

	if line, _ := tr.Selected(); line.Path != vis {
		t.Fatalf("initial selection = %s, want vis", line.Path)
	}
	m, _ = press(t, m, runes("."))
	if len(tr.Lines()) != 2 {
		t.Errorf("lines = %d, want hidden files shown", len(tr.Lines()))
	}
	// Showing .dot shifts vis down a row; the selection stays on vis.
	if line, _ := tr.Selected(); line.Path != vis || tr.SelectedIndex() != 1 {
		t.Errorf("after '.': selected %s at %d, want vis at 1", line.Path, tr.SelectedIndex())
	}
	before, _ := tr.Selected()

	m, _ = press(t, m, runes("?"))
	if !m.help.visible {
		t.Fatal("? should open help")
	}
	if !strings.Contains(m.help.markdown, "show_hidden") {
		t.Error("help should list options")
	}
	m, _ = press(t, m, runes("k"), runes("j"))
	if line, _ := tr.Selected(); line.Path != before.Path {
		t.Errorf("selected %s, want %s: keys should not reach the tree while help is open", line.Path, before.Path)
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.help.visible {
		t.Error("esc should close help")
	}
}

func TestUpdate_Mouse(t *testing.T) {
	m, root := newTestModel(t, "a.txt", "b.txt")
	tr := m.Executor().Tree

	next, _ := m.Update(tea.MouseMsg{X: 2, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = next.(Model)
	if line, _ := tr.Selected(); line.Path != filepath.Join(root, "b.txt") {
		t.Errorf("click selected %s", line.Path)
	}

	next, _ = m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	m = next.(Model)
	if tr.SelectedIndex() != 0 {
		t.Error("wheel up should move the selection up")
	}

	next, _ = m.Update(tea.MouseMsg{X: 2, Y: 8, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = next.(Model)
	if tr.SelectedIndex() != 0 {
		t.Error("clicking below the lines should do nothing")
	}
}

func TestView(t *testing.T) {
	m, _ := newTestModel(t, "dir/", "file.txt")
	m.Executor().Status.Info("hello")

	out := m.View()
	rows := strings.Split(out, "\n")
	if len(rows) != 10 {
		t.Fatalf("rows = %d, want the window height", len(rows))
	}
	if !strings.Contains(ansi.Strip(rows[0]), "dir") || !strings.Contains(ansi.Strip(rows[1]), "file.txt") {
		t.Errorf("tree rows = %q", rows[:2])
	}
	if ansi.Strip(rows[9]) != "hello" {
		t.Errorf("status row = %q", rows[9])
	}
	if w := ansi.StringWidth(rows[0]); w != 40 {
		t.Errorf("selected row width = %d, want full width", w)
	}
	if m.View() != out {
		t.Error("unchanged frame should render identically")
	}
}
