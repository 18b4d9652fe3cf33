package app

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/sidetree/internal/command"
	"github.com/marcus/sidetree/internal/styles"
)

// PromptKind identifies what a status line prompt asks for.
type PromptKind int

const (
	PromptShell PromptKind = iota
	PromptCommand
	PromptRename
	PromptNewFile
	PromptNewDir
	PromptDelete
)

// Label returns the text shown before the input.
func (k PromptKind) Label() string {
	switch k {
	case PromptShell:
		return "!"
	case PromptCommand:
		return ":"
	case PromptRename:
		return "Rename>"
	case PromptNewFile:
		return "mk>"
	case PromptNewDir:
		return "New dir>"
	case PromptDelete:
		return "delete? [y/N]>"
	}
	return ">"
}

// submit turns the submitted text into a command, or nil for none.
func (k PromptKind) submit(text string) command.Command {
	switch k {
	case PromptShell:
		if text == "" {
			return nil
		}
		return command.Shell{Text: text}
	case PromptCommand:
		if text == "" {
			return nil
		}
		return command.RunCommandString{Text: text}
	case PromptDelete:
		if text == "y" || text == "Y" {
			return command.Delete{Confirm: false}
		}
		return nil
	}

	if text == "" {
		return nil
	}
	name := text
	switch k {
	case PromptRename:
		return command.Rename{Name: &name}
	case PromptNewFile:
		return command.NewFile{Name: &name}
	case PromptNewDir:
		return command.NewDirectory{Name: &name}
	}
	return nil
}

// StatusLine is the bottom row: an info or error message, or an active
// prompt. Input history is kept per prompt kind.
type StatusLine struct {
	message string
	isError bool

	active  bool
	kind    PromptKind
	input   textinput.Model
	history map[PromptKind][]string
	histPos int
	draft   string
}

// NewStatusLine creates an empty status line.
func NewStatusLine() *StatusLine {
	ti := textinput.New()
	ti.Prompt = ""
	return &StatusLine{
		input:   ti,
		history: make(map[PromptKind][]string),
	}
}

// Info shows an informational message.
func (s *StatusLine) Info(msg string) {
	s.message, s.isError = msg, false
}

// Error shows an error message.
func (s *StatusLine) Error(msg string) {
	s.message, s.isError = msg, true
}

// Clear removes the message.
func (s *StatusLine) Clear() {
	s.message, s.isError = "", false
}

// Message returns the current message and whether it is an error.
func (s *StatusLine) Message() (string, bool) {
	return s.message, s.isError
}

// Prompt opens a prompt of the given kind with initial text.
func (s *StatusLine) Prompt(kind PromptKind, initial string) tea.Cmd {
	s.active = true
	s.kind = kind
	s.histPos = len(s.history[kind])
	s.draft = ""
	s.input.SetValue(initial)
	s.input.CursorEnd()
	return s.input.Focus()
}

// Active returns the open prompt kind.
func (s *StatusLine) Active() (PromptKind, bool) {
	return s.kind, s.active
}

// Value returns the prompt input.
func (s *StatusLine) Value() string {
	return s.input.Value()
}

// History returns the submitted inputs for a prompt kind, oldest first.
func (s *StatusLine) History(kind PromptKind) []string {
	return s.history[kind]
}

func (s *StatusLine) close() {
	s.active = false
	s.input.Blur()
	s.input.SetValue("")
}

// HandleKey feeds a key to the open prompt. Enter submits and returns the
// resulting command, if any; esc cancels; up and down walk the history.
func (s *StatusLine) HandleKey(msg tea.KeyMsg) (command.Command, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		text := s.input.Value()
		kind := s.kind
		s.remember(kind, text)
		s.close()
		return kind.submit(text), nil

	case tea.KeyEsc, tea.KeyCtrlG:
		s.close()
		return nil, nil

	case tea.KeyUp:
		s.walkHistory(-1)
		return nil, nil

	case tea.KeyDown:
		s.walkHistory(1)
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return nil, cmd
}

func (s *StatusLine) remember(kind PromptKind, text string) {
	if text == "" || kind == PromptDelete {
		return
	}
	h := s.history[kind]
	if len(h) > 0 && h[len(h)-1] == text {
		return
	}
	s.history[kind] = append(h, text)
}

func (s *StatusLine) walkHistory(delta int) {
	h := s.history[s.kind]
	next := s.histPos + delta
	if next < 0 || next > len(h) {
		return
	}
	if s.histPos == len(h) {
		s.draft = s.input.Value()
	}
	s.histPos = next
	if next == len(h) {
		s.input.SetValue(s.draft)
	} else {
		s.input.SetValue(h[next])
	}
	s.input.CursorEnd()
}

// View renders the status line at the given width.
func (s *StatusLine) View(width int) string {
	if s.active {
		label := styles.PromptLabel.Render(s.kind.Label())
		s.input.Width = max(width-ansi.StringWidth(label)-1, 1)
		return label + s.input.View()
	}
	if s.message == "" {
		return ""
	}
	msg := ansi.Truncate(s.message, width, "…")
	if s.isError {
		return styles.StatusError.Render(msg)
	}
	return styles.StatusInfo.Render(msg)
}
