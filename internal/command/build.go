package command

import (
	"fmt"
	"os"
	"strings"

	"github.com/marcus/sidetree/internal/keymap"
)

// UnknownVerbError is returned for a statement whose verb is not known.
type UnknownVerbError struct {
	Verb string
}

func (e *UnknownVerbError) Error() string {
	return fmt.Sprintf("unknown command %q", e.Verb)
}

// ArgumentError is returned when a verb is missing a required argument.
type ArgumentError struct {
	Verb  string
	Index int // 1-based
	Name  string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: missing argument %d (%s)", e.Verb, e.Index, e.Name)
}

// Verbs lists the verbs Build accepts.
var Verbs = []string{"quit", "open", "set", "echo", "shell", "cd", "map", "rename", "mkfile", "mk", "mkdir", "rm"}

// Build turns a verb and its arguments into a Command. Extra arguments to
// verbs with a fixed arity are ignored.
func Build(verb string, args []string) (Command, error) {
	switch verb {
	case "quit":
		return Quit{}, nil
	case "open":
		return Open{}, nil
	case "set":
		if err := need(verb, args, "name", "value"); err != nil {
			return nil, err
		}
		return SetOption{Name: args[0], Value: args[1]}, nil
	case "echo":
		return Echo{Text: strings.Join(args, " ")}, nil
	case "shell":
		return Shell{Text: strings.Join(args, " ")}, nil
	case "cd":
		return ChangeDirectory{Path: optional(args)}, nil
	case "map":
		if err := need(verb, args, "key", "command"); err != nil {
			return nil, err
		}
		key, err := keymap.ParseKey(args[0])
		if err != nil {
			return nil, fmt.Errorf("map: %w", err)
		}
		inner, err := Build(args[1], args[2:])
		if err != nil {
			return nil, fmt.Errorf("map %s: %w", args[0], err)
		}
		return BindKey{Key: key, Cmd: inner}, nil
	case "rename":
		return Rename{Name: optional(args)}, nil
	case "mkfile", "mk":
		return NewFile{Name: optional(args)}, nil
	case "mkdir":
		return NewDirectory{Name: optional(args)}, nil
	case "rm":
		return Delete{Confirm: true}, nil
	}
	return nil, &UnknownVerbError{Verb: verb}
}

// Parse parses text and builds every statement. The first failure aborts.
func Parse(text string) ([]Command, error) {
	stmts, err := ParseStatements(text)
	if err != nil {
		return nil, err
	}
	cmds := make([]Command, 0, len(stmts))
	for _, st := range stmts {
		c, err := Build(st.Verb, st.Args)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, c)
	}
	return cmds, nil
}

// ReadScript reads and parses a script file.
func ReadScript(path string) ([]Command, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	cmds, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cmds, nil
}

func need(verb string, args []string, names ...string) error {
	for i, name := range names {
		if i >= len(args) {
			return &ArgumentError{Verb: verb, Index: i + 1, Name: name}
		}
	}
	return nil
}

func optional(args []string) *string {
	if len(args) == 0 {
		return nil
	}
	s := args[0]
	return &s
}
