// Package command implements the sidetree command language: statement
// parsing, the typed Command values built from statements, and rendering
// statements back to text.
package command

import (
	"github.com/marcus/sidetree/internal/keymap"
)

// Command is one executable instruction. The set of implementations is
// closed; executors switch on the concrete type.
type Command interface {
	command()
}

// Quit ends the program after the current batch of commands.
type Quit struct{}

// Shell runs Text through sh -c with the selection as $1.
type Shell struct {
	Text string
}

// Open runs the open_cmd option on Path, or on the selection when Path is nil.
type Open struct {
	Path *string
}

// RunCommandString parses Text as a script and runs it.
type RunCommandString struct {
	Text string
}

// SetOption assigns an option by name.
type SetOption struct {
	Name  string
	Value string
}

// Echo shows Text on the status line.
type Echo struct {
	Text string
}

// ChangeDirectory changes the working directory and re-roots the tree.
// A nil Path means the selection.
type ChangeDirectory struct {
	Path *string
}

// BindKey binds Key to Cmd.
type BindKey struct {
	Key keymap.Key
	Cmd Command
}

// Rename renames the selection. A nil Name opens the rename prompt.
type Rename struct {
	Name *string
}

// NewFile creates a file in the current directory. A nil Name opens a prompt.
type NewFile struct {
	Name *string
}

// NewDirectory creates a directory in the current directory. A nil Name
// opens a prompt.
type NewDirectory struct {
	Name *string
}

// Delete removes the selection. With Confirm set it asks first.
type Delete struct {
	Confirm bool
}

func (Quit) command()             {}
func (Shell) command()            {}
func (Open) command()             {}
func (RunCommandString) command() {}
func (SetOption) command()        {}
func (Echo) command()             {}
func (ChangeDirectory) command()  {}
func (BindKey) command()          {}
func (Rename) command()           {}
func (NewFile) command()          {}
func (NewDirectory) command()     {}
func (Delete) command()           {}
