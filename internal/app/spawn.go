package app

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Process is a shell command run on behalf of the tree.
type Process struct {
	Command string
	Root    string
	Entry   string
	Dir     string
}

// Env returns the process environment: the current environment plus
// sidetree_root, sidetree_entry and sidetree_dir.
func (p Process) Env() []string {
	return append(os.Environ(),
		"sidetree_root="+p.Root,
		"sidetree_entry="+p.Entry,
		"sidetree_dir="+p.Dir,
	)
}

// Cmd builds the command: sh -c <Command> -- <Entry>, so the entry is $1.
func (p Process) Cmd() *exec.Cmd {
	c := exec.Command("sh", "-c", p.Command, "--", p.Entry)
	c.Env = p.Env()
	return c
}

// Spawner runs processes to completion.
type Spawner interface {
	Run(p Process) error
}

// ShellSpawner runs processes with their output captured.
type ShellSpawner struct{}

// Run runs p and waits for it. A non-zero exit is an error that carries the
// first line of the process output.
func (ShellSpawner) Run(p Process) error {
	c := p.Cmd()
	var out bytes.Buffer
	c.Stdout = &out
	c.Stderr = &out
	err := c.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if line := firstLine(out.String()); line != "" {
			return fmt.Errorf("command failed with %s: %s", exitErr.ProcessState, line)
		}
		return fmt.Errorf("command failed with %s", exitErr.ProcessState)
	}
	return err
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
