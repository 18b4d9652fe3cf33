package config

import (
	"strings"

	"github.com/marcus/sidetree/internal/command"
)

// Script renders the options as set statements that restore them when run.
func (o *Options) Script() string {
	names := OptionNames()
	stmts := make([]command.Statement, 0, len(names))
	for _, name := range names {
		value, _ := o.GetOpt(name)
		stmts = append(stmts, command.Statement{Verb: "set", Args: []string{name, value}})
	}
	return command.Render(stmts)
}

// Changed returns the names of options that differ from defaults.
func (o *Options) Changed() []string {
	def := Default()
	var changed []string
	for _, name := range OptionNames() {
		a, _ := o.GetOpt(name)
		b, _ := def.GetOpt(name)
		if a != b {
			changed = append(changed, name)
		}
	}
	return changed
}

// Summary renders the changed options as "name=value" pairs.
func (o *Options) Summary() string {
	changed := o.Changed()
	parts := make([]string, len(changed))
	for i, name := range changed {
		v, _ := o.GetOpt(name)
		parts[i] = name + "=" + command.Quote(v)
	}
	return strings.Join(parts, " ")
}
