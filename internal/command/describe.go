package command

// Describe renders c as a script statement where the command has one.
// Commands that scripts cannot express (an Open with an explicit path, a
// RunCommandString) are rendered in a readable form instead.
func Describe(c Command) string {
	switch c := c.(type) {
	case Quit:
		return "quit"
	case Shell:
		return RenderStatement(Statement{Verb: "shell", Args: []string{c.Text}})
	case Open:
		if c.Path != nil {
			return "open " + Quote(*c.Path)
		}
		return "open"
	case RunCommandString:
		return c.Text
	case SetOption:
		return RenderStatement(Statement{Verb: "set", Args: []string{c.Name, c.Value}})
	case Echo:
		return RenderStatement(Statement{Verb: "echo", Args: []string{c.Text}})
	case ChangeDirectory:
		return withOptional("cd", c.Path)
	case BindKey:
		return "map " + Quote(c.Key.String()) + " " + Describe(c.Cmd)
	case Rename:
		return withOptional("rename", c.Name)
	case NewFile:
		return withOptional("mkfile", c.Name)
	case NewDirectory:
		return withOptional("mkdir", c.Name)
	case Delete:
		return "rm"
	}
	return "?"
}

func withOptional(verb string, arg *string) string {
	if arg == nil {
		return verb
	}
	return verb + " " + Quote(*arg)
}
