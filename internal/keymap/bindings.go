package keymap

// Action names a built-in behavior bound to a key. User bindings made with
// the map command take precedence over these.
type Action string

const (
	ActionQuit          Action = "quit"
	ActionDown          Action = "cursor-down"
	ActionUp            Action = "cursor-up"
	ActionFirst         Action = "cursor-top"
	ActionLast          Action = "cursor-bottom"
	ActionHalfPageDown  Action = "half-page-down"
	ActionHalfPageUp    Action = "half-page-up"
	ActionToggle        Action = "toggle"
	ActionExpand        Action = "expand"
	ActionCollapse      Action = "collapse"
	ActionShellPrompt   Action = "shell-prompt"
	ActionCommandPrompt Action = "command-prompt"
	ActionChangeDir     Action = "cd"
	ActionToggleHidden  Action = "toggle-hidden"
	ActionYankPath      Action = "yank-path"
	ActionHelp          Action = "help"
)

// Binding associates a key spec with a built-in action.
type Binding struct {
	Key         string
	Action      Action
	Description string
}

// DefaultBindings returns the default key bindings.
func DefaultBindings() []Binding {
	return []Binding{
		{Key: "q", Action: ActionQuit, Description: "quit"},
		{Key: "<c-c>", Action: ActionQuit, Description: "quit"},
		{Key: "j", Action: ActionDown, Description: "move down"},
		{Key: "<down>", Action: ActionDown, Description: "move down"},
		{Key: "k", Action: ActionUp, Description: "move up"},
		{Key: "<up>", Action: ActionUp, Description: "move up"},
		{Key: "g", Action: ActionFirst, Description: "go to first entry"},
		{Key: "<home>", Action: ActionFirst, Description: "go to first entry"},
		{Key: "G", Action: ActionLast, Description: "go to last entry"},
		{Key: "<end>", Action: ActionLast, Description: "go to last entry"},
		{Key: "<c-d>", Action: ActionHalfPageDown, Description: "half page down"},
		{Key: "<pagedown>", Action: ActionHalfPageDown, Description: "half page down"},
		{Key: "<c-u>", Action: ActionHalfPageUp, Description: "half page up"},
		{Key: "<pageup>", Action: ActionHalfPageUp, Description: "half page up"},
		{Key: "<return>", Action: ActionToggle, Description: "toggle directory or open file"},
		{Key: "l", Action: ActionExpand, Description: "expand directory or step into it"},
		{Key: "<right>", Action: ActionExpand, Description: "expand directory or step into it"},
		{Key: "h", Action: ActionCollapse, Description: "collapse directory or go to parent"},
		{Key: "<left>", Action: ActionCollapse, Description: "collapse directory or go to parent"},
		{Key: "!", Action: ActionShellPrompt, Description: "run a shell command"},
		{Key: ":", Action: ActionCommandPrompt, Description: "run sidetree commands"},
		{Key: "<a-l>", Action: ActionChangeDir, Description: "change directory to selection"},
		{Key: ".", Action: ActionToggleHidden, Description: "toggle hidden files"},
		{Key: "y", Action: ActionYankPath, Description: "copy path to clipboard"},
		{Key: "?", Action: ActionHelp, Description: "toggle help"},
	}
}

// DefaultRegistry returns the default bindings as a registry of actions.
func DefaultRegistry() *Registry[Action] {
	r := NewRegistry[Action]()
	for _, b := range DefaultBindings() {
		r.Bind(MustParseKey(b.Key), b.Action)
	}
	return r
}
