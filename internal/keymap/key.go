package keymap

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Modifier is the modifier held together with a character key.
type Modifier int

const (
	ModNone Modifier = iota
	ModAlt
	ModCtrl
)

// KeyCode identifies a key. KeyChar keys carry their character in Key.Rune.
type KeyCode int

const (
	KeyChar KeyCode = iota
	KeyEsc
	KeyBackTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyInsert
	KeyPageUp
	KeyPageDown
)

// Key is a single key press. Keys compare by value and are used as map keys.
type Key struct {
	Mod  Modifier
	Code KeyCode
	Rune rune
}

// Char returns an unmodified character key.
func Char(r rune) Key { return Key{Code: KeyChar, Rune: r} }

// Alt returns an alt-modified character key.
func Alt(r rune) Key { return Key{Mod: ModAlt, Code: KeyChar, Rune: r} }

// Ctrl returns a ctrl-modified character key.
func Ctrl(r rune) Key { return Key{Mod: ModCtrl, Code: KeyChar, Rune: r} }

// Named returns a non-character key such as KeyEsc.
func Named(code KeyCode) Key { return Key{Code: code} }

// namedKeys maps the names accepted inside <...> to key codes.
var namedKeys = map[string]KeyCode{
	"esc":       KeyEsc,
	"backtab":   KeyBackTab,
	"backspace": KeyBackspace,
	"del":       KeyDelete,
	"home":      KeyHome,
	"end":       KeyEnd,
	"up":        KeyUp,
	"down":      KeyDown,
	"left":      KeyLeft,
	"right":     KeyRight,
	"insert":    KeyInsert,
	"pageup":    KeyPageUp,
	"pagedown":  KeyPageDown,
}

// charAliases are names for characters that are awkward to write literally.
var charAliases = map[string]rune{
	"return":    '\n',
	"ret":       '\n',
	"semicolon": ';',
	"gt":        '>',
	"lt":        '<',
	"percent":   '%',
	"space":     ' ',
	"tab":       '\t',
}

// aliasNames is the preferred spelling used when rendering a key.
var aliasNames = map[rune]string{
	'\n': "return",
	';':  "semicolon",
	'>':  "gt",
	'<':  "lt",
	'%':  "percent",
	' ':  "space",
	'\t': "tab",
}

var codeNames = func() map[KeyCode]string {
	m := make(map[KeyCode]string, len(namedKeys))
	for name, code := range namedKeys {
		m[code] = name
	}
	return m
}()

// String renders the key in the syntax accepted by ParseKey.
func (k Key) String() string {
	if k.Code != KeyChar {
		if name, ok := codeNames[k.Code]; ok {
			return "<" + name + ">"
		}
		return fmt.Sprintf("<key%d>", int(k.Code))
	}

	name, aliased := aliasNames[k.Rune]
	if !aliased {
		name = string(k.Rune)
	}
	switch k.Mod {
	case ModAlt:
		return "<a-" + name + ">"
	case ModCtrl:
		return "<c-" + name + ">"
	}
	if aliased {
		return "<" + name + ">"
	}
	return name
}

// FromTea converts a bubbletea key message. The second result is false for
// keys that have no Key equivalent (pasted runs, function keys, ...).
func FromTea(msg tea.KeyMsg) (Key, bool) {
	var k Key
	switch {
	case msg.Type == tea.KeyRunes:
		if len(msg.Runes) != 1 || msg.Paste {
			return Key{}, false
		}
		k = Char(msg.Runes[0])
	case msg.Type == tea.KeySpace:
		k = Char(' ')
	case msg.Type == tea.KeyEnter:
		k = Char('\n')
	case msg.Type == tea.KeyTab:
		k = Char('\t')
	case msg.Type == tea.KeyShiftTab:
		k = Named(KeyBackTab)
	case msg.Type == tea.KeyBackspace:
		k = Named(KeyBackspace)
	case msg.Type == tea.KeyDelete:
		k = Named(KeyDelete)
	case msg.Type == tea.KeyEsc:
		k = Named(KeyEsc)
	case msg.Type == tea.KeyHome:
		k = Named(KeyHome)
	case msg.Type == tea.KeyEnd:
		k = Named(KeyEnd)
	case msg.Type == tea.KeyUp:
		k = Named(KeyUp)
	case msg.Type == tea.KeyDown:
		k = Named(KeyDown)
	case msg.Type == tea.KeyLeft:
		k = Named(KeyLeft)
	case msg.Type == tea.KeyRight:
		k = Named(KeyRight)
	case msg.Type == tea.KeyInsert:
		k = Named(KeyInsert)
	case msg.Type == tea.KeyPgUp:
		k = Named(KeyPageUp)
	case msg.Type == tea.KeyPgDown:
		k = Named(KeyPageDown)
	case msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ:
		return Ctrl('a' + rune(msg.Type-tea.KeyCtrlA)), true
	default:
		return Key{}, false
	}

	if msg.Alt {
		if k.Code != KeyChar {
			return Key{}, false
		}
		k.Mod = ModAlt
	}
	return k, true
}
