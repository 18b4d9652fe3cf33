package styles

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ColorKind distinguishes the ways a color can be written.
type ColorKind int

const (
	ColorUnset ColorKind = iota
	ColorReset
	ColorNamed
	ColorRGB
	ColorIndexed
)

// Color is a terminal color as written in a style string.
type Color struct {
	Kind    ColorKind
	Name    string // ColorNamed
	R, G, B uint8  // ColorRGB
	Index   uint8  // ColorIndexed
}

// ansiNames maps the named colors to their ANSI palette index.
var ansiNames = map[string]int{
	"black":        0,
	"red":          1,
	"green":        2,
	"yellow":       3,
	"blue":         4,
	"magenta":      5,
	"cyan":         6,
	"gray":         7,
	"darkgray":     8,
	"lightred":     9,
	"lightgreen":   10,
	"lightyellow":  11,
	"lightblue":    12,
	"lightmagenta": 13,
	"lightcyan":    14,
	"white":        15,
}

// String renders the color in style syntax.
func (c Color) String() string {
	switch c.Kind {
	case ColorReset:
		return "reset"
	case ColorNamed:
		return c.Name
	case ColorRGB:
		return fmt.Sprintf("rgb:%02X%02X%02X", c.R, c.G, c.B)
	case ColorIndexed:
		return "color" + strconv.Itoa(int(c.Index))
	}
	return ""
}

// Terminal converts the color for lipgloss. It reports false when unset.
func (c Color) Terminal() (lipgloss.TerminalColor, bool) {
	switch c.Kind {
	case ColorReset:
		return lipgloss.NoColor{}, true
	case ColorNamed:
		return lipgloss.Color(strconv.Itoa(ansiNames[c.Name])), true
	case ColorRGB:
		return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)), true
	case ColorIndexed:
		return lipgloss.Color(strconv.Itoa(int(c.Index))), true
	}
	return nil, false
}

// Modifier is a set of text attributes.
type Modifier uint8

const (
	ModBold Modifier = 1 << iota
	ModDim
	ModItalic
	ModUnderline
	ModBlink
	ModReverse
)

// modifierLetters is in rendering order.
var modifierLetters = []struct {
	letter byte
	mod    Modifier
}{
	{'b', ModBold},
	{'d', ModDim},
	{'i', ModItalic},
	{'u', ModUnderline},
	{'B', ModBlink},
	{'r', ModReverse},
}

func (m Modifier) String() string {
	var b strings.Builder
	for _, ml := range modifierLetters {
		if m&ml.mod != 0 {
			b.WriteByte(ml.letter)
		}
	}
	return b.String()
}

// Style is a parsed style string: an optional foreground and background
// and sets of attributes to add and remove.
type Style struct {
	Fg, Bg Color
	Add    Modifier
	Sub    Modifier
}

// String renders the style canonically, e.g. "color1,rgb:0011FF+b-iu".
func (s Style) String() string {
	var b strings.Builder
	b.WriteString(s.Fg.String())
	if s.Bg.Kind != ColorUnset {
		b.WriteByte(',')
		b.WriteString(s.Bg.String())
	}
	if s.Add != 0 {
		b.WriteByte('+')
		b.WriteString(s.Add.String())
	}
	if s.Sub != 0 {
		b.WriteByte('-')
		b.WriteString(s.Sub.String())
	}
	return b.String()
}

// Apply layers the style over base.
func (s Style) Apply(base lipgloss.Style) lipgloss.Style {
	if c, ok := s.Fg.Terminal(); ok {
		base = base.Foreground(c)
	}
	if c, ok := s.Bg.Terminal(); ok {
		base = base.Background(c)
	}
	for _, set := range []struct {
		mods Modifier
		on   bool
	}{{s.Add, true}, {s.Sub, false}} {
		if set.mods&ModBold != 0 {
			base = base.Bold(set.on)
		}
		if set.mods&ModDim != 0 {
			base = base.Faint(set.on)
		}
		if set.mods&ModItalic != 0 {
			base = base.Italic(set.on)
		}
		if set.mods&ModUnderline != 0 {
			base = base.Underline(set.on)
		}
		if set.mods&ModBlink != 0 {
			base = base.Blink(set.on)
		}
		if set.mods&ModReverse != 0 {
			base = base.Reverse(set.on)
		}
	}
	return base
}

// Lipgloss returns the style as a fresh lipgloss style.
func (s Style) Lipgloss() lipgloss.Style {
	return s.Apply(lipgloss.NewStyle())
}

// MustParse is like Parse but panics on error. It is meant for defaults.
func MustParse(s string) Style {
	st, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return st
}

// Parse parses a style string of the form [fg][,bg][+mods][-mods]. Colors
// are a name such as "lightblue", "rgb:RRGGBB" or "colorN"; modifiers are
// letters from "bdiuBr".
func Parse(s string) (Style, error) {
	p := &styleParser{src: s}
	var st Style

	fg, err := p.color()
	if err != nil {
		return Style{}, err
	}
	st.Fg = fg

	if p.accept(',') {
		bg, err := p.color()
		if err != nil {
			return Style{}, err
		}
		if bg.Kind == ColorUnset {
			return Style{}, p.errorf("expected color after ','")
		}
		st.Bg = bg
	}
	if p.accept('+') {
		if st.Add, err = p.modifiers(); err != nil {
			return Style{}, err
		}
	}
	if p.accept('-') {
		if st.Sub, err = p.modifiers(); err != nil {
			return Style{}, err
		}
		st.Add &^= st.Sub
	}
	if p.pos < len(p.src) {
		return Style{}, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return st, nil
}

// ParseColor parses a single color.
func ParseColor(s string) (Color, error) {
	p := &styleParser{src: s}
	c, err := p.color()
	if err != nil {
		return Color{}, err
	}
	if c.Kind == ColorUnset {
		return Color{}, p.errorf("expected color")
	}
	if p.pos < len(p.src) {
		return Color{}, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return c, nil
}

type styleParser struct {
	src string
	pos int
}

func (p *styleParser) errorf(format string, args ...any) error {
	return fmt.Errorf("style %q at offset %d: %s", p.src, p.pos, fmt.Sprintf(format, args...))
}

func (p *styleParser) accept(b byte) bool {
	if p.pos < len(p.src) && p.src[p.pos] == b {
		p.pos++
		return true
	}
	return false
}

// color parses a color if one starts at the current position. It returns
// an unset color without consuming input when none does.
func (p *styleParser) color() (Color, error) {
	rest := p.src[p.pos:]
	switch {
	case strings.HasPrefix(rest, "rgb:"):
		hex := rest[4:]
		if len(hex) < 6 || !isHex(hex[:6]) {
			return Color{}, p.errorf("rgb: needs six hex digits")
		}
		v, _ := strconv.ParseUint(hex[:6], 16, 32)
		p.pos += 10
		return Color{Kind: ColorRGB, R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil

	case strings.HasPrefix(rest, "color") && len(rest) > 5 && isDigit(rest[5]):
		n := 5
		for n < len(rest) && isDigit(rest[n]) {
			n++
		}
		idx, err := strconv.ParseUint(rest[5:n], 10, 8)
		if err != nil {
			return Color{}, p.errorf("color index %s out of range", rest[5:n])
		}
		p.pos += n
		return Color{Kind: ColorIndexed, Index: uint8(idx)}, nil
	}

	n := 0
	for n < len(rest) && isLetter(rest[n]) {
		n++
	}
	if n == 0 {
		return Color{}, nil
	}
	name := rest[:n]
	if name == "reset" {
		p.pos += n
		return Color{Kind: ColorReset}, nil
	}
	if _, ok := ansiNames[name]; !ok {
		return Color{}, p.errorf("unknown color %q", name)
	}
	p.pos += n
	return Color{Kind: ColorNamed, Name: name}, nil
}

func (p *styleParser) modifiers() (Modifier, error) {
	var m Modifier
	start := p.pos
	for p.pos < len(p.src) {
		found := false
		for _, ml := range modifierLetters {
			if p.src[p.pos] == ml.letter {
				m |= ml.mod
				found = true
				break
			}
		}
		if !found {
			break
		}
		p.pos++
	}
	if p.pos == start {
		return 0, p.errorf("expected modifiers")
	}
	return m, nil
}

func isHex(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !isDigit(c) && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
