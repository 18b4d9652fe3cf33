package keymap

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ParseError reports a key spec that could not be parsed.
type ParseError struct {
	Input  string
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid key %q at offset %d: %s", e.Input, e.Offset, e.Msg)
}

// ParseKey parses a key spec. Accepted forms are a single literal
// character ("j"), a bracketed character with an optional modifier
// ("<a-j>", "<c-d>", "<space>") and a bracketed named key ("<esc>").
// The whole input must be consumed.
func ParseKey(spec string) (Key, error) {
	fail := func(offset int, format string, args ...any) (Key, error) {
		return Key{}, &ParseError{Input: spec, Offset: offset, Msg: fmt.Sprintf(format, args...)}
	}

	if spec == "" {
		return fail(0, "empty key")
	}

	if spec[0] != '<' {
		if r, ok := charKey(spec); ok && spec != ">" {
			return Char(r), nil
		}
		if utf8.RuneCountInString(spec) > 1 {
			return fail(1, "unexpected trailing characters %q", spec[firstRuneLen(spec):])
		}
		if spec == ">" {
			return fail(0, "'>' must be written as <gt>")
		}
		return fail(0, "invalid character")
	}

	end := strings.IndexByte(spec, '>')
	if end < 0 {
		return fail(len(spec), "missing closing '>'")
	}
	if end != len(spec)-1 {
		return fail(end+1, "unexpected trailing characters %q", spec[end+1:])
	}
	body := spec[1:end]
	if body == "" {
		return fail(1, "empty key name")
	}

	mod, rest := ModNone, body
	switch {
	case len(body) > 2 && strings.HasPrefix(body, "a-"):
		mod, rest = ModAlt, body[2:]
	case len(body) > 2 && strings.HasPrefix(body, "c-"):
		mod, rest = ModCtrl, body[2:]
	}
	if r, ok := charKey(rest); ok {
		return Key{Mod: mod, Code: KeyChar, Rune: r}, nil
	}

	if code, ok := namedKeys[body]; ok {
		return Named(code), nil
	}
	if mod != ModNone {
		return fail(3, "unknown key name %q", rest)
	}
	return fail(1, "unknown key name %q", body)
}

// MustParseKey is like ParseKey but panics on error. It is meant for
// built-in tables only.
func MustParseKey(spec string) Key {
	k, err := ParseKey(spec)
	if err != nil {
		panic(err)
	}
	return k
}

// charKey resolves a character alias or a single literal character.
func charKey(s string) (rune, bool) {
	if r, ok := charAliases[s]; ok {
		return r, true
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, false
	}
	return r, true
}

func firstRuneLen(s string) int {
	_, size := utf8.DecodeRuneInString(s)
	return size
}
