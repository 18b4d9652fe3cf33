package command

import (
	"fmt"
	"strings"
	"unicode"
)

// Statement is a verb followed by its arguments, as written in a script.
type Statement struct {
	Verb string
	Args []string
}

// SyntaxError reports input the tokenizer could not consume.
type SyntaxError struct {
	Line      int
	Col       int
	Msg       string
	Remainder string
}

func (e *SyntaxError) Error() string {
	rem := e.Remainder
	if r := []rune(rem); len(r) > 24 {
		rem = string(r[:24]) + "..."
	}
	return fmt.Sprintf("line %d, col %d: %s near %q", e.Line, e.Col, e.Msg, rem)
}

// escapes maps the character after a backslash inside quotes to its value.
var escapes = map[rune]rune{
	'"':  '"',
	'\'': '\'',
	'\\': '\\',
	'/':  '/',
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
}

// ParseStatements splits input into statements. Statements are separated by
// newlines or semicolons, '#' starts a comment running to the end of the
// line, and tokens are bare words or single or double quoted strings.
// Empty statements are skipped.
func ParseStatements(input string) ([]Statement, error) {
	s := &scanner{src: []rune(input), line: 1, col: 1}

	var (
		stmts []Statement
		cur   []string
	)
	flush := func() {
		if len(cur) > 0 {
			stmts = append(stmts, Statement{Verb: cur[0], Args: append([]string(nil), cur[1:]...)})
			cur = cur[:0]
		}
	}

	for !s.eof() {
		r := s.peek()
		switch {
		case r == '\n' || r == ';':
			s.next()
			flush()
		case r == '#':
			for !s.eof() && s.peek() != '\n' {
				s.next()
			}
		case unicode.IsSpace(r):
			s.next()
		case r == '"' || r == '\'':
			tok, err := s.quoted()
			if err != nil {
				return nil, err
			}
			cur = append(cur, tok)
		default:
			cur = append(cur, s.word())
		}
	}
	flush()
	return stmts, nil
}

type scanner struct {
	src  []rune
	pos  int
	line int
	col  int
}

func (s *scanner) eof() bool  { return s.pos >= len(s.src) }
func (s *scanner) peek() rune { return s.src[s.pos] }

func (s *scanner) next() rune {
	r := s.src[s.pos]
	s.pos++
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	return r
}

func (s *scanner) errorf(line, col, pos int, format string, args ...any) error {
	return &SyntaxError{
		Line:      line,
		Col:       col,
		Msg:       fmt.Sprintf(format, args...),
		Remainder: string(s.src[pos:]),
	}
}

// word consumes a bare word.
func (s *scanner) word() string {
	start := s.pos
	for !s.eof() && isWordRune(s.peek()) {
		s.next()
	}
	return string(s.src[start:s.pos])
}

// quoted consumes a quoted string and returns its unescaped value.
func (s *scanner) quoted() (string, error) {
	line, col, start := s.line, s.col, s.pos
	quote := s.next()

	var b strings.Builder
	for {
		if s.eof() {
			return "", s.errorf(line, col, start, "unterminated %c-quoted string", quote)
		}
		r := s.next()
		switch r {
		case quote:
			return b.String(), nil
		case '\\':
			if s.eof() {
				return "", s.errorf(line, col, start, "unterminated %c-quoted string", quote)
			}
			escLine, escCol, escPos := s.line, s.col-1, s.pos-1
			e := s.next()
			v, ok := escapes[e]
			if !ok {
				return "", s.errorf(escLine, escCol, escPos, "unknown escape sequence \\%c", e)
			}
			b.WriteRune(v)
		default:
			b.WriteRune(r)
		}
	}
}

func isWordRune(r rune) bool {
	return !unicode.IsSpace(r) && r != '#' && r != ';'
}
