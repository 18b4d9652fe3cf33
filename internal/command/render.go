package command

import "strings"

// Quote returns s as a single token: bare when it would be read back
// unchanged, double-quoted with escapes otherwise.
func Quote(s string) string {
	if isBare(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func isBare(s string) bool {
	if s == "" || s[0] == '"' || s[0] == '\'' {
		return false
	}
	for _, r := range s {
		if !isWordRune(r) {
			return false
		}
	}
	return true
}

// RenderStatement renders one statement on a single line.
func RenderStatement(st Statement) string {
	parts := make([]string, 0, len(st.Args)+1)
	parts = append(parts, Quote(st.Verb))
	for _, a := range st.Args {
		parts = append(parts, Quote(a))
	}
	return strings.Join(parts, " ")
}

// Render renders statements one per line. ParseStatements(Render(s))
// yields statements equal to s.
func Render(stmts []Statement) string {
	lines := make([]string, len(stmts))
	for i, st := range stmts {
		lines[i] = RenderStatement(st)
	}
	return strings.Join(lines, "\n")
}
