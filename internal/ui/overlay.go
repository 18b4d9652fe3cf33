// Package ui holds rendering helpers shared by the tree panel views.
package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/sidetree/internal/styles"
)

// Overlay centers box over background, dimming the background rows and
// the parts of rows the box does not cover. The result has exactly height
// rows.
func Overlay(background, box string, width, height int) string {
	bg := strings.Split(background, "\n")
	fg := strings.Split(box, "\n")

	boxW := blockWidth(fg)
	x := max((width-boxW)/2, 0)
	y := max((height-len(fg))/2, 0)

	out := make([]string, height)
	for row := range out {
		var line string
		if row < len(bg) {
			line = bg[row]
		}
		if i := row - y; i >= 0 && i < len(fg) {
			out[row] = splice(line, fg[i], x, boxW)
		} else {
			out[row] = Dim(line)
		}
	}
	return strings.Join(out, "\n")
}

// Dim strips the styling from s and draws it muted.
func Dim(s string) string {
	plain := ansi.Strip(s)
	if plain == "" {
		return ""
	}
	return styles.Muted.Render(plain)
}

// blockWidth is the widest visual width among lines.
func blockWidth(lines []string) int {
	w := 0
	for _, l := range lines {
		w = max(w, ansi.StringWidth(l))
	}
	return w
}

// splice replaces the cells [x, x+w) of bgLine with fgLine. The
// background on either side is dimmed, padded with spaces when it is
// shorter than x.
func splice(bgLine, fgLine string, x, w int) string {
	plain := ansi.Strip(bgLine)
	plainW := ansi.StringWidth(plain)

	var b strings.Builder
	left := ansi.Truncate(plain, x, "")
	b.WriteString(Dim(left))
	if pad := x - ansi.StringWidth(left); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}

	b.WriteString(fgLine)
	if pad := w - ansi.StringWidth(fgLine); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}

	if right := x + w; plainW > right {
		b.WriteString(Dim(ansi.Cut(plain, right, plainW)))
	}
	return b.String()
}
