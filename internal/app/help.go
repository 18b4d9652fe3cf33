package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/marcus/sidetree/internal/command"
	"github.com/marcus/sidetree/internal/keymap"
)

// helpView is the scrollable key and option reference shown with '?'.
type helpView struct {
	visible  bool
	markdown string
	vp       viewport.Model
}

func (h *helpView) open(exec *Executor, width, height int) {
	h.visible = true
	h.markdown = helpMarkdown(exec)
	h.resize(width, height)
}

func (h *helpView) close() {
	h.visible = false
}

// resize fits the box inside the panel, leaving a margin of dimmed tree
// around it when there is room.
func (h *helpView) resize(width, height int) {
	innerW, innerH := max(width-2, 1), max(height-2, 1)
	if width >= 40 {
		innerW = width - 6
	}
	if height >= 12 {
		innerH = height - 4
	}
	offset := h.vp.YOffset
	h.vp = viewport.New(innerW, innerH)
	h.vp.SetContent(renderMarkdown(h.markdown, innerW))
	h.vp.SetYOffset(offset)
}

func (h *helpView) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "esc", "?":
		h.close()
		return nil
	case "g":
		h.vp.GotoTop()
		return nil
	case "G":
		h.vp.GotoBottom()
		return nil
	}
	var cmd tea.Cmd
	h.vp, cmd = h.vp.Update(msg)
	return cmd
}

func (h *helpView) handleMouse(msg tea.MouseMsg) tea.Cmd {
	var cmd tea.Cmd
	h.vp, cmd = h.vp.Update(msg)
	return cmd
}

func (h *helpView) View() string {
	return helpFrame(h.vp.View(), h.vp.Width+2, h.vp.Height+2)
}

// renderMarkdown renders md for the terminal, falling back to the source
// when rendering fails.
func renderMarkdown(md string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(width-2, 20)),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func helpMarkdown(exec *Executor) string {
	var b strings.Builder
	b.WriteString("# sidetree\n\n")

	b.WriteString("## Keys\n\n| key | action |\n|---|---|\n")
	for _, binding := range keymap.DefaultBindings() {
		fmt.Fprintf(&b, "| `%s` | %s |\n", tableCell(binding.Key), binding.Description)
	}

	if exec.Keys.Len() > 0 {
		b.WriteString("\n## Mappings\n\n| key | command |\n|---|---|\n")
		for _, k := range exec.Keys.Keys() {
			c, _ := exec.Keys.Lookup(k)
			fmt.Fprintf(&b, "| `%s` | `%s` |\n", tableCell(k.String()), tableCell(command.Describe(c)))
		}
	}

	b.WriteString("\n## Commands\n\n")
	b.WriteString(strings.Join(quoteAll(command.Verbs), ", "))
	b.WriteString("\n\n## Options\n\n```\n")
	b.WriteString(exec.Opts.Script())
	b.WriteString("\n```\n")
	return b.String()
}

func tableCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func quoteAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = "`" + w + "`"
	}
	return out
}
