package app

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/marcus/sidetree/internal/styles"
	"github.com/marcus/sidetree/internal/tree"
	"github.com/marcus/sidetree/internal/ui"
)

// viewCache holds the last rendered frame keyed by a digest of its inputs.
type viewCache struct {
	sum   uint64
	frame string
}

// View renders the tree and the status line, with the help box on top
// while it is open.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	frame := m.frame()
	if m.help.visible {
		return ui.Overlay(frame, m.help.View(), m.width, m.height)
	}
	return frame
}

// frame renders the tree window and the status line, reusing the last
// frame when nothing it depends on changed.
func (m Model) frame() string {
	height := m.treeHeight()
	start, end := m.exec.Tree.Window(height)
	lines := m.exec.Tree.Lines()[start:end]
	status := m.exec.Status.View(m.width)

	sum := m.frameDigest(lines, start, status)
	if sum == m.cache.sum && m.cache.frame != "" {
		return m.cache.frame
	}

	rows := make([]string, 0, height+1)
	selected := m.exec.Tree.SelectedIndex()
	for i, line := range lines {
		rows = append(rows, m.renderLine(line, start+i == selected))
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	rows = append(rows, status)

	frame := strings.Join(rows, "\n")
	m.cache.sum, m.cache.frame = sum, frame
	return frame
}

func (m Model) frameDigest(lines []tree.DisplayLine, start int, status string) uint64 {
	d := xxhash.New()
	opts := m.exec.Opts
	_, _ = d.WriteString(strconv.Itoa(m.width) + "x" + strconv.Itoa(m.height))
	_, _ = d.WriteString("|" + strconv.Itoa(start) + "|" + strconv.Itoa(m.exec.Tree.SelectedIndex()))
	_, _ = d.WriteString("|" + opts.IconStyle.String() + "|" + opts.DirNameStyle.String())
	_, _ = d.WriteString("|" + opts.FileNameStyle.String() + "|" + opts.HighlightStyle.String())
	for _, l := range lines {
		_, _ = d.WriteString("\x00" + l.Path + "\x00" + l.Label)
	}
	_, _ = d.WriteString("\x00" + status)
	return d.Sum64()
}

// renderLine draws one tree row. The selected row is drawn as plain text
// under the highlight style, padded to the full width.
func (m Model) renderLine(line tree.DisplayLine, selected bool) string {
	opts := m.exec.Opts
	indent := strings.Repeat("  ", line.Depth)

	nameStyle := opts.FileNameStyle.Lipgloss()
	if line.IsDir {
		nameStyle = opts.DirNameStyle.Lipgloss()
	}
	if line.IsSymlink {
		nameStyle = nameStyle.Inherit(styles.SymlinkName)
	}

	if selected {
		plain := indent + line.Label
		plain = runewidth.Truncate(plain, m.width, "…")
		if pad := m.width - runewidth.StringWidth(plain); pad > 0 {
			plain += strings.Repeat(" ", pad)
		}
		return opts.HighlightStyle.Apply(nameStyle).Render(plain)
	}

	var b strings.Builder
	b.WriteString(indent)
	b.WriteString(line.Marker())
	if line.Icon != "" {
		b.WriteString(opts.IconStyle.Lipgloss().Render(line.Icon))
	}
	b.WriteString(nameStyle.Render(line.Name))
	return ansi.Truncate(b.String(), m.width, "…")
}

// helpFrame wraps overlay content in the help border.
func helpFrame(content string, width, height int) string {
	return styles.HelpFrame.
		Width(max(width-2, 0)).
		Height(max(height-2, 0)).
		Render(lipgloss.NewStyle().MaxWidth(max(width-2, 0)).Render(content))
}
