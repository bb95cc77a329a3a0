package tui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/tinytelemetry/pokerclock/internal/board"
)

// segment is one panel's slice of a screen line.
type segment struct {
	x, w int
	text string
}

// View renders the board grid with the status line underneath.
func (m *BoardModel) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if m.showHelp {
		return m.renderHelpModal(width, height)
	}

	boardH := height - 1
	var body string
	switch {
	case boardH <= 0:
		body = ""
	case m.gridErr != nil:
		body = lipgloss.Place(width, boardH, lipgloss.Center, lipgloss.Center,
			m.skin().Dim.Render(ansi.Truncate("layout error: "+m.gridErr.Error(), width, "…")))
	case len(m.board.Panels) == 0:
		body = lipgloss.Place(width, boardH, lipgloss.Center, lipgloss.Center,
			m.skin().Dim.Render("no panels to show"))
	default:
		body = m.renderGrid(width, boardH)
	}

	status := m.renderStatusLine(width)
	if boardH <= 0 {
		return status
	}
	return body + "\n" + status
}

// renderGrid lays every panel out on the grid and stitches their lines
// together row by row.
func (m *BoardModel) renderGrid(width, height int) string {
	ctx := m.viewContext()
	rects := board.Geometry(m.grid, width, height, m.cfg.Gap)

	rows := make([][]segment, height)
	for _, spec := range m.board.Panels {
		p, ok := m.panels[spec.Key]
		r := rects[spec.Key]
		if !ok || r.Empty() {
			continue
		}
		for i, line := range p.render(ctx, r.W, r.H) {
			y := r.Y + i
			if y >= height {
				break
			}
			rows[y] = append(rows[y], segment{x: r.X, w: r.W, text: line})
		}
	}

	lines := make([]string, height)
	for y, segs := range rows {
		lines[y] = stitch(segs, width)
	}
	return strings.Join(lines, "\n")
}

// stitch joins non-overlapping segments into one line of the given width.
func stitch(segs []segment, width int) string {
	sort.Slice(segs, func(i, j int) bool { return segs[i].x < segs[j].x })

	var b strings.Builder
	cursor := 0
	for _, s := range segs {
		if s.x < cursor || s.x >= width {
			continue
		}
		b.WriteString(strings.Repeat(" ", s.x-cursor))
		w := min(s.w, width-s.x)
		text := s.text
		if ansi.StringWidth(text) > w {
			text = ansi.Truncate(text, w, "")
		}
		b.WriteString(text)
		if pad := w - ansi.StringWidth(text); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
		cursor = s.x + w
	}
	if cursor < width {
		b.WriteString(strings.Repeat(" ", width-cursor))
	}
	return b.String()
}
