package ui

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/hjens/json-explorer/pkg/view"
)

func (m *Model) View() tea.View {
	var sections []string
	if m.inputBarVisible() {
		sections = append(sections, m.renderInputBar())
	}
	if m.Mode == ModeHelp {
		sections = append(sections, m.renderHelp())
	} else {
		sections = append(sections, m.renderList())
	}
	sections = append(sections, m.renderBottomBar())

	v := tea.NewView(strings.Join(sections, "\n"))
	v.AltScreen = true
	return v
}

// renderList draws the row pane: a title border, one line per window row
// and the scrollbar column on the right edge.
func (m *Model) renderList() string {
	width := m.WinWidth
	contentRows := m.listHeight() - 1

	lines := make([]string, 0, contentRows+1)
	lines = append(lines, m.renderListTitle(width))

	bar := m.scrollbarColumn(contentRows)
	rowWidth := width
	if bar != nil {
		rowWidth = width - 1
	}

	window := m.State.Window()
	selID := m.State.SelectedID()
	for i := 0; i < contentRows; i++ {
		var line string
		if i < len(window) {
			r := window[i]
			line = m.renderRow(r, r.ID == selID, rowWidth)
		} else {
			line = strings.Repeat(" ", rowWidth)
		}
		if bar != nil {
			line += bar[i]
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// renderListTitle draws the pane's top border with the document title
// over it.
func (m *Model) renderListTitle(width int) string {
	title := m.title()
	if runewidth.StringWidth(title) > width {
		title = truncateHead(title, width)
	}
	fill := width - runewidth.StringWidth(title)
	if fill <= 0 {
		return title
	}
	return title + paint(strings.Repeat("─", fill), m.Theme.Border)
}

// segment is one run of row text sharing a style.
type segment struct {
	text string
	fg   color.Color
	bg   color.Color
}

// renderRow paints one document row. The selected row gets the selection
// background and bold across its full width; a search-hit background on
// the name or value survives only while the row is not selected.
func (m *Model) renderRow(r *view.Row, selected bool, width int) string {
	var b strings.Builder
	for _, seg := range m.rowSegments(r) {
		bg := seg.bg
		if selected {
			bg = m.Theme.SelectionBG
		}
		if seg.fg == nil && bg == nil && !selected {
			b.WriteString(seg.text)
			continue
		}
		st := lipgloss.NewStyle()
		if seg.fg != nil {
			st = st.Foreground(seg.fg)
		}
		if bg != nil {
			st = st.Background(bg)
		}
		if selected {
			st = st.Bold(true)
		}
		b.WriteString(st.Render(seg.text))
	}

	line := clampANSITextWidth(b.String(), width)
	pad := width - ansiVisibleWidth(line)
	if pad <= 0 {
		return line
	}
	if !selected {
		return line + strings.Repeat(" ", pad)
	}
	st := lipgloss.NewStyle().Bold(true)
	if m.Theme.SelectionBG != nil {
		st = st.Background(m.Theme.SelectionBG)
	}
	return line + st.Render(strings.Repeat(" ", pad))
}

// rowSegments builds the styled pieces of one row: line number, indent
// guides, name and value.
func (m *Model) rowSegments(r *view.Row) []segment {
	segs := make([]segment, 0, r.Depth+5)

	if m.Cfg.LineNumbers() {
		segs = append(segs, segment{text: fmt.Sprintf("%8d ", r.ID), fg: m.Theme.LineNumber})
	}

	guides := m.Cfg.IndentGuides()
	for i := 0; i < r.Depth; i++ {
		switch {
		case i < 1:
			segs = append(segs, segment{text: "   "})
		case !guides:
			segs = append(segs, segment{text: "    "})
		case i == r.SelectionLevel:
			segs = append(segs, segment{text: "│   ", fg: m.Theme.Selection})
		default:
			segs = append(segs, segment{text: "│   ", fg: m.Theme.Indent})
		}
	}

	if r.HasName {
		var bg color.Color
		if r.NameMatch {
			bg = m.Theme.Match
		}
		segs = append(segs, segment{text: r.Name + ": ", fg: m.Theme.Name, bg: bg})
	}

	var valueBG color.Color
	if r.ValueMatch {
		valueBG = m.Theme.Match
	}

	switch r.Kind {
	case view.RowNumber:
		segs = append(segs, segment{text: r.ValueText, fg: m.Theme.Number, bg: valueBG})
	case view.RowString:
		segs = append(segs, segment{text: `"` + r.ValueText + `"`, fg: m.Theme.String, bg: valueBG})
	case view.RowBool:
		segs = append(segs, segment{text: r.ValueText, fg: m.Theme.Bool, bg: valueBG})
	case view.RowNull:
		segs = append(segs, segment{text: "null", fg: m.Theme.Null})
	case view.RowArray:
		segs = m.appendContainer(segs, r, "[", "]")
	case view.RowArrayEnd:
		segs = append(segs, segment{text: "]"})
	case view.RowObject:
		segs = m.appendContainer(segs, r, "{", "}")
	case view.RowObjectEnd:
		segs = append(segs, segment{text: "}"})
	}
	return segs
}

// appendContainer renders a container's opening bracket; a collapsed one
// carries its child count inline in place of the hidden rows.
func (m *Model) appendContainer(segs []segment, r *view.Row, open, closing string) []segment {
	segs = append(segs, segment{text: open})
	if r.Collapsed {
		segs = append(segs,
			segment{text: strconv.Itoa(r.ChildCount) + " items", fg: m.Theme.Count},
			segment{text: closing},
		)
	}
	return segs
}

// renderInputBar draws the search or expression box above the row pane.
func (m *Model) renderInputBar() string {
	title := "Search:"
	content := m.SearchInput.View()
	if m.Mode == ModeExpr {
		title = "Expression:"
		content = m.ExprInput.View()
	}
	return m.renderPanel(title, content, m.WinWidth, inputBarHeight)
}

// renderPanel draws a bordered box with an optional title embedded in the
// top border. Content lines are clamped and padded to the inner width.
func (m *Model) renderPanel(title, content string, width, height int) string {
	if width < 4 {
		width = 4
	}
	if height < 2 {
		height = 2
	}
	b := lipgloss.NormalBorder()
	inner := width - 2
	innerRows := height - 2

	title = clampANSITextWidth(title, inner)
	fill := inner - ansiVisibleWidth(title)
	top := b.TopLeft + title + strings.Repeat(b.Top, fill) + b.TopRight

	lines := strings.Split(content, "\n")
	out := make([]string, 0, height)
	out = append(out, paint(top, m.Theme.Border))
	left := paint(b.Left, m.Theme.Border)
	right := paint(b.Right, m.Theme.Border)
	for i := 0; i < innerRows; i++ {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		line = padANSIToWidth(clampANSITextWidth(line, inner), inner)
		out = append(out, left+line+right)
	}
	bottom := b.BottomLeft + strings.Repeat(b.Bottom, inner) + b.BottomRight
	out = append(out, paint(bottom, m.Theme.Border))
	return strings.Join(out, "\n")
}
