package ui

// scrollbarColumn returns one cell per content row for the right edge of
// the row pane, or nil when the bar is hidden: disabled in config, the
// pane too small, or everything already on screen. The bar spans all but
// the last content row, arrow caps at both ends, with a proportional
// thumb between them.
func (m *Model) scrollbarColumn(contentRows int) []string {
	if !m.Cfg.Scrollbar() {
		return nil
	}
	total := m.State.VisibleLen()
	span := contentRows - 1
	if total <= contentRows || span < 3 {
		return nil
	}

	cells := make([]string, contentRows)
	for i := range cells {
		cells[i] = " "
	}
	cells[0] = "↑"
	cells[span-1] = "↓"

	track := span - 2
	thumbLen := track * contentRows / total
	if thumbLen < 1 {
		thumbLen = 1
	}
	maxStart := track - thumbLen
	start := 0
	if maxTop := total - contentRows; maxTop > 0 {
		start = m.State.Top() * maxStart / maxTop
		if start > maxStart {
			start = maxStart
		}
	}
	for i := 0; i < track; i++ {
		glyph := "│"
		if i >= start && i < start+thumbLen {
			glyph = "█"
		}
		cells[1+i] = glyph
	}
	return cells
}
