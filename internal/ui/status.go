package ui

import (
	"fmt"

	"charm.land/lipgloss/v2"
)

// renderBottomBar draws the breadcrumb pane and the status pane side by
// side, roughly 70/30.
func (m *Model) renderBottomBar() string {
	crumbWidth := m.WinWidth * 7 / 10
	if crumbWidth < 4 {
		crumbWidth = 4
	}
	statusWidth := m.WinWidth - crumbWidth
	if statusWidth < 4 {
		statusWidth = 4
	}

	crumb := truncateHead(m.State.SelectedRow().Breadcrumb, crumbWidth-2)
	left := m.renderPanel("", paint(crumb, m.Theme.Breadcrumb), crumbWidth, bottomBarHeight)
	right := m.renderPanel("", paint(m.statusText(), m.Theme.Status), statusWidth, bottomBarHeight)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// statusText picks the status pane content for the current mode: the
// position within the visible rows, or search progress. A transient
// notice (yank feedback, expression errors) wins over either.
func (m *Model) statusText() string {
	if m.Notice != "" {
		return m.Notice
	}
	switch m.Mode {
	case ModeSearchInput:
		if m.State.SearchDeferred() {
			return "enter to search"
		}
		return fmt.Sprintf("%d matches", m.State.MatchCount())
	case ModeSearchBrowse:
		if pos := m.State.MatchPosition(); pos > 0 {
			return fmt.Sprintf("match %d/%d", pos, m.State.MatchCount())
		}
		return fmt.Sprintf("%d matches", m.State.MatchCount())
	default:
		pos := m.State.SelectedIndex() + 1
		total := m.State.VisibleLen()
		pct := 0
		if total > 0 {
			pct = pos * 100 / total
		}
		return fmt.Sprintf("%d/%d (%d%%)", pos, total, pct)
	}
}
