package view

// scrollTo maintains the scroll window invariant around the given
// visible-sequence position: the selection always lies inside
// [top, bottomIndex). When the selection moved above the window the window
// jumps up to it; when it moved below, the window shifts down just far
// enough that the selection becomes the last on-screen row.
func (s *State) scrollTo(selIdx int) {
	if maxTop := len(s.visible) - 1; s.top > maxTop {
		s.top = max(0, maxTop)
	}
	if selIdx < s.top {
		s.top = selIdx
	} else if selIdx >= s.bottomIndex() {
		s.top = max(0, selIdx-s.height+2)
	}
}

// bottomIndex is the exclusive end of the render window.
func (s *State) bottomIndex() int {
	return min(s.top+s.height-1, len(s.visible))
}

// Top returns the visible-sequence index of the first on-screen row.
func (s *State) Top() int { return s.top }

// Window returns the rows of the current render window, in display order.
// This slice is the only part of the document handed to the renderer, so
// per-frame cost stays bounded by the viewport, not the document.
func (s *State) Window() []*Row {
	bottom := s.bottomIndex()
	if s.top >= bottom {
		return nil
	}
	rows := make([]*Row, 0, bottom-s.top)
	for idx := s.top; idx < bottom; idx++ {
		rows = append(rows, &s.rows[s.visible[idx]])
	}
	return rows
}
