package view

// MoveRelative moves the selection by delta positions in the visible
// sequence. Negative delta moves up. The target clamps to the sequence
// bounds, so any step size is safe.
func (s *State) MoveRelative(delta int) {
	s.selectIndex(s.selectedIndex() + delta)
}

// MoveToSibling moves to the next (dir > 0) or previous (dir < 0) visible
// row at the same depth as the current row. No-op when no such row exists
// in that direction.
func (s *State) MoveToSibling(dir int) {
	if dir == 0 {
		return
	}
	step := 1
	if dir < 0 {
		step = -1
	}
	depth := s.rows[s.selected].Depth
	for idx := s.selectedIndex() + step; idx >= 0 && idx < len(s.visible); idx += step {
		if s.rows[s.visible[idx]].Depth == depth {
			s.selectIndex(idx)
			return
		}
	}
}

// MoveToTop selects the first visible row.
func (s *State) MoveToTop() { s.selectIndex(0) }

// MoveToBottom selects the last visible row.
func (s *State) MoveToBottom() { s.selectIndex(len(s.visible) - 1) }

// MoveToScreenTop selects the first row of the render window.
func (s *State) MoveToScreenTop() { s.selectIndex(s.top) }

// MoveToScreenMiddle selects the middle row of the render window.
func (s *State) MoveToScreenMiddle() {
	bottom := s.bottomIndex()
	s.selectIndex(s.top + (bottom-s.top)/2)
}

// MoveToScreenBottom selects the last row of the render window.
func (s *State) MoveToScreenBottom() { s.selectIndex(s.bottomIndex() - 1) }

// SelectID moves the selection to the row with the given ID, expanding
// collapsed ancestors when the row is hidden inside one.
func (s *State) SelectID(id int) {
	if id < 0 || id >= len(s.rows) {
		return
	}
	s.expandAncestors(id)
	s.selected = id
	s.finishMove(s.selectedIndex())
}

// ToggleCollapse flips the collapse flag of the selected container. When
// the selection is not a container row, the nearest container row above it
// is flipped instead, so collapse works while focus is on a leaf inside.
// Afterwards the selection stays on the same row when it survived, and
// falls back to its nearest visible ancestor when it got hidden.
func (s *State) ToggleCollapse() {
	target := s.enclosingContainer(s.selected)
	if target < 0 {
		return
	}
	s.rows[target].Collapsed = !s.rows[target].Collapsed
	s.reanchor()
}

// CollapseLevel collapses every container at the same depth as the
// selected container (or the nearest container row above a leaf selection).
func (s *State) CollapseLevel() {
	target := s.enclosingContainer(s.selected)
	if target < 0 {
		return
	}
	depth := s.rows[target].Depth
	for i := range s.rows {
		if s.rows[i].Kind.IsOpen() && s.rows[i].Depth == depth {
			s.rows[i].Collapsed = true
		}
	}
	s.reanchor()
}

// UncollapseAll clears every collapse flag. The selection keeps its row.
func (s *State) UncollapseAll() {
	for i := range s.rows {
		s.rows[i].Collapsed = false
	}
	s.reanchor()
}

// CollapseToDepth collapses every container at depth or deeper. Used for
// the initial view when a collapse depth is configured.
func (s *State) CollapseToDepth(depth int) {
	if depth < 0 {
		return
	}
	for i := range s.rows {
		if s.rows[i].Kind.IsOpen() && s.rows[i].Depth >= depth {
			s.rows[i].Collapsed = true
		}
	}
	s.reanchor()
}

// enclosingContainer returns the ID of the row itself when it opens a
// container, otherwise the nearest container-open row above it; -1 when
// there is none (a document whose root is a scalar).
func (s *State) enclosingContainer(id int) int {
	for i := id; i >= 0; i-- {
		if s.rows[i].Kind.IsOpen() {
			return i
		}
	}
	return -1
}

// reanchor restores the selection invariant after collapse flags changed:
// recompute visibility, keep the selected ID when it is still visible,
// otherwise move to its nearest visible ancestor, then fix the window.
func (s *State) reanchor() {
	s.recomputeVisibility()
	if !s.rows[s.selected].Visible {
		s.selected = s.visibleAncestor(s.selected)
	}
	s.finishMove(s.selectedIndex())
}

// recalculateSelectionLevels refreshes SelectionLevel for the rows inside
// the render window only, bounding the cost to the viewport.
//
// The comparison breadcrumb is the selection's own breadcrumb; for scalar
// rows the last segment is stripped first, since a scalar's own name is
// not an ancestry level. A row whose breadcrumb extends the comparison
// breadcrumb is part of the highlighted ancestry and gets the shared
// segment count; every other row gets zero.
func (s *State) recalculateSelectionLevels() {
	sel := &s.rows[s.selected]
	comparison := crumbSegments(sel.Breadcrumb)
	if sel.Kind.IsScalar() && len(comparison) > 0 {
		comparison = comparison[:len(comparison)-1]
	}

	bottom := s.bottomIndex()
	for idx := s.top; idx < bottom; idx++ {
		row := &s.rows[s.visible[idx]]
		row.SelectionLevel = sharedPrefixLen(crumbSegments(row.Breadcrumb), comparison)
	}
}

// sharedPrefixLen returns len(prefix) when segs starts with prefix, else 0.
func sharedPrefixLen(segs, prefix []string) int {
	if len(segs) < len(prefix) {
		return 0
	}
	for i := range prefix {
		if segs[i] != prefix[i] {
			return 0
		}
	}
	return len(prefix)
}
