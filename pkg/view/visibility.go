package view

// recomputeVisibility derives every row's Visible flag from the Collapsed
// flags in one left-to-right pass, then rebuilds the visible sequence.
//
// The pass carries whether it is currently inside a collapsed span and the
// depth that span started at. The first row back at that depth is the
// collapsed container's own end marker: it ends the span but is itself
// marked invisible, because the collapsed open row's inline summary stands
// in for it. Collapsed containers nested inside the span stay swallowed by
// it; their spans end strictly before the outer one does.
func (s *State) recomputeVisibility() {
	suppressing := false
	suppressDepth := 0

	for i := range s.rows {
		row := &s.rows[i]
		row.Visible = true

		if suppressing {
			row.Visible = false
			if row.Depth == suppressDepth {
				suppressing = false
			}
			continue
		}
		if row.Collapsed && row.Kind.IsOpen() {
			suppressing = true
			suppressDepth = row.Depth
		}
	}

	s.visible = s.visible[:0]
	for i := range s.rows {
		if s.rows[i].Visible {
			s.visible = append(s.visible, i)
		}
	}
}

// visibleAncestor walks the ancestor chain of the given row upward and
// returns the first ancestor that is visible. An end marker counts as
// enclosed by its own container, so a collapsed container's end anchors to
// the open row whose summary replaced it. The root row is always visible,
// so the walk always terminates with a valid ID.
func (s *State) visibleAncestor(id int) int {
	depth := s.rows[id].Depth
	if s.rows[id].Kind.IsEnd() {
		depth++
	}
	for i := id - 1; i >= 0; i-- {
		if s.rows[i].Depth < depth {
			if s.rows[i].Visible {
				return i
			}
			depth = s.rows[i].Depth
		}
	}
	return 0
}

// expandAncestors clears the Collapsed flag on every ancestor container of
// the given row so the row itself becomes visible, then recomputes
// visibility. No-op when the row is already visible.
func (s *State) expandAncestors(id int) {
	if s.rows[id].Visible {
		return
	}
	depth := s.rows[id].Depth
	changed := false
	for i := id - 1; i >= 0 && depth > 0; i-- {
		if s.rows[i].Depth < depth {
			if s.rows[i].Kind.IsOpen() && s.rows[i].Collapsed {
				s.rows[i].Collapsed = false
				changed = true
			}
			depth = s.rows[i].Depth
		}
	}
	if changed {
		s.recomputeVisibility()
	}
}
