// Package view implements the browsing state over a flattened document:
// which rows exist, which are visible under the current collapse state,
// which row is selected, what slice of the visible sequence is on screen,
// and which rows match the current search.
//
// Three address spaces are kept strictly apart: a row's ID (stable for the
// whole session), its position in the visible sequence (changes on every
// collapse or expand), and its position in the render window (changes on
// every scroll). IDs are the only identity that survives mutations;
// positions are always re-derived, never cached across operations.
package view

import (
	"slices"

	"github.com/hjens/json-explorer/pkg/document"
)

// DefaultLiveSearchThreshold is the row count above which search results
// are no longer recomputed on every keystroke, only on submit.
const DefaultLiveSearchThreshold = 100_000

// State owns the row sequence for one document and every operation over
// it. It is not safe for concurrent use: the event loop applies one
// transition at a time, which is the only access pattern it serves.
type State struct {
	rows    []Row
	visible []int // IDs of visible rows, ascending; rebuilt by recomputeVisibility

	selected int // row ID, always visible after every operation
	top      int // index into visible of the first on-screen row
	height   int // viewport height in lines

	search searchState
}

// New flattens root and returns browsing state with the first row selected
// and the window at the top. Height can be adjusted later via SetHeight.
func New(root *document.Node, height int) *State {
	s := &State{
		rows:   Flatten(root),
		height: height,
		search: searchState{liveThreshold: DefaultLiveSearchThreshold},
	}
	s.recomputeVisibility()
	s.selected = 0
	s.finishMove(0)
	return s
}

// SetHeight updates the viewport height and re-clamps the window so the
// selection stays on screen.
func (s *State) SetHeight(h int) {
	if h < 2 {
		h = 2
	}
	s.height = h
	s.finishMove(s.selectedIndex())
}

// Height returns the current viewport height.
func (s *State) Height() int { return s.height }

// TotalRows returns the length of the full row sequence.
func (s *State) TotalRows() int { return len(s.rows) }

// VisibleLen returns the length of the visible sequence.
func (s *State) VisibleLen() int { return len(s.visible) }

// Row returns the row with the given ID.
func (s *State) Row(id int) *Row {
	return &s.rows[id]
}

// SelectedID returns the ID of the selected row.
func (s *State) SelectedID() int { return s.selected }

// SelectedRow returns the selected row.
func (s *State) SelectedRow() *Row { return &s.rows[s.selected] }

// SelectedIndex returns the selection's position in the visible sequence.
func (s *State) SelectedIndex() int { return s.selectedIndex() }

// selectedIndex locates the selected ID in the visible sequence. The
// selection invariant guarantees it is present.
func (s *State) selectedIndex() int {
	idx, ok := slices.BinarySearch(s.visible, s.selected)
	if !ok {
		// Restore the invariant instead of panicking; the nearest
		// visible ancestor always exists (the root is never hidden).
		s.selected = s.visibleAncestor(s.selected)
		idx, _ = slices.BinarySearch(s.visible, s.selected)
	}
	return idx
}

// selectIndex moves the selection to the given visible-sequence position,
// clamped to the valid range, and re-derives window and highlight state.
func (s *State) selectIndex(idx int) {
	if idx < 0 {
		idx = 0
	}
	if idx > len(s.visible)-1 {
		idx = len(s.visible) - 1
	}
	s.selected = s.visible[idx]
	s.finishMove(idx)
}

// finishMove re-clamps the scroll window around the selection and
// refreshes selection-level highlighting for the rows now on screen.
func (s *State) finishMove(selIdx int) {
	s.scrollTo(selIdx)
	s.recalculateSelectionLevels()
}
