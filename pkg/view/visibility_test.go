package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollapseHidesSpanAndOwnEnd(t *testing.T) {
	s := newTestState(t, `{"x":[1,2,3]}`, 20)

	// Select the array open row and collapse it.
	s.SelectID(1)
	s.ToggleCollapse()

	assert.True(t, s.Row(1).Visible, "collapsed open row stays visible")
	for id := 2; id <= 4; id++ {
		assert.False(t, s.Row(id).Visible, "child row %d", id)
	}
	assert.False(t, s.Row(5).Visible, "the collapsed container's own end marker is hidden")
	assert.True(t, s.Row(6).Visible, "outer end marker unaffected")

	assert.Equal(t, []int{0, 1, 6}, visibleIDs(s))
}

func TestToggleCollapseRoundTrip(t *testing.T) {
	s := newTestState(t, sampleDoc, 20)

	before := visibleIDs(s)
	s.SelectID(7) // the "list" array
	s.ToggleCollapse()
	assert.NotEqual(t, before, visibleIDs(s))
	s.ToggleCollapse()
	assert.Equal(t, before, visibleIDs(s), "two toggles restore every visible flag")
}

func TestNestedCollapseInnerEndStaysHidden(t *testing.T) {
	s := newTestState(t, sampleDoc, 20)

	// Collapse the object inside the list, then the list itself.
	s.SelectID(10)
	s.ToggleCollapse()
	s.SelectID(7)
	s.ToggleCollapse()

	// Everything strictly inside the list span is hidden, including the
	// inner object's end marker which ended an inner suppression.
	for id := 8; id <= 13; id++ {
		assert.False(t, s.Row(id).Visible, "row %d", id)
	}

	// Expanding the outer list keeps the inner object collapsed.
	s.ToggleCollapse()
	assert.True(t, s.Row(10).Visible)
	assert.False(t, s.Row(11).Visible, "inner object stays collapsed")
	assert.False(t, s.Row(12).Visible)
	assert.True(t, s.Row(13).Visible)
}

func TestCollapseRootHidesEverythingButRoot(t *testing.T) {
	s := newTestState(t, sampleDoc, 20)

	s.SelectID(0)
	s.ToggleCollapse()

	assert.Equal(t, []int{0}, visibleIDs(s))
	assert.Equal(t, 0, s.SelectedID())
}

func TestUncollapseAll(t *testing.T) {
	s := newTestState(t, sampleDoc, 20)

	s.SelectID(1)
	s.ToggleCollapse()
	s.SelectID(7)
	s.ToggleCollapse()
	require.Less(t, s.VisibleLen(), s.TotalRows())

	s.UncollapseAll()
	assert.Equal(t, s.TotalRows(), s.VisibleLen())
	for i := 0; i < s.TotalRows(); i++ {
		assert.False(t, s.Row(i).Collapsed, "row %d", i)
	}
}

func TestCollapseLevelCollapsesSiblingContainers(t *testing.T) {
	s := newTestState(t, sampleDoc, 20)

	s.SelectID(1) // "a", depth 1
	s.CollapseLevel()

	// Every depth-1 container is now collapsed: a, b, list, empty.
	for _, id := range []int{1, 4, 7, 14} {
		assert.True(t, s.Row(id).Collapsed, "container %d", id)
	}
	// Scalars at depth 1 are untouched, deeper containers too.
	assert.False(t, s.Row(10).Collapsed)

	assert.Equal(t, []int{0, 1, 4, 7, 14, 16, 17}, visibleIDs(s))
}

func TestCollapseToDepth(t *testing.T) {
	s := newTestState(t, sampleDoc, 20)

	s.CollapseToDepth(1)

	for _, id := range []int{1, 4, 7, 14} {
		assert.True(t, s.Row(id).Collapsed, "container %d", id)
	}
	assert.False(t, s.Row(0).Collapsed, "root is above the cutoff")
	assert.True(t, s.Row(10).Collapsed, "deeper containers collapse too")
}
