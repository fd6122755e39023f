package view

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hjens/json-explorer/pkg/document"
)

// sampleDoc exercises every row kind: nested objects, an array with a
// nested object element, an empty container and a null.
const sampleDoc = `{
  "a": {"id": 42},
  "b": {"id": 7},
  "list": [10, 20, {"deep": true}],
  "empty": {},
  "note": null
}`

func newTestState(t *testing.T, input string, height int) *State {
	t.Helper()
	root, err := document.ParseJSON([]byte(input))
	require.NoError(t, err)
	return New(root, height)
}

// visibleIDs returns the IDs of the current visible sequence.
func visibleIDs(s *State) []int {
	ids := make([]int, 0, s.VisibleLen())
	for i := 0; i < s.TotalRows(); i++ {
		if s.Row(i).Visible {
			ids = append(ids, i)
		}
	}
	return ids
}

// windowIDs returns the IDs of the rows currently on screen.
func windowIDs(s *State) []int {
	rows := s.Window()
	ids := make([]int, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	return ids
}
