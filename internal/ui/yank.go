package ui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/hjens/json-explorer/pkg/document"
	"github.com/hjens/json-explorer/pkg/logger"
	"github.com/hjens/json-explorer/pkg/view"
)

// yankPayload handles the second key of a y sequence: yy copies the
// selected value (a container copies its subtree), yp the breadcrumb
// path, yv the subtree as indented JSON. Any other key cancels.
func (m *Model) yankPayload(keyStr string) (tea.Model, tea.Cmd) {
	row := m.State.SelectedRow()

	var text, what string
	switch keyStr {
	case "y":
		what = "value"
		if row.Kind == view.RowNull {
			text = "null"
		} else if row.Kind.IsScalar() {
			text = row.ValueText
		} else if n := view.NodeAt(m.Doc, row.ID); n != nil {
			text = string(document.EncodeJSON(n))
		}
	case "p":
		what = "path"
		text = row.Breadcrumb
	case "v":
		what = "subtree"
		if n := view.NodeAt(m.Doc, row.ID); n != nil {
			text = string(document.EncodeJSON(n))
		}
	default:
		return m, nil
	}

	if err := m.writeClipboard(text); err != nil {
		logger.Get().Error(err, "clipboard write failed")
		m.Notice = "error: clipboard: " + err.Error()
		return m, nil
	}
	m.Notice = "copied " + what
	return m, nil
}
