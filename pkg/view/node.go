package view

import "github.com/hjens/json-explorer/pkg/document"

// NodeAt returns the document node behind the row with the given ID, by
// re-walking the tree in flatten order. End-marker rows resolve to their
// container, so an operation on a closing bracket acts on the whole
// container. Returns nil for out-of-range IDs.
//
// Rows deliberately hold no node pointers; the walk costs O(n) and runs
// only on explicit user actions, never per frame.
func NodeAt(root *document.Node, id int) *document.Node {
	if root == nil || id < 0 {
		return nil
	}
	next := 0
	return nodeAt(root, id, &next)
}

func nodeAt(n *document.Node, id int, next *int) *document.Node {
	openID := *next
	*next++
	if openID == id {
		return n
	}
	if !n.IsContainer() {
		return nil
	}

	switch n.Kind {
	case document.KindObject:
		for _, f := range n.Fields {
			if hit := nodeAt(f.Value, id, next); hit != nil {
				return hit
			}
		}
	case document.KindArray:
		for _, item := range n.Items {
			if hit := nodeAt(item, id, next); hit != nil {
				return hit
			}
		}
	}

	endID := *next
	*next++
	if endID == id {
		return n
	}
	return nil
}
