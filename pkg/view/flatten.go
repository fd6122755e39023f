package view

import (
	"strconv"
	"strings"

	"github.com/hjens/json-explorer/pkg/document"
)

// BreadcrumbSeparator joins breadcrumb path segments.
const BreadcrumbSeparator = " ▶ "

// Flatten walks the document once and produces the full row sequence:
// one row per scalar, an open and an end row per container. Runs in O(n)
// of the total value count and is the only place rows are created.
func Flatten(root *document.Node) []Row {
	f := flattener{rows: make([]Row, 0, 64)}
	f.walk(root, "", false, 0, "")
	return f.rows
}

type flattener struct {
	rows []Row
}

func (f *flattener) walk(n *document.Node, name string, hasName bool, depth int, crumb string) {
	switch n.Kind {
	case document.KindObject:
		f.push(Row{
			Kind:       RowObject,
			Name:       name,
			HasName:    hasName,
			Depth:      depth,
			Breadcrumb: crumb,
			ChildCount: len(n.Fields),
		})
		for _, field := range n.Fields {
			f.walk(field.Value, field.Key, true, depth+1, childCrumb(crumb, field.Key))
		}
		f.push(Row{Kind: RowObjectEnd, Depth: depth, Breadcrumb: crumb})

	case document.KindArray:
		f.push(Row{
			Kind:       RowArray,
			Name:       name,
			HasName:    hasName,
			Depth:      depth,
			Breadcrumb: crumb,
			ChildCount: len(n.Items),
		})
		for i, item := range n.Items {
			segment := "[" + strconv.Itoa(i) + "]"
			f.walk(item, "", false, depth+1, childCrumb(crumb, segment))
		}
		f.push(Row{Kind: RowArrayEnd, Depth: depth, Breadcrumb: crumb})

	default:
		f.push(Row{
			Kind:       scalarKind(n.Kind),
			Name:       name,
			HasName:    hasName,
			Depth:      depth,
			ValueText:  n.Value,
			Breadcrumb: crumb,
		})
	}
}

func (f *flattener) push(r Row) {
	r.ID = len(f.rows)
	r.Visible = true
	f.rows = append(f.rows, r)
}

func scalarKind(k document.Kind) RowKind {
	switch k {
	case document.KindNumber:
		return RowNumber
	case document.KindString:
		return RowString
	case document.KindBool:
		return RowBool
	default:
		return RowNull
	}
}

// childCrumb extends a breadcrumb by one segment. The root breadcrumb is
// empty, so first-level segments carry no leading separator.
func childCrumb(parent, segment string) string {
	if parent == "" {
		return segment
	}
	return parent + BreadcrumbSeparator + segment
}

// crumbSegments splits a breadcrumb back into its path segments.
func crumbSegments(crumb string) []string {
	if crumb == "" {
		return nil
	}
	return strings.Split(crumb, BreadcrumbSeparator)
}
