package view

// RowKind identifies what a row displays: a scalar, the opening line of a
// container, or the closing bracket line of a container.
type RowKind uint8

const (
	RowNumber RowKind = iota
	RowString
	RowBool
	RowNull
	RowArray
	RowArrayEnd
	RowObject
	RowObjectEnd
)

// IsOpen reports whether the row opens a container.
func (k RowKind) IsOpen() bool { return k == RowArray || k == RowObject }

// IsEnd reports whether the row is a container's closing bracket.
func (k RowKind) IsEnd() bool { return k == RowArrayEnd || k == RowObjectEnd }

// IsScalar reports whether the row is a plain value.
func (k RowKind) IsScalar() bool { return !k.IsOpen() && !k.IsEnd() }

func (k RowKind) String() string {
	switch k {
	case RowNumber:
		return "number"
	case RowString:
		return "string"
	case RowBool:
		return "bool"
	case RowNull:
		return "null"
	case RowArray:
		return "array"
	case RowArrayEnd:
		return "array-end"
	case RowObject:
		return "object"
	case RowObjectEnd:
		return "object-end"
	default:
		return "unknown"
	}
}

// Row is one display line of the flattened document.
//
// ID is assigned once, in flatten order, and never changes; it doubles as
// the displayed line number and is the only identity used across operations.
// Rows are never reordered, so the row with ID i always sits at index i of
// the row slice. Everything except the mutable flags (Collapsed, Visible,
// NameMatch, ValueMatch, SelectionLevel) is immutable after flattening.
type Row struct {
	ID         int
	Name       string
	HasName    bool
	Depth      int
	Kind       RowKind
	ValueText  string
	ChildCount int
	Breadcrumb string

	Collapsed  bool
	Visible    bool
	NameMatch  bool
	ValueMatch bool

	// SelectionLevel is the number of leading breadcrumb segments this row
	// shares with the current selection's ancestry. Zero means no shared
	// ancestry worth highlighting; it is refreshed only for rows inside the
	// render window.
	SelectionLevel int
}

// IsMatch reports whether the row is part of the current search result set.
func (r *Row) IsMatch() bool { return r.NameMatch || r.ValueMatch }
