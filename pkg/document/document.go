// Package document holds the parsed input tree. Unlike a plain
// map[string]any decode, the tree keeps object members in the order they
// appear in the source, which is what the browser displays.
package document

import "strconv"

// Kind identifies the type of a Node.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Field is one object member. Objects are stored as slices of fields rather
// than maps so that insertion order survives the decode.
type Field struct {
	Key   string
	Value *Node
}

// Node is one value in the parsed document.
//
// Scalars carry their text in Value: numbers exactly as written in the
// source (never reparsed and reformatted), bools as "true"/"false", strings
// without surrounding quotes. Containers leave Value empty and use Fields
// (objects) or Items (arrays).
type Node struct {
	Kind   Kind
	Value  string
	Fields []Field
	Items  []*Node
}

// Len returns the number of immediate children.
func (n *Node) Len() int {
	switch n.Kind {
	case KindObject:
		return len(n.Fields)
	case KindArray:
		return len(n.Items)
	default:
		return 0
	}
}

// IsContainer reports whether the node is an object or array.
func (n *Node) IsContainer() bool {
	return n.Kind == KindObject || n.Kind == KindArray
}

// Get returns the value of the named object field, or nil.
func (n *Node) Get(key string) *Node {
	if n.Kind != KindObject {
		return nil
	}
	for _, f := range n.Fields {
		if f.Key == key {
			return f.Value
		}
	}
	return nil
}

// setField appends a field, or replaces the value of an existing key in
// place so the object keeps unique keys at their first position.
func (n *Node) setField(key string, value *Node) {
	for i, f := range n.Fields {
		if f.Key == key {
			n.Fields[i].Value = value
			return
		}
	}
	n.Fields = append(n.Fields, Field{Key: key, Value: value})
}

// Null, Bool, Number and String build scalar nodes.

func Null() *Node { return &Node{Kind: KindNull} }

func Bool(b bool) *Node { return &Node{Kind: KindBool, Value: strconv.FormatBool(b)} }

func Number(text string) *Node { return &Node{Kind: KindNumber, Value: text} }

func String(s string) *Node { return &Node{Kind: KindString, Value: s} }
