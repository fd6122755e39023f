package document

import (
	"bytes"
	"encoding/json"
)

// EncodeJSON renders the subtree rooted at n as two-space indented JSON.
// Scalar text is emitted verbatim, so numbers round-trip exactly as they
// appeared in the source.
func EncodeJSON(n *Node) []byte {
	var buf bytes.Buffer
	encodeJSON(&buf, n, 0)
	buf.WriteByte('\n')
	return buf.Bytes()
}

func encodeJSON(buf *bytes.Buffer, n *Node, level int) {
	if n == nil {
		buf.WriteString("null")
		return
	}

	switch n.Kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool, KindNumber:
		buf.WriteString(n.Value)
	case KindString:
		buf.Write(quoteJSON(n.Value))
	case KindArray:
		if len(n.Items) == 0 {
			buf.WriteString("[]")
			return
		}
		buf.WriteString("[\n")
		for i, item := range n.Items {
			writeIndent(buf, level+1)
			encodeJSON(buf, item, level+1)
			if i < len(n.Items)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		writeIndent(buf, level)
		buf.WriteByte(']')
	case KindObject:
		if len(n.Fields) == 0 {
			buf.WriteString("{}")
			return
		}
		buf.WriteString("{\n")
		for i, f := range n.Fields {
			writeIndent(buf, level+1)
			buf.Write(quoteJSON(f.Key))
			buf.WriteString(": ")
			encodeJSON(buf, f.Value, level+1)
			if i < len(n.Fields)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		writeIndent(buf, level)
		buf.WriteByte('}')
	}
}

func writeIndent(buf *bytes.Buffer, level int) {
	for i := 0; i < level; i++ {
		buf.WriteString("  ")
	}
}

// quoteJSON escapes s as a JSON string literal.
func quoteJSON(s string) []byte {
	// json.Marshal of a string cannot fail.
	out, _ := json.Marshal(s)
	return out
}
