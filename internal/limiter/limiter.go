// Package limiter trims a document to a record window before printing.
// It backs the --limit, --offset and --tail flags of print mode, so a
// pipeline can peek at a slice of a huge file without paging the whole
// thing through the terminal.
package limiter

import (
	"fmt"

	"github.com/hjens/json-explorer/pkg/document"
)

// Config holds the record-limiting parameters.
type Config struct {
	Limit  int // show only this many records (0 = unlimited)
	Offset int // skip the first N records (0 = no skip)
	Tail   int // show only the last N records (0 = disabled); mutually exclusive with Limit
}

// Validate checks for conflicting flag combinations.
// Rules:
//   - Limit and Tail are mutually exclusive
//   - if Tail is set, Offset is ignored
//   - all values must be non-negative
func (c Config) Validate() error {
	if c.Limit < 0 {
		return fmt.Errorf("--limit must be non-negative, got %d", c.Limit)
	}
	if c.Offset < 0 {
		return fmt.Errorf("--offset must be non-negative, got %d", c.Offset)
	}
	if c.Tail < 0 {
		return fmt.Errorf("--tail must be non-negative, got %d", c.Tail)
	}
	if c.Limit > 0 && c.Tail > 0 {
		return fmt.Errorf("--limit and --tail are mutually exclusive")
	}
	return nil
}

// IsActive reports whether any limiting is configured.
func (c Config) IsActive() bool {
	return c.Limit > 0 || c.Offset > 0 || c.Tail > 0
}

// Apply trims the top level of the document to the configured window.
// Array elements and object members count as records, in document order;
// scalars pass through unchanged. The input node is not modified.
func (c Config) Apply(n *document.Node) *document.Node {
	if n == nil || !c.IsActive() {
		return n
	}

	switch n.Kind {
	case document.KindArray:
		start, end := c.window(len(n.Items))
		out := *n
		out.Items = n.Items[start:end]
		return &out
	case document.KindObject:
		start, end := c.window(len(n.Fields))
		out := *n
		out.Fields = n.Fields[start:end]
		return &out
	default:
		return n
	}
}

// window computes the [start, end) record range for a container of the
// given length.
func (c Config) window(length int) (int, int) {
	if c.Tail > 0 {
		start := length - c.Tail
		if start < 0 {
			start = 0
		}
		return start, length
	}

	start := c.Offset
	if start > length {
		start = length
	}
	end := length
	if c.Limit > 0 {
		end = start + c.Limit
		if end > length {
			end = length
		}
	}
	return start, end
}
