package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hjens/json-explorer/pkg/document"
)

func mustParse(t *testing.T, src string) *document.Node {
	t.Helper()
	node, err := document.Parse([]byte(src))
	require.NoError(t, err)
	return node
}

func newEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	ev, err := NewEvaluator()
	require.NoError(t, err)
	return ev
}

func TestEvaluateFieldAccess(t *testing.T) {
	ev := newEvaluator(t)
	root := mustParse(t, `{"name": "ada", "count": 42}`)

	got, err := ev.Evaluate("_.name", root)
	require.NoError(t, err)
	assert.Equal(t, document.KindString, got.Kind)
	assert.Equal(t, "ada", got.Value)

	got, err = ev.Evaluate("_.count", root)
	require.NoError(t, err)
	assert.Equal(t, document.KindNumber, got.Kind)
	assert.Equal(t, "42", got.Value)
}

func TestEvaluateArrayIndex(t *testing.T) {
	ev := newEvaluator(t)
	root := mustParse(t, `["first", "second"]`)

	got, err := ev.Evaluate("_[1]", root)
	require.NoError(t, err)
	assert.Equal(t, "second", got.Value)
}

func TestEvaluateOperators(t *testing.T) {
	ev := newEvaluator(t)
	root := mustParse(t, `{"x": 10}`)

	tests := []struct {
		expr string
		want string
	}{
		{"_.x == 10", "true"},
		{"_.x != 10", "false"},
		{"_.x > 5 && _.x < 20", "true"},
		{"_.x < 5 || _.x > 20", "false"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := ev.Evaluate(tt.expr, root)
			require.NoError(t, err)
			assert.Equal(t, document.KindBool, got.Kind)
			assert.Equal(t, tt.want, got.Value)
		})
	}
}

func TestEvaluateFilter(t *testing.T) {
	ev := newEvaluator(t)
	root := mustParse(t, `{"items": [
		{"name": "a", "active": true},
		{"name": "b", "active": false},
		{"name": "c", "active": true}
	]}`)

	got, err := ev.Evaluate("_.items.filter(x, x.active)", root)
	require.NoError(t, err)
	require.Equal(t, document.KindArray, got.Kind)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "a", got.Items[0].Get("name").Value)
	assert.Equal(t, "c", got.Items[1].Get("name").Value)
}

func TestEvaluateMapLiteralKeysSorted(t *testing.T) {
	ev := newEvaluator(t)
	root := mustParse(t, `{}`)

	got, err := ev.Evaluate(`{"zebra": 1, "apple": 2}`, root)
	require.NoError(t, err)
	require.Equal(t, document.KindObject, got.Kind)
	require.Len(t, got.Fields, 2)
	assert.Equal(t, "apple", got.Fields[0].Key)
	assert.Equal(t, "zebra", got.Fields[1].Key)
}

func TestEvaluateStringExtension(t *testing.T) {
	ev := newEvaluator(t)
	root := mustParse(t, `{"name": "ada"}`)

	got, err := ev.Evaluate("_.name.upperAscii()", root)
	require.NoError(t, err)
	assert.Equal(t, "ADA", got.Value)
}

func TestEvaluateSize(t *testing.T) {
	ev := newEvaluator(t)
	root := mustParse(t, `{"items": [1, 2, 3]}`)

	got, err := ev.Evaluate("size(_.items)", root)
	require.NoError(t, err)
	assert.Equal(t, document.KindNumber, got.Kind)
	assert.Equal(t, "3", got.Value)
}

func TestEvaluateNullValue(t *testing.T) {
	ev := newEvaluator(t)
	root := mustParse(t, `{"note": null}`)

	got, err := ev.Evaluate("_.note", root)
	require.NoError(t, err)
	assert.Equal(t, document.KindNull, got.Kind)
}

func TestEvaluateLargeIntegerSurvives(t *testing.T) {
	ev := newEvaluator(t)
	root := mustParse(t, `{"n": 9007199254740993}`)

	got, err := ev.Evaluate("_.n", root)
	require.NoError(t, err)
	assert.Equal(t, "9007199254740993", got.Value)
}

func TestEvaluateCompileError(t *testing.T) {
	ev := newEvaluator(t)
	root := mustParse(t, `{"x": 1}`)

	_, err := ev.Evaluate("_.x ===", root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "compile")
}

func TestEvaluateRuntimeError(t *testing.T) {
	ev := newEvaluator(t)
	root := mustParse(t, `{"x": 1}`)

	_, err := ev.Evaluate("_.missing", root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "eval")
}

func TestNumberToAny(t *testing.T) {
	tests := []struct {
		text string
		want any
	}{
		{"42", int64(42)},
		{"-7", int64(-7)},
		{"18446744073709551615", uint64(18446744073709551615)},
		{"3.14", 3.14},
		{"1e-9", 1e-9},
		// Wider than float64 and int64: stays text.
		{"1e99999", "1e99999"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, numberToAny(tt.text), "numberToAny(%q)", tt.text)
	}
}

func TestEvaluateWholeDocumentIdentity(t *testing.T) {
	ev := newEvaluator(t)
	root := mustParse(t, `{"b": 1, "a": {"inner": [true, null]}}`)

	got, err := ev.Evaluate("_", root)
	require.NoError(t, err)
	require.Equal(t, document.KindObject, got.Kind)
	// Order is not preserved through CEL maps; content is.
	require.NotNil(t, got.Get("a"))
	inner := got.Get("a").Get("inner")
	require.NotNil(t, inner)
	require.Len(t, inner.Items, 2)
	assert.Equal(t, document.KindBool, inner.Items[0].Kind)
	assert.Equal(t, document.KindNull, inner.Items[1].Kind)
}
