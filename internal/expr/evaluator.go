// Package expr evaluates CEL expressions against a document. The document
// root is bound to the variable "_", so expressions read like "_.items[0]"
// or "_.users.filter(u, u.active)". Results convert back into a document
// tree for browsing.
package expr

import (
	"fmt"
	"strconv"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	celext "github.com/google/cel-go/ext"

	"github.com/hjens/json-explorer/pkg/document"
)

// Evaluator compiles and evaluates CEL expressions.
type Evaluator struct {
	env *cel.Env
}

// NewEvaluator creates a CEL evaluator with the string, encoder, list and
// math extension libraries loaded.
func NewEvaluator() (*Evaluator, error) {
	env, err := cel.NewEnv(
		cel.Variable("_", cel.DynType),
		celext.Strings(),
		celext.Encoders(),
		celext.Lists(),
		celext.Math(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating CEL environment: %w", err)
	}
	return &Evaluator{env: env}, nil
}

// Evaluate runs src against root and converts the result into a new
// document. CEL maps carry no member order, so object keys in the result
// come back sorted.
func (e *Evaluator) Evaluate(src string, root *document.Node) (*document.Node, error) {
	ast, issues := e.env.Compile(src)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile: %w", issues.Err())
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program: %w", err)
	}

	out, _, err := prg.Eval(map[string]any{"_": nodeToAny(root)})
	if err != nil {
		return nil, fmt.Errorf("eval: %w", err)
	}

	result, err := document.FromGo(refToAny(out))
	if err != nil {
		return nil, fmt.Errorf("converting result: %w", err)
	}
	return result, nil
}

// nodeToAny converts a document tree into the maps/slices/scalars CEL
// operates on.
func nodeToAny(n *document.Node) any {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case document.KindNull:
		return nil
	case document.KindBool:
		return n.Value == "true"
	case document.KindNumber:
		return numberToAny(n.Value)
	case document.KindString:
		return n.Value
	case document.KindArray:
		items := make([]any, len(n.Items))
		for i, item := range n.Items {
			items[i] = nodeToAny(item)
		}
		return items
	case document.KindObject:
		m := make(map[string]any, len(n.Fields))
		for _, f := range n.Fields {
			m[f.Key] = nodeToAny(f.Value)
		}
		return m
	default:
		return nil
	}
}

// numberToAny maps verbatim number text onto CEL's numeric types. Numbers
// too large for either int64 or float64 stay strings rather than silently
// losing value.
func numberToAny(text string) any {
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return i
	}
	if u, err := strconv.ParseUint(text, 10, 64); err == nil {
		return u
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return f
	}
	return text
}

// refToAny converts a CEL result to Go native types recursively.
func refToAny(val ref.Val) any {
	if val == nil {
		return nil
	}

	switch v := val.(type) {
	case types.Bool:
		return bool(v)
	case types.Int:
		return int64(v)
	case types.Uint:
		return uint64(v)
	case types.Double:
		return float64(v)
	case types.String:
		return string(v)
	case types.Bytes:
		return []byte(v)
	case types.Null:
		return nil
	}

	if valuer, ok := val.(interface{ Value() any }); ok {
		return goValue(valuer.Value())
	}
	// No native representation; render it.
	return fmt.Sprintf("%v", val)
}

// goValue normalizes the inner value of a CEL collection, which may still
// contain ref.Val elements depending on how the list or map was built.
func goValue(v any) any {
	switch t := v.(type) {
	case []ref.Val:
		out := make([]any, len(t))
		for i, elem := range t {
			out[i] = refToAny(elem)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, elem := range t {
			out[i] = goValue(elem)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, elem := range t {
			out[k] = goValue(elem)
		}
		return out
	case map[ref.Val]ref.Val:
		out := make(map[string]any, len(t))
		for k, elem := range t {
			out[fmt.Sprintf("%v", refToAny(k))] = refToAny(elem)
		}
		return out
	case ref.Val:
		return refToAny(t)
	default:
		return v
	}
}
