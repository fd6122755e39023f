package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Parse decodes input into a Node, auto-detecting the format:
//
//   - JWT tokens (3-part base64url) become {header, payload, signature}
//   - newline-delimited JSON: one document per line, merged into an array
//   - TOML (section headers or key = value lines)
//   - JSON object/array ('{' or '[' prefix)
//   - YAML otherwise; multi-document streams are merged into an array
//
// Multi-document inputs always collapse to a single root so the browser has
// exactly one tree to show.
func Parse(data []byte) (*Node, error) {
	input := strings.TrimSpace(string(data))
	if input == "" {
		return nil, errors.New("empty input")
	}

	if isJWT(input) {
		return parseJWT(input)
	}

	if strings.Contains(input, "\n---") || strings.HasPrefix(input, "---") {
		return parseYAML([]byte(input))
	}

	lines := strings.Split(input, "\n")
	if len(lines) > 1 && isLikelyNDJSON(lines) {
		return parseNDJSON(lines)
	}

	// TOML before JSON: a "[section]" header would otherwise look like the
	// start of a JSON array.
	if isLikelyTOML(input) {
		return parseTOML([]byte(input))
	}

	if strings.HasPrefix(input, "{") || strings.HasPrefix(input, "[") {
		return ParseJSON([]byte(input))
	}

	return parseYAML([]byte(input))
}

// LoadFile reads and parses the document at path.
func LoadFile(path string) (*Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// LoadReader reads r until EOF and parses the result.
func LoadReader(r io.Reader) (*Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return Parse(data)
}

// ParseJSON decodes a single JSON document. It walks the token stream
// instead of unmarshalling into maps: maps would drop object member order
// and reformat numbers, both of which the browser shows verbatim.
func ParseJSON(data []byte) (*Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	node, err := decodeJSONValue(dec)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if dec.More() {
		return nil, errors.New("invalid JSON: trailing data after document")
	}
	return node, nil
}

func decodeJSONValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeJSONObject(dec)
		case '[':
			return decodeJSONArray(dec)
		default:
			return nil, fmt.Errorf("unexpected %q", t.String())
		}
	case string:
		return String(t), nil
	case json.Number:
		return Number(t.String()), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeJSONObject(dec *json.Decoder) (*Node, error) {
	node := &Node{Kind: KindObject}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", keyTok)
		}
		value, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}
		node.setField(key, value)
	}
	// Closing '}'.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return node, nil
}

func decodeJSONArray(dec *json.Decoder) (*Node, error) {
	node := &Node{Kind: KindArray}
	for dec.More() {
		value, err := decodeJSONValue(dec)
		if err != nil {
			return nil, err
		}
		node.Items = append(node.Items, value)
	}
	// Closing ']'.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return node, nil
}

// parseYAML decodes one or more YAML documents via the yaml.Node API, which
// keeps mapping keys in source order. Multiple documents merge into an array.
func parseYAML(data []byte) (*Node, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var docs []*Node
	for {
		var y yaml.Node
		err := dec.Decode(&y)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
		node, err := fromYAMLNode(&y, 0)
		if err != nil {
			return nil, err
		}
		if node != nil {
			docs = append(docs, node)
		}
	}

	switch len(docs) {
	case 0:
		return nil, errors.New("invalid YAML: no documents")
	case 1:
		return docs[0], nil
	default:
		return &Node{Kind: KindArray, Items: docs}, nil
	}
}

const maxYAMLDepth = 200

func fromYAMLNode(y *yaml.Node, depth int) (*Node, error) {
	if depth > maxYAMLDepth {
		return nil, errors.New("invalid YAML: nesting too deep")
	}

	switch y.Kind {
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return nil, nil
		}
		return fromYAMLNode(y.Content[0], depth+1)

	case yaml.MappingNode:
		node := &Node{Kind: KindObject}
		for i := 0; i+1 < len(y.Content); i += 2 {
			value, err := fromYAMLNode(y.Content[i+1], depth+1)
			if err != nil {
				return nil, err
			}
			node.setField(y.Content[i].Value, value)
		}
		return node, nil

	case yaml.SequenceNode:
		node := &Node{Kind: KindArray}
		for _, item := range y.Content {
			value, err := fromYAMLNode(item, depth+1)
			if err != nil {
				return nil, err
			}
			node.Items = append(node.Items, value)
		}
		return node, nil

	case yaml.AliasNode:
		return fromYAMLNode(y.Alias, depth+1)

	case yaml.ScalarNode:
		switch y.Tag {
		case "!!null":
			return Null(), nil
		case "!!bool":
			return Bool(isYAMLTrue(y.Value)), nil
		case "!!int", "!!float":
			return Number(y.Value), nil
		default:
			return String(y.Value), nil
		}

	default:
		return nil, fmt.Errorf("invalid YAML: unsupported node kind %d", y.Kind)
	}
}

// isYAMLTrue covers the spellings yaml.v3 resolves to !!bool.
func isYAMLTrue(s string) bool {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "y":
		return true
	default:
		return false
	}
}

// parseTOML decodes TOML input. go-toml hands back plain maps, so source
// member order is gone; keys are sorted to keep the view deterministic.
func parseTOML(data []byte) (*Node, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	return FromGo(raw)
}

// FromGo converts an already-decoded Go value tree into a Node tree. Used
// for formats and evaluators that hand back plain maps and slices; map keys
// are sorted because there is no source order left to preserve.
func FromGo(v any) (*Node, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case []byte:
		return String(string(t)), nil
	case int64:
		return Number(strconv.FormatInt(t, 10)), nil
	case int:
		return Number(strconv.Itoa(t)), nil
	case uint64:
		return Number(strconv.FormatUint(t, 10)), nil
	case float64:
		if math.IsInf(t, 0) || math.IsNaN(t) {
			// TOML allows inf/nan; JSON has no spelling for them.
			return String(strconv.FormatFloat(t, 'g', -1, 64)), nil
		}
		return Number(strconv.FormatFloat(t, 'g', -1, 64)), nil
	case json.Number:
		return Number(t.String()), nil
	case time.Time:
		return String(t.Format(time.RFC3339)), nil
	case time.Duration:
		return String(t.String()), nil
	case []any:
		node := &Node{Kind: KindArray}
		for _, item := range t {
			child, err := FromGo(item)
			if err != nil {
				return nil, err
			}
			node.Items = append(node.Items, child)
		}
		return node, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		node := &Node{Kind: KindObject}
		for _, k := range keys {
			child, err := FromGo(t[k])
			if err != nil {
				return nil, err
			}
			node.setField(k, child)
		}
		return node, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

// parseNDJSON decodes newline-delimited JSON into an array root. Lines that
// fail to parse as JSON are kept as plain strings.
func parseNDJSON(lines []string) (*Node, error) {
	root := &Node{Kind: KindArray}
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		node, err := ParseJSON([]byte(line))
		if err != nil {
			root.Items = append(root.Items, String(line))
			continue
		}
		root.Items = append(root.Items, node)
	}
	if len(root.Items) == 0 {
		return nil, errors.New("no data found in input")
	}
	return root, nil
}

// isLikelyNDJSON reports whether a majority of non-empty lines look like
// JSON documents. The positive match keeps YAML list files (many lines, no
// braces) from being misread as NDJSON.
func isLikelyNDJSON(lines []string) bool {
	jsonCount := 0
	nonEmpty := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		nonEmpty++
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
			jsonCount++
		}
	}
	return nonEmpty > 1 && jsonCount > nonEmpty/2
}

// TOML section headers ([server], [[items]], [a."b.c"]) and key = value
// lines, as distinct from JSON arrays and YAML "key: value".
var (
	tomlSectionPattern = regexp.MustCompile(`^\s*\[{1,2}(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\]{1,2}\s*$`)
	tomlKeyValuePattern = regexp.MustCompile(`^\s*(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\s*=\s*.+$`)
)

func isLikelyTOML(input string) bool {
	sections := 0
	keyValues := 0
	nonEmpty := 0

	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		nonEmpty++
		if tomlSectionPattern.MatchString(line) {
			sections++
		}
		if tomlKeyValuePattern.MatchString(line) {
			keyValues++
		}
	}

	if sections > 0 {
		return true
	}
	return nonEmpty > 0 && keyValues > nonEmpty/2
}
