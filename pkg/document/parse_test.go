package document

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSONKeepsMemberOrder(t *testing.T) {
	input := `{"zebra": 1, "apple": 2, "mango": {"inner2": true, "inner1": false}}`

	node, err := ParseJSON([]byte(input))
	require.NoError(t, err)
	require.Equal(t, KindObject, node.Kind)

	keys := make([]string, 0, len(node.Fields))
	for _, f := range node.Fields {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{"zebra", "apple", "mango"}, keys)

	inner := node.Get("mango")
	require.NotNil(t, inner)
	assert.Equal(t, "inner2", inner.Fields[0].Key)
	assert.Equal(t, "inner1", inner.Fields[1].Key)
}

func TestParseJSONKeepsNumberText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "integer", input: `42`, want: "42"},
		{name: "negative", input: `-7`, want: "-7"},
		{name: "big integer", input: `9007199254740993`, want: "9007199254740993"},
		{name: "decimal", input: `3.1400`, want: "3.1400"},
		{name: "exponent", input: `1e-9`, want: "1e-9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := ParseJSON([]byte(tt.input))
			require.NoError(t, err)
			require.Equal(t, KindNumber, node.Kind)
			assert.Equal(t, tt.want, node.Value)
		})
	}
}

func TestParseJSONDuplicateKeys(t *testing.T) {
	node, err := ParseJSON([]byte(`{"a": 1, "b": 2, "a": 3}`))
	require.NoError(t, err)

	// Last value wins, first position is kept.
	require.Len(t, node.Fields, 2)
	assert.Equal(t, "a", node.Fields[0].Key)
	assert.Equal(t, "3", node.Fields[0].Value.Value)
	assert.Equal(t, "b", node.Fields[1].Key)
}

func TestParseJSONScalars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind Kind
		wantText string
	}{
		{name: "string", input: `"hello"`, wantKind: KindString, wantText: "hello"},
		{name: "true", input: `true`, wantKind: KindBool, wantText: "true"},
		{name: "false", input: `false`, wantKind: KindBool, wantText: "false"},
		{name: "null", input: `null`, wantKind: KindNull, wantText: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := ParseJSON([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, node.Kind)
			assert.Equal(t, tt.wantText, node.Value)
		})
	}
}

func TestParseJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "unterminated object", input: `{"a": 1`},
		{name: "bare word", input: `nope`},
		{name: "trailing data", input: `{"a": 1} {"b": 2}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tt.input))
			require.Error(t, err)
		})
	}
}

func TestParseDetectsYAML(t *testing.T) {
	input := `zebra: 1
apple:
  - x
  - y
flag: yes
nothing: null`

	node, err := Parse([]byte(input))
	require.NoError(t, err)
	require.Equal(t, KindObject, node.Kind)

	keys := make([]string, 0, len(node.Fields))
	for _, f := range node.Fields {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{"zebra", "apple", "flag", "nothing"}, keys)

	assert.Equal(t, KindNumber, node.Get("zebra").Kind)
	assert.Equal(t, KindArray, node.Get("apple").Kind)
	assert.Equal(t, KindBool, node.Get("flag").Kind)
	assert.Equal(t, "true", node.Get("flag").Value)
	assert.Equal(t, KindNull, node.Get("nothing").Kind)
}

func TestParseMultiDocYAMLMergesToArray(t *testing.T) {
	input := `name: Alice
---
name: Bob
---
name: Charlie`

	node, err := Parse([]byte(input))
	require.NoError(t, err)
	require.Equal(t, KindArray, node.Kind)
	require.Len(t, node.Items, 3)
	assert.Equal(t, "Alice", node.Items[0].Get("name").Value)
	assert.Equal(t, "Charlie", node.Items[2].Get("name").Value)
}

func TestParseYAMLAnchors(t *testing.T) {
	input := `base: &base
  retries: 3
prod:
  <<: *base
  host: example.com
copy: *base`

	node, err := Parse([]byte(input))
	require.NoError(t, err)

	copied := node.Get("copy")
	require.NotNil(t, copied)
	require.Equal(t, KindObject, copied.Kind)
	assert.Equal(t, "3", copied.Get("retries").Value)
}

func TestParseDetectsNDJSON(t *testing.T) {
	input := `{"id": 1}
{"id": 2}
not json at all
{"id": 3}`

	node, err := Parse([]byte(input))
	require.NoError(t, err)
	require.Equal(t, KindArray, node.Kind)
	require.Len(t, node.Items, 4)
	assert.Equal(t, "1", node.Items[0].Get("id").Value)
	assert.Equal(t, KindString, node.Items[2].Kind)
	assert.Equal(t, "not json at all", node.Items[2].Value)
}

func TestParseDetectsTOML(t *testing.T) {
	input := `title = "demo"

[server]
host = "localhost"
port = 8080
ratio = 0.5`

	node, err := Parse([]byte(input))
	require.NoError(t, err)
	require.Equal(t, KindObject, node.Kind)

	server := node.Get("server")
	require.NotNil(t, server)
	assert.Equal(t, "localhost", server.Get("host").Value)
	assert.Equal(t, "8080", server.Get("port").Value)
	assert.Equal(t, "0.5", server.Get("ratio").Value)

	// go-toml loses source order; keys come back sorted.
	assert.Equal(t, "server", node.Fields[0].Key)
	assert.Equal(t, "title", node.Fields[1].Key)
}

func TestParseDetectsJWT(t *testing.T) {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"1234","name":"Ada","admin":true}`))
	token := header + "." + payload + ".c2lnbmF0dXJl"

	node, err := Parse([]byte(token))
	require.NoError(t, err)
	require.Equal(t, KindObject, node.Kind)
	require.Len(t, node.Fields, 3)
	assert.Equal(t, "header", node.Fields[0].Key)
	assert.Equal(t, "payload", node.Fields[1].Key)
	assert.Equal(t, "signature", node.Fields[2].Key)

	payloadNode := node.Get("payload")
	assert.Equal(t, "sub", payloadNode.Fields[0].Key)
	assert.Equal(t, "name", payloadNode.Fields[1].Key)
	assert.Equal(t, "Ada", payloadNode.Get("name").Value)
}

func TestParseEmptyInput(t *testing.T) {
	_, err := Parse([]byte("   \n  "))
	require.Error(t, err)
}

func TestParseInvalidJSONFallsBackToYAML(t *testing.T) {
	// Same shape the auto-detection gives a '{' prefix: JSON wins, and a
	// JSON parse error is final for brace-prefixed input.
	_, err := Parse([]byte(`{"a": `))
	require.Error(t, err)
}

func TestLoadReader(t *testing.T) {
	node, err := LoadReader(strings.NewReader(`[1, 2, 3]`))
	require.NoError(t, err)
	require.Equal(t, KindArray, node.Kind)
	assert.Equal(t, 3, node.Len())
}

func TestNodeLen(t *testing.T) {
	node, err := ParseJSON([]byte(`{"a": [1, 2], "b": {"c": 3}}`))
	require.NoError(t, err)
	assert.Equal(t, 2, node.Len())
	assert.Equal(t, 2, node.Get("a").Len())
	assert.Equal(t, 1, node.Get("b").Len())
	assert.Equal(t, 0, node.Get("b").Get("c").Len())
}
