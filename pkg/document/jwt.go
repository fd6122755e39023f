package document

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// isJWT detects a JWT token: exactly three non-empty dot-separated parts
// where the first two decode to base64url-encoded JSON objects.
func isJWT(input string) bool {
	input = strings.TrimPrefix(input, "Bearer ")
	input = strings.TrimSpace(input)

	parts := strings.Split(input, ".")
	if len(parts) != 3 {
		return false
	}
	for _, part := range parts {
		if part == "" {
			return false
		}
	}

	for i := 0; i < 2; i++ {
		decoded, err := base64.RawURLEncoding.DecodeString(parts[i])
		if err != nil {
			return false
		}
		var obj map[string]any
		if err := json.Unmarshal(decoded, &obj); err != nil {
			return false
		}
	}

	// The signature holds arbitrary bytes; it only needs to be base64url.
	_, err := base64.RawURLEncoding.DecodeString(parts[2])
	return err == nil
}

// parseJWT decodes a JWT into {header, payload, signature}. Header and
// payload go through the ordered JSON decoder so claims keep their order;
// the signature stays a base64url string since it is binary.
func parseJWT(input string) (*Node, error) {
	input = strings.TrimPrefix(input, "Bearer ")
	input = strings.TrimSpace(input)

	parts := strings.Split(input, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid JWT: expected 3 parts, got %d", len(parts))
	}

	headerBytes, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid JWT header: %w", err)
	}
	header, err := ParseJSON(headerBytes)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT header: %w", err)
	}

	payloadBytes, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid JWT payload: %w", err)
	}
	payload, err := ParseJSON(payloadBytes)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT payload: %w", err)
	}

	root := &Node{Kind: KindObject}
	root.setField("header", header)
	root.setField("payload", payload)
	root.setField("signature", String(parts[2]))
	return root, nil
}
