package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Codec converts elements to and from the TEXT stored in the elements table.
type Codec[T any] interface {
	Encode(v T) (string, error)
	Decode(s string) (T, error)
}

// TextCodec stores strings verbatim.
type TextCodec struct{}

// Encode returns s unchanged.
func (TextCodec) Encode(s string) (string, error) { return s, nil }

// Decode returns s unchanged.
func (TextCodec) Decode(s string) (string, error) { return s, nil }

// JSONCodec stores elements as compact JSON with HTML escaping disabled.
type JSONCodec[T any] struct{}

// Encode marshals v to JSON.
func (JSONCodec[T]) Encode(v T) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("encode element: %w", err)
	}
	// Encoder adds a trailing newline, remove it
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Decode unmarshals JSON into a T.
func (JSONCodec[T]) Decode(s string) (T, error) {
	var v T
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return v, fmt.Errorf("decode element: %w", err)
	}
	return v, nil
}
