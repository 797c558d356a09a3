// Package onix reads the ONIX-shaped documents returned by OpenBD and flattens
// them into book records.
package onix

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Node is a read-only view over a decoded JSON value. Every accessor tolerates
// a missing value or an unexpected shape and reports absence instead of
// failing, so deep lookups can be chained without checks in between.
type Node struct {
	v any
}

// NewNode wraps an already decoded value (maps, slices, strings, json.Number).
func NewNode(v any) Node {
	return Node{v: v}
}

// ParseNode decodes raw JSON, keeping numbers as json.Number.
func ParseNode(data []byte) (Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return Node{}, err
	}
	return Node{v: v}, nil
}

// Exists reports whether the node holds a non-null value.
func (n Node) Exists() bool {
	return n.v != nil
}

// Get returns the member key of an object node.
func (n Node) Get(key string) Node {
	m, ok := n.v.(map[string]any)
	if !ok {
		return Node{}
	}
	return Node{v: m[key]}
}

// At returns element i of an array node.
func (n Node) At(i int) Node {
	items, ok := n.v.([]any)
	if !ok || i < 0 || i >= len(items) {
		return Node{}
	}
	return Node{v: items[i]}
}

// Len is the number of elements of an array node, 0 for anything else.
func (n Node) Len() int {
	items, ok := n.v.([]any)
	if !ok {
		return 0
	}
	return len(items)
}

// Text returns scalar nodes as a string. Numbers are rendered in their JSON
// form; objects, arrays, booleans and null are not text.
func (n Node) Text() (string, bool) {
	switch v := n.v.(type) {
	case string:
		return v, true
	case json.Number:
		return v.String(), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	}
	return "", false
}

// TextPtr is Text for optional pass-through fields.
func (n Node) TextPtr() *string {
	s, ok := n.Text()
	if !ok {
		return nil
	}
	return &s
}

// Int reads a numeric scalar, accepting both "78" and 78.
func (n Node) Int() (int, bool) {
	s, ok := n.Text()
	if !ok {
		return 0, false
	}
	s = strings.TrimSpace(s)
	if v, err := strconv.Atoi(s); err == nil {
		return v, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, false
	}
	return int(f), true
}
