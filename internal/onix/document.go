package onix

import (
	"bytes"
	"fmt"
)

// Document is one item of an OpenBD /get response.
type Document struct {
	root Node
}

// NewDocument wraps a decoded OpenBD item.
func NewDocument(root Node) *Document {
	return &Document{root: root}
}

// ParseDocument decodes one OpenBD item. A JSON null yields a nil Document.
func ParseDocument(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	root, err := ParseNode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	if !root.Exists() {
		return nil, nil
	}
	return &Document{root: root}, nil
}

// Root returns the whole item.
func (d *Document) Root() Node {
	if d == nil {
		return Node{}
	}
	return d.root
}

// Product returns the "onix" member, which carries the bibliographic payload.
func (d *Document) Product() (Node, bool) {
	product := d.Root().Get("onix")
	return product, product.Exists()
}

// SummaryISBN is the identifier OpenBD echoes in the summary block, "" if absent.
func (d *Document) SummaryISBN() string {
	s, _ := d.Root().Get("summary").Get("isbn").Text()
	return s
}
