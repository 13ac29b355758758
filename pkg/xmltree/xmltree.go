// Package xmltree parses XML documents into a small, read-only element tree.
//
// Only elements and their attributes are kept; character data, comments and
// processing instructions are dropped. Documents may carry more than one
// top-level element.
package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html/charset"
)

// ErrEmpty is returned when a document contains no elements.
var ErrEmpty = errors.New("xmltree: document has no elements")

// Attr is a single attribute in document order.
type Attr struct {
	Name  string
	Value string
}

// Node is an element.
type Node struct {
	Name     string
	Attrs    []Attr
	Children []*Node
	Parent   *Node
	// Line is the 1-based line on which the start tag ends.
	Line int
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrOr returns the named attribute or def when it is absent.
func (n *Node) AttrOr(name, def string) string {
	if v, ok := n.Attr(name); ok {
		return v
	}
	return def
}

// Has reports whether the attribute is present.
func (n *Node) Has(name string) bool {
	_, ok := n.Attr(name)
	return ok
}

// Descendant returns the first descendant with the given name in document
// order, excluding n itself.
func (n *Node) Descendant(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
		if d := c.Descendant(name); d != nil {
			return d
		}
	}
	return nil
}

// Descendants returns every descendant with the given name in document order.
func (n *Node) Descendants(name string) []*Node {
	var out []*Node
	n.walk(func(c *Node) {
		if c.Name == name {
			out = append(out, c)
		}
	})
	return out
}

func (n *Node) walk(fn func(*Node)) {
	for _, c := range n.Children {
		fn(c)
		c.walk(fn)
	}
}

// String renders the start tag for diagnostics.
func (n *Node) String() string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(n.Name)
	for _, a := range n.Attrs {
		fmt.Fprintf(&b, " %s=%q", a.Name, a.Value)
	}
	b.WriteByte('>')
	return b.String()
}

// Document is a parsed XML document.
type Document struct {
	Roots []*Node
}

// Find returns the first element with the given name, searching the
// top-level elements and then their descendants in document order.
func (d *Document) Find(name string) *Node {
	for _, r := range d.Roots {
		if r.Name == name {
			return r
		}
		if n := r.Descendant(name); n != nil {
			return n
		}
	}
	return nil
}

// Parse reads an XML document. Non-UTF-8 encodings declared in the prolog
// are converted via golang.org/x/net/html/charset.
func Parse(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false
	dec.AutoClose = xml.HTMLAutoClose
	dec.Entity = xml.HTMLEntity
	dec.CharsetReader = charset.NewReaderLabel

	doc := &Document{}
	var cur *Node
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("xmltree: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			line, _ := dec.InputPos()
			n := &Node{Name: t.Name.Local, Parent: cur, Line: line}
			n.Attrs = make([]Attr, 0, len(t.Attr))
			for _, a := range t.Attr {
				n.Attrs = append(n.Attrs, Attr{Name: attrName(a.Name), Value: a.Value})
			}
			if cur == nil {
				doc.Roots = append(doc.Roots, n)
			} else {
				cur.Children = append(cur.Children, n)
			}
			cur = n
		case xml.EndElement:
			if cur != nil {
				cur = cur.Parent
			}
		}
	}
	if len(doc.Roots) == 0 {
		return nil, ErrEmpty
	}
	return doc, nil
}

// ParseBytes parses an in-memory document.
func ParseBytes(data []byte) (*Document, error) {
	return Parse(bytes.NewReader(data))
}

// ParseString parses a document held in a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// ParseFile parses the document at path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("xmltree: open: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func attrName(n xml.Name) string {
	if n.Space == "xmlns" {
		return "xmlns:" + n.Local
	}
	return n.Local
}
