// Package vfs implements the layered virtual file system the graph reads
// game fields from: per-epoch ordered layer roots, XML documents, and a
// small path-expression subset for selecting elements.
package vfs

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"

	"go.trai.ch/zerr"
)

// Attr is one XML attribute, order preserved for faithful write-back.
type Attr struct {
	Name  string
	Value string
}

// Element is one node of a parsed virtual file.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []*Element
	Text     string
}

// Attr returns the value of the named attribute, nil when absent.
func (e *Element) Attr(name string) *string {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			v := e.Attrs[i].Value
			return &v
		}
	}
	return nil
}

// SetAttr updates the named attribute in place, appending it when absent.
func (e *Element) SetAttr(name, value string) {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
}

// Document is a parsed virtual file.
type Document struct {
	root *Element
}

// ErrEmptyDocument is returned when a virtual file holds no root element.
var ErrEmptyDocument = zerr.New("document has no root element")

// ErrBadExpression is returned for path expressions outside the supported subset.
var ErrBadExpression = zerr.New("unsupported path expression")

// ParseDocument decodes an XML virtual file into an element tree.
func ParseDocument(data []byte) (*Document, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var stack []*Element
	var root *Element
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, zerr.Wrap(err, "failed to decode virtual file")
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name.Local}
			for _, a := range t.Attr {
				el.Attrs = append(el.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, zerr.New("multiple root elements")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				if text := strings.TrimSpace(string(t)); text != "" {
					stack[len(stack)-1].Text += text
				}
			}
		}
	}
	if root == nil {
		return nil, ErrEmptyDocument
	}
	return &Document{root: root}, nil
}

// Root returns the document's root element.
func (d *Document) Root() *Element { return d.root }

// Clone returns a deep copy, so callers can rewrite attributes without
// touching the shared parse cache.
func (d *Document) Clone() *Document {
	return &Document{root: cloneElement(d.root)}
}

func cloneElement(el *Element) *Element {
	out := &Element{
		Name:  el.Name,
		Attrs: append([]Attr(nil), el.Attrs...),
		Text:  el.Text,
	}
	for _, child := range el.Children {
		out.Children = append(out.Children, cloneElement(child))
	}
	return out
}

// segment is one step of a path expression: an element name (or "*") with an
// optional [@attr='value'] predicate.
type segment struct {
	name      string
	attrName  string
	attrValue string
	hasPred   bool
}

// Query evaluates a path expression against the document and returns every
// matching element. The supported subset covers what the record tables use:
// absolute paths (`/weapon/properties/damage`), a single attribute equality
// predicate per step (`/ship/part[@name='hull']`), the `*` wildcard, and a
// leading `//` for descent from any depth.
func (d *Document) Query(expr string) ([]*Element, error) {
	descend := false
	switch {
	case strings.HasPrefix(expr, "//"):
		descend = true
		expr = expr[2:]
	case strings.HasPrefix(expr, "/"):
		expr = expr[1:]
	default:
		return nil, zerr.With(zerr.Wrap(ErrBadExpression, ""), "expression", expr)
	}
	if expr == "" {
		return nil, zerr.With(zerr.Wrap(ErrBadExpression, ""), "expression", expr)
	}

	segs := make([]segment, 0, 4)
	for _, raw := range strings.Split(expr, "/") {
		seg, err := parseSegment(raw)
		if err != nil {
			return nil, err
		}
		segs = append(segs, seg)
	}

	var current []*Element
	if descend {
		collectDescendants(d.root, segs[0], &current)
	} else if segs[0].matches(d.root) {
		current = []*Element{d.root}
	}

	for _, seg := range segs[1:] {
		var next []*Element
		for _, el := range current {
			for _, child := range el.Children {
				if seg.matches(child) {
					next = append(next, child)
				}
			}
		}
		current = next
	}
	return current, nil
}

func collectDescendants(el *Element, seg segment, out *[]*Element) {
	if seg.matches(el) {
		*out = append(*out, el)
	}
	for _, child := range el.Children {
		collectDescendants(child, seg, out)
	}
}

func parseSegment(raw string) (segment, error) {
	if raw == "" {
		return segment{}, zerr.With(zerr.Wrap(ErrBadExpression, ""), "segment", raw)
	}
	open := strings.IndexByte(raw, '[')
	if open < 0 {
		return segment{name: raw}, nil
	}

	name := raw[:open]
	pred := raw[open:]
	if name == "" || !strings.HasPrefix(pred, "[@") || !strings.HasSuffix(pred, "']") {
		return segment{}, zerr.With(zerr.Wrap(ErrBadExpression, ""), "segment", raw)
	}
	pred = pred[2 : len(pred)-2]
	eq := strings.Index(pred, "='")
	if eq <= 0 {
		return segment{}, zerr.With(zerr.Wrap(ErrBadExpression, ""), "segment", raw)
	}
	return segment{
		name:      name,
		attrName:  pred[:eq],
		attrValue: pred[eq+2:],
		hasPred:   true,
	}, nil
}

func (s segment) matches(el *Element) bool {
	if s.name != "*" && s.name != el.Name {
		return false
	}
	if !s.hasPred {
		return true
	}
	v := el.Attr(s.attrName)
	return v != nil && *v == s.attrValue
}

// Marshal serializes the document back to XML, attributes in their original
// order, two-space indentation.
func (d *Document) Marshal() []byte {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	writeElement(&buf, d.root, 0)
	return buf.Bytes()
}

func writeElement(buf *bytes.Buffer, el *Element, depth int) {
	indent := strings.Repeat("  ", depth)
	buf.WriteString(indent)
	buf.WriteByte('<')
	buf.WriteString(el.Name)
	for _, a := range el.Attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Name)
		buf.WriteString(`="`)
		_ = xml.EscapeText(buf, []byte(a.Value))
		buf.WriteString(`"`)
	}

	if len(el.Children) == 0 && el.Text == "" {
		buf.WriteString("/>\n")
		return
	}

	buf.WriteByte('>')
	if el.Text != "" {
		_ = xml.EscapeText(buf, []byte(el.Text))
	}
	if len(el.Children) > 0 {
		buf.WriteByte('\n')
		for _, child := range el.Children {
			writeElement(buf, child, depth+1)
		}
		buf.WriteString(indent)
	}
	buf.WriteString("</")
	buf.WriteString(el.Name)
	buf.WriteString(">\n")
}
