// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package xmltree parses an XML document into a generic element tree and
// answers ElementTree-style path queries against it. Lookups never fail:
// an element that is not there is reported as absent, so callers decide how
// each missing field degrades.
//
// Supported path syntax:
//
//	tag          direct children named tag
//	a/b          children b of children a
//	.//tag       all descendants named tag, in document order
//	.//a/b/c     children c of children b of any descendant a
//	*            any element
package xmltree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/pdiddy/pubmed-papers/pkg/types"
)

// Node is one element of a parsed document.
type Node struct {
	Name     string
	Attrs    map[string]string
	Children []*Node

	text strings.Builder
	head strings.Builder
}

// Text returns the element's full character content, including the text of
// nested inline elements, in document order. Whitespace is preserved.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	return n.text.String()
}

// DirectText returns only the character data that precedes the element's
// first child element, matching ElementTree's .text. Text inside or after
// child elements is excluded.
func (n *Node) DirectText() string {
	if n == nil {
		return ""
	}
	return n.head.String()
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.Attrs[name]
	return v, ok
}

// Parse reads a complete XML document from r and returns its root element.
// Character encodings other than UTF-8 declared in the prolog are decoded.
func Parse(r io.Reader) (*Node, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var root *Node
	var stack []*Node
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding XML: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Name: t.Name.Local}
			if len(t.Attr) > 0 {
				n.Attrs = make(map[string]string, len(t.Attr))
				for _, a := range t.Attr {
					n.Attrs[a.Name.Local] = a.Value
				}
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("decoding XML: multiple root elements")
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, n)
			}
			stack = append(stack, n)

		case xml.EndElement:
			closed := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				stack[len(stack)-1].text.WriteString(closed.text.String())
			}

		case xml.CharData:
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				top.text.Write(t)
				if len(top.Children) == 0 {
					top.head.Write(t)
				}
			}
		}
	}

	if root == nil {
		return nil, errors.New("decoding XML: no root element")
	}
	if len(stack) > 0 {
		return nil, fmt.Errorf("decoding XML: element <%s> not closed", stack[len(stack)-1].Name)
	}
	return root, nil
}

type step struct {
	name       string
	descendant bool
}

func (s step) matches(n *Node) bool {
	return s.name == "*" || s.name == n.Name
}

// compile splits a path into steps. An empty segment (from "//") marks the
// following step as a descendant search; "." segments are ignored.
func compile(path string) []step {
	var steps []step
	descendant := false
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case ".":
			continue
		case "":
			descendant = true
			continue
		}
		steps = append(steps, step{name: seg, descendant: descendant})
		descendant = false
	}
	return steps
}

// descendants returns every element below n, depth-first in document order.
func (n *Node) descendants() []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(x *Node) {
		for _, c := range x.Children {
			out = append(out, c)
			walk(c)
		}
	}
	walk(n)
	return out
}

// FindAll returns every element matching path relative to n.
func (n *Node) FindAll(path string) []*Node {
	if n == nil {
		return nil
	}
	steps := compile(path)
	if len(steps) == 0 {
		return nil
	}

	current := []*Node{n}
	for _, s := range steps {
		var next []*Node
		seen := make(map[*Node]bool)
		for _, c := range current {
			candidates := c.Children
			if s.descendant {
				candidates = c.descendants()
			}
			for _, x := range candidates {
				if s.matches(x) && !seen[x] {
					seen[x] = true
					next = append(next, x)
				}
			}
		}
		if len(next) == 0 {
			return nil
		}
		current = next
	}
	return current
}

// Find returns the first element matching path, or nil.
func (n *Node) Find(path string) *Node {
	if all := n.FindAll(path); len(all) > 0 {
		return all[0]
	}
	return nil
}

// FindText returns the direct text of the first element matching path, as
// DirectText reports it. The result is absent when no element matches; a
// matching empty element is present with an empty value.
func (n *Node) FindText(path string) types.OptionalString {
	if m := n.Find(path); m != nil {
		return types.Some(m.DirectText())
	}
	return types.OptionalString{}
}

// FindInnerText is FindText using the full inner text of the match, so
// inline markup is flattened into the result.
func (n *Node) FindInnerText(path string) types.OptionalString {
	if m := n.Find(path); m != nil {
		return types.Some(m.Text())
	}
	return types.OptionalString{}
}
