// =============================================================================
// SKUID Intake Report - XML Tree
// =============================================================================
//
// This package loads an XML document into a small, library-neutral node tree.
// Every node keeps only what the report needs:
//   - the local element name
//   - its attributes, in document order
//   - its child elements, in document order
//   - its leading text (character data before the first child element)
//
// The whole document is held in memory. SKUID page exports are small (tens
// to low hundreds of fields), so there is no streaming mode.
//
// =============================================================================

package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/net/html/charset"
)

// =============================================================================
// NODE STRUCTURE
// =============================================================================

// Attr is a single attribute on an element.
type Attr struct {
	Name  string
	Value string
}

// Node is one element of a parsed document.
type Node struct {
	// Name is the element's local name (namespace prefixes are dropped).
	Name string

	// Attrs holds the element's attributes in document order.
	Attrs []Attr

	// Children holds the direct child elements in document order.
	Children []*Node

	text    bytes.Buffer
	hasText bool
	closed  bool
}

// Attr returns the value of the named attribute and whether it was present.
// An attribute that is present with an empty value reports ("", true).
func (n *Node) Attr(name string) (string, bool) {
	for _, attr := range n.Attrs {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Text returns the element's leading text: the character data that appears
// before its first child element. An element with no such text reports
// ("", false).
func (n *Node) Text() (string, bool) {
	if !n.hasText {
		return "", false
	}
	return n.text.String(), true
}

// Child returns the first direct child element with the given name, or nil.
func (n *Node) Child(name string) *Node {
	for _, child := range n.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// Elements returns the direct child elements.
func (n *Node) Elements() []*Node {
	return n.Children
}

// Descendants returns every element named name in the subtree rooted at n,
// n itself included, in document pre-order.
//
// The walk uses an explicit stack so deeply nested exports cannot exhaust
// the goroutine stack.
func (n *Node) Descendants(name string) []*Node {
	var found []*Node

	stack := []*Node{n}
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if current.Name == name {
			found = append(found, current)
		}

		// Push children in reverse so the first child is visited next.
		for i := len(current.Children) - 1; i >= 0; i-- {
			stack = append(stack, current.Children[i])
		}
	}

	return found
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// ErrEmptyDocument is returned when the input holds no root element.
var ErrEmptyDocument = errors.New("document has no root element")

// ParseFile reads and parses the XML document at path.
func ParseFile(path string) (*Node, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	root, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return root, nil
}

// Parse reads a complete XML document from r and returns its root element.
//
// PARSING PROCESS:
//   1. Tokens are read in strict mode; declared encodings other than UTF-8
//      are converted through a charset reader.
//   2. Start tags push a new node onto the open-element stack; end tags pop.
//   3. Character data is kept only while the current element has not yet
//      seen a child element.
//   4. Start tags with a repeated attribute or an undeclared namespace
//      prefix are rejected; encoding/xml accepts both.
//   5. Anything other than whitespace, comments or processing instructions
//      after the root element closes is an error.
func Parse(r io.Reader) (*Node, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel

	var (
		root  *Node
		open  []*Node
		scope namespaceScope
	)

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed XML at line %d: %w", lineOf(decoder), err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			scope.push(t.Attr)
			if err := checkStartElement(t, &scope); err != nil {
				return nil, fmt.Errorf("malformed XML at line %d: %w", lineOf(decoder), err)
			}

			node := &Node{Name: t.Name.Local}
			for _, attr := range t.Attr {
				node.Attrs = append(node.Attrs, Attr{Name: attr.Name.Local, Value: attr.Value})
			}

			if len(open) == 0 {
				if root != nil {
					return nil, fmt.Errorf("junk after document element at line %d", lineOf(decoder))
				}
				root = node
			} else {
				parent := open[len(open)-1]
				parent.Children = append(parent.Children, node)
			}
			open = append(open, node)

		case xml.EndElement:
			// The strict decoder guarantees tags are balanced.
			open[len(open)-1].closed = true
			open = open[:len(open)-1]
			scope.pop()

		case xml.CharData:
			if len(open) == 0 {
				if len(bytes.TrimSpace(t)) > 0 {
					return nil, fmt.Errorf("text outside the document element at line %d", lineOf(decoder))
				}
				continue
			}
			current := open[len(open)-1]
			if len(current.Children) == 0 && len(t) > 0 {
				current.text.Write(t)
				current.hasText = true
			}
		}
	}

	if root == nil {
		return nil, ErrEmptyDocument
	}
	if !root.closed {
		return nil, fmt.Errorf("unexpected end of document: element <%s> is not closed", open[len(open)-1].Name)
	}

	return root, nil
}

// checkStartElement enforces the well-formedness rules encoding/xml skips.
func checkStartElement(start xml.StartElement, scope *namespaceScope) error {
	if !scope.bound(start.Name.Space) {
		return fmt.Errorf("unbound prefix %q on element <%s>", start.Name.Space, start.Name.Local)
	}

	seen := make(map[xml.Name]bool, len(start.Attr))
	for _, attr := range start.Attr {
		if !scope.bound(attr.Name.Space) {
			return fmt.Errorf("unbound prefix %q on attribute %q", attr.Name.Space, attr.Name.Local)
		}
		if seen[attr.Name] {
			return fmt.Errorf("duplicate attribute %q on element <%s>", attr.Name.Local, start.Name.Local)
		}
		seen[attr.Name] = true
	}
	return nil
}

// xmlNamespace is what encoding/xml resolves the reserved "xml" prefix to.
const xmlNamespace = "http://www.w3.org/XML/1998/namespace"

// namespaceScope tracks the namespace URIs declared by the open elements.
// The decoder replaces a declared prefix with its URI and leaves an
// undeclared one as-is, so a name space that is not an in-scope URI was
// never declared.
type namespaceScope struct {
	uris  []string
	marks []int
}

func (s *namespaceScope) push(attrs []xml.Attr) {
	s.marks = append(s.marks, len(s.uris))
	for _, attr := range attrs {
		if attr.Name.Space == "xmlns" || (attr.Name.Space == "" && attr.Name.Local == "xmlns") {
			s.uris = append(s.uris, attr.Value)
		}
	}
}

func (s *namespaceScope) pop() {
	mark := s.marks[len(s.marks)-1]
	s.marks = s.marks[:len(s.marks)-1]
	s.uris = s.uris[:mark]
}

func (s *namespaceScope) bound(space string) bool {
	switch space {
	case "", "xmlns", xmlNamespace:
		return true
	}
	for _, uri := range s.uris {
		if uri == space {
			return true
		}
	}
	return false
}

// lineOf reports the decoder's current input line for error messages.
func lineOf(decoder *xml.Decoder) int {
	line, _ := decoder.InputPos()
	return line
}
