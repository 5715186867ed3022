package feeds

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// element is a minimal in-memory XML tree. Lookups match on the resolved
// namespace URI plus local name, so an unprefixed child of a document without
// a default namespace has an empty Space.
type element struct {
	name     xml.Name
	attrs    []xml.Attr
	text     string // character data before the first child element
	children []*element
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func parseTree(data []byte) (*element, error) {
	dec := xml.NewDecoder(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	dec.CharsetReader = charset.NewReaderLabel

	var (
		root  *element
		stack []*element
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			el := &element{name: t.Name, attrs: append([]xml.Attr(nil), t.Attr...)}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("parse xml: junk after document element <%s>", t.Name.Local)
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				if len(bytes.TrimSpace(t)) > 0 {
					return nil, errors.New("parse xml: text outside of document element")
				}
				continue
			}
			if top := stack[len(stack)-1]; len(top.children) == 0 {
				top.text += string(t)
			}
		}
	}

	if root == nil {
		return nil, errors.New("parse xml: no document element")
	}
	return root, nil
}

// child returns the first direct child with the given name, or nil.
func (e *element) child(space, local string) *element {
	for _, c := range e.children {
		if c.name.Space == space && c.name.Local == local {
			return c
		}
	}
	return nil
}

// childrenNamed returns the direct children with the given name in document order.
func (e *element) childrenNamed(space, local string) []*element {
	var out []*element
	for _, c := range e.children {
		if c.name.Space == space && c.name.Local == local {
			out = append(out, c)
		}
	}
	return out
}

// childText is the trimmed text of the first matching child, "" when absent.
func (e *element) childText(space, local string) string {
	if c := e.child(space, local); c != nil {
		return strings.TrimSpace(c.text)
	}
	return ""
}

// attr returns the value of an unqualified attribute.
func (e *element) attr(local string) (string, bool) {
	for _, a := range e.attrs {
		if a.Name.Space == "" && a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// walk visits e and its descendants depth-first in document order until fn
// returns false.
func (e *element) walk(fn func(*element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, c := range e.children {
		if !c.walk(fn) {
			return false
		}
	}
	return true
}
