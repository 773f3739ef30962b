// Package uiscript parses The Sims 2 UI Script resources: an XML-like text
// format describing a screen's widget tree, with mostly unquoted attribute
// values and <CHILDREN> blocks for nesting.
package uiscript

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Parse errors.
var (
	ErrUnbalancedChildren = errors.New("unbalanced CHILDREN blocks")
	ErrNestingTooDeep     = errors.New("element nesting too deep")
	ErrUnterminatedTag    = errors.New("unterminated tag")
)

// maxDepth bounds element nesting. Real scripts nest a handful of levels;
// anything deeper is treated as malformed input.
const maxDepth = 128

// Attribute is one key=value pair. Keys may repeat within an element, so
// attributes are kept as an ordered sequence rather than a map.
type Attribute struct {
	Key   string
	Value string
}

// Element is a single widget declaration and its nested children.
type Element struct {
	Name     string
	Attrs    []Attribute
	Children []*Element
}

// Attr returns the first value of the named attribute, or "" if absent.
func (e *Element) Attr(key string) string {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Value
		}
	}
	return ""
}

// AttrValues returns every value of the named attribute, in order.
func (e *Element) AttrValues(key string) []string {
	var values []string
	for _, a := range e.Attrs {
		if a.Key == key {
			values = append(values, a.Value)
		}
	}
	return values
}

// Root holds the top-level elements of one parsed script.
type Root struct {
	Children []*Element
}

// Elements returns every element in the tree in document order, walked
// iteratively with an explicit stack.
func (r *Root) Elements() []*Element {
	var result []*Element
	stack := make([]*Element, len(r.Children))
	for i := range r.Children {
		stack[len(r.Children)-1-i] = r.Children[i]
	}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		result = append(result, e)
		for i := len(e.Children) - 1; i >= 0; i-- {
			stack = append(stack, e.Children[i])
		}
	}
	return result
}

// FindByAttribute returns all elements whose named attribute has the given
// value (any of its repeated values counts).
func (r *Root) FindByAttribute(key, value string) []*Element {
	var result []*Element
	for _, e := range r.Elements() {
		for _, v := range e.AttrValues(key) {
			if v == value {
				result = append(result, e)
				break
			}
		}
	}
	return result
}

// Parse decodes a UI script resource into an element tree. Input that is
// not valid UTF-8 is decoded as Windows-1252, which the game uses for
// western installs.
func Parse(data []byte) (*Root, error) {
	if !utf8.Valid(data) {
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err == nil {
			data = decoded
		}
	}
	text := string(data)

	root := &Root{}
	// stack[len-1] is the element whose <CHILDREN> block is open.
	var stack []*Element
	var last *Element

	pos := 0
	for {
		open := strings.IndexByte(text[pos:], '<')
		if open < 0 {
			break
		}
		open += pos
		end, err := findTagEnd(text, open)
		if err != nil {
			return nil, err
		}
		tag := text[open+1 : end]
		pos = end + 1

		switch {
		case strings.EqualFold(tag, "CHILDREN"):
			if last == nil {
				return nil, fmt.Errorf("%w: CHILDREN without an element", ErrUnbalancedChildren)
			}
			if len(stack) >= maxDepth {
				return nil, ErrNestingTooDeep
			}
			stack = append(stack, last)
			last = nil
		case strings.EqualFold(tag, "/CHILDREN"):
			if len(stack) == 0 {
				return nil, fmt.Errorf("%w: /CHILDREN without CHILDREN", ErrUnbalancedChildren)
			}
			last = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		case strings.HasPrefix(tag, "#") || strings.HasPrefix(tag, "!"):
			// comment/directive, skip
		default:
			element := parseElement(tag)
			if element == nil {
				continue
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, element)
			} else {
				root.Children = append(root.Children, element)
			}
			last = element
		}
	}

	if len(stack) != 0 {
		return nil, fmt.Errorf("%w: %d unclosed blocks", ErrUnbalancedChildren, len(stack))
	}

	return root, nil
}

// findTagEnd locates the '>' closing the tag opened at '<', skipping over
// quoted attribute values that may contain '>'.
func findTagEnd(text string, open int) (int, error) {
	inQuote := false
	for i := open + 1; i < len(text); i++ {
		switch text[i] {
		case '"':
			inQuote = !inQuote
		case '>':
			if !inQuote {
				return i, nil
			}
		}
	}
	return 0, ErrUnterminatedTag
}

// parseElement splits a tag body like
//
//	LEGACY clsid=GZWinGen area=(10,10,110,210) caption="OK, go!"
//
// into an element. Values are unquoted (ending at whitespace) unless
// wrapped in double quotes.
func parseElement(tag string) *Element {
	fields := splitFields(tag)
	if len(fields) == 0 {
		return nil
	}

	element := &Element{Name: fields[0]}
	for _, field := range fields[1:] {
		key, value, found := strings.Cut(field, "=")
		if !found {
			// bare flag, keep with empty value
			element.Attrs = append(element.Attrs, Attribute{Key: field})
			continue
		}
		value = strings.Trim(value, "\"")
		element.Attrs = append(element.Attrs, Attribute{Key: key, Value: value})
	}
	return element
}

// splitFields splits on whitespace while keeping quoted spans intact.
func splitFields(tag string) []string {
	var fields []string
	var current strings.Builder
	inQuote := false

	for i := 0; i < len(tag); i++ {
		c := tag[i]
		switch {
		case c == '"':
			inQuote = !inQuote
			current.WriteByte(c)
		case !inQuote && (c == ' ' || c == '\t' || c == '\r' || c == '\n'):
			if current.Len() > 0 {
				fields = append(fields, current.String())
				current.Reset()
			}
		default:
			current.WriteByte(c)
		}
	}
	if current.Len() > 0 {
		fields = append(fields, current.String())
	}
	return fields
}
