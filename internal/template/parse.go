// Package template implements placeholder expansion for reply prompts and
// other client-facing text. Templates are parsed once into a typed node
// sequence and then evaluated, so replacement text that happens to contain
// marker syntax is never re-expanded.
//
// Syntax:
//
//	{{Name}}              scalar placeholder
//	{{#List}}...{{/List}} block repeated once per list element
//	{{.Field}}            per-item field reference, valid inside a block
package template

import (
	"fmt"
	"strings"
)

const (
	markerOpen  = "{{"
	markerClose = "}}"
)

// Node is one parsed template element: Text, ScalarRef, or Block.
type Node interface {
	node()
}

// Text is a literal run of template text.
type Text struct {
	Value string
}

// ScalarRef references a named scalar value. Names beginning with "." are
// per-item field references and only resolve inside a block.
type ScalarRef struct {
	Name string
}

// Block marks a region repeated once per element of the named list. An empty
// list removes the block and its markers entirely.
type Block struct {
	List string
	Body []Node
}

func (Text) node()      {}
func (ScalarRef) node() {}
func (Block) node()     {}

// Template is a parsed template ready for evaluation.
type Template struct {
	nodes []Node
}

// Parse converts template source into a node sequence. An opening block
// marker without its matching close, or a close marker with no open, is a
// structural defect in the template and returns an error; everything else is
// tolerated and handled leniently at evaluation time.
func Parse(src string) (*Template, error) {
	var stack []*Block
	var top []Node

	appendNode := func(n Node) {
		if len(stack) > 0 {
			blk := stack[len(stack)-1]
			blk.Body = append(blk.Body, n)
			return
		}
		top = append(top, n)
	}

	rest := src
	for {
		open := strings.Index(rest, markerOpen)
		if open < 0 {
			break
		}
		closing := strings.Index(rest[open:], markerClose)
		if closing < 0 {
			// Unterminated marker: keep as literal text.
			break
		}
		closing += open

		if open > 0 {
			appendNode(Text{Value: rest[:open]})
		}
		name := strings.TrimSpace(rest[open+len(markerOpen) : closing])
		rest = rest[closing+len(markerClose):]

		switch {
		case name == "":
			// Empty marker, drop it.
		case strings.HasPrefix(name, "#"):
			blk := &Block{List: strings.TrimPrefix(name, "#")}
			stack = append(stack, blk)
		case strings.HasPrefix(name, "/"):
			closeName := strings.TrimPrefix(name, "/")
			if len(stack) == 0 {
				return nil, fmt.Errorf("unexpected block close {{/%s}}", closeName)
			}
			blk := stack[len(stack)-1]
			if blk.List != closeName {
				return nil, fmt.Errorf("block close {{/%s}} does not match open {{#%s}}", closeName, blk.List)
			}
			stack = stack[:len(stack)-1]
			appendNode(*blk)
		default:
			appendNode(ScalarRef{Name: name})
		}
	}
	if len(stack) > 0 {
		return nil, fmt.Errorf("unterminated block {{#%s}}", stack[len(stack)-1].List)
	}
	if rest != "" {
		top = append(top, Text{Value: rest})
	}

	return &Template{nodes: top}, nil
}
