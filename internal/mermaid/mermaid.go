// Package mermaid draws the expression tree of a nino snippet as a Mermaid
// flowchart, for embedding in Markdown documentation.
package mermaid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ridulfo/nino-lang/internal/lexer"
	"github.com/ridulfo/nino-lang/internal/parser"
)

var ErrEmpty = errors.New("nothing to draw")

// Render parses code and charts its first item. The result echoes code,
// followed by a fenced mermaid block.
func Render(code string) (string, error) {
	items, err := parser.Parse(lexer.Lex(code))
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", ErrEmpty
	}

	var b strings.Builder
	b.WriteString(code)
	b.WriteString("\n```mermaid\nflowchart TD\n")
	b.WriteString(strings.Join(Chart(items[0]), "\n"))
	b.WriteString("\n```")
	return b.String(), nil
}

// Chart returns the flowchart lines for one item, without the fence.
func Chart(item parser.Item) []string {
	c := &chart{}
	switch it := item.(type) {
	case parser.Declaration:
		root := c.label("Declaration", fmt.Sprintf("let %s:%s", it.Name, it.Type))
		c.edge(root, c.walk(it.Expression))
	case parser.ExpressionStatement:
		root := c.walk(it.Expression)
		if len(c.lines) == 0 {
			c.lines = append(c.lines, root)
		}
	}
	return c.lines
}

type chart struct {
	n     int
	lines []string
}

// label allocates a node; ids carry a counter so equal labels stay distinct.
func (c *chart) label(kind, text string) string {
	id := fmt.Sprintf("%s_%d", kind, c.n)
	c.n++
	return fmt.Sprintf("%s[\"%s\"]", id, strings.ReplaceAll(text, `"`, "#quot;"))
}

func (c *chart) edge(from, to string) {
	c.lines = append(c.lines, from+" --> "+to)
}

func (c *chart) walk(e parser.Expression) string {
	switch x := e.(type) {
	case parser.Identifier:
		return c.label("Identifier", x.Name)
	case parser.Number:
		return c.label("Number", strconv.FormatFloat(x.Value, 'f', -1, 64))
	case parser.Char:
		return c.label("Char", "'"+string(rune(x.Value))+"'")
	case parser.Bool:
		return c.label("Bool", strconv.FormatBool(x.Value))
	case parser.Array:
		if x.ElementType.Kind == parser.KindChar && parser.IsValue(x) {
			if s, ok := text(x); ok {
				return c.label("String", strconv.Quote(s))
			}
		}
		node := c.label("Array", "["+x.ElementType.String()+"]")
		for _, el := range x.Elements {
			c.edge(node, c.walk(el))
		}
		return node
	case parser.FunctionDeclaration:
		params := make([]string, len(x.Parameters))
		for i, p := range x.Parameters {
			params[i] = p.Name + ":" + p.Type.String()
		}
		node := c.label("Function", fmt.Sprintf("(%s):%s", strings.Join(params, ", "), x.ReturnType))
		c.edge(node, c.walk(x.Body))
		return node
	case parser.FunctionCall:
		node := c.label("Call", x.Name)
		for _, a := range x.Arguments {
			c.edge(node, c.walk(a))
		}
		return node
	case parser.Match:
		node := c.label("Match", "?")
		c.edge(node, c.walk(x.Scrutinee))
		for _, arm := range x.Arms {
			a := c.label("Arm", "=>")
			c.edge(node, a)
			c.edge(a, c.walk(arm.Pattern))
			c.edge(a, c.walk(arm.Result))
		}
		if x.Default != nil {
			d := c.label("Default", "_")
			c.edge(node, d)
			c.edge(d, c.walk(x.Default))
		}
		return node
	case parser.BinaryOperation:
		op := x.Operator.String()
		node := c.label(op, op)
		c.edge(node, c.walk(x.Left))
		c.edge(node, c.walk(x.Right))
		return node
	default:
		return c.label("Unknown", fmt.Sprintf("%T", e))
	}
}

func text(arr parser.Array) (string, bool) {
	var b strings.Builder
	for _, el := range arr.Elements {
		ch, ok := el.(parser.Char)
		if !ok {
			return "", false
		}
		b.WriteByte(ch.Value)
	}
	return b.String(), true
}
