package parser

// Node is the encoder-neutral form of an AST node; `type` names the variant.
type Node = map[string]any

// Dump converts a program into plain maps and slices for JSON or YAML output.
func Dump(items []Item) []Node {
	out := make([]Node, 0, len(items))
	for _, it := range items {
		switch x := it.(type) {
		case Declaration:
			out = append(out, Node{
				"type":       "Declaration",
				"name":       x.Name,
				"declared":   x.Type.String(),
				"expression": DumpExpression(x.Expression),
			})
		case ExpressionStatement:
			out = append(out, Node{
				"type":       "Expression",
				"expression": DumpExpression(x.Expression),
			})
		}
	}
	return out
}

// DumpExpression converts a single expression tree.
func DumpExpression(e Expression) Node {
	switch x := e.(type) {
	case Identifier:
		return Node{"type": "Identifier", "name": x.Name}
	case Number:
		return Node{"type": "Number", "value": x.Value}
	case Char:
		return Node{"type": "Char", "value": string(rune(x.Value))}
	case Bool:
		return Node{"type": "Bool", "value": x.Value}
	case Array:
		return Node{"type": "Array", "element_type": x.ElementType.String(), "elements": dumpAll(x.Elements)}
	case FunctionDeclaration:
		params := make([]Node, 0, len(x.Parameters))
		for _, p := range x.Parameters {
			params = append(params, Node{"name": p.Name, "declared": p.Type.String()})
		}
		return Node{
			"type":        "FunctionDeclaration",
			"parameters":  params,
			"return_type": x.ReturnType.String(),
			"body":        DumpExpression(x.Body),
		}
	case FunctionCall:
		return Node{"type": "FunctionCall", "name": x.Name, "arguments": dumpAll(x.Arguments)}
	case Match:
		arms := make([]Node, 0, len(x.Arms))
		for _, a := range x.Arms {
			arms = append(arms, Node{"pattern": DumpExpression(a.Pattern), "result": DumpExpression(a.Result)})
		}
		n := Node{"type": "Match", "scrutinee": DumpExpression(x.Scrutinee), "arms": arms}
		if x.Default != nil {
			n["default"] = DumpExpression(x.Default)
		}
		return n
	case BinaryOperation:
		return Node{
			"type":     "BinaryOperation",
			"operator": x.Operator.String(),
			"left":     DumpExpression(x.Left),
			"right":    DumpExpression(x.Right),
		}
	case nil:
		return nil
	default:
		return Node{"type": "Unknown"}
	}
}

func dumpAll(es []Expression) []Node {
	out := make([]Node, 0, len(es))
	for _, e := range es {
		out = append(out, DumpExpression(e))
	}
	return out
}
