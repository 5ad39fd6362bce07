package evaluator

import (
	"fmt"
	"math"

	"github.com/ridulfo/nino-lang/internal/parser"
)

func binary(op parser.Operator, l, r parser.Expression) (parser.Expression, error) {
	switch x := l.(type) {
	case parser.Number:
		if y, ok := r.(parser.Number); ok {
			return numberOp(op, x.Value, y.Value)
		}
	case parser.Array:
		if y, ok := r.(parser.Array); ok {
			return arrayOp(op, x, y)
		}
	}
	return nil, fmt.Errorf("%w: %s %s %s", ErrUnsupportedOperation, typeName(l), op.Symbol(), typeName(r))
}

func numberOp(op parser.Operator, a, b float64) (parser.Expression, error) {
	switch op {
	case parser.Add:
		return parser.Number{Value: a + b}, nil
	case parser.Subtract:
		return parser.Number{Value: a - b}, nil
	case parser.Multiply:
		return parser.Number{Value: a * b}, nil
	case parser.Divide:
		return parser.Number{Value: a / b}, nil
	case parser.Modulo:
		return parser.Number{Value: math.Mod(a, b)}, nil
	case parser.Equal:
		return parser.Bool{Value: a == b}, nil
	case parser.NotEqual:
		return parser.Bool{Value: a != b}, nil
	case parser.LessThan:
		return parser.Bool{Value: a < b}, nil
	case parser.LessEqualThan:
		return parser.Bool{Value: a <= b}, nil
	case parser.GreaterThan:
		return parser.Bool{Value: a > b}, nil
	case parser.GreaterEqualThan:
		return parser.Bool{Value: a >= b}, nil
	}
	return nil, fmt.Errorf("%w: num %s num", ErrUnsupportedOperation, op.Symbol())
}

func arrayOp(op parser.Operator, a, b parser.Array) (parser.Expression, error) {
	switch op {
	case parser.Equal:
		return parser.Bool{Value: valuesEqual(a, b)}, nil
	case parser.Add:
		if !a.ElementType.Equal(b.ElementType) {
			return nil, fmt.Errorf("%w: cannot concatenate %s and %s", ErrTypeMismatch, typeName(a), typeName(b))
		}
		elems := make([]parser.Expression, 0, len(a.Elements)+len(b.Elements))
		elems = append(elems, a.Elements...)
		elems = append(elems, b.Elements...)
		return parser.Array{ElementType: a.ElementType, Elements: elems}, nil
	}
	return nil, fmt.Errorf("%w: %s %s %s", ErrUnsupportedOperation, typeName(a), op.Symbol(), typeName(b))
}

// valuesEqual compares value forms structurally. Array element tags are
// ignored so "ab" equals ['a', 'b'] however either side was declared.
func valuesEqual(a, b parser.Expression) bool {
	switch x := a.(type) {
	case parser.Number:
		y, ok := b.(parser.Number)
		return ok && x.Value == y.Value
	case parser.Char:
		y, ok := b.(parser.Char)
		return ok && x.Value == y.Value
	case parser.Bool:
		y, ok := b.(parser.Bool)
		return ok && x.Value == y.Value
	case parser.Array:
		y, ok := b.(parser.Array)
		if !ok || len(x.Elements) != len(y.Elements) {
			return false
		}
		for i := range x.Elements {
			if !valuesEqual(x.Elements[i], y.Elements[i]) {
				return false
			}
		}
		return true
	}
	return false
}
