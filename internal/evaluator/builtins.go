package evaluator

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/ridulfo/nino-lang/internal/parser"
)

type builtinFn func(ev *Evaluator, args []parser.Expression) (parser.Expression, error)

type builtin struct {
	name  string
	arity int
	impl  builtinFn
}

func newBuiltin(name string, arity int, impl builtinFn) *builtin {
	return &builtin{name: name, arity: arity, impl: impl}
}

// Builtins shadow user declarations of the same name.
var builtins = map[string]*builtin{
	"print":       newBuiltin("print", 1, builtinPrint),
	"debug_print": newBuiltin("debug_print", 1, builtinDebugPrint),
	"time":        newBuiltin("time", 0, builtinTime),
	"sqrt":        newBuiltin("sqrt", 1, numeric("sqrt", math.Sqrt)),
	"floor":       newBuiltin("floor", 1, numeric("floor", math.Floor)),
	"head":        newBuiltin("head", 1, builtinHead),
	"tail":        newBuiltin("tail", 1, builtinTail),
	"last":        newBuiltin("last", 1, builtinLast),
	"len":         newBuiltin("len", 1, builtinLen),
}

// IsBuiltin reports whether name resolves to a builtin.
func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

func (ev *Evaluator) callBuiltin(b *builtin, call parser.FunctionCall, env *Env) (parser.Expression, error) {
	if len(call.Arguments) != b.arity {
		return nil, fmt.Errorf("%w: %s expects %d, got %d", ErrArity, b.name, b.arity, len(call.Arguments))
	}
	args := make([]parser.Expression, len(call.Arguments))
	for i, a := range call.Arguments {
		v, err := ev.Evaluate(a, env)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return b.impl(ev, args)
}

func builtinPrint(ev *Evaluator, args []parser.Expression) (parser.Expression, error) {
	s, err := Format(args[0])
	if err != nil {
		return nil, err
	}
	if _, err := fmt.Fprintln(ev.out, s); err != nil {
		return nil, err
	}
	return args[0], nil
}

func builtinDebugPrint(ev *Evaluator, args []parser.Expression) (parser.Expression, error) {
	b, err := yaml.Marshal(parser.DumpExpression(args[0]))
	if err != nil {
		return nil, err
	}
	if _, err := ev.out.Write(b); err != nil {
		return nil, err
	}
	return args[0], nil
}

func builtinTime(ev *Evaluator, _ []parser.Expression) (parser.Expression, error) {
	return parser.Number{Value: float64(ev.now().UnixMilli())}, nil
}

func numeric(name string, f func(float64) float64) builtinFn {
	return func(_ *Evaluator, args []parser.Expression) (parser.Expression, error) {
		n, ok := args[0].(parser.Number)
		if !ok {
			return nil, fmt.Errorf("%w: %s expects num, got %s", ErrTypeMismatch, name, typeName(args[0]))
		}
		return parser.Number{Value: f(n.Value)}, nil
	}
}

func arrayArg(name string, v parser.Expression) (parser.Array, error) {
	arr, ok := v.(parser.Array)
	if !ok {
		return parser.Array{}, fmt.Errorf("%w: %s expects an array, got %s", ErrTypeMismatch, name, typeName(v))
	}
	return arr, nil
}

// head and last answer false for an empty array; tail returns it unchanged.

func builtinHead(_ *Evaluator, args []parser.Expression) (parser.Expression, error) {
	arr, err := arrayArg("head", args[0])
	if err != nil {
		return nil, err
	}
	if len(arr.Elements) == 0 {
		return parser.Bool{Value: false}, nil
	}
	return arr.Elements[0], nil
}

func builtinTail(_ *Evaluator, args []parser.Expression) (parser.Expression, error) {
	arr, err := arrayArg("tail", args[0])
	if err != nil {
		return nil, err
	}
	if len(arr.Elements) == 0 {
		return arr, nil
	}
	rest := make([]parser.Expression, len(arr.Elements)-1)
	copy(rest, arr.Elements[1:])
	return parser.Array{ElementType: arr.ElementType, Elements: rest}, nil
}

func builtinLast(_ *Evaluator, args []parser.Expression) (parser.Expression, error) {
	arr, err := arrayArg("last", args[0])
	if err != nil {
		return nil, err
	}
	if len(arr.Elements) == 0 {
		return parser.Bool{Value: false}, nil
	}
	return arr.Elements[len(arr.Elements)-1], nil
}

func builtinLen(_ *Evaluator, args []parser.Expression) (parser.Expression, error) {
	arr, err := arrayArg("len", args[0])
	if err != nil {
		return nil, err
	}
	return parser.Number{Value: float64(len(arr.Elements))}, nil
}
