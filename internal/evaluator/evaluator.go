package evaluator

import (
	"fmt"
	"io"
	"time"

	"fortio.org/log"

	"github.com/ridulfo/nino-lang/internal/parser"
)

// DefaultMaxDepth bounds nested Evaluate calls. Tail calls do not count
// against it; only non-tail recursion such as `n * f(n - 1)` does.
const DefaultMaxDepth = 100000

// Evaluator reduces expressions to value forms. It is single-threaded and
// owns the root environment that Run mutates.
type Evaluator struct {
	out      io.Writer
	root     *Env
	now      func() time.Time
	maxDepth int
	depth    int
}

type Option func(*Evaluator)

// WithClock replaces the clock used by the time builtin.
func WithClock(now func() time.Time) Option {
	return func(ev *Evaluator) { ev.now = now }
}

// WithMaxDepth sets the nesting limit; n <= 0 disables it.
func WithMaxDepth(n int) Option {
	return func(ev *Evaluator) { ev.maxDepth = n }
}

// New returns an evaluator whose print builtins write to w.
func New(w io.Writer, opts ...Option) *Evaluator {
	ev := &Evaluator{out: w, root: NewEnv(nil), now: time.Now, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(ev)
	}
	return ev
}

// Root is the environment top-level declarations are stored in.
func (ev *Evaluator) Root() *Env { return ev.root }

// Run executes a program in order. The first failing statement stops the
// run and is reported as a *RuntimeError.
func (ev *Evaluator) Run(items []parser.Item) error {
	for i, it := range items {
		if _, err := ev.Exec(it); err != nil {
			re := &RuntimeError{Statement: i + 1, Err: err}
			if d, ok := it.(parser.Declaration); ok {
				re.Name = d.Name
			}
			return re
		}
	}
	return nil
}

// Exec executes one item against the root environment and returns the value
// it produced: the stored expression for a declaration, the result for an
// expression statement.
func (ev *Evaluator) Exec(item parser.Item) (parser.Expression, error) {
	switch it := item.(type) {
	case parser.Declaration:
		// Functions are stored as written so their bodies can call them by name.
		if _, ok := it.Expression.(parser.FunctionDeclaration); !ok {
			v, err := ev.Evaluate(it.Expression, ev.root)
			if err != nil {
				return nil, err
			}
			it.Expression = v
		}
		log.LogVf("define %s:%s", it.Name, it.Type)
		ev.root.Define(it.Name, it)
		return it.Expression, nil
	case parser.ExpressionStatement:
		return ev.Evaluate(it.Expression, ev.root)
	default:
		return nil, fmt.Errorf("%w: item %T", ErrUnknownExpression, item)
	}
}

// Evaluate reduces expr to a value form in a fresh frame over env.
//
// The loop is a trampoline. Identifier resolution, the body of a user
// function call and a match's default arm replace the loop state and
// continue; everything else (operands, arguments, patterns, the selected
// arm) recurses. A tail-recursive program therefore runs in constant Go
// stack.
func (ev *Evaluator) Evaluate(expr parser.Expression, env *Env) (parser.Expression, error) {
	if ev.maxDepth > 0 && ev.depth >= ev.maxDepth {
		return nil, fmt.Errorf("%w: more than %d nested evaluations", ErrRecursionLimit, ev.maxDepth)
	}
	ev.depth++
	defer func() { ev.depth-- }()

	current := expr
	frame := NewEnv(env)
	for {
		switch e := current.(type) {
		case parser.Number, parser.Char, parser.Bool, parser.FunctionDeclaration:
			return current, nil

		case parser.Array:
			return ev.evalArray(e, frame)

		case parser.Identifier:
			d, ok := frame.Get(e.Name)
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnboundName, e.Name)
			}
			current = d.Expression

		case parser.FunctionCall:
			if b, ok := builtins[e.Name]; ok {
				return ev.callBuiltin(b, e, frame)
			}
			fn, err := lookupFunction(e.Name, frame)
			if err != nil {
				return nil, err
			}
			if len(e.Arguments) != len(fn.Parameters) {
				return nil, fmt.Errorf("%w: %s expects %d, got %d", ErrArity, e.Name, len(fn.Parameters), len(e.Arguments))
			}
			bound := make([]parser.Declaration, len(fn.Parameters))
			for i, p := range fn.Parameters {
				v, err := ev.Evaluate(e.Arguments[i], frame)
				if err != nil {
					return nil, err
				}
				bound[i] = parser.Declaration{Name: p.Name, Type: p.Type, Expression: v}
			}
			// frame belongs to this invocation alone and every argument is
			// already reduced, so rebinding it in place is indistinguishable
			// from pushing a new child frame and keeps the chain from
			// growing with each tail call.
			for _, d := range bound {
				frame.Define(d.Name, d)
			}
			log.LogVf("tail call %s/%d depth=%d", e.Name, len(bound), ev.depth)
			current = fn.Body

		case parser.BinaryOperation:
			left, err := ev.Evaluate(e.Left, frame)
			if err != nil {
				return nil, err
			}
			right, err := ev.Evaluate(e.Right, frame)
			if err != nil {
				return nil, err
			}
			return binary(e.Operator, left, right)

		case parser.Match:
			scrutinee, err := ev.Evaluate(e.Scrutinee, frame)
			if err != nil {
				return nil, err
			}
			for i, arm := range e.Arms {
				pattern, err := ev.Evaluate(arm.Pattern, frame)
				if err != nil {
					return nil, err
				}
				if variant(pattern) != variant(scrutinee) {
					return nil, fmt.Errorf("%w: cannot match %s against pattern of type %s", ErrTypeMismatch, typeName(scrutinee), typeName(pattern))
				}
				if valuesEqual(scrutinee, pattern) {
					log.LogVf("match arm %d selected", i)
					return ev.Evaluate(arm.Result, frame)
				}
			}
			if e.Default == nil {
				return nil, fmt.Errorf("%w for %s", ErrNoMatch, mustFormat(scrutinee))
			}
			current = e.Default

		case nil:
			return nil, fmt.Errorf("%w: empty expression", ErrUnknownExpression)

		default:
			return nil, fmt.Errorf("%w: %T", ErrUnknownExpression, current)
		}
	}
}

func (ev *Evaluator) evalArray(arr parser.Array, env *Env) (parser.Expression, error) {
	if parser.IsValue(arr) {
		return arr, nil
	}
	elems := make([]parser.Expression, len(arr.Elements))
	for i, el := range arr.Elements {
		v, err := ev.Evaluate(el, env)
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return parser.Array{ElementType: arr.ElementType, Elements: elems}, nil
}

func lookupFunction(name string, env *Env) (parser.FunctionDeclaration, error) {
	d, ok := env.Get(name)
	if !ok {
		return parser.FunctionDeclaration{}, fmt.Errorf("%w: %s", ErrUnboundName, name)
	}
	fn, ok := d.Expression.(parser.FunctionDeclaration)
	if !ok {
		return parser.FunctionDeclaration{}, fmt.Errorf("%w: %s is %s, not a function", ErrInvalidCall, name, typeName(d.Expression))
	}
	return fn, nil
}

// variant names the expression variant without the array element tag.
func variant(e parser.Expression) string {
	switch e.(type) {
	case parser.Array:
		return "array"
	default:
		return typeName(e)
	}
}

func typeName(e parser.Expression) string {
	switch x := e.(type) {
	case parser.Number:
		return "num"
	case parser.Char:
		return "char"
	case parser.Bool:
		return "bool"
	case parser.Array:
		return "[" + x.ElementType.String() + "]"
	case parser.FunctionDeclaration:
		return "fn"
	case parser.Identifier:
		return "identifier"
	case parser.FunctionCall:
		return "call"
	case parser.Match:
		return "match"
	case parser.BinaryOperation:
		return "operation"
	default:
		return fmt.Sprintf("%T", e)
	}
}
