package evaluator

import (
	"errors"
	"fmt"
)

var (
	ErrUnboundName          = errors.New("unbound name")
	ErrTypeMismatch         = errors.New("type mismatch")
	ErrInvalidCall          = errors.New("invalid call")
	ErrArity                = errors.New("wrong number of arguments")
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrUnknownExpression    = errors.New("unknown expression")
	ErrNoMatch              = errors.New("no matching pattern")
	ErrFormat               = errors.New("cannot format value")
	ErrRecursionLimit       = errors.New("recursion limit exceeded")
)

// RuntimeError reports which top-level statement failed. Statement is
// 1-based; Name is the declared name for declarations.
type RuntimeError struct {
	Statement int
	Name      string
	Err       error
}

func (e *RuntimeError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("statement %d (let %s): %v", e.Statement, e.Name, e.Err)
	}
	return fmt.Sprintf("statement %d: %v", e.Statement, e.Err)
}

func (e *RuntimeError) Unwrap() error { return e.Err }
