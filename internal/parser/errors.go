package parser

import (
	"errors"
	"fmt"

	"github.com/ridulfo/nino-lang/internal/lexer"
)

// ParserError rejects a whole program. Token, when set, carries the span a
// front end underlines in its diagnostic.
type ParserError struct {
	Message string
	Token   *lexer.Token
}

func (e *ParserError) Error() string {
	if e.Token == nil {
		return e.Message
	}
	return fmt.Sprintf("%s (at offset %d)", e.Message, e.Token.Begin)
}

func errorf(t lexer.Token, format string, args ...any) *ParserError {
	return &ParserError{Message: fmt.Sprintf(format, args...), Token: &t}
}

// IsIncomplete reports whether err was raised at end of input, meaning more
// source could still turn the program into a valid one.
func IsIncomplete(err error) bool {
	var pe *ParserError
	if !errors.As(err, &pe) || pe.Token == nil {
		return false
	}
	return pe.Token.Kind == lexer.EOF
}

// furthest picks the error that got deeper into the input; between two
// failed alternatives that one is usually the informative one.
func furthest(a, b error) error {
	var pa, pb *ParserError
	if !errors.As(a, &pa) || pa.Token == nil {
		return b
	}
	if !errors.As(b, &pb) || pb.Token == nil {
		return a
	}
	if pb.Token.Begin > pa.Token.Begin {
		return b
	}
	return a
}

func describe(t lexer.Token) string {
	switch t.Kind {
	case lexer.EOF:
		return "end of input"
	case lexer.ILLEGAL:
		return fmt.Sprintf("illegal input %q", t.Lit)
	default:
		return fmt.Sprintf("%q", t.Lit)
	}
}
