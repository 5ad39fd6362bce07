package parser

import "fmt"

// TypeKind enumerates the declared types of the language.
type TypeKind int

const (
	KindNumber TypeKind = iota
	KindChar
	KindBoolean
	KindFunction
	KindArray
)

// Type is a declared type. Elem is only set for KindArray.
// Declared types are metadata; the evaluator never checks them.
type Type struct {
	Kind TypeKind
	Elem *Type
}

var (
	TypeNumber   = Type{Kind: KindNumber}
	TypeChar     = Type{Kind: KindChar}
	TypeBoolean  = Type{Kind: KindBoolean}
	TypeFunction = Type{Kind: KindFunction}
)

// ArrayOf returns the array type with the given element type.
func ArrayOf(elem Type) Type { return Type{Kind: KindArray, Elem: &elem} }

func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind {
		return false
	}
	if t.Kind != KindArray {
		return true
	}
	if t.Elem == nil || o.Elem == nil {
		return t.Elem == o.Elem
	}
	return t.Elem.Equal(*o.Elem)
}

// String renders the type in source syntax.
func (t Type) String() string {
	switch t.Kind {
	case KindNumber:
		return "num"
	case KindChar:
		return "char"
	case KindBoolean:
		return "bool"
	case KindFunction:
		return "fn"
	case KindArray:
		if t.Elem == nil {
			return "[?]"
		}
		return "[" + t.Elem.String() + "]"
	default:
		return fmt.Sprintf("type(%d)", int(t.Kind))
	}
}

// Operator is a binary operator.
type Operator int

const (
	Add Operator = iota
	Subtract
	Multiply
	Divide
	Modulo
	Equal
	NotEqual
	LessThan
	LessEqualThan
	GreaterThan
	GreaterEqualThan
	And
	Or
)

var operatorNames = [...]string{
	Add: "Add", Subtract: "Subtract", Multiply: "Multiply", Divide: "Divide", Modulo: "Modulo",
	Equal: "Equal", NotEqual: "NotEqual", LessThan: "LessThan", LessEqualThan: "LessEqualThan",
	GreaterThan: "GreaterThan", GreaterEqualThan: "GreaterEqualThan", And: "And", Or: "Or",
}

var operatorSymbols = [...]string{
	Add: "+", Subtract: "-", Multiply: "*", Divide: "/", Modulo: "%",
	Equal: "==", NotEqual: "!=", LessThan: "<", LessEqualThan: "<=",
	GreaterThan: ">", GreaterEqualThan: ">=", And: "&&", Or: "||",
}

func (o Operator) String() string {
	if o < 0 || int(o) >= len(operatorNames) {
		return fmt.Sprintf("Operator(%d)", int(o))
	}
	return operatorNames[o]
}

// Symbol returns the operator as written in source.
func (o Operator) Symbol() string {
	if o < 0 || int(o) >= len(operatorSymbols) {
		return "?"
	}
	return operatorSymbols[o]
}

// Expression is a node of the AST. Nodes are plain values and are never
// mutated after parsing.
type Expression interface{ isExpression() }

type Identifier struct {
	Name string
}

type Number struct {
	Value float64
}

type Char struct {
	Value byte
}

type Bool struct {
	Value bool
}

// Array is a value form once every element is one. ElementType is the
// authoritative tag for formatting, equality and concatenation.
type Array struct {
	ElementType Type
	Elements    []Expression
}

type Parameter struct {
	Name string
	Type Type
}

// FunctionDeclaration is a function literal. It captures nothing; free names
// in Body resolve against the caller's scope chain.
type FunctionDeclaration struct {
	Parameters []Parameter
	ReturnType Type
	Body       Expression
}

type FunctionCall struct {
	Name      string
	Arguments []Expression
}

type MatchArm struct {
	Pattern Expression
	Result  Expression
}

// Match is `scrutinee ? { pattern => result, ..., default }`.
// Default is nil when the source has no bare trailing arm.
type Match struct {
	Scrutinee Expression
	Arms      []MatchArm
	Default   Expression
}

type BinaryOperation struct {
	Operator Operator
	Left     Expression
	Right    Expression
}

func (Identifier) isExpression()          {}
func (Number) isExpression()              {}
func (Char) isExpression()                {}
func (Bool) isExpression()                {}
func (Array) isExpression()               {}
func (FunctionDeclaration) isExpression() {}
func (FunctionCall) isExpression()        {}
func (Match) isExpression()               {}
func (BinaryOperation) isExpression()     {}

// Item is a top-level unit of a program.
type Item interface{ isItem() }

// Declaration binds Name to Expression. For function-typed declarations the
// expression is kept unevaluated so the body can refer to its own name.
type Declaration struct {
	Name       string
	Type       Type
	Expression Expression
}

// ExpressionStatement is a bare `expr;` evaluated for its effects.
type ExpressionStatement struct {
	Expression Expression
}

func (Declaration) isItem()         {}
func (ExpressionStatement) isItem() {}

// IsValue reports whether e needs no further reduction.
func IsValue(e Expression) bool {
	switch x := e.(type) {
	case Number, Char, Bool:
		return true
	case Array:
		for _, el := range x.Elements {
			if !IsValue(el) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
