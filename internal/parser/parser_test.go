package parser

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ridulfo/nino-lang/internal/lexer"
)

func parseSource(t *testing.T, src string) []Item {
	t.Helper()
	items, err := Parse(lexer.Lex(src))
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", src, err)
	}
	return items
}

func num(v float64) Number { return Number{Value: v} }

func bin(op Operator, l, r Expression) BinaryOperation {
	return BinaryOperation{Operator: op, Left: l, Right: r}
}

func chars(s string) Array {
	elems := []Expression{}
	for i := 0; i < len(s); i++ {
		elems = append(elems, Char{Value: s[i]})
	}
	return Array{ElementType: TypeChar, Elements: elems}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Item
	}{
		{
			name:     "Number declaration",
			input:    "let x:num = 3;",
			expected: []Item{Declaration{Name: "x", Type: TypeNumber, Expression: num(3)}},
		},
		{
			name:     "Float declaration",
			input:    "let x:num = 3.0;",
			expected: []Item{Declaration{Name: "x", Type: TypeNumber, Expression: num(3)}},
		},
		{
			name:     "Negative number",
			input:    "let x:num = -3.0;",
			expected: []Item{Declaration{Name: "x", Type: TypeNumber, Expression: num(-3)}},
		},
		{
			name:  "Negated identifier",
			input: "let y:num = -x;",
			expected: []Item{Declaration{Name: "y", Type: TypeNumber,
				Expression: bin(Subtract, num(0), Identifier{Name: "x"})}},
		},
		{
			name:     "Char declaration",
			input:    "let x:char = 'a';",
			expected: []Item{Declaration{Name: "x", Type: TypeChar, Expression: Char{Value: 'a'}}},
		},
		{
			name:     "Bool declaration",
			input:    "let x:bool = true;",
			expected: []Item{Declaration{Name: "x", Type: TypeBoolean, Expression: Bool{Value: true}}},
		},
		{
			name:  "Precedence",
			input: "let x:bool = 1+3>2 == 1;",
			expected: []Item{Declaration{Name: "x", Type: TypeBoolean,
				Expression: bin(Equal, bin(GreaterThan, bin(Add, num(1), num(3)), num(2)), num(1))}},
		},
		{
			name:  "Factor binds tighter than term",
			input: "1 + 2 * 3 % 4;",
			expected: []Item{ExpressionStatement{
				Expression: bin(Add, num(1), bin(Modulo, bin(Multiply, num(2), num(3)), num(4)))}},
		},
		{
			name:  "Left associativity",
			input: "10 - 4 - 3;",
			expected: []Item{ExpressionStatement{
				Expression: bin(Subtract, bin(Subtract, num(10), num(4)), num(3))}},
		},
		{
			name:  "Group",
			input: "(1 * 2) + 3;",
			expected: []Item{ExpressionStatement{
				Expression: bin(Add, bin(Multiply, num(1), num(2)), num(3))}},
		},
		{
			name:  "Function declaration",
			input: "let add:fn = (x:num, y:num):num => x+y;",
			expected: []Item{Declaration{Name: "add", Type: TypeFunction, Expression: FunctionDeclaration{
				Parameters: []Parameter{{Name: "x", Type: TypeNumber}, {Name: "y", Type: TypeNumber}},
				ReturnType: TypeNumber,
				Body:       bin(Add, Identifier{Name: "x"}, Identifier{Name: "y"}),
			}}},
		},
		{
			name:  "Function without parameters",
			input: "let one:fn = ():num => 1;",
			expected: []Item{Declaration{Name: "one", Type: TypeFunction, Expression: FunctionDeclaration{
				Parameters: []Parameter{},
				ReturnType: TypeNumber,
				Body:       num(1),
			}}},
		},
		{
			name:  "Match with default",
			input: "let x:num = 1 ? {1 => 2, 2 => 3, 4 };",
			expected: []Item{Declaration{Name: "x", Type: TypeNumber, Expression: Match{
				Scrutinee: num(1),
				Arms:      []MatchArm{{Pattern: num(1), Result: num(2)}, {Pattern: num(2), Result: num(3)}},
				Default:   num(4),
			}}},
		},
		{
			name:  "Match without default",
			input: "x ? { 1 => 2 };",
			expected: []Item{ExpressionStatement{Expression: Match{
				Scrutinee: Identifier{Name: "x"},
				Arms:      []MatchArm{{Pattern: num(1), Result: num(2)}},
			}}},
		},
		{
			name:  "Number array",
			input: "let x:[num] = [1, 2, 3];",
			expected: []Item{Declaration{Name: "x", Type: ArrayOf(TypeNumber),
				Expression: Array{ElementType: TypeNumber, Elements: []Expression{num(1), num(2), num(3)}}}},
		},
		{
			name:  "Char array takes declared tag",
			input: "let s:[char] = ['h', 'i'];",
			expected: []Item{Declaration{Name: "s", Type: ArrayOf(TypeChar),
				Expression: Array{ElementType: TypeChar, Elements: []Expression{Char{Value: 'h'}, Char{Value: 'i'}}}}},
		},
		{
			name:     "String",
			input:    `let x:[char] = "nino";`,
			expected: []Item{Declaration{Name: "x", Type: ArrayOf(TypeChar), Expression: chars("nino")}},
		},
		{
			name:     "String escapes",
			input:    `"a\n\"b\"";`,
			expected: []Item{ExpressionStatement{Expression: chars("a\n\"b\"")}},
		},
		{
			name:  "Empty array",
			input: "[];",
			expected: []Item{ExpressionStatement{
				Expression: Array{ElementType: TypeNumber, Elements: []Expression{}}}},
		},
		{
			name:  "Nested array type",
			input: "let m:[[num]] = [];",
			expected: []Item{Declaration{Name: "m", Type: ArrayOf(ArrayOf(TypeNumber)),
				Expression: Array{ElementType: ArrayOf(TypeNumber), Elements: []Expression{}}}},
		},
		{
			name:  "Call",
			input: "print(f(1, 2), time());",
			expected: []Item{ExpressionStatement{Expression: FunctionCall{Name: "print", Arguments: []Expression{
				FunctionCall{Name: "f", Arguments: []Expression{num(1), num(2)}},
				FunctionCall{Name: "time", Arguments: []Expression{}},
			}}}},
		},
		{
			name:     "Empty program",
			input:    "# nothing here\n",
			expected: []Item{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseSource(t, tt.input)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Parse(%q)\n got: %#v\nwant: %#v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseGroupVersusFunction(t *testing.T) {
	t.Run("GroupBeforeMatch", func(t *testing.T) {
		items := parseSource(t, "(1+2) ? { 3 => true, false };")
		expected := ExpressionStatement{Expression: Match{
			Scrutinee: bin(Add, num(1), num(2)),
			Arms:      []MatchArm{{Pattern: num(3), Result: Bool{Value: true}}},
			Default:   Bool{Value: false},
		}}
		if !reflect.DeepEqual(items[0], expected) {
			t.Errorf("got %#v", items[0])
		}
	})

	t.Run("FunctionLiteral", func(t *testing.T) {
		items := parseSource(t, "(x:num):num=>x+1;")
		expected := ExpressionStatement{Expression: FunctionDeclaration{
			Parameters: []Parameter{{Name: "x", Type: TypeNumber}},
			ReturnType: TypeNumber,
			Body:       bin(Add, Identifier{Name: "x"}, num(1)),
		}}
		if !reflect.DeepEqual(items[0], expected) {
			t.Errorf("got %#v", items[0])
		}
	})

	t.Run("FunctionBodyWithMatch", func(t *testing.T) {
		items := parseSource(t, "let f:fn = (n:num):num => n ? { 0 => 1, n * f(n - 1) };")
		decl := items[0].(Declaration)
		fn, ok := decl.Expression.(FunctionDeclaration)
		if !ok {
			t.Fatalf("expected FunctionDeclaration, got %T", decl.Expression)
		}
		m, ok := fn.Body.(Match)
		if !ok {
			t.Fatalf("expected Match body, got %T", fn.Body)
		}
		want := bin(Multiply, Identifier{Name: "n"},
			FunctionCall{Name: "f", Arguments: []Expression{bin(Subtract, Identifier{Name: "n"}, num(1))}})
		if !reflect.DeepEqual(m.Default, want) {
			t.Errorf("default arm: got %#v", m.Default)
		}
	})

	t.Run("FailedGroupDoesNotConsume", func(t *testing.T) {
		p := New(lexer.Lex("(x:num):num => x"))
		if _, err := p.attempt(p.parseGroup); err == nil {
			t.Fatal("group parse unexpectedly succeeded")
		}
		if p.i != 0 {
			t.Errorf("cursor moved to %d after failed attempt", p.i)
		}
	})
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		tokenKind lexer.Kind
		begin     int
	}{
		{"Missing type", "let x: = 3.0;", lexer.ASSIGN, 7},
		{"Unknown type", "let x:f32 = 3;", lexer.TYPE, 6},
		{"Missing semicolon", "let x:num = 3", lexer.EOF, 12},
		{"Unexpected token", "let x:num = );", lexer.RPAREN, 12},
		{"Illegal character", "1 @ 2;", lexer.ILLEGAL, 2},
		{"Bang", "!true;", lexer.BANG, 0},
		{"Bad parameter list", "(1, 2):num => 3;", lexer.COMMA, 2},
		{"Missing arrow", "x ? { 1 2 };", lexer.NUM, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(lexer.Lex(tt.input))
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, expected error", tt.input)
			}
			var pe *ParserError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParserError, got %T", err)
			}
			if pe.Token == nil {
				t.Fatal("ParserError without token")
			}
			if pe.Token.Kind != tt.tokenKind || pe.Token.Begin != tt.begin {
				t.Errorf("error token: got %s@%d, want %s@%d (%s)", pe.Token.Kind, pe.Token.Begin, tt.tokenKind, tt.begin, pe.Message)
			}
		})
	}
}

func TestParseDeclaration(t *testing.T) {
	p := New(lexer.Lex("let x:num = 3;"))
	d, err := p.ParseDeclaration()
	if err != nil {
		t.Fatalf("ParseDeclaration failed: %v", err)
	}
	expected := Declaration{Name: "x", Type: TypeNumber, Expression: num(3)}
	if !reflect.DeepEqual(d, expected) {
		t.Errorf("got %#v, want %#v", d, expected)
	}

	if _, err := New(lexer.Lex("x = 3;")).ParseDeclaration(); err == nil {
		t.Error("expected error for declaration without let")
	}
}

func TestIsIncomplete(t *testing.T) {
	tests := []struct {
		input      string
		incomplete bool
	}{
		{"let f:fn = (x:num):num =>", true},
		{"print(1", true},
		{"1 + 2", true},
		{"let x:num = );", false},
		{"1 @", false},
	}
	for _, tt := range tests {
		_, err := Parse(lexer.Lex(tt.input))
		if err == nil {
			t.Fatalf("Parse(%q) unexpectedly succeeded", tt.input)
		}
		if got := IsIncomplete(err); got != tt.incomplete {
			t.Errorf("IsIncomplete(%q) = %v, want %v (%v)", tt.input, got, tt.incomplete, err)
		}
	}
}

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ      Type
		expected string
	}{
		{TypeNumber, "num"},
		{TypeChar, "char"},
		{TypeBoolean, "bool"},
		{TypeFunction, "fn"},
		{ArrayOf(TypeChar), "[char]"},
		{ArrayOf(ArrayOf(TypeNumber)), "[[num]]"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.expected {
			t.Errorf("String() = %q, want %q", got, tt.expected)
		}
	}
	if !ArrayOf(TypeNumber).Equal(ArrayOf(TypeNumber)) {
		t.Error("[num] should equal [num]")
	}
	if ArrayOf(TypeNumber).Equal(ArrayOf(TypeChar)) {
		t.Error("[num] should not equal [char]")
	}
}

func TestDump(t *testing.T) {
	items := parseSource(t, "let x:num = 1 + 2;")
	nodes := Dump(items)
	if len(nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(nodes))
	}
	if nodes[0]["type"] != "Declaration" || nodes[0]["declared"] != "num" {
		t.Errorf("unexpected declaration node: %v", nodes[0])
	}
	expr := nodes[0]["expression"].(Node)
	if expr["type"] != "BinaryOperation" || expr["operator"] != "Add" {
		t.Errorf("unexpected expression node: %v", expr)
	}
}
