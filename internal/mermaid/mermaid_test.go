package mermaid

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/ridulfo/nino-lang/internal/lexer"
	"github.com/ridulfo/nino-lang/internal/parser"
)

func parse(t *testing.T, src string) []parser.Item {
	t.Helper()
	items, err := parser.Parse(lexer.Lex(src))
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", src, err)
	}
	return items
}

func TestRender(t *testing.T) {
	got, err := Render("1 + 2 * 3;")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	expected := "1 + 2 * 3;\n" +
		"```mermaid\n" +
		"flowchart TD\n" +
		"Add_0[\"Add\"] --> Number_1[\"1\"]\n" +
		"Multiply_2[\"Multiply\"] --> Number_3[\"2\"]\n" +
		"Multiply_2[\"Multiply\"] --> Number_4[\"3\"]\n" +
		"Add_0[\"Add\"] --> Multiply_2[\"Multiply\"]\n" +
		"```"
	if got != expected {
		t.Errorf("Render() =\n%s\nwant\n%s", got, expected)
	}
}

func TestChart(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "single leaf",
			input:    "x;",
			expected: []string{`Identifier_0["x"]`},
		},
		{
			name:  "declaration",
			input: "let y:num = x - 1;",
			expected: []string{
				`Subtract_1["Subtract"] --> Identifier_2["x"]`,
				`Subtract_1["Subtract"] --> Number_3["1"]`,
				`Declaration_0["let y:num"] --> Subtract_1["Subtract"]`,
			},
		},
		{
			name:  "call with string",
			input: `print("hi");`,
			expected: []string{
				`Call_0["print"] --> String_1["#quot;hi#quot;"]`,
			},
		},
		{
			name:  "match",
			input: "n ? { 0 => 1, 2 };",
			expected: []string{
				`Match_0["?"] --> Identifier_1["n"]`,
				`Match_0["?"] --> Arm_2["=>"]`,
				`Arm_2["=>"] --> Number_3["0"]`,
				`Arm_2["=>"] --> Number_4["1"]`,
				`Match_0["?"] --> Default_5["_"]`,
				`Default_5["_"] --> Number_6["2"]`,
			},
		},
		{
			name:  "function",
			input: "(x:num):num => x;",
			expected: []string{
				`Function_0["(x:num):num"] --> Identifier_1["x"]`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := parse(t, tt.input)
			if got := Chart(items[0]); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Chart() =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(tt.expected, "\n"))
			}
		})
	}
}

func TestRenderErrors(t *testing.T) {
	if _, err := Render(""); !errors.Is(err, ErrEmpty) {
		t.Errorf("Render(\"\") error = %v, want ErrEmpty", err)
	}
	_, err := Render("1 +;")
	var pe *parser.ParserError
	if !errors.As(err, &pe) {
		t.Errorf("Render() error = %v, want *parser.ParserError", err)
	}
}
