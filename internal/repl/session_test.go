package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ridulfo/nino-lang/internal/diag"
	"github.com/ridulfo/nino-lang/internal/evaluator"
)

func newSession() (*Session, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	ev := evaluator.New(&out)
	return NewSession(ev, &out, &errOut, diag.Renderer{}), &out, &errOut
}

func TestPrepare(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		more     bool
	}{
		{"", "", false},
		{"   ", "", false},
		{":env", ":env", false},
		{"1 + 2;", "1 + 2;", false},
		{"1 + 2", "1 + 2;", false},
		{"let x:num = 3", "let x:num = 3;", false},
		{"let f:fn = (n:num):num => n ? {", "let f:fn = (n:num):num => n ? {", true},
		{"let f:fn = (n:num):num => n ? {\n0 => 1,\n2\n}", "let f:fn = (n:num):num => n ? {\n0 => 1,\n2\n};", false},
		{"1 +", "1 +", true},
		{"let x: = 3;", "let x: = 3;", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, more := Prepare(tt.input)
			if got != tt.expected || more != tt.more {
				t.Errorf("Prepare(%q) = %q, %v, want %q, %v", tt.input, got, more, tt.expected, tt.more)
			}
		})
	}
}

func TestHandle(t *testing.T) {
	s, out, errOut := newSession()

	for _, src := range []string{
		"let x:num = 20;",
		"let add:fn = (a:num, b:num):num => a + b;",
		"add(x, 1);",
		`print("hi");`,
		"add;",
	} {
		if !s.Handle(src) {
			t.Fatalf("Handle(%q) asked to quit", src)
		}
	}

	expected := "x:num\nadd:fn\n21\nhi\nhi\n<fn>\n"
	if out.String() != expected {
		t.Errorf("output = %q, want %q", out.String(), expected)
	}
	if errOut.Len() != 0 {
		t.Errorf("unexpected errors: %q", errOut.String())
	}
}

func TestHandleErrorsKeepSession(t *testing.T) {
	s, out, errOut := newSession()

	s.Handle("let x: = 3;")
	if !strings.Contains(errOut.String(), "parse error: expected type name") {
		t.Errorf("missing parse diagnostic in %q", errOut.String())
	}
	errOut.Reset()

	s.Handle("y + 1;")
	if !strings.Contains(errOut.String(), "runtime error: unbound name: y") {
		t.Errorf("missing runtime error in %q", errOut.String())
	}

	s.Handle("let y:num = 1;")
	s.Handle("y + 1;")
	if !strings.HasSuffix(out.String(), "2\n") {
		t.Errorf("output = %q, want it to end with 2", out.String())
	}
}

func TestCommands(t *testing.T) {
	s, out, errOut := newSession()
	s.Handle("let b:[char] = \"hey\";")
	s.Handle("let a:num = 1;")
	out.Reset()

	if !s.Handle(":env") {
		t.Fatal(":env asked to quit")
	}
	if got, want := out.String(), "a:num = 1\nb:[char] = hey\n"; got != want {
		t.Errorf(":env output = %q, want %q", got, want)
	}

	out.Reset()
	s.Handle(":help")
	if !strings.Contains(out.String(), ":quit") {
		t.Errorf(":help output = %q", out.String())
	}

	s.Handle(":nope")
	if !strings.Contains(errOut.String(), "unknown command :nope") {
		t.Errorf("errors = %q", errOut.String())
	}

	if s.Handle(":quit") {
		t.Error(":quit did not stop the session")
	}
}
