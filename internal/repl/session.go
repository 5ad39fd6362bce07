// Package repl implements the interactive nino prompt.
package repl

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/log"

	"github.com/ridulfo/nino-lang/internal/diag"
	"github.com/ridulfo/nino-lang/internal/evaluator"
	"github.com/ridulfo/nino-lang/internal/lexer"
	"github.com/ridulfo/nino-lang/internal/parser"
)

const helpText = `REPL commands:
  :env     List top-level declarations
  :help    Show this help
  :quit    Exit the REPL
A missing trailing ';' is added for you.`

// Session evaluates REPL submissions against one persistent root
// environment. It holds no terminal state, so it can be driven directly.
type Session struct {
	ev     *evaluator.Evaluator
	out    io.Writer
	errOut io.Writer
	diag   diag.Renderer
}

func NewSession(ev *evaluator.Evaluator, out, errOut io.Writer, r diag.Renderer) *Session {
	return &Session{ev: ev, out: out, errOut: errOut, diag: r}
}

// Prepare decides whether src can be submitted. It returns the source to
// run, with a `;` appended when that alone completes it, and whether the
// prompt should keep reading lines instead.
func Prepare(src string) (string, bool) {
	trimmed := strings.TrimSpace(src)
	if trimmed == "" || strings.HasPrefix(trimmed, ":") {
		return trimmed, false
	}
	_, err := parser.Parse(lexer.Lex(src))
	if err == nil || !parser.IsIncomplete(err) {
		return src, false
	}
	withSemi := trimmed + ";"
	if _, err := parser.Parse(lexer.Lex(withSemi)); err == nil {
		return withSemi, false
	}
	return src, true
}

// Handle runs one complete submission. It reports false once the user asks
// to quit.
func (s *Session) Handle(src string) bool {
	src = strings.TrimSpace(src)
	switch {
	case src == "":
		return true
	case strings.HasPrefix(src, ":"):
		return s.command(src)
	}

	items, err := parser.Parse(lexer.Lex(src))
	if err != nil {
		fmt.Fprintln(s.errOut, s.diag.Render(src, err))
		return true
	}
	for _, it := range items {
		v, err := s.ev.Exec(it)
		if err != nil {
			fmt.Fprintln(s.errOut, s.diag.Runtime(err))
			return true
		}
		switch x := it.(type) {
		case parser.Declaration:
			fmt.Fprintf(s.out, "%s:%s\n", x.Name, x.Type)
		case parser.ExpressionStatement:
			fmt.Fprintln(s.out, show(v))
		}
	}
	return true
}

func (s *Session) command(cmd string) bool {
	switch strings.ToLower(cmd) {
	case ":quit", ":q", ":exit":
		return false
	case ":help":
		fmt.Fprintln(s.out, helpText)
	case ":env":
		root := s.ev.Root()
		for _, name := range root.Names() {
			d, _ := root.Get(name)
			fmt.Fprintf(s.out, "%s:%s = %s\n", name, d.Type, show(d.Expression))
		}
	default:
		log.Warnf("unknown command %q", cmd)
		fmt.Fprintf(s.errOut, "unknown command %s. Type :help for a list.\n", cmd)
	}
	return true
}

func show(v parser.Expression) string {
	if _, ok := v.(parser.FunctionDeclaration); ok {
		return "<fn>"
	}
	s, err := evaluator.Format(v)
	if err != nil {
		return fmt.Sprintf("<%T>", v)
	}
	return s
}
