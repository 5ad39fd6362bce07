package evaluator

import (
	"sort"

	"github.com/ridulfo/nino-lang/internal/parser"
)

// Env is one frame of the scope chain. Define always writes the local frame;
// Get reads through to the outer frames. A frame never writes to its parent.
type Env struct {
	store map[string]parser.Declaration
	outer *Env
}

// NewEnv returns an empty frame over outer; outer may be nil for a root.
func NewEnv(outer *Env) *Env { return &Env{outer: outer} }

func (e *Env) Define(name string, d parser.Declaration) {
	if e.store == nil {
		e.store = make(map[string]parser.Declaration)
	}
	e.store[name] = d
}

func (e *Env) Get(name string) (parser.Declaration, bool) {
	for env := e; env != nil; env = env.outer {
		if d, ok := env.store[name]; ok {
			return d, true
		}
	}
	return parser.Declaration{}, false
}

// Names lists the names defined in this frame, sorted.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.store))
	for n := range e.store {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
