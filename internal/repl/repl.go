package repl

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"fortio.org/log"
	"github.com/peterh/liner"
)

// Options configures the line editor.
type Options struct {
	Prompt       string
	Continuation string
	// HistoryFile is read at start and rewritten on exit; empty disables it.
	HistoryFile string
}

// Run reads submissions until EOF or :quit. Ctrl-C drops the pending input.
func Run(s *Session, opts Options) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if opts.HistoryFile != "" {
		if f, err := os.Open(opts.HistoryFile); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			f, err := os.Create(opts.HistoryFile)
			if err != nil {
				log.Warnf("cannot write history %s: %v", opts.HistoryFile, err)
				return
			}
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}()
	}

	fmt.Fprintln(s.out, "nino REPL. Ctrl+C cancels input, Ctrl+D exits. Type :help for commands.")
	for {
		src, ok, err := read(ln, opts)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(s.out)
			return nil
		}
		if src == "" {
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		if !s.Handle(src) {
			return nil
		}
	}
}

// read collects lines until Prepare accepts them. ok is false at EOF.
func read(ln *liner.State, opts Options) (string, bool, error) {
	var b strings.Builder
	for {
		prompt := opts.Prompt
		if b.Len() > 0 {
			prompt = opts.Continuation
		}
		line, err := ln.Prompt(prompt)
		switch {
		case errors.Is(err, io.EOF):
			return "", false, nil
		case errors.Is(err, liner.ErrPromptAborted):
			return "", true, nil
		case err != nil:
			return "", false, err
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src, more := Prepare(b.String())
		if !more {
			return src, true, nil
		}
		log.LogVf("incomplete input, reading continuation")
	}
}
