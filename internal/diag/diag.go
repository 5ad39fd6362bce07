// Package diag renders parse errors against the source they came from.
package diag

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ridulfo/nino-lang/internal/parser"
)

var (
	colorError = lipgloss.Color("#EF4444")
	colorMuted = lipgloss.Color("#6B7280")
	colorCaret = lipgloss.Color("#F59E0B")

	titleStyle    = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	locationStyle = lipgloss.NewStyle().Foreground(colorMuted)
	caretStyle    = lipgloss.NewStyle().Foreground(colorCaret).Bold(true)
)

// Renderer formats errors for a terminal. With Color unset the output is
// plain text.
type Renderer struct {
	Color bool
}

func (r Renderer) style(s lipgloss.Style, text string) string {
	if !r.Color {
		return text
	}
	return s.Render(text)
}

// Render describes err. A *parser.ParserError with a token gets the source
// line and a caret under the token's span; anything else is its message.
func (r Renderer) Render(src string, err error) string {
	var pe *parser.ParserError
	if !errors.As(err, &pe) {
		return r.style(titleStyle, "error: ") + err.Error()
	}
	head := r.style(titleStyle, "parse error: ") + pe.Message
	if pe.Token == nil {
		return head
	}

	loc := Locate(src, pe.Token.Begin)
	width := pe.Token.End - pe.Token.Begin + 1
	if rest := len(loc.Text) - (loc.Column - 1); width > rest {
		width = rest
	}
	if width < 1 {
		width = 1
	}

	var b strings.Builder
	b.WriteString(head)
	b.WriteByte('\n')
	b.WriteString(r.style(locationStyle, fmt.Sprintf(" --> %d:%d", loc.Line, loc.Column)))
	b.WriteByte('\n')
	b.WriteString(loc.Text)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", loc.Column-1))
	b.WriteString(r.style(caretStyle, strings.Repeat("^", width)))
	return b.String()
}

// Runtime describes an error raised while evaluating.
func (r Renderer) Runtime(err error) string {
	return r.style(titleStyle, "runtime error: ") + err.Error()
}

// Location is a 1-based line and column plus the text of that line.
type Location struct {
	Line   int
	Column int
	Text   string
}

// Locate maps a byte offset to its line. Offsets past the end clamp to the
// end of the source.
func Locate(src string, offset int) Location {
	if offset > len(src) {
		offset = len(src)
	}
	if offset < 0 {
		offset = 0
	}
	start := strings.LastIndexByte(src[:offset], '\n') + 1
	end := strings.IndexByte(src[start:], '\n')
	if end < 0 {
		end = len(src)
	} else {
		end += start
	}
	return Location{
		Line:   strings.Count(src[:start], "\n") + 1,
		Column: offset - start + 1,
		Text:   strings.TrimRight(src[start:end], "\r"),
	}
}
