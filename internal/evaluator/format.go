package evaluator

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ridulfo/nino-lang/internal/parser"
)

// Format renders a value the way print writes it. Char arrays print as
// their text; other arrays print bracketed with ", " separators.
func Format(v parser.Expression) (string, error) {
	var b strings.Builder
	if err := format(&b, v); err != nil {
		return "", err
	}
	return b.String(), nil
}

func format(b *strings.Builder, v parser.Expression) error {
	switch x := v.(type) {
	case parser.Number:
		b.WriteString(formatNumber(x.Value))
	case parser.Char:
		b.WriteByte(x.Value)
	case parser.Bool:
		b.WriteString(strconv.FormatBool(x.Value))
	case parser.Array:
		if x.ElementType.Kind == parser.KindChar {
			for _, el := range x.Elements {
				c, ok := el.(parser.Char)
				if !ok {
					return fmt.Errorf("%w: %s in [char]", ErrFormat, typeName(el))
				}
				b.WriteByte(c.Value)
			}
			return nil
		}
		b.WriteByte('[')
		for i, el := range x.Elements {
			if i > 0 {
				b.WriteString(", ")
			}
			if err := format(b, el); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	default:
		return fmt.Errorf("%w: %s", ErrFormat, typeName(v))
	}
	return nil
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// mustFormat is for error messages; unformattable values fall back to their type.
func mustFormat(v parser.Expression) string {
	s, err := Format(v)
	if err != nil {
		return typeName(v)
	}
	return s
}
