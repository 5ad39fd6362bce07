package lexer

// Kind tags a token. The set is closed; the parser switches on it.
type Kind string

const (
	LET     Kind = "LET"
	NUM     Kind = "NUM"
	CHAR    Kind = "CHAR"
	STR     Kind = "STR"
	TRUE    Kind = "TRUE"
	FALSE   Kind = "FALSE"
	TYPE    Kind = "TYPE"
	ID      Kind = "ID"
	LPAREN  Kind = "("
	RPAREN  Kind = ")"
	LBRACK  Kind = "["
	RBRACK  Kind = "]"
	LBRACE  Kind = "{"
	RBRACE  Kind = "}"
	COMMA   Kind = ","
	COLON   Kind = ":"
	SEMI    Kind = ";"
	PIPE    Kind = "|"
	PLUS    Kind = "+"
	MINUS   Kind = "-"
	STAR    Kind = "*"
	SLASH   Kind = "/"
	PERCENT Kind = "%"
	EQ      Kind = "=="
	NEQ     Kind = "!="
	LT      Kind = "<"
	LTE     Kind = "<="
	GT      Kind = ">"
	GTE     Kind = ">="
	ASSIGN  Kind = "="
	ARROW   Kind = "=>"
	QUEST   Kind = "?"
	BANG    Kind = "!"
	ILLEGAL Kind = "ILLEGAL"
	EOF     Kind = "EOF"
)

// Token is one lexeme. Begin and End are inclusive byte offsets into the
// source and only matter for diagnostics.
type Token struct {
	Kind  Kind
	Lit   string
	Begin int
	End   int
}

// Lex converts source into a flat token stream terminated by EOF.
// Characters the language does not know become ILLEGAL tokens so the
// parser can report them with a position.
func Lex(src string) []Token {
	var out []Token
	i := 0
	n := len(src)

	peek := func(off int) byte {
		j := i + off
		if j >= n || j < 0 {
			return 0
		}
		return src[j]
	}

	emit := func(kind Kind, start, end int) {
		out = append(out, Token{Kind: kind, Lit: src[start:end], Begin: start, End: end - 1})
	}

	skipSpace := func() {
		for i < n && isSpace(src[i]) {
			i++
		}
	}

	for i < n {
		ch := src[i]

		if isSpace(ch) {
			i++
			continue
		}

		// # comment to end of line
		if ch == '#' {
			for i < n && src[i] != '\n' {
				i++
			}
			continue
		}

		if ch == '"' {
			start := i
			i++
			closed := false
			for i < n {
				c := src[i]
				if c == '\\' {
					i += 2
					continue
				}
				i++
				if c == '"' {
					closed = true
					break
				}
			}
			if i > n {
				i = n
			}
			if !closed {
				emit(ILLEGAL, start, i)
				continue
			}
			emit(STR, start, i)
			continue
		}

		if ch == '\'' {
			start := i
			switch {
			case peek(1) == '\\' && peek(3) == '\'':
				i += 4
				emit(CHAR, start, i)
			case peek(1) != 0 && peek(1) != '\'' && peek(2) == '\'':
				i += 3
				emit(CHAR, start, i)
			default:
				i++
				emit(ILLEGAL, start, i)
			}
			continue
		}

		if isDigit(ch) {
			start := i
			for i < n && isDigit(src[i]) {
				i++
			}
			if i < n && src[i] == '.' && i+1 < n && isDigit(src[i+1]) {
				i++
				for i < n && isDigit(src[i]) {
					i++
				}
			}
			emit(NUM, start, i)
			continue
		}

		if isIdentStart(ch) {
			start := i
			i++
			for i < n && isIdentPart(src[i]) {
				i++
			}
			switch src[start:i] {
			case "let":
				emit(LET, start, i)
			case "true":
				emit(TRUE, start, i)
			case "false":
				emit(FALSE, start, i)
			case "mod":
				emit(PERCENT, start, i)
			default:
				emit(ID, start, i)
			}
			continue
		}

		// A colon is always followed by a raw type name.
		if ch == ':' {
			emit(COLON, i, i+1)
			i++
			skipSpace()
			start := i
			for i < n && isTypePart(src[i]) {
				i++
			}
			if i > start {
				emit(TYPE, start, i)
			}
			continue
		}

		two := func(a, b byte, kind Kind) bool {
			if ch == a && peek(1) == b {
				emit(kind, i, i+2)
				i += 2
				return true
			}
			return false
		}
		if two('=', '=', EQ) || two('!', '=', NEQ) || two('>', '=', GTE) || two('<', '=', LTE) || two('=', '>', ARROW) {
			continue
		}

		switch ch {
		case '+', '-', '*', '/', '%', '=', '{', '}', '[', ']', '>', '<', ';', '(', ')', ',', '|', '?', '!':
			emit(Kind(string(ch)), i, i+1)
		default:
			emit(ILLEGAL, i, i+1)
		}
		i++
	}

	end := n - 1
	if end < 0 {
		end = 0
	}
	out = append(out, Token{Kind: EOF, Begin: end, End: end})
	return out
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || isDigit(b)
}

func isTypePart(b byte) bool {
	return (b >= 'a' && b <= 'z') || isDigit(b) || b == '_' || b == '[' || b == ']'
}
