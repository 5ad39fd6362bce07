package parser

import (
	"strconv"
	"strings"

	"github.com/ridulfo/nino-lang/internal/lexer"
)

// Parser is a recursive-descent parser over a token slice.
//
// Grammar:
//
//	program     = { declaration | expression ";" } EOF
//	declaration = "let" ID ":" TYPE "=" expression ";"
//	expression  = equality
//	equality    = comparison { ("==" | "!=") comparison }
//	comparison  = term { ("<" | "<=" | ">" | ">=") term }
//	term        = factor { ("+" | "-") factor }
//	factor      = unary { ("*" | "/" | "%") unary }
//	unary       = "-" unary | primary
//	primary     = atom [ "?" "{" arms "}" ]
//	atom        = ID [ "(" args ")" ] | NUM | CHAR | STR | "true" | "false"
//	            | "[" args "]" | "(" expression ")" | function
//	function    = "(" [ ID ":" TYPE { "," ID ":" TYPE } ] ")" ":" TYPE "=>" expression
type Parser struct {
	toks []lexer.Token
	i    int
}

func New(toks []lexer.Token) *Parser { return &Parser{toks: toks} }

// Parse parses a whole program. The returned error is a *ParserError.
func Parse(toks []lexer.Token) ([]Item, error) { return New(toks).Parse() }

func (p *Parser) cur() lexer.Token {
	if p.i >= len(p.toks) {
		end := 0
		if len(p.toks) > 0 {
			end = p.toks[len(p.toks)-1].End
		}
		return lexer.Token{Kind: lexer.EOF, Begin: end, End: end}
	}
	return p.toks[p.i]
}

func (p *Parser) next() lexer.Token {
	t := p.cur()
	if p.i < len(p.toks) {
		p.i++
	}
	return t
}

func (p *Parser) match(kind lexer.Kind) bool {
	if p.cur().Kind == kind {
		p.i++
		return true
	}
	return false
}

func (p *Parser) expect(kind lexer.Kind, what string) (lexer.Token, error) {
	t := p.cur()
	if t.Kind != kind {
		return t, errorf(t, "expected %s, found %s", what, describe(t))
	}
	p.i++
	return t, nil
}

// attempt runs fn and rewinds the cursor when it fails, so a rejected
// alternative never consumes tokens. On success the cursor stays where fn
// left it.
func (p *Parser) attempt(fn func() (Expression, error)) (Expression, error) {
	mark := p.i
	e, err := fn()
	if err != nil {
		p.i = mark
		return nil, err
	}
	return e, nil
}

func (p *Parser) Parse() ([]Item, error) {
	items := []Item{}
	for p.cur().Kind != lexer.EOF {
		if p.cur().Kind == lexer.LET {
			d, err := p.ParseDeclaration()
			if err != nil {
				return nil, err
			}
			items = append(items, d)
			continue
		}
		e, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.SEMI, "';'"); err != nil {
			return nil, err
		}
		items = append(items, ExpressionStatement{Expression: e})
	}
	return items, nil
}

// ParseDeclaration parses `let name:type = expression;`.
func (p *Parser) ParseDeclaration() (Declaration, error) {
	if _, err := p.expect(lexer.LET, "'let'"); err != nil {
		return Declaration{}, err
	}
	name, err := p.expect(lexer.ID, "identifier")
	if err != nil {
		return Declaration{}, err
	}
	if _, err := p.expect(lexer.COLON, "':'"); err != nil {
		return Declaration{}, err
	}
	typ, err := p.parseType()
	if err != nil {
		return Declaration{}, err
	}
	if _, err := p.expect(lexer.ASSIGN, "'='"); err != nil {
		return Declaration{}, err
	}
	expr, err := p.ParseExpression()
	if err != nil {
		return Declaration{}, err
	}
	if _, err := p.expect(lexer.SEMI, "';'"); err != nil {
		return Declaration{}, err
	}

	// Bracket literals default to [num]; the declared type retags them.
	if arr, ok := expr.(Array); ok && typ.Kind == KindArray && typ.Elem != nil && arr.ElementType.Kind == KindNumber {
		arr.ElementType = *typ.Elem
		expr = arr
	}
	return Declaration{Name: name.Lit, Type: typ, Expression: expr}, nil
}

func (p *Parser) parseType() (Type, error) {
	t, err := p.expect(lexer.TYPE, "type name")
	if err != nil {
		return Type{}, err
	}
	typ, ok := typeFromName(t.Lit)
	if !ok {
		return Type{}, errorf(t, "unknown type %q", t.Lit)
	}
	return typ, nil
}

func typeFromName(name string) (Type, bool) {
	switch name {
	case "num":
		return TypeNumber, true
	case "char":
		return TypeChar, true
	case "bool":
		return TypeBoolean, true
	case "fn":
		return TypeFunction, true
	}
	if len(name) > 2 && name[0] == '[' && name[len(name)-1] == ']' {
		elem, ok := typeFromName(name[1 : len(name)-1])
		if !ok {
			return Type{}, false
		}
		return ArrayOf(elem), true
	}
	return Type{}, false
}

// ParseExpression parses one expression at the lowest precedence.
func (p *Parser) ParseExpression() (Expression, error) {
	return p.parseEquality()
}

var (
	equalityOps   = map[lexer.Kind]Operator{lexer.EQ: Equal, lexer.NEQ: NotEqual}
	comparisonOps = map[lexer.Kind]Operator{lexer.LT: LessThan, lexer.LTE: LessEqualThan, lexer.GT: GreaterThan, lexer.GTE: GreaterEqualThan}
	termOps       = map[lexer.Kind]Operator{lexer.PLUS: Add, lexer.MINUS: Subtract}
	factorOps     = map[lexer.Kind]Operator{lexer.STAR: Multiply, lexer.SLASH: Divide, lexer.PERCENT: Modulo}
)

// binaryLevel folds `next { op next }` into a left-leaning tree.
func (p *Parser) binaryLevel(ops map[lexer.Kind]Operator, next func() (Expression, error)) (Expression, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := ops[p.cur().Kind]
		if !ok {
			return left, nil
		}
		p.next()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = BinaryOperation{Operator: op, Left: left, Right: right}
	}
}

func (p *Parser) parseEquality() (Expression, error) {
	return p.binaryLevel(equalityOps, p.parseComparison)
}

func (p *Parser) parseComparison() (Expression, error) {
	return p.binaryLevel(comparisonOps, p.parseTerm)
}

func (p *Parser) parseTerm() (Expression, error) {
	return p.binaryLevel(termOps, p.parseFactor)
}

func (p *Parser) parseFactor() (Expression, error) {
	return p.binaryLevel(factorOps, p.parseUnary)
}

func (p *Parser) parseUnary() (Expression, error) {
	switch t := p.cur(); t.Kind {
	case lexer.MINUS:
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if n, ok := operand.(Number); ok {
			return Number{Value: -n.Value}, nil
		}
		return BinaryOperation{Operator: Subtract, Left: Number{Value: 0}, Right: operand}, nil
	case lexer.BANG:
		return nil, errorf(t, "unsupported unary operator '!'")
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (Expression, error) {
	expr, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.match(lexer.QUEST) {
		return p.parseMatch(expr)
	}
	return expr, nil
}

func (p *Parser) parseAtom() (Expression, error) {
	t := p.cur()
	switch t.Kind {
	case lexer.ID:
		p.next()
		if p.cur().Kind != lexer.LPAREN {
			return Identifier{Name: t.Lit}, nil
		}
		p.next()
		args, err := p.parseList(lexer.RPAREN, "')'")
		if err != nil {
			return nil, err
		}
		return FunctionCall{Name: t.Lit, Arguments: args}, nil
	case lexer.NUM:
		p.next()
		v, err := strconv.ParseFloat(t.Lit, 64)
		if err != nil {
			return nil, errorf(t, "invalid number %q", t.Lit)
		}
		return Number{Value: v}, nil
	case lexer.CHAR:
		p.next()
		c, ok := unquoteChar(t.Lit)
		if !ok {
			return nil, errorf(t, "invalid character literal %s", t.Lit)
		}
		return Char{Value: c}, nil
	case lexer.TRUE:
		p.next()
		return Bool{Value: true}, nil
	case lexer.FALSE:
		p.next()
		return Bool{Value: false}, nil
	case lexer.STR:
		p.next()
		s := unquote(t.Lit)
		elems := make([]Expression, 0, len(s))
		for i := 0; i < len(s); i++ {
			elems = append(elems, Char{Value: s[i]})
		}
		return Array{ElementType: TypeChar, Elements: elems}, nil
	case lexer.LBRACK:
		p.next()
		elems, err := p.parseList(lexer.RBRACK, "']'")
		if err != nil {
			return nil, err
		}
		return Array{ElementType: TypeNumber, Elements: elems}, nil
	case lexer.LPAREN:
		group, groupErr := p.attempt(p.parseGroup)
		if groupErr == nil {
			return group, nil
		}
		fn, fnErr := p.attempt(p.parseFunction)
		if fnErr == nil {
			return fn, nil
		}
		return nil, furthest(groupErr, fnErr)
	}
	return nil, errorf(t, "expected expression, found %s", describe(t))
}

// parseList parses a possibly-empty comma-separated expression list; the
// opening delimiter has already been consumed.
func (p *Parser) parseList(closing lexer.Kind, what string) ([]Expression, error) {
	items := []Expression{}
	if p.match(closing) {
		return items, nil
	}
	for {
		e, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		items = append(items, e)
		if p.match(closing) {
			return items, nil
		}
		if _, err := p.expect(lexer.COMMA, "',' or "+what); err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parseGroup() (Expression, error) {
	if _, err := p.expect(lexer.LPAREN, "'('"); err != nil {
		return nil, err
	}
	e, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN, "')'"); err != nil {
		return nil, err
	}
	return e, nil
}

func (p *Parser) parseFunction() (Expression, error) {
	if _, err := p.expect(lexer.LPAREN, "'('"); err != nil {
		return nil, err
	}
	params := []Parameter{}
	if !p.match(lexer.RPAREN) {
		for {
			name, err := p.expect(lexer.ID, "parameter name")
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.COLON, "':'"); err != nil {
				return nil, err
			}
			typ, err := p.parseType()
			if err != nil {
				return nil, err
			}
			params = append(params, Parameter{Name: name.Lit, Type: typ})
			if p.match(lexer.RPAREN) {
				break
			}
			if _, err := p.expect(lexer.COMMA, "',' or ')'"); err != nil {
				return nil, err
			}
		}
	}
	if _, err := p.expect(lexer.COLON, "':' before return type"); err != nil {
		return nil, err
	}
	ret, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.ARROW, "'=>'"); err != nil {
		return nil, err
	}
	body, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	return FunctionDeclaration{Parameters: params, ReturnType: ret, Body: body}, nil
}

// parseMatch parses the arms after `?`. A bare expression directly followed
// by `}` is the default arm.
func (p *Parser) parseMatch(scrutinee Expression) (Expression, error) {
	if _, err := p.expect(lexer.LBRACE, "'{'"); err != nil {
		return nil, err
	}
	m := Match{Scrutinee: scrutinee}
	for {
		candidate, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		if p.match(lexer.RBRACE) {
			m.Default = candidate
			return m, nil
		}
		if _, err := p.expect(lexer.ARROW, "'=>'"); err != nil {
			return nil, err
		}
		result, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		m.Arms = append(m.Arms, MatchArm{Pattern: candidate, Result: result})
		if p.match(lexer.RBRACE) {
			return m, nil
		}
		if _, err := p.expect(lexer.COMMA, "',' or '}'"); err != nil {
			return nil, err
		}
		if p.match(lexer.RBRACE) {
			return m, nil
		}
	}
}

// unquote removes surrounding quotes from a STR token and decodes escapes.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			i++
			b.WriteByte(escape(s[i]))
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func unquoteChar(s string) (byte, bool) {
	switch {
	case len(s) == 3 && s[0] == '\'' && s[2] == '\'':
		return s[1], true
	case len(s) == 4 && s[0] == '\'' && s[1] == '\\' && s[3] == '\'':
		return escape(s[2]), true
	}
	return 0, false
}

func escape(c byte) byte {
	switch c {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	default:
		// \\ \" \' and unknown escapes keep the escaped byte
		return c
	}
}
