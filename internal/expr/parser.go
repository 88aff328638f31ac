package expr

import (
	"fmt"
	"strconv"
	"strings"
)

// Precedence values (higher binds tighter)
const (
	precLowest = iota
	precOr
	precAnd
	precEquality
	precCompare
	precAdd
	precMul
	precPrefix
)

func precedence(op string) int {
	switch op {
	case "||":
		return precOr
	case "&&":
		return precAnd
	case "==", "!=", "===", "!==":
		return precEquality
	case "<", "<=", ">", ">=":
		return precCompare
	case "+", "-":
		return precAdd
	case "*", "/", "%":
		return precMul
	default:
		return precLowest
	}
}

type parser struct {
	toks []token
	i    int
}

// Parse parses src as a single expression.
func Parse(src string) (Expr, error) {
	toks, err := scan(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	e, err := p.parseExpression(precLowest)
	if err != nil {
		return nil, err
	}
	if t := p.cur(); t.kind != tokEOF {
		return nil, fmt.Errorf("unexpected %q at offset %d", t.lit, t.pos)
	}
	return e, nil
}

func (p *parser) cur() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) parseExpression(minPrec int) (Expr, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	for {
		t := p.cur()
		if t.kind != tokOp {
			break
		}
		prec := precedence(t.lit)
		if prec == precLowest || prec < minPrec {
			break
		}
		p.next()
		right, err := p.parseExpression(prec + 1)
		if err != nil {
			return nil, err
		}
		left = Infix{Left: left, Operator: normalizeOp(t.lit), Right: right}
	}
	return left, nil
}

func (p *parser) parsePrefix() (Expr, error) {
	t := p.next()
	switch t.kind {
	case tokInt:
		v, err := strconv.ParseInt(t.lit, 10, 64)
		if err != nil {
			// too large for an integer; keep it as a decimal
			f, ferr := strconv.ParseFloat(t.lit, 64)
			if ferr != nil {
				return nil, fmt.Errorf("invalid number %q", t.lit)
			}
			return DecimalLit{Value: f}, nil
		}
		return IntegerLit{Value: v}, nil
	case tokDec:
		f, err := strconv.ParseFloat(t.lit, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", t.lit)
		}
		return DecimalLit{Value: f}, nil
	case tokStr:
		return StringLit{Value: Unquote(t.lit)}, nil
	case tokIdent:
		switch t.lit {
		case "true":
			return BooleanLit{Value: true}, nil
		case "false":
			return BooleanLit{Value: false}, nil
		}
		return Identifier{Name: t.lit}, nil
	case tokOp:
		switch t.lit {
		case "-", "!", "+":
			operand, err := p.parseExpression(precPrefix)
			if err != nil {
				return nil, err
			}
			return Prefix{Operator: t.lit, Operand: operand}, nil
		case "(":
			e, err := p.parseExpression(precLowest)
			if err != nil {
				return nil, err
			}
			if c := p.next(); c.kind != tokOp || c.lit != ")" {
				return nil, fmt.Errorf("expected ')' at offset %d", c.pos)
			}
			return e, nil
		}
		return nil, fmt.Errorf("unexpected %q at offset %d", t.lit, t.pos)
	default:
		return nil, fmt.Errorf("unexpected end of expression")
	}
}

func normalizeOp(op string) string {
	switch op {
	case "===":
		return "=="
	case "!==":
		return "!="
	}
	return op
}

// IsQuoted reports whether s is enclosed in matching single or double quotes.
func IsQuoted(s string) bool {
	return len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0]
}

// TrimQuotes strips the surrounding quotes from s without touching escapes.
func TrimQuotes(s string) string {
	if IsQuoted(s) {
		return s[1 : len(s)-1]
	}
	return s
}

// Unquote strips the surrounding quotes from a string literal and resolves
// the escapes \n, \t, \\ and escaped quotes.
func Unquote(s string) string {
	if IsQuoted(s) {
		s = s[1 : len(s)-1]
	}
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(s[i])
			}
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// SplitConcat splits a '+'-joined expression into trimmed parts, leaving
// '+' inside quotes alone.
func SplitConcat(s string) []string {
	var (
		parts []string
		start int
		quote byte
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '+':
			parts = append(parts, strings.TrimSpace(s[start:i]))
			start = i + 1
		}
	}
	return append(parts, strings.TrimSpace(s[start:]))
}
