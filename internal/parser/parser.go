package parser

import (
	"regexp"
	"strings"

	"educode-lang/impl/internal/diag"
	"educode-lang/impl/internal/lexer"
)

var (
	ifCondition     = regexp.MustCompile(`^se\s*\((.+)\)`)
	elseIfCondition = regexp.MustCompile(`^senaoSe\s*\((.+)\)`)
	whileCondition  = regexp.MustCompile(`^enquanto\s*\((.+)\)`)
	declAssignment  = regexp.MustCompile(`^([\p{L}_][\p{L}\p{N}_]*)\s*=\s*(.+)$`)
)

type Parser struct {
	toks []lexer.Token
	i    int
}

func New(toks []lexer.Token) *Parser { return &Parser{toks: toks} }

func (p *Parser) atEnd() bool { return p.i >= len(p.toks) }

func (p *Parser) check(typ lexer.Type) bool { return !p.atEnd() && p.toks[p.i].Type == typ }

func (p *Parser) next() lexer.Token {
	t := p.toks[p.i]
	p.i++
	return t
}

func (p *Parser) match(typ lexer.Type) bool {
	if p.check(typ) {
		p.i++
		return true
	}
	return false
}

func (p *Parser) previous() lexer.Token { return p.toks[p.i-1] }

// line of the next token, or of the last one once the stream is exhausted
func (p *Parser) line() int {
	switch {
	case !p.atEnd():
		return p.toks[p.i].Line
	case len(p.toks) > 0:
		return p.toks[len(p.toks)-1].Line
	}
	return 0
}

func (p *Parser) fail(fragment, format string, args ...interface{}) error {
	err := diag.New(diag.ParseError, fragment, format, args...)
	err.Line = p.line()
	return err
}

func (p *Parser) expect(typ lexer.Type, after string) error {
	if p.match(typ) {
		return nil
	}
	want := "{"
	if typ == lexer.BlockEnd {
		want = "}"
	}
	found := ""
	if !p.atEnd() {
		found = p.toks[p.i].Lit
	}
	return p.fail(found, "expected '%s' after %s", want, after)
}

// ParseProgram parses the whole token stream.
func (p *Parser) ParseProgram() (Program, error) {
	stmts := []Statement{}
	for !p.atEnd() {
		st, err := p.declaration()
		if err != nil {
			return Program{}, err
		}
		stmts = append(stmts, st)
	}
	return Program{Statements: stmts, Type: "Program"}, nil
}

func (p *Parser) declaration() (Statement, error) {
	switch {
	case p.match(lexer.If):
		return p.ifStatement()
	case p.match(lexer.While):
		return p.whileStatement()
	case p.match(lexer.TypeName):
		return p.variableDeclaration()
	default:
		return p.statement()
	}
}

func (p *Parser) variableDeclaration() (Statement, error) {
	typeTok := p.previous()
	if !p.match(lexer.Assignment) {
		return nil, p.fail(typeTok.Lit, "expected an assignment after type %q", typeTok.Lit)
	}
	assign := p.previous()
	m := declAssignment.FindStringSubmatch(assign.Lit)
	if m == nil {
		err := diag.New(diag.ParseError, assign.Lit, "malformed declaration")
		err.Line = assign.Line
		return nil, err
	}
	value := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(m[2]), ";"))
	if value == "" {
		err := diag.New(diag.ParseError, assign.Lit, "missing value in declaration")
		err.Line = assign.Line
		return nil, err
	}
	return VariableDeclaration{
		Type:    "VariableDeclaration",
		VarType: typeTok.Lit,
		Name:    m[1],
		Value:   value,
		Line:    typeTok.Line,
	}, nil
}

func (p *Parser) condition(tok lexer.Token, re *regexp.Regexp, keyword string) (string, error) {
	m := re.FindStringSubmatch(tok.Lit)
	if m == nil || strings.TrimSpace(m[1]) == "" {
		err := diag.New(diag.ParseError, tok.Lit, "malformed condition in '%s'", keyword)
		err.Line = tok.Line
		return "", err
	}
	return strings.TrimSpace(m[1]), nil
}

func (p *Parser) ifStatement() (Statement, error) {
	ifTok := p.previous()
	cond, err := p.condition(ifTok, ifCondition, "se")
	if err != nil {
		return nil, err
	}
	body, err := p.blockAfter("condition of 'se'")
	if err != nil {
		return nil, err
	}
	branches := []Branch{{Type: IfBranch, Condition: cond, Body: body, Line: ifTok.Line}}

	for p.match(lexer.ElseIf) {
		tok := p.previous()
		cond, err := p.condition(tok, elseIfCondition, "senaoSe")
		if err != nil {
			return nil, err
		}
		body, err := p.blockAfter("condition of 'senaoSe'")
		if err != nil {
			return nil, err
		}
		branches = append(branches, Branch{Type: ElseIfBranch, Condition: cond, Body: body, Line: tok.Line})
	}

	if p.match(lexer.Else) {
		tok := p.previous()
		if rest := strings.TrimSpace(tok.Lit[len("senao"):]); rest != "" {
			err := diag.New(diag.ParseError, tok.Lit, "unexpected text after 'senao'")
			err.Line = tok.Line
			return nil, err
		}
		body, err := p.blockAfter("'senao'")
		if err != nil {
			return nil, err
		}
		branches = append(branches, Branch{Type: ElseBranch, Body: body, Line: tok.Line})
	}
	return IfStatement{Type: "IfStatement", Branches: branches, Line: ifTok.Line}, nil
}

func (p *Parser) whileStatement() (Statement, error) {
	tok := p.previous()
	cond, err := p.condition(tok, whileCondition, "enquanto")
	if err != nil {
		return nil, err
	}
	body, err := p.blockAfter("condition of 'enquanto'")
	if err != nil {
		return nil, err
	}
	return WhileStatement{Type: "WhileStatement", Condition: cond, Body: body, Line: tok.Line}, nil
}

func (p *Parser) blockAfter(what string) ([]Statement, error) {
	if err := p.expect(lexer.BlockStart, what); err != nil {
		return nil, err
	}
	return p.block()
}

// block parses statements up to the closing '}'. The opening '{' has
// already been consumed.
func (p *Parser) block() ([]Statement, error) {
	stmts := []Statement{}
	for !p.check(lexer.BlockEnd) && !p.atEnd() {
		st, err := p.declaration()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, st)
	}
	if err := p.expect(lexer.BlockEnd, "block"); err != nil {
		return nil, err
	}
	return stmts, nil
}

func (p *Parser) statement() (Statement, error) {
	t := p.next()
	switch t.Type {
	case lexer.Print:
		return Print{Type: "Print", Value: t.Lit, Line: t.Line}, nil
	case lexer.Assignment:
		return Assignment{Type: "Assignment", Value: t.Lit, Line: t.Line}, nil
	case lexer.Reassignment:
		return Reassignment{Type: "Reassignment", Value: t.Lit, Line: t.Line}, nil
	default:
		err := diag.New(diag.ParseError, t.Lit, "unexpected token %s", t.Type)
		err.Line = t.Line
		return nil, err
	}
}

// Parse tokenizes and parses src.
func Parse(src string) (Program, error) {
	toks, err := lexer.Lex(src)
	if err != nil {
		return Program{}, err
	}
	return New(toks).ParseProgram()
}
