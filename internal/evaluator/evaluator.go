package evaluator

import (
	"fmt"
	"io"
	"math"
	"regexp"
	"strings"

	lru "github.com/hashicorp/golang-lru"

	"educode-lang/impl/internal/diag"
	"educode-lang/impl/internal/expr"
	"educode-lang/impl/internal/log"
	"educode-lang/impl/internal/parser"
)

var printCall = regexp.MustCompile(`exibir\((.+)\)`)

// DefaultCacheSize is the number of parsed expressions kept per evaluator.
const DefaultCacheSize = 256

// Evaluator executes statements against a Store, writing one line to out
// per executed print.
type Evaluator struct {
	out   io.Writer
	env   Store
	cache *lru.Cache // expression text -> expr.Expr
	log   log.Logger
}

type Option func(*Evaluator)

// WithLogger routes statement tracing to l.
func WithLogger(l log.Logger) Option {
	return func(ev *Evaluator) { ev.log = l }
}

// WithCacheSize sets the parsed-expression cache size; zero disables it.
func WithCacheSize(n int) Option {
	return func(ev *Evaluator) {
		ev.cache = nil
		if n > 0 {
			ev.cache, _ = lru.New(n)
		}
	}
}

func New(w io.Writer, env Store, opts ...Option) *Evaluator {
	ev := &Evaluator{out: w, env: env, log: log.Root()}
	WithCacheSize(DefaultCacheSize)(ev)
	for _, opt := range opts {
		opt(ev)
	}
	return ev
}

// Run executes stmts in order and stops at the first error.
func (ev *Evaluator) Run(stmts []parser.Statement) error {
	for _, st := range stmts {
		if err := ev.exec(st); err != nil {
			return err
		}
	}
	return nil
}

func (ev *Evaluator) exec(st parser.Statement) error {
	ev.log.Trace("Executing statement", "line", st.SourceLine(), "kind", statementKind(st))
	var err error
	switch s := st.(type) {
	case parser.VariableDeclaration:
		err = ev.declare(s)
	case parser.Assignment:
		err = ev.assign(s.Value, "variable name not defined")
	case parser.Reassignment:
		err = ev.assign(s.Value, "undeclared variable")
	case parser.Print:
		err = ev.print(s.Value)
	case parser.IfStatement:
		err = ev.ifStatement(s)
	case parser.WhileStatement:
		err = ev.whileStatement(s)
	default:
		err = fmt.Errorf("unknown statement %T", st)
	}
	return diag.AtLine(err, st.SourceLine())
}

func (ev *Evaluator) declare(s parser.VariableDeclaration) error {
	kind, ok := KindForType(s.VarType)
	if !ok {
		return diag.New(diag.TypeError, s.VarType, "unknown variable type")
	}
	v, err := ev.coerce(kind, s.Value)
	if err != nil {
		return err
	}
	ev.env.Set(s.Name, v)
	return nil
}

// assign handles both "name = expr" statement forms; they differ only in
// the message used when name is unbound.
func (ev *Evaluator) assign(line, unbound string) error {
	name, rhs, _ := strings.Cut(line, "=")
	name = strings.TrimSpace(name)
	if name == "" {
		return diag.New(diag.NameError, line, "missing variable name")
	}
	kind, ok := ev.env.KindOf(name)
	if !ok {
		return diag.New(diag.NameError, name, unbound)
	}
	v, err := ev.coerce(kind, trimTerminator(rhs))
	if err != nil {
		return err
	}
	ev.env.Set(name, v)
	return nil
}

// coerce evaluates text by the rules of a declaration of the given kind.
func (ev *Evaluator) coerce(kind Kind, text string) (Value, error) {
	switch kind {
	case KindInteger, KindDecimal:
		v, err := ev.evalText(text)
		if err != nil {
			return nil, err
		}
		f, ok := toFloat(v)
		if !ok {
			return nil, diag.New(diag.TypeError, text, "cannot store a %s value in a %s variable", v.Kind(), kind)
		}
		if kind == KindDecimal {
			return Dec{V: f}, nil
		}
		if i, ok := v.(Int); ok {
			return i, nil
		}
		if math.IsNaN(f) || f >= math.MaxInt64 || f <= math.MinInt64 {
			return nil, diag.New(diag.EvalError, text, "%s is not a representable integer", formatDecimal(f))
		}
		return Int{V: int64(f)}, nil
	case KindLogical:
		return logical(text)
	case KindText:
		return ev.textExpr(text)
	}
	return nil, diag.New(diag.TypeError, text, "unknown kind %s", kind)
}

// logical accepts only the literals true and false.
func logical(text string) (Value, error) {
	v := trimTerminator(text)
	switch strings.ToLower(v) {
	case "true":
		return Bool{V: true}, nil
	case "false":
		return Bool{V: false}, nil
	}
	return nil, diag.New(diag.TypeError, v, "invalid logical value")
}

// textExpr concatenates the '+'-separated parts of text. Parts are quoted
// literals or bound variables.
func (ev *Evaluator) textExpr(text string) (Value, error) {
	text = trimTerminator(text)
	var b strings.Builder
	for _, part := range expr.SplitConcat(text) {
		if expr.IsQuoted(part) {
			b.WriteString(expr.TrimQuotes(part))
			continue
		}
		if v, ok := ev.env.Get(part); ok {
			b.WriteString(v.String())
			continue
		}
		return nil, invalidTextPart(part)
	}
	return Str{V: b.String()}, nil
}

// invalidTextPart explains why part cannot appear in a text expression.
func invalidTextPart(part string) error {
	e, err := expr.Parse(part)
	if err != nil {
		return diag.Wrap(diag.EvalError, part, err, "invalid text expression")
	}
	var kind Kind
	switch lit := e.(type) {
	case expr.Identifier:
		return diag.New(diag.NameError, lit.Name, "undefined variable")
	case expr.IntegerLit:
		kind = KindInteger
	case expr.DecimalLit:
		kind = KindDecimal
	case expr.BooleanLit:
		kind = KindLogical
	default:
		return diag.New(diag.EvalError, part, "invalid text expression")
	}
	return diag.New(diag.TypeError, part, "cannot use a %s value in a %s expression", kind, KindText)
}

// print renders exibir(a + b + ...). Unbound names print as themselves.
func (ev *Evaluator) print(line string) error {
	m := printCall.FindStringSubmatch(line)
	if m == nil {
		return diag.New(diag.SyntaxError, line, "malformed exibir")
	}
	var b strings.Builder
	for _, part := range expr.SplitConcat(strings.TrimSpace(m[1])) {
		if expr.IsQuoted(part) {
			b.WriteString(expr.TrimQuotes(part))
		} else if v, ok := ev.env.Get(part); ok {
			b.WriteString(v.String())
		} else {
			b.WriteString(part)
		}
	}
	_, err := fmt.Fprintln(ev.out, b.String())
	return err
}

func (ev *Evaluator) ifStatement(s parser.IfStatement) error {
	for _, br := range s.Branches {
		if br.Type == parser.ElseBranch {
			return ev.Run(br.Body)
		}
		ok, err := ev.condition(br.Condition)
		if err != nil {
			return diag.AtLine(err, br.Line)
		}
		if ok {
			return ev.Run(br.Body)
		}
	}
	return nil
}

func (ev *Evaluator) whileStatement(s parser.WhileStatement) error {
	for {
		ok, err := ev.condition(s.Condition)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := ev.Run(s.Body); err != nil {
			return err
		}
	}
}

func (ev *Evaluator) condition(text string) (bool, error) {
	v, err := ev.evalText(text)
	if err != nil {
		return false, err
	}
	return isTruthy(v), nil
}

// evalText parses (or fetches from the cache) and evaluates an expression.
func (ev *Evaluator) evalText(text string) (Value, error) {
	text = trimTerminator(text)
	e, err := ev.parseExpr(text)
	if err != nil {
		return nil, diag.Wrap(diag.EvalError, text, err, "cannot evaluate expression")
	}
	v, err := ev.eval(e)
	if err != nil {
		if diag.KindOf(err) != "" {
			return nil, err
		}
		return nil, diag.Wrap(diag.EvalError, text, err, "cannot evaluate expression")
	}
	return v, nil
}

func (ev *Evaluator) parseExpr(text string) (expr.Expr, error) {
	if ev.cache != nil {
		if e, ok := ev.cache.Get(text); ok {
			return e.(expr.Expr), nil
		}
	}
	e, err := expr.Parse(text)
	if err != nil {
		return nil, err
	}
	if ev.cache != nil {
		ev.cache.Add(text, e)
	}
	return e, nil
}

func trimTerminator(s string) string {
	s = strings.TrimSpace(s)
	return strings.TrimSpace(strings.TrimSuffix(s, ";"))
}

func statementKind(st parser.Statement) string {
	switch st.(type) {
	case parser.VariableDeclaration:
		return "VariableDeclaration"
	case parser.Assignment:
		return "Assignment"
	case parser.Reassignment:
		return "Reassignment"
	case parser.Print:
		return "Print"
	case parser.IfStatement:
		return "If"
	case parser.WhileStatement:
		return "While"
	}
	return fmt.Sprintf("%T", st)
}
