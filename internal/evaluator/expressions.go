package evaluator

import (
	"errors"
	"fmt"
	"math"

	"educode-lang/impl/internal/diag"
	"educode-lang/impl/internal/expr"
)

var errDivisionByZero = errors.New("division by zero")

func (ev *Evaluator) eval(e expr.Expr) (Value, error) {
	switch ex := e.(type) {
	case expr.IntegerLit:
		return Int{V: ex.Value}, nil
	case expr.DecimalLit:
		return Dec{V: ex.Value}, nil
	case expr.StringLit:
		return Str{V: ex.Value}, nil
	case expr.BooleanLit:
		return Bool{V: ex.Value}, nil
	case expr.Identifier:
		v, ok := ev.env.Get(ex.Name)
		if !ok {
			return nil, diag.New(diag.NameError, ex.Name, "undefined variable")
		}
		return v, nil
	case expr.Prefix:
		v, err := ev.eval(ex.Operand)
		if err != nil {
			return nil, err
		}
		switch ex.Operator {
		case "!":
			return Bool{V: !isTruthy(v)}, nil
		case "-":
			switch x := v.(type) {
			case Int:
				if x.V == math.MinInt64 {
					return Dec{V: -float64(x.V)}, nil
				}
				return Int{V: -x.V}, nil
			case Dec:
				return Dec{V: -x.V}, nil
			}
		case "+":
			if _, ok := toFloat(v); ok {
				return v, nil
			}
		}
		return nil, fmt.Errorf("unsupported operation: %s%s", ex.Operator, v.Kind())
	case expr.Infix:
		// logical connectives short-circuit
		if ex.Operator == "&&" || ex.Operator == "||" {
			l, err := ev.eval(ex.Left)
			if err != nil {
				return nil, err
			}
			if isTruthy(l) == (ex.Operator == "||") {
				return Bool{V: isTruthy(l)}, nil
			}
			r, err := ev.eval(ex.Right)
			if err != nil {
				return nil, err
			}
			return Bool{V: isTruthy(r)}, nil
		}
		l, err := ev.eval(ex.Left)
		if err != nil {
			return nil, err
		}
		r, err := ev.eval(ex.Right)
		if err != nil {
			return nil, err
		}
		return binary(ex.Operator, l, r)
	}
	return nil, fmt.Errorf("unsupported expression %T", e)
}

func binary(op string, l, r Value) (Value, error) {
	switch op {
	case "+":
		return add(l, r)
	case "-", "*", "/", "%":
		return arith(op, l, r)
	case "==":
		return Bool{V: equal(l, r)}, nil
	case "!=":
		return Bool{V: !equal(l, r)}, nil
	case "<", "<=", ">", ">=":
		c, err := compare(l, r)
		if err != nil {
			return nil, fmt.Errorf("unsupported operation: %s %s %s", l.Kind(), op, r.Kind())
		}
		switch op {
		case "<":
			return Bool{V: c < 0}, nil
		case "<=":
			return Bool{V: c <= 0}, nil
		case ">":
			return Bool{V: c > 0}, nil
		default:
			return Bool{V: c >= 0}, nil
		}
	}
	return nil, fmt.Errorf("unsupported operator %q", op)
}

// add sums numbers and concatenates when either side is text.
func add(l, r Value) (Value, error) {
	if _, ok := l.(Str); ok {
		return Str{V: l.String() + r.String()}, nil
	}
	if _, ok := r.(Str); ok {
		return Str{V: l.String() + r.String()}, nil
	}
	return arith("+", l, r)
}

// arith applies a numeric operator. Integer operands stay integers except
// for '/', which always produces a decimal, and results that overflow int64,
// which continue as decimals.
func arith(op string, l, r Value) (Value, error) {
	li, lInt := l.(Int)
	ri, rInt := r.(Int)
	if lInt && rInt && op != "/" {
		switch op {
		case "+":
			if v, ok := addInt(li.V, ri.V); ok {
				return Int{V: v}, nil
			}
		case "-":
			if v, ok := subInt(li.V, ri.V); ok {
				return Int{V: v}, nil
			}
		case "*":
			if v, ok := mulInt(li.V, ri.V); ok {
				return Int{V: v}, nil
			}
		case "%":
			if ri.V == 0 {
				return nil, errDivisionByZero
			}
			return Int{V: li.V % ri.V}, nil
		}
	}
	lf, lok := toFloat(l)
	rf, rok := toFloat(r)
	if !lok || !rok {
		return nil, fmt.Errorf("unsupported operation: %s %s %s", l.Kind(), op, r.Kind())
	}
	switch op {
	case "+":
		return Dec{V: lf + rf}, nil
	case "-":
		return Dec{V: lf - rf}, nil
	case "*":
		return Dec{V: lf * rf}, nil
	case "/":
		if rf == 0 {
			return nil, errDivisionByZero
		}
		return Dec{V: lf / rf}, nil
	case "%":
		if rf == 0 {
			return nil, errDivisionByZero
		}
		return Dec{V: math.Mod(lf, rf)}, nil
	}
	return nil, fmt.Errorf("unsupported operator %q", op)
}

func addInt(a, b int64) (int64, bool) {
	s := a + b
	return s, (s > a) == (b > 0)
}

func subInt(a, b int64) (int64, bool) {
	d := a - b
	return d, (d < a) == (b > 0)
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	p := a * b
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) || p/b != a {
		return 0, false
	}
	return p, true
}

func equal(l, r Value) bool {
	if c, err := compare(l, r); err == nil {
		return c == 0
	}
	if lb, ok := l.(Bool); ok {
		if rb, ok := r.(Bool); ok {
			return lb.V == rb.V
		}
	}
	return false
}

// compare orders two numbers or two texts.
func compare(l, r Value) (int, error) {
	if li, ok := l.(Int); ok {
		if ri, ok := r.(Int); ok {
			switch {
			case li.V < ri.V:
				return -1, nil
			case li.V > ri.V:
				return 1, nil
			}
			return 0, nil
		}
	}
	if lf, ok := toFloat(l); ok {
		if rf, ok := toFloat(r); ok {
			switch {
			case lf < rf:
				return -1, nil
			case lf > rf:
				return 1, nil
			}
			return 0, nil
		}
	}
	if ls, ok := l.(Str); ok {
		if rs, ok := r.(Str); ok {
			switch {
			case ls.V < rs.V:
				return -1, nil
			case ls.V > rs.V:
				return 1, nil
			}
			return 0, nil
		}
	}
	return 0, fmt.Errorf("cannot compare %s with %s", l.Kind(), r.Kind())
}
