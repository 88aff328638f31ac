// Package expr parses the arithmetic, comparison and logical expressions
// that appear inside EduCode statements.
package expr

// Expr is a marker interface for expression nodes.
type Expr interface{ isExpr() }

type Identifier struct {
	Name string
}

func (Identifier) isExpr() {}

type IntegerLit struct {
	Value int64
}

func (IntegerLit) isExpr() {}

type DecimalLit struct {
	Value float64
}

func (DecimalLit) isExpr() {}

type StringLit struct {
	Value string
}

func (StringLit) isExpr() {}

type BooleanLit struct {
	Value bool
}

func (BooleanLit) isExpr() {}

// Prefix is a unary '-', '+' or '!'.
type Prefix struct {
	Operator string
	Operand  Expr
}

func (Prefix) isExpr() {}

type Infix struct {
	Left     Expr
	Operator string
	Right    Expr
}

func (Infix) isExpr() {}
