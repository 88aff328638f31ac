package evaluator

import (
	"math"
	"strconv"
)

// Kind is the runtime classification of a stored value. Its string form is
// the declaration keyword for that kind.
type Kind int

const (
	KindInteger Kind = iota
	KindDecimal
	KindLogical
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "inteiro"
	case KindDecimal:
		return "decimal"
	case KindLogical:
		return "logico"
	case KindText:
		return "texto"
	default:
		return "desconhecido"
	}
}

// KindForType maps a declared type name to its kind.
func KindForType(name string) (Kind, bool) {
	switch name {
	case "inteiro":
		return KindInteger, true
	case "decimal":
		return KindDecimal, true
	case "logico":
		return KindLogical, true
	case "texto":
		return KindText, true
	}
	return 0, false
}

// Value system
type Value interface {
	Kind() Kind
	String() string
}

type (
	Int  struct{ V int64 }
	Dec  struct{ V float64 }
	Bool struct{ V bool }
	Str  struct{ V string }
)

func (Int) Kind() Kind  { return KindInteger }
func (Dec) Kind() Kind  { return KindDecimal }
func (Bool) Kind() Kind { return KindLogical }
func (Str) Kind() Kind  { return KindText }

func (v Int) String() string { return strconv.FormatInt(v.V, 10) }
func (v Dec) String() string { return formatDecimal(v.V) }
func (v Bool) String() string {
	if v.V {
		return "true"
	}
	return "false"
}
func (v Str) String() string { return v.V }

// shortest representation that round-trips; integral decimals print
// without a fractional part
func formatDecimal(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// inferKind classifies a stored value for reassignment. A number with no
// fractional part counts as an integer.
func inferKind(v Value) Kind {
	if d, ok := v.(Dec); ok && d.V == math.Trunc(d.V) && !math.IsInf(d.V, 0) {
		return KindInteger
	}
	return v.Kind()
}

func isTruthy(v Value) bool {
	switch x := v.(type) {
	case Int:
		return x.V != 0
	case Dec:
		return x.V != 0 && !math.IsNaN(x.V)
	case Bool:
		return x.V
	case Str:
		return x.V != ""
	default:
		return false
	}
}

func toFloat(v Value) (float64, bool) {
	switch x := v.(type) {
	case Int:
		return float64(x.V), true
	case Dec:
		return x.V, true
	}
	return 0, false
}
