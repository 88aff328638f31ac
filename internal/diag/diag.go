// Package diag defines the error taxonomy shared by every stage of the
// EduCode pipeline.
package diag

import (
	"errors"
	"fmt"
)

// Kind classifies a language error.
type Kind string

const (
	LexError    Kind = "LexError"    // fragment matches no known statement shape
	ParseError  Kind = "ParseError"  // structural grammar violation
	NameError   Kind = "NameError"   // reference to a name never bound
	TypeError   Kind = "TypeError"   // unknown type or value kind mismatch
	SyntaxError Kind = "SyntaxError" // malformed print statement
	EvalError   Kind = "EvalError"   // expression rejected by the expression evaluator
)

// Error is a language error. Fragment is the offending piece of source text;
// Line is 1-based and zero when unknown.
type Error struct {
	Kind     Kind
	Message  string
	Fragment string
	Line     int
	Err      error
}

func (e *Error) Error() string {
	s := string(e.Kind)
	if e.Line > 0 {
		s = fmt.Sprintf("%s (line %d)", s, e.Line)
	}
	s += ": " + e.Message
	if e.Fragment != "" {
		s += fmt.Sprintf(": %q", e.Fragment)
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Err }

// New returns an error of the given kind about fragment.
func New(kind Kind, fragment, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Fragment: fragment}
}

// Wrap returns an error of the given kind caused by err.
func Wrap(kind Kind, fragment string, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Fragment: fragment, Err: err}
}

// AtLine records line on err if it is a language error without a line yet.
func AtLine(err error, line int) error {
	var e *Error
	if errors.As(err, &e) && e.Line == 0 {
		e.Line = line
	}
	return err
}

// KindOf reports the kind of err, or "" if err is not a language error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err is a language error of the given kind.
func IsKind(err error, kind Kind) bool { return KindOf(err) == kind }
