package diag

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormat(t *testing.T) {
	err := New(TypeError, `x = "a"`, "cannot store %s in %s variable %q", "texto", "inteiro", "x")
	assert.Equal(t, `TypeError: cannot store texto in inteiro variable "x": "x = \"a\""`, err.Error())

	err.Line = 4
	assert.Equal(t, `TypeError (line 4): cannot store texto in inteiro variable "x": "x = \"a\""`, err.Error())
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("division by zero")
	err := Wrap(EvalError, "1 / 0", cause, "cannot evaluate expression")
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "division by zero")
}

func TestKindThroughWrapping(t *testing.T) {
	err := fmt.Errorf("run main.edu: %w", New(NameError, "y", "undeclared variable"))
	assert.True(t, IsKind(err, NameError))
	assert.False(t, IsKind(err, TypeError))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
}

func TestAtLineKeepsFirstLine(t *testing.T) {
	err := New(ParseError, "}", "unexpected token")
	AtLine(err, 3)
	AtLine(err, 9)
	assert.Equal(t, 3, err.Line)
	assert.NoError(t, AtLine(nil, 1))
}
