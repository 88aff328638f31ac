package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"educode-lang/impl/internal/diag"
)

func mustParse(t *testing.T, src string) []Statement {
	t.Helper()
	prog, err := Parse(src)
	require.NoError(t, err)
	assert.Equal(t, "Program", prog.Type)
	return prog.Statements
}

func TestVariableDeclaration(t *testing.T) {
	got := mustParse(t, "inteiro x = 2 + 3;\ntexto nome=\"Ana\"")
	want := []Statement{
		VariableDeclaration{Type: "VariableDeclaration", VarType: "inteiro", Name: "x", Value: "2 + 3", Line: 1},
		VariableDeclaration{Type: "VariableDeclaration", VarType: "texto", Name: "nome", Value: `"Ana"`, Line: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestSimpleStatements(t *testing.T) {
	got := mustParse(t, "exibir(x);\nx = 3")
	want := []Statement{
		Print{Type: "Print", Value: "exibir(x);", Line: 1},
		Reassignment{Type: "Reassignment", Value: "x = 3", Line: 2},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestIfChain(t *testing.T) {
	src := `se (n > 10) {
    exibir("grande")
} senaoSe (n > 5) {
    exibir("medio")
} senao {
    exibir("pequeno")
}`
	got := mustParse(t, src)
	want := []Statement{IfStatement{
		Type: "IfStatement",
		Line: 1,
		Branches: []Branch{
			{Type: IfBranch, Condition: "n > 10", Line: 1, Body: []Statement{
				Print{Type: "Print", Value: `exibir("grande")`, Line: 2},
			}},
			{Type: ElseIfBranch, Condition: "n > 5", Line: 3, Body: []Statement{
				Print{Type: "Print", Value: `exibir("medio")`, Line: 4},
			}},
			{Type: ElseBranch, Line: 5, Body: []Statement{
				Print{Type: "Print", Value: `exibir("pequeno")`, Line: 6},
			}},
		},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestNestedWhile(t *testing.T) {
	got := mustParse(t, "enquanto (i < 3) { se ((i % 2) == 0) { exibir(i); } i = i + 1; }")
	require.Len(t, got, 1)
	loop, ok := got[0].(WhileStatement)
	require.True(t, ok)
	assert.Equal(t, "i < 3", loop.Condition)
	require.Len(t, loop.Body, 2)
	inner, ok := loop.Body[0].(IfStatement)
	require.True(t, ok)
	assert.Equal(t, "(i % 2) == 0", inner.Branches[0].Condition)
	assert.IsType(t, Reassignment{}, loop.Body[1])
}

func TestEmptyBlocks(t *testing.T) {
	got := mustParse(t, "enquanto (false) {}")
	require.Len(t, got, 1)
	assert.Empty(t, got[0].(WhileStatement).Body)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		line int
	}{
		{"missing close", "se (a) {\nexibir(1)", 2},
		{"missing open", "enquanto (a)\nexibir(1)", 2},
		{"no parens", "se a {\n}", 1},
		{"empty condition", "enquanto () {\n}", 1},
		{"bad declaration", "inteiro = 3", 1},
		{"declaration without value", "decimal d = ;", 1},
		{"stray close", "exibir(1)\n}", 2},
		{"else without if", "senao {\n}", 1},
		{"else if after else", "se (a) {\n} senao {\n} senaoSe (b) {\n}", 3},
		{"text after else", "se (a) {\n} senao se (b) {\n}", 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.src)
			require.Error(t, err)
			var de *diag.Error
			require.ErrorAs(t, err, &de)
			assert.Equal(t, diag.ParseError, de.Kind)
			assert.Equal(t, tc.line, de.Line)
		})
	}
}

func TestLexErrorPassesThrough(t *testing.T) {
	_, err := Parse("inteiro x = 1\n???")
	assert.True(t, diag.IsKind(err, diag.LexError))
}
