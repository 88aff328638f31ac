package lexer_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"educode-lang/impl/internal/diag"
	"educode-lang/impl/internal/lexer"
)

type tokenCase struct {
	typ lexer.Type
	lit string
}

func runLex(t *testing.T, name, input string, want []tokenCase) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		toks, err := lexer.Lex(input)
		require.NoError(t, err)
		got := make([]tokenCase, len(toks))
		for i, tok := range toks {
			got[i] = tokenCase{tok.Type, tok.Lit}
		}
		if diff := cmp.Diff(want, got, cmp.AllowUnexported(tokenCase{})); diff != "" {
			t.Errorf("tokens mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestStatements(t *testing.T) {
	runLex(t, "declaration", "inteiro x = 2 + 3;", []tokenCase{
		{lexer.TypeName, "inteiro"},
		{lexer.Assignment, "x = 2 + 3;"},
	})
	runLex(t, "reassignment", "x = x + 1;", []tokenCase{
		{lexer.Reassignment, "x = x + 1;"},
	})
	runLex(t, "print", `exibir("oi");`, []tokenCase{
		{lexer.Print, `exibir("oi");`},
	})
	runLex(t, "if chain", "se (a) {\n} senaoSe (b) {\n} senao {\n}", []tokenCase{
		{lexer.If, "se (a)"},
		{lexer.BlockStart, "{"},
		{lexer.BlockEnd, "}"},
		{lexer.ElseIf, "senaoSe (b)"},
		{lexer.BlockStart, "{"},
		{lexer.BlockEnd, "}"},
		{lexer.Else, "senao"},
		{lexer.BlockStart, "{"},
		{lexer.BlockEnd, "}"},
	})
	runLex(t, "while", "enquanto (i < 3) { i = i + 1; }", []tokenCase{
		{lexer.While, "enquanto (i < 3)"},
		{lexer.BlockStart, "{"},
		{lexer.Reassignment, "i = i + 1;"},
		{lexer.BlockEnd, "}"},
	})
}

func TestSeveralStatementsPerLine(t *testing.T) {
	runLex(t, "declaration and print", "inteiro x = 2 + 3; exibir(x);", []tokenCase{
		{lexer.TypeName, "inteiro"},
		{lexer.Assignment, "x = 2 + 3;"},
		{lexer.Print, "exibir(x);"},
	})
	runLex(t, "quoted delimiters", `exibir("a;b{c}" + ';');`, []tokenCase{
		{lexer.Print, `exibir("a;b{c}" + ';');`},
	})
	runLex(t, "repeated terminators", "inteiro x = 5;; ; exibir(x);;", []tokenCase{
		{lexer.TypeName, "inteiro"},
		{lexer.Assignment, "x = 5;"},
		{lexer.Print, "exibir(x);"},
	})
	runLex(t, "semicolon inside parens", "exibir(a;b)", []tokenCase{
		{lexer.Print, "exibir(a;b)"},
	})
}

func TestSkipsBlankAndCommentLines(t *testing.T) {
	runLex(t, "comments", "// comentario\n\n   \n  // outro\ntexto s = \"x\"", []tokenCase{
		{lexer.TypeName, "texto"},
		{lexer.Assignment, `s = "x"`},
	})
}

func TestLines(t *testing.T) {
	toks, err := lexer.Lex("\n// c\ninteiro a = 1\n\nexibir(a)\r\n")
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, 3, toks[0].Line)
	assert.Equal(t, 3, toks[1].Line)
	assert.Equal(t, 5, toks[2].Line)
	assert.Equal(t, "exibir(a)", toks[2].Lit)
}

func TestUnrecognizedFragment(t *testing.T) {
	for _, src := range []string{"42", "funcao f()", "+ 1", "inteiro x = 1\nimprimir(x)"} {
		_, err := lexer.Lex(src)
		require.Error(t, err, src)
		assert.True(t, diag.IsKind(err, diag.LexError), src)
	}
	_, err := lexer.Lex("inteiro x = 1\nimprimir(x)")
	var de *diag.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, 2, de.Line)
	assert.Equal(t, "imprimir(x)", de.Fragment)
}

func TestLeadingWord(t *testing.T) {
	assert.Equal(t, "senaoSe", lexer.LeadingWord("senaoSe(x)"))
	assert.Equal(t, "x", lexer.LeadingWord("x=1"))
	assert.Equal(t, "", lexer.LeadingWord("(x)"))
	assert.Equal(t, "posição", lexer.LeadingWord("posição = 2"))
}

func TestBraceDepth(t *testing.T) {
	assert.Equal(t, 1, lexer.BraceDepth("se (a) {"))
	assert.Equal(t, 0, lexer.BraceDepth("se (a) {\nexibir(\"}\")\n}"))
	assert.Equal(t, 0, lexer.BraceDepth("// {"))
	assert.True(t, lexer.IsTypeName("logico"))
	assert.False(t, lexer.IsTypeName("exibir"))
}
