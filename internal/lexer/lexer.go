package lexer

import (
	"strings"
	"unicode"

	"educode-lang/impl/internal/diag"
)

// Type tags a token.
type Type string

const (
	BlockStart   Type = "BLOCK_START"
	BlockEnd     Type = "BLOCK_END"
	If           Type = "IF"
	ElseIf       Type = "ELSE_IF"
	Else         Type = "ELSE"
	While        Type = "WHILE"
	Print        Type = "PRINT"
	TypeName     Type = "TYPE"
	Assignment   Type = "ASSIGNMENT"
	Reassignment Type = "REASSIGNMENT"
)

// Token is a classified source fragment. Statement tokens carry the whole
// fragment; expressions inside it are left for later stages.
type Token struct {
	Type Type   `json:"type"`
	Lit  string `json:"value"`
	Line int    `json:"line"`
}

var keywords = map[string]Type{
	"se":       If,
	"senaoSe":  ElseIf,
	"senao":    Else,
	"enquanto": While,
	"exibir":   Print,
	"inteiro":  TypeName,
	"decimal":  TypeName,
	"logico":   TypeName,
	"texto":    TypeName,
}

// IsTypeName reports whether word is one of the declarable type names.
func IsTypeName(word string) bool { return keywords[word] == TypeName }

// Lex converts source into the token stream consumed by the parser.
func Lex(src string) ([]Token, error) {
	var out []Token
	for n, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		for _, part := range Fragments(line) {
			toks, err := classify(part, n+1)
			if err != nil {
				return nil, err
			}
			out = append(out, toks...)
		}
	}
	return out, nil
}

func classify(part string, line int) ([]Token, error) {
	switch part {
	case "{":
		return []Token{{Type: BlockStart, Lit: part, Line: line}}, nil
	case "}":
		return []Token{{Type: BlockEnd, Lit: part, Line: line}}, nil
	}
	word := LeadingWord(part)
	switch typ := keywords[word]; typ {
	case If, ElseIf, Else, While, Print:
		return []Token{{Type: typ, Lit: part, Line: line}}, nil
	case TypeName:
		rest := strings.TrimSpace(part[len(word):])
		return []Token{
			{Type: TypeName, Lit: word, Line: line},
			{Type: Assignment, Lit: rest, Line: line},
		}, nil
	}
	if word != "" && strings.HasPrefix(strings.TrimSpace(part[len(word):]), "=") {
		return []Token{{Type: Reassignment, Lit: part, Line: line}}, nil
	}
	err := diag.New(diag.LexError, part, "unrecognized command")
	err.Line = line
	return nil, err
}

// Fragments splits one source line into statement fragments. Block
// delimiters become fragments of their own and a top-level ';' closes a
// fragment (the terminator stays attached, and an empty statement made of
// a lone ';' is dropped). Quoted text and parenthesised text are never split.
func Fragments(line string) []string {
	var (
		out   []string
		cur   strings.Builder
		quote byte
		depth int
	)
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" && s != ";" {
			out = append(out, s)
		}
		cur.Reset()
	}
	for i := 0; i < len(line); i++ {
		c := line[i]
		if quote != 0 {
			cur.WriteByte(c)
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
			cur.WriteByte(c)
		case '(':
			depth++
			cur.WriteByte(c)
		case ')':
			if depth > 0 {
				depth--
			}
			cur.WriteByte(c)
		case '{', '}':
			flush()
			out = append(out, string(c))
		case ';':
			cur.WriteByte(c)
			if depth == 0 {
				flush()
			}
		default:
			cur.WriteByte(c)
		}
	}
	flush()
	return out
}

// LeadingWord returns the identifier at the start of s, or "".
func LeadingWord(s string) string {
	for i, r := range s {
		if !isWordRune(r) {
			return s[:i]
		}
	}
	return s
}

// BraceDepth returns the number of '{' minus the number of '}' in src,
// ignoring quoted text and comment lines.
func BraceDepth(src string) int {
	depth := 0
	for _, line := range strings.Split(src, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		for _, f := range Fragments(line) {
			switch f {
			case "{":
				depth++
			case "}":
				depth--
			}
		}
	}
	return depth
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
