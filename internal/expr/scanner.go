package expr

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

type tokKind int

const (
	tokEOF tokKind = iota
	tokInt
	tokDec
	tokStr
	tokIdent
	tokOp
)

type token struct {
	kind tokKind
	lit  string
	pos  int
}

// operators, longest first so that "===" wins over "==" and "=".
var operators = []string{
	"===", "!==",
	"==", "!=", "<=", ">=", "&&", "||",
	"+", "-", "*", "/", "%", "<", ">", "!", "(", ")",
}

func scan(src string) ([]token, error) {
	var out []token
	i := 0
	for i < len(src) {
		c := src[i]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			i++
			continue
		}
		start := i
		switch {
		case isDigit(c) || (c == '.' && i+1 < len(src) && isDigit(src[i+1])):
			kind := tokInt
			for i < len(src) && isDigit(src[i]) {
				i++
			}
			if i < len(src) && src[i] == '.' {
				kind = tokDec
				i++
				for i < len(src) && isDigit(src[i]) {
					i++
				}
			}
			if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
				j := i + 1
				if j < len(src) && (src[j] == '+' || src[j] == '-') {
					j++
				}
				if j < len(src) && isDigit(src[j]) {
					kind = tokDec
					i = j
					for i < len(src) && isDigit(src[i]) {
						i++
					}
				}
			}
			out = append(out, token{kind: kind, lit: src[start:i], pos: start})
		case c == '"' || c == '\'':
			i++
			for i < len(src) && src[i] != c {
				if src[i] == '\\' {
					i++
				}
				i++
			}
			if i >= len(src) {
				return nil, fmt.Errorf("unterminated string at offset %d", start)
			}
			i++
			out = append(out, token{kind: tokStr, lit: src[start:i], pos: start})
		default:
			r, size := utf8.DecodeRuneInString(src[i:])
			if r == '_' || unicode.IsLetter(r) {
				i += size
				for i < len(src) {
					r, size = utf8.DecodeRuneInString(src[i:])
					if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
						break
					}
					i += size
				}
				out = append(out, token{kind: tokIdent, lit: src[start:i], pos: start})
				continue
			}
			op := matchOperator(src[i:])
			if op == "" {
				return nil, fmt.Errorf("unexpected character %q at offset %d", r, start)
			}
			i += len(op)
			out = append(out, token{kind: tokOp, lit: op, pos: start})
		}
	}
	return append(out, token{kind: tokEOF, pos: len(src)}), nil
}

func matchOperator(s string) string {
	for _, op := range operators {
		if len(s) >= len(op) && s[:len(op)] == op {
			return op
		}
	}
	return ""
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
