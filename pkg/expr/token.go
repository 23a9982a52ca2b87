package expr

import (
	"unicode"
	"unicode/utf8"
)

// Placeholder is the rune that stands for one operand in an expression
// source. It is the Unicode object replacement character, which keeps
// operand texts from ever colliding with the expression syntax.
const Placeholder rune = '￼'

type tokenKind uint8

const (
	eofToken tokenKind = iota
	holeToken
	punctToken
)

// token is a lexical unit of an expression. punct is only meaningful for
// punctToken and holds the rune itself; operators, parentheses and stray
// runes are all punct tokens until the grammar sorts them out.
type token struct {
	kind  tokenKind
	punct rune
}

const eof rune = -1

// advance scans the next token into cp.tok, skipping whitespace and comments
// that run from "#" to the end of the line.
func (cp *compiler) advance() {
	for {
		r := cp.nextRune()
		switch {
		case r == eof:
			cp.tok = token{kind: eofToken}
			return
		case r == '#':
			for r != eof && r != '\n' {
				r = cp.nextRune()
			}
		case unicode.IsSpace(r):
		case r == Placeholder:
			cp.tok = token{kind: holeToken}
			return
		default:
			cp.tok = token{kind: punctToken, punct: r}
			return
		}
	}
}

func (cp *compiler) nextRune() rune {
	if cp.pos == len(cp.src) {
		return eof
	}
	r, s := utf8.DecodeRuneInString(cp.src[cp.pos:])
	cp.pos += s
	return r
}
