package textrep

import (
	"fmt"
	"strconv"
	"unicode/utf8"
)

type tokKind int

const (
	tokEOF tokKind = iota
	tokIllegal
	tokIdent
	tokInt
	tokFloat
	tokString
	tokStruct
	tokEnum
	tokTrue
	tokFalse
	// symbols
	tokColon  // :
	tokSemi   // ;
	tokLBrace // {
	tokRBrace // }
)

var tokNames = [...]string{
	tokEOF:     "end of input",
	tokIllegal: "illegal token",
	tokIdent:   "identifier",
	tokInt:     "integer",
	tokFloat:   "float",
	tokString:  "string",
	tokStruct:  "struct",
	tokEnum:    "enum",
	tokTrue:    "true",
	tokFalse:   "false",
	tokColon:   "':'",
	tokSemi:    "';'",
	tokLBrace:  "'{'",
	tokRBrace:  "'}'",
}

func (k tokKind) String() string { return tokNames[k] }

type token struct {
	kind    tokKind
	lit     string
	intBase int // 10 or 16 for tokInt
	line    int
	col     int
}

type lexer struct {
	src       []byte
	off       int
	line      int
	lineStart int
	cur       token
}

func newLexer(src []byte) *lexer { return &lexer{src: src, line: 1} }

func (lx *lexer) next() {
	lx.skipSpaceAndComments()
	line, col := lx.line, lx.off-lx.lineStart+1
	lx.cur = lx.scan()
	lx.cur.line, lx.cur.col = line, col
}

func (lx *lexer) scan() token {
	if lx.off >= len(lx.src) {
		return token{kind: tokEOF}
	}
	b := lx.src[lx.off]
	if isIdentStart(b) {
		start := lx.off
		lx.off++
		for lx.off < len(lx.src) && isIdentPart(lx.src[lx.off]) {
			lx.off++
		}
		s := string(lx.src[start:lx.off])
		switch s {
		case "struct":
			return token{kind: tokStruct, lit: s}
		case "enum":
			return token{kind: tokEnum, lit: s}
		case "true":
			return token{kind: tokTrue, lit: s}
		case "false":
			return token{kind: tokFalse, lit: s}
		}
		return token{kind: tokIdent, lit: s}
	}
	if b == '-' && lx.hasPrefix("-inf") {
		lx.off += len("-inf")
		return token{kind: tokFloat, lit: "-inf"}
	}
	if isDigit(b) || (b == '-' && lx.peekIsDigit()) {
		return lx.scanNumber()
	}
	if b == '"' {
		s, n, err := scanString(lx.src[lx.off:])
		if err != nil {
			lx.off = len(lx.src)
			return token{kind: tokIllegal, lit: fmt.Sprintf("string error: %v", err)}
		}
		lx.off += n
		return token{kind: tokString, lit: s}
	}
	lx.off++
	switch b {
	case ':':
		return token{kind: tokColon, lit: ":"}
	case ';':
		return token{kind: tokSemi, lit: ";"}
	case '{':
		return token{kind: tokLBrace, lit: "{"}
	case '}':
		return token{kind: tokRBrace, lit: "}"}
	}
	return token{kind: tokIllegal, lit: fmt.Sprintf("unexpected char %q", b)}
}

func (lx *lexer) scanNumber() token {
	start := lx.off
	lx.off++
	if lx.src[start] == '0' && lx.off < len(lx.src) && (lx.src[lx.off] == 'x' || lx.src[lx.off] == 'X') {
		lx.off++
		for lx.off < len(lx.src) && (isHexDigit(lx.src[lx.off]) || lx.src[lx.off] == '_') {
			lx.off++
		}
		return token{kind: tokInt, lit: string(lx.src[start:lx.off]), intBase: 16}
	}
	isFloat := false
	lx.digits()
	if lx.off < len(lx.src) && lx.src[lx.off] == '.' {
		isFloat = true
		lx.off++
		lx.digits()
	}
	if lx.off < len(lx.src) && (lx.src[lx.off] == 'e' || lx.src[lx.off] == 'E') {
		isFloat = true
		lx.off++
		if lx.off < len(lx.src) && (lx.src[lx.off] == '+' || lx.src[lx.off] == '-') {
			lx.off++
		}
		lx.digits()
	}
	lit := string(lx.src[start:lx.off])
	if isFloat {
		return token{kind: tokFloat, lit: lit}
	}
	return token{kind: tokInt, lit: lit, intBase: 10}
}

func (lx *lexer) digits() {
	for lx.off < len(lx.src) && (isDigit(lx.src[lx.off]) || lx.src[lx.off] == '_') {
		lx.off++
	}
}

func (lx *lexer) skipSpaceAndComments() {
	for lx.off < len(lx.src) {
		b := lx.src[lx.off]
		if b == '\n' {
			lx.newline()
			continue
		}
		if b == ' ' || b == '\t' || b == '\r' {
			lx.off++
			continue
		}
		// line comments: # or //
		if b == '#' || lx.hasPrefix("//") {
			for lx.off < len(lx.src) && lx.src[lx.off] != '\n' {
				lx.off++
			}
			continue
		}
		if lx.hasPrefix("/*") {
			lx.off += 2
			for lx.off < len(lx.src) && !lx.hasPrefix("*/") {
				if lx.src[lx.off] == '\n' {
					lx.newline()
					continue
				}
				lx.off++
			}
			if lx.off < len(lx.src) {
				lx.off += 2
			}
			continue
		}
		break
	}
}

func (lx *lexer) newline() {
	lx.off++
	lx.line++
	lx.lineStart = lx.off
}

func (lx *lexer) hasPrefix(p string) bool {
	return len(lx.src)-lx.off >= len(p) && string(lx.src[lx.off:lx.off+len(p)]) == p
}

func (lx *lexer) peekIsDigit() bool {
	return lx.off+1 < len(lx.src) && isDigit(lx.src[lx.off+1])
}

func isIdentStart(b byte) bool {
	return b == '_' || b == '$' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}
func isIdentPart(b byte) bool { return isIdentStart(b) || isDigit(b) || b == '.' }
func isDigit(b byte) bool     { return '0' <= b && b <= '9' }
func isHexDigit(b byte) bool {
	return ('0' <= b && b <= '9') || ('a' <= b && b <= 'f') || ('A' <= b && b <= 'F')
}

// isIdent reports whether s lexes as a single identifier token.
func isIdent(s string) bool {
	if s == "" || !isIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentPart(s[i]) {
			return false
		}
	}
	switch s {
	case "struct", "enum", "true", "false":
		return false
	}
	return true
}

func scanString(src []byte) (string, int, error) {
	// src begins with '"'
	i := 1
	for i < len(src) {
		c := src[i]
		switch {
		case c == '"':
			i++
			unq, err := strconv.Unquote(string(src[:i]))
			return unq, i, err
		case c == '\n':
			return "", 0, fmt.Errorf("newline in string")
		case c == '\\':
			i += 2
		case c < utf8.RuneSelf:
			i++
		default:
			r, size := utf8.DecodeRune(src[i:])
			if r == utf8.RuneError && size <= 1 {
				return "", 0, fmt.Errorf("invalid utf-8")
			}
			i += size
		}
	}
	return "", 0, fmt.Errorf("unterminated string")
}
