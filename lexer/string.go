package lexer

import (
	"strconv"
	"strings"

	"github.com/objj-lang/objjparse/token"
)

// readString scans a single- or double-quoted string literal, resolving
// escape sequences per spec §4.2 ("Strings"): \n \r \t \b \v \f \0, hex
// \xNN, \uNNNN, \UNNNNNNNN, and octal escapes up to 3 digits (rejected in
// strict mode). atSign marks an Objective-J @"..." literal, which is
// lexically identical apart from its token type.
func (l *Lexer) readString(quote rune, startPos, startLine, startCol int, firstOnLine, atSign bool) token.Token {
	l.advance() // opening quote
	var b strings.Builder
	for {
		if l.Pos >= l.SrcLength {
			return l.finish(token.Invalid, "unterminated string literal", startPos, startLine, startCol, firstOnLine)
		}
		c := l.current()
		if isNewLine(c) {
			return l.finish(token.Invalid, "unterminated string literal at newline", startPos, startLine, startCol, firstOnLine)
		}
		if c == quote {
			l.advance()
			break
		}
		if c == '\\' {
			l.advance()
			esc, ok := l.readEscape()
			if !ok {
				return l.finish(token.Invalid, "bad escape sequence", startPos, startLine, startCol, firstOnLine)
			}
			b.WriteString(esc)
			continue
		}
		b.WriteRune(c)
		l.advance()
	}
	tt := token.StringLit
	if atSign {
		tt = token.AtString
	}
	return l.finish(tt, b.String(), startPos, startLine, startCol, firstOnLine)
}

// readEscape consumes one backslash escape (the backslash itself already
// consumed) and returns its decoded text.
func (l *Lexer) readEscape() (string, bool) {
	c := l.current()
	switch c {
	case 'n':
		l.advance()
		return "\n", true
	case 'r':
		l.advance()
		return "\r", true
	case 't':
		l.advance()
		return "\t", true
	case 'b':
		l.advance()
		return "\b", true
	case 'v':
		l.advance()
		return "\v", true
	case 'f':
		l.advance()
		return "\f", true
	case '0':
		if !isDecimalDigit(l.peek()) {
			l.advance()
			return "\x00", true
		}
		if l.Strict {
			return "", false
		}
		return l.readOctalEscape()
	case '8', '9':
		// NonOctalDecimalEscapeSequence: legal in sloppy mode as a literal
		// digit, forbidden in strict mode (spec §4.2 "strict string rules").
		if l.Strict {
			return "", false
		}
		l.advance()
		return string(c), true
	case 'x':
		l.advance()
		start := l.Pos
		for i := 0; i < 2 && isHexDigit(l.current()); i++ {
			l.advance()
		}
		if l.Pos-start != 2 {
			return "", false
		}
		n, err := strconv.ParseInt(l.Src[start:l.Pos], 16, 32)
		if err != nil {
			return "", false
		}
		return string(rune(n)), true
	case 'u':
		l.advance()
		if l.current() == '{' {
			l.advance()
			start := l.Pos
			for l.current() != '}' && l.Pos < l.SrcLength {
				l.advance()
			}
			n, err := strconv.ParseInt(l.Src[start:l.Pos], 16, 32)
			l.advance() // '}'
			if err != nil {
				return "", false
			}
			return string(rune(n)), true
		}
		start := l.Pos
		for i := 0; i < 4 && isHexDigit(l.current()); i++ {
			l.advance()
		}
		if l.Pos-start != 4 {
			return "", false
		}
		n, err := strconv.ParseInt(l.Src[start:l.Pos], 16, 32)
		if err != nil {
			return "", false
		}
		return string(rune(n)), true
	case 'U':
		l.advance()
		start := l.Pos
		for i := 0; i < 8 && isHexDigit(l.current()); i++ {
			l.advance()
		}
		if l.Pos-start != 8 {
			return "", false
		}
		n, err := strconv.ParseInt(l.Src[start:l.Pos], 16, 32)
		if err != nil {
			return "", false
		}
		return string(rune(n)), true
	case '\n', '\r':
		// line continuation inside a string
		l.advance()
		return "", true
	default:
		if isOctalDigit(c) {
			if l.Strict {
				return "", false
			}
			return l.readOctalEscape()
		}
		r := c
		l.advance()
		return string(r), true
	}
}

// readOctalEscape handles \0-\377 octal escapes; readEscape's '0'/default
// cases reject these in strict mode before calling here (spec §4.2 "strict
// string rules").
func (l *Lexer) readOctalEscape() (string, bool) {
	start := l.Pos
	for i := 0; i < 3 && isOctalDigit(l.current()); i++ {
		l.advance()
	}
	n, err := strconv.ParseInt(l.Src[start:l.Pos], 8, 32)
	if err != nil {
		return "", false
	}
	return string(rune(n)), true
}
