package lexer

import (
	"strconv"
	"strings"

	"github.com/objj-lang/objjparse/token"
)

// readNumber scans integer, octal, hex, and float literals (spec §4.2
// "Numbers"), grounded on the teacher's readNumber (lexer/lexer_utils.go)
// but extended with hex/octal/exponent forms GoMix's all-decimal grammar
// never needed.
func (l *Lexer) readNumber(startPos, startLine, startCol int, firstOnLine bool) token.Token {
	start := l.Pos

	if l.current() == '0' && (l.peek() == 'x' || l.peek() == 'X') {
		l.advance()
		l.advance()
		for isHexDigit(l.current()) {
			l.advance()
		}
		return l.finishNumber(start, startPos, startLine, startCol, firstOnLine, 16)
	}

	isOctal := l.current() == '0' && isOctalDigit(l.peek())
	for isDecimalDigit(l.current()) {
		l.advance()
	}

	isFloat := false
	if l.current() == '.' && !isOctal {
		isFloat = true
		l.advance()
		for isDecimalDigit(l.current()) {
			l.advance()
		}
	}
	if (l.current() == 'e' || l.current() == 'E') && !isOctal {
		la := l.peek()
		if isDecimalDigit(la) || ((la == '+' || la == '-') && isDecimalDigit(l.peekAt(2))) {
			isFloat = true
			l.advance()
			if l.current() == '+' || l.current() == '-' {
				l.advance()
			}
			for isDecimalDigit(l.current()) {
				l.advance()
			}
		}
	}

	if isIdentifierStart(l.current()) {
		// spec §4.2: "Identifier start immediately after a numeric literal
		// is an error."
		return l.finish(token.Invalid, l.Src[start:l.Pos], startPos, startLine, startCol, firstOnLine)
	}

	text := l.Src[start:l.Pos]
	if isOctal {
		return l.finishNumber(start, startPos, startLine, startCol, firstOnLine, 8)
	}
	if isFloat {
		f, _ := strconv.ParseFloat(text, 64)
		return l.finish(token.Num, f, startPos, startLine, startCol, firstOnLine)
	}
	return l.finishNumber(start, startPos, startLine, startCol, firstOnLine, 10)
}

func (l *Lexer) finishNumber(start, startPos, startLine, startCol int, firstOnLine bool, base int) token.Token {
	text := l.Src[start:l.Pos]
	clean := text
	switch base {
	case 16:
		clean = strings.TrimPrefix(strings.TrimPrefix(clean, "0x"), "0X")
	case 8:
		clean = strings.TrimPrefix(clean, "0")
		if clean == "" {
			clean = "0"
		}
	}
	n, err := strconv.ParseInt(clean, base, 64)
	if err != nil {
		f, _ := strconv.ParseFloat(text, 64)
		return l.finish(token.Num, f, startPos, startLine, startCol, firstOnLine)
	}
	return l.finish(token.Num, float64(n), startPos, startLine, startCol, firstOnLine)
}
