package lexer

import "github.com/objj-lang/objjparse/token"

// readIdentifier scans an identifier or keyword, then re-types it against
// the active ES keyword set, the Objective-J keyword set (only when
// lexing inside an '@' word, handled separately in objj.go), or the
// preprocessor keyword set (only inside directive mode) — spec §4.2
// "Identifiers".
func (l *Lexer) readIdentifier(startPos, startLine, startCol int, firstOnLine bool) token.Token {
	start := l.Pos
	for isIdentifierChar(l.current()) {
		l.advance()
	}
	word := l.Src[start:l.Pos]

	if l.Mode&ModeDirective != 0 && l.PrevTokenType == token.Hash {
		if d := token.LookupPreprocessorDirective(word); d != nil {
			return l.finish(d, word, startPos, startLine, startCol, firstOnLine)
		}
	}
	if l.Mode&ModeDirective != 0 && word == "defined" {
		return l.finish(token.KwDefined, word, startPos, startLine, startCol, firstOnLine)
	}

	if kw := token.LookupKeyword(word, l.EcmaVersion, l.Strict); kw != nil {
		return l.finish(kw, word, startPos, startLine, startCol, firstOnLine)
	}
	return l.finish(token.Name, word, startPos, startLine, startCol, firstOnLine)
}

// readRegexp scans a regular expression literal including character
// classes (spec §4.2 "Division vs regex"): '/' was already determined to
// start a regex by NextToken's RegexpAllowed check.
func (l *Lexer) readRegexp(startPos, startLine, startCol int, firstOnLine bool) token.Token {
	start := l.Pos
	l.advance() // opening '/'
	inClass := false
	for {
		if l.Pos >= l.SrcLength || isNewLine(l.current()) {
			return l.finish(token.Invalid, "unterminated regular expression", startPos, startLine, startCol, firstOnLine)
		}
		c := l.current()
		if c == '\\' {
			l.advance()
			if l.Pos < l.SrcLength {
				l.advance()
			}
			continue
		}
		if c == '[' {
			inClass = true
		} else if c == ']' {
			inClass = false
		} else if c == '/' && !inClass {
			l.advance()
			break
		}
		l.advance()
	}
	for isIdentifierChar(l.current()) {
		l.advance()
	}
	return l.finish(token.Regexp, l.Src[start:l.Pos], startPos, startLine, startCol, firstOnLine)
}
