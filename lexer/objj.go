package lexer

import "github.com/objj-lang/objjparse/token"

// readAt scans the Objective-J '@' sub-lexer: @keyword forms, @"string" /
// @'string' literals, and the @{ / @[ literal-start digraphs (spec §4.2
// "'@' prefix (Objective-J)").
func (l *Lexer) readAt(startPos, startLine, startCol int, firstOnLine bool) token.Token {
	start := l.Pos
	l.advance() // '@'

	switch l.current() {
	case '"', '\'':
		quote := l.current()
		return l.readString(quote, startPos, startLine, startCol, firstOnLine, true)
	case '{':
		l.advance()
		return l.finish(token.AtDictLit, "@{", startPos, startLine, startCol, firstOnLine)
	case '[':
		l.advance()
		return l.finish(token.AtArrayLit, "@[", startPos, startLine, startCol, firstOnLine)
	}

	if isIdentifierStart(l.current()) {
		for isIdentifierChar(l.current()) {
			l.advance()
		}
		word := l.Src[start:l.Pos]
		if tt := token.LookupObjJ(word); tt != nil {
			return l.finish(tt, word, startPos, startLine, startCol, firstOnLine)
		}
		return l.finish(token.Invalid, word, startPos, startLine, startCol, firstOnLine)
	}

	return l.finish(token.At, "@", startPos, startLine, startCol, firstOnLine)
}

// readImportFilename scans a "<framework/Header.j>" filename token, valid
// only immediately after an @import keyword (spec §4.2 "'<...>' after
// @import"): it terminates at '>' or errors at a newline.
func (l *Lexer) readImportFilename(startPos, startLine, startCol int, firstOnLine bool) token.Token {
	start := l.Pos
	l.advance() // '<'
	for {
		if l.Pos >= l.SrcLength || isNewLine(l.current()) {
			return l.finish(token.Invalid, "unterminated import filename", startPos, startLine, startCol, firstOnLine)
		}
		if l.current() == '>' {
			l.advance()
			break
		}
		l.advance()
	}
	return l.finish(token.ImportFilename, l.Src[start+1:l.Pos-1], startPos, startLine, startCol, firstOnLine)
}
