package lexer

import "github.com/objj-lang/objjparse/token"

// readHash classifies a '#' character. Its meaning depends on lexer mode
// (spec §4.2 "'#' prefix"):
//
//   - Inside a macro body (ModeMacroBody): "##" is the token-paste marker,
//     and a lone "#" is the stringification marker (the parameter name that
//     follows is read as an ordinary Name token by the caller).
//   - Otherwise, '#' is only meaningful as the first token of a logical
//     source line, where it enters directive mode; elsewhere it is invalid.
func (l *Lexer) readHash(startPos, startLine, startCol int, firstOnLine bool) token.Token {
	if l.Mode&ModeMacroBody != 0 {
		l.advance() // first '#'
		if l.current() == '#' {
			l.advance()
			return l.finish(token.HashPaste, "##", startPos, startLine, startCol, firstOnLine)
		}
		return l.finish(token.HashStringy, "#", startPos, startLine, startCol, firstOnLine)
	}

	if !firstOnLine {
		l.advance()
		return l.finish(token.Invalid, "#", startPos, startLine, startCol, firstOnLine)
	}

	l.advance()
	l.Mode |= ModeDirective
	return l.finish(token.Hash, "#", startPos, startLine, startCol, firstOnLine)
}
