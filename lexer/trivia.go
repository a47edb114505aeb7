package lexer

import "github.com/objj-lang/objjparse/token"

// skipSpace consumes whitespace and comments ahead of the next token,
// honoring directive mode: inside a directive a bare newline must stop so
// NextToken can synthesize the EOL token, but comments and a
// backslash-newline line continuation are still swallowed (spec §4.2
// "skipSpace, which honors directive mode").
func (l *Lexer) skipSpace() {
	for l.Pos < l.SrcLength {
		c := l.current()
		switch {
		case c == '\\' && isNewLine(l.peek()):
			l.advance() // backslash
			l.advance() // newline
			continue
		case isNewLine(c):
			if l.Mode&ModeDirective != 0 {
				return
			}
			l.firstTokenOnLine = true
			l.advance()
			continue
		case isWhitespace(c):
			start := l.Pos
			for isWhitespace(l.current()) && !isNewLine(l.current()) {
				l.advance()
			}
			if l.TrackSpaces {
				l.pendingSpaces = append(l.pendingSpaces, token.Space{Text: l.Src[start:l.Pos], Start: start, End: l.Pos})
			}
			continue
		case c == '/' && l.peek() == '/':
			l.skipLineComment()
			continue
		case c == '/' && l.peek() == '*':
			l.skipBlockComment()
			continue
		case c == '<' && l.peekAt(1) == '!' && l.peekAt(2) == '-' && l.peekAt(3) == '-':
			// HTML-style comment start, accepted as a line comment for ES
			// compatibility (spec §4.2 "HTML-style comments").
			l.skipLineComment()
			continue
		case c == '-' && l.peek() == '-' && l.peekAt(2) == '>' && l.firstTokenOnLine:
			l.skipLineComment()
			continue
		default:
			return
		}
	}
}

func (l *Lexer) skipLineComment() {
	start := l.Pos
	startLine, startCol := l.Line, l.Column
	for l.Pos < l.SrcLength && !isNewLine(l.current()) {
		l.advance()
	}
	text := l.Src[start:l.Pos]
	l.recordComment(false, text, start, l.Pos, startLine, startCol)
}

func (l *Lexer) skipBlockComment() {
	start := l.Pos
	startLine, startCol := l.Line, l.Column
	l.advance()
	l.advance()
	closed := false
	for l.Pos < l.SrcLength {
		if l.current() == '*' && l.peek() == '/' {
			l.advance()
			l.advance()
			closed = true
			break
		}
		l.advance()
	}
	text := l.Src[start:l.Pos]
	if !closed {
		l.pendingError = "unterminated block comment"
		l.pendingErrorStart, l.pendingErrorLine, l.pendingErrorCol = start, startLine, startCol
	}
	l.recordComment(true, text, start, l.Pos, startLine, startCol)
}

func (l *Lexer) recordComment(block bool, text string, start, end, startLine, startCol int) {
	if l.TrackLineBreakInComment && !block && start > 0 && isNewLine(rune(l.Src[start-1])) {
		// Fold the line break right before a line comment into its text
		// and start offset.
		start--
		text = l.Src[start:end]
	}
	var startLoc, endLoc *token.Loc
	if l.Locations {
		startLoc = &token.Loc{Line: startLine, Column: startCol}
		endLoc = l.loc()
	}
	if l.OnComment != nil {
		l.OnComment(block, text, start, end, startLoc, endLoc)
	}
	if l.TrackComments {
		l.pendingComments = append(l.pendingComments, token.Comment{
			Block: block, Text: text, Start: start, End: end, StartLoc: startLoc, EndLoc: endLoc,
		})
	}
}
