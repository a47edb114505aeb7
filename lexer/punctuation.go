package lexer

import "github.com/objj-lang/objjparse/token"

// readPunctuation classifies operators and structural tokens. This is the
// direct generalization of the teacher's big NextToken switch
// (lexer/lexer.go): same one-character-lookahead-at-a-time shape, extended
// with the three-character compound-assignment forms (<<=, >>=, >>>=) and
// ES-specific punctuation (=>, ..., ::) the GoMix dialect never needed.
func (l *Lexer) readPunctuation(startPos, startLine, startCol int, firstOnLine bool) token.Token {
	c := l.current()
	l.advance()

	switch c {
	case '(':
		return l.finish(token.ParenL, nil, startPos, startLine, startCol, firstOnLine)
	case ')':
		return l.finish(token.ParenR, nil, startPos, startLine, startCol, firstOnLine)
	case '{':
		return l.finish(token.BraceL, nil, startPos, startLine, startCol, firstOnLine)
	case '}':
		return l.finish(token.BraceR, nil, startPos, startLine, startCol, firstOnLine)
	case '[':
		return l.finish(token.BracketL, nil, startPos, startLine, startCol, firstOnLine)
	case ']':
		return l.finish(token.BracketR, nil, startPos, startLine, startCol, firstOnLine)
	case ',':
		return l.finish(token.Comma, nil, startPos, startLine, startCol, firstOnLine)
	case ';':
		return l.finish(token.Semi, nil, startPos, startLine, startCol, firstOnLine)
	case ':':
		if l.current() == ':' {
			l.advance()
			return l.finish(token.DoubleColon, nil, startPos, startLine, startCol, firstOnLine)
		}
		return l.finish(token.Colon, nil, startPos, startLine, startCol, firstOnLine)
	case '?':
		return l.finish(token.Question, nil, startPos, startLine, startCol, firstOnLine)
	case '.':
		if l.current() == '.' && l.peek() == '.' {
			l.advance()
			l.advance()
			return l.finish(token.Ellipsis, nil, startPos, startLine, startCol, firstOnLine)
		}
		return l.finish(token.Dot, nil, startPos, startLine, startCol, firstOnLine)
	case '`':
		return l.finish(token.Backtick, nil, startPos, startLine, startCol, firstOnLine)

	case '=':
		if l.current() == '=' {
			l.advance()
			if l.current() == '=' {
				l.advance()
				return l.finish(token.Equality, "===", startPos, startLine, startCol, firstOnLine)
			}
			return l.finish(token.Equality, "==", startPos, startLine, startCol, firstOnLine)
		}
		if l.current() == '>' {
			l.advance()
			return l.finish(token.Arrow, nil, startPos, startLine, startCol, firstOnLine)
		}
		return l.finish(token.Eq, "=", startPos, startLine, startCol, firstOnLine)
	case '!':
		if l.current() == '=' {
			l.advance()
			if l.current() == '=' {
				l.advance()
				return l.finish(token.Equality, "!==", startPos, startLine, startCol, firstOnLine)
			}
			return l.finish(token.Equality, "!=", startPos, startLine, startCol, firstOnLine)
		}
		return l.finish(token.Prefix, "!", startPos, startLine, startCol, firstOnLine)
	case '+':
		if l.current() == '+' {
			l.advance()
			return l.finish(token.IncDec, "++", startPos, startLine, startCol, firstOnLine)
		}
		if l.current() == '=' {
			l.advance()
			return l.finish(token.AssignOp, "+=", startPos, startLine, startCol, firstOnLine)
		}
		return l.finish(token.PlusMin, "+", startPos, startLine, startCol, firstOnLine)
	case '-':
		if l.current() == '-' {
			l.advance()
			return l.finish(token.IncDec, "--", startPos, startLine, startCol, firstOnLine)
		}
		if l.current() == '=' {
			l.advance()
			return l.finish(token.AssignOp, "-=", startPos, startLine, startCol, firstOnLine)
		}
		return l.finish(token.PlusMin, "-", startPos, startLine, startCol, firstOnLine)
	case '*':
		if l.current() == '=' {
			l.advance()
			return l.finish(token.AssignOp, "*=", startPos, startLine, startCol, firstOnLine)
		}
		return l.finish(token.Star, "*", startPos, startLine, startCol, firstOnLine)
	case '/':
		if l.current() == '=' {
			l.advance()
			return l.finish(token.AssignOp, "/=", startPos, startLine, startCol, firstOnLine)
		}
		return l.finish(token.Slash, "/", startPos, startLine, startCol, firstOnLine)
	case '%':
		if l.current() == '=' {
			l.advance()
			return l.finish(token.AssignOp, "%=", startPos, startLine, startCol, firstOnLine)
		}
		return l.finish(token.Modulo, "%", startPos, startLine, startCol, firstOnLine)
	case '^':
		if l.current() == '=' {
			l.advance()
			return l.finish(token.AssignOp, "^=", startPos, startLine, startCol, firstOnLine)
		}
		return l.finish(token.BitXor, "^", startPos, startLine, startCol, firstOnLine)
	case '&':
		if l.current() == '&' {
			l.advance()
			return l.finish(token.LogicalAnd, "&&", startPos, startLine, startCol, firstOnLine)
		}
		if l.current() == '=' {
			l.advance()
			return l.finish(token.AssignOp, "&=", startPos, startLine, startCol, firstOnLine)
		}
		return l.finish(token.BitAnd, "&", startPos, startLine, startCol, firstOnLine)
	case '|':
		if l.current() == '|' {
			l.advance()
			return l.finish(token.LogicalOr, "||", startPos, startLine, startCol, firstOnLine)
		}
		if l.current() == '=' {
			l.advance()
			return l.finish(token.AssignOp, "|=", startPos, startLine, startCol, firstOnLine)
		}
		return l.finish(token.BitOr, "|", startPos, startLine, startCol, firstOnLine)
	case '~':
		return l.finish(token.Prefix, "~", startPos, startLine, startCol, firstOnLine)
	case '<':
		if l.current() == '<' {
			l.advance()
			if l.current() == '=' {
				l.advance()
				return l.finish(token.AssignOp, "<<=", startPos, startLine, startCol, firstOnLine)
			}
			return l.finish(token.BitShift, "<<", startPos, startLine, startCol, firstOnLine)
		}
		if l.current() == '=' {
			l.advance()
			return l.finish(token.Relational, "<=", startPos, startLine, startCol, firstOnLine)
		}
		return l.finish(token.Relational, "<", startPos, startLine, startCol, firstOnLine)
	case '>':
		if l.current() == '>' {
			l.advance()
			if l.current() == '>' {
				l.advance()
				if l.current() == '=' {
					l.advance()
					return l.finish(token.AssignOp, ">>>=", startPos, startLine, startCol, firstOnLine)
				}
				return l.finish(token.BitShift, ">>>", startPos, startLine, startCol, firstOnLine)
			}
			if l.current() == '=' {
				l.advance()
				return l.finish(token.AssignOp, ">>=", startPos, startLine, startCol, firstOnLine)
			}
			return l.finish(token.BitShift, ">>", startPos, startLine, startCol, firstOnLine)
		}
		if l.current() == '=' {
			l.advance()
			return l.finish(token.Relational, ">=", startPos, startLine, startCol, firstOnLine)
		}
		return l.finish(token.Relational, ">", startPos, startLine, startCol, firstOnLine)
	default:
		return l.finish(token.Invalid, string(c), startPos, startLine, startCol, firstOnLine)
	}
}
