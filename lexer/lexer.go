package lexer

import (
	"fmt"
	"unicode/utf8"

	"github.com/objj-lang/objjparse/token"
)

// Mode bits track lexer context independently, the way spec §4.2 describes:
// "directive and macro-body are independent of skipping."
type Mode uint8

const (
	ModeNormal Mode = 0
	// ModeDirective is set while reading a "#..." directive line: a bare
	// newline terminates the directive (synthesizing an EOL token) and a
	// line continuation requires an explicit trailing backslash.
	ModeDirective Mode = 1 << iota
	// ModeMacroBody is set while lexing a macro definition's replacement
	// list: '##' is recognized as the paste marker and a lone '#' followed
	// by a parameter name becomes the stringify marker.
	ModeMacroBody
)

// OnComment receives every skipped comment (spec §6 "onComment callback
// sink for every skipped comment").
type OnComment func(block bool, text string, start, end int, startLoc, endLoc *token.Loc)

// Lexer turns a source buffer into a stream of tokens. It is the direct
// generalization of the teacher's Lexer (lexer/lexer.go): same cursor
// fields (Position/Line/Column), same NextToken-dispatches-on-Current
// shape, extended with the directive/macro-body mode bits, regex-vs-division
// disambiguation, and the Objective-J '@' sub-lexer spec.md §4.2 describes.
type Lexer struct {
	Input     string // the buffer identifying name for Token.Input
	Src       string
	Pos       int
	SrcLength int

	Line, Column int
	LineStart    int // offset of the start of the current line, for getLineInfo

	Mode Mode

	// RegexpAllowed mirrors the teacher's per-lexer flag, set after every
	// emitted token to the token type's BeforeExpr attribute (spec §4.2).
	RegexpAllowed bool

	// PrevTokenType records the type of the last emitted token so the
	// '<' after '@import' and the directive keyword after '#' can be
	// special-cased without a parser round-trip.
	PrevTokenType *Type

	// ObjJ enables the Objective-J sub-lexer and keyword set.
	ObjJ bool
	// EcmaVersion and Strict select the ES3/ES5 keyword and reserved-word
	// tables (spec §4.2 "Reserved-word rules").
	EcmaVersion int
	Strict      bool

	TrackComments, TrackSpaces, TrackLineBreakInComment bool
	Locations                                           bool
	OnComment                                           OnComment

	// pendingComments/pendingSpaces accumulate trivia since the previous
	// emitted token; NextToken drains them into the returned token's
	// CommentsBefore/SpacesBefore (spec §4.10).
	pendingComments []token.Comment
	pendingSpaces   []token.Space

	firstTokenOnLine bool

	// pendingError/pendingErrorStart/.../Col let skipSpace report a fault
	// (e.g. an unterminated block comment) discovered while it has no
	// token of its own to return Invalid from; NextToken checks it right
	// after calling skipSpace.
	pendingError          string
	pendingErrorStart     int
	pendingErrorLine, pendingErrorCol int
}

// Type is re-exported for brevity inside this package's files.
type Type = token.Type

// New creates a Lexer positioned at the start of src. name is the buffer
// identity stamped onto every Token.Input (spec §3 "input identifies the
// source string").
func New(name, src string) *Lexer {
	l := &Lexer{
		Input: name, Src: src, SrcLength: len(src),
		Line: 1, Column: 1, EcmaVersion: 5,
		firstTokenOnLine: true,
	}
	return l
}

// Reset reinitializes the lexer over a new buffer, discharging §5's
// "starting a new parse fully resets this context" guarantee for the
// lexer's share of that context.
func (l *Lexer) Reset(name, src string) {
	opts := *l
	*l = Lexer{
		Input: name, Src: src, SrcLength: len(src),
		Line: 1, Column: 1, EcmaVersion: opts.EcmaVersion, Strict: opts.Strict,
		ObjJ: opts.ObjJ, TrackComments: opts.TrackComments, TrackSpaces: opts.TrackSpaces,
		TrackLineBreakInComment: opts.TrackLineBreakInComment, Locations: opts.Locations,
		OnComment: opts.OnComment, firstTokenOnLine: true,
	}
}

// current decodes the codepoint at the cursor (spec §4.1 treats identifier
// characters and line terminators as Unicode codepoints, not bytes, the
// way classify.go's isIdentifierChar/isNewLine already do).
func (l *Lexer) current() rune {
	if l.Pos >= l.SrcLength {
		return 0
	}
	if l.Src[l.Pos] < utf8.RuneSelf {
		return rune(l.Src[l.Pos])
	}
	r, _ := utf8.DecodeRuneInString(l.Src[l.Pos:])
	return r
}

func (l *Lexer) currentWidth() int {
	if l.Pos >= l.SrcLength {
		return 0
	}
	if l.Src[l.Pos] < utf8.RuneSelf {
		return 1
	}
	_, w := utf8.DecodeRuneInString(l.Src[l.Pos:])
	if w == 0 {
		return 1
	}
	return w
}

// peekAt looks off bytes ahead of the cursor. Every call site uses it only
// to match a fixed run of ASCII punctuation after an already-ASCII current
// character (e.g. "-->" , "+"/"-" in an exponent), so a byte offset is
// safe; it is never used to look past a multi-byte rune.
func (l *Lexer) peekAt(off int) rune {
	if l.Pos+off >= l.SrcLength {
		return 0
	}
	return rune(l.Src[l.Pos+off])
}

// peek returns the codepoint immediately following the current one,
// properly skipping the current rune's full byte width so a multi-byte
// current character (e.g. inside a CRLF check after a non-ASCII comment
// character) doesn't land mid-sequence.
func (l *Lexer) peek() rune {
	w := l.currentWidth()
	if w == 0 || l.Pos+w >= l.SrcLength {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.Src[l.Pos+w:])
	return r
}

// advance moves the cursor forward by one codepoint, tracking line/column
// the way the teacher's Lexer.Advance does, plus CRLF folding (spec §4.1
// "CRLF counts as one line") and U+2028/U+2029 line separators.
func (l *Lexer) advance() {
	c := l.current()
	width := l.currentWidth()
	if width == 0 {
		width = 1
	}
	if c == '\n' {
		l.Line++
		l.Column = 0
		l.LineStart = l.Pos + width
	} else if isNewLine(c) && !(c == '\r' && l.peek() == '\n') {
		l.Line++
		l.Column = 0
		l.LineStart = l.Pos + width
	}
	l.Pos += width
	l.Column++
}

func (l *Lexer) loc() *token.Loc {
	if !l.Locations {
		return nil
	}
	return &token.Loc{Line: l.Line, Column: l.Column}
}

// Jump seeks the lexer to an arbitrary offset, matching the "jumpTo(pos,
// regexpAllowed)" seek named in spec §6. Line/column are recomputed from
// scratch since a jump can land anywhere, forward or backward.
func (l *Lexer) Jump(pos int, regexpAllowed bool) {
	if pos < 0 {
		pos = 0
	}
	if pos > l.SrcLength {
		pos = l.SrcLength
	}
	l.Pos = 0
	l.Line = 1
	l.Column = 1
	l.LineStart = 0
	for l.Pos < pos {
		l.advance()
	}
	l.RegexpAllowed = regexpAllowed
}

// NextToken scans and returns the next token, having first skipped
// whitespace and comments (spec §4.2). forceRegexp overrides the
// RegexpAllowed disambiguation for a leading '/', used by Tokenize's
// iterator (spec §6).
func (l *Lexer) NextToken(forceRegexp bool) token.Token {
	l.skipSpace()

	if l.pendingError != "" {
		msg := l.pendingError
		errPos, errLine, errCol := l.pendingErrorStart, l.pendingErrorLine, l.pendingErrorCol
		l.pendingError = ""
		firstOnLine := l.firstTokenOnLine
		l.firstTokenOnLine = false
		return l.finish(token.Invalid, msg, errPos, errLine, errCol, firstOnLine)
	}

	startPos, startLine, startCol := l.Pos, l.Line, l.Column
	firstOnLine := l.firstTokenOnLine
	l.firstTokenOnLine = false

	if l.Pos >= l.SrcLength {
		return l.finish(token.EOF, nil, startPos, startLine, startCol, firstOnLine)
	}

	if l.Mode&ModeDirective != 0 && l.atLogicalNewline() {
		l.Mode &^= ModeDirective
		return l.finish(token.EOL, nil, startPos, startLine, startCol, firstOnLine)
	}

	c := l.current()

	switch {
	case c == '#':
		return l.readHash(startPos, startLine, startCol, firstOnLine)
	case c == '@' && l.ObjJ:
		return l.readAt(startPos, startLine, startCol, firstOnLine)
	case c == '<' && l.ObjJ && l.PrevTokenType == token.AtImport:
		return l.readImportFilename(startPos, startLine, startCol, firstOnLine)
	case c == '"' || c == '\'':
		return l.readString(c, startPos, startLine, startCol, firstOnLine, false)
	case isDecimalDigit(c):
		return l.readNumber(startPos, startLine, startCol, firstOnLine)
	case c == '.' && isDecimalDigit(l.peek()):
		return l.readNumber(startPos, startLine, startCol, firstOnLine)
	case isIdentifierStart(c):
		return l.readIdentifier(startPos, startLine, startCol, firstOnLine)
	case c == '/' && (l.RegexpAllowed || forceRegexp):
		return l.readRegexp(startPos, startLine, startCol, firstOnLine)
	default:
		return l.readPunctuation(startPos, startLine, startCol, firstOnLine)
	}
}

// atLogicalNewline reports whether the cursor sits exactly on a newline
// that is not preceded by a line-continuation backslash (spec §4.2 "a
// backslash immediately followed by a newline is whitespace").
func (l *Lexer) atLogicalNewline() bool {
	return isNewLine(l.current())
}

// finish builds a Token from the classified [start,Pos) span, sets its
// trivia from the pending buffers, and updates RegexpAllowed/PrevTokenType
// for the next call (spec §4.2 "finishToken").
func (l *Lexer) finish(tt *Type, value any, startPos, startLine, startCol int, firstOnLine bool) token.Token {
	tok := token.Token{
		Input: l.Input, Start: startPos, End: l.Pos, Pos: startPos,
		Type: tt, Value: value, FirstTokenOnLine: firstOnLine,
	}
	if l.Locations {
		tok.StartLoc = &token.Loc{Line: startLine, Column: startCol}
		tok.EndLoc = l.loc()
	}
	tok.CurLine = l.Line
	tok.LineStart = l.LineStart
	if len(l.pendingComments) > 0 {
		tok.CommentsBefore = l.pendingComments
		l.pendingComments = nil
	}
	if len(l.pendingSpaces) > 0 {
		tok.SpacesBefore = l.pendingSpaces
		l.pendingSpaces = nil
	}
	l.RegexpAllowed = tt.BeforeExpr
	l.PrevTokenType = tt
	tok.RegexpAllowed = l.RegexpAllowed
	return tok
}

func (l *Lexer) errorf(format string, args ...any) error {
	return fmt.Errorf("%s (%d:%d): %s", l.Input, l.Line, l.Column, fmt.Sprintf(format, args...))
}
