// Package token defines the token vocabulary shared by the lexer,
// preprocessor, and parser: TokenType descriptors (§3 of the spec this
// package grounds), the Token value type, and the stable tokTypes table
// external consumers can range over.
package token

import "strconv"

// Type is a stable descriptor for one lexical category. Unlike the
// teacher's string-valued TokenType (lexer/token.go in the teacher repo),
// Type carries the attribute bits the parser's precedence climbing and the
// lexer's regex/division disambiguation both need, so a single table drives
// both the tokenizer state machine and parser dispatch.
type Type struct {
	Label string // human-readable name, used in error messages

	Keyword bool // reserved word, binds to an identifier-shaped lexeme

	// BeforeExpr is true when a token of this type can be immediately
	// followed by the start of an expression. The lexer consults it after
	// every emitted token to decide whether a following '/' starts a regex
	// literal or a division operator (spec §4.2 "Division vs regex").
	BeforeExpr bool

	IsLoop   bool // while/for/do — governs label-stack loop/switch kind
	IsAssign bool // =, +=, -=, ...
	Prefix   bool // !, ~, typeof, void, delete, unary +/-
	Postfix  bool // postfix ++/--
	IsUpdate bool // ++/--  (prefix or postfix)

	// Binop is the binary operator precedence, 1 (lowest) through 10
	// (highest), or 0 if this type is not a binary operator. Mirrors the
	// teacher's getPrecedence table (parser/parser_precedence.go) but lives
	// on the type itself instead of a side switch, since the preprocessor's
	// #if evaluator (§4.5) needs the same precedence table the parser uses.
	Binop int

	AtomValue any // fixed value for literal-shaped keywords: true/false/null

	// Preprocess marks an operator as usable inside a #if/#elif constant
	// expression (§4.5). Comma and assignment operators are not.
	Preprocess bool

	// OkAsIdent allows a keyword to be used as an identifier/member name
	// outside of "forbidReserved everywhere" mode.
	OkAsIdent bool
}

// Token is a single lexical unit, copied by value when captured into a
// macro body (spec §3 "Tokens are values, copied when captured into macro
// bodies").
type Token struct {
	Input string // the source buffer this token's offsets refer to

	Start, End int
	Pos        int // alias of Start, kept for readToken bookkeeping

	Type  *Type
	Value any // literal value: string, float64, bool, nil, or the raw text

	RegexpAllowed    bool
	FirstTokenOnLine bool

	StartLoc, EndLoc *Loc
	CurLine          int
	LineStart        int

	CommentsBefore []Comment
	CommentsAfter  []Comment
	SpacesBefore   []Space
	SpacesAfter    []Space

	// MacroParameter names the macro parameter this identifier token was
	// tagged as on first lookup inside a macro body (spec §4.6).
	MacroParameter string

	// DeletePreviousComma marks a synthesized token that should cause the
	// comma immediately preceding it in the output stream to be dropped —
	// used by the ", ##__VA_ARGS__" GNU extension (spec §4.6).
	DeletePreviousComma bool
}

// Loc is a {line, column} location pair, attached to tokens/nodes when
// Options.Locations is set.
type Loc struct {
	Line   int
	Column int
}

// Comment is one skipped comment, block or line.
type Comment struct {
	Block      bool
	Text       string
	Start, End int
	StartLoc   *Loc
	EndLoc     *Loc
}

// Space is one skipped run of whitespace (tracked only when
// Options.TrackSpaces is set).
type Space struct {
	Text       string
	Start, End int
}

// Literal returns the token's literal source text. For tokens produced by
// macro pasting/stringification, Value already holds the synthesized text.
func (t Token) Literal() string {
	if s, ok := t.Value.(string); ok && t.Type != nil && (t.Type == StringLit || t.Type == TemplateString) {
		return s
	}
	if t.Type != nil && t.Type.Label != "" && t.Start == t.End {
		return t.Type.Label
	}
	if s, ok := t.Value.(string); ok {
		return s
	}
	switch v := t.Value.(type) {
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}
	if t.Type != nil {
		return t.Type.Label
	}
	return ""
}

func (t Token) Is(tt *Type) bool { return t.Type == tt }
