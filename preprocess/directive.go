package preprocess

import (
	"fmt"

	"github.com/objj-lang/objjparse/lexer"
	"github.com/objj-lang/objjparse/perrors"
	"github.com/objj-lang/objjparse/token"
)

// Preprocessor sits between the raw Lexer and the parser, implementing
// C3-C7 (spec §1): it intercepts line-initial '#' directives, maintains
// the macro table and conditional-skip stack, and multiplexes the token
// stream the parser sees between raw source tokens and array-backed macro
// expansions (stream.go).
type Preprocessor struct {
	lex    *lexer.Lexer
	Macros *MacroTable
	Warn   perrors.Sink

	frames         []frame
	expandingStack []string
	pendingRaw     *token.Token

	conditionals []*conditionalFrame

	fileName string
	fatal    *perrors.ParseError
}

// conditionalPhase distinguishes the #if/#ifdef/#ifndef branch of a chain
// from its #elif/#else branches, needed to reject "#elif after #else" and
// "#else after #else" (spec §4.4 "malformed conditional nesting").
type conditionalPhase int

const (
	phaseIf conditionalPhase = iota
	phaseElse
)

type conditionalFrame struct {
	phase    conditionalPhase
	skipping bool // true if this branch's tokens must not reach the parser
	matched  bool // true once some branch in this #if..#endif chain was taken
}

// New builds a Preprocessor reading from lex, seeded with the predefined
// macros for fileName (spec §4.3).
func New(lex *lexer.Lexer, fileName string, objJ, browser bool, warn perrors.Sink) *Preprocessor {
	return &Preprocessor{
		lex:      lex,
		Macros:   NewMacroTable(fileName, objJ, browser),
		Warn:     warn,
		fileName: fileName,
	}
}

// Err returns the fatal preprocessing error encountered so far, if any
// (e.g. an unterminated #if at EOF, spec §4.4 "Conditional-frame stack is
// empty at EOF").
func (p *Preprocessor) Err() *perrors.ParseError { return p.fatal }

func (p *Preprocessor) skipping() bool {
	if len(p.conditionals) == 0 {
		return false
	}
	return p.conditionals[len(p.conditionals)-1].skipping
}

func (p *Preprocessor) warn(msg string, tok token.Token) {
	if p.Warn == nil {
		return
	}
	line, col := tok.CurLine, 0
	if tok.StartLoc != nil {
		line, col = tok.StartLoc.Line, tok.StartLoc.Column
	}
	p.Warn.Warn(msg, line, col)
}

func (p *Preprocessor) fail(msg string, tok token.Token) {
	if p.fatal != nil {
		return
	}
	line, col := tok.CurLine, 0
	if tok.StartLoc != nil {
		line, col = tok.StartLoc.Line, tok.StartLoc.Column
	}
	p.fatal = &perrors.ParseError{
		Message: msg, Line: line, Column: col, LineStart: tok.LineStart, FileName: p.fileName,
	}
}

// Next returns the next token the parser should see, performing macro
// expansion and directive processing transparently (spec §4.6-§4.7).
func (p *Preprocessor) Next() token.Token {
	for {
		if p.fatal != nil {
			return token.Token{Type: token.EOF}
		}
		tok, ok := p.rawNext()
		if !ok {
			if len(p.conditionals) > 0 {
				p.fail("unterminated conditional directive", tok)
			}
			return token.Token{Type: token.EOF}
		}
		if tok.Type != token.Name {
			return tok
		}
		name, _ := tok.Value.(string)
		m, isMacro := p.Macros.Lookup(name)
		if !isMacro || p.isExpanding(name) {
			return tok
		}
		if m.IsFunction {
			next, hasNext := p.peekRaw()
			if !hasNext || next.Type != token.ParenL {
				return tok
			}
			p.consumeRaw()
			args, err := p.collectArguments(m, tok)
			if err != nil {
				p.fail(err.Error(), tok)
				return token.Token{Type: token.EOF}
			}
			p.pushFrame(expandFunctionMacro(m, args, tok, p.Macros), name)
			continue
		}
		p.pushFrame(expandObjectMacro(m, tok, p.Macros), name)
		continue
	}
}

// rawNext is the bottom half of the multiplexer: it drains the topmost
// frame, or falls through to the lexer, intercepting directives and
// discarding tokens while a conditional branch is suppressed.
func (p *Preprocessor) rawNext() (token.Token, bool) {
	if p.pendingRaw != nil {
		t := *p.pendingRaw
		p.pendingRaw = nil
		return t, true
	}
	for {
		if len(p.frames) > 0 {
			top := &p.frames[len(p.frames)-1]
			if tok, ok := top.next(); ok {
				return tok, true
			}
			p.popFrame()
			continue
		}
		tok := p.lex.NextToken(false)
		if tok.Type == token.EOF {
			return tok, false
		}
		if tok.Type == token.Hash {
			p.processDirective()
			if p.fatal != nil {
				return token.Token{}, false
			}
			continue
		}
		if p.skipping() {
			continue
		}
		return tok, true
	}
}

func (p *Preprocessor) peekRaw() (token.Token, bool) {
	if p.pendingRaw != nil {
		return *p.pendingRaw, true
	}
	t, ok := p.rawNext()
	if !ok {
		return t, false
	}
	p.pendingRaw = &t
	return t, true
}

func (p *Preprocessor) consumeRaw() { p.pendingRaw = nil }

// directiveLine reads raw tokens (bypassing macro expansion — directive
// keywords and #if's own macro-expansion pass are handled explicitly by
// their callers) up to and including EOL, returning the tokens before it.
func (p *Preprocessor) directiveLine() []token.Token {
	var toks []token.Token
	for {
		tok := p.lex.NextToken(false)
		if tok.Type == token.EOL || tok.Type == token.EOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

// processDirective runs immediately after a line-initial '#' is read from
// the lexer (spec §4.4). It always tracks #if/#ifdef/#ifndef/#elif/#else/
// #endif nesting, even while skipping, so malformed/unbalanced regions
// inside a skipped branch are still caught and the skip depth stays
// correct; all other directives are no-ops while skipping.
func (p *Preprocessor) processDirective() {
	dirTok := p.lex.NextToken(false)
	if p.skipping() && (dirTok.Type == token.PPDefine || dirTok.Type == token.PPUndef) {
		p.directiveLine()
		return
	}
	switch dirTok.Type {
	case token.EOL:
		return // blank "#" line, legal no-op
	case token.PPDefine:
		p.handleDefine()
	case token.PPUndef:
		p.handleUndef()
	case token.PPIf:
		p.handleIf(dirTok)
	case token.PPIfdef:
		p.handleIfdef(true, dirTok)
	case token.PPIfndef:
		p.handleIfdef(false, dirTok)
	case token.PPElif:
		p.handleElif(dirTok)
	case token.PPElse:
		p.handleElse(dirTok)
	case token.PPEndif:
		p.handleEndif(dirTok)
	case token.PPPragma, token.PPError, token.PPWarning:
		toks := p.directiveLine()
		if !p.skipping() {
			p.handleDiagnosticDirective(dirTok, toks)
		}
	case token.PPInclude:
		toks := p.directiveLine()
		if !p.skipping() {
			p.fail("#include is not supported", dirTok)
			_ = toks
		}
	case token.PPLine:
		toks := p.directiveLine()
		if !p.skipping() {
			p.handleLine(dirTok, toks)
		}
	default:
		toks := p.directiveLine()
		if !p.skipping() {
			p.fail(fmt.Sprintf("invalid preprocessing directive %q", dirTok.Literal()), dirTok)
			_ = toks
		}
	}
}

func (p *Preprocessor) handleDiagnosticDirective(dirTok token.Token, toks []token.Token) {
	msg := stringifyTokens(toks)
	switch dirTok.Type {
	case token.PPError:
		p.fail("#error "+msg, dirTok)
	case token.PPWarning:
		p.warn("#warning "+msg, dirTok)
	case token.PPPragma:
		// Pragmas are consumed and otherwise ignored (spec §4.4 "#pragma").
	}
}

func (p *Preprocessor) handleLine(dirTok token.Token, toks []token.Token) {
	if len(toks) == 0 || toks[0].Type != token.Num {
		p.fail("#line directive requires a line number", dirTok)
	}
	// The numeric line/file override is only checked, not recorded; it
	// does not affect this package's own Line/Column bookkeeping, matching
	// the narrow scope spec §4.4 gives #line ("accepted for GNU-cpp source
	// compatibility, not required to renumber reported positions").
}

func (p *Preprocessor) handleUndef() {
	nameTok := p.lex.NextToken(false)
	rest := p.directiveLine()
	if nameTok.Type != token.Name {
		p.fail("macro name missing after #undef", nameTok)
		return
	}
	if p.skipping() {
		return
	}
	name, _ := nameTok.Value.(string)
	if w := p.Macros.Undef(name); w != "" {
		p.warn(w, nameTok)
	}
	_ = rest
}

func (p *Preprocessor) handleDefine() {
	nameTok := p.lex.NextToken(false)
	if nameTok.Type != token.Name {
		toks := p.directiveLine()
		p.fail("macro name missing after #define", nameTok)
		_ = toks
		return
	}
	name, _ := nameTok.Value.(string)

	m := &Macro{Name: name}
	if nameTok.StartLoc != nil {
		m.DefinedAt = *nameTok.StartLoc
	}

	next := p.lex.NextToken(false)
	switch {
	case next.Type == token.ParenL && next.Start == nameTok.End:
		m.IsFunction = true
		if err := p.parseMacroParams(m); err != nil {
			p.fail(err.Error(), nameTok)
			return
		}
		p.lex.Mode |= lexer.ModeMacroBody
		m.Tokens = p.readMacroBody(m)
		p.lex.Mode &^= lexer.ModeMacroBody
	case next.Type == token.EOL || next.Type == token.EOF:
		// Directive mode is already closed out by the lexer's own EOL
		// handling; an empty replacement list needs no further reading.
	default:
		p.lex.Jump(next.Start, nameTok.RegexpAllowed)
		p.lex.PrevTokenType = nameTok.Type
		p.lex.Mode |= lexer.ModeMacroBody
		m.Tokens = p.readMacroBody(m)
		p.lex.Mode &^= lexer.ModeMacroBody
	}

	if err := validateReplacementList(m); err != nil {
		p.fail(err.Error(), nameTok)
		return
	}

	if p.skipping() {
		return
	}
	warning, err := p.Macros.Define(m)
	if err != nil {
		p.fail(err.Error(), nameTok)
		return
	}
	if warning != "" {
		p.warn(warning, nameTok)
	}
}

// parseMacroParams reads "(a, b, ...)" or "(a, b, c...)" right after a
// function-like macro's name (spec §4.3 "Parameters").
func (p *Preprocessor) parseMacroParams(m *Macro) error {
	// The '(' was already consumed by handleDefine's lookahead read of
	// next (directive.go, the next.Type == token.ParenL case).
	idx := 0
	for {
		tok := p.lex.NextToken(false)
		switch tok.Type {
		case token.ParenR:
			return nil
		case token.Ellipsis:
			m.IsVariadic = true
			m.Parameters = append(m.Parameters, Parameter{Name: "__VA_ARGS__", Index: idx, Variadic: true})
			idx++
			closeTok := p.lex.NextToken(false)
			if closeTok.Type != token.ParenR {
				return fmt.Errorf("missing ')' after variadic parameter list")
			}
			return nil
		case token.Name:
			name, _ := tok.Value.(string)
			variadic := false
			peeked := p.lex.NextToken(false)
			if peeked.Type == token.Ellipsis {
				variadic = true
				m.IsVariadic = true
				peeked = p.lex.NextToken(false)
			}
			m.Parameters = append(m.Parameters, Parameter{Name: name, Index: idx, Variadic: variadic})
			idx++
			if peeked.Type == token.ParenR {
				return nil
			}
			if peeked.Type != token.Comma {
				return fmt.Errorf("expected ',' or ')' in macro parameter list")
			}
		default:
			return fmt.Errorf("unexpected token in macro parameter list")
		}
	}
}

// readMacroBody reads the replacement-list tokens up to EOL, tagging any
// token that spells a parameter name with that name (Token.MacroParameter)
// so the expansion engine never has to re-resolve identifiers (spec §4.3
// "replacement list").
func (p *Preprocessor) readMacroBody(m *Macro) []token.Token {
	var toks []token.Token
	for {
		tok := p.lex.NextToken(false)
		if tok.Type == token.EOL || tok.Type == token.EOF {
			return toks
		}
		if tok.Type == token.Name {
			if name, _ := tok.Value.(string); name != "" {
				if idx := m.paramIndex(name); idx >= 0 {
					tok.MacroParameter = name
				} else if name == "__VA_ARGS__" && m.IsVariadic {
					tok.MacroParameter = name
				}
			}
		}
		toks = append(toks, tok)
	}
}

// validateReplacementList enforces spec §4.3's constraints on where ## and
// # may appear: ## may not be the first or last token, and # (stringify)
// must be immediately followed by a parameter name in a function-like
// macro.
func validateReplacementList(m *Macro) error {
	if len(m.Tokens) == 0 {
		return nil
	}
	if m.Tokens[0].Type == token.HashPaste || m.Tokens[len(m.Tokens)-1].Type == token.HashPaste {
		return fmt.Errorf("'##' cannot appear at either end of a macro expansion")
	}
	if !m.IsFunction {
		return nil
	}
	for i, tok := range m.Tokens {
		if tok.Type != token.HashStringy {
			continue
		}
		if i+1 >= len(m.Tokens) || m.Tokens[i+1].MacroParameter == "" {
			return fmt.Errorf("'#' is not followed by a macro parameter")
		}
	}
	return nil
}

func stringifyTokens(toks []token.Token) string {
	s := ""
	for i, t := range toks {
		if i > 0 {
			s += " "
		}
		s += t.Literal()
	}
	return s
}
