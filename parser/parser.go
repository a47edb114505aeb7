package parser

import (
	"fmt"

	"github.com/objj-lang/objjparse/ast"
	"github.com/objj-lang/objjparse/config"
	"github.com/objj-lang/objjparse/lexer"
	"github.com/objj-lang/objjparse/perrors"
	"github.com/objj-lang/objjparse/preprocess"
	"github.com/objj-lang/objjparse/token"
)

// tokenSource is the single "read next token" operation spec §4.7/§6
// describe; satisfied by *preprocess.Preprocessor when preprocessing is on,
// or directly by *lexer.Lexer when it is off, so the parser core never
// needs to know which one it's talking to (spec §4.7 "the parser always
// consumes via a single next-token operation").
type tokenSource interface {
	Next() token.Token
}

// rawLexerSource adapts *lexer.Lexer to tokenSource for Options.Preprocess
// == false (spec §6 "preprocess: enables §4.4-4.7").
type rawLexerSource struct{ lex *lexer.Lexer }

func (r rawLexerSource) Next() token.Token { return r.lex.NextToken(false) }

// Parser is the recursive-descent parser core (spec §4.8 component C8),
// generalizing the teacher's two-token-lookahead Parser
// (_examples/akashmaji946-go-mix/parser/parser.go: CurrToken/NextToken,
// advance/expectAdvance/expectNext) with Objective-J statement/expression
// dispatch and preprocessor-aware error abort.
type Parser struct {
	opts config.Options

	lex    *lexer.Lexer
	pp     *preprocess.Preprocessor
	source tokenSource

	cur, peek token.Token

	state

	warnings *perrors.Collector
	err      *perrors.ParseError

	lineStarts []int // lazily built by locAt, offset of each line's first byte

	// Leading-trivia bookkeeping (spec §4.10 "commentsBefore"): trivia
	// recorded per token start offset as that token becomes cur, and the
	// node currently holding the claim for that offset (see trivia.go).
	pendingLeadingComments map[int][]token.Comment
	pendingLeadingSpaces   map[int][]token.Space
	leadingClaimant        map[int]*ast.BaseNode
}

// abortParse is the internal panic payload Parser.raise throws to unwind
// out of arbitrarily nested recursive-descent calls back to Parse/Tokenize,
// implementing spec §7's "every fatal error aborts the entire parse"
// without threading an error return through every parse* method — the same
// throw-based abort real ES parsers (e.g. Acorn, on whose option surface
// spec §6 is modeled) use internally.
type abortParse struct{ err *perrors.ParseError }

// New builds a Parser over input with opts (spec §6 "parse(input,
// options)"). When opts.Preprocess is set, tokens flow through a
// preprocess.Preprocessor seeded with opts.Macros; otherwise the parser
// reads directly from the lexer.
func New(input string, opts config.Options) *Parser {
	lex := lexer.New(opts.SourceFile, input)
	lex.ObjJ = opts.ObjJ
	lex.EcmaVersion = opts.EcmaVersion
	lex.Strict = opts.Strict
	lex.TrackComments = opts.TrackComments
	lex.TrackSpaces = opts.TrackSpaces
	lex.TrackLineBreakInComment = opts.TrackCommentsIncludeLineBreak
	lex.Locations = opts.Locations

	p := &Parser{
		opts: opts, lex: lex, warnings: perrors.NewCollector(&config.ColorSink{FileName: opts.SourceFile}),
		pendingLeadingComments: make(map[int][]token.Comment),
		pendingLeadingSpaces:   make(map[int][]token.Space),
		leadingClaimant:        make(map[int]*ast.BaseNode),
	}
	p.state.strict = opts.Strict

	if opts.Preprocess {
		pp := preprocess.New(lex, opts.SourceFile, opts.ObjJ, opts.Browser, p.warnings)
		for name, body := range opts.Macros {
			text := name
			if body != "" {
				text = name + "=" + body
			}
			_ = pp.DefineFromOption(text)
		}
		p.pp = pp
		p.source = pp
	} else {
		p.source = rawLexerSource{lex: lex}
	}

	p.advance()
	p.advance()
	return p
}

// Macros returns the non-predefined macros left over after Parse (spec §6
// "getMacros()"); nil if preprocessing is off.
func (p *Parser) Macros() []*preprocess.Macro {
	if p.pp == nil {
		return nil
	}
	return p.pp.Macros.GetMacros()
}

// Warnings returns every warning recorded during the parse (redefinitions,
// #undef of builtin or unknown names, #warning directives). An invalid "##"
// paste is not reported as a warning: it yields a token of type Invalid in
// the expansion.
func (p *Parser) Warnings() []perrors.Warning { return p.warnings.Warnings }

// advance shifts the lookahead window forward by one token (spec §4.7's
// single "next token" operation), recording the position of the token just
// consumed into ParserState.lastStart/lastEnd (spec §3) for finishNode.
func (p *Parser) advance() {
	p.consumed(p.cur)
	p.cur = p.peek
	p.recordLeadingTrivia(p.cur)
	p.peek = p.source.Next()
}

// raise aborts the entire parse with a fatal error at tok's position (spec
// §7 "every fatal error aborts the entire parse with a fault carrying
// position").
func (p *Parser) raise(tok token.Token, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	line, col := tok.CurLine, 0
	if tok.StartLoc != nil {
		line, col = tok.StartLoc.Line, tok.StartLoc.Column
	}
	err := &perrors.ParseError{
		Message: msg, Line: line, Column: col, LineStart: tok.LineStart,
		FileName: p.opts.SourceFile, SuffixPosition: p.opts.LineNoInErrorMessage,
	}
	panic(abortParse{err})
}

// raiseAt aborts the parse with a fatal error at a previously recorded
// offset (used when the offending token has already been consumed, e.g. a
// parameter name checked only once the whole parameter list is in hand),
// resolving pos to a line/column via locAt so the fault still carries a
// position per spec §7.
func (p *Parser) raiseAt(pos int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	loc := p.locAt(pos)
	err := &perrors.ParseError{
		Message: msg, Line: loc.Line, Column: loc.Column,
		FileName: p.opts.SourceFile, SuffixPosition: p.opts.LineNoInErrorMessage,
	}
	panic(abortParse{err})
}

func (p *Parser) expect(tt *token.Type, context string) token.Token {
	if p.cur.Type != tt {
		p.raise(p.cur, "unexpected token%s: expected %s, got %s", context, tt.Label, p.cur.Type.Label)
	}
	tok := p.cur
	p.advance()
	return tok
}

func (p *Parser) at(tt *token.Type) bool { return p.cur.Type == tt }

// startSpan returns the start offset a node beginning at the current
// (not-yet-consumed) token should record.
func (p *Parser) startSpan() int { return p.cur.Start }

// Parse runs parseTopLevel to completion (spec §4.8 "entry point
// parseTopLevel(program?)"), returning the fatal error (if any) instead of
// a partial AST, per spec §7 "partial ASTs are never returned."
func (p *Parser) Parse(seed *ast.Program) (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			ab, ok := r.(abortParse)
			if !ok {
				panic(r)
			}
			prog = nil
			err = ab.err
		}
		// A fatal preprocessor error ends the token stream early; report it
		// in place of whatever the parser made of the truncated input.
		if p.pp != nil {
			if perr := p.pp.Err(); perr != nil {
				perr.SuffixPosition = p.opts.LineNoInErrorMessage
				prog, err = nil, perr
			}
		}
	}()

	if seed != nil {
		prog = seed
	} else {
		prog = ast.NewProgram()
	}
	prog.Start = p.cur.Start

	for !p.at(token.EOF) {
		stmt := p.parseStatement()
		if i, ok := firstStatementUseStrict(stmt); ok && i == len(prog.Body) {
			p.state.strict = true
		}
		prog.Body = append(prog.Body, stmt)
	}
	prog.End = p.lastEndPos()
	return prog, nil
}

// firstStatementUseStrict reports whether stmt is a bare "use strict"
// expression statement and this is the very first statement in the
// program (spec §4.8 "if the first statement is a use-strict literal
// expression, enable strict mode for the remainder").
func firstStatementUseStrict(stmt Node) (int, bool) {
	es, ok := stmt.(*ast.ExpressionStatement)
	if !ok {
		return 0, false
	}
	lit, ok := es.Expression.(*ast.Literal)
	if !ok {
		return 0, false
	}
	s, ok := lit.Value.(string)
	if !ok || s != "use strict" {
		return 0, false
	}
	return 0, true
}

func (p *Parser) lastEndPos() int { return p.state.lastEnd }

// locAt converts a byte offset into the source into a {line, column} pair
// (spec §6 "locations"), via a lazily built table of line-start offsets
// rather than threading a Loc alongside every start offset through every
// parse* call site.
func (p *Parser) locAt(offset int) *token.Loc {
	if p.lineStarts == nil {
		starts := []int{0}
		for i := 0; i < len(p.lex.Src); i++ {
			if p.lex.Src[i] == '\n' {
				starts = append(starts, i+1)
			}
		}
		p.lineStarts = starts
	}
	lo, hi := 0, len(p.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if p.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return &token.Loc{Line: lo + 1, Column: offset - p.lineStarts[lo]}
}

// finishNode stamps a node's Start/End and records trivia bubbling for the
// next node that finishes at the same End (spec §4.10 "trailing trivia
// from the last consumed token attaches to the node ... unless a more
// deeply nested completed node ending at the same offset already claimed
// them; in that case ownership bubbles up and the inner node's property is
// deleted").
func (p *Parser) finishNode(node Node, base *ast.BaseNode, kind string, start int) {
	base.Kind = kind
	base.Start = start
	base.End = p.state.lastEnd
	if p.opts.Locations {
		base.Loc = &ast.Loc{Start: *p.locAt(start), End: *p.locAt(base.End)}
	}
	if p.opts.Ranges {
		r := [2]int{start, base.End}
		base.Range = &r
	}
	p.claimLeadingTrivia(base, start)
	p.bubbleTrivia(node, base)
	p.state.lastFinished = node
}

// consumed advances past the current token, recording its end position for
// finishNode/lastEnd bookkeeping (spec §3 ParserState "lastEnd").
func (p *Parser) consumed(tok token.Token) {
	p.state.lastStart = tok.Start
	p.state.lastEnd = tok.End
	p.state.lastEndLoc = tok.EndLoc
}
