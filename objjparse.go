// Package objjparse is the top-level entry point spec §6 describes: a
// combined lexer, GNU-cpp-compatible preprocessor, and recursive-descent
// parser producing a Mozilla Parser API-style AST for ES3/5 extended with
// Objective-J syntax.
package objjparse

import (
	"github.com/objj-lang/objjparse/ast"
	"github.com/objj-lang/objjparse/config"
	"github.com/objj-lang/objjparse/lexer"
	"github.com/objj-lang/objjparse/parser"
	"github.com/objj-lang/objjparse/perrors"
	"github.com/objj-lang/objjparse/preprocess"
	"github.com/objj-lang/objjparse/token"
)

// TokTypes is the stable token-type table external consumers can range
// over (spec §6 "tokTypes").
var TokTypes = token.All

// Result bundles everything a parse produces besides the AST itself:
// leftover user macros (spec §6 "getMacros()") and any non-fatal
// warnings recorded along the way.
type Result struct {
	Program  *ast.Program
	Macros   []*preprocess.Macro
	Warnings []perrors.Warning
}

// Parse runs a full parse over input and returns just the AST (spec §6
// "parse(input, options)"), for callers that don't need macros/warnings.
// A nil opts falls back to config.Defaults().
func Parse(input string, opts *config.Options) (*ast.Program, error) {
	res, err := ParseDetailed(input, opts)
	if err != nil {
		return nil, err
	}
	return res.Program, nil
}

// ParseSeed runs a parse appending onto an already-existing Program (spec
// §6 "options.program: append parsed statements to an existing AST
// instead of starting a fresh one").
func ParseSeed(input string, opts *config.Options, seed *ast.Program) (*ast.Program, error) {
	o := resolveOptions(opts)
	p := parser.New(input, o)
	return p.Parse(seed)
}

// ParseDetailed is Parse plus the leftover macro table and warning list
// (spec §6 "getMacros()", §7 "warnings").
func ParseDetailed(input string, opts *config.Options) (*Result, error) {
	o := resolveOptions(opts)
	p := parser.New(input, o)
	prog, err := p.Parse(nil)
	if err != nil {
		return nil, err
	}
	return &Result{Program: prog, Macros: p.Macros(), Warnings: p.Warnings()}, nil
}

func resolveOptions(opts *config.Options) config.Options {
	if opts == nil {
		return config.Defaults()
	}
	return *opts
}

// Tokenizer is the standalone token-stream entry point (spec §6
// "tokenize(input, options)"), independent of the parser/preprocessor —
// useful for syntax highlighters and other tools that only need the raw
// lexical structure.
type Tokenizer struct {
	lex *lexer.Lexer
}

// Tokenize builds a Tokenizer over input. Preprocessor-only options
// (preprocess, macros) have no effect here: this is the lexer
// alone, spec §6's "tokenize" bypassing §4.3-§4.7 entirely.
func Tokenize(input string, opts *config.Options) *Tokenizer {
	o := resolveOptions(opts)
	lex := lexer.New(o.SourceFile, input)
	lex.ObjJ = o.ObjJ
	lex.EcmaVersion = o.EcmaVersion
	lex.Strict = o.Strict
	lex.TrackComments = o.TrackComments
	lex.TrackSpaces = o.TrackSpaces
	lex.TrackLineBreakInComment = o.TrackCommentsIncludeLineBreak
	lex.Locations = o.Locations
	return &Tokenizer{lex: lex}
}

// Next reads the next token (spec §6 "tokenize(...)(forceRegexp?)"); pass
// forceRegexp true when the caller already knows a following '/' must
// start a regex literal (the one case the lexer's own BeforeExpr-driven
// heuristic can't resolve on its own, e.g. a REPL re-tokenizing from a
// caller-supplied cursor).
func (t *Tokenizer) Next(forceRegexp bool) token.Token {
	return t.lex.NextToken(forceRegexp)
}

// JumpTo repositions the tokenizer to resume scanning at pos (spec §6
// "jumpTo(pos, regexpAllowed)"), replaying from the start of the buffer
// so line/column tracking stays correct.
func (t *Tokenizer) JumpTo(pos int, regexpAllowed bool) {
	t.lex.Jump(pos, regexpAllowed)
}

// GetLineInfo converts a byte offset into input into a {line, column} pair,
// with a 1-based line and a 0-based column counted in bytes from the start
// of that line (spec §6 "getLineInfo(input, offset)"), independent of any
// particular parse/tokenize session.
func GetLineInfo(input string, offset int) token.Loc {
	line := 1
	lineStart := 0
	for i := 0; i < offset && i < len(input); i++ {
		if input[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	return token.Loc{Line: line, Column: offset - lineStart}
}
