package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/objj-lang/objjparse/token"
)

func allTokens(l *Lexer) []token.Token {
	var toks []token.Token
	for {
		tok := l.NextToken(false)
		if tok.Type == token.EOF {
			break
		}
		toks = append(toks, tok)
	}
	return toks
}

func TestLexer_Punctuation(t *testing.T) {
	l := New("test", `{ } + [] <= >>> ...`)
	toks := allTokens(l)
	assert.Len(t, toks, 8)
	assert.Equal(t, token.BraceL, toks[0].Type)
	assert.Equal(t, token.BraceR, toks[1].Type)
	assert.Equal(t, token.PlusMin, toks[2].Type)
	assert.Equal(t, token.BracketL, toks[3].Type)
	assert.Equal(t, token.BracketR, toks[4].Type)
	assert.Equal(t, token.Relational, toks[5].Type)
	assert.Equal(t, "<=", toks[5].Value)
	assert.Equal(t, token.BitShift, toks[6].Type)
	assert.Equal(t, ">>>", toks[6].Value)

	l2 := New("test", `...`)
	toks2 := allTokens(l2)
	assert.Len(t, toks2, 1)
	assert.Equal(t, token.Ellipsis, toks2[0].Type)
}

func TestLexer_Numbers(t *testing.T) {
	l := New("test", `123 0x1F 010 3.14 1e3 1.5e-2`)
	toks := allTokens(l)
	assert.Len(t, toks, 6)
	for _, tok := range toks {
		assert.Equal(t, token.Num, tok.Type)
	}
	assert.Equal(t, float64(123), toks[0].Value)
	assert.Equal(t, float64(31), toks[1].Value)
	assert.Equal(t, float64(8), toks[2].Value)
	assert.Equal(t, 3.14, toks[3].Value)
}

func TestLexer_IdentifierAfterNumberIsError(t *testing.T) {
	l := New("test", `123abc`)
	tok := l.NextToken(false)
	assert.Equal(t, token.Invalid, tok.Type)
}

func TestLexer_Strings(t *testing.T) {
	l := New("test", `"hello\nworld" 'abc\x41'`)
	toks := allTokens(l)
	assert.Len(t, toks, 2)
	assert.Equal(t, "hello\nworld", toks[0].Value)
	assert.Equal(t, "abcA", toks[1].Value)
}

func TestLexer_UnterminatedString(t *testing.T) {
	l := New("test", "\"abc\ndef\"")
	tok := l.NextToken(false)
	assert.Equal(t, token.Invalid, tok.Type)
}

func TestLexer_Identifiers(t *testing.T) {
	l := New("test", `foo bar_baz $qux _1`)
	toks := allTokens(l)
	assert.Len(t, toks, 4)
	for _, tok := range toks {
		assert.Equal(t, token.Name, tok.Type)
	}
}

func TestLexer_Keywords(t *testing.T) {
	l := New("test", `if else return function`)
	toks := allTokens(l)
	assert.Equal(t, token.KwIf, toks[0].Type)
	assert.Equal(t, token.KwElse, toks[1].Type)
	assert.Equal(t, token.KwReturn, toks[2].Type)
	assert.Equal(t, token.KwFunction, toks[3].Type)
}

func TestLexer_RegexpVsDivision(t *testing.T) {
	// after '=' (beforeExpr), '/' starts a regex
	l := New("test", `x = /abc/g`)
	toks := allTokens(l)
	assert.Equal(t, token.Regexp, toks[len(toks)-1].Type)

	// after an identifier (not beforeExpr), '/' is division
	l2 := New("test", `x / y`)
	toks2 := allTokens(l2)
	assert.Equal(t, token.Slash, toks2[1].Type)
}

func TestLexer_Comments(t *testing.T) {
	l := New("test", "1 // line comment\n/* block\ncomment */ 2")
	l.TrackComments = true
	toks := allTokens(l)
	assert.Len(t, toks, 2)
	assert.Len(t, toks[1].CommentsBefore, 2)
	assert.False(t, toks[1].CommentsBefore[0].Block)
	assert.True(t, toks[1].CommentsBefore[1].Block)
}

func TestLexer_ObjJAtLiterals(t *testing.T) {
	l := New("test", `@implementation Foo @end @"str" @[1,2] @{1:2}`)
	l.ObjJ = true
	toks := allTokens(l)
	assert.Equal(t, token.AtImplementation, toks[0].Type)
	assert.Equal(t, token.Name, toks[1].Type)
	assert.Equal(t, token.AtEnd, toks[2].Type)
	assert.Equal(t, token.AtString, toks[3].Type)
	assert.Equal(t, "str", toks[3].Value)
	assert.Equal(t, token.AtArrayLit, toks[4].Type)
	assert.Equal(t, token.AtDictLit, toks[9].Type)
}

func TestLexer_ImportFilename(t *testing.T) {
	l := New("test", `@import <Foundation/CPObject.j>`)
	l.ObjJ = true
	toks := allTokens(l)
	assert.Equal(t, token.AtImport, toks[0].Type)
	assert.Equal(t, token.ImportFilename, toks[1].Type)
	assert.Equal(t, "Foundation/CPObject.j", toks[1].Value)
}

func TestLexer_DirectiveMode(t *testing.T) {
	l := New("test", "#define X 4\nfoo")
	toks := allTokens(l)
	// '#', 'define', 'X', '4', EOL are all consumed by allTokens except EOL
	// is not EOF so it appears in the stream.
	var sawEOL bool
	for _, tok := range toks {
		if tok.Type == token.EOL {
			sawEOL = true
		}
	}
	assert.True(t, sawEOL)
	assert.Equal(t, token.Hash, toks[0].Type)
	assert.Equal(t, token.PPDefine, toks[1].Type)
}
