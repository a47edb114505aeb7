package objjparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/objj-lang/objjparse/ast"
	"github.com/objj-lang/objjparse/config"
	"github.com/objj-lang/objjparse/token"
)

// TestParse_ObjectMacro is spec §8 scenario 1: a #define expands before the
// parser ever sees the macro name, but the resulting ExpressionStatement's
// offsets refer to the *source* text "foo = X;", not the expansion.
func TestParse_ObjectMacro(t *testing.T) {
	src := "#define X 4\nfoo = X;"
	prog, err := Parse(src, nil)
	require.NoError(t, err)
	require.Len(t, prog.Body, 1)

	stmt, ok := prog.Body[0].(*ast.ExpressionStatement)
	require.True(t, ok)
	start, end := stmt.Span()
	assert.Equal(t, "foo = X;", src[start:end])

	assign, ok := stmt.Expression.(*ast.AssignmentExpression)
	require.True(t, ok)
	lit, ok := assign.Right.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, float64(4), lit.Value)
}

// TestParse_ConditionalSkip is spec §8 scenario 5.
func TestParse_ConditionalSkip(t *testing.T) {
	src := "#if 0\nvar x = 1;\n#else\nvar x = 2;\n#endif"
	prog, err := Parse(src, nil)
	require.NoError(t, err)
	require.Len(t, prog.Body, 1)

	decl, ok := prog.Body[0].(*ast.VariableDeclaration)
	require.True(t, ok)
	require.Len(t, decl.Declarations, 1)
	lit, ok := decl.Declarations[0].Init.(*ast.Literal)
	require.True(t, ok)
	assert.Equal(t, float64(2), lit.Value)
}

// TestParse_MessageSendAfterASI is spec §8 scenario 6.
func TestParse_MessageSendAfterASI(t *testing.T) {
	src := "var a = 1\n[self doThing]"
	prog, err := Parse(src, nil)
	require.NoError(t, err)
	require.Len(t, prog.Body, 2)

	_, ok := prog.Body[0].(*ast.VariableDeclaration)
	require.True(t, ok)

	stmt, ok := prog.Body[1].(*ast.ExpressionStatement)
	require.True(t, ok)
	send, ok := stmt.Expression.(*ast.MessageSendExpression)
	require.True(t, ok)
	require.Len(t, send.Selectors, 1)
	assert.Equal(t, "doThing", send.Selectors[0].Name)
	recv, ok := send.Object.(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "self", recv.Name)
}

func TestParse_WithoutPreprocessing(t *testing.T) {
	opts := config.Defaults()
	opts.Preprocess = false
	prog, err := Parse("var x = 1;", &opts)
	require.NoError(t, err)
	require.Len(t, prog.Body, 1)
}

func TestParseDetailed_LeftoverMacros(t *testing.T) {
	res, err := ParseDetailed("#define FOO 1\nvar x = FOO;", nil)
	require.NoError(t, err)
	names := make([]string, len(res.Macros))
	for i, m := range res.Macros {
		names[i] = m.Name
	}
	assert.Contains(t, names, "FOO")
}

func TestTokenize(t *testing.T) {
	tz := Tokenize("var x = 1;", nil)
	var kinds []string
	for {
		tok := tz.Next(false)
		if tok.Type == token.EOF {
			break
		}
		kinds = append(kinds, tok.Type.Label)
	}
	assert.Equal(t, []string{"var", "name", "=", "num", ";"}, kinds)
}

func TestTokenize_JumpTo(t *testing.T) {
	src := "var x = 1;"
	tz := Tokenize(src, nil)
	tz.JumpTo(4, false)
	tok := tz.Next(false)
	assert.Equal(t, "x", tok.Value)
}

func TestTokTypes_ContainsEOF(t *testing.T) {
	assert.Contains(t, TokTypes, token.EOF)
}

func TestGetLineInfo(t *testing.T) {
	src := "var a = 1;\nvar b = 2;"
	loc := GetLineInfo(src, 15)
	assert.Equal(t, 2, loc.Line)
}
