package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/objj-lang/objjparse/ast"
	"github.com/objj-lang/objjparse/config"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	opts := config.Defaults()
	opts.SourceFile = "test"
	prog, err := New(src, opts).Parse(nil)
	require.NoError(t, err)
	return prog
}

// TestPaste is spec §8 scenario 2.
func TestPaste(t *testing.T) {
	prog := parseProgram(t, "#define CAT(a,b) a ## b\nvar CAT(foo,bar) = 1;")
	require.Len(t, prog.Body, 1)
	decl, ok := prog.Body[0].(*ast.VariableDeclaration)
	require.True(t, ok)
	require.Len(t, decl.Declarations, 1)
	assert.Equal(t, "foobar", decl.Declarations[0].ID.Name)
}

// TestStringifyAndRescan is spec §8 scenario 3.
func TestStringifyAndRescan(t *testing.T) {
	src := "#define str(s) #s\n#define xstr(s) str(s)\n#define V 4\nxstr(V);\nstr(V);"
	prog := parseProgram(t, src)
	require.Len(t, prog.Body, 2)

	first := prog.Body[0].(*ast.ExpressionStatement)
	lit := first.Expression.(*ast.Literal)
	assert.Equal(t, "4", lit.Value)

	second := prog.Body[1].(*ast.ExpressionStatement)
	lit2 := second.Expression.(*ast.Literal)
	assert.Equal(t, "V", lit2.Value)
}

// TestVariadicCommaDeletion is spec §8 scenario 4.
func TestVariadicCommaDeletion(t *testing.T) {
	src := "#define L(fmt, ...) f(fmt, ##__VA_ARGS__)\nL(\"hi\");\nL(\"hi\", 1);"
	prog := parseProgram(t, src)
	require.Len(t, prog.Body, 2)

	call1 := prog.Body[0].(*ast.ExpressionStatement).Expression.(*ast.CallExpression)
	assert.Len(t, call1.Arguments, 1)

	call2 := prog.Body[1].(*ast.ExpressionStatement).Expression.(*ast.CallExpression)
	assert.Len(t, call2.Arguments, 2)
}

func TestASI_InsertsBeforeClosingBrace(t *testing.T) {
	prog := parseProgram(t, "function f() {\n  return\n}")
	require.Len(t, prog.Body, 1)
	fn := prog.Body[0].(*ast.FunctionDeclaration)
	require.Len(t, fn.Body.Body, 1)
	ret, ok := fn.Body.Body[0].(*ast.ReturnStatement)
	require.True(t, ok)
	assert.Nil(t, ret.Argument)
}

func TestMessageSendNesting(t *testing.T) {
	prog := parseProgram(t, "[[a foo] bar];")
	require.Len(t, prog.Body, 1)
	stmt := prog.Body[0].(*ast.ExpressionStatement)
	outer := stmt.Expression.(*ast.MessageSendExpression)
	assert.Equal(t, "bar", outer.Selectors[0].Name)
	inner, ok := outer.Object.(*ast.MessageSendExpression)
	require.True(t, ok)
	assert.Equal(t, "foo", inner.Selectors[0].Name)
}

func TestArrayLiteralWithMessageSendElement(t *testing.T) {
	prog := parseProgram(t, "var a = [1, [a foo], 3];")
	require.Len(t, prog.Body, 1)
	decl := prog.Body[0].(*ast.VariableDeclaration)
	arr := decl.Declarations[0].Init.(*ast.ArrayExpression)
	require.Len(t, arr.Elements, 3)
	_, ok := arr.Elements[1].(*ast.MessageSendExpression)
	assert.True(t, ok)
}

func TestKeywordSelectorMessageSend(t *testing.T) {
	prog := parseProgram(t, "[dict setObject:1 forKey:\"x\"];")
	stmt := prog.Body[0].(*ast.ExpressionStatement)
	send := stmt.Expression.(*ast.MessageSendExpression)
	require.Len(t, send.Selectors, 2)
	assert.Equal(t, "setObject", send.Selectors[0].Name)
	assert.Equal(t, "forKey", send.Selectors[1].Name)
	require.Len(t, send.Parameters, 2)
}

func TestSuperMessageSend(t *testing.T) {
	prog := parseProgram(t, "[super init];")
	stmt := prog.Body[0].(*ast.ExpressionStatement)
	send := stmt.Expression.(*ast.MessageSendExpression)
	assert.True(t, send.SuperReceiver)
	assert.Nil(t, send.Object)
}

func TestForInStatement(t *testing.T) {
	prog := parseProgram(t, "for (var k in obj) { x = k; }")
	require.Len(t, prog.Body, 1)
	_, ok := prog.Body[0].(*ast.ForInStatement)
	assert.True(t, ok)
}

func TestBreakLabelValidation(t *testing.T) {
	opts := config.Defaults()
	opts.SourceFile = "test"
	_, err := New("outer: while (true) { break inner; }", opts).Parse(nil)
	assert.Error(t, err)
}
