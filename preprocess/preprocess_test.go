package preprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/objj-lang/objjparse/lexer"
	"github.com/objj-lang/objjparse/token"
)

func allPreprocessed(t *testing.T, src string) []token.Token {
	t.Helper()
	l := lexer.New("test", src)
	p := New(l, "test", false, false, nil)
	var toks []token.Token
	for {
		tok := p.Next()
		if tok.Type == token.EOF {
			break
		}
		toks = append(toks, tok)
	}
	require.Nil(t, p.Err())
	return toks
}

func literals(toks []token.Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Literal()
	}
	return out
}

func TestPreprocess_ObjectMacro(t *testing.T) {
	toks := allPreprocessed(t, "#define WIDTH 100\nvar x = WIDTH;")
	assert.Equal(t, []string{"var", "x", "=", "100", ";"}, literals(toks))
	assert.Equal(t, token.Num, toks[3].Type)
	assert.Equal(t, float64(100), toks[3].Value)
}

func TestPreprocess_FunctionMacro(t *testing.T) {
	toks := allPreprocessed(t, "#define ADD(a, b) ((a) + (b))\nADD(1, 2);")
	assert.Equal(t, []string{"(", "(", "1", ")", "+", "(", "2", ")", ")", ";"}, literals(toks))
}

func TestPreprocess_Paste(t *testing.T) {
	toks := allPreprocessed(t, "#define CAT(a, b) a##b\nCAT(foo, bar);")
	assert.Len(t, toks, 2)
	assert.Equal(t, token.Name, toks[0].Type)
	assert.Equal(t, "foobar", toks[0].Value)
}

func TestPreprocess_StringifyUsesUnexpandedArgument(t *testing.T) {
	toks := allPreprocessed(t, "#define STR(x) #x\n#define VALUE 42\nSTR(VALUE);")
	assert.Equal(t, token.StringLit, toks[0].Type)
	assert.Equal(t, "VALUE", toks[0].Value)
}

func TestPreprocess_VariadicCommaDeletion(t *testing.T) {
	toks := allPreprocessed(t, "#define LOG(fmt, ...) printf(fmt, ##__VA_ARGS__)\nLOG(\"hi\");")
	lits := literals(toks)
	assert.Equal(t, []string{"printf", "(", "hi", ")", ";"}, lits)

	toks2 := allPreprocessed(t, "#define LOG(fmt, ...) printf(fmt, ##__VA_ARGS__)\nLOG(\"hi\", 1, 2);")
	lits2 := literals(toks2)
	assert.Equal(t, []string{"printf", "(", "hi", ",", "1", ",", "2", ")", ";"}, lits2)
}

func TestPreprocess_SelfReferenceIsNotExpandedAgain(t *testing.T) {
	toks := allPreprocessed(t, "#define X X + 1\nX;")
	lits := literals(toks)
	assert.Equal(t, []string{"X", "+", "1", ";"}, lits)
}

func TestPreprocess_ConditionalSkip(t *testing.T) {
	src := "#ifdef FOO\nvar a = 1;\n#else\nvar b = 2;\n#endif\n"
	toks := allPreprocessed(t, src)
	assert.Equal(t, []string{"var", "b", "=", "2", ";"}, literals(toks))
}

func TestPreprocess_ConditionalIfExpr(t *testing.T) {
	src := "#define LEVEL 3\n#if LEVEL > 2\nvar hi = 1;\n#else\nvar lo = 1;\n#endif\n"
	toks := allPreprocessed(t, src)
	assert.Equal(t, []string{"var", "hi", "=", "1", ";"}, literals(toks))
}

func TestPreprocess_DefinedOperator(t *testing.T) {
	src := "#define FOO\n#if defined(FOO) && !defined(BAR)\nvar ok = 1;\n#endif\n"
	toks := allPreprocessed(t, src)
	assert.Equal(t, []string{"var", "ok", "=", "1", ";"}, literals(toks))
}

func TestPreprocess_UndefMakesMacroPlainIdentifier(t *testing.T) {
	src := "#define X 1\n#undef X\nX;"
	toks := allPreprocessed(t, src)
	assert.Equal(t, token.Name, toks[0].Type)
	assert.Equal(t, "X", toks[0].Value)
}

func TestPreprocess_UnterminatedConditionalIsFatal(t *testing.T) {
	l := lexer.New("test", "#ifdef FOO\nvar a = 1;\n")
	p := New(l, "test", false, false, nil)
	for {
		tok := p.Next()
		if tok.Type == token.EOF {
			break
		}
	}
	require.NotNil(t, p.Err())
}

type recordingSink struct {
	messages []string
}

func (s *recordingSink) Warn(message string, line, column int) {
	s.messages = append(s.messages, message)
}

func TestPreprocess_RedefinitionWarns(t *testing.T) {
	sink := &recordingSink{}
	l := lexer.New("test", "#define X 1\n#define X 2\nX;")
	p := New(l, "test", false, false, sink)
	var toks []token.Token
	for {
		tok := p.Next()
		if tok.Type == token.EOF {
			break
		}
		toks = append(toks, tok)
	}
	require.Nil(t, p.Err())
	assert.Equal(t, float64(2), toks[0].Value)
	assert.NotEmpty(t, sink.messages)
}
