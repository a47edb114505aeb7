package preprocess

import (
	"fmt"
	"strings"

	"github.com/objj-lang/objjparse/lexer"
	"github.com/objj-lang/objjparse/token"
)

// DefineFromOption installs one of Options.Macros' textual forms (spec §6
// "macros: predefined macros, either textual (name, name=body,
// name(p,...)=body)..."), the GCC "-D" convention: a bare name defines it
// as 1, and the first '=' (if any) separates the name/parameter-list from
// the replacement body. It is implemented by synthesizing a "#define" line
// and running it through the same directive handling a source-level
// #define would use, so there is exactly one macro-definition code path.
func (p *Preprocessor) DefineFromOption(spec string) error {
	line := macroOptionToDefineLine(spec)
	saved := p.lex
	p.lex = lexer.New("<macro-option>", "#define "+line+"\n")
	tok := p.lex.NextToken(false)
	if tok.Type != token.Hash {
		p.lex = saved
		return fmt.Errorf("invalid macro option %q", spec)
	}
	p.processDirective()
	err := p.fatal
	p.fatal = nil
	p.lex = saved
	if err != nil {
		return fmt.Errorf("macro option %q: %s", spec, err.Message)
	}
	return nil
}

func macroOptionToDefineLine(spec string) string {
	if idx := strings.IndexByte(spec, '='); idx >= 0 {
		return spec[:idx] + " " + spec[idx+1:]
	}
	return spec + " 1"
}
