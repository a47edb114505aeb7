package preprocess

import "github.com/objj-lang/objjparse/token"

// seedPredefined installs the builtin object-like macros spec §4.3
// "Predefined macros" names (__OBJJ__, __BROWSER__) plus the GNU-compatible
// diagnostic macros (__LINE__, __FILE__, __DATE__, __TIME__) this
// implementation supplements beyond the distilled spec, the way a
// full GNU-cpp-compatible engine (spec §1's stated goal) would. __LINE__
// is re-resolved per expansion site rather than fixed at
// table-construction time (see expand.go's expandObjectMacro special
// case), so it only needs a placeholder entry here to make IsDefined and
// lookup succeed; __FILE__ (the fileName given here) and __DATE__/__TIME__
// are fixed for the whole translation unit, matching GNU cpp (a single
// compilation sees one compile time).
func seedPredefined(t *MacroTable, fileName string, objJ, browser bool) {
	defNum := func(name string, val float64) {
		t.predefined[name] = &Macro{
			Name:   name,
			Tokens: []token.Token{{Type: token.Num, Value: val}},
		}
	}
	defStr := func(name, val string) {
		t.predefined[name] = &Macro{
			Name:   name,
			Tokens: []token.Token{{Type: token.StringLit, Value: val}},
		}
	}

	if objJ {
		defNum("__OBJJ__", 1)
	}
	if browser {
		defNum("__BROWSER__", 1)
	}

	defStr("__FILE__", fileName)
	defNum("__LINE__", 0)
	defStr("__DATE__", "??? ?? ????")
	defStr("__TIME__", "??:??:??")
}
