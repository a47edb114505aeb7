// Package preprocess implements the GNU-cpp-compatible macro preprocessor
// (spec §1, components C3-C7): the macro table and macro objects (C3), the
// directive driver (C4), the #if constant-expression evaluator (C5), the
// macro expansion engine (C6), and the token-stream multiplexer (C7) that
// lets the parser read from either raw source tokens or an in-flight macro
// expansion transparently.
//
// Grounded on _examples/other_examples/14069886_xyproto-flapc__cparser.go.go's
// CMacro/macro-table handling for the overall shape of a macro record and
// table, generalized to the richer parameter/variadic/paste/stringify rules
// spec §4.3-§4.6 describe that the reference file does not implement.
package preprocess

import "github.com/objj-lang/objjparse/token"

// Parameter is one formal parameter of a function-like macro (spec §3
// "Parameter { name, index, variadic }").
type Parameter struct {
	Name     string
	Index    int
	Variadic bool // true only for the last parameter of a variadic macro
}

// Macro is a macro object (spec §3 "Macro { name, parameters, isFunction,
// isVariadic, tokens }"). Body tokens that spell a parameter name carry
// that name in token.Token.MacroParameter so the expansion engine (C6)
// doesn't need to re-resolve identifiers against the parameter list on
// every expansion.
type Macro struct {
	Name       string
	IsFunction bool
	IsVariadic bool
	Parameters []Parameter
	Tokens     []token.Token

	// DefinedAt records the source position of the #define for
	// diagnostics (spec §7 "redefinition" warnings).
	DefinedAt token.Loc
}

// paramIndex returns the index of name among m.Parameters, or -1.
func (m *Macro) paramIndex(name string) int {
	for _, p := range m.Parameters {
		if p.Name == name {
			return p.Index
		}
	}
	return -1
}

// equivalent reports whether two macro definitions are "identical" under
// the GNU-cpp redefinition rule (spec §4.3 "Redefinition"): same
// function/object-ness, same variadicity, same parameter spellings in the
// same order, and token-for-token identical replacement lists (type and
// spelling, ignoring source position and surrounding whitespace).
func (m *Macro) equivalent(other *Macro) bool {
	if m.IsFunction != other.IsFunction || m.IsVariadic != other.IsVariadic {
		return false
	}
	if len(m.Parameters) != len(other.Parameters) {
		return false
	}
	for i := range m.Parameters {
		if m.Parameters[i].Name != other.Parameters[i].Name {
			return false
		}
	}
	if len(m.Tokens) != len(other.Tokens) {
		return false
	}
	for i := range m.Tokens {
		a, b := m.Tokens[i], other.Tokens[i]
		if a.Type != b.Type || a.MacroParameter != b.MacroParameter {
			return false
		}
		if a.MacroParameter == "" && a.Literal() != b.Literal() {
			return false
		}
	}
	return true
}

// Argument is one actual argument collected at a macro invocation site
// (spec §3 "Argument { tokens, expandedTokens? }"). Expansion is computed
// lazily and cached: the raw tokens feed "#param" stringification, the
// expanded tokens feed ordinary substitution (spec §4.6 "argument
// prescan").
type Argument struct {
	Tokens         []token.Token
	expandedTokens []token.Token
	expanded       bool
	stringified    string
	hasStringified bool
}

// MacroTable holds the predefined macros (immutable once seeded) and the
// user-defined macros (mutated by #define/#undef). Kept as two maps,
// mirroring spec §4.3's rule that "redefining a predefined macro is always
// an error" — a distinction a single flat map can't express cheaply.
type MacroTable struct {
	predefined map[string]*Macro
	user       map[string]*Macro
	// order preserves #define ordering for GetMacros (spec §6 "getMacros").
	order []string
}

// NewMacroTable returns an empty table seeded with the predefined macros
// (preprocess/predefined.go).
func NewMacroTable(fileName string, objJ, browser bool) *MacroTable {
	t := &MacroTable{
		predefined: make(map[string]*Macro),
		user:       make(map[string]*Macro),
	}
	seedPredefined(t, fileName, objJ, browser)
	return t
}

// Lookup resolves name against user macros first, then predefined ones.
func (t *MacroTable) Lookup(name string) (*Macro, bool) {
	if m, ok := t.user[name]; ok {
		return m, true
	}
	if m, ok := t.predefined[name]; ok {
		return m, true
	}
	return nil, false
}

// IsDefined is the boolean half of the "defined" operator (spec §4.5).
func (t *MacroTable) IsDefined(name string) bool {
	_, ok := t.Lookup(name)
	return ok
}

// Define installs m, returning a non-nil warning message if the
// redefinition is incompatible with an existing macro of the same name
// (spec §4.3). Redefining a predefined macro is always rejected via the
// error return.
func (t *MacroTable) Define(m *Macro) (warning string, err error) {
	if existing, ok := t.predefined[m.Name]; ok {
		_ = existing
		return "", &redefinitionError{name: m.Name, predefined: true}
	}
	if existing, ok := t.user[m.Name]; ok {
		if !existing.equivalent(m) {
			warning = "macro \"" + m.Name + "\" redefined incompatibly with its previous definition"
		}
	} else {
		t.order = append(t.order, m.Name)
	}
	t.user[m.Name] = m
	return warning, nil
}

// Undef removes a user macro. Undefining a predefined macro or an unknown
// name is a no-op warning, matching GNU cpp's lenience (spec §4.3).
func (t *MacroTable) Undef(name string) (warning string) {
	if _, ok := t.predefined[name]; ok {
		return "cannot undefine builtin macro \"" + name + "\""
	}
	if _, ok := t.user[name]; !ok {
		return "\"" + name + "\" is not defined"
	}
	delete(t.user, name)
	return ""
}

// GetMacros returns the user-defined macros in definition order (spec §6
// "getMacros()"), for callers that want to seed a fresh preprocessor with
// the macro state left over from a previous parse (e.g. multi-file REPL
// use, matching the teacher's incremental-eval pattern even though that
// REPL itself was out of scope here).
func (t *MacroTable) GetMacros() []*Macro {
	out := make([]*Macro, 0, len(t.order))
	for _, name := range t.order {
		if m, ok := t.user[name]; ok {
			out = append(out, m)
		}
	}
	return out
}

type redefinitionError struct {
	name       string
	predefined bool
}

func (e *redefinitionError) Error() string {
	if e.predefined {
		return "\"" + e.name + "\" cannot be redefined, it is a builtin macro"
	}
	return "\"" + e.name + "\" redefined"
}
