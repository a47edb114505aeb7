package token

// Binary operator precedence levels, 1 (lowest) to 10 (highest), matching
// the "precedence 1-10" scale spec §3 assigns to TokenType.binop and which
// the #if evaluator (§4.5) borrows verbatim from the expression parser.
const (
	PrecNone = iota
	PrecLogicalOr
	PrecLogicalAnd
	PrecBitOr
	PrecBitXor
	PrecBitAnd
	PrecEquality
	PrecRelational
	PrecShift
	PrecAdditive
	PrecMultiplicative
)

// Pseudo / special types.
var (
	EOF            = &Type{Label: "eof"}
	EOL            = &Type{Label: "eol"} // end-of-logical-line, directive mode only
	Invalid        = &Type{Label: "invalid"}
	Num            = &Type{Label: "num", BeforeExpr: false, AtomValue: nil}
	StringLit      = &Type{Label: "string", BeforeExpr: false}
	TemplateString = &Type{Label: "template"}
	Regexp         = &Type{Label: "regexp"}
	Name           = &Type{Label: "name", OkAsIdent: true}
	EOFMacroArg    = &Type{Label: "macro-arg-end"}

	HashPaste   = &Type{Label: "##"} // token-paste marker inside a macro body
	HashStringy = &Type{Label: "#"}  // stringification marker inside a macro body
	Hash        = &Type{Label: "#-directive-start"} // line-initial '#' entering directive mode
)

// Punctuation / operators.
var (
	BracketL = &Type{Label: "[", BeforeExpr: true, Binop: 0}
	BracketR = &Type{Label: "]"}
	BraceL   = &Type{Label: "{", BeforeExpr: true}
	BraceR   = &Type{Label: "}"}
	ParenL   = &Type{Label: "(", BeforeExpr: true}
	ParenR   = &Type{Label: ")"}
	Comma    = &Type{Label: ",", BeforeExpr: true}
	Semi     = &Type{Label: ";", BeforeExpr: true}
	Colon    = &Type{Label: ":", BeforeExpr: true}
	DoubleColon = &Type{Label: "::", BeforeExpr: true}
	Dot      = &Type{Label: "."}
	Question = &Type{Label: "?", BeforeExpr: true}
	Arrow    = &Type{Label: "=>", BeforeExpr: true}
	Ellipsis = &Type{Label: "...", BeforeExpr: true}
	At       = &Type{Label: "@", BeforeExpr: true}
	Backtick = &Type{Label: "`"}

	Eq        = &Type{Label: "=", BeforeExpr: true, IsAssign: true}
	AssignOp  = &Type{Label: "_=", BeforeExpr: true, IsAssign: true} // += -= *= ...
	IncDec    = &Type{Label: "++/--", BeforeExpr: false, Prefix: true, Postfix: true, IsUpdate: true}
	Prefix    = &Type{Label: "!/~", BeforeExpr: true, Prefix: true}
	LogicalOr  = &Type{Label: "||", BeforeExpr: true, Binop: PrecLogicalOr, Preprocess: true}
	LogicalAnd = &Type{Label: "&&", BeforeExpr: true, Binop: PrecLogicalAnd, Preprocess: true}
	BitOr      = &Type{Label: "|", BeforeExpr: true, Binop: PrecBitOr, Preprocess: true}
	BitXor     = &Type{Label: "^", BeforeExpr: true, Binop: PrecBitXor, Preprocess: true}
	BitAnd     = &Type{Label: "&", BeforeExpr: true, Binop: PrecBitAnd, Preprocess: true}
	Equality   = &Type{Label: "==/!=/===/!==", BeforeExpr: true, Binop: PrecEquality, Preprocess: true}
	Relational = &Type{Label: "</>/<=/>=", BeforeExpr: true, Binop: PrecRelational, Preprocess: true}
	BitShift   = &Type{Label: "<</>>/>>>", BeforeExpr: true, Binop: PrecShift, Preprocess: true}
	PlusMin    = &Type{Label: "+/-", BeforeExpr: true, Binop: PrecAdditive, Prefix: true, Preprocess: true}
	Modulo     = &Type{Label: "*/%%//", BeforeExpr: true, Binop: PrecMultiplicative, Preprocess: true}
	Star       = &Type{Label: "*", BeforeExpr: true, Binop: PrecMultiplicative, Preprocess: true}
	Slash      = &Type{Label: "/", BeforeExpr: true, Binop: PrecMultiplicative, Preprocess: true}
)

// Keywords shared by ES3 and ES5.
var (
	KwBreak      = &Type{Label: "break", Keyword: true, BeforeExpr: true}
	KwCase       = &Type{Label: "case", Keyword: true, BeforeExpr: true}
	KwCatch      = &Type{Label: "catch", Keyword: true}
	KwContinue   = &Type{Label: "continue", Keyword: true, BeforeExpr: true}
	KwDebugger   = &Type{Label: "debugger", Keyword: true, BeforeExpr: true}
	KwDefault    = &Type{Label: "default", Keyword: true, BeforeExpr: true}
	KwDo         = &Type{Label: "do", Keyword: true, IsLoop: true, BeforeExpr: true}
	KwElse       = &Type{Label: "else", Keyword: true, BeforeExpr: true}
	KwFinally    = &Type{Label: "finally", Keyword: true}
	KwFor        = &Type{Label: "for", Keyword: true, IsLoop: true}
	KwFunction   = &Type{Label: "function", Keyword: true}
	KwIf         = &Type{Label: "if", Keyword: true}
	KwReturn     = &Type{Label: "return", Keyword: true, BeforeExpr: true}
	KwSwitch     = &Type{Label: "switch", Keyword: true}
	KwThrow      = &Type{Label: "throw", Keyword: true, BeforeExpr: true}
	KwTry        = &Type{Label: "try", Keyword: true}
	KwVar        = &Type{Label: "var", Keyword: true}
	KwWhile      = &Type{Label: "while", Keyword: true, IsLoop: true}
	KwWith       = &Type{Label: "with", Keyword: true}
	KwNew        = &Type{Label: "new", Keyword: true, BeforeExpr: true}
	KwThis       = &Type{Label: "this", Keyword: true, OkAsIdent: true}
	KwSuper      = &Type{Label: "super", Keyword: true, OkAsIdent: true}
	KwIn         = &Type{Label: "in", Keyword: true, BeforeExpr: true, Binop: PrecRelational}
	KwInstanceof = &Type{Label: "instanceof", Keyword: true, BeforeExpr: true, Binop: PrecRelational}
	KwTypeof     = &Type{Label: "typeof", Keyword: true, BeforeExpr: true, Prefix: true}
	KwVoid       = &Type{Label: "void", Keyword: true, BeforeExpr: true, Prefix: true}
	KwDelete     = &Type{Label: "delete", Keyword: true, BeforeExpr: true, Prefix: true}
	KwNull       = &Type{Label: "null", Keyword: true, AtomValue: nil}
	KwTrue       = &Type{Label: "true", Keyword: true, AtomValue: true}
	KwFalse      = &Type{Label: "false", Keyword: true, AtomValue: false}

	// ES5 strict / future-reserved words.
	KwLet        = &Type{Label: "let", Keyword: true}
	KwConst      = &Type{Label: "const", Keyword: true}
	KwClass      = &Type{Label: "class", Keyword: true}
	KwExtends    = &Type{Label: "extends", Keyword: true}
	KwExport     = &Type{Label: "export", Keyword: true}
	KwImport     = &Type{Label: "import", Keyword: true}
	KwYield      = &Type{Label: "yield", Keyword: true}
	KwPackage    = &Type{Label: "package", Keyword: true}
	KwPrivate    = &Type{Label: "private", Keyword: true}
	KwProtected  = &Type{Label: "protected", Keyword: true}
	KwPublic     = &Type{Label: "public", Keyword: true}
	KwStatic     = &Type{Label: "static", Keyword: true}
	KwImplements = &Type{Label: "implements", Keyword: true}
	KwInterfaceKw = &Type{Label: "interface", Keyword: true}
)

// Objective-J keywords. Only recognized by the lexer when Options.ObjJ is
// set (spec §4.2 "@ prefix (Objective-J)").
var (
	AtImplementation = &Type{Label: "@implementation"}
	AtInterface      = &Type{Label: "@interface"}
	AtEnd            = &Type{Label: "@end"}
	AtImport         = &Type{Label: "@import"}
	AtSelector       = &Type{Label: "@selector"}
	AtClass          = &Type{Label: "@class"}
	AtGlobal         = &Type{Label: "@global"}
	AtProtocol       = &Type{Label: "@protocol"}
	AtOptional       = &Type{Label: "@optional"}
	AtRequired       = &Type{Label: "@required"}
	AtRef            = &Type{Label: "@ref"}
	AtDeref          = &Type{Label: "@deref"}
	AtAccessors      = &Type{Label: "@accessors"}
	AtOutlet         = &Type{Label: "@outlet"}
	AtAction         = &Type{Label: "@action"}
	AtString         = &Type{Label: "@string"} // @"..."/@'...'
	AtArrayLit       = &Type{Label: "@["}
	AtDictLit        = &Type{Label: "@{"}
	ImportFilename   = &Type{Label: "<filename>"} // framework filename after @import
)

// Preprocessor-directive-only pseudo keywords, recognized by the lexer only
// while the directive driver is reading a directive line (spec §4.4).
var (
	PPDefine  = &Type{Label: "#define"}
	PPUndef   = &Type{Label: "#undef"}
	PPIf      = &Type{Label: "#if"}
	PPIfdef   = &Type{Label: "#ifdef"}
	PPIfndef  = &Type{Label: "#ifndef"}
	PPElif    = &Type{Label: "#elif"}
	PPElse    = &Type{Label: "#else"}
	PPEndif   = &Type{Label: "#endif"}
	PPPragma  = &Type{Label: "#pragma"}
	PPError   = &Type{Label: "#error"}
	PPWarning = &Type{Label: "#warning"}
	PPInclude = &Type{Label: "#include"}
	PPLine    = &Type{Label: "#line"}
	KwDefined = &Type{Label: "defined"} // only meaningful inside #if/#elif
)

// objjKeywords maps the textual spelling of each Objective-J "@word" token
// to its Type, consulted by the lexer's @ sub-lexer.
var objjKeywords = map[string]*Type{
	"@implementation": AtImplementation,
	"@interface":      AtInterface,
	"@end":            AtEnd,
	"@import":         AtImport,
	"@selector":       AtSelector,
	"@class":          AtClass,
	"@global":         AtGlobal,
	"@protocol":       AtProtocol,
	"@optional":       AtOptional,
	"@required":       AtRequired,
	"@ref":            AtRef,
	"@deref":          AtDeref,
	"@accessors":      AtAccessors,
	"@outlet":         AtOutlet,
	"@action":         AtAction,
}

// LookupObjJ returns the Type for an "@word" spelling, or nil.
func LookupObjJ(word string) *Type { return objjKeywords[word] }

// keywords maps ES3/5 keyword spellings to their Type.
var keywords = map[string]*Type{
	"break": KwBreak, "case": KwCase, "catch": KwCatch, "continue": KwContinue,
	"debugger": KwDebugger, "default": KwDefault, "do": KwDo, "else": KwElse,
	"finally": KwFinally, "for": KwFor, "function": KwFunction, "if": KwIf,
	"return": KwReturn, "switch": KwSwitch, "throw": KwThrow, "try": KwTry,
	"var": KwVar, "while": KwWhile, "with": KwWith, "new": KwNew,
	"this": KwThis, "super": KwSuper, "in": KwIn, "instanceof": KwInstanceof,
	"typeof": KwTypeof, "void": KwVoid, "delete": KwDelete, "null": KwNull,
	"true": KwTrue, "false": KwFalse,
}

// strictKeywords are additionally reserved in ES5 strict mode and as
// future-reserved words (spec §4.2 "Reserved-word rules").
var strictKeywords = map[string]*Type{
	"let": KwLet, "const": KwConst, "class": KwClass, "extends": KwExtends,
	"export": KwExport, "import": KwImport, "yield": KwYield,
	"package": KwPackage, "private": KwPrivate, "protected": KwProtected,
	"public": KwPublic, "static": KwStatic, "implements": KwImplements,
	"interface": KwInterfaceKw,
}

// LookupKeyword classifies a bare identifier spelling against the active
// keyword set. ecmaVersion selects ES3 vs ES5; strict additionally folds in
// the strict-mode reserved words.
func LookupKeyword(word string, ecmaVersion int, strict bool) *Type {
	if t, ok := keywords[word]; ok {
		return t
	}
	if ecmaVersion >= 5 && strict {
		if t, ok := strictKeywords[word]; ok {
			return t
		}
	}
	return nil
}

// IsStrictReservedWord reports whether word is reserved only in strict mode
// (so it is a legal identifier in sloppy mode but not in strict mode).
func IsStrictReservedWord(word string) bool {
	_, ok := strictKeywords[word]
	return ok
}

// LookupPreprocessorDirective classifies a directive keyword spelling
// (the text immediately after a line-initial '#'), consulted by the
// directive driver (spec §4.4).
func LookupPreprocessorDirective(word string) *Type {
	switch word {
	case "define":
		return PPDefine
	case "undef":
		return PPUndef
	case "if":
		return PPIf
	case "ifdef":
		return PPIfdef
	case "ifndef":
		return PPIfndef
	case "elif":
		return PPElif
	case "else":
		return PPElse
	case "endif":
		return PPEndif
	case "pragma":
		return PPPragma
	case "error":
		return PPError
	case "warning":
		return PPWarning
	case "include":
		return PPInclude
	case "line":
		return PPLine
	default:
		return nil
	}
}

// All is the stable set of token-type descriptors external consumers can
// range over (spec §6 "tokTypes").
var All = []*Type{
	EOF, EOL, Invalid, Num, StringLit, TemplateString, Regexp, Name,
	HashPaste, HashStringy, Hash,
	BracketL, BracketR, BraceL, BraceR, ParenL, ParenR, Comma, Semi, Colon,
	DoubleColon, Dot, Question, Arrow, Ellipsis, At, Backtick,
	Eq, AssignOp, IncDec, Prefix, LogicalOr, LogicalAnd, BitOr, BitXor, BitAnd,
	Equality, Relational, BitShift, PlusMin, Modulo, Star, Slash,
	KwBreak, KwCase, KwCatch, KwContinue, KwDebugger, KwDefault, KwDo, KwElse,
	KwFinally, KwFor, KwFunction, KwIf, KwReturn, KwSwitch, KwThrow, KwTry,
	KwVar, KwWhile, KwWith, KwNew, KwThis, KwSuper, KwIn, KwInstanceof,
	KwTypeof, KwVoid, KwDelete, KwNull, KwTrue, KwFalse,
	KwLet, KwConst, KwClass, KwExtends, KwExport, KwImport, KwYield,
	KwPackage, KwPrivate, KwProtected, KwPublic, KwStatic, KwImplements,
	KwInterfaceKw,
	AtImplementation, AtInterface, AtEnd, AtImport, AtSelector, AtClass,
	AtGlobal, AtProtocol, AtOptional, AtRequired, AtRef, AtDeref, AtAccessors,
	AtOutlet, AtAction, AtString, AtArrayLit, AtDictLit, ImportFilename,
	PPDefine, PPUndef, PPIf, PPIfdef, PPIfndef, PPElif, PPElse, PPEndif,
	PPPragma, PPError, PPWarning, PPInclude, PPLine, KwDefined,
}
