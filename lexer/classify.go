// Package lexer implements the character-level tokenizer state machine
// (spec components C1 "Character classifier" and C2 "Source lexer"). It is
// grounded on the teacher's lexer/lexer.go and lexer/lexer_utils.go
// (akashmaji946-go-mix), generalized from GoMix's fixed operator set to the
// full ES3/5 + Objective-J + preprocessor-directive lexical grammar spec.md
// describes.
package lexer

import "unicode"

// isIdentifierStart reports whether r can begin an identifier: the ASCII
// fast path ($, _, A-Z, a-z) falls back to the Unicode letter categories
// for anything non-ASCII, mirroring Esprima's identifier-start set (spec
// §4.1).
func isIdentifierStart(r rune) bool {
	if r == '$' || r == '_' {
		return true
	}
	if r < 128 {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	}
	return unicode.IsLetter(r) || unicode.Is(unicode.Nl, r)
}

// isIdentifierChar reports whether r can continue an identifier: adds
// digits and the Unicode combining-mark / connector-punctuation categories
// to isIdentifierStart's set (spec §4.1).
func isIdentifierChar(r rune) bool {
	if r == '$' || r == '_' || r == 0x200c || r == 0x200d {
		return true
	}
	if r < 128 {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r) ||
		unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) ||
		unicode.Is(unicode.Nd, r) || unicode.Is(unicode.Pc, r)
}

func isDecimalDigit(r rune) bool { return r >= '0' && r <= '9' }

func isHexDigit(r rune) bool {
	return isDecimalDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isOctalDigit(r rune) bool { return r >= '0' && r <= '7' }

// isNewLine reports whether r is one of the four ECMAScript line terminators
// (spec §4.1 "Newline detection"). CRLF is folded to a single line break by
// the caller, not here.
func isNewLine(r rune) bool {
	return r == '\n' || r == '\r' || r == ' ' || r == ' '
}

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\v', '\f', 0xa0, 0xfeff:
		return true
	}
	return isNewLine(r) || unicode.Is(unicode.Zs, r)
}
