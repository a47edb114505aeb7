package preprocess

import "github.com/objj-lang/objjparse/token"

// frame is one entry of the token-stream multiplexer (spec §3/§4.7 C7):
// a finite array of already-expanded tokens being drained before control
// returns to the next frame down, down to the raw lexer at the bottom.
// Pushed whenever a macro invocation is recognized; popped once fully
// drained. macroName is non-empty only for frames that represent a live
// macro body substitution, so rawNext can pop the self-reference guard
// (expandingStack) in lockstep with the frame itself.
type frame struct {
	tokens    []token.Token
	idx       int
	macroName string
}

func (f *frame) next() (token.Token, bool) {
	if f.idx >= len(f.tokens) {
		return token.Token{}, false
	}
	tok := f.tokens[f.idx]
	f.idx++
	return tok, true
}

// pushFrame suspends the current source beneath a new array-backed stream
// (spec §4.7 "suspend/resume stack"). name marks it as a macro-body frame
// for self-reference tracking; pass "" for frames that are not themselves
// a macro expansion (there are currently none, but the hook exists for
// clarity and future argument-prescan framing).
func (p *Preprocessor) pushFrame(tokens []token.Token, name string) {
	if name != "" {
		p.expandingStack = append(p.expandingStack, name)
	}
	p.frames = append(p.frames, frame{tokens: tokens, macroName: name})
}

func (p *Preprocessor) popFrame() {
	top := p.frames[len(p.frames)-1]
	p.frames = p.frames[:len(p.frames)-1]
	if top.macroName != "" {
		p.popExpanding(top.macroName)
	}
}

func (p *Preprocessor) isExpanding(name string) bool {
	for _, n := range p.expandingStack {
		if n == name {
			return true
		}
	}
	return false
}

func (p *Preprocessor) popExpanding(name string) {
	for i := len(p.expandingStack) - 1; i >= 0; i-- {
		if p.expandingStack[i] == name {
			p.expandingStack = append(p.expandingStack[:i], p.expandingStack[i+1:]...)
			return
		}
	}
}
