package preprocess

import "github.com/objj-lang/objjparse/token"

// parentSkipping reports whether the conditional frame enclosing the
// current top one (if any) is itself suppressing output; a branch nested
// inside a skipped branch is always skipped regardless of its own
// condition (spec §4.4 "nested conditionals inside a skipped branch").
func (p *Preprocessor) parentSkipping() bool {
	if len(p.conditionals) < 2 {
		return false
	}
	return p.conditionals[len(p.conditionals)-2].skipping
}

func (p *Preprocessor) handleIf(dirTok token.Token) {
	wasSkipping := p.skipping()
	frame := &conditionalFrame{phase: phaseIf}
	if wasSkipping {
		frame.skipping = true
		p.directiveLine() // consume without evaluating; may reference undefined macros
	} else {
		val, err := p.evalIfExpr()
		if err != nil {
			p.fail(err.Error(), dirTok)
		}
		frame.skipping = val == 0
		frame.matched = val != 0
	}
	p.conditionals = append(p.conditionals, frame)
}

func (p *Preprocessor) handleIfdef(wantDefined bool, dirTok token.Token) {
	wasSkipping := p.skipping()
	frame := &conditionalFrame{phase: phaseIf}
	nameTok := p.lex.NextToken(false)
	p.directiveLine()
	if wasSkipping {
		frame.skipping = true
	} else {
		if nameTok.Type != token.Name {
			p.fail("macro name missing after #ifdef/#ifndef", dirTok)
		}
		name, _ := nameTok.Value.(string)
		defined := p.Macros.IsDefined(name)
		cond := defined == wantDefined
		frame.skipping = !cond
		frame.matched = cond
	}
	p.conditionals = append(p.conditionals, frame)
}

func (p *Preprocessor) handleElif(dirTok token.Token) {
	if len(p.conditionals) == 0 {
		p.directiveLine()
		p.fail("#elif without matching #if", dirTok)
		return
	}
	top := p.conditionals[len(p.conditionals)-1]
	if top.phase == phaseElse {
		p.directiveLine()
		p.fail("#elif after #else", dirTok)
		return
	}
	if p.parentSkipping() || top.matched {
		top.skipping = true
		p.directiveLine()
		return
	}
	val, err := p.evalIfExpr()
	if err != nil {
		p.fail(err.Error(), dirTok)
		return
	}
	top.skipping = val == 0
	if val != 0 {
		top.matched = true
	}
}

func (p *Preprocessor) handleElse(dirTok token.Token) {
	if len(p.conditionals) == 0 {
		p.directiveLine()
		p.fail("#else without matching #if", dirTok)
		return
	}
	top := p.conditionals[len(p.conditionals)-1]
	if top.phase == phaseElse {
		p.directiveLine()
		p.fail("#else after #else", dirTok)
		return
	}
	top.phase = phaseElse
	p.directiveLine()
	if p.parentSkipping() {
		top.skipping = true
	} else {
		top.skipping = top.matched
	}
}

func (p *Preprocessor) handleEndif(dirTok token.Token) {
	p.directiveLine()
	if len(p.conditionals) == 0 {
		p.fail("#endif without matching #if", dirTok)
		return
	}
	p.conditionals = p.conditionals[:len(p.conditionals)-1]
}
