package parser

import (
	"github.com/objj-lang/objjparse/ast"
	"github.com/objj-lang/objjparse/token"
)

// parseExpression parses a full expression, including the comma operator
// (spec §4.8 doesn't name parseExpression explicitly but §6's grammar
// needs it for e.g. for-loop headers and call arguments use
// parseAssignment directly instead).
func (p *Parser) parseExpression(noIn bool) Node {
	start := p.startSpan()
	first := p.parseAssignment(noIn)
	if !p.at(token.Comma) {
		return first
	}
	exprs := []Node{first}
	for p.at(token.Comma) {
		p.advance()
		exprs = append(exprs, p.parseAssignment(noIn))
	}
	n := &ast.SequenceExpression{Expressions: exprs}
	p.finishNode(n, &n.BaseNode, "SequenceExpression", start)
	return n
}

// parseAssignment handles `=` and compound-assignment operators, which
// bind looser than the conditional operator and are right-associative
// (spec §4.8's precedence-climbing table gives assignment no binop
// entry — it's handled as a distinct, lower grammar rule, matching
// ECMAScript's own grammar).
func (p *Parser) parseAssignment(noIn bool) Node {
	start := p.startSpan()
	left := p.parseConditional(noIn)
	if p.cur.Type != token.Eq && p.cur.Type != token.AssignOp {
		return left
	}
	op := p.cur.Literal()
	p.advance()
	right := p.parseAssignment(noIn)
	n := &ast.AssignmentExpression{Operator: op, Left: left, Right: right}
	p.finishNode(n, &n.BaseNode, "AssignmentExpression", start)
	return n
}

func (p *Parser) parseConditional(noIn bool) Node {
	start := p.startSpan()
	test := p.parseExprOps(noIn)
	if !p.at(token.Question) {
		return test
	}
	p.advance()
	cons := p.parseAssignment(false)
	p.expect(token.Colon, " in conditional expression")
	alt := p.parseAssignment(noIn)
	n := &ast.ConditionalExpression{Test: test, Consequent: cons, Alternate: alt}
	p.finishNode(n, &n.BaseNode, "ConditionalExpression", start)
	return n
}

// parseExprOps is parseExprOp(parseMaybeUnary(), -1) per spec §4.8, climbing
// token.Type.Binop precedence (shared with the #if evaluator, spec §4.5).
// `in` is excluded when noIn is set, for a for-loop header (spec §4.8).
func (p *Parser) parseExprOps(noIn bool) Node {
	left := p.parseMaybeUnary()
	return p.parseExprOp(left, token.PrecLogicalOr, noIn)
}

func (p *Parser) parseExprOp(left Node, minPrec int, noIn bool) Node {
	for {
		tt := p.cur.Type
		if tt == nil || tt.Binop == token.PrecNone || tt.Binop < minPrec {
			return left
		}
		if tt == token.KwIn && noIn {
			return left
		}
		start, _ := left.Span()
		opTok := p.cur
		prec := tt.Binop
		p.advance()
		right := p.parseMaybeUnary()
		right = p.parseExprOp(right, prec+1, noIn)

		if opTok.Type == token.LogicalAnd || opTok.Type == token.LogicalOr {
			n := &ast.LogicalExpression{Operator: opTok.Literal(), Left: left, Right: right}
			p.finishNode(n, &n.BaseNode, "LogicalExpression", start)
			left = n
			continue
		}
		n := &ast.BinaryExpression{Operator: opTok.Literal(), Left: left, Right: right}
		p.finishNode(n, &n.BaseNode, "BinaryExpression", start)
		left = n
	}
}

// parseMaybeUnary handles prefix ++/--/!/~/+/-/typeof/void/delete (spec
// §4.8 "Unary prefix"); typeof/void/delete are rejected in strict-mode
// contexts that forbid them at the call site, not here (spec names "the
// appropriate contexts", which for this grammar is just `delete` on a bare
// identifier — enforced below).
func (p *Parser) parseMaybeUnary() Node {
	start := p.startSpan()
	switch {
	case p.cur.Type == token.Prefix || (p.cur.Type == token.PlusMin) ||
		p.cur.Type == token.KwTypeof || p.cur.Type == token.KwVoid || p.cur.Type == token.KwDelete:
		op := p.cur
		p.advance()
		arg := p.parseMaybeUnary()
		if op.Type == token.KwDelete && p.state.strict {
			if id, ok := arg.(*ast.Identifier); ok {
				p.raise(op, "Deleting local variable %q in strict mode", id.Name)
			}
		}
		n := &ast.UnaryExpression{Operator: op.Literal(), Prefix: true, Argument: arg}
		p.finishNode(n, &n.BaseNode, "UnaryExpression", start)
		return n
	case p.cur.Type == token.IncDec:
		op := p.cur
		p.advance()
		arg := p.parseMaybeUnary()
		n := &ast.UpdateExpression{Operator: op.Literal(), Prefix: true, Argument: arg}
		p.finishNode(n, &n.BaseNode, "UpdateExpression", start)
		return n
	default:
		return p.parsePostfix()
	}
}

// parsePostfix handles postfix ++/-- without letting automatic semicolon
// insertion swallow a newline-separated operator (spec §4.8 "postfix
// handles ++/-- without ASI interfering": a newline before ++/-- means it
// is NOT a postfix operator on the preceding expression).
func (p *Parser) parsePostfix() Node {
	start := p.startSpan()
	expr := p.parseSubscripts(true)
	if p.cur.Type == token.IncDec && !p.cur.FirstTokenOnLine {
		op := p.cur
		p.advance()
		n := &ast.UpdateExpression{Operator: op.Literal(), Prefix: false, Argument: expr}
		p.finishNode(n, &n.BaseNode, "UpdateExpression", start)
		return n
	}
	return expr
}
