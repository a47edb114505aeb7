package parser

import (
	"github.com/objj-lang/objjparse/ast"
	"github.com/objj-lang/objjparse/token"
)

// parseStatement is the keyword-indexed statement dispatch spec §4.8
// describes, extended with the Objective-J declaration keywords of §4.9.
func (p *Parser) parseStatement() Node {
	switch p.cur.Type {
	case token.Semi:
		return p.parseEmptyStatement()
	case token.BraceL:
		return p.parseBlockStatement()
	case token.KwVar:
		return p.parseVariableStatement()
	case token.KwFunction:
		return p.parseFunctionDeclaration()
	case token.KwIf:
		return p.parseIfStatement()
	case token.KwFor:
		return p.parseForStatement()
	case token.KwWhile:
		return p.parseWhileStatement()
	case token.KwDo:
		return p.parseDoWhileStatement()
	case token.KwSwitch:
		return p.parseSwitchStatement()
	case token.KwTry:
		return p.parseTryStatement()
	case token.KwThrow:
		return p.parseThrowStatement()
	case token.KwReturn:
		return p.parseReturnStatement()
	case token.KwBreak:
		return p.parseBreakStatement()
	case token.KwContinue:
		return p.parseContinueStatement()
	case token.KwDebugger:
		return p.parseDebuggerStatement()
	case token.KwWith:
		return p.parseWithStatement()
	case token.AtImplementation:
		return p.parseClassDeclaration(false)
	case token.AtInterface:
		return p.parseClassDeclaration(true)
	case token.AtProtocol:
		return p.parseProtocolDeclaration()
	case token.AtImport:
		return p.parseImportStatement()
	case token.AtClass:
		return p.parseClassStatement()
	case token.AtGlobal:
		return p.parseGlobalStatement()
	default:
		return p.parseLabeledOrExpressionStatement()
	}
}

// semicolon implements automatic semicolon insertion (spec §4.8 "ASI
// rule: synthesize ';' iff one of: EOF, '}' ahead, newline between
// tokens, or (ObjJ only) pending latch").
func (p *Parser) semicolon() {
	if p.at(token.Semi) {
		p.advance()
		return
	}
	if p.at(token.EOF) || p.at(token.BraceR) || p.cur.FirstTokenOnLine || p.state.messageSend != nil {
		return
	}
	p.raise(p.cur, "expected ';' but found %s", p.cur.Type.Label)
}

func (p *Parser) parseEmptyStatement() Node {
	start := p.startSpan()
	p.advance()
	n := &ast.EmptyStatement{}
	p.finishNode(n, &n.BaseNode, "EmptyStatement", start)
	return n
}

func (p *Parser) parseDebuggerStatement() Node {
	start := p.startSpan()
	p.advance()
	p.semicolon()
	n := &ast.DebuggerStatement{}
	p.finishNode(n, &n.BaseNode, "DebuggerStatement", start)
	return n
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	start := p.startSpan()
	p.expect(token.BraceL, " to start block")
	var body []Node
	for !p.at(token.BraceR) {
		body = append(body, p.parseStatement())
	}
	p.expect(token.BraceR, " to close block")
	n := &ast.BlockStatement{Body: body}
	p.finishNode(n, &n.BaseNode, "BlockStatement", start)
	return n
}

func (p *Parser) parseVariableStatement() Node {
	decl := p.parseVariableDeclaration(false)
	p.semicolon()
	return decl
}

// parseVariableDeclaration reads `var a = 1, b, c = 2` without consuming a
// trailing semicolon, so for/for-in headers can reuse it (spec §4.8's for
// grammar: "var declaration or expression" in the init clause).
func (p *Parser) parseVariableDeclaration(noIn bool) *ast.VariableDeclaration {
	start := p.startSpan()
	p.expect(token.KwVar, " to start a variable declaration")
	var decls []*ast.VariableDeclarator
	for {
		decls = append(decls, p.parseVariableDeclarator(noIn))
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	n := &ast.VariableDeclaration{Declarations: decls, Kind: "var"}
	p.finishNode(n, &n.BaseNode, "VariableDeclaration", start)
	return n
}

func (p *Parser) parseVariableDeclarator(noIn bool) *ast.VariableDeclarator {
	start := p.startSpan()
	id := p.parseIdentifier()
	var init Node
	if p.at(token.Eq) {
		p.advance()
		init = p.parseAssignment(noIn)
	}
	n := &ast.VariableDeclarator{ID: id, Init: init}
	p.finishNode(n, &n.BaseNode, "VariableDeclarator", start)
	return n
}

func (p *Parser) parseIfStatement() Node {
	start := p.startSpan()
	p.advance()
	p.expect(token.ParenL, " after \"if\"")
	test := p.parseExpression(false)
	p.expect(token.ParenR, " after if condition")
	cons := p.parseStatement()
	var alt Node
	if p.at(token.KwElse) {
		p.advance()
		alt = p.parseStatement()
	}
	n := &ast.IfStatement{Test: test, Consequent: cons, Alternate: alt}
	p.finishNode(n, &n.BaseNode, "IfStatement", start)
	return n
}

// parseForStatement disambiguates `for (;;)`/`for (x;;)`/`for (var ...;;)`
// from `for (x in y)`/`for (var x in y)` by reading the init clause first
// and checking for a following `in` (spec §4.8 "parseForStatement/
// parseForInStatement disambiguation").
func (p *Parser) parseForStatement() Node {
	start := p.startSpan()
	p.advance()
	p.expect(token.ParenL, " after \"for\"")

	var init Node
	if p.at(token.KwVar) {
		init = p.parseVariableDeclaration(true)
	} else if !p.at(token.Semi) {
		init = p.parseExpression(true)
	}

	if p.at(token.KwIn) {
		p.advance()
		right := p.parseExpression(false)
		p.expect(token.ParenR, " after for-in header")
		p.state.pushLabel("", labelLoop)
		body := p.parseStatement()
		p.state.popLabel()
		n := &ast.ForInStatement{Left: init, Right: right, Body: body}
		p.finishNode(n, &n.BaseNode, "ForInStatement", start)
		return n
	}

	p.expect(token.Semi, " after for-loop initializer")
	var test Node
	if !p.at(token.Semi) {
		test = p.parseExpression(false)
	}
	p.expect(token.Semi, " after for-loop test")
	var update Node
	if !p.at(token.ParenR) {
		update = p.parseExpression(false)
	}
	p.expect(token.ParenR, " after for-loop header")

	p.state.pushLabel("", labelLoop)
	body := p.parseStatement()
	p.state.popLabel()
	n := &ast.ForStatement{Init: init, Test: test, Update: update, Body: body}
	p.finishNode(n, &n.BaseNode, "ForStatement", start)
	return n
}

func (p *Parser) parseWhileStatement() Node {
	start := p.startSpan()
	p.advance()
	p.expect(token.ParenL, " after \"while\"")
	test := p.parseExpression(false)
	p.expect(token.ParenR, " after while condition")
	p.state.pushLabel("", labelLoop)
	body := p.parseStatement()
	p.state.popLabel()
	n := &ast.WhileStatement{Test: test, Body: body}
	p.finishNode(n, &n.BaseNode, "WhileStatement", start)
	return n
}

func (p *Parser) parseDoWhileStatement() Node {
	start := p.startSpan()
	p.advance()
	p.state.pushLabel("", labelLoop)
	body := p.parseStatement()
	p.state.popLabel()
	p.expect(token.KwWhile, " after do-while body")
	p.expect(token.ParenL, " after \"while\"")
	test := p.parseExpression(false)
	p.expect(token.ParenR, " after do-while condition")
	if p.at(token.Semi) {
		p.advance()
	}
	n := &ast.DoWhileStatement{Body: body, Test: test}
	p.finishNode(n, &n.BaseNode, "DoWhileStatement", start)
	return n
}

func (p *Parser) parseSwitchStatement() Node {
	start := p.startSpan()
	p.advance()
	p.expect(token.ParenL, " after \"switch\"")
	disc := p.parseExpression(false)
	p.expect(token.ParenR, " after switch discriminant")
	p.expect(token.BraceL, " to start switch body")
	p.state.pushLabel("", labelSwitch)
	var cases []*ast.SwitchCase
	seenDefault := false
	for !p.at(token.BraceR) {
		caseStart := p.startSpan()
		var test Node
		if p.at(token.KwCase) {
			p.advance()
			test = p.parseExpression(false)
		} else {
			p.expect(token.KwDefault, " or \"case\" in switch body")
			if seenDefault {
				p.raise(p.cur, "more than one default clause in switch statement")
			}
			seenDefault = true
		}
		p.expect(token.Colon, " after switch case label")
		var body []Node
		for !p.at(token.KwCase) && !p.at(token.KwDefault) && !p.at(token.BraceR) {
			body = append(body, p.parseStatement())
		}
		sc := &ast.SwitchCase{Test: test, Consequent: body}
		p.finishNode(sc, &sc.BaseNode, "SwitchCase", caseStart)
		cases = append(cases, sc)
	}
	p.expect(token.BraceR, " to close switch body")
	p.state.popLabel()
	n := &ast.SwitchStatement{Discriminant: disc, Cases: cases}
	p.finishNode(n, &n.BaseNode, "SwitchStatement", start)
	return n
}

func (p *Parser) parseTryStatement() Node {
	start := p.startSpan()
	p.advance()
	block := p.parseBlockStatement()
	var handler *ast.CatchClause
	if p.at(token.KwCatch) {
		catchStart := p.startSpan()
		p.advance()
		p.expect(token.ParenL, " after \"catch\"")
		param := p.parseIdentifier()
		p.expect(token.ParenR, " after catch parameter")
		body := p.parseBlockStatement()
		handler = &ast.CatchClause{Param: param, Body: body}
		p.finishNode(handler, &handler.BaseNode, "CatchClause", catchStart)
	}
	var finalizer *ast.BlockStatement
	if p.at(token.KwFinally) {
		p.advance()
		finalizer = p.parseBlockStatement()
	}
	if handler == nil && finalizer == nil {
		p.raise(p.cur, "missing catch or finally after try block")
	}
	n := &ast.TryStatement{Block: block, Handler: handler, Finalizer: finalizer}
	p.finishNode(n, &n.BaseNode, "TryStatement", start)
	return n
}

func (p *Parser) parseThrowStatement() Node {
	start := p.startSpan()
	p.advance()
	if p.cur.FirstTokenOnLine {
		p.raise(p.cur, "illegal newline after \"throw\"")
	}
	arg := p.parseExpression(false)
	p.semicolon()
	n := &ast.ThrowStatement{Argument: arg}
	p.finishNode(n, &n.BaseNode, "ThrowStatement", start)
	return n
}

// parseReturnStatement rejects a return outside of a function body (spec
// §4.8 "return statement: outside-function rejection").
func (p *Parser) parseReturnStatement() Node {
	start := p.startSpan()
	if !p.state.inFunction {
		p.raise(p.cur, "\"return\" outside of a function")
	}
	p.advance()
	var arg Node
	if !p.at(token.Semi) && !p.at(token.BraceR) && !p.at(token.EOF) && !p.cur.FirstTokenOnLine {
		arg = p.parseExpression(false)
	}
	p.semicolon()
	n := &ast.ReturnStatement{Argument: arg}
	p.finishNode(n, &n.BaseNode, "ReturnStatement", start)
	return n
}

func (p *Parser) parseBreakStatement() Node {
	return p.parseBreakOrContinue(true)
}

func (p *Parser) parseContinueStatement() Node {
	return p.parseBreakOrContinue(false)
}

// parseBreakOrContinue validates its target label, if any, against the
// active label stack (spec §3 ParserState "labels", §4.8 "label validation
// via state.findLabel").
func (p *Parser) parseBreakOrContinue(isBreak bool) Node {
	start := p.startSpan()
	p.advance()
	var lbl *ast.Identifier
	if p.cur.Type == token.Name && !p.cur.FirstTokenOnLine {
		lbl = p.parseIdentifier()
		if _, ok := p.state.findLabel(lbl.Name); !ok {
			p.raise(p.cur, "undefined label %q", lbl.Name)
		}
	} else if isBreak {
		if !p.state.hasLoopLabel() && !p.state.hasSwitchLabel() {
			p.raise(p.cur, "illegal break statement outside of a loop or switch")
		}
	} else if !p.state.hasLoopLabel() {
		p.raise(p.cur, "illegal continue statement outside of a loop")
	}
	p.semicolon()
	if isBreak {
		n := &ast.BreakStatement{Label: lbl}
		p.finishNode(n, &n.BaseNode, "BreakStatement", start)
		return n
	}
	n := &ast.ContinueStatement{Label: lbl}
	p.finishNode(n, &n.BaseNode, "ContinueStatement", start)
	return n
}

// parseWithStatement rejects `with` in strict mode (spec §4.8 "WithStatement
// (strict-mode rejection)").
func (p *Parser) parseWithStatement() Node {
	start := p.startSpan()
	if p.state.strict {
		p.raise(p.cur, "\"with\" statement is not allowed in strict mode")
	}
	p.advance()
	p.expect(token.ParenL, " after \"with\"")
	obj := p.parseExpression(false)
	p.expect(token.ParenR, " after with object")
	body := p.parseStatement()
	n := &ast.WithStatement{Object: obj, Body: body}
	p.finishNode(n, &n.BaseNode, "WithStatement", start)
	return n
}

// parseLabeledOrExpressionStatement disambiguates `identifier: statement`
// from an ordinary expression statement by speculatively checking for a
// following colon on a bare Name (spec §4.8 "parseLabeledStatement vs.
// parseExpressionStatement disambiguation").
func (p *Parser) parseLabeledOrExpressionStatement() Node {
	start := p.startSpan()
	if p.cur.Type == token.Name && p.peek.Type == token.Colon {
		id := p.parseIdentifier()
		p.expect(token.Colon, " after label")
		kind := labelPlain
		if p.isLoopKeyword(p.cur.Type) {
			kind = labelLoop
		} else if p.cur.Type == token.KwSwitch {
			kind = labelSwitch
		}
		p.state.pushLabel(id.Name, kind)
		body := p.parseStatement()
		p.state.popLabel()
		n := &ast.LabeledStatement{Label: id, Body: body}
		p.finishNode(n, &n.BaseNode, "LabeledStatement", start)
		return n
	}
	expr := p.parseExpression(false)
	p.semicolon()
	n := &ast.ExpressionStatement{Expression: expr}
	p.finishNode(n, &n.BaseNode, "ExpressionStatement", start)
	return n
}

func (p *Parser) isLoopKeyword(tt *token.Type) bool {
	return tt != nil && tt.IsLoop
}
