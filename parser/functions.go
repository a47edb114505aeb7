package parser

import (
	"github.com/objj-lang/objjparse/ast"
	"github.com/objj-lang/objjparse/token"
)

// parseFunctionExpression parses `function [name](params) { body }` in
// expression position (spec §4.8 "function decl/expr").
func (p *Parser) parseFunctionExpression() Node {
	start := p.startSpan()
	p.advance() // 'function'
	var id *ast.Identifier
	if p.cur.Type == token.Name {
		id = p.parseIdentifier()
	}
	fn := p.parseFunctionBodyAndParams(id)
	p.finishNode(fn, &fn.BaseNode, "FunctionExpression", start)
	return fn
}

// parseFunctionDeclaration parses a statement-position function
// declaration, which requires a name (spec §4.8).
func (p *Parser) parseFunctionDeclaration() Node {
	start := p.startSpan()
	p.advance() // 'function'
	id := p.parseIdentifier()
	fn := p.parseFunctionBodyAndParams(id)
	decl := &ast.FunctionDeclaration{ID: fn.ID, Params: fn.Params, Body: fn.Body, Strict: fn.Strict}
	p.finishNode(decl, &decl.BaseNode, "FunctionDeclaration", start)
	return decl
}

// parseFunctionBodyAndParams reads a parameter list and brace-delimited
// body, saving and restoring ParserState.inFunction/labels around the body
// (spec §3 ParserState, §4.8 "function decl/expr: inFunction/labels
// save/restore"), and infers strict mode from the body's first statement
// being a bare "use strict" literal (spec §4.8 "strict-mode inference from
// first body statement"). In strict mode (inherited or inferred), duplicate
// parameter names and reserved words used as parameter names are rejected.
func (p *Parser) parseFunctionBodyAndParams(id *ast.Identifier) *ast.FunctionExpression {
	params := p.parseParamList()

	savedInFunction, savedLabels, savedStrict := p.state.inFunction, p.state.labels, p.state.strict
	p.state.inFunction = true
	p.state.labels = nil

	bodyStart := p.startSpan()
	p.expect(token.BraceL, " to start function body")
	var body []Node
	strict := p.state.strict
	for !p.at(token.BraceR) {
		stmt := p.parseStatement()
		if i, ok := firstStatementUseStrict(stmt); ok && i == len(body) && !strict {
			strict = true
			p.state.strict = true
		}
		body = append(body, stmt)
	}
	p.expect(token.BraceR, " to close function body")
	blk := &ast.BlockStatement{Body: body}
	p.finishNode(blk, &blk.BaseNode, "BlockStatement", bodyStart)

	if strict {
		p.checkStrictParams(params)
	}

	p.state.inFunction, p.state.labels, p.state.strict = savedInFunction, savedLabels, savedStrict

	return &ast.FunctionExpression{ID: id, Params: params, Body: blk, Strict: strict}
}

func (p *Parser) parseParamList() []*ast.Identifier {
	p.expect(token.ParenL, " to start parameter list")
	var params []*ast.Identifier
	for !p.at(token.ParenR) {
		params = append(params, p.parseIdentifier())
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.ParenR, " to close parameter list")
	return params
}

// checkStrictParams rejects duplicate parameter names and reserved words
// used as parameter names, both only illegal once strict mode applies
// (spec §4.8 "duplicate-param/reserved-word rejection in strict mode").
func (p *Parser) checkStrictParams(params []*ast.Identifier) {
	seen := make(map[string]bool, len(params))
	for _, param := range params {
		if seen[param.Name] {
			p.raiseAt(param.Start, "duplicate parameter name %q in strict mode", param.Name)
		}
		seen[param.Name] = true
		if param.Name == "eval" || param.Name == "arguments" {
			p.raiseAt(param.Start, "parameter name %q is not allowed in strict mode", param.Name)
		}
		if token.IsStrictReservedWord(param.Name) {
			p.raiseAt(param.Start, "unexpected strict mode reserved word %q", param.Name)
		}
	}
}
