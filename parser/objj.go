package parser

import (
	"strings"

	"github.com/objj-lang/objjparse/ast"
	"github.com/objj-lang/objjparse/token"
)

func (p *Parser) atPunct(tt *token.Type, text string) bool {
	return p.cur.Type == tt && p.cur.Value == text
}

func (p *Parser) advancePunct() { p.advance() }

// parseObjJType reads the Objective-J type grammar (spec §4.8): `void`,
// `id` optionally followed by `<Protocol, Protocol>`, the integer family
// (`[signed|unsigned] [char|byte|short|int [long [long]]]`), or a bare
// class-name identifier.
func (p *Parser) parseObjJType() *ast.ObjectiveJType {
	start := p.startSpan()
	if p.at(token.KwVoid) {
		p.advance()
		n := &ast.ObjectiveJType{Name: "void"}
		p.finishNode(n, &n.BaseNode, "ObjectiveJType", start)
		return n
	}
	if p.cur.Type != token.Name {
		p.raise(p.cur, "expected a type name")
	}
	name := identOf(p.cur)

	switch name {
	case "id":
		p.advance()
		var protocols []string
		if p.atPunct(token.Relational, "<") {
			p.advancePunct()
			for {
				protocols = append(protocols, identOf(p.cur))
				p.advance()
				if p.at(token.Comma) {
					p.advance()
					continue
				}
				break
			}
			if !p.atPunct(token.Relational, ">") {
				p.raise(p.cur, "expected '>' to close protocol list")
			}
			p.advancePunct()
		}
		n := &ast.ObjectiveJType{Name: "id", Protocols: protocols}
		p.finishNode(n, &n.BaseNode, "ObjectiveJType", start)
		return n
	case "signed", "unsigned", "char", "byte", "short", "int", "long":
		var parts []string
		parts = append(parts, name)
		p.advance()
		for p.cur.Type == token.Name {
			next := identOf(p.cur)
			if next == "long" || next == "int" || next == "char" || next == "short" {
				parts = append(parts, next)
				p.advance()
				continue
			}
			break
		}
		n := &ast.ObjectiveJType{Name: strings.Join(parts, " ")}
		p.finishNode(n, &n.BaseNode, "ObjectiveJType", start)
		return n
	default:
		p.advance()
		n := &ast.ObjectiveJType{Name: name, TypeIsClass: true}
		p.finishNode(n, &n.BaseNode, "ObjectiveJType", start)
		return n
	}
}

// parseClassHeader reads the shared `Name [: Super] [(Category)]
// [<Protocols>] [{ ivars }]` shape of @implementation/@interface (spec
// §4.8 "Objective-J class-ish declaration shape").
type classHeader struct {
	id         *ast.Identifier
	superClass *ast.Identifier
	category   string
	protocols  []string
	ivars      []*ast.IvarDeclaration
}

func (p *Parser) parseClassHeader(allowIvars bool) classHeader {
	var h classHeader
	h.id = p.parseIdentifier()

	if p.at(token.Colon) {
		p.advance()
		h.superClass = p.parseIdentifier()
	} else if p.at(token.ParenL) {
		p.advance()
		h.category = identOf(p.cur)
		p.advance()
		p.expect(token.ParenR, " to close category name")
	}

	if p.atPunct(token.Relational, "<") {
		p.advancePunct()
		for {
			h.protocols = append(h.protocols, identOf(p.cur))
			p.advance()
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
		if !p.atPunct(token.Relational, ">") {
			p.raise(p.cur, "expected '>' to close protocol list")
		}
		p.advancePunct()
	}

	if allowIvars && p.at(token.BraceL) {
		p.advance()
		for !p.at(token.BraceR) {
			h.ivars = append(h.ivars, p.parseIvarDeclaration())
		}
		p.expect(token.BraceR, " to close ivar block")
	}
	return h
}

// parseIvarDeclaration reads one ivar line: a type, name, and optional
// @accessors(...) clause (spec §4.8 "Ivar declarations").
func (p *Parser) parseIvarDeclaration() *ast.IvarDeclaration {
	start := p.startSpan()
	outlet := false
	if p.at(token.AtOutlet) {
		outlet = true
		p.advance()
	}
	ivarType := p.parseObjJType()
	id := p.parseIdentifier()
	var accessors *ast.AccessorSpec
	if p.at(token.AtAccessors) {
		accessors = p.parseAccessorSpec()
	}
	p.semicolon()
	n := &ast.IvarDeclaration{IvarType: ivarType, ID: id, Outlet: outlet, Accessors: accessors}
	p.finishNode(n, &n.BaseNode, "IvarDeclaration", start)
	return n
}

func (p *Parser) parseAccessorSpec() *ast.AccessorSpec {
	p.advance() // '@accessors'
	spec := &ast.AccessorSpec{}
	if !p.at(token.ParenL) {
		return spec
	}
	p.advance()
	for !p.at(token.ParenR) {
		key := identOf(p.cur)
		p.advance()
		switch key {
		case "readonly":
			spec.ReadOnly = true
		case "readwrite":
			spec.ReadOnly = false
		case "copy":
			spec.Copy = true
		case "property", "getter", "setter":
			p.expect(token.Eq, " after accessors attribute name")
			val := identOf(p.cur)
			p.advance()
			switch key {
			case "property":
				spec.Property = val
			case "getter":
				spec.Getter = val
			case "setter":
				spec.Setter = val
			}
		}
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.ParenR, " to close @accessors")
	return spec
}

// parseClassDeclaration parses @implementation (isInterface=false) or
// @interface (isInterface=true); the two share everything but their
// keyword and node type, and whether a method may carry a body (an
// @interface method never does).
func (p *Parser) parseClassDeclaration(isInterface bool) Node {
	start := p.startSpan()
	p.advance() // '@implementation' or '@interface'
	h := p.parseClassHeader(true)

	var body []Node
	for !p.at(token.AtEnd) {
		if p.cur.Type == token.PlusMin {
			body = append(body, p.parseMethodDeclaration(!isInterface))
			continue
		}
		body = append(body, p.parseStatement())
	}
	p.advance() // '@end'

	if isInterface {
		n := &ast.InterfaceDeclarationStatement{
			ID: h.id, SuperClass: h.superClass, Category: h.category,
			Protocols: h.protocols, Ivars: h.ivars, Body: body,
		}
		p.finishNode(n, &n.BaseNode, "InterfaceDeclarationStatement", start)
		return n
	}
	n := &ast.ClassDeclarationStatement{
		ID: h.id, SuperClass: h.superClass, Category: h.category,
		Protocols: h.protocols, Ivars: h.ivars, Body: body,
	}
	p.finishNode(n, &n.BaseNode, "ClassDeclarationStatement", start)
	return n
}

// parseProtocolDeclaration partitions method declarations by @optional /
// @required (spec §3 "ProtocolDeclarationStatement").
func (p *Parser) parseProtocolDeclaration() Node {
	start := p.startSpan()
	p.advance() // '@protocol'
	h := p.parseClassHeader(false)

	var required, optional []*ast.MethodDeclarationStatement
	inOptional := false
	for !p.at(token.AtEnd) {
		switch p.cur.Type {
		case token.AtOptional:
			inOptional = true
			p.advance()
		case token.AtRequired:
			inOptional = false
			p.advance()
		default:
			m := p.parseMethodDeclaration(false)
			md := m.(*ast.MethodDeclarationStatement)
			if inOptional {
				optional = append(optional, md)
			} else {
				required = append(required, md)
			}
		}
	}
	p.advance() // '@end'
	n := &ast.ProtocolDeclarationStatement{
		ID: h.id, Protocols: h.protocols, RequiredBody: required, OptionalBody: optional,
	}
	p.finishNode(n, &n.BaseNode, "ProtocolDeclarationStatement", start)
	return n
}

// parseMethodDeclaration reads one `+`/`-` method: optional parenthesized
// return type (possibly `@action`), selector parts with typed arguments,
// optional trailing `, ...` variadic, and (unless allowBody is false, i.e.
// inside @interface/@protocol) a function body (spec §4.8).
func (p *Parser) parseMethodDeclaration(allowBody bool) Node {
	start := p.startSpan()
	classMethod := p.cur.Value == "+"
	p.advance() // '+' or '-'

	var returnType *ast.ObjectiveJActionType
	if p.at(token.ParenL) {
		rtStart := p.startSpan()
		p.advance()
		rt := &ast.ObjectiveJActionType{}
		if p.at(token.AtAction) {
			p.advance()
			if !p.at(token.ParenR) {
				t := p.parseObjJType()
				rt.ReturnType = t
			}
		} else {
			rt.ReturnType = p.parseObjJType()
		}
		p.expect(token.ParenR, " to close method return type")
		p.finishNode(rt, &rt.BaseNode, "ObjectiveJActionType", rtStart)
		returnType = rt
	}

	var selectors []*ast.Identifier
	var params []*ast.MethodParam
	variadic := false
	for {
		if p.cur.Type != token.Name && !p.cur.Type.OkAsIdent {
			break
		}
		sel := p.parseIdentifier()
		selectors = append(selectors, sel)
		if !p.at(token.Colon) {
			break
		}
		p.advance()
		var paramType *ast.ObjectiveJType
		if p.at(token.ParenL) {
			p.advance()
			paramType = p.parseObjJType()
			p.expect(token.ParenR, " to close parameter type")
		}
		paramStart := sel.Start
		id := p.parseIdentifier()
		mp := &ast.MethodParam{ParamType: paramType, ID: id}
		p.finishNode(mp, &mp.BaseNode, "MethodParam", paramStart)
		params = append(params, mp)

		if p.at(token.Comma) {
			p.advance()
			p.expect(token.Ellipsis, " after ',' in method selector")
			variadic = true
			break
		}
		if !(p.cur.Type == token.Name && p.peek.Type == token.Colon) {
			break
		}
	}

	var body *ast.BlockStatement
	if allowBody {
		body = p.parseMethodBody()
	} else {
		p.semicolon()
	}

	n := &ast.MethodDeclarationStatement{
		ClassMethod: classMethod, ReturnType: returnType, Selectors: selectors,
		Params: params, Variadic: variadic, Body: body,
	}
	p.finishNode(n, &n.BaseNode, "MethodDeclarationStatement", start)
	return n
}

// parseMethodBody reads a method's `{ ... }` body, threading inFunction
// the same way an ordinary function body does (spec §4.8 generalizes the
// function decl/expr inFunction/labels save-restore to method bodies too).
func (p *Parser) parseMethodBody() *ast.BlockStatement {
	savedInFunction, savedLabels := p.state.inFunction, p.state.labels
	p.state.inFunction = true
	p.state.labels = nil
	body := p.parseBlockStatement()
	p.state.inFunction, p.state.labels = savedInFunction, savedLabels
	return body
}

// parseImportStatement reads `@import "local/path.j"` or
// `@import <framework/File.j>` (spec §3 "ImportStatement").
func (p *Parser) parseImportStatement() Node {
	start := p.startSpan()
	p.advance() // '@import'
	n := &ast.ImportStatement{}
	if p.cur.Type == token.StringLit {
		n.LocalPath, _ = p.cur.Value.(string)
		p.advance()
	} else if p.cur.Type == token.ImportFilename {
		n.Framework, _ = p.cur.Value.(string)
		p.advance()
	} else {
		p.raise(p.cur, "expected a string or <framework/File.j> after @import")
	}
	p.semicolon()
	p.finishNode(n, &n.BaseNode, "ImportStatement", start)
	return n
}

func (p *Parser) parseIdentifierList() []*ast.Identifier {
	var ids []*ast.Identifier
	for {
		ids = append(ids, p.parseIdentifier())
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	return ids
}

func (p *Parser) parseClassStatement() Node {
	start := p.startSpan()
	p.advance() // '@class'
	ids := p.parseIdentifierList()
	p.semicolon()
	n := &ast.ClassStatement{IDs: ids}
	p.finishNode(n, &n.BaseNode, "ClassStatement", start)
	return n
}

func (p *Parser) parseGlobalStatement() Node {
	start := p.startSpan()
	p.advance() // '@global'
	ids := p.parseIdentifierList()
	p.semicolon()
	n := &ast.GlobalStatement{IDs: ids}
	p.finishNode(n, &n.BaseNode, "GlobalStatement", start)
	return n
}

// parseSelectorLiteral reads `@selector(name:name2:)` or `@selector(name)`
// (spec §4.9).
func (p *Parser) parseSelectorLiteral() Node {
	start := p.startSpan()
	p.advance() // '@selector'
	p.expect(token.ParenL, " after \"@selector\"")
	var parts []string
	for {
		parts = append(parts, identOf(p.cur))
		p.advance()
		if p.at(token.Colon) {
			parts[len(parts)-1] += ":"
			p.advance()
			if p.cur.Type == token.Name || (p.cur.Type != nil && p.cur.Type.OkAsIdent) {
				continue
			}
		}
		break
	}
	p.expect(token.ParenR, " to close \"@selector\"")
	n := &ast.SelectorLiteralExpression{Selector: strings.Join(parts, "")}
	p.finishNode(n, &n.BaseNode, "SelectorLiteralExpression", start)
	return n
}

func (p *Parser) parseProtocolLiteral() Node {
	start := p.startSpan()
	p.advance() // '@protocol'
	p.expect(token.ParenL, " after \"@protocol\"")
	id := p.parseIdentifier()
	p.expect(token.ParenR, " to close \"@protocol\"")
	n := &ast.ProtocolLiteralExpression{ID: id}
	p.finishNode(n, &n.BaseNode, "ProtocolLiteralExpression", start)
	return n
}

func (p *Parser) parseReference() Node {
	start := p.startSpan()
	p.advance() // '@ref'
	p.expect(token.ParenL, " after \"@ref\"")
	id := p.parseIdentifier()
	p.expect(token.ParenR, " to close \"@ref\"")
	n := &ast.Reference{Element: id}
	p.finishNode(n, &n.BaseNode, "Reference", start)
	return n
}

func (p *Parser) parseDereference() Node {
	start := p.startSpan()
	p.advance() // '@deref'
	p.expect(token.ParenL, " after \"@deref\"")
	expr := p.parseExpression(false)
	p.expect(token.ParenR, " to close \"@deref\"")
	n := &ast.Dereference{Expr: expr}
	p.finishNode(n, &n.BaseNode, "Dereference", start)
	return n
}

// parseObjJArrayLiteral reads `@[a, b, c]` (spec §4.9).
func (p *Parser) parseObjJArrayLiteral() Node {
	start := p.startSpan()
	p.advance() // '@['
	var elements []Node
	for !p.at(token.BracketR) {
		elements = append(elements, p.parseAssignment(false))
		if p.at(token.Comma) {
			p.advance()
			if p.opts.AllowTrailingCommas && p.at(token.BracketR) {
				break
			}
			continue
		}
		break
	}
	p.expect(token.BracketR, " to close \"@[\"")
	n := &ast.ArrayLiteral{Elements: elements}
	p.finishNode(n, &n.BaseNode, "ArrayLiteral", start)
	return n
}

// parseDictionaryLiteral reads `@{key: value, ...}` (spec §4.9).
func (p *Parser) parseDictionaryLiteral() Node {
	start := p.startSpan()
	p.advance() // '@{'
	var keys, values []Node
	for !p.at(token.BraceR) {
		keys = append(keys, p.parseAssignment(false))
		p.expect(token.Colon, " in dictionary literal")
		values = append(values, p.parseAssignment(false))
		if p.at(token.Comma) {
			p.advance()
			if p.opts.AllowTrailingCommas && p.at(token.BraceR) {
				break
			}
			continue
		}
		break
	}
	p.expect(token.BraceR, " to close \"@{\"")
	n := &ast.DictionaryLiteral{Keys: keys, Values: values}
	p.finishNode(n, &n.BaseNode, "DictionaryLiteral", start)
	return n
}

// parseMessageSendExpression finishes a `[receiver sel1:arg1 sel2:arg2]`
// expression whose receiver was already read as latch.object by
// parseBracketAtom (spec §4.8 "Message-send disambiguation"). `super` as
// the bare receiver is recorded via SuperReceiver instead of Object, per
// spec §3's MessageSendExpression shape.
func (p *Parser) parseMessageSendExpression(latch *messageSendLatch) Node {
	var object Node
	superReceiver := false
	if id, ok := latch.object.(*ast.Identifier); ok && id.Name == "super" {
		superReceiver = true
	} else {
		object = latch.object
	}

	var selectors []*ast.Identifier
	var params []Node
	for {
		if p.cur.Type == token.Name || (p.cur.Type != nil && p.cur.Type.OkAsIdent) {
			sel := p.parseIdentifier()
			selectors = append(selectors, sel)
			if p.at(token.Colon) {
				p.advance()
				params = append(params, p.parseAssignment(false))
				if p.cur.Type == token.Name || (p.cur.Type != nil && p.cur.Type.OkAsIdent) {
					continue
				}
			}
		}
		break
	}
	p.expect(token.BracketR, " to close message send")

	n := &ast.MessageSendExpression{
		Object: object, SuperReceiver: superReceiver, Selectors: selectors, Parameters: params,
	}
	p.finishNode(n, &n.BaseNode, "MessageSendExpression", latch.start)
	return n
}
