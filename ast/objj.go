package ast

// This file holds the Objective-J node types spec §3 adds on top of the
// Mozilla Parser API (component C9, spec §4.9), named exactly as spec §3
// enumerates them.

// ObjectiveJType is the type grammar spec §4.8 describes: `void`, `id`
// (optionally `< protocol, protocol >`), an integer family (`signed` /
// `unsigned`, `char|byte|short|int` with up to two `long`s), or a class
// name identifier (TypeIsClass true).
type ObjectiveJType struct {
	BaseNode
	Name       string   `json:"name"`
	TypeIsClass bool    `json:"typeIsClass"`
	Protocols  []string `json:"protocols,omitempty"`
}

// ObjectiveJActionType wraps a method's declared return type when it is
// written `(@action)` or `(@action TypeName)` (spec §4.8 "optional
// parenthesized return type (possibly @action)").
type ObjectiveJActionType struct {
	BaseNode
	ReturnType *ObjectiveJType `json:"returnType,omitempty"`
}

// IvarDeclaration is one instance-variable line inside a `{ ... }` ivar
// block: a type, a name, and an optional @accessors(...) clause.
type IvarDeclaration struct {
	BaseNode
	IvarType    *ObjectiveJType `json:"ivarType"`
	ID          *Identifier     `json:"id"`
	Outlet      bool            `json:"outlet"`
	Accessors   *AccessorSpec   `json:"accessors,omitempty"`
}

// AccessorSpec captures @accessors(property=..., getter=..., setter=...,
// readwrite|readonly, copy) (spec §4.8 "Ivar declarations").
type AccessorSpec struct {
	Property string `json:"property,omitempty"`
	Getter   string `json:"getter,omitempty"`
	Setter   string `json:"setter,omitempty"`
	ReadOnly bool   `json:"readonly"`
	Copy     bool   `json:"copy"`
}

// MethodDeclarationStatement is one `+`/`-` method inside an
// @implementation/@interface/@protocol body.
type MethodDeclarationStatement struct {
	BaseNode
	ClassMethod bool                  `json:"classMethod"`
	ReturnType  *ObjectiveJActionType `json:"returnType,omitempty"`
	Selectors   []*Identifier         `json:"selectors"`
	Params      []*MethodParam        `json:"params"`
	Variadic    bool                  `json:"variadic"`
	Body        *BlockStatement       `json:"body,omitempty"`
}

// MethodParam is one `keyword:(Type)name` fragment of a method selector.
type MethodParam struct {
	BaseNode
	ParamType *ObjectiveJType `json:"paramType,omitempty"`
	ID        *Identifier     `json:"id"`
}

// ClassDeclarationStatement is `@implementation Name : Super <Protocols> { ivars } ... @end`.
type ClassDeclarationStatement struct {
	BaseNode
	ID         *Identifier `json:"id"`
	SuperClass *Identifier `json:"superClass,omitempty"`
	Category   string      `json:"category,omitempty"`
	Protocols  []string    `json:"protocols,omitempty"`
	Ivars      []*IvarDeclaration `json:"ivars,omitempty"`
	Body       []Node      `json:"body"`
}

// InterfaceDeclarationStatement is `@interface Name : Super <Protocols> { ivars } ... @end`.
type InterfaceDeclarationStatement struct {
	BaseNode
	ID         *Identifier        `json:"id"`
	SuperClass *Identifier        `json:"superClass,omitempty"`
	Category   string             `json:"category,omitempty"`
	Protocols  []string           `json:"protocols,omitempty"`
	Ivars      []*IvarDeclaration `json:"ivars,omitempty"`
	Body       []Node             `json:"body"`
}

// ProtocolDeclarationStatement is `@protocol Name <Protocols> ... @end`,
// with method declarations partitioned by @optional/@required.
type ProtocolDeclarationStatement struct {
	BaseNode
	ID            *Identifier                    `json:"id"`
	Protocols     []string                       `json:"protocols,omitempty"`
	RequiredBody  []*MethodDeclarationStatement  `json:"requiredBody"`
	OptionalBody  []*MethodDeclarationStatement  `json:"optionalBody"`
}

// MessageSendExpression is `[receiver sel1:arg1 sel2:arg2]` (spec §4.8
// "Message-send disambiguation"). SuperReceiver is set instead of Object
// when the receiver identifier is `super`.
type MessageSendExpression struct {
	BaseNode
	Object        Node          `json:"object,omitempty"`
	SuperReceiver bool          `json:"superReceiver"`
	Selectors     []*Identifier `json:"selectors"`
	Parameters    []Node        `json:"parameters"`
}

// SelectorLiteralExpression is `@selector(name:name2:)`.
type SelectorLiteralExpression struct {
	BaseNode
	Selector string `json:"selector"`
}

// ProtocolLiteralExpression is `@protocol(Name)`.
type ProtocolLiteralExpression struct {
	BaseNode
	ID *Identifier `json:"id"`
}

// Reference is `@ref(name)`.
type Reference struct {
	BaseNode
	Element *Identifier `json:"element"`
}

// Dereference is `@deref(expr)`.
type Dereference struct {
	BaseNode
	Expr Node `json:"expr"`
}

// ImportStatement is `@import "path"` or `@import <framework/File.j>`.
// Either LocalPath or Framework is set, never both.
type ImportStatement struct {
	BaseNode
	LocalPath string `json:"localPath,omitempty"`
	Framework string `json:"framework,omitempty"`
}

// ArrayLiteral is `@[a, b, c]`.
type ArrayLiteral struct {
	BaseNode
	Elements []Node `json:"elements"`
}

// DictionaryLiteral is `@{key: value, ...}`.
type DictionaryLiteral struct {
	BaseNode
	Keys   []Node `json:"keys"`
	Values []Node `json:"values"`
}

// ClassStatement is `@class Name1, Name2;` — a forward declaration.
type ClassStatement struct {
	BaseNode
	IDs []*Identifier `json:"ids"`
}

// GlobalStatement is `@global Name1, Name2;`.
type GlobalStatement struct {
	BaseNode
	IDs []*Identifier `json:"ids"`
}

// DefinedExpression surfaces a `#if`/`#elif` "defined X" test reached a
// statement position — only possible if a macro expansion splices a bare
// "defined(...)" into the token stream outside of a directive; kept as a
// distinct node type per spec §3's enumeration rather than folded into
// CallExpression, so a downstream consumer can distinguish it unambiguously.
type DefinedExpression struct {
	BaseNode
	Name string `json:"name"`
}
