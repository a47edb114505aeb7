// Package ast defines the AST node types this module produces (spec §3
// "AST Node"). Nodes follow the Mozilla Parser API shape — a flat `type`
// tag plus type-specific fields — rather than the teacher's NodeVisitor
// dispatch interface (parser/node.go in the teacher repo), because spec §1
// places the AST-walker utility out of scope as a black-box consumer: there
// is no internal evaluator here that needs double-dispatch, only producers
// (the parser) and external readers (the walker, JSON serializer, neither
// of which this module owns).
package ast

import "github.com/objj-lang/objjparse/token"

// Loc is the {start, end} line/column pair attached to a node when
// Options.Locations is set (spec §6 "locations").
type Loc struct {
	Start token.Loc
	End   token.Loc
}

// Node is implemented by every AST node. Consumers type-switch on
// NodeType() the way a Mozilla Parser API consumer switches on `node.type`.
type Node interface {
	NodeType() string
	Span() (start, end int)
}

// BaseNode carries the fields every node shares (spec §3's common AST node
// shape). Embedded by value in every concrete node type.
type BaseNode struct {
	Kind  string `json:"type"`
	Start int    `json:"start"`
	End   int    `json:"end"`

	Loc   *Loc   `json:"loc,omitempty"`
	Range *[2]int `json:"range,omitempty"`

	CommentsBefore []token.Comment `json:"commentsBefore,omitempty"`
	CommentsAfter  []token.Comment `json:"commentsAfter,omitempty"`
	SpacesBefore   []token.Space   `json:"spacesBefore,omitempty"`
	SpacesAfter    []token.Space   `json:"spacesAfter,omitempty"`
}

func (b *BaseNode) NodeType() string { return b.Kind }
func (b *BaseNode) Span() (int, int) { return b.Start, b.End }

func (b *BaseNode) GetCommentsBefore() []token.Comment  { return b.CommentsBefore }
func (b *BaseNode) SetCommentsBefore(c []token.Comment) { b.CommentsBefore = c }
func (b *BaseNode) GetCommentsAfter() []token.Comment   { return b.CommentsAfter }
func (b *BaseNode) SetCommentsAfter(c []token.Comment)  { b.CommentsAfter = c }

// TriviaCarrier is implemented by every node (via the promoted BaseNode
// methods above) so the parser's trivia-attribution pass (spec §4.10, C10)
// can read and reassign comment ownership without a type switch over every
// concrete node type.
type TriviaCarrier interface {
	Node
	GetCommentsBefore() []token.Comment
	SetCommentsBefore([]token.Comment)
	GetCommentsAfter() []token.Comment
	SetCommentsAfter([]token.Comment)
}

// Program is the root node a parse produces (spec §4.8 "parseTopLevel"),
// or the seed AST passed via Options.Program to which new top-level
// statements are appended.
type Program struct {
	BaseNode
	Body []Node `json:"body"`
}

func NewProgram() *Program {
	return &Program{BaseNode: BaseNode{Kind: "Program"}}
}
