package parser

import (
	"github.com/objj-lang/objjparse/ast"
	"github.com/objj-lang/objjparse/token"
)

// recordLeadingTrivia stashes tok's leading comments/spaces, keyed by its
// start offset, as tok becomes p.cur (spec §4.10 "commentsBefore: trivia
// since previous token"). A node beginning at that same offset later
// claims them in claimLeadingTrivia, without needing every parse* call
// site to capture trivia itself at the moment it records start.
func (p *Parser) recordLeadingTrivia(tok token.Token) {
	if len(tok.CommentsBefore) > 0 {
		p.pendingLeadingComments[tok.Start] = tok.CommentsBefore
	}
	if len(tok.SpacesBefore) > 0 {
		p.pendingLeadingSpaces[tok.Start] = tok.SpacesBefore
	}
}

// claimLeadingTrivia attaches any comments/spaces recorded for start to
// base, evicting whichever previously finished node last claimed the same
// start. Mirrors bubbleTrivia's commentsAfter rule but on the leading
// side: multiple nodes can share a start offset (an Identifier, the
// expression wrapping it, and the statement wrapping that), and since
// parsing finishes inner nodes before outer ones, the last node to claim
// a given start is always the most enclosing one — exactly the node
// spec §4.10 wants holding commentsBefore once parsing of that position
// is done.
func (p *Parser) claimLeadingTrivia(base *ast.BaseNode, start int) {
	if p.opts.TrackComments {
		if c := p.pendingLeadingComments[start]; len(c) > 0 {
			base.CommentsBefore = c
		}
	}
	if p.opts.TrackSpaces {
		if s := p.pendingLeadingSpaces[start]; len(s) > 0 {
			base.SpacesBefore = s
		}
	}
	if base.CommentsBefore == nil && base.SpacesBefore == nil {
		return
	}
	if prev, ok := p.leadingClaimant[start]; ok && prev != nil && prev != base {
		prev.CommentsBefore = nil
		prev.SpacesBefore = nil
	}
	p.leadingClaimant[start] = base
}

// bubbleTrivia attaches trailing trivia to a just-finished node and
// resolves ownership against the previously finished node, implementing
// spec §4.10's rule: "trailing trivia from the last consumed token attaches
// to the node ... unless a more deeply nested completed node ending at the
// same offset already claimed them; in that case ownership bubbles up and
// the inner node's property is deleted." Here "bubbling up" means the
// enclosing node (finished second, since parsing completes children before
// parents) evicts the inner node's claim when both end at the same offset.
func (p *Parser) bubbleTrivia(node Node, base *ast.BaseNode) {
	if p.opts.TrackComments && len(p.cur.CommentsBefore) > 0 {
		base.CommentsAfter = p.cur.CommentsBefore
	}
	if p.opts.TrackSpaces && len(p.cur.SpacesBefore) > 0 {
		base.SpacesAfter = p.cur.SpacesBefore
	}
	if prev, ok := p.state.lastFinished.(ast.TriviaCarrier); ok && prev != nil {
		_, prevEnd := prev.Span()
		if prevEnd == base.End {
			if len(prev.GetCommentsAfter()) > 0 {
				prev.SetCommentsAfter(nil)
			}
		}
	}
}
