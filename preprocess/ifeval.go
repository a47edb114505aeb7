package preprocess

import (
	"fmt"
	"strconv"

	"github.com/objj-lang/objjparse/token"
)

// evalIfExpr reads and evaluates a #if/#elif constant expression (spec
// §4.5, component C5). "defined X" / "defined(X)" is resolved before
// macro expansion (its operand must not itself be macro-expanded); the
// remaining tokens are then macro-expanded exactly once and folded with a
// small precedence-climbing evaluator reusing token.Type.Binop.
func (p *Preprocessor) evalIfExpr() (int64, error) {
	raw := p.directiveLine()
	resolved, err := resolveDefined(raw, p.Macros)
	if err != nil {
		return 0, err
	}
	expanded := expandTokenSlice(resolved, p.Macros)
	if len(expanded) == 0 {
		return 0, fmt.Errorf("#if with no expression")
	}
	ev := &ifEvaluator{toks: expanded}
	val, err := ev.parseExpr(token.PrecLogicalOr)
	if err != nil {
		return 0, err
	}
	if ev.pos != len(ev.toks) {
		return 0, fmt.Errorf("unexpected token in #if expression: %q", ev.toks[ev.pos].Literal())
	}
	return val, nil
}

// resolveDefined replaces every "defined X" / "defined ( X )" form with a
// literal 0/1 numeric token, leaving everything else untouched for the
// subsequent macro-expansion pass (spec §4.5 "defined").
func resolveDefined(toks []token.Token, macros *MacroTable) ([]token.Token, error) {
	out := make([]token.Token, 0, len(toks))
	for i := 0; i < len(toks); i++ {
		if toks[i].Type != token.KwDefined {
			out = append(out, toks[i])
			continue
		}
		i++
		if i >= len(toks) {
			return nil, fmt.Errorf("operator \"defined\" requires an identifier")
		}
		parenWrapped := toks[i].Type == token.ParenL
		if parenWrapped {
			i++
		}
		if i >= len(toks) || toks[i].Type != token.Name {
			return nil, fmt.Errorf("operator \"defined\" requires an identifier")
		}
		name, _ := toks[i].Value.(string)
		if parenWrapped {
			i++
			if i >= len(toks) || toks[i].Type != token.ParenR {
				return nil, fmt.Errorf("missing ')' after \"defined\"")
			}
		}
		val := float64(0)
		if macros.IsDefined(name) {
			val = 1
		}
		out = append(out, token.Token{Type: token.Num, Value: val})
	}
	return out, nil
}

// ifEvaluator is a small recursive-descent evaluator over an already
// macro-expanded token slice, folding constants as it parses (spec §4.5
// "operators: unary ! ~ - +, binary by the same precedence table the
// expression parser uses, with && and || short-circuiting").
type ifEvaluator struct {
	toks []token.Token
	pos  int
}

func (e *ifEvaluator) cur() token.Token {
	if e.pos >= len(e.toks) {
		return token.Token{Type: token.EOF}
	}
	return e.toks[e.pos]
}

func (e *ifEvaluator) parseExpr(minPrec int) (int64, error) {
	left, err := e.parseUnary()
	if err != nil {
		return 0, err
	}
	for {
		tok := e.cur()
		if tok.Type == nil || tok.Type.Binop == token.PrecNone || tok.Type.Binop < minPrec {
			return left, nil
		}
		op := tok
		prec := op.Type.Binop
		e.pos++
		if op.Type == token.LogicalAnd && left == 0 {
			if _, err := e.parseExpr(prec + 1); err != nil {
				return 0, err
			}
			left = 0
			continue
		}
		if op.Type == token.LogicalOr && left != 0 {
			if _, err := e.parseExpr(prec + 1); err != nil {
				return 0, err
			}
			left = 1
			continue
		}
		right, err := e.parseExpr(prec + 1)
		if err != nil {
			return 0, err
		}
		left, err = applyBinop(op, left, right)
		if err != nil {
			return 0, err
		}
	}
}

func (e *ifEvaluator) parseUnary() (int64, error) {
	tok := e.cur()
	switch {
	case tok.Type == token.PlusMin && tok.Literal() == "-":
		e.pos++
		v, err := e.parseUnary()
		return -v, err
	case tok.Type == token.PlusMin && tok.Literal() == "+":
		e.pos++
		return e.parseUnary()
	case tok.Type == token.Prefix && tok.Literal() == "!":
		e.pos++
		v, err := e.parseUnary()
		if err != nil {
			return 0, err
		}
		if v == 0 {
			return 1, nil
		}
		return 0, nil
	case tok.Type == token.Prefix && tok.Literal() == "~":
		e.pos++
		v, err := e.parseUnary()
		return ^v, err
	default:
		return e.parseAtom()
	}
}

func (e *ifEvaluator) parseAtom() (int64, error) {
	tok := e.cur()
	switch tok.Type {
	case token.ParenL:
		e.pos++
		v, err := e.parseExpr(token.PrecLogicalOr)
		if err != nil {
			return 0, err
		}
		if e.cur().Type != token.ParenR {
			return 0, fmt.Errorf("missing ')' in #if expression")
		}
		e.pos++
		return v, nil
	case token.Num:
		e.pos++
		return numTokenToInt(tok), nil
	case token.StringLit:
		// GNU cpp accepted string atoms evaluate as nonzero-length-truthy
		// (spec §4.5 Open Question, resolved for compatibility with the
		// historical Objective-J preprocessor rather than strict ISO C).
		e.pos++
		if s, _ := tok.Value.(string); s != "" {
			return 1, nil
		}
		return 0, nil
	case token.Name:
		// An identifier that survived macro expansion (i.e. it is not a
		// macro, or expanded to itself) evaluates to 0 (spec §4.5).
		e.pos++
		return 0, nil
	default:
		return 0, fmt.Errorf("token is not valid in preprocessor expressions: %q", tok.Literal())
	}
}

func numTokenToInt(tok token.Token) int64 {
	switch v := tok.Value.(type) {
	case float64:
		return int64(v)
	case string:
		n, _ := strconv.ParseInt(v, 0, 64)
		return n
	default:
		return 0
	}
}

func applyBinop(op token.Token, l, r int64) (int64, error) {
	switch op.Literal() {
	case "&&":
		return boolInt(l != 0 && r != 0), nil
	case "||":
		return boolInt(l != 0 || r != 0), nil
	case "|":
		return l | r, nil
	case "^":
		return l ^ r, nil
	case "&":
		return l & r, nil
	case "==":
		return boolInt(l == r), nil
	case "!=":
		return boolInt(l != r), nil
	case "===":
		return boolInt(l == r), nil
	case "!==":
		return boolInt(l != r), nil
	case "<":
		return boolInt(l < r), nil
	case ">":
		return boolInt(l > r), nil
	case "<=":
		return boolInt(l <= r), nil
	case ">=":
		return boolInt(l >= r), nil
	case "<<":
		return l << uint(r), nil
	case ">>", ">>>":
		return l >> uint(r), nil
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		if r == 0 {
			return 0, fmt.Errorf("division by zero in #if expression")
		}
		return l / r, nil
	case "%":
		if r == 0 {
			return 0, fmt.Errorf("division by zero in #if expression")
		}
		return l % r, nil
	default:
		return 0, fmt.Errorf("operator %q is not valid in a constant expression", op.Literal())
	}
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
