package condition

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/arthur-debert/iconrules/pkg/errors"
)

type tokKind uint8

const (
	tokIdent tokKind = iota
	tokNot
	tokAnd
	tokOr
	tokLParen
	tokRParen
)

type tok struct {
	kind tokKind
	val  string
	pos  int
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '-' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func tokenize(s string) ([]tok, error) {
	var out []tok
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '!':
			out = append(out, tok{kind: tokNot, pos: i})
			i++
		case c == '&':
			out = append(out, tok{kind: tokAnd, pos: i})
			i++
			if i < len(s) && s[i] == '&' {
				i++
			}
		case c == '|':
			out = append(out, tok{kind: tokOr, pos: i})
			i++
			if i < len(s) && s[i] == '|' {
				i++
			}
		case c == '(':
			out = append(out, tok{kind: tokLParen, pos: i})
			i++
		case c == ')':
			out = append(out, tok{kind: tokRParen, pos: i})
			i++
		case isIdentByte(c):
			start := i
			for i < len(s) && isIdentByte(s[i]) {
				i++
			}
			word := s[start:i]
			switch strings.ToLower(word) {
			case "not":
				out = append(out, tok{kind: tokNot, pos: start})
			case "and":
				out = append(out, tok{kind: tokAnd, pos: start})
			case "or":
				out = append(out, tok{kind: tokOr, pos: start})
			default:
				out = append(out, tok{kind: tokIdent, val: word, pos: start})
			}
		default:
			return nil, errors.Newf(errors.ErrConditionInvalid,
				"unexpected character %q at offset %d in condition %q", c, i, s).
				WithDetail("condition", s).
				WithDetail("position", i)
		}
	}
	return out, nil
}

func prec(k tokKind) int {
	switch k {
	case tokNot:
		return 3
	case tokAnd:
		return 2
	case tokOr:
		return 1
	default:
		return 0
	}
}

func isOp(k tokKind) bool {
	return k == tokNot || k == tokAnd || k == tokOr
}

// toRPN runs the shunting-yard algorithm. It also checks that operands and
// binary operators alternate, which catches "a b", "a &", "& a" and "()".
func toRPN(ts []tok) ([]tok, error) {
	var out, st []tok
	expectOperand := true

	for _, t := range ts {
		switch t.kind {
		case tokIdent:
			if !expectOperand {
				return nil, fmt.Errorf("missing operator before %q at offset %d", t.val, t.pos)
			}
			out = append(out, t)
			expectOperand = false
		case tokNot:
			if !expectOperand {
				return nil, fmt.Errorf("unexpected negation at offset %d", t.pos)
			}
			// prefix and right-associative: nothing to pop
			st = append(st, t)
		case tokAnd, tokOr:
			if expectOperand {
				return nil, fmt.Errorf("missing operand before operator at offset %d", t.pos)
			}
			for len(st) > 0 && isOp(st[len(st)-1].kind) && prec(st[len(st)-1].kind) >= prec(t.kind) {
				out = append(out, st[len(st)-1])
				st = st[:len(st)-1]
			}
			st = append(st, t)
			expectOperand = true
		case tokLParen:
			if !expectOperand {
				return nil, fmt.Errorf("missing operator before '(' at offset %d", t.pos)
			}
			st = append(st, t)
		case tokRParen:
			if expectOperand {
				return nil, fmt.Errorf("missing operand before ')' at offset %d", t.pos)
			}
			for len(st) > 0 && st[len(st)-1].kind != tokLParen {
				out = append(out, st[len(st)-1])
				st = st[:len(st)-1]
			}
			if len(st) == 0 {
				return nil, fmt.Errorf("unbalanced ')' at offset %d", t.pos)
			}
			st = st[:len(st)-1]
		}
	}

	if expectOperand {
		return nil, stderrors.New("condition ends with an operator")
	}
	for len(st) > 0 {
		top := st[len(st)-1]
		if top.kind == tokLParen {
			return nil, fmt.Errorf("unbalanced '(' at offset %d", top.pos)
		}
		out = append(out, top)
		st = st[:len(st)-1]
	}
	return out, nil
}

func build(rpn []tok) (node, error) {
	var st []node
	pop := func() node {
		n := st[len(st)-1]
		st = st[:len(st)-1]
		return n
	}

	for _, t := range rpn {
		switch t.kind {
		case tokIdent:
			st = append(st, atomNode{name: t.val})
		case tokNot:
			if len(st) < 1 {
				return nil, stderrors.New("stack underflow: not")
			}
			st = append(st, notNode{x: pop()})
		case tokAnd:
			if len(st) < 2 {
				return nil, stderrors.New("stack underflow: and")
			}
			r, l := pop(), pop()
			st = append(st, andNode{l: l, r: r})
		case tokOr:
			if len(st) < 2 {
				return nil, stderrors.New("stack underflow: or")
			}
			r, l := pop(), pop()
			st = append(st, orNode{l: l, r: r})
		}
	}

	if len(st) != 1 {
		return nil, stderrors.New("malformed condition")
	}
	return st[0], nil
}
