// Package expr orders expression tokens for evaluation.
// ToPostfix runs a shunting-yard pass over lexer tokens and yields a typed
// postfix sequence of operands and operators.
package expr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/raymyers/ralph-tac/pkg/lexer"
	"github.com/raymyers/ralph-tac/pkg/tac"
)

var (
	ErrUnbalancedParens = errors.New("unbalanced parentheses")
	ErrUnknownOperator  = errors.New("unknown operator")
)

// Error carries the position of a resolution failure.
type Error struct {
	Err    error
	Column int
	Token  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("col %d: %v %q", e.Column, e.Err, e.Token)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Options controls parenthesis checking.
type Options struct {
	// Lenient ignores a ')' without a matching '(' and drops unclosed '('.
	Lenient bool
}

// ItemKind distinguishes operands from operators in a postfix sequence.
type ItemKind int

const (
	ItemOperand ItemKind = iota
	ItemOperator
)

// Item is one element of a postfix sequence.
type Item struct {
	Kind    ItemKind
	Operand tac.ValueRef // valid when Kind == ItemOperand
	Op      Operator     // valid when Kind == ItemOperator
	Column  int
}

func (it Item) String() string {
	if it.Kind == ItemOperator {
		return it.Op.String()
	}
	return it.Operand.String()
}

// Format renders a postfix sequence separated by spaces.
func Format(items []Item) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.String()
	}
	return strings.Join(parts, " ")
}

// stackEntry is either a pending operator or an open parenthesis.
type stackEntry struct {
	op     Operator
	paren  bool
	column int
}

// resolver holds state for one shunting-yard pass
type resolver struct {
	opts   Options
	output []Item
	stack  []stackEntry
}

// ToPostfix converts infix tokens to evaluation order.
func ToPostfix(tokens []lexer.Token, opts Options) ([]Item, error) {
	r := &resolver{opts: opts, output: []Item{}}
	for i, tok := range tokens {
		var err error
		switch {
		case tok.IsOperand():
			r.output = append(r.output, operandItem(tok))
		case tok.Type == lexer.TokenLParen:
			r.stack = append(r.stack, stackEntry{paren: true, column: tok.Column})
		case tok.Type == lexer.TokenRParen:
			err = r.closeParen(tok)
		default:
			err = r.pushOperator(tok, isPrefixPosition(tokens, i))
		}
		if err != nil {
			return nil, err
		}
	}

	for len(r.stack) > 0 {
		top := r.pop()
		if top.paren {
			if r.opts.Lenient {
				continue
			}
			return nil, &Error{Err: ErrUnbalancedParens, Column: top.column, Token: "("}
		}
		r.emit(top)
	}
	return r.output, nil
}

// isPrefixPosition reports whether the token at i starts an operand:
// it is first, or follows an operator or '('.
func isPrefixPosition(tokens []lexer.Token, i int) bool {
	if i == 0 {
		return true
	}
	prev := tokens[i-1].Type
	return prev == lexer.TokenLParen || prev.IsOperator()
}

func operandItem(tok lexer.Token) Item {
	ref := tac.Var(tok.Literal)
	if tok.Type == lexer.TokenNumber {
		ref = tac.Const(tok.Literal)
	}
	return Item{Kind: ItemOperand, Operand: ref, Column: tok.Column}
}

func (r *resolver) pushOperator(tok lexer.Token, prefix bool) error {
	op, ok := LookupOperator(tok.Type, prefix)
	if !ok && prefix {
		// '*' at the start of an expression and the like: read as binary and
		// let the emitter report the missing operand.
		op, ok = LookupOperator(tok.Type, false)
	}
	if !ok {
		return &Error{Err: ErrUnknownOperator, Column: tok.Column, Token: tok.Literal}
	}

	for len(r.stack) > 0 {
		top := r.stack[len(r.stack)-1]
		if top.paren {
			break
		}
		if top.op.Precedence() > op.Precedence() ||
			(top.op.Precedence() == op.Precedence() && !op.RightAssoc()) {
			r.emit(r.pop())
			continue
		}
		break
	}
	r.stack = append(r.stack, stackEntry{op: op, column: tok.Column})
	return nil
}

func (r *resolver) closeParen(tok lexer.Token) error {
	for len(r.stack) > 0 {
		top := r.pop()
		if top.paren {
			return nil
		}
		r.emit(top)
	}
	if r.opts.Lenient {
		return nil
	}
	return &Error{Err: ErrUnbalancedParens, Column: tok.Column, Token: ")"}
}

func (r *resolver) pop() stackEntry {
	top := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	return top
}

func (r *resolver) emit(e stackEntry) {
	r.output = append(r.output, Item{Kind: ItemOperator, Op: e.op, Column: e.column})
}
