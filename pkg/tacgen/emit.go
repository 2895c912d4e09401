package tacgen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/raymyers/ralph-tac/pkg/expr"
	"github.com/raymyers/ralph-tac/pkg/lexer"
	"github.com/raymyers/ralph-tac/pkg/tac"
)

var (
	ErrEmptyExpression     = errors.New("empty expression")
	ErrMalformedExpression = errors.New("malformed expression")
	ErrInvalidAssignTarget = errors.New("invalid assignment target")
	ErrReservedName        = errors.New("reserved name")
)

// TranslateExpr tokenizes, orders and emits src. With a non-empty target
// the value is stored there and the target is returned.
// Error columns count from the start of src, which errors quote.
func (t *Translator) TranslateExpr(src, target string) (tac.ValueRef, error) {
	ref, err := t.translateExpr(src, target)
	if err != nil {
		return tac.ValueRef{}, fmt.Errorf("expression %q: %w", src, err)
	}
	return ref, nil
}

func (t *Translator) translateExpr(src, target string) (tac.ValueRef, error) {
	tokens, err := lexer.Tokenize(src, lexer.Options{Lenient: t.opts.Lenient})
	if err != nil {
		return tac.ValueRef{}, err
	}
	items, err := expr.ToPostfix(tokens, expr.Options{Lenient: t.opts.Lenient})
	if err != nil {
		return tac.ValueRef{}, err
	}
	if t.opts.ExprHook != nil {
		t.opts.ExprHook(src, tokens, items)
	}
	return t.EmitPostfix(items, target)
}

// EmitPostfix evaluates a postfix sequence on a value stack, emitting one
// instruction per operator. The last operator writes straight into target
// when one is given, so `z = x + y` costs a single instruction.
func (t *Translator) EmitPostfix(items []expr.Item, target string) (tac.ValueRef, error) {
	if target != "" {
		if err := t.checkName(target); err != nil {
			return tac.ValueRef{}, err
		}
	}
	lastOp := -1
	for i, it := range items {
		switch {
		case it.Kind == expr.ItemOperator:
			lastOp = i
		case it.Operand.Kind == tac.RefVar:
			if err := t.checkName(it.Operand.Name); err != nil {
				return tac.ValueRef{}, fmt.Errorf("col %d: %w", it.Column, err)
			}
		}
	}

	var stack []tac.ValueRef
	pop := func() tac.ValueRef {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return v
	}

	elided := false
	dest := func(i int) tac.ValueRef {
		if i == lastOp && target != "" {
			elided = true
			return tac.Var(target)
		}
		return t.newTemp()
	}

	for i, it := range items {
		if it.Kind == expr.ItemOperand {
			if it.Operand.Kind == tac.RefVar {
				t.symbols.Add(it.Operand.Name)
			}
			stack = append(stack, it.Operand)
			continue
		}

		op := it.Op
		if len(stack) < op.Arity() {
			return tac.ValueRef{}, fmt.Errorf("%w: col %d: %s needs %d operand(s)",
				ErrMalformedExpression, it.Column, op, op.Arity())
		}

		switch {
		case op.IsUnary():
			operand := pop()
			d := dest(i)
			t.emit(tac.Unary{Dest: d, Op: op.Symbol(), Operand: operand})
			stack = append(stack, d)
		case op == expr.OpAssign:
			right := pop()
			left := pop()
			if left.Kind != tac.RefVar {
				return tac.ValueRef{}, fmt.Errorf("%w: col %d: cannot assign to %s %q",
					ErrInvalidAssignTarget, it.Column, left.Kind, left.Name)
			}
			t.emit(tac.Copy{Dest: left, Src: right})
			stack = append(stack, left)
		default:
			right := pop()
			left := pop()
			d := dest(i)
			t.emit(tac.Binary{Dest: d, Op: op.Symbol(), Left: left, Right: right})
			stack = append(stack, d)
		}
	}

	switch len(stack) {
	case 0:
		return tac.ValueRef{}, ErrEmptyExpression
	case 1:
	default:
		return tac.ValueRef{}, fmt.Errorf("%w: %d values left over", ErrMalformedExpression, len(stack))
	}

	result := stack[0]
	if target != "" {
		t.symbols.Add(target)
		if !elided {
			t.emit(tac.Copy{Dest: tac.Var(target), Src: result})
			result = tac.Var(target)
		}
	}
	return result, nil
}

// checkName rejects source variables spelled like a generated temporary or
// label, so emitted names never alias user variables.
func (t *Translator) checkName(name string) error {
	for _, prefix := range []string{t.opts.TempPrefix, t.opts.LabelPrefix} {
		digits, ok := strings.CutPrefix(name, prefix)
		if ok && digits != "" && strings.Trim(digits, "0123456789") == "" {
			return fmt.Errorf("%w: %q looks like a generated name (prefix %q)", ErrReservedName, name, prefix)
		}
	}
	return nil
}
