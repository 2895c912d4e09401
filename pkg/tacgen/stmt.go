package tacgen

import (
	"fmt"

	"github.com/raymyers/ralph-tac/pkg/stmt"
	"github.com/raymyers/ralph-tac/pkg/tac"
)

// Lower emits the instructions for one statement. Every construct
// allocates its own labels.
func (t *Translator) Lower(s stmt.Stmt) error {
	if s == nil {
		return nil
	}
	before := t.prog.Len()
	var err error
	switch st := s.(type) {
	case stmt.Empty:
		return nil
	case stmt.Assignment:
		_, err = t.TranslateExpr(st.Expr, st.Target)
	case stmt.If:
		err = t.lowerIf(st)
	case stmt.While:
		err = t.lowerWhile(st)
	case stmt.For:
		err = t.lowerFor(st)
	default:
		return fmt.Errorf("%w: %T", stmt.ErrUnknownStatement, s)
	}
	if err != nil {
		return err
	}
	t.log.Debug("lowered statement", "kind", s.Kind().String(), "instructions", t.prog.Len()-before)
	return nil
}

func (t *Translator) lowerBlock(stmts []stmt.Stmt) error {
	for _, s := range stmts {
		if err := t.Lower(s); err != nil {
			return err
		}
	}
	return nil
}

// lowerIf emits
//
//	<cond>
//	if cond goto Lfalse
//	<then>
//	goto Lend        (only with else)
//	Lfalse:
//	<else>
//	Lend:            (only with else)
func (t *Translator) lowerIf(s stmt.If) error {
	cond, err := t.TranslateExpr(s.Cond, "")
	if err != nil {
		return err
	}
	lfalse := t.newLabel()
	var lend string
	if s.HasElse {
		lend = t.newLabel()
	}

	t.emit(tac.IfGoto{Cond: cond, Target: lfalse})
	if err := t.lowerBlock(s.Then); err != nil {
		return err
	}
	if !s.HasElse {
		t.emit(tac.Label{Name: lfalse})
		return nil
	}

	t.emit(tac.Goto{Target: lend})
	t.emit(tac.Label{Name: lfalse})
	if err := t.lowerBlock(s.Else); err != nil {
		return err
	}
	t.emit(tac.Label{Name: lend})
	return nil
}

// lowerWhile emits
//
//	Lbegin:
//	<cond>
//	ifFalse cond goto Lend
//	<body>
//	goto Lbegin
//	Lend:
func (t *Translator) lowerWhile(s stmt.While) error {
	return t.lowerLoop(s.Cond, false, s.Body, nil)
}

// lowerFor runs init once, then loops like while with update appended to
// the body. An empty condition emits no exit test.
func (t *Translator) lowerFor(s stmt.For) error {
	if err := t.Lower(s.Init); err != nil {
		return err
	}
	return t.lowerLoop(s.Cond, true, s.Body, s.Update)
}

func (t *Translator) lowerLoop(condSrc string, condOptional bool, body []stmt.Stmt, update stmt.Stmt) error {
	lbegin := t.newLabel()
	lend := t.newLabel()

	t.emit(tac.Label{Name: lbegin})
	if condSrc != "" || !condOptional {
		cond, err := t.TranslateExpr(condSrc, "")
		if err != nil {
			return err
		}
		t.emit(tac.IfFalseGoto{Cond: cond, Target: lend})
	}
	if err := t.lowerBlock(body); err != nil {
		return err
	}
	if err := t.Lower(update); err != nil {
		return err
	}
	t.emit(tac.Goto{Target: lbegin})
	t.emit(tac.Label{Name: lend})
	return nil
}
