// Package tac defines the three-address code representation.
// A Program is a flat, append-only list of instructions; every instruction
// has at most one operator and writes at most one destination.
package tac

import "fmt"

// RefKind classifies what a ValueRef names.
type RefKind int

const (
	RefVar   RefKind = iota // source-level variable
	RefConst                // literal constant
	RefTemp                 // compiler-generated temporary
)

func (k RefKind) String() string {
	switch k {
	case RefVar:
		return "var"
	case RefConst:
		return "const"
	case RefTemp:
		return "temp"
	}
	return "unknown"
}

// ValueRef is an operand name. It never owns storage.
type ValueRef struct {
	Kind RefKind
	Name string
}

// Var returns a reference to a source variable.
func Var(name string) ValueRef { return ValueRef{Kind: RefVar, Name: name} }

// Const returns a reference to a literal.
func Const(lit string) ValueRef { return ValueRef{Kind: RefConst, Name: lit} }

// Temp returns a reference to a temporary.
func Temp(name string) ValueRef { return ValueRef{Kind: RefTemp, Name: name} }

func (v ValueRef) String() string {
	return v.Name
}

// Instruction is the interface for TAC instructions
type Instruction interface {
	fmt.Stringer
	implTACInstruction()
}

// Copy assigns a value: dest = src
type Copy struct {
	Dest ValueRef
	Src  ValueRef
}

// Binary applies a binary operator: dest = left op right
type Binary struct {
	Dest  ValueRef
	Op    string
	Left  ValueRef
	Right ValueRef
}

// Unary applies a prefix operator: dest = op operand
type Unary struct {
	Dest    ValueRef
	Op      string
	Operand ValueRef
}

// Label marks a jump target
type Label struct {
	Name string
}

// Goto is an unconditional jump
type Goto struct {
	Target string
}

// IfGoto jumps when Cond is true
type IfGoto struct {
	Cond   ValueRef
	Target string
}

// IfFalseGoto jumps when Cond is false
type IfFalseGoto struct {
	Cond   ValueRef
	Target string
}

func (Copy) implTACInstruction()        {}
func (Binary) implTACInstruction()      {}
func (Unary) implTACInstruction()       {}
func (Label) implTACInstruction()       {}
func (Goto) implTACInstruction()        {}
func (IfGoto) implTACInstruction()      {}
func (IfFalseGoto) implTACInstruction() {}

func (i Copy) String() string {
	return fmt.Sprintf("%s = %s", i.Dest, i.Src)
}

func (i Binary) String() string {
	return fmt.Sprintf("%s = %s %s %s", i.Dest, i.Left, i.Op, i.Right)
}

func (i Unary) String() string {
	return fmt.Sprintf("%s = %s%s", i.Dest, i.Op, i.Operand)
}

func (i Label) String() string {
	return i.Name + ":"
}

func (i Goto) String() string {
	return "goto " + i.Target
}

func (i IfGoto) String() string {
	return fmt.Sprintf("if %s goto %s", i.Cond, i.Target)
}

func (i IfFalseGoto) String() string {
	return fmt.Sprintf("ifFalse %s goto %s", i.Cond, i.Target)
}

// Dest returns the value written by inst, if any.
func Dest(inst Instruction) (ValueRef, bool) {
	switch i := inst.(type) {
	case Copy:
		return i.Dest, true
	case Binary:
		return i.Dest, true
	case Unary:
		return i.Dest, true
	}
	return ValueRef{}, false
}

// Uses returns the operands read by inst, in source order.
func Uses(inst Instruction) []ValueRef {
	switch i := inst.(type) {
	case Copy:
		return []ValueRef{i.Src}
	case Binary:
		return []ValueRef{i.Left, i.Right}
	case Unary:
		return []ValueRef{i.Operand}
	case IfGoto:
		return []ValueRef{i.Cond}
	case IfFalseGoto:
		return []ValueRef{i.Cond}
	}
	return nil
}

// IsControl reports whether inst is a label or a jump.
func IsControl(inst Instruction) bool {
	switch inst.(type) {
	case Label, Goto, IfGoto, IfFalseGoto:
		return true
	}
	return false
}

// Program is an ordered instruction sequence. Order is execution order.
type Program struct {
	Code []Instruction
}

// NewProgram creates an empty program
func NewProgram() *Program {
	return &Program{Code: []Instruction{}}
}

// Append adds an instruction to the end of the program
func (p *Program) Append(inst Instruction) {
	p.Code = append(p.Code, inst)
}

// Len returns the number of instructions.
func (p *Program) Len() int {
	return len(p.Code)
}

// Truncate drops every instruction at index n or later.
// It is only used to discard the output of a statement that failed.
func (p *Program) Truncate(n int) {
	if n < 0 || n >= len(p.Code) {
		return
	}
	p.Code = p.Code[:n]
}

// Lines renders each instruction in its textual form.
func (p *Program) Lines() []string {
	lines := make([]string, len(p.Code))
	for i, inst := range p.Code {
		lines[i] = inst.String()
	}
	return lines
}

// Labels returns all labels defined in the program, in order.
func (p *Program) Labels() []string {
	var labels []string
	for _, inst := range p.Code {
		if l, ok := inst.(Label); ok {
			labels = append(labels, l.Name)
		}
	}
	return labels
}

// ReferencedLabels returns all labels used as jump targets, without duplicates.
func (p *Program) ReferencedLabels() []string {
	seen := make(map[string]bool)
	var labels []string
	add := func(l string) {
		if !seen[l] {
			seen[l] = true
			labels = append(labels, l)
		}
	}
	for _, inst := range p.Code {
		switch i := inst.(type) {
		case Goto:
			add(i.Target)
		case IfGoto:
			add(i.Target)
		case IfFalseGoto:
			add(i.Target)
		}
	}
	return labels
}
