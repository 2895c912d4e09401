package tac

import (
	"fmt"
	"io"
	"strings"
)

// Printer outputs TAC programs in textual form
type Printer struct {
	w io.Writer
	// Indent prefixes every non-label instruction with two spaces.
	Indent bool
}

// NewPrinter creates a new TAC printer
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// PrintProgram prints one instruction per line
func (p *Printer) PrintProgram(prog *Program) {
	for _, inst := range prog.Code {
		p.PrintInstruction(inst)
	}
}

// PrintInstruction prints a single instruction followed by a newline
func (p *Printer) PrintInstruction(inst Instruction) {
	if _, isLabel := inst.(Label); p.Indent && !isLabel {
		fmt.Fprint(p.w, "  ")
	}
	fmt.Fprintln(p.w, inst.String())
}

const rule = "--------------------------------------------------"

// PrintSummary prints the source listing, the generated code and the
// instruction count.
func (p *Printer) PrintSummary(source []string, prog *Program) {
	banner := strings.Repeat("=", len(rule))
	fmt.Fprintln(p.w, banner)
	fmt.Fprintln(p.w, "Three Address Code (TAC) Generator")
	fmt.Fprintln(p.w, banner)
	fmt.Fprintln(p.w)

	fmt.Fprintln(p.w, "Input Code:")
	fmt.Fprintln(p.w, rule)
	for _, line := range source {
		fmt.Fprintln(p.w, strings.TrimSpace(line))
	}
	fmt.Fprintln(p.w)

	fmt.Fprintln(p.w, "Generated Three Address Code:")
	fmt.Fprintln(p.w, rule)
	p.PrintProgram(prog)
	fmt.Fprintln(p.w)

	fmt.Fprintln(p.w, banner)
	fmt.Fprintf(p.w, "Total Instructions: %d\n", prog.Len())
	fmt.Fprintln(p.w, banner)
}
