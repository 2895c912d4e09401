package stmt

import (
	"fmt"
	"io"
	"strings"
)

// Printer outputs statements in a normalized, indented form
type Printer struct {
	w      io.Writer
	indent int
}

// NewPrinter creates a new statement printer
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, indent: 0}
}

func (p *Printer) writeIndent() {
	fmt.Fprint(p.w, strings.Repeat("  ", p.indent))
}

// PrintStmt prints a statement followed by a newline
func (p *Printer) PrintStmt(s Stmt) {
	p.writeIndent()
	switch st := s.(type) {
	case Empty:
		fmt.Fprintln(p.w, ";")
	case Assignment:
		fmt.Fprintf(p.w, "%s = %s;\n", st.Target, st.Expr)
	case If:
		fmt.Fprintf(p.w, "if (%s) ", st.Cond)
		p.printBlock(st.Then)
		if st.HasElse {
			p.writeIndent()
			fmt.Fprint(p.w, "else ")
			p.printBlock(st.Else)
		}
	case While:
		fmt.Fprintf(p.w, "while (%s) ", st.Cond)
		p.printBlock(st.Body)
	case For:
		fmt.Fprintf(p.w, "for (%s; %s; %s) ", inline(st.Init), st.Cond, inline(st.Update))
		p.printBlock(st.Body)
	default:
		fmt.Fprintf(p.w, "/* unknown statement %T */\n", s)
	}
}

func (p *Printer) printBlock(stmts []Stmt) {
	fmt.Fprintln(p.w, "{")
	p.indent++
	for _, s := range stmts {
		p.PrintStmt(s)
	}
	p.indent--
	p.writeIndent()
	fmt.Fprintln(p.w, "}")
}

// inline renders a for-header clause without the trailing semicolon.
func inline(s Stmt) string {
	if a, ok := s.(Assignment); ok {
		return a.Target + " = " + a.Expr
	}
	return ""
}
