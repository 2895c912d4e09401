// Package tacgen translates statements into three-address code.
// A Translator owns the temporary and label counters, the instruction
// stream and the symbol table of one compilation unit; none of them are
// reset while it is in use. A Translator is not safe for concurrent use,
// but independent Translators share nothing.
package tacgen

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/raymyers/ralph-tac/pkg/expr"
	"github.com/raymyers/ralph-tac/pkg/lexer"
	"github.com/raymyers/ralph-tac/pkg/stmt"
	"github.com/raymyers/ralph-tac/pkg/tac"
)

// ExprHook observes each expression after tokenizing and ordering.
type ExprHook func(src string, tokens []lexer.Token, postfix []expr.Item)

// Options configures a Translator
type Options struct {
	// Lenient skips unknown characters and unmatched parentheses
	// instead of reporting them.
	Lenient       bool
	CommentMarker string
	TempPrefix    string
	LabelPrefix   string
	Logger        *slog.Logger
	ExprHook      ExprHook
}

// DefaultOptions returns strict options with t<n> temporaries and L<n> labels.
func DefaultOptions() Options {
	return Options{
		CommentMarker: stmt.DefaultCommentMarker,
		TempPrefix:    "t",
		LabelPrefix:   "L",
	}
}

// Translator holds the state of one translation run
type Translator struct {
	opts      Options
	log       *slog.Logger
	parser    stmt.Parser
	nextTemp  int // next temporary number (temps start at 1)
	nextLabel int // next label number (labels start at 1)
	prog      *tac.Program
	symbols   *SymbolTable
}

// New creates a Translator. Empty prefixes fall back to the defaults.
func New(opts Options) *Translator {
	def := DefaultOptions()
	if opts.TempPrefix == "" {
		opts.TempPrefix = def.TempPrefix
	}
	if opts.LabelPrefix == "" {
		opts.LabelPrefix = def.LabelPrefix
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Translator{
		opts:      opts,
		log:       logger,
		parser:    stmt.Parser{CommentMarker: opts.CommentMarker},
		nextTemp:  1,
		nextLabel: 1,
		prog:      tac.NewProgram(),
		symbols:   NewSymbolTable(),
	}
}

// Program returns the instructions emitted so far.
func (t *Translator) Program() *tac.Program {
	return t.prog
}

// Lines returns the emitted instructions in textual form.
func (t *Translator) Lines() []string {
	return t.prog.Lines()
}

// Symbols returns the variables seen so far.
func (t *Translator) Symbols() *SymbolTable {
	return t.symbols
}

func (t *Translator) newTemp() tac.ValueRef {
	name := fmt.Sprintf("%s%d", t.opts.TempPrefix, t.nextTemp)
	t.nextTemp++
	return tac.Temp(name)
}

func (t *Translator) newLabel() string {
	name := fmt.Sprintf("%s%d", t.opts.LabelPrefix, t.nextLabel)
	t.nextLabel++
	return name
}

func (t *Translator) emit(inst tac.Instruction) {
	t.prog.Append(inst)
}

// Translate parses and lowers one statement. If it fails, nothing the
// statement emitted or recorded is kept; counters are not rewound.
func (t *Translator) Translate(src string) error {
	return t.translateAt(src, 0)
}

func (t *Translator) translateAt(src string, line int) error {
	s, err := t.parser.Parse(src)
	if err == nil {
		progMark, symMark := t.prog.Len(), t.symbols.mark()
		if err = t.Lower(s); err != nil {
			t.prog.Truncate(progMark)
			t.symbols.rollback(symMark)
		}
	}
	if err != nil {
		t.log.Debug("statement failed", "line", line, "kind", ErrorKind(err), "err", err)
		return &StmtError{Line: line, Source: src, Err: err}
	}
	return nil
}

// TranslateAll translates an ordered list of statement strings and returns
// the full instruction listing. A failing statement is reported and skipped;
// the rest are still translated.
func (t *Translator) TranslateAll(stmts []string) ([]string, []error) {
	var errs []error
	for i, src := range stmts {
		if err := t.translateAt(src, i+1); err != nil {
			errs = append(errs, err)
		}
	}
	return t.Lines(), errs
}

// TranslateSource splits program text into statements and translates each.
// Errors carry the line each failing statement starts on.
func (t *Translator) TranslateSource(src string) []error {
	var errs []error
	for _, s := range stmt.Split(src, t.opts.CommentMarker) {
		if err := t.translateAt(s.Text, s.Line); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// StmtError reports a statement that could not be translated.
type StmtError struct {
	Line   int // 0 when unknown
	Source string
	Err    error
}

func (e *StmtError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s: %v", e.Line, ErrorKind(e.Err), e.Err)
	}
	return fmt.Sprintf("%s: %v", ErrorKind(e.Err), e.Err)
}

// Kind names the class of the underlying error.
func (e *StmtError) Kind() string {
	return ErrorKind(e.Err)
}

func (e *StmtError) Unwrap() error {
	return e.Err
}

// ErrorKind names the class of a translation error.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, lexer.ErrLex):
		return "LexError"
	case errors.Is(err, expr.ErrUnbalancedParens):
		return "UnbalancedParenthesesError"
	case errors.Is(err, expr.ErrUnknownOperator):
		return "UnknownOperatorError"
	case errors.Is(err, ErrEmptyExpression):
		return "EmptyExpressionError"
	case errors.Is(err, ErrMalformedExpression):
		return "MalformedExpressionError"
	case errors.Is(err, ErrInvalidAssignTarget):
		return "InvalidAssignTargetError"
	case errors.Is(err, ErrReservedName):
		return "ReservedNameError"
	case errors.Is(err, stmt.ErrUnknownStatement):
		return "UnknownStatementError"
	case errors.Is(err, stmt.ErrMalformedStatement):
		return "MalformedStatementError"
	}
	return "Error"
}
