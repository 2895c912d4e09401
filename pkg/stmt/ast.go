// Package stmt classifies source statements and splits program text.
// Expressions are kept as raw text; only statement structure is parsed here.
package stmt

// Kind enumerates the statement forms.
type Kind int

const (
	KindEmpty Kind = iota
	KindAssignment
	KindIf
	KindWhile
	KindFor
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindAssignment:
		return "assignment"
	case KindIf:
		return "if"
	case KindWhile:
		return "while"
	case KindFor:
		return "for"
	}
	return "unknown"
}

// Stmt is the interface for all statements
type Stmt interface {
	Kind() Kind
}

// Empty is a blank statement or a comment line
type Empty struct{}

// Assignment is `Target = Expr`
type Assignment struct {
	Target string
	Expr   string
}

// If is `if (Cond) { Then } else { Else }`
type If struct {
	Cond    string
	Then    []Stmt
	Else    []Stmt
	HasElse bool
}

// While is `while (Cond) { Body }`
type While struct {
	Cond string
	Body []Stmt
}

// For is `for (Init; Cond; Update) { Body }`. An empty Cond loops forever.
type For struct {
	Init   Stmt
	Cond   string
	Update Stmt
	Body   []Stmt
}

func (Empty) Kind() Kind      { return KindEmpty }
func (Assignment) Kind() Kind { return KindAssignment }
func (If) Kind() Kind         { return KindIf }
func (While) Kind() Kind      { return KindWhile }
func (For) Kind() Kind        { return KindFor }

// Source is one top-level statement and the line it starts on.
type Source struct {
	Text string
	Line int
}
