package tacgen

import "sort"

// SymbolTable records every variable name seen during translation:
// assignment targets and identifier operands. It never affects emission.
type SymbolTable struct {
	seen  map[string]bool
	order []string // insertion order, for rollback
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{seen: make(map[string]bool)}
}

// Add records name. Adding a name twice has no effect.
func (s *SymbolTable) Add(name string) {
	if s.seen[name] {
		return
	}
	s.seen[name] = true
	s.order = append(s.order, name)
}

// Contains reports whether name has been recorded.
func (s *SymbolTable) Contains(name string) bool {
	return s.seen[name]
}

// Len returns the number of distinct names.
func (s *SymbolTable) Len() int {
	return len(s.order)
}

// Names returns the recorded names in sorted order.
func (s *SymbolTable) Names() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	sort.Strings(names)
	return names
}

// mark returns a position that rollback can return to.
func (s *SymbolTable) mark() int {
	return len(s.order)
}

// rollback forgets every name added after mark.
func (s *SymbolTable) rollback(mark int) {
	for _, name := range s.order[mark:] {
		delete(s.seen, name)
	}
	s.order = s.order[:mark]
}
