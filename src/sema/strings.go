package sema

import (
	"fmt"

	"toycc/src/frontend"
)

// StringTable interns string literals in first-appearance order, assigning
// each a stable integer id used to mint its data-section label.
type StringTable struct {
	order []string
	index map[string]int
}

// NewStringTable returns an empty table.
func NewStringTable() *StringTable {
	return &StringTable{index: map[string]int{}}
}

// Intern records s if it has not been seen before and returns its id.
func (t *StringTable) Intern(s string) int {
	if id, ok := t.index[s]; ok {
		return id
	}
	id := len(t.order)
	t.index[s] = id
	t.order = append(t.order, s)
	return id
}

// Label returns the data-section label for the string with the given id.
func (t *StringTable) Label(id int) string {
	return fmt.Sprintf("const.%d", id)
}

// Entries returns the interned strings in first-appearance order.
func (t *StringTable) Entries() []string {
	return t.order
}

// CollectStrings walks the entire program, including every subroutine
// body, and interns the text of every Print statement's string literal.
// String literals are rejected everywhere else by Validate, so this is the
// only place string constants originate.
func CollectStrings(prog *frontend.Program) *StringTable {
	t := NewStringTable()
	var walk func([]frontend.Stmt)
	walk = func(stmts []frontend.Stmt) {
		for _, s := range stmts {
			switch n := s.(type) {
			case *frontend.Print:
				if lit, ok := n.Value.(*frontend.StringLiteral); ok {
					t.Intern(lit.Text)
				}
			case *frontend.If:
				walk(n.Then)
				walk(n.Else)
			case *frontend.While:
				walk(n.Body)
			case *frontend.SubDef:
				walk(n.Body)
			}
		}
	}
	walk(prog.TopLevel)
	return t
}
