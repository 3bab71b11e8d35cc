// Package sema implements the scope analyzer: it walks the AST produced by
// the frontend to enumerate variables per scope, assign stack slot
// offsets, intern string constants, and validate the semantic invariants
// the code generator relies on.
//
// The analyzer is rebuilt fresh for each subroutine body and for the main
// program; nothing here is retained across compilations.
package sema

import "toycc/src/frontend"

const bytesPerSlot = 8
const paramOffsetStart = 2 // skip saved rbp (rbp+0) and return address (rbp+8)

// Scope maps variable names to their rbp-relative byte offset for one
// activation record (either the main program's frame or one subroutine's).
type Scope struct {
	Offsets map[string]int
	// Order lists the names that get a slot below rbp (globals, or a
	// subroutine's non-parameter locals) in first-appearance order. The
	// code generator uses it to size the frame, zero the slots and emit the
	// "variable layout" comment block.
	Order []string
}

// offsetOf looks up a name's slot; ok is false if name is not in scope.
func (s *Scope) offsetOf(name string) (int, bool) {
	off, ok := s.Offsets[name]
	return off, ok
}

// Offset returns name's rbp-relative offset. The caller must have already
// validated that name is defined in this scope.
func (s *Scope) Offset(name string) int {
	off, _ := s.offsetOf(name)
	return off
}

// BuildGlobalScope collects every variable touched by top-level code
// (excluding subroutine bodies) and assigns each a slot at
// rbp-(8*(i+1)), i being 0-based first-appearance order.
func BuildGlobalScope(prog *frontend.Program) *Scope {
	order := collectVars(prog.TopLevel, false)
	offsets := make(map[string]int, len(order))
	for i1, name := range order {
		offsets[name] = -((i1 + 1) * bytesPerSlot)
	}
	return &Scope{Offsets: offsets, Order: order}
}

// BuildSubScope collects a subroutine's local variables (its body's
// variables minus its parameters) and combines them with parameter
// offsets: parameter j lives at rbp+16+8*j, and the i-th local lives at
// rbp-(8*(i+1)).
func BuildSubScope(sub *frontend.SubDef) *Scope {
	params := make(map[string]bool, len(sub.Params))
	for _, p := range sub.Params {
		params[p] = true
	}

	all := collectVars(sub.Body, true)
	var locals []string
	for _, name := range all {
		if !params[name] {
			locals = append(locals, name)
		}
	}

	offsets := make(map[string]int, len(sub.Params)+len(locals))
	for i1, p := range sub.Params {
		offsets[p] = (i1+paramOffsetStart)*bytesPerSlot
	}
	for i1, name := range locals {
		offsets[name] = -((i1 + 1) * bytesPerSlot)
	}
	return &Scope{Offsets: offsets, Order: locals}
}

// LocalCount returns the number of stack slots BuildSubScope reserves for
// locals (parameters are already on the caller's stack, not counted here).
func (s *Scope) LocalCount() int {
	return len(s.Order)
}

// collectVars walks every statement reachable from stmts (including
// nested if/while blocks), recording the first appearance of each name on
// the left side of an assignment or as a read. When insideSub is false,
// top-level SubDef statements are skipped entirely (their bodies belong to
// a disjoint scope); when true, stmts is itself already a subroutine body.
func collectVars(stmts []frontend.Stmt, insideSub bool) []string {
	seen := map[string]bool{}
	var order []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			order = append(order, name)
		}
	}

	var walkStmt func(frontend.Stmt)
	var walkExpr func(frontend.Expr)

	walkExpr = func(e frontend.Expr) {
		switch n := e.(type) {
		case *frontend.IntLiteral, *frontend.StringLiteral:
			// No variables.
		case *frontend.Variable:
			add(n.Name)
		case *frontend.Binary:
			walkExpr(n.Left)
			walkExpr(n.Right)
		case *frontend.Unary:
			walkExpr(n.Operand)
		case *frontend.Call:
			for _, a := range n.Args {
				walkExpr(a)
			}
		}
	}

	walkStmt = func(s frontend.Stmt) {
		switch n := s.(type) {
		case *frontend.Assign:
			add(n.Name)
			walkExpr(n.Value)
		case *frontend.Print:
			walkExpr(n.Value)
		case *frontend.If:
			walkExpr(n.Cond)
			for _, s1 := range n.Then {
				walkStmt(s1)
			}
			for _, s1 := range n.Else {
				walkStmt(s1)
			}
		case *frontend.While:
			walkExpr(n.Cond)
			for _, s1 := range n.Body {
				walkStmt(s1)
			}
		case *frontend.Return:
			if n.Value != nil {
				walkExpr(n.Value)
			}
		case *frontend.ExprStmt:
			walkExpr(n.Call)
		case *frontend.SubDef:
			// Subroutine bodies are a disjoint scope; never pulled into
			// the enclosing scan. This branch is only reached when
			// insideSub scans a nested SubDef, which the parser already
			// rejects — skip it here regardless.
		case *frontend.Break, *frontend.Continue:
			// No variables.
		}
	}

	for _, s := range stmts {
		if _, ok := s.(*frontend.SubDef); ok && !insideSub {
			continue
		}
		walkStmt(s)
	}
	return order
}
