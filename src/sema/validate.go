package sema

import (
	"fmt"

	"toycc/src/diag"
	"toycc/src/frontend"
)

// SubSignatures maps a subroutine name to its declared parameter count.
type SubSignatures map[string]int

// CollectSubs gathers every top-level SubDef's signature. Redeclaration is
// not rejected here: the last definition of a duplicate name wins, mirroring
// how a single assembler label would simply be redefined. Validate does not
// need to special-case it because real Toy programs never redeclare.
func CollectSubs(prog *frontend.Program) SubSignatures {
	sigs := SubSignatures{}
	for _, s := range prog.TopLevel {
		if sub, ok := s.(*frontend.SubDef); ok {
			sigs[sub.Name] = len(sub.Params)
		}
	}
	return sigs
}

// Validate walks the whole program and reports the first semantic error
// found, in program order: an out-of-place return/break/continue, a call to
// an undeclared subroutine, an arity mismatch, or a string literal used
// outside of print.
func Validate(prog *frontend.Program) error {
	subs := CollectSubs(prog)
	v := &validator{subs: subs}
	return v.walkStmts(prog.TopLevel, false, 0)
}

type validator struct {
	subs SubSignatures
}

func (v *validator) walkStmts(stmts []frontend.Stmt, insideSub bool, loopDepth int) error {
	for _, s := range stmts {
		if err := v.walkStmt(s, insideSub, loopDepth); err != nil {
			return err
		}
	}
	return nil
}

func (v *validator) walkStmt(s frontend.Stmt, insideSub bool, loopDepth int) error {
	switch n := s.(type) {
	case *frontend.Assign:
		return v.walkExpr(n.Value, false)
	case *frontend.Print:
		return v.walkExpr(n.Value, true)
	case *frontend.If:
		if err := v.walkExpr(n.Cond, false); err != nil {
			return err
		}
		if err := v.walkStmts(n.Then, insideSub, loopDepth); err != nil {
			return err
		}
		return v.walkStmts(n.Else, insideSub, loopDepth)
	case *frontend.While:
		if err := v.walkExpr(n.Cond, false); err != nil {
			return err
		}
		return v.walkStmts(n.Body, insideSub, loopDepth+1)
	case *frontend.Break:
		if loopDepth == 0 {
			return &diag.CompileError{Pos: n.P, Kind: diag.BreakOutsideLoop}
		}
	case *frontend.Continue:
		if loopDepth == 0 {
			return &diag.CompileError{Pos: n.P, Kind: diag.ContinueOutsideLoop}
		}
	case *frontend.Return:
		if !insideSub {
			return &diag.CompileError{Pos: n.P, Kind: diag.ReturnOutsideSub}
		}
		if n.Value != nil {
			return v.walkExpr(n.Value, false)
		}
	case *frontend.ExprStmt:
		return v.walkExpr(n.Call, false)
	case *frontend.SubDef:
		return v.walkStmts(n.Body, true, 0)
	}
	return nil
}

// walkExpr validates e. stringAllowed is false everywhere except directly
// as a Print's value; a StringLiteral reached with stringAllowed false is a
// semantic error.
func (v *validator) walkExpr(e frontend.Expr, stringAllowed bool) error {
	switch n := e.(type) {
	case *frontend.StringLiteral:
		if !stringAllowed {
			return &diag.CompileError{Pos: n.P, Kind: diag.StringOutsidePrint}
		}
	case *frontend.IntLiteral, *frontend.Variable:
		// Always valid.
	case *frontend.Binary:
		if err := v.walkExpr(n.Left, false); err != nil {
			return err
		}
		return v.walkExpr(n.Right, false)
	case *frontend.Unary:
		return v.walkExpr(n.Operand, false)
	case *frontend.Call:
		arity, ok := v.subs[n.Name]
		if !ok {
			return &diag.CompileError{Pos: n.P, Kind: diag.UndefinedSub, Detail: n.Name}
		}
		if arity != len(n.Args) {
			return &diag.CompileError{
				Pos:    n.P,
				Kind:   diag.ArityMismatch,
				Detail: fmt.Sprintf("%s expects %d argument(s), got %d", n.Name, arity, len(n.Args)),
			}
		}
		for _, a := range n.Args {
			if err := v.walkExpr(a, false); err != nil {
				return err
			}
		}
	}
	return nil
}
