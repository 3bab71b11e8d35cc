package x86

import (
	"fmt"

	"toycc/src/frontend"
	"toycc/src/sema"
)

// emitSubroutines emits every top-level SubDef, in source order, after
// main's exit syscall so straight-line execution can never fall into a
// subroutine body.
func (g *Generator) emitSubroutines(prog *frontend.Program) {
	for _, s := range prog.TopLevel {
		sub, ok := s.(*frontend.SubDef)
		if !ok {
			continue
		}
		g.emitSubroutine(sub)
	}
}

func (g *Generator) emitSubroutine(sub *frontend.SubDef) {
	g.w.Blank()
	g.w.Label(sub.Name)
	g.w.Ins1("push", "rbp")
	g.w.Ins2("mov", "rbp", "rsp")

	scope := sema.BuildSubScope(sub)
	if n := scope.LocalCount(); n > 0 {
		g.w.Ins2("sub", "rsp", fmt.Sprintf("%d", 8*n))
	}
	g.emitVariableLayoutComment(scope)

	prevScope := g.scope
	g.scope = scope
	g.zeroSlots(scope)
	for _, s := range sub.Body {
		g.emitStmt(s)
	}
	g.scope = prevScope

	if !endsInReturn(sub.Body) {
		g.w.Ins2("xor", "rax", "rax")
		g.w.Ins2("mov", "rsp", "rbp")
		g.w.Ins1("pop", "rbp")
		g.w.Ins0("ret")
	}
}

// endsInReturn reports whether the last statement of body is a Return,
// making a fallthrough epilogue after it dead code.
func endsInReturn(body []frontend.Stmt) bool {
	if len(body) == 0 {
		return false
	}
	_, ok := body[len(body)-1].(*frontend.Return)
	return ok
}

func (g *Generator) emitReturn(n *frontend.Return) {
	if n.Value != nil {
		g.emitExpr(n.Value)
	} else {
		g.w.Ins2("xor", "rax", "rax")
	}
	g.w.Ins2("mov", "rsp", "rbp")
	g.w.Ins1("pop", "rbp")
	g.w.Ins0("ret")
}
