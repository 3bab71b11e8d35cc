// Package x86 lowers a validated Toy program to freestanding x86-64 Linux
// assembly in NASM syntax. It assumes sema.Validate has already accepted
// the program: undefined subroutines, arity mismatches, misplaced
// return/break/continue and stray string literals are not re-checked here.
package x86

import (
	"fmt"

	"toycc/src/backend/asm"
	"toycc/src/frontend"
	"toycc/src/sema"
	"toycc/src/util"
)

// Generator lowers one program to one assembly text. It is not reused
// across compiles.
type Generator struct {
	w       *asm.Writer
	labels  *util.Minter
	loops   *util.Stack
	scope   *sema.Scope
	strings *sema.StringTable
}

// loopCtx is pushed onto the loop-context stack for the duration of a
// While's body, giving Break and Continue their jump targets.
type loopCtx struct {
	headLabel string
	endLabel  string
}

// Generate lowers prog to a complete NASM source text.
func Generate(prog *frontend.Program) string {
	g := &Generator{
		w:       asm.NewWriter(),
		labels:  util.NewMinter(),
		loops:   &util.Stack{},
		strings: sema.CollectStrings(prog),
	}

	g.w.Global("_start")
	g.w.Extern("print_int", "print_newline")

	for id, text := range g.strings.Entries() {
		g.w.DataString(g.strings.Label(id), text)
	}

	g.scope = sema.BuildGlobalScope(prog)
	g.emitMain(prog)
	g.emitSubroutines(prog)

	return g.w.Render()
}

// emitMain emits the _start entry point: prologue, zeroed globals, the
// program's non-subroutine statements in order, and the exit syscall.
func (g *Generator) emitMain(prog *frontend.Program) {
	g.w.Label("_start")
	g.w.Ins1("push", "rbp")
	g.w.Ins2("mov", "rbp", "rsp")
	if n := len(g.scope.Order); n > 0 {
		g.w.Ins2("sub", "rsp", fmt.Sprintf("%d", 8*n))
	}
	g.emitVariableLayoutComment(g.scope)
	g.zeroSlots(g.scope)

	for _, s := range prog.TopLevel {
		if _, ok := s.(*frontend.SubDef); ok {
			continue
		}
		g.emitStmt(s)
	}

	g.w.Ins2("mov", "rsp", "rbp")
	g.w.Ins1("pop", "rbp")
	g.w.Ins2("mov", "rax", "60")
	g.w.Ins2("xor", "rdi", "rdi")
	g.w.Ins0("syscall")
}

// zeroSlots emits a "mov qword [rbp+off], 0" for every slot in scope, in
// first-appearance order, matching the invariant that every declared
// variable reads as 0 before its first assignment.
func (g *Generator) zeroSlots(scope *sema.Scope) {
	for _, name := range scope.Order {
		g.w.Ins2("mov", "qword "+g.operand(scope, name), "0")
	}
}

func (g *Generator) emitVariableLayoutComment(scope *sema.Scope) {
	for _, name := range scope.Order {
		g.w.Comment("%s = %s", g.operand(scope, name), name)
	}
}

// operand returns the memory operand for a variable, resolved against the
// scope currently being generated.
func (g *Generator) operand(scope *sema.Scope, name string) string {
	off := scope.Offset(name)
	if off >= 0 {
		return fmt.Sprintf("[rbp+%d]", off)
	}
	return fmt.Sprintf("[rbp%d]", off)
}

// emitStmt dispatches a single statement to its lowering.
func (g *Generator) emitStmt(s frontend.Stmt) {
	switch n := s.(type) {
	case *frontend.Assign:
		g.emitExpr(n.Value)
		g.w.Ins2("mov", g.operand(g.scope, n.Name), "rax")
	case *frontend.Print:
		g.emitPrint(n)
	case *frontend.If:
		g.emitIf(n)
	case *frontend.While:
		g.emitWhile(n)
	case *frontend.Break:
		g.emitBreak(n)
	case *frontend.Continue:
		g.emitContinue(n)
	case *frontend.Return:
		g.emitReturn(n)
	case *frontend.ExprStmt:
		g.emitExpr(n.Call)
	case *frontend.SubDef:
		// Subroutines are only ever reached from top level and are
		// skipped there in favor of emitSubroutines; a validated program
		// never nests one inside another statement list.
	}
}
