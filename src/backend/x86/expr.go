package x86

import (
	"fmt"

	"toycc/src/frontend"
)

// emitExpr lowers e, leaving its 64-bit result in rax.
func (g *Generator) emitExpr(e frontend.Expr) {
	switch n := e.(type) {
	case *frontend.IntLiteral:
		g.w.Ins2("mov", "rax", fmt.Sprintf("%d", n.Value))
	case *frontend.Variable:
		g.w.Ins2("mov", "rax", g.operand(g.scope, n.Name))
	case *frontend.Binary:
		g.emitBinary(n)
	case *frontend.Unary:
		g.emitUnary(n)
	case *frontend.Call:
		g.emitCall(n)
	case *frontend.StringLiteral:
		// Reached only from Print, which handles it directly; never
		// lowered as a value-producing expression.
	}
}

var setccByOp = map[frontend.BinOp]string{
	frontend.OpEq: "sete",
	frontend.OpNe: "setne",
	frontend.OpLt: "setl",
	frontend.OpLe: "setle",
	frontend.OpGt: "setg",
	frontend.OpGe: "setge",
}

func (g *Generator) emitBinary(n *frontend.Binary) {
	switch n.Op {
	case frontend.OpAdd, frontend.OpSub, frontend.OpMul, frontend.OpDiv:
		g.emitArith(n)
	case frontend.OpEq, frontend.OpNe, frontend.OpLt, frontend.OpLe, frontend.OpGt, frontend.OpGe:
		g.emitCompare(n)
	case frontend.OpAnd:
		g.emitAnd(n)
	case frontend.OpOr:
		g.emitOr(n)
	}
}

// emitArith evaluates left then right, left surviving a push/pop across
// the right-hand evaluation since both share the rax accumulator.
func (g *Generator) emitArith(n *frontend.Binary) {
	g.emitExpr(n.Left)
	g.w.Ins1("push", "rax")
	g.emitExpr(n.Right)
	g.w.Ins2("mov", "rbx", "rax")
	g.w.Ins1("pop", "rax")
	switch n.Op {
	case frontend.OpAdd:
		g.w.Ins2("add", "rax", "rbx")
	case frontend.OpSub:
		g.w.Ins2("sub", "rax", "rbx")
	case frontend.OpMul:
		g.w.Ins2("imul", "rax", "rbx")
	case frontend.OpDiv:
		g.w.Ins0("cqo")
		g.w.Ins1("idiv", "rbx")
	}
}

func (g *Generator) emitCompare(n *frontend.Binary) {
	g.emitExpr(n.Left)
	g.w.Ins1("push", "rax")
	g.emitExpr(n.Right)
	g.w.Ins2("mov", "rbx", "rax")
	g.w.Ins1("pop", "rax")
	g.w.Ins2("cmp", "rax", "rbx")
	g.w.Ins1(setccByOp[n.Op], "al")
	g.w.Ins2("movzx", "rax", "al")
}

// emitAnd lowers a short-circuit &&: the right operand is only evaluated
// when the left is truthy, and the result is always normalized to 0 or 1.
func (g *Generator) emitAnd(n *frontend.Binary) {
	end := g.labels.NewLabel("sc")
	g.emitExpr(n.Left)
	g.w.Ins2("test", "rax", "rax")
	g.w.Ins1("jz", end)
	g.emitExpr(n.Right)
	g.w.Ins2("test", "rax", "rax")
	g.w.Ins1("setnz", "al")
	g.w.Ins2("movzx", "rax", "al")
	g.w.Label(end)
}

// emitOr lowers a short-circuit ||: the right operand is only evaluated
// when the left is falsy.
func (g *Generator) emitOr(n *frontend.Binary) {
	evalRight := g.labels.NewLabel("sc")
	end := g.labels.NewLabel("sc")
	g.emitExpr(n.Left)
	g.w.Ins2("test", "rax", "rax")
	g.w.Ins1("jz", evalRight)
	g.w.Ins2("mov", "rax", "1")
	g.w.Ins1("jmp", end)
	g.w.Label(evalRight)
	g.emitExpr(n.Right)
	g.w.Ins2("test", "rax", "rax")
	g.w.Ins1("setnz", "al")
	g.w.Ins2("movzx", "rax", "al")
	g.w.Label(end)
}

func (g *Generator) emitUnary(n *frontend.Unary) {
	g.emitExpr(n.Operand)
	switch n.Op {
	case frontend.OpNeg:
		g.w.Ins1("neg", "rax")
	case frontend.OpNot:
		g.w.Ins2("test", "rax", "rax")
		g.w.Ins1("setz", "al")
		g.w.Ins2("movzx", "rax", "al")
	}
}

// emitCall lowers a subroutine invocation. Arguments are evaluated and
// pushed right-to-left so that the first argument, pushed last, ends up
// closest to the return address and lands at [rbp+16] in the callee.
func (g *Generator) emitCall(n *frontend.Call) {
	for i1 := len(n.Args) - 1; i1 >= 0; i1-- {
		g.emitExpr(n.Args[i1])
		g.w.Ins1("push", "rax")
	}
	g.w.Ins1("call", n.Name)
	if len(n.Args) > 0 {
		g.w.Ins2("add", "rsp", fmt.Sprintf("%d", 8*len(n.Args)))
	}
}
