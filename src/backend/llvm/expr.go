package llvm

import (
	"fmt"

	"tinygo.org/x/go-llvm"

	"toycc/src/frontend"
)

var icmpByOp = map[frontend.BinOp]llvm.IntPredicate{
	frontend.OpEq: llvm.IntEQ,
	frontend.OpNe: llvm.IntNE,
	frontend.OpLt: llvm.IntSLT,
	frontend.OpLe: llvm.IntSLE,
	frontend.OpGt: llvm.IntSGT,
	frontend.OpGe: llvm.IntSGE,
}

func (g *generator) genExpr(e frontend.Expr) (llvm.Value, error) {
	switch n := e.(type) {
	case *frontend.IntLiteral:
		return llvm.ConstInt(i64, uint64(n.Value), true), nil
	case *frontend.Variable:
		slot, err := g.varSlot(n.Name)
		if err != nil {
			return llvm.Value{}, err
		}
		return g.b.CreateLoad(slot, ""), nil
	case *frontend.Binary:
		return g.genBinary(n)
	case *frontend.Unary:
		return g.genUnary(n)
	case *frontend.Call:
		return g.genCall(n)
	default:
		return llvm.Value{}, fmt.Errorf("string literal used outside print reached code generation")
	}
}

func (g *generator) genBinary(n *frontend.Binary) (llvm.Value, error) {
	switch n.Op {
	case frontend.OpAnd:
		return g.genAnd(n)
	case frontend.OpOr:
		return g.genOr(n)
	}

	left, err := g.genExpr(n.Left)
	if err != nil {
		return llvm.Value{}, err
	}
	right, err := g.genExpr(n.Right)
	if err != nil {
		return llvm.Value{}, err
	}

	switch n.Op {
	case frontend.OpAdd:
		return g.b.CreateAdd(left, right, ""), nil
	case frontend.OpSub:
		return g.b.CreateSub(left, right, ""), nil
	case frontend.OpMul:
		return g.b.CreateMul(left, right, ""), nil
	case frontend.OpDiv:
		return g.b.CreateSDiv(left, right, ""), nil
	}

	pred, ok := icmpByOp[n.Op]
	if !ok {
		return llvm.Value{}, fmt.Errorf("unknown binary operator %q", n.Op)
	}
	cmp := g.b.CreateICmp(pred, left, right, "")
	return g.b.CreateZExt(cmp, i64, ""), nil
}

// genAnd lowers && with real control flow so the right operand is only
// evaluated when the left is truthy, using a mutable result slot instead
// of a phi node for simplicity.
func (g *generator) genAnd(n *frontend.Binary) (llvm.Value, error) {
	fn := g.currentFunction()
	result := g.b.CreateAlloca(i64, "")
	g.b.CreateStore(llvm.ConstInt(i64, 0, false), result)

	left, err := g.genExpr(n.Left)
	if err != nil {
		return llvm.Value{}, err
	}
	leftTrue := g.b.CreateICmp(llvm.IntNE, left, llvm.ConstInt(i64, 0, false), "")
	rightBlock := g.ctx.AddBasicBlock(fn, "and.rhs")
	endBlock := g.ctx.AddBasicBlock(fn, "and.end")
	g.b.CreateCondBr(leftTrue, rightBlock, endBlock)

	g.b.SetInsertPointAtEnd(rightBlock)
	right, err := g.genExpr(n.Right)
	if err != nil {
		return llvm.Value{}, err
	}
	rightTrue := g.b.CreateICmp(llvm.IntNE, right, llvm.ConstInt(i64, 0, false), "")
	g.b.CreateStore(g.b.CreateZExt(rightTrue, i64, ""), result)
	g.b.CreateBr(endBlock)

	g.b.SetInsertPointAtEnd(endBlock)
	return g.b.CreateLoad(result, ""), nil
}

// genOr mirrors genAnd: the right operand is only evaluated when the left
// is falsy.
func (g *generator) genOr(n *frontend.Binary) (llvm.Value, error) {
	fn := g.currentFunction()
	result := g.b.CreateAlloca(i64, "")

	left, err := g.genExpr(n.Left)
	if err != nil {
		return llvm.Value{}, err
	}
	leftTrue := g.b.CreateICmp(llvm.IntNE, left, llvm.ConstInt(i64, 0, false), "")
	rightBlock := g.ctx.AddBasicBlock(fn, "or.rhs")
	endBlock := g.ctx.AddBasicBlock(fn, "or.end")
	g.b.CreateStore(llvm.ConstInt(i64, 1, false), result)
	g.b.CreateCondBr(leftTrue, endBlock, rightBlock)

	g.b.SetInsertPointAtEnd(rightBlock)
	right, err := g.genExpr(n.Right)
	if err != nil {
		return llvm.Value{}, err
	}
	rightTrue := g.b.CreateICmp(llvm.IntNE, right, llvm.ConstInt(i64, 0, false), "")
	g.b.CreateStore(g.b.CreateZExt(rightTrue, i64, ""), result)
	g.b.CreateBr(endBlock)

	g.b.SetInsertPointAtEnd(endBlock)
	return g.b.CreateLoad(result, ""), nil
}

func (g *generator) genUnary(n *frontend.Unary) (llvm.Value, error) {
	v, err := g.genExpr(n.Operand)
	if err != nil {
		return llvm.Value{}, err
	}
	switch n.Op {
	case frontend.OpNeg:
		return g.b.CreateSub(llvm.ConstInt(i64, 0, false), v, ""), nil
	case frontend.OpNot:
		isZero := g.b.CreateICmp(llvm.IntEQ, v, llvm.ConstInt(i64, 0, false), "")
		return g.b.CreateZExt(isZero, i64, ""), nil
	}
	return llvm.Value{}, fmt.Errorf("unknown unary operator %q", n.Op)
}

func (g *generator) genCall(n *frontend.Call) (llvm.Value, error) {
	fn, ok := g.subs[n.Name]
	if !ok {
		return llvm.Value{}, fmt.Errorf("call to undeclared subroutine %q reached code generation", n.Name)
	}
	args := make([]llvm.Value, len(n.Args))
	for i1, a := range n.Args {
		v, err := g.genExpr(a)
		if err != nil {
			return llvm.Value{}, err
		}
		args[i1] = v
	}
	return g.b.CreateCall(fn, args, ""), nil
}
