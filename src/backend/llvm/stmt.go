package llvm

import (
	"tinygo.org/x/go-llvm"

	"toycc/src/frontend"
)

// genStmts lowers a statement list in order, stopping early if a statement
// terminates the current block (return, or an unconditional break/continue
// jump) so no dead instructions are appended after a terminator.
func (g *generator) genStmts(stmts []frontend.Stmt) error {
	for _, s := range stmts {
		if g.terminated {
			break
		}
		if err := g.genStmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (g *generator) genStmt(s frontend.Stmt) error {
	switch n := s.(type) {
	case *frontend.Assign:
		v, err := g.genExpr(n.Value)
		if err != nil {
			return err
		}
		slot, err := g.varSlot(n.Name)
		if err != nil {
			return err
		}
		g.b.CreateStore(v, slot)
	case *frontend.Print:
		return g.genPrint(n)
	case *frontend.If:
		return g.genIf(n)
	case *frontend.While:
		return g.genWhile(n)
	case *frontend.Break:
		top := g.loops[len(g.loops)-1]
		g.b.CreateBr(top.end)
		g.terminated = true
	case *frontend.Continue:
		top := g.loops[len(g.loops)-1]
		g.b.CreateBr(top.head)
		g.terminated = true
	case *frontend.Return:
		if n.Value != nil {
			v, err := g.genExpr(n.Value)
			if err != nil {
				return err
			}
			g.b.CreateRet(v)
		} else {
			g.b.CreateRet(llvm.ConstInt(i64, 0, false))
		}
		g.terminated = true
	case *frontend.ExprStmt:
		_, err := g.genExpr(n.Call)
		return err
	}
	return nil
}

func (g *generator) genIf(n *frontend.If) error {
	fn := g.currentFunction()
	cond, err := g.genExpr(n.Cond)
	if err != nil {
		return err
	}
	isTrue := g.b.CreateICmp(llvm.IntNE, cond, llvm.ConstInt(i64, 0, false), "")

	thenBlock := g.ctx.AddBasicBlock(fn, "if.then")
	mergeBlock := g.ctx.AddBasicBlock(fn, "if.end")
	elseBlock := mergeBlock
	if len(n.Else) > 0 {
		elseBlock = g.ctx.AddBasicBlock(fn, "if.else")
	}
	g.b.CreateCondBr(isTrue, thenBlock, elseBlock)

	g.b.SetInsertPointAtEnd(thenBlock)
	g.terminated = false
	if err := g.genStmts(n.Then); err != nil {
		return err
	}
	if !g.terminated {
		g.b.CreateBr(mergeBlock)
	}

	if len(n.Else) > 0 {
		g.b.SetInsertPointAtEnd(elseBlock)
		g.terminated = false
		if err := g.genStmts(n.Else); err != nil {
			return err
		}
		if !g.terminated {
			g.b.CreateBr(mergeBlock)
		}
	}

	g.b.SetInsertPointAtEnd(mergeBlock)
	g.terminated = false
	return nil
}

func (g *generator) genWhile(n *frontend.While) error {
	fn := g.currentFunction()
	headBlock := g.ctx.AddBasicBlock(fn, "while.head")
	bodyBlock := g.ctx.AddBasicBlock(fn, "while.body")
	endBlock := g.ctx.AddBasicBlock(fn, "while.end")

	g.b.CreateBr(headBlock)
	g.b.SetInsertPointAtEnd(headBlock)
	cond, err := g.genExpr(n.Cond)
	if err != nil {
		return err
	}
	isTrue := g.b.CreateICmp(llvm.IntNE, cond, llvm.ConstInt(i64, 0, false), "")
	g.b.CreateCondBr(isTrue, bodyBlock, endBlock)

	g.b.SetInsertPointAtEnd(bodyBlock)
	g.terminated = false
	g.loops = append(g.loops, loopBlocks{head: headBlock, end: endBlock})
	if err := g.genStmts(n.Body); err != nil {
		return err
	}
	g.loops = g.loops[:len(g.loops)-1]
	if !g.terminated {
		g.b.CreateBr(headBlock)
	}

	g.b.SetInsertPointAtEnd(endBlock)
	g.terminated = false
	return nil
}

func (g *generator) genPrint(n *frontend.Print) error {
	if lit, ok := n.Value.(*frontend.StringLiteral); ok {
		g.genPrintString(lit)
		return nil
	}
	v, err := g.genExpr(n.Value)
	if err != nil {
		return err
	}
	g.b.CreateCall(g.printI, []llvm.Value{v}, "")
	g.b.CreateCall(g.printNL, nil, "")
	return nil
}

// genPrintString prints a string literal via puts, which appends its own
// trailing newline (mirroring print's always-newline behavior).
func (g *generator) genPrintString(lit *frontend.StringLiteral) {
	cnst, ok := g.strings[lit.Text]
	if !ok {
		cnst = g.b.CreateGlobalStringPtr(lit.Text, "")
		g.strings[lit.Text] = cnst
	}
	g.b.CreateCall(g.puts, []llvm.Value{cnst}, "")
}

// currentFunction recovers the function owning the block the builder is
// currently inserting into.
func (g *generator) currentFunction() llvm.Value {
	return g.b.GetInsertBlock().Parent()
}
