package x86

import "toycc/src/frontend"

func (g *Generator) emitIf(n *frontend.If) {
	g.emitExpr(n.Cond)
	g.w.Ins2("test", "rax", "rax")

	if len(n.Else) == 0 {
		end := g.labels.NewLabel("endif")
		g.w.Ins1("jz", end)
		for _, s := range n.Then {
			g.emitStmt(s)
		}
		g.w.Label(end)
		return
	}

	elseLabel := g.labels.NewLabel("else")
	end := g.labels.NewLabel("endif")
	g.w.Ins1("jz", elseLabel)
	for _, s := range n.Then {
		g.emitStmt(s)
	}
	g.w.Ins1("jmp", end)
	g.w.Label(elseLabel)
	for _, s := range n.Else {
		g.emitStmt(s)
	}
	g.w.Label(end)
}

func (g *Generator) emitWhile(n *frontend.While) {
	head := g.labels.NewLabel("while")
	end := g.labels.NewLabel("endwhile")

	g.w.Label(head)
	g.emitExpr(n.Cond)
	g.w.Ins2("test", "rax", "rax")
	g.w.Ins1("jz", end)

	g.loops.Push(&loopCtx{headLabel: head, endLabel: end})
	for _, s := range n.Body {
		g.emitStmt(s)
	}
	g.loops.Pop()

	g.w.Ins1("jmp", head)
	g.w.Label(end)
}

func (g *Generator) emitBreak(n *frontend.Break) {
	// sema.Validate already rejects a Break outside any loop.
	top := g.loops.Peek().(*loopCtx)
	g.w.Ins1("jmp", top.endLabel)
}

func (g *Generator) emitContinue(n *frontend.Continue) {
	top := g.loops.Peek().(*loopCtx)
	g.w.Ins1("jmp", top.headLabel)
}
