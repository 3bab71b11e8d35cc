package llvm

import (
	"fmt"

	"tinygo.org/x/go-llvm"

	"toycc/src/frontend"
)

// genSub emits one subroutine's body. Every named local (parameters and
// assigned-to variables) gets its own stack slot via alloca, matching the
// mutable-variable idiom LLVM expects instead of SSA registers directly.
func (g *generator) genSub(sub *frontend.SubDef) error {
	fn := g.subs[sub.Name]
	entry := llvm.AddBasicBlock(fn, "entry")
	g.b.SetInsertPointAtEnd(entry)

	g.locals = map[string]llvm.Value{}
	for i1, name := range sub.Params {
		slot := g.b.CreateAlloca(i64, name)
		g.b.CreateStore(fn.Param(i1), slot)
		g.locals[name] = slot
	}
	for _, name := range subLocalOrder(sub) {
		if _, ok := g.locals[name]; ok {
			continue
		}
		slot := g.b.CreateAlloca(i64, name)
		g.b.CreateStore(llvm.ConstInt(i64, 0, false), slot)
		g.locals[name] = slot
	}

	g.terminated = false
	if err := g.genStmts(sub.Body); err != nil {
		return err
	}
	// Fallthrough return, matching the NASM backend's implicit "return 0"
	// for a body that does not return on every path.
	if !g.terminated {
		g.b.CreateRet(llvm.ConstInt(i64, 0, false))
	}
	g.locals = nil
	return nil
}

// genMain builds a normal "main" entry point (this backend targets a
// hosted LLVM toolchain, not raw syscalls) that zero-initializes nothing
// further (globals are already zero via their initializers), runs every
// non-subroutine statement in order, and returns 0.
func (g *generator) genMain(prog *frontend.Program) error {
	ftyp := llvm.FunctionType(llvm.Int32Type(), nil, false)
	main := llvm.AddFunction(g.m, "main", ftyp)
	entry := llvm.AddBasicBlock(main, "entry")
	g.b.SetInsertPointAtEnd(entry)
	g.locals = nil
	g.terminated = false

	var body []frontend.Stmt
	for _, s := range prog.TopLevel {
		if _, ok := s.(*frontend.SubDef); ok {
			continue
		}
		body = append(body, s)
	}
	if err := g.genStmts(body); err != nil {
		return err
	}
	if !g.terminated {
		g.b.CreateRet(llvm.ConstInt(llvm.Int32Type(), 0, false))
	}
	return nil
}

// subLocalOrder returns a subroutine body's assigned-to variable names,
// excluding its parameters, in first-appearance order.
func subLocalOrder(sub *frontend.SubDef) []string {
	params := map[string]bool{}
	for _, p := range sub.Params {
		params[p] = true
	}
	seen := map[string]bool{}
	var order []string
	var walkStmt func(frontend.Stmt)
	walkStmt = func(s frontend.Stmt) {
		switch n := s.(type) {
		case *frontend.Assign:
			if !params[n.Name] && !seen[n.Name] {
				seen[n.Name] = true
				order = append(order, n.Name)
			}
		case *frontend.If:
			for _, s1 := range n.Then {
				walkStmt(s1)
			}
			for _, s1 := range n.Else {
				walkStmt(s1)
			}
		case *frontend.While:
			for _, s1 := range n.Body {
				walkStmt(s1)
			}
		}
	}
	for _, s := range sub.Body {
		walkStmt(s)
	}
	return order
}

func (g *generator) varSlot(name string) (llvm.Value, error) {
	if g.locals != nil {
		if slot, ok := g.locals[name]; ok {
			return slot, nil
		}
	}
	if slot, ok := g.globals[name]; ok {
		return slot, nil
	}
	return llvm.Value{}, fmt.Errorf("undeclared variable %q reached code generation", name)
}
