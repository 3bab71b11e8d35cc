// Package llvm lowers a validated Toy program directly to LLVM IR using
// the system's installed LLVM runtime, as an alternative to the NASM
// backend selected by the command line's -ll flag. Variables and calls
// use the same link contract as the NASM path: print_int and
// print_newline are declared extern and never defined here.
package llvm

import (
	"fmt"
	"path/filepath"

	"tinygo.org/x/go-llvm"

	"toycc/src/frontend"
	"toycc/src/util"
)

// i64 is the only scalar type Toy needs: every variable, parameter and
// return value is a 64-bit signed integer.
var i64 = llvm.Int64Type()

// loopBlocks gives Break/Continue their branch targets, mirroring the
// label-pair loop-context stack used by the NASM backend.
type loopBlocks struct {
	head, end llvm.BasicBlock
}

// generator holds everything threaded through one module's lowering.
type generator struct {
	ctx     llvm.Context
	b       llvm.Builder
	m       llvm.Module
	globals    map[string]llvm.Value // name -> global i64* slot
	locals     map[string]llvm.Value // name -> alloca'd i64* slot, current function only
	subs       map[string]llvm.Value // name -> declared function
	loops      []loopBlocks
	strings    map[string]llvm.Value // literal text -> global i8* constant
	printI     llvm.Value
	printNL    llvm.Value
	puts       llvm.Value
	terminated bool // true once the current block has emitted a terminator
}

// Generate lowers prog to an LLVM module and returns its textual IR.
// Callers are expected to pipe the result through llc/clang themselves;
// this core only produces the IR text.
func Generate(opt util.Options, prog *frontend.Program) (string, error) {
	ctx := llvm.NewContext()
	defer ctx.Dispose()
	b := ctx.NewBuilder()
	defer b.Dispose()
	m := ctx.NewModule(filepath.Base(opt.Src))
	defer m.Dispose()

	g := &generator{
		ctx:     ctx,
		b:       b,
		m:       m,
		globals: map[string]llvm.Value{},
		subs:    map[string]llvm.Value{},
		strings: map[string]llvm.Value{},
	}
	g.declareRuntime()

	if err := g.declareGlobals(prog); err != nil {
		return "", err
	}
	if err := g.declareSubs(prog); err != nil {
		return "", err
	}
	for _, s := range prog.TopLevel {
		if sub, ok := s.(*frontend.SubDef); ok {
			if err := g.genSub(sub); err != nil {
				return "", err
			}
		}
	}
	if err := g.genMain(prog); err != nil {
		return "", err
	}

	if err := llvm.VerifyModule(m, llvm.ReturnStatusAction); err != nil {
		return "", fmt.Errorf("module verification failed: %s", err)
	}
	return m.String(), nil
}

// declareRuntime declares the two link-time collaborators exactly the way
// the NASM backend's "extern print_int, print_newline" does.
func (g *generator) declareRuntime() {
	printIType := llvm.FunctionType(g.ctx.VoidType(), []llvm.Type{i64}, false)
	g.printI = llvm.AddFunction(g.m, "print_int", printIType)
	printNLType := llvm.FunctionType(g.ctx.VoidType(), nil, false)
	g.printNL = llvm.AddFunction(g.m, "print_newline", printNLType)

	// puts is a libc collaborator used only for the LLVM backend's string
	// literals; the NASM backend prints strings with a raw write syscall
	// instead, since it has no libc to link against.
	putsType := llvm.FunctionType(llvm.Int32Type(), []llvm.Type{llvm.PointerType(g.ctx.Int8Type(), 0)}, false)
	g.puts = llvm.AddFunction(g.m, "puts", putsType)
}

func (g *generator) declareGlobals(prog *frontend.Program) error {
	order := topLevelVarOrder(prog)
	for _, name := range order {
		slot := llvm.AddGlobal(g.m, i64, "g."+name)
		slot.SetInitializer(llvm.ConstInt(i64, 0, false))
		g.globals[name] = slot
	}
	return nil
}

func (g *generator) declareSubs(prog *frontend.Program) error {
	for _, s := range prog.TopLevel {
		sub, ok := s.(*frontend.SubDef)
		if !ok {
			continue
		}
		params := make([]llvm.Type, len(sub.Params))
		for i1 := range params {
			params[i1] = i64
		}
		ftyp := llvm.FunctionType(i64, params, false)
		fn := llvm.AddFunction(g.m, sub.Name, ftyp)
		g.subs[sub.Name] = fn
	}
	return nil
}

// topLevelVarOrder mirrors sema.collectVars without importing sema, since
// the LLVM path only needs the name set, not stack offsets.
func topLevelVarOrder(prog *frontend.Program) []string {
	seen := map[string]bool{}
	var order []string
	var walkExpr func(frontend.Expr)
	var walkStmt func(frontend.Stmt)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			order = append(order, name)
		}
	}
	walkExpr = func(e frontend.Expr) {
		switch n := e.(type) {
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
		}
	}
	for _, s := range prog.TopLevel {
		if _, ok := s.(*frontend.SubDef); ok {
			continue
		}
		walkStmt(s)
	}
	return order
}
