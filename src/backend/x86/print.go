package x86

import "toycc/src/frontend"

// emitPrint lowers a Print statement. A bare string literal is written
// directly via a single write syscall; any other expression is evaluated
// into rax and handed to the linked print_int/print_newline pair.
func (g *Generator) emitPrint(n *frontend.Print) {
	if lit, ok := n.Value.(*frontend.StringLiteral); ok {
		g.emitPrintString(lit)
		return
	}
	g.emitExpr(n.Value)
	g.w.Ins2("mov", "rdi", "rax")
	g.w.Ins1("call", "print_int")
	g.w.Ins1("call", "print_newline")
}

func (g *Generator) emitPrintString(lit *frontend.StringLiteral) {
	id := g.strings.Intern(lit.Text)
	label := g.strings.Label(id)
	g.w.Ins2("mov", "rax", "1")
	g.w.Ins2("mov", "rdi", "1")
	g.w.Ins2("mov", "rsi", label)
	g.w.Ins2("mov", "rdx", label+"_len")
	g.w.Ins0("syscall")
	g.w.Ins1("call", "print_newline")
}
