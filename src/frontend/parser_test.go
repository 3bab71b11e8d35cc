package frontend

import "testing"

func mustParse(t *testing.T, src string) *Program {
	t.Helper()
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", src, err)
	}
	return prog
}

func TestParseAssignAndPrint(t *testing.T) {
	prog := mustParse(t, "x = 42; print x;")
	if len(prog.TopLevel) != 2 {
		t.Fatalf("got %d statements, want 2", len(prog.TopLevel))
	}
	a, ok := prog.TopLevel[0].(*Assign)
	if !ok || a.Name != "x" {
		t.Fatalf("statement 0: got %#v", prog.TopLevel[0])
	}
	if _, ok := a.Value.(*IntLiteral); !ok {
		t.Fatalf("assign value: got %#v", a.Value)
	}
	pr, ok := prog.TopLevel[1].(*Print)
	if !ok {
		t.Fatalf("statement 1: got %#v", prog.TopLevel[1])
	}
	if v, ok := pr.Value.(*Variable); !ok || v.Name != "x" {
		t.Fatalf("print value: got %#v", pr.Value)
	}
}

func TestParsePrecedence(t *testing.T) {
	prog := mustParse(t, "print 2 + 3 * 4;")
	pr := prog.TopLevel[0].(*Print)
	top, ok := pr.Value.(*Binary)
	if !ok || top.Op != OpAdd {
		t.Fatalf("expected top-level +, got %#v", pr.Value)
	}
	if _, ok := top.Left.(*IntLiteral); !ok {
		t.Fatalf("left of + should be literal 2, got %#v", top.Left)
	}
	mul, ok := top.Right.(*Binary)
	if !ok || mul.Op != OpMul {
		t.Fatalf("right of + should be *, got %#v", top.Right)
	}
}

func TestParseParenthesizedPrecedence(t *testing.T) {
	prog := mustParse(t, "print (2 + 3) * 4;")
	pr := prog.TopLevel[0].(*Print)
	top, ok := pr.Value.(*Binary)
	if !ok || top.Op != OpMul {
		t.Fatalf("expected top-level *, got %#v", pr.Value)
	}
	if _, ok := top.Left.(*Binary); !ok {
		t.Fatalf("left of * should be parenthesized +, got %#v", top.Left)
	}
}

func TestParseComparisonNonAssociative(t *testing.T) {
	if _, err := Parse("print 1 < 2 < 3;"); err == nil {
		t.Fatal("expected parse error for chained comparison")
	}
}

func TestParseShortCircuitOperators(t *testing.T) {
	prog := mustParse(t, "print 1 || 2 && 3;")
	pr := prog.TopLevel[0].(*Print)
	or, ok := pr.Value.(*Binary)
	if !ok || or.Op != OpOr {
		t.Fatalf("expected top-level ||, got %#v", pr.Value)
	}
	if and, ok := or.Right.(*Binary); !ok || and.Op != OpAnd {
		t.Fatalf("right of || should be &&, got %#v", or.Right)
	}
}

func TestParseIfElse(t *testing.T) {
	prog := mustParse(t, "if x > 5 { print 100; } else { print 200; }")
	ifs, ok := prog.TopLevel[0].(*If)
	if !ok {
		t.Fatalf("got %#v", prog.TopLevel[0])
	}
	if len(ifs.Then) != 1 || len(ifs.Else) != 1 {
		t.Fatalf("then/else lengths: %d/%d", len(ifs.Then), len(ifs.Else))
	}
}

func TestParseWhileBreakContinue(t *testing.T) {
	prog := mustParse(t, "while i < 5 { i = i + 1; if i == 3 { continue; } print i; }")
	w, ok := prog.TopLevel[0].(*While)
	if !ok {
		t.Fatalf("got %#v", prog.TopLevel[0])
	}
	if len(w.Body) != 3 {
		t.Fatalf("got %d body statements, want 3", len(w.Body))
	}
}

func TestParseSubDefAndCall(t *testing.T) {
	prog := mustParse(t, `sub factorial(n) { if n <= 1 { return 1; } return n * factorial(n - 1); } print factorial(5);`)
	if len(prog.TopLevel) != 2 {
		t.Fatalf("got %d top-level statements", len(prog.TopLevel))
	}
	sub, ok := prog.TopLevel[0].(*SubDef)
	if !ok || sub.Name != "factorial" || len(sub.Params) != 1 || sub.Params[0] != "n" {
		t.Fatalf("got %#v", prog.TopLevel[0])
	}
}

func TestParseCallStatement(t *testing.T) {
	prog := mustParse(t, "side();")
	es, ok := prog.TopLevel[0].(*ExprStmt)
	if !ok || es.Call.Name != "side" || len(es.Call.Args) != 0 {
		t.Fatalf("got %#v", prog.TopLevel[0])
	}
}

func TestParseUnaryOperators(t *testing.T) {
	prog := mustParse(t, "print -1; print !0;")
	neg := prog.TopLevel[0].(*Print).Value.(*Unary)
	if neg.Op != OpNeg {
		t.Fatalf("got %#v", neg)
	}
	not := prog.TopLevel[1].(*Print).Value.(*Unary)
	if not.Op != OpNot {
		t.Fatalf("got %#v", not)
	}
}

func TestParseStringOnlyValidInPrint(t *testing.T) {
	prog := mustParse(t, `print "hi";`)
	pr := prog.TopLevel[0].(*Print)
	if s, ok := pr.Value.(*StringLiteral); !ok || s.Text != "hi" {
		t.Fatalf("got %#v", pr.Value)
	}
}

func TestParseUnexpectedTokenError(t *testing.T) {
	if _, err := Parse("x = ;"); err == nil {
		t.Fatal("expected parse error")
	}
}
