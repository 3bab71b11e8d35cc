package sema

import (
	"testing"

	"toycc/src/frontend"
)

func mustParse(t *testing.T, src string) *frontend.Program {
	t.Helper()
	prog, err := frontend.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return prog
}

func TestBuildGlobalScopeOrderAndOffsets(t *testing.T) {
	prog := mustParse(t, "x = 1; y = x + 2; x = y;")
	scope := BuildGlobalScope(prog)
	if len(scope.Order) != 2 || scope.Order[0] != "x" || scope.Order[1] != "y" {
		t.Fatalf("got order %v, want [x y]", scope.Order)
	}
	if scope.Offset("x") != -8 {
		t.Errorf("x offset = %d, want -8", scope.Offset("x"))
	}
	if scope.Offset("y") != -16 {
		t.Errorf("y offset = %d, want -16", scope.Offset("y"))
	}
}

func TestBuildGlobalScopeSkipsSubBodies(t *testing.T) {
	prog := mustParse(t, "sub f(a) { b = a; } x = 1;")
	scope := BuildGlobalScope(prog)
	if len(scope.Order) != 1 || scope.Order[0] != "x" {
		t.Fatalf("got order %v, want [x]", scope.Order)
	}
}

func TestBuildSubScopeParamsAndLocals(t *testing.T) {
	prog := mustParse(t, "sub add(a, b) { c = a + b; return c; }")
	sub := prog.TopLevel[0].(*frontend.SubDef)
	scope := BuildSubScope(sub)
	if scope.Offset("a") != 16 {
		t.Errorf("a offset = %d, want 16", scope.Offset("a"))
	}
	if scope.Offset("b") != 24 {
		t.Errorf("b offset = %d, want 24", scope.Offset("b"))
	}
	if scope.Offset("c") != -8 {
		t.Errorf("c offset = %d, want -8", scope.Offset("c"))
	}
	if scope.LocalCount() != 1 {
		t.Errorf("LocalCount() = %d, want 1", scope.LocalCount())
	}
}

func TestCollectStringsFirstAppearanceOrder(t *testing.T) {
	prog := mustParse(t, `print "a"; print "b"; print "a";`)
	tbl := CollectStrings(prog)
	entries := tbl.Entries()
	if len(entries) != 2 || entries[0] != "a" || entries[1] != "b" {
		t.Fatalf("got %v, want [a b]", entries)
	}
	if tbl.Label(0) != "const.0" || tbl.Label(1) != "const.1" {
		t.Fatalf("unexpected labels: %q %q", tbl.Label(0), tbl.Label(1))
	}
}

func TestCollectStringsInsideSubroutine(t *testing.T) {
	prog := mustParse(t, `sub greet() { print "hi"; } greet();`)
	tbl := CollectStrings(prog)
	if len(tbl.Entries()) != 1 || tbl.Entries()[0] != "hi" {
		t.Fatalf("got %v", tbl.Entries())
	}
}
