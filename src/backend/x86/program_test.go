package x86

import (
	"strings"
	"testing"

	"toycc/src/frontend"
	"toycc/src/sema"
)

func generate(t *testing.T, src string) string {
	t.Helper()
	prog, err := frontend.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	if err := sema.Validate(prog); err != nil {
		t.Fatalf("Validate(%q): %v", src, err)
	}
	return Generate(prog)
}

func TestGenerateEmitsEntryPointAndExit(t *testing.T) {
	out := generate(t, "x = 1;")
	for _, want := range []string{"global _start", "extern print_int, print_newline", "_start:", "syscall"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestGenerateStringConstant(t *testing.T) {
	out := generate(t, `print "hi";`)
	if !strings.Contains(out, "section .data") {
		t.Fatalf("expected .data section:\n%s", out)
	}
	if !strings.Contains(out, "const.0:") {
		t.Fatalf("expected const.0 label:\n%s", out)
	}
	if !strings.Contains(out, "const.0_len") {
		t.Fatalf("expected length directive:\n%s", out)
	}
}

func TestGeneratePrintStringEndsWithNewline(t *testing.T) {
	out := generate(t, `print "hi";`)
	if !strings.Contains(out, "call\tprint_newline") {
		t.Fatalf("expected a trailing call to print_newline after the write syscall:\n%s", out)
	}
}

func TestGeneratePrintIntCallsHelper(t *testing.T) {
	out := generate(t, "print 1 + 2;")
	if !strings.Contains(out, "call\tprint_int") || !strings.Contains(out, "call\tprint_newline") {
		t.Fatalf("expected print_int/print_newline calls:\n%s", out)
	}
}

func TestGenerateSubroutineAfterExit(t *testing.T) {
	out := generate(t, "sub f(a) { return a + 1; } print f(1);")
	exitIdx := strings.Index(out, "syscall")
	subIdx := strings.Index(out, "\nf:\n")
	if exitIdx < 0 || subIdx < 0 {
		t.Fatalf("missing exit or subroutine label:\n%s", out)
	}
	if subIdx < exitIdx {
		t.Fatalf("subroutine f emitted before exit syscall:\n%s", out)
	}
}

func TestGenerateCallPushesArgsAndCleansStack(t *testing.T) {
	out := generate(t, "sub add(a, b) { return a + b; } print add(1, 2);")
	if !strings.Contains(out, "call\tadd") {
		t.Fatalf("expected call to add:\n%s", out)
	}
	if !strings.Contains(out, "add\trsp, 16") {
		t.Fatalf("expected caller stack cleanup of 16 bytes:\n%s", out)
	}
}

func TestGenerateWhileBreakContinueLabels(t *testing.T) {
	out := generate(t, "i = 0; while i < 3 { if i == 1 { continue; } if i == 2 { break; } i = i + 1; }")
	for _, want := range []string{"while.0:", "endwhile.0:"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing label %q:\n%s", want, out)
		}
	}
}

func TestGenerateShortCircuitLabelsUnique(t *testing.T) {
	out := generate(t, "print 1 && 2; print 3 || 4;")
	first := strings.Count(out, "sc.0:")
	second := strings.Count(out, "sc.1:")
	if first != 1 || second != 1 {
		t.Fatalf("expected sc.0 and sc.1 each once:\n%s", out)
	}
}

func TestGenerateZeroInitializesGlobals(t *testing.T) {
	out := generate(t, "print x;")
	if !strings.Contains(out, "qword [rbp-8], 0") {
		t.Fatalf("expected zero-init of first global:\n%s", out)
	}
}

func TestGenerateDivisionUsesCqoIdiv(t *testing.T) {
	out := generate(t, "print 10 / 2;")
	if !strings.Contains(out, "cqo") || !strings.Contains(out, "idiv\trbx") {
		t.Fatalf("expected cqo/idiv sequence:\n%s", out)
	}
}
