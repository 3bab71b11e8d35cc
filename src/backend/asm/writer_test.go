package asm

import "testing"

func TestWriterRenderOrdersSections(t *testing.T) {
	w := NewWriter()
	w.DataString("const.0", "hi")
	w.Label("main")
	w.Ins1("push", "rbp")
	w.Ins0("ret")
	out := w.Render()

	dataIdx := indexOf(out, "section .data")
	textIdx := indexOf(out, "section .text")
	if dataIdx < 0 || textIdx < 0 {
		t.Fatalf("missing a section header in:\n%s", out)
	}
	if !(dataIdx < textIdx) {
		t.Fatalf("sections out of order in:\n%s", out)
	}
}

func TestWriterOmitsEmptySections(t *testing.T) {
	w := NewWriter()
	w.Ins0("ret")
	out := w.Render()
	if indexOf(out, "section .data") >= 0 {
		t.Fatalf("expected no .data section, got:\n%s", out)
	}
}

func TestDataStringEscapesQuotes(t *testing.T) {
	w := NewWriter()
	w.DataString("const.0", `say "hi"`)
	out := w.Render()
	if indexOf(out, `34, "`) < 0 {
		t.Fatalf("expected escaped quote byte in:\n%s", out)
	}
}

func indexOf(s, sub string) int {
	for i1 := 0; i1+len(sub) <= len(s); i1++ {
		if s[i1:i1+len(sub)] == sub {
			return i1
		}
	}
	return -1
}
