// Package asm provides a small buffered writer for NASM-syntax x86-64
// assembly, split into the two sections every generated program needs:
// .data for interned string constants, and .text for instructions.
// Instructions are written in order to a single in-memory buffer and the
// sections are only concatenated, in a fixed order, when Render is called.
package asm

import (
	"fmt"
	"strings"
)

// Writer accumulates one compilation unit's worth of assembly text.
// It is not safe for concurrent use; the code generator runs single
// threaded and owns one Writer for the lifetime of a compile.
type Writer struct {
	header strings.Builder
	data   strings.Builder
	text   strings.Builder
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Global emits a "global <name>" directive.
func (w *Writer) Global(name string) {
	fmt.Fprintf(&w.header, "global %s\n", name)
}

// Extern emits an "extern <names>" directive.
func (w *Writer) Extern(names ...string) {
	fmt.Fprintf(&w.header, "extern %s\n", strings.Join(names, ", "))
}

// Ins0 writes a zero-operand instruction, e.g. "ret".
func (w *Writer) Ins0(op string) {
	fmt.Fprintf(&w.text, "\t%s\n", op)
}

// Ins1 writes a one-operand instruction, e.g. "push rbp".
func (w *Writer) Ins1(op, operand string) {
	fmt.Fprintf(&w.text, "\t%s\t%s\n", op, operand)
}

// Ins2 writes a two-operand instruction, e.g. "mov rax, rbx".
func (w *Writer) Ins2(op, dst, src string) {
	fmt.Fprintf(&w.text, "\t%s\t%s, %s\n", op, dst, src)
}

// Label writes a local label definition into .text, e.g. "while.0:".
func (w *Writer) Label(name string) {
	fmt.Fprintf(&w.text, "%s:\n", name)
}

// Comment writes a ";"-prefixed comment line into .text, used for the
// per-frame variable-layout annotations.
func (w *Writer) Comment(format string, args ...interface{}) {
	fmt.Fprintf(&w.text, "\t; %s\n", fmt.Sprintf(format, args...))
}

// Blank writes an empty line into .text, used to separate subroutines.
func (w *Writer) Blank() {
	w.text.WriteByte('\n')
}

// DataString declares a NUL-terminated string constant in .data under the
// given label, followed by a "<label>_len equ $ - <label> - 1" directive
// giving its length in bytes, excluding the terminating NUL.
func (w *Writer) DataString(label, text string) {
	fmt.Fprintf(&w.data, "%s:\tdb\t%s, 0\n", label, nasmStringLiteral(text))
	fmt.Fprintf(&w.data, "%s_len\tequ\t$ - %s - 1\n", label, label)
}

// Render concatenates the sections in NASM's conventional order, each
// headed by its "section" directive, skipping .data if it received no
// content.
func (w *Writer) Render() string {
	var out strings.Builder
	if w.data.Len() > 0 {
		out.WriteString("section .data\n")
		out.WriteString(w.data.String())
		out.WriteByte('\n')
	}
	out.WriteString("section .text\n")
	out.WriteString(w.header.String())
	out.WriteString(w.text.String())
	return out.String()
}

// nasmStringLiteral renders text as a NASM double-quoted byte string,
// escaping embedded double quotes by splitting them into their own
// quoted run the way NASM expects.
func nasmStringLiteral(text string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i1 := 0; i1 < len(text); i1++ {
		c := text[i1]
		if c == '"' {
			b.WriteString(`", 34, "`)
			continue
		}
		b.WriteByte(c)
	}
	b.WriteByte('"')
	return b.String()
}
