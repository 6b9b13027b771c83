package rvm

import "testing"

func TestDisassembleAnnotatesPoolOperands(t *testing.T) {
	b := newProg()
	idx := b.lit("hello")
	b.op(OpLiteral).imm(idx)

	program := Decode(b.build())
	out := Disassemble(program)

	want := "0000  literal 0 (hello)\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestDisassembleNoOperandOpcode(t *testing.T) {
	b := newProg()
	b.op(OpFrame)
	b.op(OpString)

	program := Decode(b.build())
	out := Disassemble(program)

	want := "0000  frame\n0001  string\n"
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

func TestDisassembleJumpOperandIsNotAnnotated(t *testing.T) {
	b := newProg()
	b.op(OpJump).imm(0)

	program := Decode(b.build())
	out := Disassemble(program)

	want := "0000  jump 0\n"
	if out != want {
		t.Fatalf("got %q, want %q (jump targets aren't pool lookups)", out, want)
	}
}
