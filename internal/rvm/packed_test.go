package rvm

import "testing"

func TestDecodeRoundTripsOpcodesAndPool(t *testing.T) {
	b := newProg()
	idx := b.lit("hi")
	b.op(OpLiteral).imm(idx)

	raw := b.build()
	program := Decode(raw)

	if len(program.Pool) != 1 || program.Pool[0] != "hi" {
		t.Fatalf("got pool %+v, want [\"hi\"]", program.Pool)
	}
	if len(program.Stream) != 2 {
		t.Fatalf("got stream length %d, want 2", len(program.Stream))
	}
	if Opcode(program.Stream[0]) != OpLiteral {
		t.Fatalf("got opcode %v, want OpLiteral", Opcode(program.Stream[0]))
	}
	if program.Stream[1] != 0 {
		t.Fatalf("got operand %d, want 0", program.Stream[1])
	}
}

func TestDecodeEmptyInputYieldsEmptyProgram(t *testing.T) {
	program := Decode(nil)
	if len(program.Stream) != 0 || len(program.Pool) != 0 {
		t.Fatalf("got %+v, want an empty program", program)
	}
}

func TestDecodeMalformedFramingYieldsEmptyProgram(t *testing.T) {
	program := Decode([]any{"not-the-last-element-is-not-a-string", 42})
	if len(program.Stream) != 0 {
		t.Fatalf("got %+v, want an empty program when the last element isn't a string", program)
	}
}

func TestDecodeProgramAcceptsAlreadyDecodedValue(t *testing.T) {
	b := newProg()
	b.op(OpString)
	p1 := Decode(b.build())

	p2 := DecodeProgram(p1)
	if p2 != p1 {
		t.Fatalf("DecodeProgram should return an already-decoded *Program unchanged")
	}

	p3 := DecodeProgram(b.build())
	if len(p3.Stream) != len(p1.Stream) {
		t.Fatalf("got %+v, want the same stream length as decoding directly", p3)
	}
}

func TestDecodeProgramUnrecognizedValueYieldsEmptyProgram(t *testing.T) {
	p := DecodeProgram(42)
	if len(p.Stream) != 0 || len(p.Pool) != 0 {
		t.Fatalf("got %+v, want an empty program for an unrecognized value", p)
	}
}
