package rvm

import (
	"testing"

	"github.com/funvibe/rvm/internal/typeir"
)

// TestPropertyStripsOptionalUndefinedUnion checks `property` reduces a
// `T | undefined` union to T, marking the property optional instead of
// carrying the union through verbatim.
func TestPropertyStripsOptionalUndefinedUnion(t *testing.T) {
	b := newProg()
	nameIdx := b.lit("a")
	b.op(OpFrame)
	b.op(OpString)
	b.op(OpUndefined)
	b.op(OpUnion)
	b.op(OpProperty).imm(nameIdx)
	b.op(OpObjectLiteral)

	node := resolve(t, b, nil)
	prop := node.Props[0]
	if prop.Return == nil || prop.Return.Kind != typeir.KindString {
		t.Fatalf("got return %+v, want the union stripped down to string", prop.Return)
	}
	if !prop.Optional {
		t.Fatalf("got %+v, want optional set by the stripped union", prop)
	}
}

// TestPropertySignatureStripsOptionalUndefinedUnion mirrors the above for
// propertySignature (interface members rather than class members).
func TestPropertySignatureStripsOptionalUndefinedUnion(t *testing.T) {
	b := newProg()
	nameIdx := b.lit("a")
	b.op(OpFrame)
	b.op(OpNumber)
	b.op(OpUndefined)
	b.op(OpUnion)
	b.op(OpPropertySignature).imm(nameIdx)
	b.op(OpObjectLiteral)

	node := resolve(t, b, nil)
	prop := node.Props[0]
	if prop.Kind != typeir.KindPropertySignature {
		t.Fatalf("got %+v, want a propertySignature", prop)
	}
	if prop.Return == nil || prop.Return.Kind != typeir.KindNumber {
		t.Fatalf("got return %+v, want the union stripped down to number", prop.Return)
	}
	if !prop.Optional {
		t.Fatalf("got %+v, want optional set by the stripped union", prop)
	}
}

// TestPropertyLeavesOrdinaryUnionAlone checks a union that isn't exactly
// `T | undefined` is left untouched and optional stays false.
func TestPropertyLeavesOrdinaryUnionAlone(t *testing.T) {
	b := newProg()
	nameIdx := b.lit("a")
	b.op(OpFrame)
	b.op(OpString)
	b.op(OpNumber)
	b.op(OpUnion)
	b.op(OpProperty).imm(nameIdx)
	b.op(OpObjectLiteral)

	node := resolve(t, b, nil)
	prop := node.Props[0]
	if prop.Return == nil || prop.Return.Kind != typeir.KindUnion {
		t.Fatalf("got return %+v, want the union left intact", prop.Return)
	}
	if prop.Optional {
		t.Fatalf("got %+v, want optional unset for a plain union", prop)
	}
}
