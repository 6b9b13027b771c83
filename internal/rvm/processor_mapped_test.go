package rvm

import (
	"testing"

	"github.com/funvibe/rvm/internal/typeir"
)

// buildMappedType appends a mappedType construct to b: keysOp pushes the
// iteration source, bodyOp builds the per-iteration value, modifier is the
// raw modifier bitmask.
func buildMappedType(b *progBuilder, keys func(), body func(), modifier int) {
	keys()
	b.op(OpMappedType)
	bodyTargetSlot := b.at()
	b.imm(0)
	afterTargetSlot := b.at()
	b.imm(0)
	b.imm(modifier)

	bodyStart := b.at()
	body()
	b.op(OpReturn)

	afterStart := b.at()
	b.ops[bodyTargetSlot] = bodyStart
	b.ops[afterTargetSlot] = afterStart
}

// TestMappedTypeBuildsPropertySignatureMember checks a literal iteration key
// produces a propertySignature named by the key's literal value.
func TestMappedTypeBuildsPropertySignatureMember(t *testing.T) {
	b := newProg()
	keyIdx := b.lit("a")
	buildMappedType(b,
		func() { b.op(OpLiteral).imm(keyIdx) },
		func() { b.op(OpString) },
		0,
	)

	node := resolve(t, b, nil)
	if node.Kind != typeir.KindObjectLiteral || len(node.Props) != 1 {
		t.Fatalf("got %+v, want a single-member object literal", node)
	}
	member := node.Props[0]
	if member.Kind != typeir.KindPropertySignature || member.Name != "a" {
		t.Fatalf("got %+v, want propertySignature a", member)
	}
	if member.Return == nil || member.Return.Kind != typeir.KindString {
		t.Fatalf("got return %+v, want string", member.Return)
	}
	if member.Optional || member.Readonly {
		t.Fatalf("got %+v, want no modifiers applied", member)
	}
}

// TestMappedTypeSkipsNeverValuedMembers checks an iteration whose body
// yields `never` contributes no member at all.
func TestMappedTypeSkipsNeverValuedMembers(t *testing.T) {
	b := newProg()
	keyIdx := b.lit("a")
	buildMappedType(b,
		func() { b.op(OpLiteral).imm(keyIdx) },
		func() { b.op(OpNever) },
		0,
	)

	node := resolve(t, b, nil)
	if len(node.Props) != 0 {
		t.Fatalf("got %d members, want 0 (never-valued iteration skipped)", len(node.Props))
	}
}

// TestMappedTypeAppliesOptionalAndReadonlyModifiers checks the modifier
// operand's +bits are applied to the produced member.
func TestMappedTypeAppliesOptionalAndReadonlyModifiers(t *testing.T) {
	b := newProg()
	keyIdx := b.lit("a")
	buildMappedType(b,
		func() { b.op(OpLiteral).imm(keyIdx) },
		func() { b.op(OpNumber) },
		mappedOptionalPlus|mappedReadonlyPlus,
	)

	node := resolve(t, b, nil)
	member := node.Props[0]
	if !member.Optional || !member.Readonly {
		t.Fatalf("got %+v, want both optional and readonly set", member)
	}
}

// TestMappedTypeIndexSignatureForPrimitiveKey checks that when the
// iteration key is itself a primitive string/number/symbol node (rather
// than a literal), the produced member is an indexSignature keyed by it.
func TestMappedTypeIndexSignatureForPrimitiveKey(t *testing.T) {
	b := newProg()
	buildMappedType(b,
		func() { b.op(OpString) },
		func() { b.op(OpNumber) },
		0,
	)

	node := resolve(t, b, nil)
	member := node.Props[0]
	if member.Kind != typeir.KindIndexSignature {
		t.Fatalf("got %+v, want an indexSignature for a primitive key", member)
	}
	if member.Index == nil || member.Index.Kind != typeir.KindString {
		t.Fatalf("got index %+v, want string", member.Index)
	}
	if member.Return == nil || member.Return.Kind != typeir.KindNumber {
		t.Fatalf("got return %+v, want number", member.Return)
	}
}
