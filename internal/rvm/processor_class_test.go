package rvm

import (
	"testing"

	"github.com/funvibe/rvm/internal/typeir"
)

// TestClassConstructorParameterProjection builds a class with a single
// constructor method whose one parameter carries public+readonly
// visibility, and checks the parameter is projected into a synthetic
// property member alongside the constructor method itself.
func TestClassConstructorParameterProjection(t *testing.T) {
	b := newProg()
	classNameIdx := b.lit("Point")
	handleIdx := b.lit(ClassThunk(func() ClassHandle { return fakeHandle{"PointHandle"} }))
	paramNameIdx := b.lit("x")
	ctorNameIdx := b.lit("constructor")

	b.op(OpFrame) // class member list

	b.op(OpFrame) // constructor's parameter list
	b.op(OpNumber)
	b.op(OpParameter).imm(paramNameIdx)
	b.op(OpPublic)
	b.op(OpReadonly)
	b.op(OpVoid)
	b.op(OpFunction)
	b.op(OpMethod).imm(ctorNameIdx)

	b.op(OpClass).imm(classNameIdx).imm(handleIdx)

	node := resolve(t, b, nil)
	if node.Kind != typeir.KindClass {
		t.Fatalf("got %+v, want a class node", node)
	}
	if len(node.Props) != 2 {
		t.Fatalf("got %d members, want 2 (constructor + projected property)", len(node.Props))
	}
	if node.Props[0].Kind != typeir.KindMethod || node.Props[0].Name != "constructor" {
		t.Fatalf("got first member %+v, want the constructor method", node.Props[0])
	}

	projected := node.Props[1]
	if projected.Kind != typeir.KindProperty || projected.Name != "x" {
		t.Fatalf("got %+v, want a projected property named x", projected)
	}
	if projected.Return == nil || projected.Return.Kind != typeir.KindNumber {
		t.Fatalf("got projected return %+v, want number", projected.Return)
	}
	if !projected.HasVis || projected.Vis != typeir.Public {
		t.Fatalf("got %+v, want public visibility carried over from the constructor parameter", projected)
	}
	if !projected.Readonly {
		t.Fatalf("got %+v, want readonly carried over from the constructor parameter", projected)
	}
}

// TestClassWithoutConstructorProjectsNothing confirms a class with ordinary
// members and no constructor method is left untouched.
func TestClassWithoutConstructorProjectsNothing(t *testing.T) {
	b := newProg()
	classNameIdx := b.lit("Plain")
	handleIdx := b.lit(ClassThunk(func() ClassHandle { return fakeHandle{"PlainHandle"} }))
	propNameIdx := b.lit("a")

	b.op(OpFrame)
	b.op(OpString)
	b.op(OpProperty).imm(propNameIdx)
	b.op(OpClass).imm(classNameIdx).imm(handleIdx)

	node := resolve(t, b, nil)
	if len(node.Props) != 1 {
		t.Fatalf("got %d members, want 1 (no projection without a constructor)", len(node.Props))
	}
}

// TestClassCapturesTypeArguments checks a class resolved with type
// arguments records them on Arguments.
func TestClassCapturesTypeArguments(t *testing.T) {
	b := newProg()
	classNameIdx := b.lit("Box")
	handleIdx := b.lit(ClassThunk(func() ClassHandle { return fakeHandle{"BoxHandle"} }))

	b.op(OpFrame)
	b.op(OpClass).imm(classNameIdx).imm(handleIdx)

	arg := typeir.New(typeir.KindNumber)
	node := resolve(t, b, []*typeir.Node{arg})
	if len(node.Arguments) != 1 || node.Arguments[0] != arg {
		t.Fatalf("got Arguments %+v, want [arg]", node.Arguments)
	}
}

// TestClassWithNoInputsLeavesArgumentsNil checks a class resolved with no
// type arguments leaves Arguments unset rather than an empty non-nil slice.
func TestClassWithNoInputsLeavesArgumentsNil(t *testing.T) {
	b := newProg()
	classNameIdx := b.lit("Box")
	handleIdx := b.lit(ClassThunk(func() ClassHandle { return fakeHandle{"BoxHandle"} }))

	b.op(OpFrame)
	b.op(OpClass).imm(classNameIdx).imm(handleIdx)

	node := resolve(t, b, nil)
	if len(node.Arguments) != 0 {
		t.Fatalf("got Arguments %+v, want none", node.Arguments)
	}
}
