package typeir

import "testing"

func TestIsDecoratorMarkerObjectLiteral(t *testing.T) {
	marker := &Node{Kind: KindObjectLiteral, Annotations: map[string]any{"readonly": true}}
	if !IsDecorator(marker) {
		t.Fatalf("a no-member object literal with annotations should be recognized as a decorator")
	}
}

func TestIsDecoratorRejectsStructuralObjectLiteral(t *testing.T) {
	structural := &Node{Kind: KindObjectLiteral, Props: []*Node{{Kind: KindPropertySignature, Name: "a"}}}
	if IsDecorator(structural) {
		t.Fatalf("an object literal with structural members should not be treated as a decorator")
	}
}

func TestIsDecoratorRejectsNonObjectLiteral(t *testing.T) {
	if IsDecorator(New(KindString)) {
		t.Fatalf("a non-object-literal kind can never be a decorator")
	}
}

func TestRegisterDecoratorPredicateExtendsRecognition(t *testing.T) {
	marker := &Node{Kind: KindObjectLiteral, Name: "__custom"}
	if IsDecorator(marker) {
		t.Fatalf("should not be recognized before the custom predicate is registered")
	}

	RegisterDecoratorPredicate(func(n *Node) bool { return n.Name == "__custom" })
	t.Cleanup(func() {
		decoratorPredicates = decoratorPredicates[:len(decoratorPredicates)-1]
	})

	if !IsDecorator(marker) {
		t.Fatalf("should be recognized once a matching predicate is registered")
	}
}
