package typeir

// DecoratorPredicate decides whether an object-literal candidate in an
// intersection is actually decorator metadata rather than a structural
// member contributor (spec §4.2 `intersection` opcode). Grounded on the
// teacher's registered-predicate style for trait/extension dispatch
// (internal/vm/vm.go traitMethods/extensionMethods registries), simplified
// to a closed registration set since RVM decorator recognition never
// mutates at runtime.
type DecoratorPredicate func(*Node) bool

var decoratorPredicates []DecoratorPredicate

// RegisterDecoratorPredicate adds a predicate used to recognize decorator
// marker object-literals during intersection evaluation.
func RegisterDecoratorPredicate(p DecoratorPredicate) {
	decoratorPredicates = append(decoratorPredicates, p)
}

// IsDecorator reports whether n should be treated as decorator metadata
// rather than a structural intersection member.
func IsDecorator(n *Node) bool {
	if n.Kind != KindObjectLiteral {
		return false
	}
	for _, p := range decoratorPredicates {
		if p(n) {
			return true
		}
	}
	return false
}

func init() {
	// A bare marker object literal with no members and at least one
	// annotation is treated as a decorator, matching the "object-literal
	// types treated as markers" rule in spec §3.
	RegisterDecoratorPredicate(func(n *Node) bool {
		return len(n.Props) == 0 && len(n.Annotations) > 0
	})
}
