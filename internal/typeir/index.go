package typeir

// IndexAccess implements T[K] for object/class/tuple/array/union indexers.
// Unresolvable access yields never rather than an error (spec §7,
// RVMUnresolvedIndex is a downgrade-to-never design choice, not a hard
// error, unless the base itself isn't a type).
func IndexAccess(left, rightIndex *Node) *Node {
	if left == nil || rightIndex == nil {
		return New(KindNever)
	}

	// Distribute over a union index: T[A | B] == T[A] | T[B]
	if rightIndex.Kind == KindUnion {
		results := make([]*Node, 0, len(rightIndex.Types))
		for _, m := range rightIndex.Types {
			results = append(results, IndexAccess(left, m))
		}
		return UnboxUnion(results)
	}

	switch left.Kind {
	case KindArray:
		if rightIndex.Kind == KindNumber || isNumberLiteral(rightIndex) {
			return left.Elem
		}
		return New(KindNever)

	case KindTuple:
		if idx, ok := numberLiteralIndex(rightIndex); ok {
			if idx >= 0 && idx < len(left.Members) {
				return left.Members[idx].Elem
			}
			return New(KindNever)
		}
		if rightIndex.Kind == KindNumber {
			elems := make([]*Node, 0, len(left.Members))
			for _, m := range left.Members {
				elems = append(elems, m.Elem)
			}
			return UnboxUnion(elems)
		}
		return New(KindNever)

	case KindObjectLiteral, KindClass:
		if name, ok := stringLiteral(rightIndex); ok {
			for _, m := range left.Props {
				if m.Name == name {
					return propType(m)
				}
			}
			return New(KindNever)
		}
		return New(KindNever)

	default:
		return New(KindNever)
	}
}

func isNumberLiteral(n *Node) bool {
	if n.Kind != KindLiteral {
		return false
	}
	_, ok := n.Literal.(float64)
	return ok
}

func numberLiteralIndex(n *Node) (int, bool) {
	if n.Kind != KindLiteral {
		return 0, false
	}
	switch v := n.Literal.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

func stringLiteral(n *Node) (string, bool) {
	if n.Kind != KindLiteral {
		return "", false
	}
	s, ok := n.Literal.(string)
	return s, ok
}
