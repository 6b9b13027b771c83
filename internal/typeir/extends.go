package typeir

// IsExtendable implements the structural assignability check used by the
// `extends` opcode: does left structurally extend right? Distribution over
// unions is the caller's job (the `distribute` opcode), not this function's
// — see spec §4.2.
func IsExtendable(left, right *Node) bool {
	if left == nil || right == nil {
		return false
	}

	switch right.Kind {
	case KindAny, KindUnknown, KindInfer:
		// an infer placeholder accepts any type; binding it is the
		// processor's job (see matchInfer in package rvm)
		return true
	case KindNever:
		return left.Kind == KindNever
	}

	switch left.Kind {
	case KindNever:
		return true
	case KindAny, KindUnknown:
		return right.Kind == KindAny || right.Kind == KindUnknown
	}

	// literal <-> primitive
	if left.Kind == KindLiteral {
		if right.Kind == KindLiteral {
			return literalsEqual(left.Literal, right.Literal)
		}
		return extendsPrimitiveOfLiteral(left.Literal, right.Kind)
	}

	// union on the left: every member must extend right (this is the
	// non-distributive, "is this whole union assignable" check; the
	// distribute opcode handles member-wise branching separately).
	if left.Kind == KindUnion {
		for _, m := range left.Types {
			if !IsExtendable(m, right) {
				return false
			}
		}
		return true
	}
	if right.Kind == KindUnion {
		for _, m := range right.Types {
			if IsExtendable(left, m) {
				return true
			}
		}
		return false
	}

	if left.Kind != right.Kind {
		// object-literal / class are structurally interchangeable targets
		structuralPair := isStructuralKind(left.Kind) && isStructuralKind(right.Kind)
		if !structuralPair {
			return false
		}
	}

	switch right.Kind {
	case KindArray:
		if left.Kind != KindArray {
			return false
		}
		return IsExtendable(left.Elem, right.Elem)

	case KindTuple:
		if left.Kind != KindTuple {
			return false
		}
		if len(left.Members) < len(right.Members) {
			return false
		}
		for i, rm := range right.Members {
			lm := left.Members[i]
			if !IsExtendable(lm.Elem, rm.Elem) {
				return false
			}
			if rm.Optional && !lm.Optional {
				// fine: required extends optional
			}
			if !rm.Optional && lm.Optional {
				return false
			}
		}
		return true

	case KindObjectLiteral, KindClass:
		return structuralExtends(members(left), members(right))

	case KindPromise:
		if left.Kind != KindPromise {
			return false
		}
		return IsExtendable(left.Elem, right.Elem)

	default:
		return true
	}
}

func isStructuralKind(k Kind) bool {
	return k == KindObjectLiteral || k == KindClass
}

func members(n *Node) []*Node {
	if n.Kind == KindClass {
		return n.Props
	}
	return n.Props
}

// structuralExtends requires every member named on the right to have a
// same-named, extendable-typed counterpart on the left.
func structuralExtends(left, right []*Node) bool {
	byName := make(map[string]*Node, len(left))
	for _, m := range left {
		byName[m.Name] = m
	}
	for _, rm := range right {
		lm, ok := byName[rm.Name]
		if !ok {
			if rm.Optional {
				continue
			}
			return false
		}
		if !IsExtendable(propType(lm), propType(rm)) {
			return false
		}
	}
	return true
}

func propType(n *Node) *Node {
	switch n.Kind {
	case KindMethod, KindMethodSignature:
		return &Node{Kind: KindFunction, Parameters: n.Parameters, Return: n.Return}
	default:
		if n.Return != nil {
			return n.Return
		}
		return n
	}
}

func extendsPrimitiveOfLiteral(lit any, k Kind) bool {
	switch lit.(type) {
	case string:
		return k == KindString
	case float64, int, int64:
		return k == KindNumber
	case bool:
		return k == KindBoolean
	default:
		return false
	}
}

func literalsEqual(a, b any) bool {
	return a == b
}
