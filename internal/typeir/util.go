package typeir

// FlattenUnionTypes recursively inlines nested unions and drops never,
// grounded on typesystem.NormalizeUnion's flatten pass in the teacher repo
// (internal/typesystem/types.go).
func FlattenUnionTypes(ts []*Node) []*Node {
	out := make([]*Node, 0, len(ts))
	for _, t := range ts {
		if t == nil || t.Kind == KindNever {
			continue
		}
		if t.Kind == KindUnion {
			out = append(out, FlattenUnionTypes(t.Types)...)
			continue
		}
		out = append(out, t)
	}
	return out
}

// UnboxUnion flattens types with FlattenUnionTypes and returns never when
// nothing is left, the single member directly when exactly one is left, and
// otherwise a new union of the flattened members.
func UnboxUnion(types []*Node) *Node {
	flat := FlattenUnionTypes(types)
	if len(flat) == 0 {
		return New(KindNever)
	}
	if len(flat) == 1 {
		return flat[0]
	}
	return &Node{Kind: KindUnion, Types: flat}
}

// NewUnion builds a flattened, possibly-unboxed union from raw members.
func NewUnion(types []*Node) *Node {
	return UnboxUnion(types)
}

// NarrowOriginalLiteral returns t unchanged. It exists as the seam spec.md
// §4.2 calls out — a deliberate design choice to preserve the caller's
// explicit literal rather than widen it to its base primitive — and is kept
// as a named function so that policy can change in one place.
func NarrowOriginalLiteral(t *Node) *Node {
	return t
}

// StripOptionalUndefined reduces a two-member `T | undefined` union to T and
// reports whether the reduction applied. Used by property/propertySignature
// construction (spec §4.3).
func StripOptionalUndefined(t *Node) (*Node, bool) {
	if t.Kind != KindUnion || len(t.Types) != 2 {
		return t, false
	}
	var other *Node
	sawUndefined := false
	for _, m := range t.Types {
		if m.Kind == KindUndefined {
			sawUndefined = true
			continue
		}
		other = m
	}
	if sawUndefined && other != nil {
		return other, true
	}
	return t, false
}
