package typeir

// Merge performs a structural merge of object-literal/class candidates for
// intersections (spec §4.2). Later candidates' members win on name
// collision, matching the teacher's TRecord field-map merge semantics
// (internal/typesystem/types.go TRecord).
func Merge(candidates []*Node) *Node {
	if len(candidates) == 0 {
		return New(KindObjectLiteral)
	}
	if len(candidates) == 1 {
		return candidates[0]
	}

	byName := make(map[string]*Node)
	order := make([]string, 0)
	for _, c := range candidates {
		for _, m := range c.Props {
			if _, exists := byName[m.Name]; !exists {
				order = append(order, m.Name)
			}
			byName[m.Name] = m
		}
	}

	props := make([]*Node, 0, len(order))
	for _, name := range order {
		props = append(props, byName[name])
	}

	return &Node{Kind: KindObjectLiteral, Props: props}
}
