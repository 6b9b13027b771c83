package typeir

// CartesianProduct accumulates a sequence of union/singleton type lists and
// produces every combination, used by the templateLiteral opcode (spec
// §4.2, §4.3).
type CartesianProduct struct {
	combinations [][]*Node
}

// NewCartesianProduct seeds the accumulator with one empty combination.
func NewCartesianProduct() *CartesianProduct {
	return &CartesianProduct{combinations: [][]*Node{{}}}
}

// Add multiplies the accumulated combinations by the members of part: a
// union part contributes one branch per member, a singleton part is
// appended to every existing combination unchanged.
func (c *CartesianProduct) Add(part *Node) {
	var options []*Node
	if part.Kind == KindUnion {
		options = part.Types
	} else {
		options = []*Node{part}
	}

	next := make([][]*Node, 0, len(c.combinations)*len(options))
	for _, combo := range c.combinations {
		for _, opt := range options {
			extended := make([]*Node, len(combo)+1)
			copy(extended, combo)
			extended[len(combo)] = opt
			next = append(next, extended)
		}
	}
	c.combinations = next
}

// Combinations returns all accumulated combinations.
func (c *CartesianProduct) Combinations() [][]*Node {
	return c.combinations
}
