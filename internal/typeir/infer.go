package typeir

import "math/big"

// Resolver is the callback TypeInfer accepts for resolving a packed program
// reached from a runtime value. Kept as a callback rather than a direct
// import of package rvm to avoid an import cycle: rvm depends on typeir,
// not the reverse. TypeInfer passes it down to nested slice and map values
// but never calls it itself.
type Resolver func(program any, args []*Node) *Node

// TypeInfer produces the IR node that best describes a runtime value,
// implementing the `typeof` opcode (spec §4.2, §4.3). Handles nil, strings,
// booleans, numbers, *big.Int, slices (a union of the element types) and
// string-keyed maps (an object literal); any other value, a class instance
// included, yields unknown.
func TypeInfer(value any, resolve Resolver) *Node {
	switch v := value.(type) {
	case nil:
		return New(KindUndefined)
	case string:
		return NewLiteral(v)
	case bool:
		return NewLiteral(v)
	case float64:
		return NewLiteral(v)
	case int:
		return NewLiteral(float64(v))
	case *big.Int:
		return NewLiteral(v)
	case []any:
		elems := make([]*Node, 0, len(v))
		for _, e := range v {
			elems = append(elems, TypeInfer(e, resolve))
		}
		return UnboxUnion(elems)
	case map[string]any:
		props := make([]*Node, 0, len(v))
		for name, val := range v {
			props = append(props, &Node{
				Kind: KindProperty,
				Name: name,
				Vis:  Public,
				Return: TypeInfer(val, resolve),
			})
		}
		return &Node{Kind: KindObjectLiteral, Props: props}
	default:
		return New(KindUnknown)
	}
}
