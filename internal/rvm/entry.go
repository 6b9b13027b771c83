package rvm

import "github.com/funvibe/rvm/internal/typeir"

// ResolveType is the package's primary entry point (spec §6): decode raw
// and run it to completion with the given type arguments, returning the
// reconstructed Type IR node.
//
// narrowOriginalLiteral (spec §4.5, currently the identity transform — see
// typeir.NarrowOriginalLiteral's doc comment) is applied to the result
// before it is returned, as the spec requires of every entry point rather
// than of Processor.run itself, which is also reached recursively via the
// registry for nested programs that must NOT be narrowed independently of
// their parent.
func ResolveType(raw []any, args []*typeir.Node) (*typeir.Node, error) {
	program := Decode(raw)
	registry := NewRegistry()
	node, err := registry.Resolve(program, args)
	if err != nil {
		return nil, err
	}
	return typeir.NarrowOriginalLiteral(node), nil
}

// ResolveTypeOf resolves the type carried by a class/function handle
// reached independently of a packed program already in hand — e.g. a
// handle obtained from a host's reflection API. If the handle owns an
// embedded program, that program is run; otherwise a bare class reference
// is returned, mirroring the `classReference` opcode's own fallback.
func ResolveTypeOf(handle ClassHandle, args []*typeir.Node) (*typeir.Node, error) {
	if handle == nil {
		return typeir.New(typeir.KindUnknown), nil
	}
	if owner, ok := handle.(ProgramOwner); ok {
		node, err := ResolveType(owner.EmbeddedProgram(), args)
		if err != nil {
			return nil, err
		}
		return node, nil
	}
	return &typeir.Node{Kind: typeir.KindClass, Name: handle.Name(), ClassType: handle, TypeArguments: args}, nil
}
