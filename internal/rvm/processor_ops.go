package rvm

import (
	"fmt"
	"strings"

	"github.com/funvibe/rvm/internal/typeir"
)

// execute dispatches one opcode. Opcodes that build simple values or
// mutate the top-of-stack node in place live here; control flow,
// conditional/generic machinery, and cross-program resolution live in
// executeControl (processor_conditional.go).
func (p *Processor) execute(op Opcode) error {
	switch op {

	// --- scalar leaves, no operand ---
	case OpString:
		p.push(nodeSlot(typeir.New(typeir.KindString)))
	case OpNumber:
		p.push(nodeSlot(typeir.New(typeir.KindNumber)))
	case OpBoolean:
		p.push(nodeSlot(typeir.New(typeir.KindBoolean)))
	case OpBigInt:
		p.push(nodeSlot(typeir.New(typeir.KindBigInt)))
	case OpVoid:
		p.push(nodeSlot(typeir.New(typeir.KindVoid)))
	case OpUnknown:
		p.push(nodeSlot(typeir.New(typeir.KindUnknown)))
	case OpObject:
		p.push(nodeSlot(typeir.New(typeir.KindObject)))
	case OpNever:
		p.push(nodeSlot(typeir.New(typeir.KindNever)))
	case OpUndefined:
		p.push(nodeSlot(typeir.New(typeir.KindUndefined)))
	case OpSymbol:
		p.push(nodeSlot(typeir.New(typeir.KindSymbol)))
	case OpNull:
		p.push(nodeSlot(typeir.New(typeir.KindNull)))
	case OpAny:
		p.push(nodeSlot(typeir.New(typeir.KindAny)))
	case OpDate:
		p.push(nodeSlot(typeir.New(typeir.KindDate)))
	case OpArrayBuffer:
		p.push(nodeSlot(typeir.New(typeir.KindArrayBuffer)))

	case OpUint8Array, OpInt8Array, OpUint8ClampedArray, OpUint16Array, OpInt16Array,
		OpUint32Array, OpInt32Array, OpFloat32Array, OpFloat64Array, OpBigInt64Array:
		p.push(nodeSlot(typeir.NewTypedArray(op.Name())))

	// --- literal / regexp ---
	case OpLiteral:
		idx := p.fetch()
		p.push(nodeSlot(typeir.NewLiteral(p.poolValue(idx))))

	case OpRegExp:
		idx := p.fetch()
		p.push(nodeSlot(&typeir.Node{Kind: typeir.KindRegExp, Literal: p.poolValue(idx)}))

	case OpTemplateLiteral:
		return p.opTemplateLiteral()

	// --- array / rest / tuple / set / map / promise ---
	case OpArray:
		elem := p.popNode()
		p.push(nodeSlot(typeir.NewArray(elem)))

	case OpRest:
		elem := p.popNode()
		p.push(nodeSlot(typeir.NewRest(elem)))

	case OpTupleMember:
		elem := p.popNode()
		p.push(nodeSlot(&typeir.Node{Kind: typeir.KindTupleMember, Elem: elem}))

	case OpNamedTupleMember:
		nameIdx := p.fetch()
		elem := p.popNode()
		p.push(nodeSlot(&typeir.Node{Kind: typeir.KindTupleMember, Elem: elem, Name: p.poolString(nameIdx)}))

	case OpTuple:
		p.push(nodeSlot(&typeir.Node{Kind: typeir.KindTuple, Members: tupleMembers(p.popFrame())}))

	case OpSet:
		elem := p.popNode()
		p.push(nodeSlot(typeir.NewSet(elem)))

	case OpMap:
		value := p.popNode()
		key := p.popNode()
		p.push(nodeSlot(typeir.NewMap(key, value)))

	case OpPromise:
		inner := p.popNode()
		p.push(nodeSlot(typeir.NewPromise(inner)))

	// --- union / intersection ---
	case OpUnion:
		members := p.popFrame()
		p.push(nodeSlot(typeir.UnboxUnion(members)))

	case OpIntersection:
		return p.opIntersection()

	// --- object members ---
	case OpProperty:
		nameIdx := p.fetch()
		t, optional := typeir.StripOptionalUndefined(p.popNode())
		p.push(nodeSlot(&typeir.Node{Kind: typeir.KindProperty, Name: p.poolString(nameIdx), Return: t, Optional: optional, Vis: typeir.Public}))

	case OpPropertySignature:
		nameIdx := p.fetch()
		t, optional := typeir.StripOptionalUndefined(p.popNode())
		p.push(nodeSlot(&typeir.Node{Kind: typeir.KindPropertySignature, Name: p.poolString(nameIdx), Return: t, Optional: optional}))

	case OpMethod:
		nameIdx := p.fetch()
		fn := p.popNode()
		p.push(nodeSlot(&typeir.Node{Kind: typeir.KindMethod, Name: p.poolString(nameIdx), Parameters: fn.Parameters, Return: fn.Return, Vis: typeir.Public}))

	case OpMethodSignature:
		nameIdx := p.fetch()
		fn := p.popNode()
		p.push(nodeSlot(&typeir.Node{Kind: typeir.KindMethodSignature, Name: p.poolString(nameIdx), Parameters: fn.Parameters, Return: fn.Return}))

	case OpParameter:
		nameIdx := p.fetch()
		t := p.popNode()
		p.push(nodeSlot(&typeir.Node{Kind: typeir.KindParameter, Name: p.poolString(nameIdx), Return: t}))

	case OpFunction:
		ret := p.popNode()
		params := p.popFrame()
		p.push(nodeSlot(&typeir.Node{Kind: typeir.KindFunction, Parameters: params, Return: ret}))

	case OpIndexSignature:
		value := p.popNode()
		key := p.popNode()
		p.push(nodeSlot(&typeir.Node{Kind: typeir.KindIndexSignature, Index: key, Return: value}))

	case OpObjectLiteral:
		props := p.popFrame()
		p.push(nodeSlot(&typeir.Node{Kind: typeir.KindObjectLiteral, Props: props}))

	case OpClass:
		nameIdx := p.fetch()
		handleIdx := p.fetch()
		members := p.popFrame()
		members = append(members, constructorProjectedProperties(members)...)
		n := &typeir.Node{Kind: typeir.KindClass, Name: p.poolString(nameIdx), Props: members}
		if len(p.frame.Inputs) > 0 {
			n.Arguments = p.frame.Inputs
		}
		if handleIdx >= 0 {
			if thunk, ok := p.poolValue(handleIdx).(ClassThunk); ok && thunk != nil {
				n.ClassType = thunk()
			}
		}
		p.push(nodeSlot(n))

	case OpEnum:
		nameIdx := p.fetch()
		thunkIdx := p.fetch()
		thunk, _ := p.poolValue(thunkIdx).(EnumThunk)
		n := &typeir.Node{Kind: typeir.KindEnum, Name: p.poolString(nameIdx), EnumMap: map[string]any{}}
		if thunk != nil {
			next := 0.0
			for _, m := range thunk() {
				if m.Default != nil {
					next = *m.Default
				}
				n.EnumMap[m.Name] = next
				next++
			}
		}
		p.push(nodeSlot(n))

	case OpEnumMember:
		nameIdx := p.fetch()
		enumNode := p.popNode()
		p.push(nodeSlot(&typeir.Node{Kind: typeir.KindEnumMember, Name: p.poolString(nameIdx), Return: enumNode}))

	// --- adjectives: mutate top-of-stack node in place ---
	case OpOptional:
		p.peek().node.Optional = true
	case OpReadonly:
		p.peek().node.Readonly = true
	case OpPublic:
		n := p.peek().node
		n.Vis, n.HasVis = typeir.Public, true
	case OpProtected:
		n := p.peek().node
		n.Vis, n.HasVis = typeir.Protected, true
	case OpPrivate:
		n := p.peek().node
		n.Vis, n.HasVis = typeir.Private, true
	case OpAbstract:
		p.peek().node.IsAbstract = true
	case OpDefaultValue:
		def := p.popNode()
		p.peek().node.Default = def
	case OpDescription:
		idx := p.fetch()
		p.peek().node.Description = p.poolString(idx)

	case OpNumberBrand:
		idx := p.fetch()
		p.push(nodeSlot(typeir.NewNumberBrand(p.poolString(idx))))

	// --- generics / local storage ---
	case OpTypeParameter:
		idx := p.fetch()
		if idx >= 0 && idx < len(p.frame.Inputs) && p.frame.Inputs[idx] != nil {
			p.push(nodeSlot(p.frame.Inputs[idx]))
		} else {
			p.push(nodeSlot(typeir.New(typeir.KindUnknown)))
		}

	case OpTypeParameterDefault:
		idx := p.fetch()
		def := p.popNode()
		if idx >= 0 && idx < len(p.frame.Inputs) && p.frame.Inputs[idx] != nil {
			p.push(nodeSlot(p.frame.Inputs[idx]))
		} else {
			p.push(nodeSlot(def))
		}

	case OpVar:
		p.push(nodeSlot(typeir.New(typeir.KindNever)))
		p.frame.Variables++

	case OpLoads:
		return p.opLoads()

	case OpArg:
		n := p.fetch()
		idx := p.frame.StartIndex - n
		if idx < 0 || idx > p.sp {
			return p.errorf(CauseInvalidProgram, op.Name(), "arg offset %d out of range", n)
		}
		p.push(p.stack[idx])

	default:
		return p.executeControl(op)
	}
	return nil
}

// tupleMembers finalizes a `tuple` frame: a slot already shaped as a
// tuple-member passes through unchanged; a rest slot whose inner is itself a
// tuple is spliced in place (its members become this tuple's members
// directly, not nested another level); everything else is wrapped as a
// tuple-member (spec §4.3 "Container types").
func tupleMembers(raw []*typeir.Node) []*typeir.Node {
	out := make([]*typeir.Node, 0, len(raw))
	for _, m := range raw {
		switch {
		case m.Kind == typeir.KindTupleMember:
			out = append(out, m)
		case m.Kind == typeir.KindRest && m.Elem != nil && m.Elem.Kind == typeir.KindTuple:
			out = append(out, m.Elem.Members...)
		default:
			out = append(out, &typeir.Node{Kind: typeir.KindTupleMember, Elem: m})
		}
	}
	return out
}

// constructorProjectedProperties scans a class's member list for a method
// named "constructor" and projects each of its parameters that carries a
// visibility modifier into a synthetic property member with the same name,
// type, optional, and readonly flags (spec §4.3 "class", §8 "Constructor
// projection").
func constructorProjectedProperties(members []*typeir.Node) []*typeir.Node {
	var ctor *typeir.Node
	for _, m := range members {
		if m.Kind == typeir.KindMethod && m.Name == "constructor" {
			ctor = m
			break
		}
	}
	if ctor == nil {
		return nil
	}

	var projected []*typeir.Node
	for _, param := range ctor.Parameters {
		if !param.HasVis {
			continue
		}
		projected = append(projected, &typeir.Node{
			Kind:     typeir.KindProperty,
			Name:     param.Name,
			Return:   param.Return,
			Optional: param.Optional,
			Readonly: param.Readonly,
			Vis:      param.Vis,
			HasVis:   true,
		})
	}
	return projected
}

func (p *Processor) poolString(idx int) string {
	s, _ := p.poolValue(idx).(string)
	return s
}

func (p *Processor) opTemplateLiteral() error {
	parts := p.popFrame()
	cp := typeir.NewCartesianProduct()
	for _, part := range parts {
		cp.Add(part)
	}
	combos := cp.Combinations()
	results := make([]*typeir.Node, 0, len(combos))
	for _, combo := range combos {
		results = append(results, templateCombo(combo))
	}
	p.push(nodeSlot(typeir.UnboxUnion(results)))
	return nil
}

func templateCombo(parts []*typeir.Node) *typeir.Node {
	var sb strings.Builder
	allLiteral := true
	for _, part := range parts {
		if part.Kind != typeir.KindLiteral {
			allLiteral = false
			break
		}
		sb.WriteString(fmt.Sprint(part.Literal))
	}
	if allLiteral {
		return typeir.NewLiteral(sb.String())
	}
	return &typeir.Node{Kind: typeir.KindTemplateLiteral, Types: append([]*typeir.Node{}, parts...)}
}

// intersectionMergeKey annotates the result when a primitive intersection
// member absorbs merge candidates (spec §4.3 "Union/Intersection": "a
// primitive in the intersection becomes the result, with merge candidates
// attached under a default-annotation key"); the spec names no exact key, so
// this implementation picks one and keeps it fixed.
const intersectionMergeKey = "merged"

func (p *Processor) opIntersection() error {
	members := p.popFrame()
	var primitives, candidates, decorators []*typeir.Node
	for _, m := range members {
		switch {
		case typeir.IsDecorator(m):
			decorators = append(decorators, m)
		case m.Kind == typeir.KindObjectLiteral || m.Kind == typeir.KindClass:
			candidates = append(candidates, m)
		default:
			primitives = append(primitives, m)
		}
	}

	var result *typeir.Node
	if len(primitives) > 0 {
		result = primitives[0]
		if len(candidates) > 0 {
			if result.Annotations == nil {
				result.Annotations = map[string]any{}
			}
			result.Annotations[intersectionMergeKey] = typeir.Merge(candidates)
		}
	} else {
		result = typeir.Merge(candidates)
	}

	result.Decorators = append(result.Decorators, decorators...)
	for _, d := range decorators {
		for k, v := range d.Annotations {
			if result.Annotations == nil {
				result.Annotations = map[string]any{}
			}
			result.Annotations[k] = v
		}
	}

	p.push(nodeSlot(result))
	return nil
}

func (p *Processor) opLoads() error {
	frameOffset := p.fetch()
	slotIndex := p.fetch()
	f := p.frame
	for i := 0; i < frameOffset && f.Previous != nil; i++ {
		f = f.Previous
	}
	idx := f.StartIndex + 1 + slotIndex
	if idx < 0 || idx > p.sp {
		return p.errorf(CauseInvalidProgram, OpLoads.Name(), "loads index %d out of range", idx)
	}
	p.push(p.stack[idx])
	return nil
}
