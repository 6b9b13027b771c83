package rvm

import "github.com/funvibe/rvm/internal/typeir"

// ProgramOwner is implemented by a ClassHandle whose class carries its own
// embedded Packed Program (a class with generic members, itself produced by
// the transformer) — spec §4.3 classReference: "if the handle carries its
// own embedded packed program, recursively resolve it through the
// registry; otherwise push a bare class node."
type ProgramOwner interface {
	ClassHandle
	EmbeddedProgram() []any
}

// executeControl handles the control-flow, conditional/generic, and
// cross-program opcodes — everything execute (processor_ops.go) doesn't
// handle directly.
//
// distribute/mappedType implement the spec's "loop-by-return" idiom for
// real: the loop body is called like any other subprogram (push a return
// address, jump, run until `return`), and the return address is computed
// with a negative offset so it lands back on the distribute/mappedType
// opcode itself rather than past it — the opcode refetches its own
// operands on every re-entry (harmless; they're constants — mappedType's
// third operand, the optional/readonly modifier bitmask, is refetched the
// same way) and, using the cursor stashed on its loop frame, either
// dispatches the next member or — once exhausted — collects the
// accumulated results and jumps past the construct. The operand layout
// (and this choice of a real self-referencing jump over a plain Go loop)
// is this implementation's own encoding decision, since the transformer
// that would emit it is out of scope — see DESIGN.md.
func (p *Processor) executeControl(op Opcode) error {
	switch op {
	case OpJump:
		target := p.fetch()
		p.pc = target - 1

	case OpCall:
		target := p.fetch()
		p.call(target, 1, p.frame.Inputs)

	case OpReturn:
		p.ret()

	case OpFrame:
		p.pushFrame(p.frame.Inputs)

	case OpMoveFrame:
		p.moveFrame()

	case OpDistribute:
		return p.opDistribute()

	case OpMappedType:
		return p.opMappedType()

	case OpCondition:
		elseVal := p.popNode()
		thenVal := p.popNode()
		if p.popBool() {
			p.push(nodeSlot(thenVal))
		} else {
			p.push(nodeSlot(elseVal))
		}

	case OpJumpCondition:
		thenTarget := p.fetch()
		elseTarget := p.fetch()
		target := elseTarget
		if p.popBool() {
			target = thenTarget
		}
		p.call(target, 1, p.frame.Inputs)

	case OpExtends:
		right := p.popNode()
		left := p.popNode()
		matchInfer(left, right, p.bindInfer)
		p.push(rawSlot(typeir.IsExtendable(left, right)))

	case OpInfer:
		frameDepth := p.fetch()
		slotIndex := p.fetch()
		if bound, ok := p.lookupInferSlot(frameDepth, slotIndex); ok {
			p.push(nodeSlot(bound))
		} else {
			p.push(nodeSlot(&typeir.Node{
				Kind:   typeir.KindInfer,
				Setter: &typeir.InferSetter{FrameDepth: frameDepth, SlotIndex: slotIndex},
			}))
		}

	case OpIndexAccess:
		index := p.popNode()
		left := p.popNode()
		p.push(nodeSlot(typeir.IndexAccess(left, index)))

	case OpKeyof:
		target := p.popNode()
		p.push(nodeSlot(keyofNode(target)))

	case OpTypeof:
		idx := p.fetch()
		thunk, _ := p.poolValue(idx).(ValueThunk)
		var value any
		if thunk != nil {
			value = thunk()
		}
		p.push(nodeSlot(typeir.TypeInfer(value, p.resolveNested)))

	case OpClassReference:
		return p.opClassReference()

	case OpInline:
		return p.opInline(false)

	case OpInlineCall:
		return p.opInline(true)

	case OpTemplate:
		return p.execute(OpTypeParameter)

	default:
		return p.errorf(CauseInvalidProgram, op.Name(), "unhandled opcode %d", int(op))
	}
	return nil
}

func distributeMembers(n *typeir.Node) []*typeir.Node {
	if n.Kind == typeir.KindUnion {
		return n.Types
	}
	return []*typeir.Node{n}
}

func (p *Processor) opDistribute() error {
	bodyTarget := p.fetch()
	afterTarget := p.fetch()

	if p.frame.Distribute == nil {
		union := p.popNode()
		p.pushFrame(p.frame.Inputs)
		p.frame.Distribute = &distributiveLoopCursor{members: distributeMembers(union)}
	} else {
		result := p.popNode()
		cur := p.frame.Distribute
		cur.results = append(cur.results, result)
		cur.next++
	}

	cur := p.frame.Distribute
	if cur.next < len(cur.members) {
		member := cur.members[cur.next]
		inputs := append(append([]*typeir.Node{}, p.frame.Inputs...), member)
		p.call(bodyTarget, -2, inputs)
		return nil
	}

	final := typeir.UnboxUnion(cur.results)
	p.sp = p.frame.StartIndex
	p.frame = p.frame.Previous
	p.frameDepth--
	p.push(nodeSlot(final))
	p.pc = afterTarget - 1
	return nil
}

// mappedType modifier bits — this implementation's own encoding choice for
// the modifier operand spec §4.3 "Mapped types" describes only in prose
// (`optional(+/-)`, `readonly(+/-)`), since the transformer that would emit
// it is out of scope — see DESIGN.md.
const (
	mappedOptionalPlus  = 1 << 0
	mappedOptionalMinus = 1 << 1
	mappedReadonlyPlus  = 1 << 2
	mappedReadonlyMinus = 1 << 3
)

func applyMappedModifier(n *typeir.Node, modifier int) {
	if modifier&mappedOptionalPlus != 0 {
		n.Optional = true
	}
	if modifier&mappedOptionalMinus != 0 {
		n.Optional = false
	}
	if modifier&mappedReadonlyPlus != 0 {
		n.Readonly = true
	}
	if modifier&mappedReadonlyMinus != 0 {
		n.Readonly = false
	}
}

// mappedMember builds the member produced by one mappedType iteration: an
// index-signature when the iteration key is itself a primitive
// string/number/symbol node, a property-signature named by the key's
// literal value otherwise, with the modifier bits applied.
func mappedMember(key, value *typeir.Node, modifier int) *typeir.Node {
	var member *typeir.Node
	switch key.Kind {
	case typeir.KindString, typeir.KindNumber, typeir.KindSymbol:
		member = &typeir.Node{Kind: typeir.KindIndexSignature, Index: key, Return: value}
	default:
		name, _ := key.Literal.(string)
		member = &typeir.Node{Kind: typeir.KindPropertySignature, Name: name, Return: value}
	}
	applyMappedModifier(member, modifier)
	return member
}

func (p *Processor) opMappedType() error {
	bodyTarget := p.fetch()
	afterTarget := p.fetch()
	modifier := p.fetch()

	if p.frame.MappedLoop == nil {
		keys := p.popNode()
		p.pushFrame(p.frame.Inputs)
		p.frame.MappedLoop = &mappedLoopCursor{members: distributeMembers(keys)}
	} else {
		value := p.popNode()
		cur := p.frame.MappedLoop
		key := cur.members[cur.next]
		if value.Kind != typeir.KindNever {
			cur.results = append(cur.results, mappedMember(key, value, modifier))
		}
		cur.next++
	}

	cur := p.frame.MappedLoop
	if cur.next < len(cur.members) {
		key := cur.members[cur.next]
		inputs := append(append([]*typeir.Node{}, p.frame.Inputs...), key)
		p.call(bodyTarget, -3, inputs)
		return nil
	}

	props := cur.results
	p.sp = p.frame.StartIndex
	p.frame = p.frame.Previous
	p.frameDepth--
	p.push(nodeSlot(&typeir.Node{Kind: typeir.KindObjectLiteral, Props: props}))
	p.pc = afterTarget - 1
	return nil
}

func (p *Processor) opClassReference() error {
	handleIdx := p.fetch()
	args := p.popFrame()

	thunk, _ := p.poolValue(handleIdx).(ClassThunk)
	if thunk == nil {
		return p.errorf(CauseClassResolutionFailure, OpClassReference.Name(), "nil class thunk at pool[%d]", handleIdx)
	}
	handle := thunk()
	if handle == nil {
		return p.errorf(CauseClassResolutionFailure, OpClassReference.Name(), "class thunk at pool[%d] produced no handle", handleIdx)
	}

	if owner, ok := handle.(ProgramOwner); ok {
		prog := p.registry.ProgramFor(handle, owner)
		node, err := p.registry.Resolve(prog, args)
		if err != nil {
			return err
		}
		p.push(nodeSlot(node))
		return nil
	}

	p.push(nodeSlot(&typeir.Node{Kind: typeir.KindClass, Name: handle.Name(), ClassType: handle, TypeArguments: args}))
	return nil
}

func (p *Processor) opInline(withArgs bool) error {
	idx := p.fetch()
	value := p.poolValue(idx)

	var args []*typeir.Node
	if withArgs {
		args = p.popFrame()
	} else {
		args = p.frame.Inputs
	}

	var prog *Program
	switch v := value.(type) {
	case SelfRef:
		prog = p.program
	case ProgramThunk:
		prog = DecodeProgram(v())
	default:
		prog = DecodeProgram(v)
	}

	node, err := p.registry.Resolve(prog, args)
	if err != nil {
		return err
	}
	p.push(nodeSlot(node))
	return nil
}

func (p *Processor) resolveNested(program any, args []*typeir.Node) *typeir.Node {
	prog := DecodeProgram(program)
	node, err := p.registry.Resolve(prog, args)
	if err != nil {
		return typeir.New(typeir.KindUnknown)
	}
	return node
}

func (p *Processor) bindInfer(setter *typeir.InferSetter, value *typeir.Node) {
	f := p.frame
	for i := 0; i < setter.FrameDepth && f.Previous != nil; i++ {
		f = f.Previous
	}
	if f.Inferred == nil {
		f.Inferred = map[int]*typeir.Node{}
	}
	f.Inferred[setter.SlotIndex] = value
}

func (p *Processor) lookupInferSlot(frameDepth, slotIndex int) (*typeir.Node, bool) {
	f := p.frame
	for i := 0; i < frameDepth && f.Previous != nil; i++ {
		f = f.Previous
	}
	if f.Inferred == nil {
		return nil, false
	}
	v, ok := f.Inferred[slotIndex]
	return v, ok
}

// matchInfer walks left alongside right, and whenever right holds an
// `infer` placeholder, binds the corresponding left subtree into its
// ancestor frame slot (spec §4.3 `extends`: "matching an infer placeholder
// binds a concrete type into an ancestor frame slot"). Covers the
// structural shapes an infer placeholder can sensibly appear under;
// anything else is a plain structural check with no bindings.
func matchInfer(left, right *typeir.Node, bind func(*typeir.InferSetter, *typeir.Node)) {
	if left == nil || right == nil {
		return
	}
	if right.Kind == typeir.KindInfer && right.Setter != nil {
		bind(right.Setter, left)
		return
	}
	switch right.Kind {
	case typeir.KindArray:
		if left.Kind == typeir.KindArray {
			matchInfer(left.Elem, right.Elem, bind)
		}
	case typeir.KindPromise:
		if left.Kind == typeir.KindPromise {
			matchInfer(left.Elem, right.Elem, bind)
		}
	case typeir.KindRest:
		if left.Kind == typeir.KindRest {
			matchInfer(left.Elem, right.Elem, bind)
		}
	case typeir.KindTuple:
		if left.Kind == typeir.KindTuple {
			n := len(right.Members)
			if len(left.Members) < n {
				n = len(left.Members)
			}
			for i := 0; i < n; i++ {
				matchInfer(left.Members[i].Elem, right.Members[i].Elem, bind)
			}
		}
	case typeir.KindFunction:
		if left.Kind == typeir.KindFunction {
			n := len(right.Parameters)
			if len(left.Parameters) < n {
				n = len(left.Parameters)
			}
			for i := 0; i < n; i++ {
				matchInfer(left.Parameters[i].Return, right.Parameters[i].Return, bind)
			}
			matchInfer(left.Return, right.Return, bind)
		}
	}
}

// keyofNode implements the `keyof` opcode. Index signatures contribute no
// literal key (there is no finite key set to enumerate) and tuples are not
// currently enumerated either — both fall through to `never`, per the
// Open Question resolution in SPEC_FULL.md §4.
func keyofNode(n *typeir.Node) *typeir.Node {
	switch n.Kind {
	case typeir.KindObjectLiteral, typeir.KindClass:
		var keys []*typeir.Node
		for _, m := range n.Props {
			if m.Kind == typeir.KindIndexSignature {
				continue
			}
			keys = append(keys, typeir.NewLiteral(m.Name))
		}
		return typeir.UnboxUnion(keys)
	default:
		return typeir.New(typeir.KindNever)
	}
}
