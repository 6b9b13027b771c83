package rvm

import (
	"github.com/funvibe/rvm/internal/rvmconfig"
	"github.com/funvibe/rvm/internal/typeir"
)

// distributiveLoopCursor tracks progress through a `distribute` opcode's
// walk over a union's members (spec §4.3 "Distribute"). One is attached to
// the frame that brackets the loop body.
type distributiveLoopCursor struct {
	members []*typeir.Node
	next    int
	results []*typeir.Node
}

// mappedLoopCursor tracks progress through a `mappedType` opcode's walk
// over a union's members, building property nodes instead of plain types.
type mappedLoopCursor struct {
	members []*typeir.Node
	next    int
	results []*typeir.Node
}

// Frame is one call frame of the RVM's stack (spec §4.3 "Machine state").
// Frames form a singly linked list back to the entry frame via Previous;
// Call pushes a new one, Return/MoveFrame/PopFrame pop it.
type Frame struct {
	// StartIndex is the stack index this frame is anchored to. For a frame
	// created by Call, that is the index of the return-address slot pushed
	// just before it — Return reads the return address straight from
	// stack[StartIndex]. For a frame created by Frame (no call, used to
	// bracket variadic productions such as member lists), it is simply the
	// stack pointer at the time of the push — there is no return address.
	StartIndex int

	// Variables counts local slots reserved by `var` within this frame, so
	// PopFrame knows where the bracketed production actually starts (after
	// the reserved locals) rather than at StartIndex+1.
	Variables int

	// Inputs are the type arguments this frame's program was invoked with —
	// what `typeParameter`/`typeParameterDefault` read from.
	Inputs []*typeir.Node

	// Distribute/MappedLoop carry the in-progress union walk when this
	// frame brackets a `distribute` or `mappedType` opcode; nil otherwise.
	Distribute *distributiveLoopCursor
	MappedLoop *mappedLoopCursor

	// Inferred holds infer-variable bindings made by `extends` matches
	// against this frame (keyed by InferSetter.SlotIndex), looked up by
	// `infer` once the placeholder's frameDepth walk reaches this frame.
	Inferred map[int]*typeir.Node

	Previous *Frame
}

// call implements the Call opcode's calling convention (spec §4.3): push
// the current program counter plus returnOffset as a return address, open
// a new frame anchored at that return-address slot, and jump to target by
// setting pc so the next fetch lands on it.
//
// returnOffset defaults to 1 (resume at the instruction after Call);
// loop bodies re-entering the same opcode pass minus that opcode's operand
// count (-2 for distribute, -3 for mappedType), so the return address is
// the opcode's own stream index — the distribute/mappedType loop idiom.
func (p *Processor) call(target int, returnOffset int, inputs []*typeir.Node) {
	retAddr := p.pc + returnOffset
	p.push(rawSlot(retAddr))
	p.frame = &Frame{
		StartIndex: p.sp,
		Inputs:     inputs,
		Previous:   p.frame,
	}
	p.frameDepth++
	if p.frameDepth > rvmconfig.MaxFrameCount {
		panic(errStackOverflow)
	}
	p.pc = target - 1
}

// ret implements the Return opcode: pop the return value, read the return
// address stored at frame.StartIndex, truncate the stack to
// frame.StartIndex-1 (discarding the return-address slot and anything
// above it), push the return value back, restore the parent frame, and
// resume just before the return address so the next fetch lands on it.
func (p *Processor) ret() {
	value := p.pop()
	retAddr := p.stack[p.frame.StartIndex].raw.(int)
	p.sp = p.frame.StartIndex - 1
	p.push(value)
	p.frame = p.frame.Previous
	p.frameDepth--
	p.pc = retAddr - 1
}

// pushFrame implements the Frame opcode: open a new frame with no return
// address, anchored at the current stack pointer. Used to bracket
// variadic productions (tuple members, object-literal properties, union
// members, …) that are later collected by popFrame.
func (p *Processor) pushFrame(inputs []*typeir.Node) {
	p.frame = &Frame{
		StartIndex: p.sp,
		Inputs:     inputs,
		Previous:   p.frame,
	}
	p.frameDepth++
	if p.frameDepth > rvmconfig.MaxFrameCount {
		panic(errStackOverflow)
	}
}

// popFrame implements the PopFrame half of the Frame/PopFrame pair: the
// slots between startIndex+variables+1 and the current top are the
// produced list, the stack truncates to startIndex, and the parent frame
// is restored.
func (p *Processor) popFrame() []*typeir.Node {
	start := p.frame.StartIndex + p.frame.Variables + 1
	out := make([]*typeir.Node, 0, p.sp-start+1)
	for i := start; i <= p.sp; i++ {
		if p.stack[i].node != nil {
			out = append(out, p.stack[i].node)
		}
	}
	p.sp = p.frame.StartIndex
	p.frame = p.frame.Previous
	p.frameDepth--
	return out
}

// moveFrame implements the MoveFrame opcode: discard the current frame
// while preserving the top-of-stack value, without collecting a member
// list the way popFrame does.
func (p *Processor) moveFrame() {
	top := p.pop()
	p.sp = p.frame.StartIndex
	p.frame = p.frame.Previous
	p.frameDepth--
	p.push(top)
}
