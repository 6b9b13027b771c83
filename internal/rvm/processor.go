package rvm

import (
	"runtime"

	"github.com/funvibe/rvm/internal/rvmconfig"
	"github.com/funvibe/rvm/internal/typeir"
)

// errStackOverflow is a sentinel panicked by push/call when a packed
// program grows the operand stack or frame chain past rvmconfig's
// ceilings. run recovers it and turns it into an RVMError, and does the
// same for a Go runtime error (such as the out-of-range index a stack
// underflow causes); any other panic propagates, matching the teacher's recover-and-rethrow idiom in
// internal/vm/vm.go's Run.
var errStackOverflow = &RVMError{Cause: CauseInvalidProgram}

// slot is one operand-stack entry. It is a node (a fully or partially built
// IR value) or a raw value (a return address, the boolean `extends` pushes,
// or a copy of such a slot made by `loads`/`arg`) — never both. Mirrors the teacher's
// tagged Value (internal/vm/value.go) rather than boxing everything behind
// `any`, so the common case (passing a *typeir.Node around) costs no extra
// allocation.
type slot struct {
	node *typeir.Node
	raw  any
}

func nodeSlot(n *typeir.Node) slot { return slot{node: n} }
func rawSlot(v any) slot          { return slot{raw: v} }

// Processor executes one Packed Program to completion (spec §4.3 "Machine
// state"): an operand stack, the current frame, a program counter, and a
// shared registry for recursive resolution of nested programs.
type Processor struct {
	stack []slot
	sp    int // index of the top occupied slot; -1 when empty

	frame *Frame
	pc    int

	program *Program
	ops     []int
	pool    []any

	registry *Registry

	// frameDepth counts the Frame chain's length, guarded against
	// rvmconfig.MaxFrameCount by call/pushFrame.
	frameDepth int

	// resultAnchor is pre-allocated before Run starts and mutated in place
	// once the top-level production completes, so a cyclic reference
	// observed mid-run (via Registry.Resolve) sees the same pointer the
	// caller eventually fills in.
	resultAnchor *typeir.Node
}

func newProcessor(program *Program, args []*typeir.Node, registry *Registry) *Processor {
	p := &Processor{
		stack:        make([]slot, rvmconfig.InitialStackDepth),
		sp:           -1,
		program:      program,
		ops:          program.Stream,
		pool:         program.Pool,
		registry:     registry,
		resultAnchor: typeir.New(typeir.KindNever),
	}
	p.frame = &Frame{StartIndex: -1, Inputs: args}
	return p
}

// push grows the stack by StackGrowthIncrement or a doubling, whichever is
// larger, the same rule as the teacher's VM.push (internal/vm/vm.go:1068),
// and panics errStackOverflow once MaxStackSize would be exceeded rather
// than growing unboundedly.
func (p *Processor) push(s slot) {
	p.sp++
	if p.sp >= len(p.stack) {
		if p.sp >= rvmconfig.MaxStackSize {
			panic(errStackOverflow)
		}
		growBy := rvmconfig.StackGrowthIncrement
		if len(p.stack) > growBy {
			growBy = len(p.stack)
		}
		grown := make([]slot, len(p.stack)+growBy)
		copy(grown, p.stack)
		p.stack = grown
	}
	p.stack[p.sp] = s
}

func (p *Processor) pop() slot {
	s := p.stack[p.sp]
	p.stack[p.sp] = slot{}
	p.sp--
	return s
}

func (p *Processor) peek() slot { return p.stack[p.sp] }

func (p *Processor) popNode() *typeir.Node {
	s := p.pop()
	if s.node != nil {
		return s.node
	}
	return typeir.New(typeir.KindNever)
}

func (p *Processor) popBool() bool {
	s := p.pop()
	b, _ := s.raw.(bool)
	return b
}

// fetch reads the next stream entry and advances pc. Used both to read the
// next opcode and, by an opcode's handler, to read its immediate operands —
// see Program.Stream's doc comment on the variable-length-instruction
// idiom.
func (p *Processor) fetch() int {
	p.pc++
	if p.pc >= len(p.ops) {
		return -1
	}
	return p.ops[p.pc]
}

func (p *Processor) poolValue(index int) any {
	if index < 0 || index >= len(p.pool) {
		return nil
	}
	return p.pool[index]
}

// run executes the instruction stream to completion and returns the final
// production. narrowOriginalLiteral (spec §4.5) is applied by the public
// entry points in entry.go, not here; StripOptionalUndefined is applied
// earlier, during property/propertySignature construction itself
// (processor_ops.go), since it is a per-member reduction rather than a
// whole-result pass.
func (p *Processor) run() (result *typeir.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			if r == errStackOverflow {
				err = p.errorf(CauseInvalidProgram, "push", "stack or frame depth exceeded its configured ceiling")
				return
			}
			if re, ok := r.(runtime.Error); ok {
				err = p.errorf(CauseInvalidProgram, "run", "malformed program: %v", re)
				return
			}
			panic(r)
		}
	}()

	p.pc = -1
	for {
		op := p.fetch()
		if op < 0 {
			break
		}
		if err := p.execute(Opcode(op)); err != nil {
			return nil, err
		}
	}

	// Call/Return only ever jump within this same instruction stream (loop
	// bodies, conditional branches); cross-program resolution goes through
	// the registry explicitly. So reaching end of stream, with the net
	// effect of every Call balanced by a Return, always leaves exactly the
	// production on top of the stack.
	if p.sp < 0 {
		return nil, p.errorf(CauseInvalidProgram, "return", "program produced no value")
	}
	popped := p.popNode()
	popped.CloneInto(p.resultAnchor)
	return p.resultAnchor, nil
}
