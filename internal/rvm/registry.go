package rvm

import "github.com/funvibe/rvm/internal/typeir"

// Registry maps an in-flight Packed Program, keyed by pointer identity, to
// the Processor resolving it — spec §4.4's cycle guard for self-referential
// types. Grounded on the teacher's module-load cycle guard
// (internal/vm/vm.go moduleCache/loadingModules): a program already being
// resolved is never started twice; the second caller gets the first
// caller's in-progress result node instead of recursing forever.
//
// A Registry is single-use per top-level resolution and is never shared
// across goroutines — the RVM has no concurrency story (spec §1 Non-goals).
type Registry struct {
	active   map[*Program]*Processor
	programs map[ClassHandle]*Program
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		active:   make(map[*Program]*Processor),
		programs: make(map[ClassHandle]*Program),
	}
}

// ProgramFor decodes owner's embedded program the first time handle is seen
// and returns the same *Program on every later call for that handle. A
// class/interface reached repeatedly through `classReference` — directly
// recursive (spec §8 scenario 6, `interface Tree { children: Tree[] }`) or
// through a mutual cycle — must resolve to one shared *Program pointer, since
// Resolve's cycle guard keys re-entrance on pointer identity alone; decoding
// fresh on every reference would spawn an unrecognized new Processor each
// time and recurse until the native Go call stack overflows instead of
// hitting the cached resultAnchor.
func (r *Registry) ProgramFor(handle ClassHandle, owner ProgramOwner) *Program {
	if prog, ok := r.programs[handle]; ok {
		return prog
	}
	prog := DecodeProgram(owner.EmbeddedProgram())
	r.programs[handle] = prog
	return prog
}

// Resolve runs program with the given type arguments, reusing the
// in-progress Processor (and its pre-allocated result anchor) if program is
// already being resolved somewhere up the call chain.
func (r *Registry) Resolve(program *Program, args []*typeir.Node) (*typeir.Node, error) {
	if proc, ok := r.active[program]; ok {
		// Cyclic reference: the anchor node is returned as-is. It is the
		// same *Node the original caller will finish populating, so once
		// that caller's Run completes, this reference observes the
		// completed structure through the shared pointer.
		return proc.resultAnchor, nil
	}

	proc := newProcessor(program, args, r)
	r.active[program] = proc
	defer delete(r.active, program)

	return proc.run()
}
