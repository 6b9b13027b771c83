// Package rvmhost provides the host-side glue a program embedding the
// reflection VM needs: concrete class handles, a per-handle result cache,
// and a distributable bundle container for compiled packed programs.
package rvmhost

import "github.com/funvibe/rvm/internal/rvm"

// Class is the concrete rvm.ClassHandle/rvm.ProgramOwner a host registers
// for each reflectable type. Name identifies it for diagnostics and as the
// class node's display name; Program is the type's own embedded packed
// program. Every *Class satisfies rvm.ProgramOwner, so classReference and
// rvm.ResolveTypeOf always resolve Program and never fall back to a bare
// class reference: a nil Program decodes to an empty program, and
// resolving it fails with an invalid-program error.
type Class struct {
	ClassName string
	Program   []any
}

func (c *Class) Name() string { return c.ClassName }

// EmbeddedProgram satisfies rvm.ProgramOwner. It returns Program as is,
// nil included.
func (c *Class) EmbeddedProgram() []any { return c.Program }

// Registry is a host's lookup table from class name to handle, the
// concrete backing for the ClassThunk/ProgramThunk closures a compiled
// program's literal pool holds — grounded on the teacher's global builtin
// registries (internal/vm/vm.go RegisterBuiltins) rather than a service
// locator: registration happens once at host startup, lookups are
// read-only afterward.
type Registry struct {
	classes map[string]*Class
}

func NewRegistry() *Registry {
	return &Registry{classes: make(map[string]*Class)}
}

// Register adds or replaces a class handle.
func (r *Registry) Register(c *Class) {
	r.classes[c.ClassName] = c
}

// Lookup returns the registered handle, or nil if none is registered under
// that name.
func (r *Registry) Lookup(name string) *Class {
	return r.classes[name]
}

// Thunk returns an rvm.ClassThunk closing over a registered class, for
// embedding into a literal pool. The name is resolved lazily at call time,
// not at thunk-creation time, so registration order relative to program
// construction doesn't matter (mirrors the deferred-accessor contract in
// spec §3).
func (r *Registry) Thunk(name string) rvm.ClassThunk {
	return func() rvm.ClassHandle {
		if c := r.Lookup(name); c != nil {
			return c
		}
		return &Class{ClassName: name}
	}
}
