// Package rvmconfig holds the RVM's build-time tunables: the operand
// stack's initial capacity and growth increment, and the ceilings that
// guard against a malformed or pathologically recursive packed program
// running away with memory. Mirrors the teacher's InitialStackSize /
// StackGrowthIncrement / MaxFrameCount constants (internal/vm/vm.go),
// repurposed for the RVM's single operand stack rather than a per-closure
// value stack.
package rvmconfig

const (
	// InitialStackDepth is the operand stack's starting slot capacity.
	InitialStackDepth = 128

	// StackGrowthIncrement is the minimum number of slots added each time
	// the stack grows; growth doubles the current capacity when that is
	// larger, the same "increment or double, whichever is larger" rule the
	// teacher's VM.push uses.
	StackGrowthIncrement = 256

	// MaxStackSize caps total operand stack slots of one Processor. A
	// packed program that would grow the stack past this is almost
	// certainly a runaway `distribute`/`mappedType` loop rather than a
	// legitimate deeply-nested type.
	MaxStackSize = 1 << 20

	// MaxFrameCount caps the call-frame chain depth (Call/Frame nesting)
	// within one Processor, the same way the teacher's MaxFrameCount guards
	// callValue. A nested program reached through `inline`/`classReference`
	// runs in its own Processor with its own stack and frame count, so
	// neither ceiling bounds that recursion.
	MaxFrameCount = 4096
)
