package rvm

import "github.com/funvibe/rvm/internal/typeir"

// ClassHandle re-exports the Type IR's class handle identity for literal
// pool entries that carry deferred class accessors.
type ClassHandle = typeir.ClassHandle

// ClassThunk is a nullary accessor yielding a class handle — one of the
// literal-pool value variants spec §3 describes ("deferred class
// accessors").
type ClassThunk func() ClassHandle

// ProgramThunk is a nullary accessor yielding a nested Packed Program —
// spec §3's "nested deferred Packed accessors".
type ProgramThunk func() []any

// ValueThunk is a nullary accessor yielding a plain runtime value, used by
// the `typeof` opcode (spec §4.3).
type ValueThunk func() any

// EnumMember is one entry of an enum-like value producer read by the `enum`
// opcode: a name plus an optional explicit numeric default (nil means
// "auto-increment from the previous member", per spec §4.3).
type EnumMember struct {
	Name    string
	Default *float64
}

// EnumThunk is a nullary accessor yielding an enum's member list.
type EnumThunk func() []EnumMember

// SelfRef is the literal-pool sentinel meaning "the program currently
// running" — spec §4.3's "numeric sentinel" read by `inline`/`inlineCall`.
// The transformer emits an actual numeric sentinel; decoded programs built
// directly in Go (tests, and any host embedding this package) use this typed
// marker instead so self-reference cannot be confused with a real pool
// index of zero.
type SelfRef struct{}

// Program is a decoded Packed Program: a flat instruction stream plus its
// literal pool (spec §4.1). Programs are compared and keyed by pointer
// identity, never by value — the registry (§4.4) relies on this.
//
// Stream holds raw decoded integers rather than typed Opcodes. Most entries
// are opcodes (one character = one opcode, per spec §4.1), but an opcode
// that takes an immediate operand (a pool index, jump target, frame
// offset, …) consumes one or more subsequent stream entries as raw
// integers before the next entry is interpreted as an opcode again — the
// same variable-length-instruction idiom as the teacher's Chunk byte stream
// (internal/vm/chunk.go: OP_CONST followed by a 2-byte constant index read
// via ReadConstantIndex). The spec leaves the exact operand encoding to the
// transformer (a non-goal here, §1); this is the encoding decision that
// makes an otherwise-underspecified detail concrete.
type Program struct {
	Stream []int
	Pool   []any
}

// Decode turns a raw Packed Program value into a Program. Contract (spec
// §4.1): the last element must be the opcode string; every character
// encodes one stream entry as codepoint-33. If the last element is not a
// string, an empty program is returned rather than an error — malformed
// framing at this layer is not the RVM's concern, only truncation mid-run
// is (spec §7).
func Decode(raw []any) *Program {
	if len(raw) == 0 {
		return &Program{}
	}
	last := raw[len(raw)-1]
	opStr, ok := last.(string)
	if !ok {
		return &Program{}
	}

	stream := make([]int, 0, len(opStr))
	for _, r := range opStr {
		stream = append(stream, int(r)-33)
	}

	pool := make([]any, len(raw)-1)
	copy(pool, raw[:len(raw)-1])

	return &Program{Stream: stream, Pool: pool}
}

// DecodeProgram is a convenience wrapper so call sites holding an already
// decoded *Program (e.g. from a ProgramThunk result or a nested literal)
// don't have to special-case Decode.
func DecodeProgram(v any) *Program {
	switch p := v.(type) {
	case *Program:
		return p
	case []any:
		return Decode(p)
	default:
		return &Program{}
	}
}
