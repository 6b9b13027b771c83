package rvm

import "strings"

// progBuilder assembles a raw Packed Program value by hand, the way a test
// in this package has to since the compile-time transformer that would
// normally emit one is out of scope. It mirrors Decode's contract exactly:
// every appended stream entry becomes one character (codepoint = value+33)
// of the trailing opcode string, and pool values are appended in the order
// their indices are handed out.
type progBuilder struct {
	pool []any
	ops  []int
}

func newProg() *progBuilder { return &progBuilder{} }

// op appends an opcode.
func (b *progBuilder) op(o Opcode) *progBuilder {
	b.ops = append(b.ops, int(o))
	return b
}

// imm appends a raw immediate operand (jump target, frame offset, pool
// index, …).
func (b *progBuilder) imm(v int) *progBuilder {
	b.ops = append(b.ops, v)
	return b
}

// lit interns v in the literal pool and returns its index.
func (b *progBuilder) lit(v any) int {
	b.pool = append(b.pool, v)
	return len(b.pool) - 1
}

// at reports the stream index the next appended entry will land at — used
// to compute jump/call targets before the target instruction is written.
func (b *progBuilder) at() int { return len(b.ops) }

func (b *progBuilder) build() []any {
	var sb strings.Builder
	for _, v := range b.ops {
		sb.WriteRune(rune(v + 33))
	}
	raw := make([]any, len(b.pool)+1)
	copy(raw, b.pool)
	raw[len(b.pool)] = sb.String()
	return raw
}

type fakeHandle struct{ name string }

func (h fakeHandle) Name() string { return h.name }
