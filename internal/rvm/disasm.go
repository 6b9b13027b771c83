package rvm

import (
	"fmt"
	"strings"
)

// operandCounts lists how many raw stream entries follow each opcode that
// takes immediate operands, so the disassembler can walk the stream
// without actually running it. Opcodes absent from this map take none.
var operandCounts = map[Opcode]int{
	OpLiteral: 1, OpRegExp: 1, OpNamedTupleMember: 1,
	OpProperty: 1, OpPropertySignature: 1, OpMethod: 1, OpMethodSignature: 1,
	OpParameter: 1, OpDescription: 1, OpNumberBrand: 1, OpEnumMember: 1,
	OpClass: 2, OpEnum: 2, OpClassReference: 1, OpInline: 1, OpInlineCall: 1,
	OpTypeParameter: 1, OpTypeParameterDefault: 1, OpTemplate: 1,
	OpLoads: 2, OpArg: 1,
	OpJump: 1, OpCall: 1,
	OpInfer: 2, OpTypeof: 1,
	OpDistribute: 2, OpMappedType: 3, OpJumpCondition: 2,
}

// Disassemble renders a decoded Program as a human-readable listing, one
// instruction per line with its stream offset, name, and any operands —
// grounded on the teacher's chunk disassembler idiom
// (internal/vm/chunk.go Disassemble / DisassembleInstruction).
func Disassemble(program *Program) string {
	var b strings.Builder
	i := 0
	for i < len(program.Stream) {
		op := Opcode(program.Stream[i])
		fmt.Fprintf(&b, "%04d  %s", i, op.Name())

		n := operandCounts[op]
		for k := 0; k < n && i+1+k < len(program.Stream); k++ {
			operand := program.Stream[i+1+k]
			fmt.Fprintf(&b, " %d", operand)
			if isPoolOperand(op, k) {
				if v := poolValueOrNil(program, operand); v != nil {
					fmt.Fprintf(&b, " (%v)", v)
				}
			}
		}
		b.WriteByte('\n')
		i += 1 + n
	}
	return b.String()
}

// isPoolOperand reports whether operand index k of op indexes into the
// literal pool (as opposed to a jump target, frame offset, or slot index),
// so the disassembler can annotate it with the pool's actual value.
func isPoolOperand(op Opcode, k int) bool {
	switch op {
	case OpLiteral, OpRegExp, OpDescription, OpNumberBrand, OpClassReference, OpInline, OpInlineCall, OpTypeof:
		return k == 0
	case OpNamedTupleMember, OpProperty, OpPropertySignature, OpMethod, OpMethodSignature, OpParameter, OpEnumMember:
		return k == 0
	case OpClass, OpEnum:
		return true
	}
	return false
}

func poolValueOrNil(program *Program, idx int) any {
	if idx < 0 || idx >= len(program.Pool) {
		return nil
	}
	return program.Pool[idx]
}
