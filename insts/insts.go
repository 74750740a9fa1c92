// Package insts provides Cairo VM instruction definitions and decoding.
//
// This package implements decoding of 64-bit Cairo machine words into
// structured instruction representations. A word carries:
//   - three biased 16-bit operand offsets (dst, op0, op1)
//   - two base register selectors (dst, op0)
//   - the op1 addressing mode, result logic, pc update, ap update and opcode
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(0x48307ffe7fff8000) // [ap] = [ap - 1] + [ap - 2]; ap++
//	fmt.Printf("Opcode: %v, OffOp0: %d, OffOp1: %d\n", inst.Opcode, inst.OffOp0, inst.OffOp1)
package insts
