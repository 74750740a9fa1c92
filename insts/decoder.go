// Package insts provides Cairo VM instruction definitions and decoding.
package insts

import "fmt"

// Field positions within the 64-bit instruction word.
// Bit 63 is not part of any field.
const (
	OffDstOffset   = 0
	OffOp0Offset   = 16
	OffOp1Offset   = 32
	DstRegOffset   = 48
	Op0RegOffset   = 49
	Op1SrcOffset   = 50
	ResLogicOffset = 53
	PCUpdateOffset = 55
	APUpdateOffset = 58
	OpcodeOffset   = 60
)

// Field widths in bits.
const (
	OffsetWidth   = 16
	RegWidth      = 1
	Op1SrcWidth   = 3
	ResLogicWidth = 2
	PCUpdateWidth = 3
	APUpdateWidth = 2
	OpcodeWidth   = 3
)

// OffsetBias is added to a signed offset before it is stored in the word.
const OffsetBias = 1 << 15

// Register selects the base register of a dst or op0 address.
type Register uint8

// Base registers.
const (
	RegAP Register = 0 // allocation pointer
	RegFP Register = 1 // frame pointer
)

// Op1Src is the addressing mode of the second operand.
type Op1Src uint8

// Op1 sources. Values 3, 5, 6 and 7 are undefined.
const (
	Op1SrcOp0 Op1Src = 0 // [[op0] + off_op1]
	Op1SrcImm Op1Src = 1 // [pc + off_op1], the immediate word
	Op1SrcFP  Op1Src = 2 // [fp + off_op1]
	Op1SrcAP  Op1Src = 4 // [ap + off_op1]
)

// ResLogic selects how the result is computed from op0 and op1.
type ResLogic uint8

// Result logic. Value 3 is undefined.
const (
	ResOp1 ResLogic = 0 // res = op1
	ResAdd ResLogic = 1 // res = op0 + op1
	ResMul ResLogic = 2 // res = op0 * op1
)

// PCUpdate selects how the program counter advances.
type PCUpdate uint8

// PC updates. Values 3, 5, 6 and 7 are undefined.
const (
	PCRegular PCUpdate = 0 // pc += instruction size
	PCJumpAbs PCUpdate = 1 // pc = res
	PCJumpRel PCUpdate = 2 // pc += res
	PCJnz     PCUpdate = 4 // conditional relative jump on dst
)

// APUpdate selects how the allocation pointer advances.
type APUpdate uint8

// AP updates. Value 3 is undefined.
const (
	APRegular APUpdate = 0 // unchanged (or += 2 for call)
	APAdd     APUpdate = 1 // ap += res
	APAdd1    APUpdate = 2 // ap += 1
)

// Opcode is the instruction class.
type Opcode uint8

// Opcodes. Values 3, 5, 6 and 7 are undefined.
const (
	OpcodeNop      Opcode = 0 // plain assignment / jump
	OpcodeCall     Opcode = 1 // call
	OpcodeRet      Opcode = 2 // ret
	OpcodeAssertEq Opcode = 4 // assert_eq
)

func (r Register) String() string {
	switch r {
	case RegAP:
		return "ap"
	case RegFP:
		return "fp"
	default:
		return fmt.Sprintf("Register(%d)", uint8(r))
	}
}

// Valid reports whether r names a register.
func (r Register) Valid() bool {
	return r == RegAP || r == RegFP
}

func (s Op1Src) String() string {
	switch s {
	case Op1SrcOp0:
		return "op0"
	case Op1SrcImm:
		return "imm"
	case Op1SrcFP:
		return "fp"
	case Op1SrcAP:
		return "ap"
	default:
		return fmt.Sprintf("Op1Src(%d)", uint8(s))
	}
}

// Valid reports whether s is a defined op1 source.
func (s Op1Src) Valid() bool {
	switch s {
	case Op1SrcOp0, Op1SrcImm, Op1SrcFP, Op1SrcAP:
		return true
	default:
		return false
	}
}

func (l ResLogic) String() string {
	switch l {
	case ResOp1:
		return "op1"
	case ResAdd:
		return "add"
	case ResMul:
		return "mul"
	default:
		return fmt.Sprintf("ResLogic(%d)", uint8(l))
	}
}

// Valid reports whether l is a defined result logic.
func (l ResLogic) Valid() bool {
	return l <= ResMul
}

func (u PCUpdate) String() string {
	switch u {
	case PCRegular:
		return "regular"
	case PCJumpAbs:
		return "jump_abs"
	case PCJumpRel:
		return "jump_rel"
	case PCJnz:
		return "jnz"
	default:
		return fmt.Sprintf("PCUpdate(%d)", uint8(u))
	}
}

// Valid reports whether u is a defined pc update.
func (u PCUpdate) Valid() bool {
	switch u {
	case PCRegular, PCJumpAbs, PCJumpRel, PCJnz:
		return true
	default:
		return false
	}
}

func (u APUpdate) String() string {
	switch u {
	case APRegular:
		return "regular"
	case APAdd:
		return "add"
	case APAdd1:
		return "add1"
	default:
		return fmt.Sprintf("APUpdate(%d)", uint8(u))
	}
}

// Valid reports whether u is a defined ap update.
func (u APUpdate) Valid() bool {
	return u <= APAdd1
}

func (o Opcode) String() string {
	switch o {
	case OpcodeNop:
		return "nop"
	case OpcodeCall:
		return "call"
	case OpcodeRet:
		return "ret"
	case OpcodeAssertEq:
		return "assert_eq"
	default:
		return fmt.Sprintf("Opcode(%d)", uint8(o))
	}
}

// Valid reports whether o is a defined opcode.
func (o Opcode) Valid() bool {
	switch o {
	case OpcodeNop, OpcodeCall, OpcodeRet, OpcodeAssertEq:
		return true
	default:
		return false
	}
}

// Instruction represents a decoded Cairo instruction.
// It is a snapshot of the word it was decoded from and is never modified.
type Instruction struct {
	Word uint64 // Raw instruction word

	// Operand offsets, bias removed
	OffDst int16
	OffOp0 int16
	OffOp1 int16

	// Base registers
	DstReg Register
	Op0Reg Register

	// Control fields, raw values (may be undefined)
	Op1Src   Op1Src
	ResLogic ResLogic
	PCUpdate PCUpdate
	APUpdate APUpdate
	Opcode   Opcode
}

// String prints the decoded field record.
func (i Instruction) String() string {
	return fmt.Sprintf(
		"off_dst: %d, off_op0: %d, off_op1: %d, dst_reg: %d, op0_reg: %d, "+
			"op1_src: %d, res_logic: %d, pc_update: %d, ap_update: %d, opcode: %d",
		i.OffDst, i.OffOp0, i.OffOp1,
		uint8(i.DstReg), uint8(i.Op0Reg),
		uint8(i.Op1Src), uint8(i.ResLogic), uint8(i.PCUpdate),
		uint8(i.APUpdate), uint8(i.Opcode),
	)
}

// ExtractBits returns the length-bit unsigned value starting at bit offset
// of word, counting from the least significant bit.
//
// The caller must ensure 0 < length <= 64 and offset+length <= 64.
func ExtractBits(word uint64, offset, length uint) uint64 {
	return (word >> offset) & ((1 << length) - 1)
}

// Decoder decodes Cairo machine words into instructions.
type Decoder struct{}

// NewDecoder creates a new Cairo instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 64-bit Cairo instruction word.
// Every word decodes; undefined field values are kept as-is and only
// rejected when the instruction is rendered.
func (d *Decoder) Decode(word uint64) Instruction {
	return Instruction{
		Word:     word,
		OffDst:   d.offset(word, OffDstOffset),
		OffOp0:   d.offset(word, OffOp0Offset),
		OffOp1:   d.offset(word, OffOp1Offset),
		DstReg:   Register(ExtractBits(word, DstRegOffset, RegWidth)),
		Op0Reg:   Register(ExtractBits(word, Op0RegOffset, RegWidth)),
		Op1Src:   Op1Src(ExtractBits(word, Op1SrcOffset, Op1SrcWidth)),
		ResLogic: ResLogic(ExtractBits(word, ResLogicOffset, ResLogicWidth)),
		PCUpdate: PCUpdate(ExtractBits(word, PCUpdateOffset, PCUpdateWidth)),
		APUpdate: APUpdate(ExtractBits(word, APUpdateOffset, APUpdateWidth)),
		Opcode:   Opcode(ExtractBits(word, OpcodeOffset, OpcodeWidth)),
	}
}

// offset extracts a biased 16-bit offset and removes the bias.
// raw - 2^15 always fits in an int16.
func (d *Decoder) offset(word uint64, at uint) int16 {
	raw := ExtractBits(word, at, OffsetWidth)
	return int16(int32(raw) - OffsetBias)
}
