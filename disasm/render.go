package disasm

import (
	"fmt"
	"strings"

	"github.com/khaihanhtang/cairo-instruction-decoder/insts"
)

// Render describes what inst does, one ";"-terminated statement per line,
// each line preceded by a line break. Statements appear in the order
// opcode, pc update, fp update, ap update; empty ones are omitted.
//
// The stages run in a fixed order (op0, op1 and size, res, dst, pc,
// opcode with fp/ap) and the first illegal field combination makes the
// whole instruction undefined.
func Render(inst insts.Instruction) Result {
	op0 := Address(inst.Op0Reg, inst.OffOp0)

	op1, size, ok := op1Address(inst, op0)
	if !ok {
		return UndefinedResult()
	}

	res, ok := resultExpr(inst, op0, op1)
	if !ok {
		return UndefinedResult()
	}

	dst := Address(inst.DstReg, inst.OffDst)

	pc, ok := pcStatement(inst, size, res, dst, op1)
	if !ok {
		return UndefinedResult()
	}

	op, fp, ap, ok := frameStatements(inst, res, dst)
	if !ok {
		return UndefinedResult()
	}

	return Rendered(assemble(op, pc, fp, ap))
}

// Disassemble decodes and renders a single word.
func Disassemble(word uint64) string {
	return Render(insts.NewDecoder().Decode(word)).String()
}

// OffsetSuffix renders an operand offset: " - k", "" or " + k".
func OffsetSuffix(off int16) string {
	switch {
	case off < 0:
		// -32768 has no int16 negation.
		return fmt.Sprintf(" - %d", -int32(off))
	case off == 0:
		return ""
	default:
		return fmt.Sprintf(" + %d", off)
	}
}

// Address renders a memory operand relative to a base register, e.g. "[fp - 3]".
func Address(reg insts.Register, off int16) string {
	return "[" + reg.String() + OffsetSuffix(off) + "]"
}

// Size returns the instruction width in words implied by the op1 source.
func Size(src insts.Op1Src) (int, bool) {
	switch src {
	case insts.Op1SrcImm:
		return 2, true
	case insts.Op1SrcOp0, insts.Op1SrcFP, insts.Op1SrcAP:
		return 1, true
	default:
		return 0, false
	}
}

func op1Address(inst insts.Instruction, op0 string) (string, int, bool) {
	size, ok := Size(inst.Op1Src)
	if !ok {
		return "", 0, false
	}

	suffix := OffsetSuffix(inst.OffOp1)

	switch inst.Op1Src {
	case insts.Op1SrcOp0:
		return "[" + op0 + suffix + "]", size, true
	case insts.Op1SrcImm:
		return "[pc" + suffix + "]", size, true
	case insts.Op1SrcFP:
		return "[fp" + suffix + "]", size, true
	case insts.Op1SrcAP:
		return "[ap" + suffix + "]", size, true
	default:
		return "", 0, false
	}
}

// resultExpr validates pc_update along with res_logic. A jnz only reads
// dst and op1, so its res is Unused and must be encoded as plain op1.
func resultExpr(inst insts.Instruction, op0, op1 string) (string, bool) {
	switch inst.PCUpdate {
	case insts.PCJnz:
		if inst.ResLogic == insts.ResOp1 &&
			inst.Opcode == insts.OpcodeNop &&
			inst.APUpdate != insts.APAdd {
			return Unused, true
		}
		return "", false
	case insts.PCRegular, insts.PCJumpAbs, insts.PCJumpRel:
		switch inst.ResLogic {
		case insts.ResOp1:
			return op1, true
		case insts.ResAdd:
			return op0 + " + " + op1, true
		case insts.ResMul:
			return op0 + " * " + op1, true
		default:
			return "", false
		}
	default:
		return "", false
	}
}

func pcStatement(inst insts.Instruction, size int, res, dst, op1 string) (string, bool) {
	switch inst.PCUpdate {
	case insts.PCRegular:
		return fmt.Sprintf("jump comm pc += %d", size), true
	case insts.PCJumpAbs:
		return "jump abs pc = " + res, true
	case insts.PCJumpRel:
		return "jump rel pc += " + res, true
	case insts.PCJnz:
		return fmt.Sprintf("jump rel cond pc += (1 - %s) * %d + %s * %s",
			dst, size, dst, op1), true
	default:
		return "", false
	}
}

// frameStatements returns the opcode, fp and ap statements.
func frameStatements(inst insts.Instruction, res, dst string) (op, fp, ap string, ok bool) {
	switch inst.Opcode {
	case insts.OpcodeCall:
		if inst.APUpdate != insts.APRegular {
			return "", "", "", false
		}
		return "call", "fp = ap + 2", "ap += 2", true
	case insts.OpcodeNop, insts.OpcodeRet, insts.OpcodeAssertEq:
		ap, ok = apStatement(inst.APUpdate, res)
		if !ok {
			return "", "", "", false
		}
	default:
		return "", "", "", false
	}

	switch inst.Opcode {
	case insts.OpcodeNop:
		return "", "", ap, true
	case insts.OpcodeRet:
		return "ret", "fp = " + dst, ap, true
	case insts.OpcodeAssertEq:
		return "assert equal " + res + " = " + dst, "", ap, true
	default:
		return "", "", "", false
	}
}

func apStatement(update insts.APUpdate, res string) (string, bool) {
	switch update {
	case insts.APRegular:
		return "", true
	case insts.APAdd:
		return "ap += " + res, true
	case insts.APAdd1:
		return "ap += 1", true
	default:
		return "", false
	}
}

func assemble(stmts ...string) string {
	var b strings.Builder
	for _, s := range stmts {
		if s == "" {
			continue
		}
		b.WriteString("\n")
		b.WriteString(s)
		b.WriteString(";")
	}
	return b.String()
}
