package insts

// Encode packs an instruction back into its 64-bit word.
//
// Layout (bit 63 unused):
// ┌────────┬──────────┬──────────┬──────────┬────────┬────────┬────────┬────────┬────────┬────────┐
// │ opcode │ ap_upd   │ pc_upd   │ res_logic│ op1_src│ op0_reg│ dst_reg│ off_op1│ off_op0│ off_dst│
// │ 62..60 │ 59..58   │ 57..55   │ 54..53   │ 52..50 │   49   │   48   │ 47..32 │ 31..16 │ 15..0  │
// └────────┴──────────┴──────────┴──────────┴────────┴────────┴────────┴────────┴────────┴────────┘
//
// Enum fields are masked to their width, so Encode(Decode(w)) returns w with
// bit 63 cleared.
func Encode(inst Instruction) uint64 {
	var word uint64

	word |= biased(inst.OffDst) << OffDstOffset
	word |= biased(inst.OffOp0) << OffOp0Offset
	word |= biased(inst.OffOp1) << OffOp1Offset
	word |= field(uint64(inst.DstReg), RegWidth) << DstRegOffset
	word |= field(uint64(inst.Op0Reg), RegWidth) << Op0RegOffset
	word |= field(uint64(inst.Op1Src), Op1SrcWidth) << Op1SrcOffset
	word |= field(uint64(inst.ResLogic), ResLogicWidth) << ResLogicOffset
	word |= field(uint64(inst.PCUpdate), PCUpdateWidth) << PCUpdateOffset
	word |= field(uint64(inst.APUpdate), APUpdateWidth) << APUpdateOffset
	word |= field(uint64(inst.Opcode), OpcodeWidth) << OpcodeOffset

	return word
}

func biased(off int16) uint64 {
	return uint64(int32(off) + OffsetBias)
}

func field(v uint64, width uint) uint64 {
	return v & ((1 << width) - 1)
}
