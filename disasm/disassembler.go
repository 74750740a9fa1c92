package disasm

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/khaihanhtang/cairo-instruction-decoder/insts"
)

// Line is one instruction of a program listing.
type Line struct {
	PC          uint64            // Index of the instruction word
	Word        uint64            // Raw instruction word
	Instruction insts.Instruction // Decoded fields
	Result      Result            // Rendered text or undefined behavior

	// Immediate is the word following a two-word instruction.
	Immediate uint64
	// HasImmediate is set when the instruction consumed an immediate word.
	HasImmediate bool
	// MissingImmediate is set when a two-word instruction ends the program.
	MissingImmediate bool
}

// Size returns the number of words the line occupies.
func (l Line) Size() int {
	if l.HasImmediate {
		return 2
	}
	return 1
}

// DisassemblerOption configures a Disassembler.
type DisassemblerOption func(*Disassembler)

// WithCache serves repeated words from c.
func WithCache(c *Cache) DisassemblerOption {
	return func(d *Disassembler) {
		d.cache = c
	}
}

// WithLogger sets the logger used to report undefined encodings.
func WithLogger(log zerolog.Logger) DisassemblerOption {
	return func(d *Disassembler) {
		d.log = log
	}
}

// Disassembler decodes and renders instruction words.
type Disassembler struct {
	decoder *insts.Decoder
	cache   *Cache
	log     zerolog.Logger
}

// NewDisassembler creates a Disassembler with no cache and a no-op logger.
func NewDisassembler(opts ...DisassemblerOption) *Disassembler {
	d := &Disassembler{
		decoder: insts.NewDecoder(),
		log:     zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Cache returns the configured cache, or nil.
func (d *Disassembler) Cache() *Cache {
	return d.cache
}

// Decode decodes word without rendering it.
func (d *Disassembler) Decode(word uint64) insts.Instruction {
	return d.decoder.Decode(word)
}

// Disassemble decodes and renders word.
func (d *Disassembler) Disassemble(word uint64) Result {
	_, result := d.disassemble(word)
	return result
}

func (d *Disassembler) disassemble(word uint64) (insts.Instruction, Result) {
	inst := d.decoder.Decode(word)

	if d.cache != nil {
		if result, ok := d.cache.Get(word); ok {
			return inst, result
		}
	}

	result := Render(inst)
	if result.IsUndefined() {
		d.log.Debug().
			Str("word", hexWord(word)).
			Stringer("op1_src", inst.Op1Src).
			Stringer("res_logic", inst.ResLogic).
			Stringer("pc_update", inst.PCUpdate).
			Stringer("ap_update", inst.APUpdate).
			Stringer("opcode", inst.Opcode).
			Msg("undefined instruction")
	}

	if d.cache != nil {
		d.cache.Put(word, result)
	}

	return inst, result
}

// Listing disassembles a program held in memory. The word following a
// two-word instruction is its immediate operand and is not decoded.
// Undefined instructions advance by a single word.
func (d *Disassembler) Listing(words []uint64) []Line {
	lines := make([]Line, 0, len(words))

	for pc := 0; pc < len(words); pc++ {
		inst, result := d.disassemble(words[pc])
		line := Line{
			PC:          uint64(pc),
			Word:        words[pc],
			Instruction: inst,
			Result:      result,
		}

		if !result.IsUndefined() && inst.Op1Src == insts.Op1SrcImm {
			if pc+1 < len(words) {
				pc++
				line.Immediate = words[pc]
				line.HasImmediate = true
			} else {
				line.MissingImmediate = true
				d.log.Debug().Uint64("pc", line.PC).Msg("missing immediate at end of program")
			}
		}

		lines = append(lines, line)
	}

	return lines
}

func hexWord(word uint64) string {
	return fmt.Sprintf("0x%016x", word)
}
