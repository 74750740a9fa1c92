// Package main decodes one hard-coded Cairo instruction word and prints its
// fields and rendering.
//
// For the full CLI, use: go run ./cmd/cairodis
package main

import (
	"fmt"

	"github.com/khaihanhtang/cairo-instruction-decoder/disasm"
	"github.com/khaihanhtang/cairo-instruction-decoder/insts"
)

func main() {
	const word = 0x48307ffe7fff8000

	inst := insts.NewDecoder().Decode(word)

	fmt.Println(uint64(word))
	fmt.Println(inst)
	fmt.Println(disasm.Render(inst))
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/cairodis' for the full CLI.")
}
