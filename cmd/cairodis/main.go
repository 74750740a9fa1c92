// Package main provides the cairodis command.
// cairodis renders Cairo instruction words given on the command line.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/tebeka/atexit"

	"github.com/khaihanhtang/cairo-instruction-decoder/disasm"
	"github.com/khaihanhtang/cairo-instruction-decoder/log"
)

var (
	configPath = flag.String("config", "", "Path to render cache configuration JSON file")
	listing    = flag.Bool("listing", false, "Treat the words as a program and consume immediates")
	noCache    = flag.Bool("no-cache", false, "Disable the render cache")
	logLevel   = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	logJSON    = flag.Bool("log-json", false, "Write logs as JSON")
	verbose    = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: cairodis [options] <word> [word...]\n")
		fmt.Fprintf(os.Stderr, "\nWords are 64-bit integers, e.g. 0x48307ffe7fff8000.\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		atexit.Exit(1)
	}

	if err := setupLogging(*logLevel, *logJSON); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		atexit.Exit(1)
	}

	words, err := parseWords(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		atexit.Exit(1)
	}

	d, err := newDisassembler(*configPath, !*noCache)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		atexit.Exit(1)
	}

	if c := d.Cache(); c != nil && *verbose {
		atexit.Register(func() {
			stats := c.Stats()
			fmt.Fprintf(os.Stderr, "\nCache: %d lookups, %d hits, %d misses, %d evictions\n",
				stats.Lookups, stats.Hits, stats.Misses, stats.Evictions)
		})
	}

	var undefined int
	if *listing {
		undefined = printListing(os.Stdout, d, words, *verbose)
	} else {
		undefined = printWords(os.Stdout, d, words, *verbose)
	}

	log.CLI.Info().
		Int("words", len(words)).
		Int("undefined", undefined).
		Msg("disassembly complete")

	atexit.Exit(0)
}

func setupLogging(level string, json bool) error {
	lvl, err := log.ParseLogLevel(level)
	if err != nil {
		return err
	}

	opts := log.Options{LogLevel: lvl, Type: log.ConsoleLogger}
	if json {
		opts.Type = log.JSONLogger
	}
	log.Init(opts)

	return nil
}

// parseWords parses instruction words. Decimal, 0x hex, 0o octal and 0b
// binary forms are accepted.
func parseWords(args []string) ([]uint64, error) {
	words := make([]uint64, 0, len(args))
	for _, arg := range args {
		w, err := strconv.ParseUint(arg, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse instruction word %q: %w", arg, err)
		}
		words = append(words, w)
	}
	return words, nil
}

func newDisassembler(configPath string, useCache bool) (*disasm.Disassembler, error) {
	opts := []disasm.DisassemblerOption{disasm.WithLogger(log.Decoder)}

	if useCache {
		config := disasm.DefaultCacheConfig()
		if configPath != "" {
			var err error
			config, err = disasm.LoadCacheConfig(configPath)
			if err != nil {
				return nil, err
			}
		}
		if err := config.Validate(); err != nil {
			return nil, fmt.Errorf("invalid cache config: %w", err)
		}
		opts = append(opts, disasm.WithCache(disasm.NewCache(*config)))
	}

	return disasm.NewDisassembler(opts...), nil
}

// printWords renders each word on its own. It returns the number of
// undefined words.
func printWords(w io.Writer, d *disasm.Disassembler, words []uint64, verbose bool) int {
	undefined := 0
	for _, word := range words {
		result := d.Disassemble(word)
		if result.IsUndefined() {
			undefined++
		}

		fmt.Fprintf(w, "0x%016x:", word)
		if verbose {
			fmt.Fprintf(w, "\n%v", d.Decode(word))
		}
		fmt.Fprintf(w, "%s\n", separate(result))
	}
	return undefined
}

// printListing renders words as a program. It returns the number of
// undefined instructions.
func printListing(w io.Writer, d *disasm.Disassembler, words []uint64, verbose bool) int {
	undefined := 0
	for _, line := range d.Listing(words) {
		if line.Result.IsUndefined() {
			undefined++
		}

		fmt.Fprintf(w, "%04d  0x%016x", line.PC, line.Word)
		switch {
		case line.HasImmediate:
			fmt.Fprintf(w, "  imm 0x%x", line.Immediate)
		case line.MissingImmediate:
			fmt.Fprintf(w, "  imm <missing>")
		}
		if verbose {
			fmt.Fprintf(w, "\n%v", line.Instruction)
		}
		fmt.Fprintf(w, "%s\n", separate(line.Result))
	}
	return undefined
}

// separate puts a sentinel on its own line; rendered text already starts
// with a line break.
func separate(result disasm.Result) string {
	if result.IsUndefined() {
		return "\n" + result.String()
	}
	return result.String()
}
