// Command aethc is a thin driver over the compiler core: read a source
// file, run lex/parse/resolve/borrowck/lower in order, and print any
// diagnostics. It stops at the first stage that produces errors, per
// spec.md §5's pipeline-ordering guarantee — a later stage never runs over
// output a prior stage flagged as broken.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/aethlang/aethc/internal/borrowck"
	"github.com/aethlang/aethc/internal/config"
	"github.com/aethlang/aethc/internal/diag"
	"github.com/aethlang/aethc/internal/edition"
	"github.com/aethlang/aethc/internal/mir"
	"github.com/aethlang/aethc/internal/parser"
	"github.com/aethlang/aethc/internal/resolver"
)

func main() {
	var (
		configFile  string
		dumpMIR     bool
		showVersion bool
	)

	flag.StringVar(&configFile, "config", "", "path to a CompilerConfig JSON file")
	flag.BoolVar(&dumpMIR, "dump-mir", false, "print a summary of the lowered MIR for each function")
	flag.BoolVar(&showVersion, "version", false, "print version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] <source-file>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "OPTIONS:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if showVersion {
		fmt.Println("aethc 0.1.0")
		return
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	ed, err := cfg.ResolveEdition()
	if err != nil {
		log.Fatalf("resolving edition: %v", err)
	}

	path := flag.Arg(0)
	src, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("reading %s: %v", path, err)
	}

	if !run(path, string(src), ed, cfg.EffectiveMaxDiagnostics(), dumpMIR) {
		os.Exit(1)
	}
}

// run drives the pipeline over one source file and reports whether
// compilation succeeded (no diagnostics at any stage).
func run(path, src string, ed edition.Edition, maxDiag int, dumpMIR bool) bool {
	mod, perrs := parser.ParseWithEdition(src, ed)
	if len(perrs) != 0 {
		for i, e := range perrs {
			if i >= maxDiag {
				fmt.Fprintf(os.Stderr, "%s: ... %d more diagnostics suppressed\n", path, len(perrs)-maxDiag)
				break
			}
			fmt.Fprintf(os.Stderr, "%s: %s\n", path, e.Error())
		}
		return false
	}

	hmod, rerrs := resolver.LowerToHIR(mod, path)
	if len(rerrs) != 0 {
		printDiagnostics(path, maxDiag, rerrs)
		return false
	}

	ok := true
	for _, fn := range hmod.Functions {
		berrs := borrowck.CheckFnBody(fn.Body)
		if len(berrs) != 0 {
			ok = false
			diags := make([]diag.Diagnostic, len(berrs))
			for i, e := range berrs {
				diags[i] = e.ToDiagnostic()
			}
			printDiagnostics(path, maxDiag, diags)
		}
	}
	if !ok {
		return false
	}

	for _, fn := range hmod.Functions {
		body := mir.LowerFn(fn)
		if dumpMIR {
			fmt.Printf("fn %s: %d block(s)\n", fn.Name, len(body.Blocks))
		}
	}

	return true
}

func printDiagnostics(path string, maxDiag int, diags []diag.Diagnostic) {
	for i, d := range diags {
		if i >= maxDiag {
			fmt.Fprintf(os.Stderr, "%s: ... %d more diagnostics suppressed\n", path, len(diags)-maxDiag)
			break
		}
		fmt.Fprintf(os.Stderr, "%s: %s\n", path, d.Error())
	}
}
