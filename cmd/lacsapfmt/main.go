// Command lacsapfmt runs one JSON-encoded program fixture through
// semantic analysis and IR lowering and prints the diagnostics to stderr
// and the resulting IR listing to stdout. It stands in for the real driver
// spec.md §1 treats as an external collaborator (lexer/parser/backend
// are out of scope) -- just enough of a pipeline for cmd/lacsapgolden to
// have something deterministic to run, grounded on xplshn-gbc/cmd/gbc's
// overall flag-then-run shape.
package main

import (
	"flag"
	"fmt"
	"os"

	"lacsap/pkg/ast"
	"lacsap/pkg/config"
	"lacsap/pkg/diag"
	"lacsap/pkg/fixture"
	"lacsap/pkg/ir"
	"lacsap/pkg/irgen"
	"lacsap/pkg/sema"
	"lacsap/pkg/types"
)

func main() {
	configPath := flag.String("config", "", "TOML file overlaying the compiler's default knobs (max_set_size, word_size, stack_alignment, features, warnings)")
	dumpAST := flag.Bool("dump-ast", false, "print the parsed AST before analysis")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: lacsapfmt [flags] <fixture.json>")
		os.Exit(2)
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}

	if err := run(flag.Arg(0), cfg, *dumpAST, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(path string, cfg *config.Config, dumpAST bool, stdout, stderr *os.File) error {
	prog, err := fixture.Load(path)
	if err != nil {
		return err
	}

	reg := types.NewRegistry()
	node, err := prog.ToAST(reg)
	if err != nil {
		return fmt.Errorf("building AST: %w", err)
	}

	if dumpAST {
		ast.Dump(stdout, node)
	}

	diags := diag.NewBag()
	an := sema.NewAnalyser(reg, diags, cfg)
	an.AnalyseProgram(node)

	if diags.HasErrors() {
		diag.Print(stderr, diags)
		return fmt.Errorf("%d error(s) during analysis", diags.ErrorCount())
	}

	ctx := irgen.NewContext(reg, diags, cfg)
	out := ctx.LowerProgram(node)

	diag.Print(stderr, diags)
	ir.Dump(stdout, out)

	if diags.HasErrors() {
		return fmt.Errorf("%d error(s) during lowering", diags.ErrorCount())
	}
	return nil
}
