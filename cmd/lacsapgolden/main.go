// Command lacsapgolden runs the fixture programs under a glob pattern
// through cmd/lacsapfmt's pipeline and compares the diagnostics+IR text
// it produces against the fixture's stored golden file: the xxhash
// digests of the stored and the fresh text are compared, and a go-cmp
// diff is printed when they differ. Adapted from xplshn-gbc/cmd/gtest/main.go's
// hash-cache-and-diff shape, but driving the pipeline in-process instead
// of exec'ing a compiled target binary -- this module has no backend to
// produce one.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/google/go-cmp/cmp"

	"lacsap/pkg/config"
	"lacsap/pkg/diag"
	"lacsap/pkg/fixture"
	"lacsap/pkg/ir"
	"lacsap/pkg/irgen"
	"lacsap/pkg/sema"
	"lacsap/pkg/types"
)

var (
	testFiles      = flag.String("test-files", "testdata/*.json", "glob pattern for fixture files to run")
	generateGolden = flag.String("generate-golden", "", "write a golden file for a single fixture and exit")
	configPath     = flag.String("config", "", "TOML file overlaying the compiler's default knobs (max_set_size, word_size, stack_alignment, features, warnings)")
	verbose        = flag.Bool("v", false, "log each file as it is checked")

	cfg = config.Default()
)

func main() {
	flag.Parse()
	log.SetFlags(0)

	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("[ERROR] %v", err)
		}
		cfg = loaded
	}

	if *generateGolden != "" {
		if err := writeGolden(*generateGolden); err != nil {
			log.Fatalf("[ERROR] %v", err)
		}
		return
	}

	files, err := filepath.Glob(*testFiles)
	if err != nil {
		log.Fatalf("[ERROR] invalid glob pattern: %v", err)
	}
	if len(files) == 0 {
		log.Println("no fixture files matched")
		return
	}

	failures := 0
	for _, f := range files {
		if err := checkGolden(f); err != nil {
			fmt.Printf("FAIL %s\n%v\n", f, err)
			failures++
			continue
		}
		if *verbose {
			fmt.Printf("PASS %s\n", f)
		}
	}
	if failures > 0 {
		log.Fatalf("[FAIL] %d/%d fixture(s) mismatched their golden output", failures, len(files))
	}
	fmt.Printf("ok   %d fixture(s)\n", len(files))
}

// runPipeline reproduces cmd/lacsapfmt's run() in-memory: build the AST,
// analyse it, lower it, and render diagnostics followed by the IR
// listing as one comparable text blob.
func runPipeline(path string) (string, error) {
	prog, err := fixture.Load(path)
	if err != nil {
		return "", err
	}
	reg := types.NewRegistry()
	node, err := prog.ToAST(reg)
	if err != nil {
		return "", fmt.Errorf("building AST: %w", err)
	}

	diags := diag.NewBag()
	an := sema.NewAnalyser(reg, diags, cfg)
	an.AnalyseProgram(node)

	var buf bytes.Buffer
	diag.Print(&buf, diags)

	if !diags.HasErrors() {
		ctx := irgen.NewContext(reg, diags, cfg)
		out := ctx.LowerProgram(node)
		ir.Dump(&buf, out)
	}
	return buf.String(), nil
}

func goldenPath(fixturePath string) string {
	return fixturePath + ".golden"
}

func writeGolden(fixturePath string) error {
	out, err := runPipeline(fixturePath)
	if err != nil {
		return err
	}
	return os.WriteFile(goldenPath(fixturePath), []byte(out), 0644)
}

func checkGolden(fixturePath string) error {
	golden := goldenPath(fixturePath)
	want, err := os.ReadFile(golden)
	if err != nil {
		return fmt.Errorf("no golden file %s (run with -generate-golden=%s first): %w", golden, fixturePath, err)
	}

	got, err := runPipeline(fixturePath)
	if err != nil {
		return err
	}

	if hash(want) == hash([]byte(got)) {
		return nil
	}
	return fmt.Errorf("%s", cmp.Diff(string(want), got))
}

func hash(b []byte) uint64 {
	h := xxhash.New()
	_, _ = io.Copy(h, bytes.NewReader(b))
	return h.Sum64()
}
