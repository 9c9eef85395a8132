package compiler_test

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oillang/oil/internal/filetest"
	"github.com/oillang/oil/lang/compiler"
	"github.com/oillang/oil/lang/lexer"
	"github.com/oillang/oil/lang/parser"
)

var updateGolden = flag.Bool("test.update-compiler-tests", false, "If set, replace golden bytecode listings with actual output.")

func TestCompileGoldenListings(t *testing.T) {
	srcDir := filepath.Join("testdata", "in")
	resultDir := filepath.Join("testdata", "out")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".oil") {
		t.Run(fi.Name(), func(t *testing.T) {
			src, err := os.ReadFile(filepath.Join(srcDir, fi.Name()))
			require.NoError(t, err)

			toks, err := lexer.Lex(string(src))
			require.NoError(t, err)
			prog, err := parser.Parse(toks, string(src))
			require.NoError(t, err)
			compiled, err := compiler.Compile(prog)
			require.NoError(t, err)

			filetest.DiffListing(t, fi, compiled.Listing(), resultDir, updateGolden)
		})
	}
}
