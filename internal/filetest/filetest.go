// Package filetest provides a small golden-file test harness: given a
// directory of "testdata/in" source fixtures, run something over each and
// diff the result against the matching file under "testdata/out", updating
// the golden file when an update flag is set.
package filetest

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/kylelemons/godebug/diff"
)

var updateAll = flag.Bool("test.update-all-tests", false, "If set, sets all test.update-*-tests flags.")

// SourceFiles returns the fixtures in dir with the given extension (for
// example ".oil"), sorted by file name.
func SourceFiles(t *testing.T, dir, ext string) []os.FileInfo {
	t.Helper()

	if ext != "" && ext[0] != '.' {
		ext = "." + ext
	}

	dents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	res := make([]os.FileInfo, 0, len(dents))
	for _, dent := range dents {
		if !dent.Type().IsRegular() {
			continue
		}
		if ext != "" && filepath.Ext(dent.Name()) != ext {
			continue
		}
		fi, err := dent.Info()
		if err != nil {
			t.Fatal(err)
		}
		res = append(res, fi)
	}
	return res
}

// DiffListing checks output against the golden bytecode listing for fi in
// resultDir, updating the golden file instead if updateFlag (or
// -test.update-all-tests) is set.
func DiffListing(t *testing.T, fi os.FileInfo, output, resultDir string, updateFlag *bool) {
	t.Helper()
	diffCustom(t, fi, "bytecode listing", ".listing", output, resultDir, updateFlag)
}

// DiffTranscript checks output (the program's printed transcript) against
// the golden file for fi in resultDir.
func DiffTranscript(t *testing.T, fi os.FileInfo, output, resultDir string, updateFlag *bool) {
	t.Helper()
	diffCustom(t, fi, "transcript", ".transcript", output, resultDir, updateFlag)
}

func diffCustom(t *testing.T, fi os.FileInfo, label, ext, output, resultDir string, updateFlag *bool) {
	t.Helper()

	wantFile := filepath.Join(resultDir, fi.Name()+ext)
	if *updateFlag || *updateAll {
		if err := os.WriteFile(wantFile, []byte(output), 0o600); err != nil {
			t.Fatal(err)
		}
		return
	}

	wantb, err := os.ReadFile(wantFile)
	if err != nil && !os.IsNotExist(err) {
		t.Fatal(err)
	}
	want := string(wantb)
	if patch := diff.Diff(want, output); patch != "" {
		t.Errorf("diff %s for %s:\n%s", label, fi.Name(), patch)
	}
}
