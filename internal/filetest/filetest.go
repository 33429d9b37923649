// Package filetest runs tests driven by input files and golden result files.
package filetest

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/kylelemons/godebug/diff"
	"golang.org/x/exp/slices"
)

var testUpdateAllTests = flag.Bool("test.update-all-tests", false, "If set, sets all test.update-*-tests.")

// SourceFiles returns the sorted names of the regular files in dir that have
// one of the specified extensions (all files if no extension is provided).
func SourceFiles(t *testing.T, dir string, exts ...string) []string {
	t.Helper()

	want := make(map[string]bool, len(exts))
	for _, ext := range exts {
		if ext != "" && ext[0] != '.' {
			ext = "." + ext
		}
		want[ext] = true
	}

	dents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	res := make([]string, 0, len(dents))
	for _, dent := range dents {
		if !dent.Type().IsRegular() {
			continue
		}
		if len(want) > 0 && !want[filepath.Ext(dent.Name())] {
			continue
		}
		res = append(res, dent.Name())
	}
	slices.Sort(res)
	return res
}

// DiffOutput validates that output is the same as the expected result in the
// golden file named after the source file name with the ".want" extension in
// resultDir. If updateFlag is true, it updates the golden file with output
// instead.
func DiffOutput(t *testing.T, name, output, resultDir string, updateFlag *bool) {
	t.Helper()
	DiffCustom(t, name, "output", ".want", output, resultDir, updateFlag)
}

// DiffErrors is like DiffOutput for the errors output, with the ".err"
// extension. A missing golden file is the same as an empty one.
func DiffErrors(t *testing.T, name, output, resultDir string, updateFlag *bool) {
	t.Helper()
	DiffCustom(t, name, "errors", ".err", output, resultDir, updateFlag)
}

// DiffCustom is the general version of DiffOutput and DiffErrors. The label
// is used in the error logs and ext is the extension of the golden file,
// including the leading dot.
func DiffCustom(t *testing.T, name, label, ext, output, resultDir string, updateFlag *bool) {
	t.Helper()

	wantFile := filepath.Join(resultDir, name+ext)
	diffOrUpdate(t, label, wantFile, output, updateFlag)
}

func diffOrUpdate(t *testing.T, label, goldFile, output string, updateFlag *bool) {
	if *updateFlag || *testUpdateAllTests {
		if output == "" {
			// no golden file for an empty output
			if err := os.Remove(goldFile); err != nil && !os.IsNotExist(err) {
				t.Fatal(err)
			}
			return
		}
		if err := os.WriteFile(goldFile, []byte(output), 0600); err != nil {
			t.Fatal(err)
		}
		return
	}

	wantb, err := os.ReadFile(goldFile)
	if err != nil && !os.IsNotExist(err) {
		t.Fatal(err)
	}
	want := string(wantb)
	if testing.Verbose() {
		t.Logf("got %s:\n%s\n", label, output)
	}
	if patch := diff.Diff(want, output); patch != "" {
		if testing.Verbose() {
			t.Logf("want %s:\n%s\n", label, want)
		}
		t.Errorf("diff %s:\n%s\n", label, patch)
	}
}
