// Package testutil provides golden file helpers for Sass fixtures.
package testutil

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

// Update regenerates golden files from current output.
// Usage: go test ./... -update
var Update = flag.Bool("update", false, "update golden files")

// InputFile is the fixture every case directory provides.
const InputFile = "input.sass"

// Transform produces the output under test from a fixture's source.
type Transform func(t *testing.T, input string) string

// Compare checks actual against the golden file at path. With -update the
// golden file is rewritten instead.
func Compare(t *testing.T, path, actual string) {
	t.Helper()

	if *Update {
		if err := os.WriteFile(path, []byte(actual), 0o644); err != nil {
			t.Fatalf("failed to update golden file %s: %v", path, err)
		}
		t.Logf("updated golden file: %s", path)
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	if actual != string(want) {
		t.Errorf("output mismatch for %s:\n--- expected\n%s\n--- actual\n%s", path, want, actual)
	}
}

// RunDir runs fn over the input of every case directory below testdataDir
// and compares the result with the case's golden file. Cases without that
// golden file are skipped.
func RunDir(t *testing.T, testdataDir, golden string, fn Transform) {
	t.Helper()

	entries, err := os.ReadDir(testdataDir)
	if err != nil {
		t.Fatalf("failed to read testdata dir %s: %v", testdataDir, err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		t.Run(entry.Name(), func(t *testing.T) {
			dir := filepath.Join(testdataDir, entry.Name())
			goldenPath := filepath.Join(dir, golden)
			if _, err := os.Stat(goldenPath); err != nil && !*Update {
				t.Skipf("no %s", golden)
			}

			src, err := os.ReadFile(filepath.Join(dir, InputFile))
			if err != nil {
				t.Fatalf("failed to read input: %v", err)
			}
			Compare(t, goldenPath, fn(t, string(src)))
		})
	}
}

// Dir returns the repository's testdata directory given the path of a
// source file two levels below the root.
func Dir(caller string) string {
	return filepath.Join(filepath.Dir(caller), "..", "..", "testdata")
}
