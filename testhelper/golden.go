package testhelper

import (
	"bytes"
	"os"
	"testing"
)

// Golden, when set, causes CheckGoldenFile to write golden files instead of
// comparing against them.
var Golden bool

// CheckGoldenFile compares b to testdata/<filename>.golden. On a mismatch the
// actual output is written to testdata/<filename>.actual.golden.
func CheckGoldenFile(t testing.TB, filename string, b []byte) {
	t.Helper()
	goldenFile := "testdata/" + filename + ".golden"
	goldenActual := "testdata/" + filename + ".actual.golden"

	if Golden {
		t.Logf("Writing golden file to %s", goldenFile)
		if err := os.WriteFile(goldenFile, b, 0644); err != nil {
			t.Fatalf("writing golden file: %+v", err)
		}
		return
	}

	expected, err := os.ReadFile(goldenFile)
	if err != nil {
		t.Fatalf("reading golden file: %+v", err)
	}
	if !bytes.Equal(b, expected) {
		if err := os.WriteFile(goldenActual, b, 0644); err != nil {
			t.Logf("writing actual output: %+v", err)
		}
		t.Fatalf("Golden files didn't match: wrote output to %s\n\nexpected:\n\n\t%q\n\nbut got:\n\n\t%q", goldenActual, expected, b)
	}
}
