package resolver

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestExpandGlobMatchesDoubleStarRecursively(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, "a.entry.js"), "")
	mustWrite(t, filepath.Join(dir, "pkgs", "b.entry.js"), "")
	mustWrite(t, filepath.Join(dir, "pkgs", "nested", "c.entry.js"), "")
	mustWrite(t, filepath.Join(dir, "pkgs", "skip.js"), "")

	matches, err := ExpandGlob(filepath.Join(dir, "**", "*.entry.js"))
	if err != nil {
		t.Fatalf("ExpandGlob: %v", err)
	}
	sort.Strings(matches)

	want := []string{
		filepath.Join(dir, "a.entry.js"),
		filepath.Join(dir, "pkgs", "b.entry.js"),
		filepath.Join(dir, "pkgs", "nested", "c.entry.js"),
	}
	sort.Strings(want)

	if len(matches) != len(want) {
		t.Fatalf("ExpandGlob() = %v, want %v", matches, want)
	}
	for i := range want {
		if matches[i] != want[i] {
			t.Errorf("ExpandGlob()[%d] = %q, want %q", i, matches[i], want[i])
		}
	}
}

func mustWrite(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
