package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEntrySpecsNameEqualsFiles(t *testing.T) {
	eps, err := entrySpecs([]string{"main=a.js,b.js"})
	if err != nil {
		t.Fatalf("entrySpecs: %v", err)
	}
	if len(eps) != 1 || eps[0].Name != "main" || len(eps[0].Files) != 2 {
		t.Fatalf("eps = %+v, want one entry point named main with 2 files", eps)
	}
	if eps[0].Files[0] != "a.js" || eps[0].Files[1] != "b.js" {
		t.Errorf("Files = %v, want [a.js b.js]", eps[0].Files)
	}
}

func TestEntrySpecsBareArgUsesItselfAsNameAndFile(t *testing.T) {
	eps, err := entrySpecs([]string{"a.js"})
	if err != nil {
		t.Fatalf("entrySpecs: %v", err)
	}
	if len(eps) != 1 || eps[0].Name != "a.js" || len(eps[0].Files) != 1 || eps[0].Files[0] != "a.js" {
		t.Fatalf("eps = %+v, want a single a.js entry point", eps)
	}
}

func TestEntrySpecsGlobExpandsToSortedMatches(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"pages/b.js", "pages/a.js"} {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	eps, err := entrySpecs([]string{filepath.Join(dir, "pages", "*.js")})
	if err != nil {
		t.Fatalf("entrySpecs: %v", err)
	}
	if len(eps) != 2 {
		t.Fatalf("eps = %+v, want 2 glob matches", eps)
	}
	var names []string
	for _, ep := range eps {
		names = append(names, ep.Name)
		if len(ep.Files) != 1 || ep.Files[0] != ep.Name {
			t.Errorf("entry point %+v, want Files == [Name]", ep)
		}
	}
	if names[0] != filepath.Join(dir, "pages", "a.js") || names[1] != filepath.Join(dir, "pages", "b.js") {
		t.Errorf("names = %v, want a.js then b.js", names)
	}
}

func TestEntrySpecsMultipleArgsEachNamedByItsOwnArg(t *testing.T) {
	eps, err := entrySpecs([]string{"main=a.js", "lazy=b.js"})
	if err != nil {
		t.Fatalf("entrySpecs: %v", err)
	}
	if len(eps) != 2 || eps[0].Name != "main" || eps[1].Name != "lazy" {
		t.Fatalf("eps = %+v, want [main lazy]", eps)
	}
}
