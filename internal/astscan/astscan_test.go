package astscan

import "testing"

func specifiers(nodes []Node, kind Kind) []string {
	var out []string
	for _, n := range nodes {
		if n.Kind == kind && n.IsLiteral {
			out = append(out, n.Specifier)
		}
	}
	return out
}

func TestParseStaticImport(t *testing.T) {
	tree := Parse(`import foo from "./foo.js";`)
	got := specifiers(tree.Nodes, KindImportFrom)
	if len(got) != 1 || got[0] != "./foo.js" {
		t.Errorf("ImportFrom specifiers = %v, want [./foo.js]", got)
	}
}

func TestParseSideEffectImport(t *testing.T) {
	tree := Parse(`import "./side-effect.js";`)
	got := specifiers(tree.Nodes, KindImportFrom)
	if len(got) != 1 || got[0] != "./side-effect.js" {
		t.Errorf("ImportFrom specifiers = %v, want [./side-effect.js]", got)
	}
}

func TestParseExportFrom(t *testing.T) {
	tree := Parse(`export { a, b } from "./bar.js";`)
	got := specifiers(tree.Nodes, KindExportFrom)
	if len(got) != 1 || got[0] != "./bar.js" {
		t.Errorf("ExportFrom specifiers = %v, want [./bar.js]", got)
	}
}

func TestParseExportStar(t *testing.T) {
	tree := Parse(`export * from "./baz.js";`)
	got := specifiers(tree.Nodes, KindExportStar)
	if len(got) != 1 || got[0] != "./baz.js" {
		t.Errorf("ExportStar specifiers = %v, want [./baz.js]", got)
	}
}

func TestParseRequireCall(t *testing.T) {
	tree := Parse(`const foo = require("./foo.js");`)
	got := specifiers(tree.Nodes, KindRequireCall)
	if len(got) != 1 || got[0] != "./foo.js" {
		t.Errorf("RequireCall specifiers = %v, want [./foo.js]", got)
	}
}

func TestParseRequireWithoutCallIsIgnored(t *testing.T) {
	tree := Parse(`const require = foo;`)
	got := specifiers(tree.Nodes, KindRequireCall)
	if len(got) != 0 {
		t.Errorf("RequireCall specifiers = %v, want none", got)
	}
}

func TestParseDynamicImportLiteral(t *testing.T) {
	tree := Parse(`const p = import("./lazy.js");`)
	var found *Node
	for i := range tree.Nodes {
		if tree.Nodes[i].Kind == KindDynamicImport {
			found = &tree.Nodes[i]
		}
	}
	if found == nil {
		t.Fatal("no KindDynamicImport node found")
	}
	if !found.IsLiteral || found.Specifier != "./lazy.js" {
		t.Errorf("dynamic import node = %+v, want literal ./lazy.js", found)
	}
}

func TestParseDynamicImportNonLiteralIsRecordedNotLiteral(t *testing.T) {
	tree := Parse(`const p = import(moduleName);`)
	var found *Node
	for i := range tree.Nodes {
		if tree.Nodes[i].Kind == KindDynamicImport {
			found = &tree.Nodes[i]
		}
	}
	if found == nil {
		t.Fatal("no KindDynamicImport node found")
	}
	if found.IsLiteral {
		t.Errorf("dynamic import with identifier argument should not be literal, got %+v", found)
	}
}

func TestParseGoogRequire(t *testing.T) {
	tree := Parse(`goog.require("ns.Foo");`)
	var require *Node
	memberCount := 0
	for i := range tree.Nodes {
		switch tree.Nodes[i].Kind {
		case KindGoogRequire:
			require = &tree.Nodes[i]
		case KindGoogMemberUse:
			memberCount++
		}
	}
	if require == nil {
		t.Fatal("no KindGoogRequire node found")
	}
	if require.Specifier != "ns.Foo" || require.IsRequireType {
		t.Errorf("goog.require node = %+v", require)
	}
	if memberCount != 1 {
		t.Errorf("expected exactly one KindGoogMemberUse node, got %d", memberCount)
	}
}

func TestParseGoogRequireType(t *testing.T) {
	tree := Parse(`goog.requireType("ns.Bar");`)
	var require *Node
	for i := range tree.Nodes {
		if tree.Nodes[i].Kind == KindGoogRequire {
			require = &tree.Nodes[i]
		}
	}
	if require == nil || !require.IsRequireType {
		t.Fatalf("goog.requireType not recorded with IsRequireType, got %+v", require)
	}
}

func TestParseGoogMemberUseWithoutRequire(t *testing.T) {
	tree := Parse(`goog.module("ns.Foo");`)
	hasMember := false
	hasRequire := false
	for _, n := range tree.Nodes {
		if n.Kind == KindGoogMemberUse {
			hasMember = true
		}
		if n.Kind == KindGoogRequire {
			hasRequire = true
		}
	}
	if !hasMember {
		t.Error("expected a KindGoogMemberUse node for goog.module(...)")
	}
	if hasRequire {
		t.Error("goog.module(...) should not produce a KindGoogRequire node")
	}
}

func TestParseIgnoresSpecifiersInsideStringsAndComments(t *testing.T) {
	src := `
// import "./not-real.js";
/* import "./also-not-real.js"; */
const s = "import(\"./still-not-real.js\")";
import real from "./real.js";
`
	tree := Parse(src)
	got := specifiers(tree.Nodes, KindImportFrom)
	if len(got) != 1 || got[0] != "./real.js" {
		t.Errorf("ImportFrom specifiers = %v, want only [./real.js]", got)
	}
}

func TestParseTemplateLiteralSubstitutionMarkerSurvivesDecoding(t *testing.T) {
	// Parse never rejects a templated specifier itself; it decodes the
	// literal text and leaves "${" detection to the caller (C3).
	tree := Parse("const p = import(`./lazy-${id}.js`);")
	var found *Node
	for i := range tree.Nodes {
		if tree.Nodes[i].Kind == KindDynamicImport {
			found = &tree.Nodes[i]
		}
	}
	if found == nil {
		t.Fatal("no KindDynamicImport node found")
	}
	if !contains(found.Specifier, "${") {
		t.Errorf("expected decoded template text to retain \"${\", got %q", found.Specifier)
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
