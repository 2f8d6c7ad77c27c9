package resolver

import (
	"testing"

	"github.com/tain335/chunkgraph/internal/testfs"
)

func TestResolveRelativeWithImplicitExtension(t *testing.T) {
	fs := testfs.New()
	fs.AddFile("/p/a.js", "")
	fs.AddFile("/p/b.js", "")

	r := New(fs, "/p", nil)
	got, err := r.Resolve("/p/a.js", "./b")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Path != "/p/b.js" {
		t.Errorf("Resolve() = %q, want /p/b.js", got.Path)
	}
}

func TestResolveRelativeDirectoryIndex(t *testing.T) {
	fs := testfs.New()
	fs.AddFile("/p/a.js", "")
	fs.AddDir("/p/sub")
	fs.AddFile("/p/sub/index.js", "")

	r := New(fs, "/p", nil)
	got, err := r.Resolve("/p/a.js", "./sub")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Path != "/p/sub/index.js" {
		t.Errorf("Resolve() = %q, want /p/sub/index.js", got.Path)
	}
}

func TestResolveRelativeDirectoryMainField(t *testing.T) {
	fs := testfs.New()
	fs.AddFile("/p/a.js", "")
	fs.AddDir("/p/sub")
	fs.AddFile("/p/sub/package.json", `{"main": "entry.js"}`)
	fs.AddFile("/p/sub/entry.js", "")
	fs.AddFile("/p/sub/index.js", "")

	r := New(fs, "/p", nil)
	got, err := r.Resolve("/p/a.js", "./sub")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Path != "/p/sub/entry.js" {
		t.Errorf("Resolve() = %q, want /p/sub/entry.js (package.json main field)", got.Path)
	}
}

func TestResolveEntryFieldOrderPrefersFirstPresent(t *testing.T) {
	fs := testfs.New()
	fs.AddFile("/p/a.js", "")
	fs.AddDir("/p/sub")
	fs.AddFile("/p/sub/package.json", `{"main": "main.js", "module": "module.js"}`)
	fs.AddFile("/p/sub/main.js", "")
	fs.AddFile("/p/sub/module.js", "")

	r := New(fs, "/p", []string{"module", "main"})
	got, err := r.Resolve("/p/a.js", "./sub")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Path != "/p/sub/module.js" {
		t.Errorf("Resolve() = %q, want /p/sub/module.js (module field takes precedence over main)", got.Path)
	}
}

func TestResolveEntryFieldOrderHonorsNonDefaultFieldName(t *testing.T) {
	fs := testfs.New()
	fs.AddFile("/p/a.js", "")
	fs.AddDir("/p/sub")
	fs.AddFile("/p/sub/package.json", `{"unpkg": "dist/lib.umd.js", "main": "main.js"}`)
	fs.AddFile("/p/sub/dist/lib.umd.js", "")
	fs.AddFile("/p/sub/main.js", "")

	r := New(fs, "/p", []string{"unpkg", "main"})
	got, err := r.Resolve("/p/a.js", "./sub")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Path != "/p/sub/dist/lib.umd.js" {
		t.Errorf("Resolve() = %q, want /p/sub/dist/lib.umd.js (a caller-configured field name outside the default three must be honored)", got.Path)
	}
}

func TestResolveUnresolvedModule(t *testing.T) {
	fs := testfs.New()
	fs.AddFile("/p/a.js", "")

	r := New(fs, "/p", nil)
	_, err := r.Resolve("/p/a.js", "./missing")
	if _, ok := err.(*UnresolvedModule); !ok {
		t.Fatalf("Resolve() err = %v (%T), want *UnresolvedModule", err, err)
	}
}

func TestResolveBarePackageClimbsNodeModules(t *testing.T) {
	fs := testfs.New()
	fs.AddFile("/root/src/a.js", "")
	fs.AddFile("/root/node_modules/lib/package.json", `{"main": "index.js"}`)
	fs.AddFile("/root/node_modules/lib/index.js", "")

	r := New(fs, "/root", nil)
	got, err := r.Resolve("/root/src/a.js", "lib")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Path != "/root/node_modules/lib/index.js" {
		t.Errorf("Resolve() = %q, want /root/node_modules/lib/index.js", got.Path)
	}
	if got.MetaPath != "/root/node_modules/lib/package.json" {
		t.Errorf("Resolve() MetaPath = %q, want the package.json aux dep", got.MetaPath)
	}
}

func TestResolveBarePackageSubpathDoesNotEmitMetaPath(t *testing.T) {
	fs := testfs.New()
	fs.AddFile("/root/src/a.js", "")
	fs.AddFile("/root/node_modules/lib/package.json", `{"main": "index.js"}`)
	fs.AddFile("/root/node_modules/lib/utils.js", "")

	r := New(fs, "/root", nil)
	got, err := r.Resolve("/root/src/a.js", "lib/utils")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Path != "/root/node_modules/lib/utils.js" {
		t.Errorf("Resolve() = %q, want /root/node_modules/lib/utils.js", got.Path)
	}
	if got.MetaPath != "" {
		t.Errorf("Resolve() MetaPath = %q, want empty for a subpath specifier", got.MetaPath)
	}
}

func TestResolveScopedPackage(t *testing.T) {
	fs := testfs.New()
	fs.AddFile("/root/src/a.js", "")
	fs.AddFile("/root/node_modules/@scope/pkg/package.json", `{"main": "index.js"}`)
	fs.AddFile("/root/node_modules/@scope/pkg/index.js", "")

	r := New(fs, "/root", nil)
	got, err := r.Resolve("/root/src/a.js", "@scope/pkg")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Path != "/root/node_modules/@scope/pkg/index.js" {
		t.Errorf("Resolve() = %q, want the scoped package's index.js", got.Path)
	}
	if got.MetaPath == "" {
		t.Error("Resolve() MetaPath = \"\", want the scoped package's package.json")
	}
}

func TestResolveBareClimbsToAncestorNodeModules(t *testing.T) {
	fs := testfs.New()
	fs.AddFile("/root/src/deep/a.js", "")
	fs.AddFile("/root/node_modules/lib/index.js", "")

	r := New(fs, "/root", nil)
	got, err := r.Resolve("/root/src/deep/a.js", "lib")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Path != "/root/node_modules/lib/index.js" {
		t.Errorf("Resolve() = %q, want /root/node_modules/lib/index.js", got.Path)
	}
}
