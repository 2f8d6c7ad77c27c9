package api

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tain335/chunkgraph/internal/chunker"
)

func TestWatchRunsInitialBuildAndReportsResult(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "a.js"), `import "./b.js";`)
	writeTestFile(t, filepath.Join(dir, "b.js"), ``)

	results := make(chan *Result, 4)
	stop, err := Watch(WatchOptions{
		Options: Options{
			BaseDirectory: dir,
			EntryPoints: []chunker.EntryPoint{
				{Name: filepath.Join(dir, "a.js"), Files: []string{filepath.Join(dir, "a.js")}},
			},
		},
		OnResult: func(res *Result, err error) {
			if err == nil {
				results <- res
			}
		},
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer stop()

	select {
	case res := <-results:
		if len(res.Flags) != 1 {
			t.Errorf("initial build Flags = %v, want one chunk", res.Flags)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the initial build's OnResult callback")
	}
}

func TestWatchRebuildsOnSourceChange(t *testing.T) {
	dir := t.TempDir()
	aPath := filepath.Join(dir, "a.js")
	writeTestFile(t, aPath, `import "./b.js";`)
	writeTestFile(t, filepath.Join(dir, "b.js"), ``)

	results := make(chan *Result, 4)
	stop, err := Watch(WatchOptions{
		Options: Options{
			BaseDirectory: dir,
			EntryPoints: []chunker.EntryPoint{
				{Name: aPath, Files: []string{aPath}},
			},
		},
		OnResult: func(res *Result, err error) {
			if err == nil {
				results <- res
			}
		},
	})
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer stop()

	select {
	case <-results:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the initial build")
	}

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(aPath, []byte(`import "./b.js"; /* touched */`), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case res := <-results:
		if len(res.Flags) != 1 {
			t.Errorf("rebuild Flags = %v, want one chunk", res.Flags)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for a rebuild after the watched file changed")
	}
}

func TestWatchReturnsBuildErrorWithoutStartingWatcher(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "a.js"), `import "./missing.js";`)

	stop, err := Watch(WatchOptions{
		Options: Options{
			BaseDirectory: dir,
			EntryPoints: []chunker.EntryPoint{
				{Name: filepath.Join(dir, "a.js"), Files: []string{filepath.Join(dir, "a.js")}},
			},
		},
	})
	if err == nil {
		stop()
		t.Fatal("Watch() err = nil, want the initial build's resolution error")
	}
}
