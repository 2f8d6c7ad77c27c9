// Package testfs is an in-memory vfs.FileSystem used by other packages'
// tests, grounded on bennypowers-mappa's internal/mapfs: a map of paths to
// byte contents, addressed by explicit AddFile/AddDir calls rather than a
// real filesystem walk, so chunker/resolver/depwalk tests stay hermetic.
package testfs

import (
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/tain335/chunkgraph/internal/vfs"
)

type entry struct {
	data     []byte
	isDir    bool
	unreadable bool
}

// FS is an in-memory vfs.FileSystem.
type FS struct {
	files map[string]entry
}

var _ vfs.FileSystem = (*FS)(nil)

// New returns an empty in-memory filesystem.
func New() *FS {
	return &FS{files: make(map[string]entry)}
}

func clean(p string) string {
	return path.Clean(filepathToSlash(p))
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// AddFile registers a file's contents, creating parent directory entries
// implicitly.
func (f *FS) AddFile(p string, content string) {
	p = clean(p)
	f.files[p] = entry{data: []byte(content)}
	for dir := path.Dir(p); dir != "/" && dir != "."; dir = path.Dir(dir) {
		if _, ok := f.files[dir]; !ok {
			f.files[dir] = entry{isDir: true}
		}
	}
}

// AddDir registers an empty directory.
func (f *FS) AddDir(p string) {
	f.files[clean(p)] = entry{isDir: true}
}

// AddUnreadableFile registers a file that exists (and resolves) but whose
// ReadFile call always fails, for exercising non-fatal read-failure paths.
func (f *FS) AddUnreadableFile(p string) {
	f.AddFile(p, "")
	e := f.files[clean(p)]
	e.unreadable = true
	f.files[clean(p)] = e
}

func (f *FS) ReadFile(p string) ([]byte, error) {
	e, ok := f.files[clean(p)]
	if !ok || e.isDir {
		return nil, &fs.PathError{Op: "read", Path: p, Err: fs.ErrNotExist}
	}
	if e.unreadable {
		return nil, &fs.PathError{Op: "read", Path: p, Err: fs.ErrPermission}
	}
	return e.data, nil
}

func (f *FS) Exists(p string) bool {
	_, ok := f.files[clean(p)]
	return ok
}

type fileInfo struct {
	name  string
	size  int64
	isDir bool
}

func (fi fileInfo) Name() string       { return fi.name }
func (fi fileInfo) Size() int64        { return fi.size }
func (fi fileInfo) Mode() fs.FileMode {
	if fi.isDir {
		return fs.ModeDir | 0755
	}
	return 0644
}
func (fi fileInfo) ModTime() time.Time { return time.Time{} }
func (fi fileInfo) IsDir() bool        { return fi.isDir }
func (fi fileInfo) Sys() any           { return nil }

func (f *FS) Stat(p string) (fs.FileInfo, error) {
	cp := clean(p)
	e, ok := f.files[cp]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: p, Err: fs.ErrNotExist}
	}
	return fileInfo{name: path.Base(cp), size: int64(len(e.data)), isDir: e.isDir}, nil
}

func (f *FS) Abs(p string) (string, error) {
	p = filepathToSlash(p)
	if path.IsAbs(p) {
		return path.Clean(p), nil
	}
	return path.Clean("/" + p), nil
}

func (f *FS) Join(elem ...string) string {
	return path.Join(elem...)
}

func (f *FS) Dir(p string) string {
	return path.Dir(clean(p))
}
