// Package hostio implements the host interfaces the core decoders consume:
// a filesystem reader that yields a whole file as a contiguous buffer, and
// a directory iterator that enumerates ANLZ files by extension. It is
// deliberately a read-only trim of cockroachdb-pebble's vfs.FS — this
// library never creates, locks, or renames a file, so those methods have
// no home here.
package hostio

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/riftbox/cratedigger/dberror"
)

// FS is the filesystem host interface consumed by Open and ANLZ directory
// scans. It is satisfied by Default (real disk I/O) and by any
// io/fs.FS-backed test fixture via FromFS.
type FS interface {
	// ReadFile reads the named file in its entirety into a single
	// contiguous buffer. It returns a *dberror.Error with Kind
	// FileNotFound or IoError on failure.
	ReadFile(name string) ([]byte, error)

	// WalkANLZFiles recursively enumerates regular files under root whose
	// extension case-insensitively matches .dat, .ext, or .2ex. The
	// returned slice is sorted for deterministic scan order.
	WalkANLZFiles(root string) ([]string, error)
}

// Default is the real-OS FS implementation, analogous to pebble's
// vfs.Default.
type Default struct{}

// NewDefault returns the real-OS FS.
func NewDefault() FS { return Default{} }

// ReadFile implements FS.
func (Default) ReadFile(name string) ([]byte, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, dberror.Wrap(err, dberror.FileNotFound, "cannot open file: %s", name)
		}
		return nil, dberror.Wrap(err, dberror.IoError, "failed to read file: %s", name)
	}
	return data, nil
}

// WalkANLZFiles implements FS.
func (Default) WalkANLZFiles(root string) ([]string, error) {
	return walkANLZFiles(os.DirFS(root), ".", root)
}

// FromFS adapts an io/fs.FS (for instance testing/fstest.MapFS) into an
// FS, the same role pebble's vfs.NewMem() plays for in-memory tests.
func FromFS(fsys fs.FS) FS {
	return memFS{fsys: fsys}
}

type memFS struct {
	fsys fs.FS
}

func (m memFS) ReadFile(name string) ([]byte, error) {
	data, err := fs.ReadFile(m.fsys, name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, dberror.Wrap(err, dberror.FileNotFound, "cannot open file: %s", name)
		}
		return nil, dberror.Wrap(err, dberror.IoError, "failed to read file: %s", name)
	}
	return data, nil
}

func (m memFS) WalkANLZFiles(root string) ([]string, error) {
	return walkANLZFiles(m.fsys, root, root)
}

// anlzExtensions is the set of case-insensitive extensions recognised as
// ANLZ analysis files, per spec: .DAT, .EXT, .2EX.
var anlzExtensions = map[string]bool{
	".dat": true,
	".ext": true,
	".2ex": true,
}

func walkANLZFiles(fsys fs.FS, walkRoot, displayRoot string) ([]string, error) {
	var out []string
	err := fs.WalkDir(fsys, walkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Skip unreadable entries, keep walking siblings.
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !anlzExtensions[ext] {
			return nil
		}
		out = append(out, joinDisplay(displayRoot, walkRoot, path))
		return nil
	})
	if err != nil {
		return nil, dberror.Wrap(err, dberror.IoError, "failed to walk directory: %s", displayRoot)
	}
	sort.Strings(out)
	return out, nil
}

// joinDisplay reconstructs a path relative to walkRoot but rooted at
// displayRoot, so os.DirFS(root)'s root-relative names come back out as
// caller-facing paths under the original root argument.
func joinDisplay(displayRoot, walkRoot, path string) string {
	if walkRoot == displayRoot {
		return path
	}
	return filepath.Join(displayRoot, path)
}

// ReadAll is a small helper mirroring io.ReadAll for callers that already
// hold an fs.File and want the whole-buffer contract this package's FS
// interface provides for named files.
func ReadAll(f fs.File) ([]byte, error) {
	return io.ReadAll(f)
}
