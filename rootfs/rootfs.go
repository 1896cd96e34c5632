// Package rootfs opens the served root as a read-only billy filesystem.
package rootfs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// New returns a read-only filesystem bound to dir. Paths resolved through
// it, including symlink targets, cannot leave dir.
func New(dir string) (billy.Filesystem, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve root %q: %w", dir, err)
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("root %q is not a directory", abs)
	}
	return ReadOnly(osfs.New(abs, osfs.WithBoundOS())), nil
}

const writeFlags = os.O_WRONLY | os.O_RDWR | os.O_CREATE | os.O_TRUNC | os.O_APPEND

// ReadOnly wraps fs so that every mutating call fails with billy.ErrReadOnly.
func ReadOnly(fs billy.Filesystem) billy.Filesystem {
	if ro, ok := fs.(*readOnly); ok {
		return ro
	}
	return &readOnly{Filesystem: fs}
}

type readOnly struct {
	billy.Filesystem
}

func (r *readOnly) Create(string) (billy.File, error) {
	return nil, billy.ErrReadOnly
}

func (r *readOnly) OpenFile(filename string, flag int, perm os.FileMode) (billy.File, error) {
	if flag&writeFlags != 0 {
		return nil, billy.ErrReadOnly
	}
	return r.Filesystem.OpenFile(filename, flag, perm)
}

func (r *readOnly) Rename(string, string) error {
	return billy.ErrReadOnly
}

func (r *readOnly) Remove(string) error {
	return billy.ErrReadOnly
}

func (r *readOnly) TempFile(string, string) (billy.File, error) {
	return nil, billy.ErrReadOnly
}

func (r *readOnly) MkdirAll(string, os.FileMode) error {
	return billy.ErrReadOnly
}

func (r *readOnly) Symlink(string, string) error {
	return billy.ErrReadOnly
}

func (r *readOnly) Chroot(path string) (billy.Filesystem, error) {
	sub, err := r.Filesystem.Chroot(path)
	if err != nil {
		return nil, err
	}
	return ReadOnly(sub), nil
}

func (r *readOnly) Capabilities() billy.Capability {
	return billy.ReadCapability | billy.SeekCapability
}
