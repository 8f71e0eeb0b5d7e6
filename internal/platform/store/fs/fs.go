// Package fs is a keyed file store with atomic replace
//
// Each key is one file in a single directory. Writes go to a temp file in the
// same directory, are fsynced and then renamed over the target, so readers see
// either the old or the new content and never a partial write. Writes to the
// same key are serialized; reads take no lock
package fs

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	perr "scopetrack/internal/platform/errors"
)

// FS is a directory of keyed files
type FS struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Open ensures dir exists and returns a store rooted at it
func Open(dir string) (*FS, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, perr.InvalidArgf("fs: directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "fs: create %s", dir)
	}
	return &FS{dir: dir, locks: map[string]*sync.Mutex{}}, nil
}

// Dir returns the root directory
func (s *FS) Dir() string { return s.dir }

// Get returns the content stored under key; ok is false when nothing is stored
func (s *FS) Get(ctx context.Context, key string) (data []byte, ok bool, err error) {
	p, err := s.path(key)
	if err != nil {
		return nil, false, err
	}
	if err := ctx.Err(); err != nil {
		return nil, false, perr.Wrap(err, perr.ErrorCodeUnavailable, "fs: read canceled")
	}
	data, err = os.ReadFile(p)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, perr.Wrapf(err, perr.ErrorCodePersistence, "fs: read %s", key)
	}
	return data, true, nil
}

// Put atomically replaces the content stored under key
func (s *FS) Put(ctx context.Context, key string, data []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	l := s.lock(key)
	l.Lock()
	defer l.Unlock()

	if err := ctx.Err(); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "fs: write canceled")
	}

	tmp, err := os.CreateTemp(s.dir, "."+key+".tmp-*")
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodePersistence, "fs: create temp for %s", key)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return perr.Wrapf(err, perr.ErrorCodePersistence, "fs: write %s", key)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return perr.Wrapf(err, perr.ErrorCodePersistence, "fs: sync %s", key)
	}
	if err := tmp.Close(); err != nil {
		return perr.Wrapf(err, perr.ErrorCodePersistence, "fs: close %s", key)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return perr.Wrapf(err, perr.ErrorCodePersistence, "fs: chmod %s", key)
	}
	if err := os.Rename(tmpName, p); err != nil {
		return perr.Wrapf(err, perr.ErrorCodePersistence, "fs: rename %s", key)
	}
	committed = true
	syncDir(s.dir)
	return nil
}

// Delete removes key; deleting a missing key is not an error
func (s *FS) Delete(ctx context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	l := s.lock(key)
	l.Lock()
	defer l.Unlock()

	if err := ctx.Err(); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "fs: delete canceled")
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return perr.Wrapf(err, perr.ErrorCodePersistence, "fs: delete %s", key)
	}
	return nil
}

// Ping reports whether the root directory is still usable
func (s *FS) Ping(context.Context) error {
	st, err := os.Stat(s.dir)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeUnavailable, "fs: stat %s", s.dir)
	}
	if !st.IsDir() {
		return perr.Unavailablef("fs: %s is not a directory", s.dir)
	}
	return nil
}

func (s *FS) path(key string) (string, error) {
	if !ValidKey(key) {
		return "", perr.WithField(perr.Validationf("fs: invalid key %q", key), "key")
	}
	return filepath.Join(s.dir, key), nil
}

func (s *FS) lock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

// ValidKey reports whether key names a single file inside the root
func ValidKey(key string) bool {
	if key == "" || key == "." || key == ".." || strings.HasPrefix(key, ".") {
		return false
	}
	return !strings.ContainsAny(key, "/\\\x00")
}

// syncDir flushes the rename to disk where the platform allows it
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
