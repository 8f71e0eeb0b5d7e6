package repo

import (
	"context"
	"encoding/json"

	"scopetrack/internal/core/checklist"
	perr "scopetrack/internal/platform/errors"
	"scopetrack/internal/platform/store/fs"
)

// FileSuffix is appended to the project key to name its file
const FileSuffix = "_scope.json"

// FS keeps one {key}_scope.json file per project holding a JSON array of item texts
type FS struct {
	files *fs.FS
}

// NewFS returns a file backed scope store
func NewFS(files *fs.FS) *FS {
	if files == nil {
		panic("scopes.FS requires a non nil file store")
	}
	return &FS{files: files}
}

// Save overwrites the project's file atomically
func (s *FS) Save(ctx context.Context, key string, c checklist.Checklist) error {
	b, err := json.Marshal(c)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodePersistence, "encode scope")
	}
	return s.files.Put(ctx, key+FileSuffix, b)
}

// Load reads the project's file; a missing file is an empty checklist
func (s *FS) Load(ctx context.Context, key string) (checklist.Checklist, error) {
	b, ok, err := s.files.Get(ctx, key+FileSuffix)
	if err != nil || !ok {
		return checklist.Checklist{}, err
	}
	var c checklist.Checklist
	if err := json.Unmarshal(b, &c); err != nil {
		return checklist.Checklist{}, perr.Wrapf(err, perr.ErrorCodePersistence, "corrupt scope file for %s", key)
	}
	return c, nil
}
