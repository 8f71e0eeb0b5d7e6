package bind

import (
	"errors"
	"io"
	"mime"
	"net/http"

	perr "scopetrack/internal/platform/errors"
)

// Upload is a single file read from a multipart form plus the form's plain fields
type Upload struct {
	Name        string
	ContentType string
	Data        []byte
	Fields      map[string]string
}

const maxFieldBytes = 4 << 10

// DefaultMaxUpload caps File when maxBytes is zero
const DefaultMaxUpload int64 = 32 << 20

// File reads the named part of a multipart/form-data request fully into memory
// Oversized uploads are a validation error on that field
func File(r *http.Request, field string, maxBytes int64) (Upload, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUpload
	}
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mt != "multipart/form-data" {
		return Upload{}, perr.WithField(perr.Validationf("expected multipart/form-data upload"), field)
	}
	mr, err := r.MultipartReader()
	if err != nil {
		return Upload{}, perr.WithField(perr.Validationf("bad multipart body: %v", err), field)
	}
	up := Upload{Fields: map[string]string{}}
	found := false
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Upload{}, perr.WithField(perr.Validationf("bad multipart body: %v", err), field)
		}
		name := part.FormName()
		switch {
		case name == field && !found:
			data, err := io.ReadAll(io.LimitReader(part, maxBytes+1))
			if err != nil {
				_ = part.Close()
				return Upload{}, perr.WithField(perr.Validationf("read %s: %v", field, err), field)
			}
			if int64(len(data)) > maxBytes {
				_ = part.Close()
				return Upload{}, perr.WithField(perr.Validationf("%s exceeds %d bytes", field, maxBytes), field)
			}
			up.Name, up.ContentType, up.Data = part.FileName(), part.Header.Get("Content-Type"), data
			found = true
		case part.FileName() == "" && name != "":
			v, err := io.ReadAll(io.LimitReader(part, maxFieldBytes))
			if err != nil {
				_ = part.Close()
				return Upload{}, perr.WithField(perr.Validationf("read %s: %v", name, err), name)
			}
			up.Fields[name] = string(v)
		}
		_ = part.Close()
	}
	if !found {
		return Upload{}, perr.WithField(perr.Validationf("%s is required", field), field)
	}
	return up, nil
}
