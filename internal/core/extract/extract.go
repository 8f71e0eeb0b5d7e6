// Package extract converts scope-of-work documents into plain text
// Supported: PDF, DOCX, XLSX, PPTX and plain text. No normalization happens here
package extract

import (
	"context"
	"fmt"
	"time"

	perr "scopetrack/internal/platform/errors"
)

// Defaults for Options
const (
	DefaultMaxBytes int64 = 32 << 20
	DefaultTimeout        = 15 * time.Second
)

// Options bound extraction cost
type Options struct {
	MaxBytes int64         // larger documents are rejected
	Timeout  time.Duration // per document wall clock budget
}

// Extractor is stateless apart from its options and safe for concurrent use
type Extractor struct {
	opts Options
}

// New returns an Extractor; zero options take the defaults
func New(opts Options) *Extractor {
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Extractor{opts: opts}
}

var std = New(Options{})

// ExtractText runs the default extractor
func ExtractText(ctx context.Context, data []byte, hint string) (string, error) {
	return std.Extract(ctx, data, hint)
}

type result struct {
	text string
	err  error
}

// Extract returns the text of data. hint may be a format name, file name or MIME type;
// an empty hint sniffs the bytes. Zero-length input yields "" for every format
func (e *Extractor) Extract(ctx context.Context, data []byte, hint string) (string, error) {
	format, err := Resolve(hint, data)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", nil
	}
	if int64(len(data)) > e.opts.MaxBytes {
		return "", perr.Extractionf("%s document is %d bytes, limit is %d", format, len(data), e.opts.MaxBytes)
	}
	if err := ctx.Err(); err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeExtraction, "extract %s", format)
	}

	ctx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	done := make(chan result, 1)
	go func() {
		defer func() {
			// malformed documents can panic inside the decoders
			if r := recover(); r != nil {
				done <- result{err: perr.Extractionf("corrupt %s document: %v", format, r)}
			}
		}()
		text, err := decode(format, data)
		done <- result{text: text, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			if perr.IsCode(res.err, perr.ErrorCodeExtraction) {
				return "", res.err
			}
			return "", perr.Wrapf(res.err, perr.ErrorCodeExtraction, "corrupt %s document", format)
		}
		return res.text, nil
	case <-ctx.Done():
		return "", perr.Wrapf(ctx.Err(), perr.ErrorCodeExtraction, "extract %s: budget of %s exceeded", format, e.opts.Timeout)
	}
}

func decode(f Format, data []byte) (string, error) {
	switch f {
	case FormatPDF:
		return extractPDF(data)
	case FormatDOCX:
		return extractDOCX(data)
	case FormatPPTX:
		return extractPPTX(data)
	case FormatXLSX:
		return extractXLSX(data)
	case FormatText:
		return decodeText(data)
	default:
		return "", fmt.Errorf("no decoder for %q", f)
	}
}
