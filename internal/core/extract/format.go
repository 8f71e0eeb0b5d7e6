package extract

import (
	"archive/zip"
	"bytes"
	"path"
	"strings"

	perr "scopetrack/internal/platform/errors"
)

// Format is a supported document format
type Format string

// Supported formats
const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatXLSX Format = "xlsx"
	FormatPPTX Format = "pptx"
	FormatText Format = "text"
)

var byName = map[string]Format{
	"pdf":      FormatPDF,
	"docx":     FormatDOCX,
	"xlsx":     FormatXLSX,
	"pptx":     FormatPPTX,
	"txt":      FormatText,
	"text":     FormatText,
	"plain":    FormatText,
	"md":       FormatText,
	"markdown": FormatText,
	"csv":      FormatText,
	"log":      FormatText,
}

var byMIME = map[string]Format{
	"application/pdf": FormatPDF,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   FormatDOCX,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         FormatXLSX,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": FormatPPTX,
}

// sniffing placeholders that should not override the bytes
var genericMIME = map[string]struct{}{
	"application/octet-stream": {},
	"binary/octet-stream":      {},
	"application/zip":          {},
}

// ParseFormat maps a format name, file name or MIME type to a Format
// ok is false for unknown hints; an empty hint returns "", true
func ParseFormat(hint string) (Format, bool) {
	h := strings.ToLower(strings.TrimSpace(hint))
	if h == "" {
		return "", true
	}
	if i := strings.IndexByte(h, ';'); i >= 0 {
		h = strings.TrimSpace(h[:i])
	}
	if strings.Contains(h, "/") {
		if f, ok := byMIME[h]; ok {
			return f, true
		}
		if _, ok := genericMIME[h]; ok {
			return "", true
		}
		if strings.HasPrefix(h, "text/") {
			return FormatText, true
		}
	}
	if f, ok := byName[h]; ok {
		return f, true
	}
	if ext := strings.TrimPrefix(path.Ext(h), "."); ext != "" {
		if f, ok := byName[ext]; ok {
			return f, true
		}
	}
	return "", false
}

// Resolve picks the format from hint, falling back to sniffing data
func Resolve(hint string, data []byte) (Format, error) {
	f, ok := ParseFormat(hint)
	if !ok {
		return "", perr.WithField(perr.Extractionf("unsupported document format %q", hint), "format")
	}
	if f != "" {
		return f, nil
	}
	return Sniff(data)
}

// Sniff guesses the format from magic bytes; anything that is not PDF or OOXML is text
func Sniff(data []byte) (Format, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if bytes.HasPrefix(trimmed, []byte("%PDF-")) {
		return FormatPDF, nil
	}
	if !bytes.HasPrefix(data, []byte("PK\x03\x04")) {
		return FormatText, nil
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeExtraction, "corrupt zip container")
	}
	for _, f := range zr.File {
		switch {
		case strings.HasPrefix(f.Name, "word/"):
			return FormatDOCX, nil
		case strings.HasPrefix(f.Name, "xl/"):
			return FormatXLSX, nil
		case strings.HasPrefix(f.Name, "ppt/"):
			return FormatPPTX, nil
		}
	}
	return "", perr.Extractionf("unsupported zip document")
}
