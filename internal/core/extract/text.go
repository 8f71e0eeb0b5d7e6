package extract

import (
	"bytes"
	"unicode/utf8"

	perr "scopetrack/internal/platform/errors"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decodeText handles UTF-8, UTF-16 with BOM and legacy Windows-1252 text
func decodeText(data []byte) (string, error) {
	if bytes.HasPrefix(data, bomUTF16LE) || bytes.HasPrefix(data, bomUTF16BE) {
		out, err := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder().Bytes(data)
		if err != nil {
			return "", perr.Wrap(err, perr.ErrorCodeExtraction, "unreadable utf-16 text")
		}
		return string(out), nil
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return "", perr.Extractionf("binary content is not a text document")
	}
	data = bytes.TrimPrefix(data, bomUTF8)
	if utf8.Valid(data) {
		return string(data), nil
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeExtraction, "unreadable text encoding")
	}
	return string(out), nil
}
