package extract

import (
	"bytes"
	"strings"

	perr "scopetrack/internal/platform/errors"

	"github.com/ledongthuc/pdf"
)

// extractPDF reads page text row by row so list items stay on their own lines
func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeExtraction, "corrupt pdf document")
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			return "", perr.Wrapf(err, perr.ErrorCodeExtraction, "read pdf page %d", i)
		}
		for _, row := range rows {
			if line := joinRow(row.Content); strings.TrimSpace(line) != "" {
				b.WriteString(line)
				b.WriteByte('\n')
			}
		}
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// joinRow glues text chunks on one baseline, inserting a space where the
// horizontal gap is wider than a fraction of the font size
func joinRow(chunks pdf.TextHorizontal) string {
	var b strings.Builder
	for i, c := range chunks {
		if i > 0 {
			prev := chunks[i-1]
			gap := c.X - (prev.X + prev.W)
			if gap > 0.15*c.FontSize && !strings.HasSuffix(prev.S, " ") && !strings.HasPrefix(c.S, " ") {
				b.WriteByte(' ')
			}
		}
		b.WriteString(c.S)
	}
	return b.String()
}
