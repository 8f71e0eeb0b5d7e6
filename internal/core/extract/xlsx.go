package extract

import (
	"bytes"
	"strings"

	perr "scopetrack/internal/platform/errors"

	"github.com/xuri/excelize/v2"
)

// extractXLSX emits one line per non-empty row, sheets in workbook order
func extractXLSX(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeExtraction, "corrupt xlsx document")
	}
	defer func() { _ = f.Close() }()

	var b strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", perr.Wrapf(err, perr.ErrorCodeExtraction, "read sheet %q", sheet)
		}
		for _, row := range rows {
			cells := make([]string, 0, len(row))
			for _, c := range row {
				if c = strings.TrimSpace(c); c != "" {
					cells = append(cells, c)
				}
			}
			if len(cells) > 0 {
				b.WriteString(strings.Join(cells, " "))
				b.WriteByte('\n')
			}
		}
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
