package progress

import (
	"time"

	"scopetrack/internal/core/reconcile"
	perr "scopetrack/internal/platform/errors"

	"github.com/xuri/excelize/v2"
)

// Sheet names in the exported workbook
const (
	SheetSummary = "Summary"
	SheetItems   = "Items"
)

// Workbook exports the report as an XLSX file with Summary and Items sheets
func Workbook(r reconcile.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return nil, wbErr(err)
	}
	if _, err := f.NewSheet(SheetItems); err != nil {
		return nil, wbErr(err)
	}
	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
	})
	if err != nil {
		return nil, wbErr(err)
	}

	summary := [][]any{
		{"Field", "Value"},
		{"Project", r.ProjectID},
		{"Status", string(r.Status)},
		{"Completion %", r.CompletionPct},
		{"Matched", len(r.Matched)},
		{"Missing", len(r.Missing)},
		{"Out of scope", r.OutOfScopeTotal},
		{"Threshold", r.Threshold},
		{"Generated at", r.GeneratedAt.UTC().Format(time.RFC3339)},
	}
	if r.Message != "" {
		summary = append(summary, []any{"Note", r.Message})
	}
	for _, c := range r.ChangeOrders {
		summary = append(summary, []any{"Change order", c})
	}
	for _, l := range r.OutOfScope {
		summary = append(summary, []any{"Out of scope line", l})
	}
	if err := writeRows(f, SheetSummary, summary); err != nil {
		return nil, err
	}

	rows := [][]any{{"Order", "Item", "Tier", "Matched", "Score", "Signal", "Best log line"}}
	for _, res := range r.Results {
		best := ""
		if res.BestLogLine != nil {
			best = *res.BestLogLine
		}
		rows = append(rows, []any{
			res.Item.Order + 1, res.Item.Text, string(res.Tier), res.Matched,
			roundScore(res.Score), string(res.Signal), best,
		})
	}
	if err := writeRows(f, SheetItems, rows); err != nil {
		return nil, err
	}

	for _, s := range []string{SheetSummary, SheetItems} {
		if err := f.SetRowStyle(s, 1, 1, header); err != nil {
			return nil, wbErr(err)
		}
	}
	_ = f.SetColWidth(SheetSummary, "A", "A", 20)
	_ = f.SetColWidth(SheetSummary, "B", "B", 60)
	_ = f.SetColWidth(SheetItems, "B", "B", 50)
	_ = f.SetColWidth(SheetItems, "G", "G", 60)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, wbErr(err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return wbErr(err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return wbErr(err)
		}
	}
	return nil
}

func roundScore(s float64) float64 {
	return float64(int64(s*10000+0.5)) / 10000
}

func wbErr(err error) error { return perr.Wrap(err, perr.ErrorCodeUnknown, "build workbook") }
