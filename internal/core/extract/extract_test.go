package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	perr "scopetrack/internal/platform/errors"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

func zipOf(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

const docxBody = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:body>
<w:p><w:r><w:t>1. Excavate trench </w:t></w:r><w:r><w:t>2ft wide</w:t></w:r></w:p>
<w:p></w:p>
<w:p><w:r><w:t>2. Install 1 inch gas line</w:t><w:br/><w:t>with shutoff</w:t></w:r></w:p>
</w:body>
</w:document>`

func slideXML(lines ...string) string {
	var b strings.Builder
	b.WriteString(`<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"><p:cSld><p:spTree><p:sp><p:txBody>`)
	for _, l := range lines {
		b.WriteString(`<a:p><a:r><a:t>` + l + `</a:t></a:r></a:p>`)
	}
	b.WriteString(`</p:txBody></p:sp></p:spTree></p:cSld></p:sld>`)
	return b.String()
}

func mustExtractCode(t *testing.T, err error) {
	t.Helper()
	if !perr.IsCode(err, perr.ErrorCodeExtraction) {
		t.Fatalf("want extraction error, got %v", err)
	}
}

func TestExtractDOCX(t *testing.T) {
	data := zipOf(t, map[string]string{
		"[Content_Types].xml": `<Types/>`,
		"word/document.xml":   docxBody,
	})
	got, err := ExtractText(context.Background(), data, "scope.docx")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	want := "1. Excavate trench 2ft wide\n2. Install 1 inch gas line\nwith shutoff"
	if got != want {
		t.Fatalf("docx text = %q, want %q", got, want)
	}

	// sniffed without a hint
	if got2, err := ExtractText(context.Background(), data, ""); err != nil || got2 != want {
		t.Fatalf("sniffed docx = %q, %v", got2, err)
	}
}

func TestExtractDOCXCorrupt(t *testing.T) {
	_, err := ExtractText(context.Background(), []byte("PK\x03\x04not really a zip"), "docx")
	mustExtractCode(t, err)

	noBody := zipOf(t, map[string]string{"word/styles.xml": "<x/>"})
	_, err = ExtractText(context.Background(), noBody, "docx")
	mustExtractCode(t, err)

	badXML := zipOf(t, map[string]string{"word/document.xml": "<w:document><w:p>"})
	_, err = ExtractText(context.Background(), badXML, "docx")
	mustExtractCode(t, err)
}

func TestExtractPPTXSlideOrder(t *testing.T) {
	data := zipOf(t, map[string]string{
		"ppt/presentation.xml":   `<p:presentation/>`,
		"ppt/slides/slide10.xml": slideXML("Tenth slide item"),
		"ppt/slides/slide2.xml":  slideXML("Second slide item", "Another line"),
		"ppt/slides/slide1.xml":  slideXML("First slide item"),
	})
	got, err := ExtractText(context.Background(), data, "application/vnd.openxmlformats-officedocument.presentationml.presentation")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	want := "First slide item\nSecond slide item\nAnother line\nTenth slide item"
	if got != want {
		t.Fatalf("pptx text = %q, want %q", got, want)
	}
}

func TestExtractXLSX(t *testing.T) {
	f := excelize.NewFile()
	if err := f.SetCellValue("Sheet1", "A1", "Item"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellValue("Sheet1", "B1", "Qty"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellValue("Sheet1", "A2", "Pour concrete pad"); err != nil {
		t.Fatal(err)
	}
	if err := f.SetCellValue("Sheet1", "C2", 1); err != nil {
		t.Fatal(err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	_ = f.Close()

	got, err := ExtractText(context.Background(), buf.Bytes(), "takeoff.XLSX")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got != "Item Qty\nPour concrete pad 1" {
		t.Fatalf("xlsx text = %q", got)
	}
}

func TestExtractPDFCorrupt(t *testing.T) {
	_, err := ExtractText(context.Background(), []byte("%PDF-1.4\nthis is not a real pdf"), "")
	mustExtractCode(t, err)
	_, err = ExtractText(context.Background(), []byte("plain words"), "application/pdf")
	mustExtractCode(t, err)
}

func TestExtractText(t *testing.T) {
	utf16, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String("Frame walls\nHang doors")
	if err != nil {
		t.Fatal(err)
	}
	latin, err := charmap.Windows1252.NewEncoder().String("Café trim – paint")
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name string
		data []byte
		hint string
		want string
	}{
		{"utf8", []byte("Pour concrete pad\nSet forms"), "txt", "Pour concrete pad\nSet forms"},
		{"utf8 bom", append([]byte{0xEF, 0xBB, 0xBF}, "Set forms"...), "text/plain; charset=utf-8", "Set forms"},
		{"utf16 bom", []byte(utf16), "", "Frame walls\nHang doors"},
		{"windows-1252", []byte(latin), "notes.md", "Café trim – paint"},
		{"empty", nil, "txt", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ExtractText(context.Background(), c.data, c.hint)
			if err != nil {
				t.Fatalf("Extract: %v", err)
			}
			if got != c.want {
				t.Fatalf("text = %q, want %q", got, c.want)
			}
		})
	}

	_, err = ExtractText(context.Background(), []byte("abc\x00def"), "txt")
	mustExtractCode(t, err)
}

func TestExtractEmptyIsNotAnError(t *testing.T) {
	for _, hint := range []string{"pdf", "docx", "xlsx", "pptx", "txt", ""} {
		got, err := ExtractText(context.Background(), []byte{}, hint)
		if err != nil || got != "" {
			t.Fatalf("empty %q = %q, %v", hint, got, err)
		}
	}
}

func TestExtractUnsupported(t *testing.T) {
	for _, hint := range []string{"doc", "image/png", "scope.rtf"} {
		_, err := ExtractText(context.Background(), []byte("x"), hint)
		mustExtractCode(t, err)
	}
	_, err := ExtractText(context.Background(), zipOf(t, map[string]string{"foo.txt": "x"}), "")
	mustExtractCode(t, err)
}

func TestExtractLimits(t *testing.T) {
	e := New(Options{MaxBytes: 8, Timeout: time.Second})
	_, err := e.Extract(context.Background(), []byte("more than eight bytes"), "txt")
	mustExtractCode(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = New(Options{}).Extract(ctx, []byte("Pour concrete pad"), "txt")
	mustExtractCode(t, err)
}

func TestParseFormat(t *testing.T) {
	cases := []struct {
		hint string
		want Format
		ok   bool
	}{
		{"PDF", FormatPDF, true},
		{"Scope Of Work.pdf", FormatPDF, true},
		{".docx", FormatDOCX, true},
		{"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", FormatXLSX, true},
		{"text/markdown", FormatText, true},
		{"application/octet-stream", "", true},
		{"", "", true},
		{"doc", "", false},
	}
	for _, c := range cases {
		got, ok := ParseFormat(c.hint)
		if got != c.want || ok != c.ok {
			t.Fatalf("ParseFormat(%q) = %q,%v want %q,%v", c.hint, got, ok, c.want, c.ok)
		}
	}
}
