package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"sort"
	"strconv"
	"strings"

	perr "scopetrack/internal/platform/errors"
)

const maxPartBytes = 64 << 20

func openZip(data []byte) (*zip.Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeExtraction, "corrupt office document")
	}
	return zr, nil
}

func findPart(zr *zip.Reader, name string) *zip.File {
	for _, f := range zr.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// extractDOCX reads paragraphs from word/document.xml, one line per paragraph
func extractDOCX(data []byte) (string, error) {
	zr, err := openZip(data)
	if err != nil {
		return "", err
	}
	part := findPart(zr, "word/document.xml")
	if part == nil {
		return "", perr.Extractionf("corrupt docx: word/document.xml missing")
	}
	var b strings.Builder
	if err := readParagraphs(part, &b); err != nil {
		return "", err
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// extractPPTX reads slides in numeric order, one line per paragraph
func extractPPTX(data []byte) (string, error) {
	zr, err := openZip(data)
	if err != nil {
		return "", err
	}
	type slide struct {
		n int
		f *zip.File
	}
	var slides []slide
	for _, f := range zr.File {
		name := f.Name
		if !strings.HasPrefix(name, "ppt/slides/slide") || !strings.HasSuffix(name, ".xml") {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, "ppt/slides/slide"), ".xml"))
		if err != nil {
			continue
		}
		slides = append(slides, slide{n: n, f: f})
	}
	if len(slides) == 0 && findPart(zr, "ppt/presentation.xml") == nil {
		return "", perr.Extractionf("corrupt pptx: no presentation part")
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].n < slides[j].n })

	var b strings.Builder
	for _, s := range slides {
		if err := readParagraphs(s.f, &b); err != nil {
			return "", err
		}
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// readParagraphs streams an OOXML part and writes text runs, ending each <p> with a newline
// WordprocessingML and DrawingML share the local names p, t, tab and br
func readParagraphs(f *zip.File, b *strings.Builder) error {
	if f.UncompressedSize64 > maxPartBytes {
		return perr.Extractionf("document part %s is too large", f.Name)
	}
	rc, err := f.Open()
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeExtraction, "open %s", f.Name)
	}
	defer rc.Close()

	dec := xml.NewDecoder(io.LimitReader(rc, maxPartBytes))
	inText := false
	lineHasText := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return perr.Wrapf(err, perr.ErrorCodeExtraction, "corrupt xml in %s", f.Name)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteByte('\t')
			case "br", "cr":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if lineHasText {
					b.WriteByte('\n')
				}
				lineHasText = false
			}
		case xml.CharData:
			if inText && len(t) > 0 {
				b.Write(t)
				lineHasText = true
			}
		}
	}
	return nil
}
