// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftest builds fixture PDFs and page text for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
)

const (
	lineHeight = 14
	topY       = 720
	leftX      = 72
)

// Write creates a minimal single-font PDF at path. Each element of pages is
// one page; each string in a page is drawn on its own text row. An empty
// page has an empty content stream and therefore no text.
func Write(tb testing.TB, path string, pages ...[]string) {
	tb.Helper()
	if err := os.WriteFile(path, Build(pages...), 0o644); err != nil {
		tb.Fatal(err)
	}
}

// Build returns the bytes of a PDF with the given page rows.
func Build(pages ...[]string) []byte {
	// Object layout: 1 catalog, 2 page tree, 3 font, then a page and a
	// content stream object per page.
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"", // page tree, filled in once the kids are known
		fontDict(),
	}

	kids := make([]string, 0, len(pages))
	for _, rows := range pages {
		pageNum := len(objects) + 1
		contentNum := pageNum + 1
		kids = append(kids, fmt.Sprintf("%d 0 R", pageNum))

		stream := contentStream(rows)
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
				"/Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", contentNum),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		)
	}
	objects[1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages))

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func fontDict() string {
	widths := make([]string, 0, 95)
	for i := 0; i < 95; i++ {
		widths = append(widths, "500")
	}
	return "<< /Type /Font /Subtype /Type1 /BaseFont /Courier /Encoding /WinAnsiEncoding " +
		"/FirstChar 32 /LastChar 126 /Widths [" + strings.Join(widths, " ") + "] >>"
}

func contentStream(rows []string) string {
	if len(rows) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "BT\n/F1 12 Tf\n%d %d Td\n", leftX, topY)
	for i, row := range rows {
		if i > 0 {
			fmt.Fprintf(&b, "0 -%d Td\n", lineHeight)
		}
		fmt.Fprintf(&b, "(%s) Tj\n", escape(row))
	}
	b.WriteString("ET")
	return b.String()
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}

// Lines returns n fake body lines from a seeded generator. None of them is
// a bare page number.
func Lines(seed int64, n int) []string {
	faker := gofakeit.New(seed)
	lines := make([]string, n)
	for i := range lines {
		lines[i] = faker.Sentence(faker.Number(3, 9))
	}
	return lines
}
