// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package clean strips header, footer, and page-number lines from extracted
// page text.
//
// Header and footer removal is purely positional: the first Top and last
// Bottom lines of every page are discarded regardless of content. Within the
// remaining range, any line that is nothing but a page number is dropped.
package clean

import (
	"regexp"
	"strings"

	"github.com/pdiddy/pdfclean/pkg/types"
)

// PageNumberPattern lists the whole-line forms treated as pagination
// artifacts: "Page 7", "3/12", "3/", "3 of 12", and a bare "7". Matching is
// case-insensitive and applies to the trimmed line. Changing the accepted
// forms changes the output of every conversion.
const PageNumberPattern = `(?i)^(Page\s*\d+|\d+\s*/\s*\d+|\d+\s*/|\d+\s+of\s+\d+|\d+)$`

// PageSeparator joins cleaned pages within a document.
const PageSeparator = "\n\n"

var pageNumberRe = regexp.MustCompile(PageNumberPattern)

// IsPageNumber reports whether line, once trimmed, is a page-number artifact.
func IsPageNumber(line string) bool {
	return pageNumberRe.MatchString(strings.TrimSpace(line))
}

// Lines returns the body lines of a page. Lines at index i < m.Top or
// i >= len(lines)-m.Bottom are dropped, as are page-number lines. Kept lines
// are trimmed and returned in their original order. When the margins cover
// the whole page the result is empty.
func Lines(lines []string, m types.Margins) []string {
	top := max(m.Top, 0)
	bottom := max(m.Bottom, 0)

	end := len(lines) - bottom
	if top >= end {
		return nil
	}

	kept := make([]string, 0, end-top)
	for _, line := range lines[top:end] {
		trimmed := strings.TrimSpace(line)
		if pageNumberRe.MatchString(trimmed) {
			continue
		}
		kept = append(kept, trimmed)
	}
	return kept
}

// Page cleans the raw text of one page and joins the kept lines with "\n".
func Page(text string, m types.Margins) string {
	if text == "" {
		return ""
	}
	return strings.Join(Lines(SplitLines(text), m), "\n")
}

// Pages cleans every page that has text. Pages that are empty or only
// whitespace before cleaning are dropped; pages that become empty after
// cleaning are kept.
func Pages(pages []string, m types.Margins) []string {
	cleaned := make([]string, 0, len(pages))
	for _, p := range pages {
		if strings.TrimSpace(p) == "" {
			continue
		}
		cleaned = append(cleaned, Page(p, m))
	}
	return cleaned
}

// Join concatenates cleaned pages with a blank line between each.
func Join(pages []string) string {
	return strings.Join(pages, PageSeparator)
}

// SplitLines breaks text on \n, \r\n, and \r. A single trailing terminator
// does not produce an extra empty line.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
