// Package cleaner normalizes raw text extracted from documents before it is
// chunked: line-break normalization, PDF extraction artifacts, page numbers,
// URLs and whitespace runs.
package cleaner

import (
	"regexp"
	"strings"
)

var (
	hyphenBreakRe = regexp.MustCompile(`-\n`)
	wordBreakRe   = regexp.MustCompile(`(\w)\n(\w)`)
	pageNumRe     = regexp.MustCompile(`(?m)^\s*\d+\s*$`)
	pageLabelRe   = regexp.MustCompile(`(?i)(página|page)\s*\d+`)
	urlRe         = regexp.MustCompile(`https?://\S+|www\.\S+`)
	emailRe       = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	spaceRunRe    = regexp.MustCompile(`[ \t]+`)
	blankRunRe    = regexp.MustCompile(`\n{3,}`)
)

// Options selects which cleaning steps Clean applies.
type Options struct {
	RemoveURLs          bool
	RemoveEmails        bool
	FixPDFArtifacts     bool
	RemovePageNumbers   bool
	NormalizeWhitespace bool
}

// DefaultOptions mirrors the usual vectorization pipeline: everything on
// except email removal.
func DefaultOptions() Options {
	return Options{
		RemoveURLs:          true,
		RemoveEmails:        false,
		FixPDFArtifacts:     true,
		RemovePageNumbers:   true,
		NormalizeWhitespace: true,
	}
}

// Clean runs the full cleaning pipeline with DefaultOptions.
func Clean(text string) string {
	return CleanWith(text, DefaultOptions())
}

// CleanWith runs the cleaning pipeline with explicit options. Line breaks
// are always normalized first so the later regex passes see plain \n.
func CleanWith(text string, opts Options) string {
	if text == "" {
		return ""
	}

	text = NormalizeLineBreaks(text)
	if opts.FixPDFArtifacts {
		text = FixPDFArtifacts(text)
	}
	if opts.RemoveURLs {
		text = RemoveURLs(text)
	}
	if opts.RemoveEmails {
		text = RemoveEmails(text)
	}
	if opts.RemovePageNumbers {
		text = RemovePageNumbers(text)
	}
	if opts.NormalizeWhitespace {
		text = NormalizeWhitespace(text)
	}
	return text
}

// NormalizeLineBreaks converts \r\n and bare \r to \n.
func NormalizeLineBreaks(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// FixPDFArtifacts repairs common PDF extraction damage: words hyphenated
// across line ends are rejoined, and single line breaks inside words become
// spaces.
func FixPDFArtifacts(text string) string {
	text = hyphenBreakRe.ReplaceAllString(text, "")
	return wordBreakRe.ReplaceAllString(text, "$1 $2")
}

// RemovePageNumbers drops lines that contain only a number and "Página N" /
// "Page N" labels.
func RemovePageNumbers(text string) string {
	text = pageNumRe.ReplaceAllString(text, "")
	return pageLabelRe.ReplaceAllString(text, "")
}

// RemoveURLs strips http(s) and www URLs.
func RemoveURLs(text string) string {
	return urlRe.ReplaceAllString(text, "")
}

// RemoveEmails strips email addresses.
func RemoveEmails(text string) string {
	return emailRe.ReplaceAllString(text, "")
}

// NormalizeWhitespace collapses space/tab runs to a single space and caps
// consecutive line breaks at two (one blank line), then trims.
func NormalizeWhitespace(text string) string {
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
