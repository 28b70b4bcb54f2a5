// Package report renders restored summaries into shareable documents.
package report

import (
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	bodyFont = "Times New Roman"
	bodySize = 13
)

var (
	headingLine  = regexp.MustCompile(`^(#{1,6})\s+(.*\S)`)
	bulletLine   = regexp.MustCompile(`^[-*]\s+(.*\S)`)
	numberedLine = regexp.MustCompile(`^\d+[.)]\s+`)
	boldSpan     = regexp.MustCompile(`\*\*(.+?)\*\*`)
)

// WriteSummaryDocx renders the summary text, which models tend to format as
// loose markdown, into a styled docx at outputPath.
func WriteSummaryDocx(title, summary, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	w := docWriter{doc: doc}
	w.heading(title, 1)
	doc.AddParagraph("")

	for _, raw := range strings.Split(summary, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case line == "" || strings.HasPrefix(line, "---"):
			// Blank lines and rules carry no content.
		case headingLine.MatchString(line):
			m := headingLine.FindStringSubmatch(line)
			w.heading(m[2], len(m[1]))
		case bulletLine.MatchString(line):
			m := bulletLine.FindStringSubmatch(line)
			w.body("• " + m[1])
		case numberedLine.MatchString(line):
			w.body(line)
		default:
			w.body(line)
		}
	}

	return doc.SaveTo(outputPath)
}

type docWriter struct {
	doc *docx.RootDoc
}

func (w docWriter) heading(text string, level int) {
	size := uint64(bodySize)
	if level < 4 {
		size = uint64(17 - level)
	}
	p := w.doc.AddParagraph("")
	p.AddText(stripInlineMarkup(text)).Font(bodyFont).Size(size).Color("000000").Bold(true)
}

// body writes one paragraph, honoring **bold** spans and stripping the rest
// of the inline markup.
func (w docWriter) body(text string) {
	p := w.doc.AddParagraph("")

	plain := boldSpan.Split(text, -1)
	bold := boldSpan.FindAllStringSubmatch(text, -1)

	for i, segment := range plain {
		if segment != "" {
			p.AddText(stripInlineMarkup(segment)).Font(bodyFont).Size(bodySize).Color("000000")
		}
		if i < len(bold) {
			p.AddText(stripInlineMarkup(bold[i][1])).Font(bodyFont).Size(bodySize).Color("000000").Bold(true)
		}
	}
}

func stripInlineMarkup(s string) string {
	for _, marker := range []string{"**", "__", "`"} {
		s = strings.ReplaceAll(s, marker, "")
	}
	return s
}
