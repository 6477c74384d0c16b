package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/net/html"

	"github.com/tkutschbach/RST-Tace/internal/agreement"
	"github.com/tkutschbach/RST-Tace/internal/compare"
	"github.com/tkutschbach/RST-Tace/internal/reltable"
)

// HTMLReport renders tables as a standalone HTML page at Path.
type HTMLReport struct {
	Path string
}

func (r HTMLReport) WriteRelTable(t *reltable.Table) error {
	return r.write("Relation table: "+t.Name, relSections(t))
}

func (r HTMLReport) WriteComparison(t *compare.Table) error {
	return r.write("Comparison: "+t.Name, compSections(t))
}

func (r HTMLReport) WriteCorpus(t *agreement.CorpusTable) error {
	return r.write("Corpus evaluation", corpusSections(t))
}

func (r HTMLReport) write(title string, sections []section) error {
	page, err := renderHTML(title, sections)
	if err != nil {
		return err
	}
	f, err := create(r.Path)
	if err != nil {
		return err
	}
	if _, err := f.Write(page); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", r.Path, err)
	}
	return f.Close()
}

// renderHTML converts the sections to GitHub flavoured Markdown tables and
// renders them into an HTML page.
func renderHTML(title string, sections []section) ([]byte, error) {
	var md bytes.Buffer
	for _, s := range sections {
		fmt.Fprintf(&md, "## %s\n\n", s.Heading)
		writeMarkdownRow(&md, s.Header)
		sep := make([]string, len(s.Header))
		for i := range sep {
			sep[i] = "---"
		}
		writeMarkdownRow(&md, sep)
		for _, row := range s.Rows {
			writeMarkdownRow(&md, row)
		}
		md.WriteString("\n")
	}

	var body bytes.Buffer
	renderer := goldmark.New(goldmark.WithExtensions(extension.Table))
	if err := renderer.Convert(md.Bytes(), &body); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	var page bytes.Buffer
	escaped := html.EscapeString(title)
	fmt.Fprintf(&page, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n<h1>%s</h1>\n", escaped, escaped)
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}

var markdownCell = strings.NewReplacer("|", `\|`, "\n", " ")

func writeMarkdownRow(buf *bytes.Buffer, cells []string) {
	buf.WriteString("|")
	for _, c := range cells {
		buf.WriteString(" ")
		buf.WriteString(markdownCell.Replace(c))
		buf.WriteString(" |")
	}
	buf.WriteString("\n")
}
