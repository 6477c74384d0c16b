package report

import (
	"fmt"
	"io"

	"github.com/fumiama/go-docx"

	"github.com/tkutschbach/RST-Tace/internal/agreement"
	"github.com/tkutschbach/RST-Tace/internal/compare"
	"github.com/tkutschbach/RST-Tace/internal/reltable"
)

// DOCXReport writes tables to a Word document at Path.
type DOCXReport struct {
	Path string
}

func (r DOCXReport) WriteRelTable(t *reltable.Table) error {
	return r.write("Relation table: "+t.Name, relSections(t))
}

func (r DOCXReport) WriteComparison(t *compare.Table) error {
	return r.write("Comparison: "+t.Name, compSections(t))
}

func (r DOCXReport) WriteCorpus(t *agreement.CorpusTable) error {
	return r.write("Corpus evaluation", corpusSections(t))
}

func (r DOCXReport) write(title string, sections []section) error {
	f, err := create(r.Path)
	if err != nil {
		return err
	}
	if err := renderDOCX(f, title, sections); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", r.Path, err)
	}
	return f.Close()
}

func renderDOCX(w io.Writer, title string, sections []section) error {
	doc := docx.New().WithDefaultTheme()
	doc.AddParagraph().AddText(title).Bold().Size("32")

	for _, s := range sections {
		doc.AddParagraph().AddText(s.Heading).Bold().Size("26")

		tbl := doc.AddTable(len(s.Rows)+1, len(s.Header), 0, nil)
		for j, h := range s.Header {
			tbl.TableRows[0].TableCells[j].AddParagraph().AddText(h).Bold()
		}
		for i, row := range s.Rows {
			for j, cell := range row {
				if j >= len(s.Header) {
					break
				}
				tbl.TableRows[i+1].TableCells[j].AddParagraph().AddText(cell)
			}
		}
		doc.AddParagraph()
	}

	_, err := doc.WriteTo(w)
	return err
}
