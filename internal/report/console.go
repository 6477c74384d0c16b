package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/tkutschbach/RST-Tace/internal/agreement"
	"github.com/tkutschbach/RST-Tace/internal/compare"
	"github.com/tkutschbach/RST-Tace/internal/reltable"
)

var (
	tickColor   = color.New(color.FgHiGreen, color.Bold)
	noTickColor = color.New(color.FgHiRed, color.Bold)
	titleColor  = color.New(color.FgCyan, color.Bold)
)

// Console prints tables for interactive use.
type Console struct {
	W io.Writer
}

func (c Console) WriteRelTable(t *reltable.Table) error {
	c.title("Result table of RST tree analysis: " + t.Name)
	c.table(RelHeader, RelRows(t))
	return nil
}

func (c Console) WriteComparison(t *compare.Table) error {
	rows := CompRows(t)
	for _, row := range rows {
		for i, cell := range row {
			switch cell {
			case Tick:
				row[i] = tickColor.Sprint(cell)
			case NoTick:
				row[i] = noTickColor.Sprint(cell)
			}
		}
	}
	c.title("Result table of RST tree pair comparison: " + t.Name)
	c.table(CompHeader, rows)
	c.title("Statistical metrics:")
	c.table(MetricsHeader(), MetricsRows(t))
	return nil
}

func (c Console) WriteCorpus(t *agreement.CorpusTable) error {
	c.title("Results for each RST tree pair:")
	c.table(CorpusHeader(), CorpusRows(t))

	header := CorpusHeader()
	header[0] = ""
	c.title("Overall results of whole dataset:")
	c.table(header, CorpusStatsRows(t))
	return nil
}

func (c Console) title(s string) {
	fmt.Fprintln(c.W)
	titleColor.Fprintln(c.W, s)
}

func (c Console) table(header []string, rows [][]string) {
	table := tablewriter.NewWriter(c.W)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(rows)
	table.Render()
}
