package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tkutschbach/RST-Tace/internal/agreement"
	"github.com/tkutschbach/RST-Tace/internal/compare"
	"github.com/tkutschbach/RST-Tace/internal/reltable"
)

// utf8BOM marks CSV output as UTF-8 for spreadsheet tools.
const utf8BOM = "\ufeff"

// RelTableCSV writes a relation table to Path.
type RelTableCSV struct {
	Path string
}

func (w RelTableCSV) WriteRelTable(t *reltable.Table) error {
	return writeCSVFile(w.Path, true, RelHeader, RelRows(t))
}

// ComparisonCSV writes the matched pairs to Path and the statistics to
// MetricsPath. Either path may be empty.
type ComparisonCSV struct {
	Path        string
	MetricsPath string
}

func (w ComparisonCSV) WriteComparison(t *compare.Table) error {
	if w.Path != "" {
		if err := writeCSVFile(w.Path, true, CompHeader, CompRows(t)); err != nil {
			return err
		}
	}
	if w.MetricsPath != "" {
		if err := writeCSVFile(w.MetricsPath, true, MetricsHeader(), MetricsRows(t)); err != nil {
			return err
		}
	}
	return nil
}

// CorpusCSV writes the per-pair rows, an empty separator row and the
// summary rows to Path.
type CorpusCSV struct {
	Path string
}

func (w CorpusCSV) WriteCorpus(t *agreement.CorpusTable) error {
	header := CorpusHeader()
	rows := CorpusRows(t)
	rows = append(rows, make([]string, len(header)))
	rows = append(rows, CorpusStatsRows(t)...)
	return writeCSVFile(w.Path, false, header, rows)
}

func writeCSVFile(path string, bom bool, header []string, rows [][]string) error {
	f, err := create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, bom, header, rows); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// create opens path for writing, creating missing parent directories.
func create(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, nil
}

// WriteCSV writes header and rows as CSV, optionally prefixed by a UTF-8 BOM.
func WriteCSV(w io.Writer, bom bool, header []string, rows [][]string) error {
	if bom {
		if _, err := io.WriteString(w, utf8BOM); err != nil {
			return err
		}
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}
