package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tkutschbach/RST-Tace/internal/pipeline"
)

// Formats supported for file output.
var Formats = []string{"csv", "html", "docx"}

// ValidFormat reports whether f names a supported file format.
func ValidFormat(f string) bool {
	for _, known := range Formats {
		if strings.EqualFold(f, known) {
			return true
		}
	}
	return false
}

// PairWriters returns the comparison writers for one document pair of a
// corpus run, one file set per format inside dir.
func PairWriters(dir, name string, formats []string) ([]pipeline.ComparisonWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	base := filepath.Join(dir, name)
	var out []pipeline.ComparisonWriter
	for _, f := range formats {
		switch strings.ToLower(f) {
		case "csv":
			out = append(out, ComparisonCSV{Path: base + "_comparison.csv", MetricsPath: base + "_metrics.csv"})
		case "html":
			out = append(out, HTMLReport{Path: base + "_comparison.html"})
		case "docx":
			out = append(out, DOCXReport{Path: base + "_comparison.docx"})
		default:
			return nil, fmt.Errorf("unsupported output format: %q", f)
		}
	}
	return out, nil
}

// CorpusWriters returns the corpus writers for a run writing into dir.
func CorpusWriters(dir string, formats []string) ([]pipeline.CorpusWriter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	base := filepath.Join(dir, "evaluation")
	var out []pipeline.CorpusWriter
	for _, f := range formats {
		switch strings.ToLower(f) {
		case "csv":
			out = append(out, CorpusCSV{Path: base + ".csv"})
		case "html":
			out = append(out, HTMLReport{Path: base + ".html"})
		case "docx":
			out = append(out, DOCXReport{Path: base + ".docx"})
		default:
			return nil, fmt.Errorf("unsupported output format: %q", f)
		}
	}
	return out, nil
}

// RelTableFile returns the relation table writer for path, chosen by its
// extension. Paths without a known extension are written as CSV.
func RelTableFile(path string) pipeline.RelTableWriter {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return HTMLReport{Path: path}
	case ".docx":
		return DOCXReport{Path: path}
	default:
		return RelTableCSV{Path: path}
	}
}

// ComparisonFile returns the comparison writer for path, chosen by its
// extension. The HTML and DOCX reports embed the metrics table.
func ComparisonFile(path string) pipeline.ComparisonWriter {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return HTMLReport{Path: path}
	case ".docx":
		return DOCXReport{Path: path}
	default:
		return ComparisonCSV{Path: path}
	}
}
