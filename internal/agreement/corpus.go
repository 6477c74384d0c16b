package agreement

import (
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/tkutschbach/RST-Tace/internal/compare"
)

// Metric selects which statistic of a comparison table a column carries.
type Metric string

const (
	Ratio Metric = "Ratio"
	Kappa Metric = "Kappa"
)

// Column is one metric column of the corpus table.
type Column struct {
	Dimension compare.Dimension
	Metric    Metric
}

// Name renders the column header, e.g. "AttachmentPoint-Kappa".
func (c Column) Name() string {
	dim := string(c.Dimension)
	if c.Dimension == compare.AttachmentPoint {
		dim = "AttachmentPoint"
	}
	return dim + "-" + string(c.Metric)
}

// Columns lists the corpus table columns in reporting order.
var Columns = func() []Column {
	dims := append(slices.Clone(compare.Dimensions), compare.Average)
	cols := make([]Column, 0, 2*len(dims))
	for _, d := range dims {
		cols = append(cols, Column{d, Ratio}, Column{d, Kappa})
	}
	return cols
}()

// Summary is the descriptive statistics of one column.
type Summary struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"` // Sample standard deviation
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// CorpusRow holds the metrics of one document pair, aligned with Columns.
type CorpusRow struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// CorpusTable is the corpus level aggregation of many comparison tables.
type CorpusTable struct {
	Rows  []CorpusRow `json:"rows"`
	Stats []Summary   `json:"stats"` // Aligned with Columns
}

// Aggregate builds one row per comparison table and summarizes every column.
// Tables without attached statistics are analyzed first.
func Aggregate(tables []*compare.Table) *CorpusTable {
	ct := &CorpusTable{Rows: make([]CorpusRow, 0, len(tables))}
	for _, t := range tables {
		if t.MatchingRatios == nil || t.CohensKappas == nil {
			Analyze(t)
		}
		row := CorpusRow{Name: t.Name, Values: make([]float64, len(Columns))}
		for i, col := range Columns {
			if col.Metric == Ratio {
				row.Values[i] = t.MatchingRatios[col.Dimension]
			} else {
				row.Values[i] = t.CohensKappas[col.Dimension]
			}
		}
		ct.Rows = append(ct.Rows, row)
	}

	ct.Stats = make([]Summary, len(Columns))
	for i := range Columns {
		values := make([]float64, len(ct.Rows))
		for r, row := range ct.Rows {
			values[r] = row.Values[i]
		}
		ct.Stats[i] = Summarize(values)
	}
	return ct
}

// Summarize computes count, mean, sample standard deviation, min and max.
// The standard deviation of fewer than two values is 0.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	mean, std := stat.MeanStdDev(values, nil)
	if len(values) < 2 {
		std = 0
	}
	return Summary{
		Count: len(values),
		Mean:  mean,
		Std:   std,
		Min:   floats.Min(values),
		Max:   floats.Max(values),
	}
}
