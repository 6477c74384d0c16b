package report

import (
	"github.com/tkutschbach/RST-Tace/internal/agreement"
	"github.com/tkutschbach/RST-Tace/internal/compare"
	"github.com/tkutschbach/RST-Tace/internal/reltable"
)

// section is one titled table of a document style report.
type section struct {
	Heading string
	Header  []string
	Rows    [][]string
}

func relSections(t *reltable.Table) []section {
	return []section{{Heading: "Relations", Header: RelHeader, Rows: RelRows(t)}}
}

func compSections(t *compare.Table) []section {
	return []section{
		{Heading: "Comparison", Header: CompHeader, Rows: CompRows(t)},
		{Heading: "Statistical metrics", Header: MetricsHeader(), Rows: MetricsRows(t)},
	}
}

func corpusSections(t *agreement.CorpusTable) []section {
	stats := CorpusHeader()
	stats[0] = ""
	return []section{
		{Heading: "Results for each document pair", Header: CorpusHeader(), Rows: CorpusRows(t)},
		{Heading: "Overall results", Header: stats, Rows: CorpusStatsRows(t)},
	}
}
