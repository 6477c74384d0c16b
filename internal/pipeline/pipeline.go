package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tkutschbach/RST-Tace/internal/agreement"
	"github.com/tkutschbach/RST-Tace/internal/compare"
	"github.com/tkutschbach/RST-Tace/internal/reltable"
)

// RelTableWriter consumes the relation table of a single document.
type RelTableWriter interface {
	WriteRelTable(t *reltable.Table) error
}

// ComparisonWriter consumes the comparison of two annotations.
type ComparisonWriter interface {
	WriteComparison(t *compare.Table) error
}

// CorpusWriter consumes a corpus level aggregation.
type CorpusWriter interface {
	WriteCorpus(t *agreement.CorpusTable) error
}

// Pair is one unit of work of a corpus evaluation.
type Pair struct {
	Name    string
	A, B    Source
	Outputs []ComparisonWriter
}

// Pipeline runs analyses and comparisons one document at a time.
type Pipeline struct {
	log *slog.Logger
}

// New creates a pipeline logging to log.
func New(log *slog.Logger) *Pipeline {
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{log: log}
}

// Analyse builds the relation table of one document and hands it to outs.
func (p *Pipeline) Analyse(ctx context.Context, src Source, outs ...RelTableWriter) (*reltable.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	table, err := p.relTable(src)
	if err != nil {
		return nil, err
	}
	for _, out := range outs {
		if err := out.WriteRelTable(table); err != nil {
			return nil, fmt.Errorf("write relation table: %w", err)
		}
	}
	return table, nil
}

// Compare matches the relation tables of two annotations, attaches agreement
// statistics and hands the result to outs.
func (p *Pipeline) Compare(ctx context.Context, a, b Source, outs ...ComparisonWriter) (*compare.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	comp, _, err := p.compare(a.Name(), a, b)
	if err != nil {
		return nil, err
	}
	for _, out := range outs {
		if err := out.WriteComparison(comp); err != nil {
			return nil, fmt.Errorf("write comparison: %w", err)
		}
	}
	return comp, nil
}

// Evaluate compares every pair and aggregates the results. A failing pair is
// logged and skipped; the run fails only when no pair succeeds.
func (p *Pipeline) Evaluate(ctx context.Context, pairs []Pair, outs ...CorpusWriter) (*agreement.CorpusTable, []PairOutcome, error) {
	outcomes := make([]PairOutcome, 0, len(pairs))
	tables := make([]*compare.Table, 0, len(pairs))

	for _, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return nil, outcomes, err
		}
		outcome, comp := p.evaluatePair(pair)
		outcomes = append(outcomes, outcome)
		if comp != nil {
			tables = append(tables, comp)
		}
	}

	completed, failed := Summary(outcomes)
	p.log.Info("evaluation complete", "pairs", len(pairs), "completed", completed, "failed", failed)
	if len(pairs) > 0 && completed == 0 {
		return nil, outcomes, errors.New("every document pair failed")
	}

	corpus := agreement.Aggregate(tables)
	for _, out := range outs {
		if err := out.WriteCorpus(corpus); err != nil {
			return nil, outcomes, fmt.Errorf("write corpus table: %w", err)
		}
	}
	return corpus, outcomes, nil
}

func (p *Pipeline) evaluatePair(pair Pair) (PairOutcome, *compare.Table) {
	start := time.Now()
	log := p.log.With("pair", pair.Name)
	outcome := PairOutcome{Name: pair.Name, Status: StatusCompleted}

	comp, counts, err := p.compare(pair.Name, pair.A, pair.B)
	outcome.RelationsA, outcome.RelationsB = counts[0], counts[1]
	if err != nil {
		log.Error("comparison failed", "error", err)
		outcome.fail("compare", err)
		outcome.Duration = time.Since(start)
		return outcome, nil
	}
	outcome.Comparisons = comp.Len()

	for _, out := range pair.Outputs {
		if err := out.WriteComparison(comp); err != nil {
			log.Error("write failed", "error", err)
			outcome.fail("write", err)
			outcome.Duration = time.Since(start)
			return outcome, nil
		}
	}
	outcome.Duration = time.Since(start)
	log.Info("pair complete", "comparisons", comp.Len(), "duration_ms", outcome.Duration.Milliseconds())
	return outcome, comp
}

func (p *Pipeline) relTable(src Source) (*reltable.Table, error) {
	log := p.log.With("file", src.Name())
	tree, err := src.Read()
	if err != nil {
		log.Error("parse failed", "error", err)
		return nil, fmt.Errorf("read %s: %w", src.Name(), err)
	}
	table := reltable.Generate(src.Name(), tree)
	log.Debug("relation table generated", "relations", table.Len())
	return table, nil
}

func (p *Pipeline) compare(name string, a, b Source) (*compare.Table, [2]int, error) {
	var counts [2]int
	ta, err := p.relTable(a)
	if err != nil {
		return nil, counts, err
	}
	counts[0] = ta.Len()
	tb, err := p.relTable(b)
	if err != nil {
		return nil, counts, err
	}
	counts[1] = tb.Len()

	comp := compare.Match(name, ta, tb)
	agreement.Analyze(comp)
	return comp, counts, nil
}
