package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tkutschbach/RST-Tace/internal/pipeline"
	"github.com/tkutschbach/RST-Tace/internal/report"
)

var (
	evaluateOutput  string
	evaluateFormats []string
	evaluateVerbose bool
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate DIR1 DIR2",
	Short: "Evaluate agreement over a corpus of annotation pairs",
	Long: `Pair the .rs3 files of DIR1 and DIR2 by file name, compare every pair and
aggregate the agreement statistics of the whole corpus.`,
	Args: cobra.ExactArgs(2),
	RunE: evaluate,
}

func init() {
	RootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringVarP(&evaluateOutput, "output", "o", "", "write per-pair and corpus reports into `DIR`")
	evaluateCmd.Flags().StringSliceVar(&evaluateFormats, "format", nil, "report formats: csv, html, docx (default from config)")
	evaluateCmd.Flags().BoolVarP(&evaluateVerbose, "verbose", "v", false, "print results on the command line")
}

func evaluate(cmd *cobra.Command, args []string) error {
	dir := evaluateOutput
	if dir == "" {
		dir = cfg.OutputDir
	}
	formats := cfg.Formats
	if len(evaluateFormats) > 0 {
		formats = evaluateFormats
	}
	for _, f := range formats {
		if !report.ValidFormat(f) {
			return fmt.Errorf("unsupported output format: %q", f)
		}
	}
	verbose := evaluateVerbose || cfg.Verbose || dir == ""

	specs, unmatched, err := pipeline.DiscoverPairs(args[0], args[1])
	if err != nil {
		return err
	}
	for _, path := range unmatched {
		logger.Warn("no counterpart annotation", "file", path)
	}

	pairs := make([]pipeline.Pair, 0, len(specs))
	for _, spec := range specs {
		pair := pipeline.Pair{
			Name: spec.Name,
			A:    pipeline.FileSource{Path: spec.PathA},
			B:    pipeline.FileSource{Path: spec.PathB},
		}
		if dir != "" {
			if pair.Outputs, err = report.PairWriters(dir, spec.Name, formats); err != nil {
				return err
			}
		}
		if evaluateVerbose || cfg.Verbose {
			pair.Outputs = append(pair.Outputs, console(cmd))
		}
		pairs = append(pairs, pair)
	}

	var outs []pipeline.CorpusWriter
	if dir != "" {
		if outs, err = report.CorpusWriters(dir, formats); err != nil {
			return err
		}
	}
	if verbose {
		outs = append(outs, console(cmd))
	}

	_, outcomes, err := newPipeline().Evaluate(cmd.Context(), pairs, outs...)
	if err != nil {
		return err
	}
	if completed, failed := pipeline.Summary(outcomes); failed > 0 {
		logger.Warn("some pairs failed", "completed", completed, "failed", failed)
	}
	return nil
}
