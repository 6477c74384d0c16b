package main

import (
	"github.com/spf13/cobra"

	"github.com/tkutschbach/RST-Tace/internal/pipeline"
	"github.com/tkutschbach/RST-Tace/internal/report"
)

var (
	compareOutput  string
	compareMetrics string
	compareVerbose bool
)

var compareCmd = &cobra.Command{
	Use:   "compare RSTFILE1 RSTFILE2",
	Short: "Compare two annotations of the same text",
	Long: `Parse the RST trees from RSTFILE1 and RSTFILE2, match their annotated
relations and report agreement per dimension.`,
	Args: cobra.ExactArgs(2),
	RunE: compareFiles,
}

func init() {
	RootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringVarP(&compareOutput, "output", "o", "", "write the comparison table to `FILE` (.csv, .html or .docx)")
	compareCmd.Flags().StringVar(&compareMetrics, "metrics", "", "write matching ratios and kappas to `FILE` as CSV")
	compareCmd.Flags().BoolVarP(&compareVerbose, "verbose", "v", false, "print results on the command line")
}

func compareFiles(cmd *cobra.Command, args []string) error {
	var outs []pipeline.ComparisonWriter
	if compareOutput != "" {
		outs = append(outs, report.ComparisonFile(compareOutput))
	}
	if compareMetrics != "" {
		outs = append(outs, report.ComparisonCSV{MetricsPath: compareMetrics})
	}
	if compareVerbose || cfg.Verbose || compareOutput == "" {
		outs = append(outs, console(cmd))
	}

	a := pipeline.FileSource{Path: args[0]}
	b := pipeline.FileSource{Path: args[1]}
	_, err := newPipeline().Compare(cmd.Context(), a, b, outs...)
	return err
}
