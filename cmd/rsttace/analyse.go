package main

import (
	"github.com/spf13/cobra"

	"github.com/tkutschbach/RST-Tace/internal/pipeline"
	"github.com/tkutschbach/RST-Tace/internal/report"
)

var (
	analyseOutput  string
	analyseVerbose bool
)

var analyseCmd = &cobra.Command{
	Use:   "analyse RSTFILE",
	Short: "Parse a single RST tree and list its annotated relations",
	Long: `Parse the RST tree from RSTFILE and create the list of rhetorical relations
annotated inside it. The table is printed unless --output is given.`,
	Args: cobra.ExactArgs(1),
	RunE: analyse,
}

func init() {
	RootCmd.AddCommand(analyseCmd)

	analyseCmd.Flags().StringVarP(&analyseOutput, "output", "o", "", "write the relation table to `FILE` (.csv, .html or .docx)")
	analyseCmd.Flags().BoolVarP(&analyseVerbose, "verbose", "v", false, "print results on the command line")
}

func analyse(cmd *cobra.Command, args []string) error {
	var outs []pipeline.RelTableWriter
	if analyseOutput != "" {
		outs = append(outs, report.RelTableFile(analyseOutput))
	}
	if analyseVerbose || cfg.Verbose || analyseOutput == "" {
		outs = append(outs, console(cmd))
	}

	_, err := newPipeline().Analyse(cmd.Context(), pipeline.FileSource{Path: args[0]}, outs...)
	return err
}
