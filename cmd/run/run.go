// Package run implements the full pipeline command
package run

import (
	"context"
	"fmt"

	"fjacquet/sales-analytics/cmd/root"
	"fjacquet/sales-analytics/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the run command
var Cmd = &cobra.Command{
	Use:   "run",
	Short: "Process the sales ledger and write the report",
	Long: `Read the sales ledger, clean and validate every row, enrich the valid
transactions, then write the enriched ledger and the sales report.
No report is written when the run fails.`,
	Args: cobra.NoArgs,
	RunE: Run,
}

// Run executes the pipeline. It is also the root command's default action.
func Run(cmd *cobra.Command, args []string) error {
	c, err := root.NewContainer(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	opts := c.PipelineOptions()
	log := c.GetLogger()
	log.Info("Starting sales analytics run",
		logging.F(logging.FieldInputFile, opts.InputPath),
		logging.F(logging.FieldOutputFile, opts.ReportPath))

	result, err := c.GetPipeline().Run(ctx, opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Processed %d rows: %d valid, %d rejected\n",
		result.Processing.Total, len(result.Processing.Records), len(result.Processing.Rejected))
	fmt.Fprintf(out, "Enriched ledger: %s\n", opts.EnrichedPath)
	fmt.Fprintf(out, "Report: %s\n", opts.ReportPath)
	return nil
}
