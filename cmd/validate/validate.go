// Package validate implements the ledger validation command
package validate

import (
	"fmt"

	"fjacquet/sales-analytics/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the validate command
var Cmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the sales ledger without writing any output",
	Long: `Read and clean the sales ledger, then list every rejected row.
Nothing is enriched or written. Rejected rows alone do not fail the command;
a missing or empty ledger, or one without a single valid row, does.`,
	Args: cobra.NoArgs,
	RunE: validateFunc,
}

func validateFunc(cmd *cobra.Command, args []string) error {
	c, err := root.NewContainer(cmd)
	if err != nil {
		return err
	}

	inputPath := c.GetConfig().Input.Path
	result, err := c.GetPipeline().Validate(inputPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d rows, %d valid, %d rejected\n",
		inputPath, result.Total, len(result.Records), len(result.Rejected))
	if result.HeaderDetected {
		fmt.Fprintln(out, "Header row detected")
	}
	for _, r := range result.Rejected {
		fmt.Fprintf(out, "  line %d: %s\n", r.Line, r.Reason)
	}
	return nil
}
