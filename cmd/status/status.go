// Package status reports on the mock product API
package status

import (
	"fmt"

	"fjacquet/sales-analytics/cmd/root"
	"fjacquet/sales-analytics/internal/store"

	"github.com/spf13/cobra"
)

var (
	listProducts bool
	exportPath   string
)

// Cmd represents the status command
var Cmd = &cobra.Command{
	Use:   "status",
	Short: "Show the product API status and catalogue",
	Long: `Show whether the mock product API is available and how many products
its catalogue holds. Use --list to print the catalogue and --export to write it
as YAML, ready to be edited and passed back with --catalog.`,
	Args: cobra.NoArgs,
	RunE: statusFunc,
}

func init() {
	Cmd.Flags().BoolVar(&listProducts, "list", false, "List every catalogue product")
	Cmd.Flags().StringVar(&exportPath, "export", "", "Write the catalogue to this YAML file")
}

func statusFunc(cmd *cobra.Command, args []string) error {
	c, err := root.NewContainer(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	status := c.GetProductAPI().Status()
	fmt.Fprintf(out, "Status: %s\n", status.Status)
	fmt.Fprintf(out, "Message: %s\n", status.Message)
	fmt.Fprintf(out, "Products Available: %d\n", status.ProductsAvailable)

	if listProducts {
		for _, p := range c.GetCatalog().Products() {
			fmt.Fprintf(out, "  %s  %-24s %-12s %-14s %d months\n",
				p.ID, p.Name, p.Category, p.Manufacturer, p.WarrantyMonths)
		}
	}

	if exportPath != "" {
		if err := store.SaveCatalog(c.GetCatalog(), exportPath); err != nil {
			return err
		}
		fmt.Fprintf(out, "Catalogue written to %s\n", exportPath)
	}
	return nil
}
