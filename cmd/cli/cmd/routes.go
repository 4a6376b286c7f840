// Package cmd - routes command
package cmd

import (
	"github.com/spf13/cobra"
)

var routesFormat string

// routesCmd lists every tracked route
var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List routes tracked by seats.aero",
	Long: `Fetch every route tracked upstream. Rows are returned as received.

Examples:
  award-sync routes
  award-sync routes --format csv > routes.csv`,
	Args: cobra.NoArgs,
	RunE: runRoutes,
}

func init() {
	routesCmd.Flags().StringVarP(&routesFormat, "format", "f", "", "output format (table, json, csv)")
}

func runRoutes(cmd *cobra.Command, args []string) error {
	eps, err := newEndpoints()
	if err != nil {
		return err
	}

	result, err := eps.Routes(cmd.Context())
	if err != nil {
		return err
	}

	return render(cmd, routesFormat, result.Schema, result.Rows)
}
