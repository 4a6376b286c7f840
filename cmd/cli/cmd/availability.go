// Package cmd - availability command
package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"award-sync/core/award"
	"award-sync/core/endpoint"
	"award-sync/core/ui"
	"award-sync/internal/config"
	"award-sync/internal/errors"
)

var (
	availabilitySource string
	availabilityStart  string
	availabilityEnd    string
	availabilityFormat string
)

// availabilityCmd fetches award availability for one mileage program
var availabilityCmd = &cobra.Command{
	Use:   "availability",
	Short: "Show award availability for a mileage program",
	Long: `Fetch award availability for a mileage program.

With --start and --end only entries dated inside the window, both days
included, are shown. Mileage costs that are missing, zero or not numeric
are shown as absent.

Examples:
  award-sync availability --source american
  award-sync availability --source united --start 2024-01-01 --end 2024-01-31
  award-sync availability --source delta --format json`,
	Args: cobra.NoArgs,
	RunE: runAvailability,
}

func init() {
	availabilityCmd.Flags().StringVarP(&availabilitySource, "source", "s", "", endpoint.SourceParam.Description)
	availabilityCmd.Flags().StringVar(&availabilityStart, "start", "", "first date to include (YYYY-MM-DD)")
	availabilityCmd.Flags().StringVar(&availabilityEnd, "end", "", "last date to include (YYYY-MM-DD)")
	availabilityCmd.Flags().StringVarP(&availabilityFormat, "format", "f", "", "output format (table, json, csv)")
	_ = availabilityCmd.MarkFlagRequired("source")

	_ = availabilityCmd.RegisterFlagCompletionFunc("source", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return endpoint.SourceParam.Autocomplete, cobra.ShellCompDirectiveNoFileComp
	})
}

func runAvailability(cmd *cobra.Command, args []string) error {
	params := endpoint.AvailabilityParams{Source: award.Source(availabilitySource)}

	switch {
	case availabilityStart == "" && availabilityEnd == "":
	case availabilityStart == "" || availabilityEnd == "":
		return errors.Input("--start and --end must be given together")
	default:
		dates, err := award.NewDateRange(availabilityStart, availabilityEnd)
		if err != nil {
			return errors.Wrap(errors.TypeInput, "invalid date range", err)
		}
		params.Dates = &dates
	}

	if src := params.Source; strings.TrimSpace(src.String()) != "" && !src.IsKnown() {
		ui.NewWriter(cmd.ErrOrStderr(), config.Get().Output.NoColor).
			Warning("%q is not a listed source; requesting it anyway", src)
	}

	eps, err := newEndpoints()
	if err != nil {
		return err
	}

	result, err := eps.Availability(cmd.Context(), params)
	if err != nil {
		return err
	}

	return render(cmd, availabilityFormat, result.Schema, result.Rows)
}
