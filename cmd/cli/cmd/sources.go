// Package cmd - sources and schema commands
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"award-sync/core/endpoint"
	"award-sync/core/schema"
	"award-sync/core/ui"
	"award-sync/internal/config"
	"award-sync/internal/errors"
)

// sourcesCmd lists the known mileage programs
var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List known mileage programs",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, s := range endpoint.SourceParam.Autocomplete {
			fmt.Fprintln(cmd.OutOrStdout(), s)
		}
	},
}

// schemaCmd describes the columns of a result table
var schemaCmd = &cobra.Command{
	Use:       "schema <routes|availability>",
	Short:     "Describe the columns of routes or availability rows",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"routes", "availability"},
	RunE:      runSchema,
}

func runSchema(cmd *cobra.Command, args []string) error {
	s, ok := schema.Lookup(args[0])
	if !ok {
		return errors.NotFound("schema", args[0])
	}

	w := ui.NewWriter(cmd.OutOrStdout(), config.Get().Output.NoColor)
	w.Header(s.Name)
	w.KeyValue("identity", s.IdentityName)
	w.KeyValue("id property", s.IDProperty)
	w.KeyValue("display property", s.DisplayProperty)
	w.KeyValue("featured", strings.Join(s.FeaturedProperties, ", "))
	w.Line("")
	w.SubHeader("Properties")

	featured := make(map[string]bool, len(s.FeaturedProperties))
	for _, f := range s.FeaturedProperties {
		featured[f] = true
	}

	table := w.NewTable("property", "type", "upstream key", "hint", "featured")
	for _, p := range s.Properties {
		typ := string(p.Type)
		if p.Object != nil {
			typ += " (" + p.Object.IdentityName + ")"
		}
		mark := ""
		if featured[p.Name] {
			mark = "*"
		}
		table.AddRow(p.Name, typ, p.FromKey, string(p.Hint), mark)
	}
	table.Render()
	return nil
}
