// Package cmd provides the CLI commands for award-sync.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"award-sync/adapters/upstream"
	"award-sync/core/endpoint"
	"award-sync/core/output"
	"award-sync/core/schema"
	"award-sync/internal/config"
	"award-sync/internal/logging"
)

var (
	cfgFile string
	verbose bool
	baseURL string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "award-sync",
	Short: "Query award seat availability from seats.aero",
	Long: `award-sync fetches routes and award availability from seats.aero.

Availability can be narrowed to a date window; mileage costs that are
missing or not positive are reported as absent.

Examples:
  award-sync routes
  award-sync availability --source united
  award-sync availability --source delta --start 2024-01-01 --end 2024-01-31 --format json`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initConfig,
}

// Execute runs the CLI
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file, .hcl or .json (default is $HOME/.award-sync.hcl)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "override the upstream base URL")

	// Add subcommands
	rootCmd.AddCommand(routesCmd)
	rootCmd.AddCommand(availabilityCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := cfgFile
	if path == "" {
		path = defaultConfigPath()
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if baseURL != "" {
		cfg.Upstream.BaseURL = baseURL
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	config.Set(cfg)

	return logging.Initialize(cfg.Logging)
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".award-sync.hcl"
	}
	return filepath.Join(home, ".award-sync.hcl")
}

// newEndpoints wires the upstream client from the active configuration.
func newEndpoints() (*endpoint.Endpoints, error) {
	cfg := config.Get()
	client := upstream.NewClient(&upstream.Config{
		Timeout:      cfg.Upstream.Timeout(),
		UserAgent:    cfg.Upstream.UserAgent,
		MaxBodyBytes: upstream.DefaultConfig().MaxBodyBytes,
	}, logging.Logger)

	return endpoint.New(cfg.Upstream.BaseURL, client, logging.Logger)
}

// render writes rows in the requested format, falling back to the configured default.
func render(cmd *cobra.Command, format string, s *schema.ObjectSchema, rows any) error {
	cfg := config.Get()
	if format == "" {
		format = cfg.Output.DefaultFormat
	}

	formatter, err := output.NewRegistry(cfg.Output.NoColor).Get(format)
	if err != nil {
		return err
	}
	result, err := output.NewResult(s, rows)
	if err != nil {
		return err
	}

	logging.Debug("rendering", zap.String("format", string(formatter.Format())), zap.Int("rows", len(result.Rows)))
	return formatter.Render(cmd.OutOrStdout(), result)
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "award-sync version %s\n", config.Version)
	},
}
