// Package commands implements the CLI commands for cdrdump.
package commands

import (
	"context"
	"os"

	"github.com/marmos91/gocdr/cmd/cdrdump/cmdutil"
	"github.com/marmos91/gocdr/internal/logger"
	"github.com/marmos91/gocdr/pkg/config"
	"github.com/marmos91/gocdr/pkg/metrics"
	_ "github.com/marmos91/gocdr/pkg/metrics/prometheus"
	"github.com/marmos91/gocdr/pkg/telemetry"
	"github.com/spf13/cobra"
)

// Version information injected at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// cfg is the loaded configuration, populated in PersistentPreRun before
// any subcommand's RunE runs.
var cfg *config.Config

// telemetryShutdown flushes the OTLP exporter; set in PersistentPreRun,
// called in PersistentPostRun.
var telemetryShutdown func(context.Context) error

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "cdrdump",
	Short: "Encode, decode, and inspect Common Data Representation frames",
	Long: `cdrdump encodes and decodes Common Data Representation (CDR) wire
frames: classic CDR, XCDRv1, XCDRv2, and the FastCDR variant used by DDS
middleware.

Use "cdrdump [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cmdutil.Flags.ConfigFile, _ = cmd.Flags().GetString("config")
		cmdutil.Flags.Output, _ = cmd.Flags().GetString("output")
		cmdutil.Flags.Verbose, _ = cmd.Flags().GetBool("verbose")

		loaded, err := config.Load(cmdutil.Flags.ConfigFile)
		if err != nil {
			Exit("failed to load configuration: %v", err)
		}
		cfg = loaded

		if err := logger.Init(logger.Config{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Output: cfg.Logging.Output,
		}); err != nil {
			Exit("failed to initialize logger: %v", err)
		}

		if cfg.Metrics.Enabled {
			metrics.InitRegistry()
		}

		shutdown, err := telemetry.Init(cmd.Context(), telemetry.Config{
			Enabled:        cfg.Telemetry.Enabled,
			ServiceName:    "cdrdump",
			ServiceVersion: Version,
			Endpoint:       cfg.Telemetry.Endpoint,
			Insecure:       cfg.Telemetry.Insecure,
			SampleRate:     cfg.Telemetry.SampleRate,
		})
		if err != nil {
			Exit("failed to initialize telemetry: %v", err)
		}
		telemetryShutdown = shutdown
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if telemetryShutdown != nil {
			_ = telemetryShutdown(cmd.Context())
		}
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command, for testing.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (defaults to the XDG config dir)")
	rootCmd.PersistentFlags().StringP("output", "o", "table", "Output format (table|json|yaml); inspect always renders a table and decode always prints one line per member")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(inspectCmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// PrintErr prints an error message to stderr.
func PrintErr(format string, args ...any) {
	rootCmd.PrintErrf(format+"\n", args...)
}

// Exit prints an error and exits with code 1.
func Exit(format string, args ...any) {
	PrintErr(format, args...)
	os.Exit(1)
}

// currentConfig returns the loaded configuration, falling back to
// defaults for callers invoked outside of Execute (e.g. tests).
func currentConfig() *config.Config {
	if cfg != nil {
		return cfg
	}
	return config.GetDefaultConfig()
}
