package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"packagexpress/internal/config"
	"packagexpress/internal/console"
	"packagexpress/internal/errors"
	"packagexpress/internal/logging"
	"packagexpress/internal/quote"
	"packagexpress/internal/session"
	"packagexpress/internal/version"
)

var (
	// Global flags
	verbose   bool
	logFormat string

	// Version flags
	versionOutput string

	// Root command
	rootCmd = &cobra.Command{
		Use:   "packagexpress",
		Short: "Package Express shipping quote",
		Long: `Package Express asks for a package's weight, width, height and length,
checks them against the shipping limits and prints an estimated shipping cost.

Packages heavier than 50 or whose width+height+length exceeds 50 cannot be shipped.`,
		Example: `  # Start an interactive quote
  packagexpress

  # Quote from piped input (weight, width, height, length)
  printf '10\n2\n3\n4\n' | packagexpress

  # Show diagnostics on stderr while quoting
  packagexpress --verbose`,
		Args:          cobra.NoArgs,
		RunE:          runQuote,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Version command
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version and build information for Package Express.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return outputVersion(cmd.OutOrStdout(), versionOutput)
		},
	}
)

func init() {
	rootCmd.Version = version.GetVersionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Write debug diagnostics to stderr")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Diagnostics format (text, json, logfmt)")

	versionCmd.Flags().StringVarP(&versionOutput, "output", "o", "text", "Output format (text, json)")

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// runQuote handles the interactive quote
func runQuote(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagOverrides(cmd))
	if err != nil {
		return errors.WrapError(err, "", "invalid configuration").
			WithSuggestion("Unset or correct the PACKAGEXPRESS_* environment variables")
	}

	logger := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}, cmd.ErrOrStderr())
	logger.Debug("configuration loaded", "level", cfg.Log.Level, "format", cfg.Log.Format)

	engine := quote.NewEngine(quote.WithLogger(logger))
	con := console.New(cmd.InOrStdin(), cmd.OutOrStdout())

	outcome, err := session.New(con, engine, session.WithLogger(logger)).Run(cmd.Context())
	if err != nil {
		return err
	}

	logger.Debug("run finished", "outcome", outcome.String())
	return nil
}

// flagOverrides returns the configuration keys set explicitly on the command line
func flagOverrides(cmd *cobra.Command) map[string]any {
	overrides := make(map[string]any)

	if verbose {
		overrides["log.level"] = "debug"
	}
	if cmd.Flags().Changed("log-format") {
		overrides["log.format"] = strings.ToLower(logFormat)
	}

	return overrides
}

func validateOutputFormat(format string) error {
	validFormats := []string{"text", "json"}
	for _, valid := range validFormats {
		if format == valid {
			return nil
		}
	}
	return errors.ConfigError(fmt.Sprintf("invalid output format '%s'", format)).
		WithContext("outputFormat", format).
		WithContext("validFormats", strings.Join(validFormats, ", ")).
		WithSuggestion("Use one of: text, json")
}
