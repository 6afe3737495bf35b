package cli

import (
	"fmt"
	"os"

	"weathercheck/internal/engine"
	"weathercheck/internal/flags"

	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var (
	configPath string
	envFile    string
)

var rootCmd = &cobra.Command{
	Use:   "weathercheck",
	Short: "Run contract tests against the OpenWeatherMap current-weather API",
	Long: `weathercheck sends a fixed set of requests to the OpenWeatherMap
current-weather endpoint and checks each response against a contract.

Every rule produces exactly one outcome: PASS, FAIL, ERROR or SKIP.

Examples:
	# Show available commands and global flags
	weathercheck --help

	# Run every rule
	weathercheck run

	# List rules
	weathercheck rules list

	# Print build info
	weathercheck version

Output:
	By default, results are printed to stdout as a table.
	Diagnostics are written to stderr.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&cfg.Runtime.Verbose, flags.FlagVerbose, false, "Enable verbose logging (prints every API request and full error details)")
	rootCmd.PersistentFlags().StringVar(&configPath, flags.FlagConfig, "", "Read settings from this YAML file (flags override it)")
	rootCmd.PersistentFlags().StringVar(&envFile, flags.FlagEnvFile, ".env", "Load environment variables from this file if it exists")
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

// Execute runs the root command. Cobra has already printed a parse or usage
// error by the time it returns one; those runs never started, so they exit
// with the fatal code rather than the "rule failed" code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(engine.ExitCode(nil, true))
	}
}
