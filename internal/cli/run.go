package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"weathercheck/internal/config"
	"weathercheck/internal/engine"
	"weathercheck/internal/fetcher"
	"weathercheck/internal/flags"
	"weathercheck/internal/logging"
	"weathercheck/internal/rules"
	"weathercheck/internal/rules/checks"
	"weathercheck/internal/weather"

	"github.com/spf13/cobra"
)

var cfg = config.New()

const runHelpTemplate = `{{with (or .Long .Short)}}{{. | trimTrailingWhitespaces}}

{{end}}Usage:
  {{.UseLine}}

{{if .HasAvailableLocalFlags}}Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}{{if .HasAvailableInheritedFlags}}Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}Environment:
  OPENWEATHERMAP_API_KEY  API key sent as the appid query parameter (required
                          unless every selected rule omits it)
  OPENWEATHERMAP_URL      Endpoint override (same as --base-url)

  Both may also be set in a .env file (see --env-file). Variables already
  present in the environment take precedence over the file.

  Examples:
    # macOS/Linux
    export OPENWEATHERMAP_API_KEY="<your_key>"
    weathercheck run

    # Windows PowerShell
    $env:OPENWEATHERMAP_API_KEY = "<your_key>"
    weathercheck run
`

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the contract rules against the weather API",
	Long: `Run the contract rules against the weather API, one at a time, in catalog order.

Each rule sends one request and checks the status code and selected fields of
the JSON response. A request that cannot complete is recorded as ERROR for that
rule only; the remaining rules still run.

Output:
	Console output is controlled by --console-format (default: table).
	Structured outputs can be written via:
	- --out / --out-format: write an aggregate JSON array or NDJSON stream to a file
	- --emit: write an additional structured stream to stdout (json or ndjson)
	- --report: write a Markdown report
	- --no-console: suppress the console sink (use with --emit/--out for machine output)

	NDJSON mode emits one JSON object per line. Objects are lifecycle Events with a
	"type" field (run.started, rule.result, run.finished).

Exit codes:
	0 = every rule passed
	1 = a rule failed or was skipped
	2 = a rule errored (request did not complete)
	3 = fatal error (run did not start)

Examples:
  export OPENWEATHERMAP_API_KEY="<your_key>"
  weathercheck run

  # Only the coordinate boundary rules
  weathercheck run --run '^(max|min)_'

  # Against a local mock, machine-readable
  weathercheck run --base-url http://localhost:8080/data/2.5/weather --no-console --emit ndjson
`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runContractTests(cmd.Context(), cmd, cfg, cmd.OutOrStdout(), cmd.ErrOrStderr()))
	},
}

// runContractTests resolves configuration, executes the run and returns the
// process exit code. Fatal errors are printed to stderr exactly once.
func runContractTests(ctx context.Context, cmd *cobra.Command, cfg *config.Config, stdout, stderr io.Writer) int {
	if ctx == nil {
		ctx = context.Background()
	}
	fatal := func(format string, a ...any) int {
		fmt.Fprintf(stderr, "Error: "+format+"\n", a...)
		return engine.ExitCode(nil, true)
	}
	isSet := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}

	if err := config.LoadDotEnv(envFile); err != nil {
		return fatal("%v", err)
	}
	if configPath != "" {
		f, err := config.LoadFile(configPath)
		if err != nil {
			return fatal("%v", err)
		}
		if err := cfg.ApplyFile(f, isSet); err != nil {
			return fatal("%v", err)
		}
	}
	cfg.ApplyEnv(os.LookupEnv, isSet)
	if cfg.Target.BaseURL == "" {
		cfg.Target.BaseURL = weather.DefaultBaseURL
	}
	if err := cfg.Validate(); err != nil {
		return fatal("%v", err)
	}

	key, _, err := weather.ResolveAPIKey("")
	if err != nil {
		return fatal("failed to resolve API key: %v", err)
	}
	cfg.Target.APIKey = key

	selected, err := rules.Resolve(cfg.Rules.Selector)
	if err != nil {
		return fatal("%v", err)
	}

	logger := logging.New(stderr, cfg.Runtime.Verbose)

	client, err := weather.NewClient(cfg.Target.BaseURL,
		weather.WithTimeout(cfg.Runtime.Timeout),
		weather.WithRateLimit(cfg.Runtime.RateLimit),
		weather.WithVerbose(cfg.Runtime.Verbose, logger),
	)
	if err != nil {
		return fatal("failed to create weather client: %v", err)
	}

	outMgr, err := engine.SetupOutputManager(cfg, stdout)
	if err != nil {
		return fatal("failed to set up output: %v", err)
	}

	opts := []engine.Option{
		engine.WithOutput(outMgr),
		engine.WithLogger(logger),
		engine.WithCommand(engine.BuildReproducibilityCommand(cfg)),
	}
	if cfg.Runtime.Preflight {
		opts = append(opts, engine.WithPreflight(checks.CityQuery()))
	}

	runner, err := engine.NewRunner(cfg, fetcher.NewFetcher(client, cfg.Runtime.Dedupe), selected, opts...)
	if err != nil {
		_ = outMgr.Close()
		if errors.Is(err, engine.ErrMissingAPIKey) {
			return fatal("%v", err)
		}
		return fatal("failed to start run: %v", err)
	}

	rep, err := runner.Run(ctx)
	code := engine.ExitCode(rep, false)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		if code < 2 {
			code = 2
		}
	}
	return code
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.SetHelpTemplate(runHelpTemplate)

	// MAINTAINER NOTE: If you add/change/remove any run-affecting flags here,
	// keep the report reproducibility command generator in sync:
	// internal/engine/engine.go:BuildReproducibilityCommand.
	//
	// Output flags are intentionally omitted from the reproducibility command.

	// Target
	runCmd.Flags().StringVar(&cfg.Target.BaseURL, flags.FlagBaseURL, "", "Weather endpoint URL (default: "+weather.DefaultBaseURL+")")

	// Rules
	runCmd.Flags().StringVar(&cfg.Rules.Selector, flags.FlagRules, "", "Comma-separated rule IDs to run (empty = all rules)")
	runCmd.Flags().StringArrayVar(&cfg.Rules.Run, flags.FlagRun, nil, "Only run rules whose ID matches this regex; others are reported as SKIP (repeatable)")
	runCmd.Flags().StringArrayVar(&cfg.Rules.Skip, flags.FlagSkip, nil, "Report rules whose ID matches this regex as SKIP (repeatable)")

	// Output
	runCmd.Flags().StringVar(&cfg.Output.ConsoleFormat, flags.FlagConsoleFormat, "table", "Console output format: table|json|ndjson (default: table)")
	runCmd.Flags().StringVar(&cfg.Output.Color, flags.FlagColor, "auto", "Color the results table: auto|always|never (default: auto)")
	runCmd.Flags().StringVar(&cfg.Output.Report, flags.FlagReport, "", "Write a Markdown report to this path")
	runCmd.Flags().StringVar(&cfg.Output.Out, flags.FlagOut, "", "Write structured output to this path")
	runCmd.Flags().StringVar(&cfg.Output.OutFormat, flags.FlagOutFormat, "", "Structured output format for --out: json|ndjson (default: inferred from file extension)")
	runCmd.Flags().StringSliceVar(&cfg.Output.Emit, flags.FlagEmit, nil, "Emit additional structured stream to stdout: json|ndjson (repeatable; comma-separated accepted)")
	runCmd.Flags().BoolVar(&cfg.Output.NoConsole, flags.FlagNoConsole, false, "Suppress console output (use with --emit/--out/--report)")

	// Runtime
	runCmd.Flags().DurationVar(&cfg.Runtime.Timeout, flags.FlagTimeout, cfg.Runtime.Timeout, "Per-request timeout (default: 10s)")
	runCmd.Flags().IntVar(&cfg.Runtime.RateLimit, flags.FlagRateLimit, 0, "Maximum requests per minute (0 = unlimited)")
	runCmd.Flags().BoolVar(&cfg.Runtime.Dedupe, flags.FlagDedupe, false, "Send identical requests only once per run")
	runCmd.Flags().BoolVar(&cfg.Runtime.Preflight, flags.FlagPreflight, false, "Probe the endpoint first; if unreachable, report every rule as SKIP")
}
