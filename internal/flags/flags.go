package flags

// Package flags defines canonical CLI flag names shared across the CLI, the
// config file loader and the engine. Keeping these as constants avoids drift
// between Cobra flag wiring and other code paths that need to reference flags
// (e.g. report reproducibility command generation).
// IMPORTANT: These are flag *names* without leading dashes.
// Example usage:
//
//	cmd.Flags().StringVar(&cfg.Target.BaseURL, flags.FlagBaseURL, "", "...")
//	arg := "--" + flags.FlagBaseURL
const (
	// Target
	FlagBaseURL = "base-url"

	// Rules
	FlagRules = "rules"
	FlagRun   = "run"
	FlagSkip  = "skip"

	// Output
	FlagConsoleFormat = "console-format"
	FlagColor         = "color"
	FlagReport        = "report"
	FlagOut           = "out"
	FlagOutFormat     = "out-format"
	FlagEmit          = "emit"
	FlagNoConsole     = "no-console"

	// Runtime
	FlagTimeout   = "timeout"
	FlagRateLimit = "rate-limit"
	FlagDedupe    = "dedupe"
	FlagPreflight = "preflight"

	// Global
	FlagConfig  = "config"
	FlagEnvFile = "env-file"
	FlagVerbose = "verbose"
)
