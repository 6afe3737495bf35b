package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

type Config struct {
	// MAINTAINER NOTE: If you add/change/remove config fields that affect run
	// behavior, keep these in sync:
	// - CLI flags in internal/cli/run.go
	// - config file keys in internal/config/file.go
	// - report reproducibility command in internal/engine/engine.go:BuildReproducibilityCommand
	Target  Target
	Rules   Rules
	Output  Output
	Runtime Runtime
}

type Target struct {
	// BaseURL is the current-weather endpoint (see --base-url, OPENWEATHERMAP_URL).
	BaseURL string

	// APIKey is resolved from the environment only and never written anywhere.
	APIKey string
}

type Rules struct {
	// Selector selects which rules to run.
	// Empty means all rules; otherwise a comma-separated list of rule IDs (see --rules).
	Selector string

	// Run keeps only rules whose ID matches one of these regexes (see --run).
	// Rules that do not match are reported as SKIP.
	Run []string

	// Skip reports rules whose ID matches one of these regexes as SKIP (see --skip).
	Skip []string
}

type Output struct {
	// ConsoleFormat controls the human-facing console sink format (see --console-format).
	// Allowed values: table, json, ndjson.
	ConsoleFormat string

	// Color controls ANSI color in the results table (see --color).
	// Allowed values: auto, always, never.
	Color string

	// Report writes a Markdown report to this path (see --report).
	Report string

	// Out writes structured output to this path (see --out).
	Out string

	// OutFormat selects the format for --out (see --out-format).
	// Allowed values: json, ndjson. If empty, it is inferred from the --out file extension.
	OutFormat string

	// Emit writes an additional structured event stream to stdout (see --emit).
	// Allowed values: json, ndjson.
	Emit []string

	// NoConsole suppresses the console sink (see --no-console).
	// Use with --emit/--out/--report for machine-readable output.
	NoConsole bool
}

type Runtime struct {
	// Timeout bounds each HTTP request (see --timeout).
	// Must be > 0.
	Timeout time.Duration

	// RateLimit caps requests per minute (see --rate-limit). 0 means unlimited.
	RateLimit int

	// Dedupe sends identical queries once per run (see --dedupe).
	Dedupe bool

	// Preflight checks the endpoint once before any rule (see --preflight).
	Preflight bool

	// Verbose enables request logging and full transport error details.
	Verbose bool
}

func New() *Config {
	return &Config{
		Output: Output{
			ConsoleFormat: "table",
			Color:         "auto",
		},
		Runtime: Runtime{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Config) Validate() error {
	// Normalize comma-delimited list inputs.
	c.Output.Emit = splitCommaList(c.Output.Emit)

	// Target validation
	c.Target.BaseURL = strings.TrimSpace(c.Target.BaseURL)
	if c.Target.BaseURL != "" {
		u, err := url.Parse(c.Target.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("invalid --base-url value %q: must be an http or https URL", c.Target.BaseURL)
		}
	}

	// Rules validation
	for _, p := range c.Rules.Run {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("invalid --run pattern %q: %w", p, err)
		}
	}
	for _, p := range c.Rules.Skip {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("invalid --skip pattern %q: %w", p, err)
		}
	}

	// Output validation
	c.Output.ConsoleFormat = normalizeEnumValue(c.Output.ConsoleFormat)
	if c.Output.ConsoleFormat == "" {
		return errors.New("--console-format must be one of: table, json, ndjson")
	}
	if c.Output.ConsoleFormat != "table" && c.Output.ConsoleFormat != "json" && c.Output.ConsoleFormat != "ndjson" {
		return fmt.Errorf("unsupported --console-format: %s (must be one of: table, json, ndjson)", c.Output.ConsoleFormat)
	}

	c.Output.Color = normalizeEnumValue(c.Output.Color)
	if c.Output.Color == "" {
		c.Output.Color = "auto"
	}
	if c.Output.Color != "auto" && c.Output.Color != "always" && c.Output.Color != "never" {
		return fmt.Errorf("unsupported --color: %s (must be one of: auto, always, never)", c.Output.Color)
	}

	for i, emit := range c.Output.Emit {
		v := normalizeEnumValue(emit)
		if v != "json" && v != "ndjson" {
			return fmt.Errorf("unsupported --emit value: %s (must be one of: json, ndjson)", v)
		}
		c.Output.Emit[i] = v
	}

	// Runtime validation
	if c.Runtime.Timeout <= 0 {
		return errors.New("--timeout must be > 0")
	}
	if c.Runtime.RateLimit < 0 {
		return errors.New("--rate-limit must be >= 0")
	}

	if c.Output.Out != "" {
		c.Output.OutFormat = normalizeEnumValue(c.Output.OutFormat)
		if c.Output.OutFormat == "" {
			ext := strings.ToLower(filepath.Ext(c.Output.Out))
			switch ext {
			case ".json":
				c.Output.OutFormat = "json"
			case ".ndjson", ".jsonl":
				c.Output.OutFormat = "ndjson"
			default:
				if ext == "" {
					return errors.New("cannot infer output format from file extension (missing extension); use --out-format")
				}
				return fmt.Errorf("cannot infer output format from file extension %q; use --out-format", ext)
			}
		} else {
			if c.Output.OutFormat != "json" && c.Output.OutFormat != "ndjson" {
				return fmt.Errorf("unsupported output format: %s", c.Output.OutFormat)
			}
		}
	}

	return nil
}

func normalizeEnumValue(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func splitCommaList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			p := strings.TrimSpace(part)
			if p == "" {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}
