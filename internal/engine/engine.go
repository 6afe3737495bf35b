package engine

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"weathercheck/internal/config"
	"weathercheck/internal/flags"
	"weathercheck/internal/output"
	"weathercheck/internal/report"
	"weathercheck/internal/weather"

	"github.com/alessio/shellescape"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

func exitCodeForRun(fatal, partial, wrongs bool) int {
	// Exit code contract:
	// 0 = every rule passed
	// 1 = a rule failed or was skipped
	// 2 = a rule errored (request did not complete)
	// 3 = fatal error (run did not start)
	if fatal {
		return 3
	}
	if partial {
		return 2
	}
	if wrongs {
		return 1
	}
	return 0
}

// ExitCode derives the process exit code from a completed report. fatal
// means the run never started; rep may then be nil.
func ExitCode(rep *report.Report, fatal bool) int {
	if fatal || rep == nil {
		return exitCodeForRun(true, false, false)
	}
	c := rep.Counts()
	return exitCodeForRun(false, c.Error > 0, c.Fail > 0 || c.Skip > 0)
}

// SetupOutputManager builds the sinks selected by cfg. stdout receives the
// console and emit sinks.
func SetupOutputManager(cfg *config.Config, stdout io.Writer) (*output.Manager, error) {
	if stdout == nil {
		stdout = os.Stdout
	}
	outMgr := output.NewManager()

	fail := func(err error) (*output.Manager, error) {
		_ = outMgr.Close()
		return nil, err
	}

	// Console Sink
	if !cfg.Output.NoConsole {
		colorize := shouldColorize(cfg.Output.Color, stdout)
		if err := outMgr.AddSink(output.NewConsoleSink(stdout, cfg.Output.ConsoleFormat, colorize)); err != nil {
			return fail(err)
		}
	}

	// Emit Sinks (additional structured streams)
	for _, emit := range cfg.Output.Emit {
		es, err := output.NewEmitSink(stdout, emit)
		if err != nil {
			return fail(err)
		}
		if err := outMgr.AddSink(es); err != nil {
			return fail(err)
		}
	}

	// File Sink
	if cfg.Output.Out != "" {
		fs, err := output.NewFileSink(cfg.Output.Out, cfg.Output.OutFormat)
		if err != nil {
			return fail(err)
		}
		if err := outMgr.AddSink(fs); err != nil {
			return fail(err)
		}
	}

	// Report Sink
	if cfg.Output.Report != "" {
		rs, err := output.NewReportSink(cfg.Output.Report)
		if err != nil {
			return fail(err)
		}
		if err := outMgr.AddSink(rs); err != nil {
			return fail(err)
		}
	}

	return outMgr, nil
}

func shouldColorize(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if color.NoColor {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

type commandBuilder []string

func (b *commandBuilder) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandBuilder) String() string {
	return strings.Join(b, " ")
}

// BuildReproducibilityCommand returns a shell command that repeats the rule
// selection and request behavior of cfg. Output flags are omitted and the API
// key is never included.
func BuildReproducibilityCommand(cfg *config.Config) string {
	var b commandBuilder
	b.add("weathercheck", "run")

	flag := func(name string) string { return "--" + name }

	if cfg.Target.BaseURL != "" && cfg.Target.BaseURL != weather.DefaultBaseURL {
		b.add(flag(flags.FlagBaseURL), cfg.Target.BaseURL)
	}
	if cfg.Rules.Selector != "" {
		b.add(flag(flags.FlagRules), cfg.Rules.Selector)
	}
	for _, p := range cfg.Rules.Run {
		b.add(flag(flags.FlagRun), p)
	}
	for _, p := range cfg.Rules.Skip {
		b.add(flag(flags.FlagSkip), p)
	}
	if cfg.Runtime.Timeout != config.New().Runtime.Timeout {
		b.add(flag(flags.FlagTimeout), cfg.Runtime.Timeout.String())
	}
	if cfg.Runtime.RateLimit > 0 {
		b.add(flag(flags.FlagRateLimit), strconv.Itoa(cfg.Runtime.RateLimit))
	}
	if cfg.Runtime.Dedupe {
		b.add(flag(flags.FlagDedupe))
	}
	if cfg.Runtime.Preflight {
		b.add(flag(flags.FlagPreflight))
	}
	return b.String()
}

func describeFilters(f Filters) string {
	var parts []string
	if f.MustMatch.IsDefined() {
		parts = append(parts, fmt.Sprintf("skip any not matching %s", f.MustMatch))
	}
	if f.MustNotMatch.IsDefined() {
		parts = append(parts, fmt.Sprintf("skip any matching %s", f.MustNotMatch))
	}
	return strings.Join(parts, "; ")
}
