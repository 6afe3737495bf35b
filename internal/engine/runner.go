package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"weathercheck/internal/config"
	"weathercheck/internal/output"
	"weathercheck/internal/report"
	"weathercheck/internal/rules"
	"weathercheck/internal/weather"

	"github.com/google/uuid"
)

var (
	// ErrMissingAPIKey is returned by NewRunner when a rule that will execute
	// needs an API key and none is configured. No request has been sent.
	ErrMissingAPIKey = errors.New("API key is required: set " + weather.EnvAPIKey + " in the environment or a .env file")

	// ErrRunnerUsed is returned by Run on a runner that already ran.
	ErrRunnerUsed = errors.New("runner has already been used")
)

type runState int

const (
	stateNotStarted runState = iota
	stateRunning
	stateCompleted
)

func (s runState) String() string {
	switch s {
	case stateNotStarted:
		return "NOT_STARTED"
	case stateRunning:
		return "RUNNING"
	case stateCompleted:
		return "COMPLETED"
	default:
		return fmt.Sprintf("runState(%d)", int(s))
	}
}

// Fetcher performs one query against the weather endpoint. cached reports
// whether the response was served without a new request.
type Fetcher interface {
	Fetch(ctx context.Context, query url.Values) (resp *weather.Response, cached bool, err error)
}

// Runner executes a fixed list of rules once, sequentially, and records one
// outcome per rule.
type Runner struct {
	apiKey    string
	baseURL   string
	verbose   bool
	fetcher   Fetcher
	rules     []rules.Rule
	filters   Filters
	preflight rules.Params

	out     *output.Manager
	logger  *slog.Logger
	command string

	mu        sync.Mutex
	state     runState
	collector *report.Collector
}

type Option func(*Runner)

// WithOutput sets the manager receiving outcomes, events and the final
// report. The runner closes it when Run returns.
func WithOutput(m *output.Manager) Option {
	return func(r *Runner) { r.out = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithPreflight sends params once before any rule. If that request cannot
// complete, every rule is recorded as SKIP.
func WithPreflight(params rules.Params) Option {
	return func(r *Runner) { r.preflight = params }
}

// WithCommand records a reproduction command in the run.started event.
func WithCommand(cmd string) Option {
	return func(r *Runner) { r.command = cmd }
}

// NewRunner validates the run preconditions. It never performs I/O.
func NewRunner(cfg *config.Config, f Fetcher, selected []rules.Rule, opts ...Option) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if f == nil {
		return nil, errors.New("fetcher is required")
	}

	filters, err := NewFilters(cfg.Rules.Run, cfg.Rules.Skip)
	if err != nil {
		return nil, err
	}

	r := &Runner{
		apiKey:    cfg.Target.APIKey,
		baseURL:   cfg.Target.BaseURL,
		verbose:   cfg.Runtime.Verbose,
		fetcher:   f,
		rules:     append([]rules.Rule(nil), selected...),
		filters:   filters,
		logger:    slog.New(slog.DiscardHandler),
		collector: report.NewCollector(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.out == nil {
		r.out = output.NewManager()
	}

	if r.apiKey == "" && r.needsAPIKey() {
		return nil, ErrMissingAPIKey
	}
	return r, nil
}

func (r *Runner) needsAPIKey() bool {
	if r.preflight.RequiresAPIKey() {
		return true
	}
	for _, rule := range r.rules {
		if r.filters.Allows(rule.ID()) && rule.Request().RequiresAPIKey() {
			return true
		}
	}
	return false
}

// Run executes every rule in order and returns the completed report. A
// runner can only run once.
func (r *Runner) Run(ctx context.Context) (*report.Report, error) {
	r.mu.Lock()
	if r.state != stateNotStarted {
		r.mu.Unlock()
		return nil, ErrRunnerUsed
	}
	r.state = stateRunning
	r.mu.Unlock()

	runID := uuid.NewString()
	log := r.logger.With("run_id", runID)
	log.Info("run started", "rules", len(r.rules), "base_url", r.baseURL)
	if r.filters.IsDefined() {
		log.Debug("rule filters active", "filters", describeFilters(r.filters))
	}

	var errs []error
	emit := func(v any) {
		if err := r.out.Write(v); err != nil {
			errs = append(errs, err)
		}
	}

	emit(output.Event{
		Type:    output.EventRunStarted,
		RunID:   runID,
		Rules:   len(r.rules),
		BaseURL: r.baseURL,
		Command: r.command,
	})

	skipAll := r.preflightCheck(ctx, log)

	for _, rule := range r.rules {
		o := r.execute(ctx, log, rule, skipAll)
		emit(o)
	}

	r.mu.Lock()
	r.state = stateCompleted
	r.mu.Unlock()

	rep := r.collector.Report()
	counts := rep.Counts()
	code := ExitCode(rep, false)

	emit(rep)
	emit(output.FinishedEvent(runID, counts, code))
	if err := r.out.Close(); err != nil {
		errs = append(errs, err)
	}

	log.Info("run finished",
		"pass", counts.Pass, "fail", counts.Fail, "error", counts.Error, "skip", counts.Skip)

	if len(errs) > 0 {
		return rep, fmt.Errorf("output: %w", errors.Join(errs...))
	}
	return rep, nil
}

// preflightCheck returns a non-empty skip reason when the endpoint could not
// be reached.
func (r *Runner) preflightCheck(ctx context.Context, log *slog.Logger) string {
	if r.preflight == nil {
		return ""
	}
	_, _, err := r.fetcher.Fetch(ctx, r.preflight.Query(r.apiKey))
	if err != nil {
		reason := "weather API unreachable: " + presentTransportError(err, r.verbose)
		log.Warn("preflight failed, skipping all rules", "error", reason)
		return reason
	}
	log.Debug("preflight ok")
	return ""
}

func (r *Runner) execute(ctx context.Context, log *slog.Logger, rule rules.Rule, skipAll string) report.Outcome {
	log = log.With("rule", rule.ID())

	if !r.filters.Allows(rule.ID()) {
		log.Debug("rule skipped by filter")
		return r.collector.RecordSkip(rule, "excluded by filter parameters")
	}
	if skipAll != "" {
		return r.collector.RecordSkip(rule, skipAll)
	}

	res := r.evaluate(ctx, log, rule)
	for _, note := range res.Notes {
		log.Warn("loose comparison", "note", note)
	}
	log.Debug("rule evaluated", "status", res.Status)
	return r.collector.RecordResult(rule, res)
}

func (r *Runner) evaluate(ctx context.Context, log *slog.Logger, rule rules.Rule) (res rules.Result) {
	defer func() {
		if p := recover(); p != nil {
			log.Error("rule panicked", "panic", p)
			res = rules.ErrorResult(fmt.Sprintf("rule panicked: %v", p))
		}
	}()

	resp, cached, err := r.fetcher.Fetch(ctx, rule.Request().Query(r.apiKey))
	if err != nil {
		log.Debug("request failed", "error", err)
		return rules.ErrorResult(presentTransportError(err, r.verbose))
	}
	if resp == nil {
		return rules.ErrorResult("weather API returned no response")
	}
	if cached {
		log.Debug("response served from cache")
	}
	return rule.Evaluate(rules.Envelope{StatusCode: resp.StatusCode, Body: resp.Body})
}
