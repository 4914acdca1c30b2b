package validation

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"vitalis-hq/glosaguard/pkg/guide"
)

// Options control one validation pass.
type Options struct {
	// StopOnFirstError halts iteration once at least one blocking finding
	// has been bucketed. Rules not yet reached are neither executed nor
	// skipped. Sequential mode only.
	StopOnFirstError bool

	// Timeout is a soft wall-clock budget, checked between rules (never
	// preemptive). Zero means no budget. Sequential mode only.
	Timeout time.Duration

	// Parallel launches all applicable rules concurrently and waits for
	// their joint settlement. StopOnFirstError and Timeout are not
	// enforceable in this mode: every rule is already in flight by the time
	// the first outcome lands. Parallel mode trades early-exit precision
	// for throughput.
	Parallel bool
}

// Result aggregates one validation pass.
type Result struct {
	// Errors holds blocking findings (severity == error).
	Errors []Finding `json:"errors"`

	// Warnings holds advisory findings (severity warning or info).
	Warnings []Finding `json:"warnings"`

	// ExecutedRules lists the ids of rules whose Validate completed.
	ExecutedRules []string `json:"executed_rules"`

	// SkippedRules lists the ids of rules that were inapplicable or faulted.
	// Callers needing "fewer rules ran than registered" diff
	// ExecutedRules+SkippedRules against the enabled set.
	SkippedRules []string `json:"skipped_rules"`

	// ExecutionTime is the elapsed wall time of the pass.
	ExecutionTime time.Duration `json:"execution_time"`
}

// Valid reports whether the document passed: zero blocking findings,
// regardless of warning count. This is the sole status derivation.
func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}

// Recorder receives execution telemetry from the engine. Implemented by
// telemetry/metrics; a nil Recorder disables recording.
type Recorder interface {
	// RecordRule records one rule outcome ("executed" or "skipped").
	RecordRule(ruleID, outcome string, duration time.Duration)

	// RecordFinding records one emitted finding.
	RecordFinding(code string, severity string)

	// RecordPass records one completed validation pass.
	RecordPass(guiaType string, duration time.Duration, errorCount, warningCount int)
}

// Engine orchestrates validation passes over a single Registry.
type Engine struct {
	registry *Registry
	logger   *slog.Logger
	recorder Recorder
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithRecorder sets the telemetry recorder.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// NewEngine creates an engine owning the given registry.
func NewEngine(registry *Registry, opts ...Option) *Engine {
	e := &Engine{
		registry: registry,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry returns the engine's rule registry.
func (e *Engine) Registry() *Registry { return e.registry }

// Register registers a rule (overwrite-and-log on id collision).
func (e *Engine) Register(rule Rule) { e.registry.Register(rule) }

// Unregister removes a rule, reporting whether one was removed.
func (e *Engine) Unregister(id string) bool { return e.registry.Unregister(id) }

// SetRuleEnabled toggles a rule at runtime. Unknown ids are a no-op.
func (e *Engine) SetRuleEnabled(id string, enabled bool) { e.registry.SetEnabled(id, enabled) }

// Stats returns registry statistics.
func (e *Engine) Stats() Stats { return e.registry.Stats() }

// Execute runs one validation pass with all enabled rules.
func (e *Engine) Execute(ctx context.Context, g *guide.Context, opts Options) *Result {
	return e.run(ctx, g, e.registry.EnabledRules(), opts)
}

// ExecuteSpecific runs the same pipeline restricted to an explicit id
// allow-list, still priority-sorted and still subject to enablement and
// applicability filtering. Used for targeted re-validation and testing.
func (e *Engine) ExecuteSpecific(ctx context.Context, g *guide.Context, ids []string, opts Options) *Result {
	allow := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		allow[id] = struct{}{}
	}

	var rules []Rule
	for _, r := range e.registry.EnabledRules() {
		if _, ok := allow[r.ID()]; ok {
			rules = append(rules, r)
		}
	}
	return e.run(ctx, g, rules, opts)
}

func (e *Engine) run(ctx context.Context, g *guide.Context, rules []Rule, opts Options) *Result {
	start := time.Now()
	result := &Result{
		Errors:        []Finding{},
		Warnings:      []Finding{},
		ExecutedRules: []string{},
		SkippedRules:  []string{},
	}

	// Applicability filtering, isolated per rule: a predicate that panics
	// cannot abort the whole pass.
	applicable := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		ok, err := safeAppliesTo(rule, g)
		if err != nil {
			e.logger.Warn("rule applicability check faulted, skipping rule",
				"rule_id", rule.ID(),
				"error", err,
			)
			result.SkippedRules = append(result.SkippedRules, rule.ID())
			continue
		}
		if !ok {
			result.SkippedRules = append(result.SkippedRules, rule.ID())
			continue
		}
		applicable = append(applicable, rule)
	}

	if opts.Parallel {
		e.runParallel(ctx, g, applicable, result)
	} else {
		e.runSequential(ctx, g, applicable, start, opts, result)
	}

	result.ExecutionTime = time.Since(start)

	if e.recorder != nil {
		e.recorder.RecordPass(string(g.GuiaType), result.ExecutionTime,
			len(result.Errors), len(result.Warnings))
	}

	e.logger.Debug("validation pass completed",
		"guia_type", g.GuiaType,
		"executed", len(result.ExecutedRules),
		"skipped", len(result.SkippedRules),
		"errors", len(result.Errors),
		"warnings", len(result.Warnings),
		"elapsed", result.ExecutionTime,
	)

	return result
}

// runSequential iterates rules in priority order, honoring the soft timeout
// and stop-on-first-error between rules.
func (e *Engine) runSequential(ctx context.Context, g *guide.Context, rules []Rule, start time.Time, opts Options, result *Result) {
	for _, rule := range rules {
		// Early-exit levers, checked between rules only. Rules not reached
		// are absent from both the executed and skipped lists.
		if opts.StopOnFirstError && len(result.Errors) > 0 {
			e.logger.Debug("stopping on first error", "after_rule_count", len(result.ExecutedRules))
			return
		}
		if opts.Timeout > 0 && time.Since(start) > opts.Timeout {
			e.logger.Warn("validation pass exceeded soft timeout",
				"timeout", opts.Timeout,
				"elapsed", time.Since(start),
			)
			return
		}
		if ctx.Err() != nil {
			e.logger.Warn("validation context cancelled", "error", ctx.Err())
			return
		}

		e.executeRule(ctx, g, rule, result)
	}
}

// runParallel launches every applicable rule concurrently and aggregates
// outcomes in priority order once all settle. A faulting rule does not
// cancel its siblings.
func (e *Engine) runParallel(ctx context.Context, g *guide.Context, rules []Rule, result *Result) {
	type outcome struct {
		findings []Finding
		err      error
		elapsed  time.Duration
	}

	outcomes := make([]outcome, len(rules))
	var wg sync.WaitGroup
	for i, rule := range rules {
		wg.Add(1)
		go func(i int, rule Rule) {
			defer wg.Done()
			ruleStart := time.Now()
			findings, err := safeValidate(ctx, rule, g)
			outcomes[i] = outcome{findings: findings, err: err, elapsed: time.Since(ruleStart)}
		}(i, rule)
	}
	wg.Wait()

	for i, rule := range rules {
		o := outcomes[i]
		if o.err != nil {
			e.recordSkip(rule, o.err, o.elapsed, result)
			continue
		}
		e.recordExecution(rule, o.findings, o.elapsed, result)
	}
}

// executeRule runs one rule with fault isolation and records the outcome.
func (e *Engine) executeRule(ctx context.Context, g *guide.Context, rule Rule, result *Result) {
	ruleStart := time.Now()
	findings, err := safeValidate(ctx, rule, g)
	elapsed := time.Since(ruleStart)

	if err != nil {
		e.recordSkip(rule, err, elapsed, result)
		return
	}
	e.recordExecution(rule, findings, elapsed, result)
}

func (e *Engine) recordExecution(rule Rule, findings []Finding, elapsed time.Duration, result *Result) {
	result.ExecutedRules = append(result.ExecutedRules, rule.ID())
	categorize(findings, &result.Errors, &result.Warnings)

	if e.recorder != nil {
		e.recorder.RecordRule(rule.ID(), "executed", elapsed)
		for _, f := range findings {
			e.recorder.RecordFinding(f.Code, string(f.Severity))
		}
	}
}

func (e *Engine) recordSkip(rule Rule, err error, elapsed time.Duration, result *Result) {
	e.logger.Warn("rule execution faulted, skipping rule",
		"rule_id", rule.ID(),
		"error", err,
	)
	result.SkippedRules = append(result.SkippedRules, rule.ID())

	if e.recorder != nil {
		e.recorder.RecordRule(rule.ID(), "skipped", elapsed)
	}
}

// safeAppliesTo evaluates the applicability predicate, converting a panic
// into a contained fault.
func safeAppliesTo(rule Rule, g *guide.Context) (ok bool, err error) {
	defer func() {
		if p := recover(); p != nil {
			ok = false
			err = &RuleFaultError{RuleID: rule.ID(), Phase: "applies_to", Panic: p}
		}
	}()
	return rule.AppliesTo(g), nil
}

// safeValidate runs the rule's check, converting a panic or returned error
// into a contained fault.
func safeValidate(ctx context.Context, rule Rule, g *guide.Context) (findings []Finding, err error) {
	defer func() {
		if p := recover(); p != nil {
			findings = nil
			err = &RuleFaultError{RuleID: rule.ID(), Phase: "validate", Panic: p}
		}
	}()
	findings, err = rule.Validate(ctx, g)
	if err != nil {
		return nil, &RuleFaultError{RuleID: rule.ID(), Phase: "validate", Cause: err}
	}
	return findings, nil
}
