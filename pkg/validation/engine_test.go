package validation

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"vitalis-hq/glosaguard/pkg/guide"
)

func testGuide(t *testing.T) *guide.Context {
	t.Helper()
	g, err := guide.NewContext(`<ans:guiaConsulta xmlns:ans="http://example">
		<ans:numeroGuia>1</ans:numeroGuia>
	</ans:guiaConsulta>`)
	if err != nil {
		t.Fatalf("NewContext() error = %v", err)
	}
	return g
}

func findingRule(id string, priority int, findings ...Finding) *stubRule {
	return &stubRule{
		id:       id,
		priority: priority,
		validate: func(context.Context, *guide.Context) ([]Finding, error) {
			return findings, nil
		},
	}
}

func newTestEngine(rules ...Rule) *Engine {
	reg := NewRegistry(nil)
	for _, r := range rules {
		reg.Register(r)
	}
	return NewEngine(reg)
}

func TestExecuteRunsInPriorityOrder(t *testing.T) {
	var order []string
	track := func(id string, priority int) *stubRule {
		return &stubRule{
			id:       id,
			priority: priority,
			validate: func(context.Context, *guide.Context) ([]Finding, error) {
				order = append(order, id)
				return nil, nil
			},
		}
	}

	e := newTestEngine(track("late", 300), track("early", 10), track("mid", 150))
	result := e.Execute(context.Background(), testGuide(t), Options{})

	want := []string{"early", "mid", "late"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("execution order = %v, want %v", order, want)
	}
	if !reflect.DeepEqual(result.ExecutedRules, want) {
		t.Errorf("ExecutedRules = %v, want %v", result.ExecutedRules, want)
	}
	if !result.Valid() {
		t.Error("Valid() = false, want true with no findings")
	}
}

func TestExecuteSeverityBucketing(t *testing.T) {
	e := newTestEngine(
		findingRule("errs", 10,
			NewError("E1", "campo", "blocking"),
			NewWarning("W1", "campo", "advisory"),
		),
		findingRule("infos", 20,
			Finding{ID: "x", Code: "I1", Severity: SeverityInfo, Message: "note"},
		),
	)
	result := e.Execute(context.Background(), testGuide(t), Options{})

	if len(result.Errors) != 1 || result.Errors[0].Code != "E1" {
		t.Errorf("Errors = %+v, want only E1", result.Errors)
	}
	// Warnings and infos share the advisory bucket.
	if len(result.Warnings) != 2 {
		t.Errorf("len(Warnings) = %d, want 2", len(result.Warnings))
	}
	if result.Valid() {
		t.Error("Valid() = true, want false with a blocking finding")
	}
}

func TestExecuteInapplicableRulesAreSkipped(t *testing.T) {
	never := &stubRule{
		id:       "never",
		priority: 10,
		applies:  func(*guide.Context) bool { return false },
		validate: func(context.Context, *guide.Context) ([]Finding, error) {
			t.Error("inapplicable rule must not run")
			return nil, nil
		},
	}
	e := newTestEngine(never, findingRule("always", 20))
	result := e.Execute(context.Background(), testGuide(t), Options{})

	if !reflect.DeepEqual(result.SkippedRules, []string{"never"}) {
		t.Errorf("SkippedRules = %v, want [never]", result.SkippedRules)
	}
	if !reflect.DeepEqual(result.ExecutedRules, []string{"always"}) {
		t.Errorf("ExecutedRules = %v, want [always]", result.ExecutedRules)
	}
}

func TestExecuteContainsPanics(t *testing.T) {
	panics := &stubRule{
		id:       "panics",
		priority: 10,
		validate: func(context.Context, *guide.Context) ([]Finding, error) {
			panic("boom")
		},
	}
	panicsApplies := &stubRule{
		id:       "panics-applies",
		priority: 20,
		applies:  func(*guide.Context) bool { panic("boom") },
	}
	e := newTestEngine(panics, panicsApplies, findingRule("survivor", 30))

	result := e.Execute(context.Background(), testGuide(t), Options{})

	if !reflect.DeepEqual(result.ExecutedRules, []string{"survivor"}) {
		t.Errorf("ExecutedRules = %v, want [survivor]", result.ExecutedRules)
	}
	wantSkipped := map[string]bool{"panics": true, "panics-applies": true}
	if len(result.SkippedRules) != 2 {
		t.Fatalf("SkippedRules = %v, want 2 entries", result.SkippedRules)
	}
	for _, id := range result.SkippedRules {
		if !wantSkipped[id] {
			t.Errorf("unexpected skipped rule %q", id)
		}
	}
}

func TestExecuteContainsRuleErrors(t *testing.T) {
	faulty := &stubRule{
		id:       "faulty",
		priority: 10,
		validate: func(context.Context, *guide.Context) ([]Finding, error) {
			return nil, errors.New("table unavailable")
		},
	}
	e := newTestEngine(faulty, findingRule("ok", 20))
	result := e.Execute(context.Background(), testGuide(t), Options{})

	if !reflect.DeepEqual(result.SkippedRules, []string{"faulty"}) {
		t.Errorf("SkippedRules = %v, want [faulty]", result.SkippedRules)
	}
	if !result.Valid() {
		t.Error("a faulted rule must not produce findings")
	}
}

func TestExecuteStopOnFirstError(t *testing.T) {
	ran := false
	last := &stubRule{
		id:       "unreached",
		priority: 30,
		validate: func(context.Context, *guide.Context) ([]Finding, error) {
			ran = true
			return nil, nil
		},
	}
	e := newTestEngine(
		findingRule("warns", 10, NewWarning("W1", "f", "advisory")),
		findingRule("fails", 20, NewError("E1", "f", "blocking")),
		last,
	)

	result := e.Execute(context.Background(), testGuide(t), Options{StopOnFirstError: true})

	if ran {
		t.Error("rule after the first error must not run")
	}
	if !reflect.DeepEqual(result.ExecutedRules, []string{"warns", "fails"}) {
		t.Errorf("ExecutedRules = %v, want [warns fails]", result.ExecutedRules)
	}
	// Unreached rules appear in neither list.
	if len(result.SkippedRules) != 0 {
		t.Errorf("SkippedRules = %v, want empty", result.SkippedRules)
	}
	// Warnings never trigger the stop.
	if len(result.Warnings) != 1 {
		t.Errorf("len(Warnings) = %d, want 1", len(result.Warnings))
	}
}

func TestExecuteSoftTimeout(t *testing.T) {
	slow := &stubRule{
		id:       "slow",
		priority: 10,
		validate: func(context.Context, *guide.Context) ([]Finding, error) {
			time.Sleep(20 * time.Millisecond)
			return nil, nil
		},
	}
	ran := false
	after := &stubRule{
		id:       "after",
		priority: 20,
		validate: func(context.Context, *guide.Context) ([]Finding, error) {
			ran = true
			return nil, nil
		},
	}
	e := newTestEngine(slow, after)

	result := e.Execute(context.Background(), testGuide(t), Options{Timeout: time.Millisecond})

	// The slow rule is never preempted; the budget only stops the next one.
	if !reflect.DeepEqual(result.ExecutedRules, []string{"slow"}) {
		t.Errorf("ExecutedRules = %v, want [slow]", result.ExecutedRules)
	}
	if ran {
		t.Error("rule after timeout must not run")
	}
	if len(result.SkippedRules) != 0 {
		t.Errorf("SkippedRules = %v, want empty (unreached, not skipped)", result.SkippedRules)
	}
}

func TestExecuteContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	first := &stubRule{
		id:       "first",
		priority: 10,
		validate: func(context.Context, *guide.Context) ([]Finding, error) {
			cancel()
			return nil, nil
		},
	}
	e := newTestEngine(first, findingRule("second", 20))

	result := e.Execute(ctx, testGuide(t), Options{})
	if !reflect.DeepEqual(result.ExecutedRules, []string{"first"}) {
		t.Errorf("ExecutedRules = %v, want [first]", result.ExecutedRules)
	}
}

func TestExecuteParallelAggregatesInPriorityOrder(t *testing.T) {
	e := newTestEngine(
		findingRule("c", 300, NewError("E3", "f", "third")),
		findingRule("a", 100, NewError("E1", "f", "first")),
		findingRule("b", 200, NewError("E2", "f", "second")),
	)

	for i := 0; i < 10; i++ {
		result := e.Execute(context.Background(), testGuide(t), Options{Parallel: true})

		if got := result.ExecutedRules; !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
			t.Fatalf("ExecutedRules = %v, want deterministic [a b c]", got)
		}
		codes := make([]string, len(result.Errors))
		for j, f := range result.Errors {
			codes[j] = f.Code
		}
		if !reflect.DeepEqual(codes, []string{"E1", "E2", "E3"}) {
			t.Fatalf("error codes = %v, want [E1 E2 E3]", codes)
		}
	}
}

func TestExecuteParallelIgnoresEarlyExitLevers(t *testing.T) {
	e := newTestEngine(
		findingRule("fails", 10, NewError("E1", "f", "blocking")),
		findingRule("still-runs", 20, NewWarning("W1", "f", "advisory")),
	)

	result := e.Execute(context.Background(), testGuide(t), Options{
		Parallel:         true,
		StopOnFirstError: true,
		Timeout:          time.Nanosecond,
	})

	if len(result.ExecutedRules) != 2 {
		t.Errorf("ExecutedRules = %v, want both rules in parallel mode", result.ExecutedRules)
	}
}

func TestExecuteParallelContainsPanics(t *testing.T) {
	panics := &stubRule{
		id:       "panics",
		priority: 10,
		validate: func(context.Context, *guide.Context) ([]Finding, error) {
			panic("boom")
		},
	}
	e := newTestEngine(panics, findingRule("ok", 20))

	result := e.Execute(context.Background(), testGuide(t), Options{Parallel: true})
	if !reflect.DeepEqual(result.SkippedRules, []string{"panics"}) {
		t.Errorf("SkippedRules = %v, want [panics]", result.SkippedRules)
	}
	if !reflect.DeepEqual(result.ExecutedRules, []string{"ok"}) {
		t.Errorf("ExecutedRules = %v, want [ok]", result.ExecutedRules)
	}
}

func TestExecuteSpecific(t *testing.T) {
	e := newTestEngine(
		findingRule("a", 10, NewError("E1", "f", "a")),
		findingRule("b", 20, NewError("E2", "f", "b")),
		findingRule("c", 30, NewError("E3", "f", "c")),
	)
	e.SetRuleEnabled("c", false)

	result := e.ExecuteSpecific(context.Background(), testGuide(t), []string{"b", "c", "ghost"}, Options{})

	// Only enabled, registered, allow-listed rules run.
	if !reflect.DeepEqual(result.ExecutedRules, []string{"b"}) {
		t.Errorf("ExecutedRules = %v, want [b]", result.ExecutedRules)
	}
}

func TestExecuteDisabledRulesNeverRun(t *testing.T) {
	e := newTestEngine(
		findingRule("on", 10, NewWarning("W1", "f", "runs")),
		findingRule("off", 20, NewError("E1", "f", "must not run")),
	)
	e.SetRuleEnabled("off", false)

	result := e.Execute(context.Background(), testGuide(t), Options{})
	if !result.Valid() {
		t.Error("disabled rule produced findings")
	}
	// Disabled rules are not "skipped": they were never candidates.
	if len(result.SkippedRules) != 0 {
		t.Errorf("SkippedRules = %v, want empty", result.SkippedRules)
	}
}

func TestExecuteRecorder(t *testing.T) {
	rec := &captureRecorder{}
	reg := NewRegistry(nil)
	reg.Register(findingRule("r1", 10, NewError("E1", "f", "x")))
	reg.Register(&stubRule{
		id:       "r2",
		priority: 20,
		validate: func(context.Context, *guide.Context) ([]Finding, error) {
			return nil, errors.New("fault")
		},
	})
	e := NewEngine(reg, WithRecorder(rec))

	e.Execute(context.Background(), testGuide(t), Options{})

	if rec.outcomes["r1"] != "executed" || rec.outcomes["r2"] != "skipped" {
		t.Errorf("recorded outcomes = %v", rec.outcomes)
	}
	if rec.findings["E1"] != "error" {
		t.Errorf("recorded findings = %v", rec.findings)
	}
	if rec.passes != 1 {
		t.Errorf("recorded passes = %d, want 1", rec.passes)
	}
}

type captureRecorder struct {
	outcomes map[string]string
	findings map[string]string
	passes   int
}

func (c *captureRecorder) RecordRule(ruleID, outcome string, _ time.Duration) {
	if c.outcomes == nil {
		c.outcomes = map[string]string{}
	}
	c.outcomes[ruleID] = outcome
}

func (c *captureRecorder) RecordFinding(code, severity string) {
	if c.findings == nil {
		c.findings = map[string]string{}
	}
	c.findings[code] = severity
}

func (c *captureRecorder) RecordPass(string, time.Duration, int, int) {
	c.passes++
}
