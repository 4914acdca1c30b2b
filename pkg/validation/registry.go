package validation

import (
	"log/slog"
	"sort"
	"sync"
)

// Registry owns the registered rules, keyed by id. It is safe for concurrent
// use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*registryEntry
	nextSeq int
	logger  *slog.Logger
}

type registryEntry struct {
	rule    Rule
	enabled bool
	seq     int // registration order, used as the stable tiebreaker
}

// Stats summarizes the registry for introspection. It does not affect
// behavior.
type Stats struct {
	Total      int         `json:"total"`
	Enabled    int         `json:"enabled"`
	Disabled   int         `json:"disabled"`
	ByPriority map[int]int `json:"by_priority"`
}

// NewRegistry creates an empty rule registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		entries: map[string]*registryEntry{},
		logger:  logger,
	}
}

// Register inserts a rule by id. A collision overwrites the existing rule
// and logs a warning rather than failing: this supports hot-swapping a rule
// without restart ceremony. New rules start enabled.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[rule.ID()]; exists {
		r.logger.Warn("rule already registered, overwriting",
			"rule_id", rule.ID(),
		)
	}
	r.entries[rule.ID()] = &registryEntry{
		rule:    rule,
		enabled: true,
		seq:     r.nextSeq,
	}
	r.nextSeq++
}

// Unregister removes a rule. It reports whether a rule was removed.
func (r *Registry) Unregister(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return false
	}
	delete(r.entries, id)
	return true
}

// Rule returns the rule registered under id.
func (r *Registry) Rule(id string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	return e.rule, true
}

// SetEnabled toggles a rule at runtime without altering its registration.
// Unknown ids are a no-op.
func (r *Registry) SetEnabled(id string, enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[id]; ok {
		e.enabled = enabled
	}
}

// Enabled reports whether the rule is registered and enabled.
func (r *Registry) Enabled(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[id]
	return ok && e.enabled
}

// AllRules returns every registered rule sorted ascending by priority.
// The sort is recomputed on each call: priorities don't change after
// registration, but enablement does and callers pair this with Enabled.
func (r *Registry) AllRules() []Rule {
	r.mu.RLock()
	entries := make([]*registryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		entries = append(entries, e)
	}
	r.mu.RUnlock()

	sortEntries(entries)

	rules := make([]Rule, len(entries))
	for i, e := range entries {
		rules[i] = e.rule
	}
	return rules
}

// EnabledRules returns the enabled rules sorted ascending by priority.
func (r *Registry) EnabledRules() []Rule {
	r.mu.RLock()
	entries := make([]*registryEntry, 0, len(r.entries))
	for _, e := range r.entries {
		if e.enabled {
			entries = append(entries, e)
		}
	}
	r.mu.RUnlock()

	sortEntries(entries)

	rules := make([]Rule, len(entries))
	for i, e := range entries {
		rules[i] = e.rule
	}
	return rules
}

// Stats returns counts and a priority histogram for debugging.
func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s := Stats{ByPriority: map[int]int{}}
	for _, e := range r.entries {
		s.Total++
		if e.enabled {
			s.Enabled++
		} else {
			s.Disabled++
		}
		s.ByPriority[e.rule.Priority()]++
	}
	return s
}

func sortEntries(entries []*registryEntry) {
	sort.Slice(entries, func(i, j int) bool {
		pi, pj := entries[i].rule.Priority(), entries[j].rule.Priority()
		if pi != pj {
			return pi < pj
		}
		// Registration order keeps equal priorities deterministic.
		return entries[i].seq < entries[j].seq
	})
}
