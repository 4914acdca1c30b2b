package tables

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Loader produces the full entry set for a table.
type Loader func(ctx context.Context) (map[string]Entry, error)

// LazyTable is a Service backed by a memoized lazy load.
//
// The first caller starts the load; concurrent first-use callers wait on the
// same in-flight load rather than starting their own. A failed load is
// retried by the next caller; a successful load is never repeated (only an
// explicit Reload replaces the data).
type LazyTable struct {
	name   string
	loader Loader
	logger *slog.Logger

	mu       sync.Mutex
	entries  map[string]Entry
	loaded   bool
	inflight chan struct{}
}

// NewLazyTable creates a lazily-loaded table.
func NewLazyTable(name string, loader Loader, logger *slog.Logger) *LazyTable {
	if logger == nil {
		logger = slog.Default()
	}
	return &LazyTable{
		name:   name,
		loader: loader,
		logger: logger.With("table", name),
	}
}

// Exists implements Service.
func (t *LazyTable) Exists(ctx context.Context, code string) (bool, error) {
	entries, err := t.ensure(ctx)
	if err != nil {
		return false, err
	}
	_, ok := entries[code]
	return ok, nil
}

// IsCurrent implements Service.
func (t *LazyTable) IsCurrent(ctx context.Context, code string) (bool, error) {
	entries, err := t.ensure(ctx)
	if err != nil {
		return false, err
	}
	e, ok := entries[code]
	if !ok {
		return false, nil
	}
	return e.Current(time.Now()), nil
}

// Get implements Service.
func (t *LazyTable) Get(ctx context.Context, code string) (*Entry, error) {
	entries, err := t.ensure(ctx)
	if err != nil {
		return nil, err
	}
	e, ok := entries[code]
	if !ok {
		return nil, fmt.Errorf("table %s code %q: %w", t.name, code, ErrNotFound)
	}
	return &e, nil
}

// Len returns the number of loaded entries (0 before first use).
func (t *LazyTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}

// Reload loads fresh data and atomically replaces the table contents. Used
// by the file watcher and the refresh scheduler. The existing data stays in
// place if the load fails.
func (t *LazyTable) Reload(ctx context.Context) error {
	entries, err := t.loader(ctx)
	if err != nil {
		return fmt.Errorf("reload table %s: %w", t.name, err)
	}

	t.mu.Lock()
	t.entries = entries
	t.loaded = true
	t.mu.Unlock()

	t.logger.Info("table reloaded", "entry_count", len(entries))
	return nil
}

// ensure returns the loaded entry map, performing or joining the lazy first
// load as needed.
func (t *LazyTable) ensure(ctx context.Context) (map[string]Entry, error) {
	t.mu.Lock()
	for {
		if t.loaded {
			entries := t.entries
			t.mu.Unlock()
			return entries, nil
		}

		if t.inflight == nil {
			// Become the loader.
			done := make(chan struct{})
			t.inflight = done
			t.mu.Unlock()

			entries, err := t.loader(ctx)

			t.mu.Lock()
			t.inflight = nil
			if err == nil {
				t.entries = entries
				t.loaded = true
				t.logger.Info("table loaded", "entry_count", len(entries))
			}
			close(done)
			if err != nil {
				t.mu.Unlock()
				return nil, fmt.Errorf("load table %s: %w", t.name, err)
			}
			continue
		}

		// Join the in-flight load.
		done := t.inflight
		t.mu.Unlock()
		select {
		case <-done:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		t.mu.Lock()
		// Loop: either loaded now, or the load failed and we retry.
	}
}
