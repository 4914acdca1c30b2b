// Package tables provides the read-only lookup-table services consumed by
// table-backed validation rules (TUSS procedure codes, CBO occupation codes,
// reference-table domains).
//
// Tables load lazily: the first caller triggers the load and concurrent
// first-use callers share the single in-flight load instead of starting
// their own. Once successfully populated a table is never reinitialized,
// only explicitly reloaded (by the file watcher or the refresh scheduler).
//
// The engine does not care where table data lives; FileSource backs tables
// with YAML files on disk, with optional fsnotify hot-reload and cron-based
// periodic refresh.
package tables
