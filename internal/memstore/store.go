// Package memstore implements an in-memory stand-in for the relational
// backend. A TableStore holds the raw rows; the Engine executes typed
// commands against it and can also accept positional-parameter query
// descriptors for callers that still speak the pool protocol.
package memstore

import (
	"sync"
	"time"
)

// Table names managed by the store.
const (
	TableUsers        = "users"
	TableThreads      = "threads"
	TableComments     = "comments"
	TableReplies      = "replies"
	TableCommentLikes = "comment_likes"
)

// Row is a single stored record. Values are loosely typed; timestamps under
// the "date" key are normalized to time.Time on insert.
type Row map[string]any

// TableStore holds named ordered collections of rows. All access goes through
// the mutex so the store stays safe under real parallelism.
type TableStore struct {
	mu     sync.RWMutex
	tables map[string][]Row
	now    func() time.Time
}

// NewTableStore returns an empty store with the five forum tables.
func NewTableStore() *TableStore {
	return &TableStore{
		tables: map[string][]Row{
			TableUsers:        {},
			TableThreads:      {},
			TableComments:     {},
			TableReplies:      {},
			TableCommentLikes: {},
		},
		now: time.Now,
	}
}

// Insert appends a row to the named table. Foreign-key existence is the
// caller's responsibility. A "date" field, if present, is normalized to a
// time.Time; values that do not parse to a valid instant become now.
func (s *TableStore) Insert(table string, row Row) {
	stored := cloneRow(row)
	if _, ok := stored["date"]; ok {
		stored["date"] = s.toTime(stored["date"])
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[table] = append(s.tables[table], stored)
}

// Scan returns copies of all rows matching keep, in insertion order.
// Mutating a returned row does not affect stored state.
func (s *TableStore) Scan(table string, keep func(Row) bool) []Row {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Row
	for _, row := range s.tables[table] {
		if keep == nil || keep(row) {
			out = append(out, cloneRow(row))
		}
	}
	return out
}

// UpdateFirst applies mutate to the first row matching match and reports how
// many rows were touched (0 or 1). A zero-row update is not an error.
func (s *TableStore) UpdateFirst(table string, match func(Row) bool, mutate func(Row)) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.tables[table] {
		if match(row) {
			mutate(row)
			return 1
		}
	}
	return 0
}

// DeleteWhere removes all rows matching the predicate and returns the count.
func (s *TableStore) DeleteWhere(table string, match func(Row) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.tables[table]
	kept := rows[:0]
	removed := 0
	for _, row := range rows {
		if match(row) {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	s.tables[table] = kept
	return removed
}

// Truncate clears the named table and returns the previous row count.
// Used by test teardown only; production writes never hard-delete.
func (s *TableStore) Truncate(table string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := len(s.tables[table])
	s.tables[table] = nil
	return count
}

// toTime canonicalizes a timestamp value. time.Time passes through, textual
// timestamps are parsed, and anything invalid or absent becomes now.
func (s *TableStore) toTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed
			}
		}
	}
	return s.now()
}

func cloneRow(row Row) Row {
	out := make(Row, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}
