// Package state persists the sync ledger: the last known modification
// time on each side, per matched base name, per directory pair.
//
// The ledger is a passive key-value store. It performs no filesystem
// comparison itself; the orchestrator reads it once at the start of a
// run, classifies against it, and flushes it once at the end.
//
// The absence of an entry means "never synced", which the orchestrator
// treats the same as "both sides are new".
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Entry records the last successful sync of one base name.
type Entry struct {
	// SourceMtime and TargetMtime are the modification times observed
	// on each side after the last successful sync, as Unix nanoseconds.
	// Zero means the side did not exist at that point.
	SourceMtime int64 `json:"source_mtime"`
	TargetMtime int64 `json:"target_mtime"`

	// LastAction is the action code of the last sync (e.g.
	// "create-target", "propagate-to-source", "delete-target").
	LastAction string `json:"last_action"`

	// LastSyncTime is when that action was taken.
	LastSyncTime time.Time `json:"last_sync_time"`
}

// Pair holds the ledger for one (source dir, target dir) tuple.
type Pair struct {
	// LastSync is when this pair was last synced.
	LastSync time.Time `json:"last_sync"`

	// Files maps base names to their sync entries.
	Files map[string]Entry `json:"files"`
}

// Store is the in-memory ledger, loaded from and saved to a JSON file
// keyed by "<sourceDir>|<targetDir>".
type Store struct {
	path  string
	pairs map[string]*Pair
}

// PairKey builds the ledger key for a directory pair. Paths are made
// absolute so the same pair is found regardless of invocation directory.
func PairKey(sourceDir, targetDir string) string {
	abs := func(p string) string {
		if a, err := filepath.Abs(p); err == nil {
			return a
		}
		return p
	}
	return abs(sourceDir) + "|" + abs(targetDir)
}

// Load reads the ledger from path.
//
// Load fails soft: a missing or corrupt file yields an empty ledger
// rather than an error, since the orchestrator can always reclassify
// every pair from first principles ("never synced").
func Load(path string) *Store {
	s := &Store{path: path, pairs: make(map[string]*Pair)}

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	if err := json.Unmarshal(data, &s.pairs); err != nil {
		// Corrupt ledger: start fresh. Every file becomes "new".
		s.pairs = make(map[string]*Pair)
	}
	return s
}

// Save writes the ledger back to its path atomically (temp file and
// rename), creating parent directories as needed.
func (s *Store) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(s.pairs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize state: %w", err)
	}
	data = append(data, '\n')

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

// Path returns the file path this store loads from and saves to.
func (s *Store) Path() string {
	return s.path
}

// Entry returns the stored entry for a base name within a pair.
// The second return is false when the name has never been synced.
func (s *Store) Entry(pairKey, base string) (Entry, bool) {
	pair, ok := s.pairs[pairKey]
	if !ok {
		return Entry{}, false
	}
	e, ok := pair.Files[base]
	return e, ok
}

// Put records a successful sync for a base name within a pair.
func (s *Store) Put(pairKey, base string, e Entry) {
	pair, ok := s.pairs[pairKey]
	if !ok {
		pair = &Pair{Files: make(map[string]Entry)}
		s.pairs[pairKey] = pair
	}
	pair.Files[base] = e
	pair.LastSync = e.LastSyncTime
}

// Remove drops the entry for a base name. Called when the name no longer
// exists on either side. Removing an absent entry is a no-op.
func (s *Store) Remove(pairKey, base string) {
	if pair, ok := s.pairs[pairKey]; ok {
		delete(pair.Files, base)
	}
}

// Bases returns the tracked base names within a pair in sorted order.
// The orchestrator unions these with the names observed on disk so that
// entries whose files vanished on both sides still get dropped.
func (s *Store) Bases(pairKey string) []string {
	pair, ok := s.pairs[pairKey]
	if !ok {
		return nil
	}
	bases := make([]string, 0, len(pair.Files))
	for base := range pair.Files {
		bases = append(bases, base)
	}
	sort.Strings(bases)
	return bases
}

// Entries returns the number of tracked base names within a pair.
func (s *Store) Entries(pairKey string) int {
	if pair, ok := s.pairs[pairKey]; ok {
		return len(pair.Files)
	}
	return 0
}
