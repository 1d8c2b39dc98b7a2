// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package pricestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/apex/log"
)

const documentName = "prices.json"

// DefaultTTL is how long the CLI considers a cached price fresh unless the
// caller says otherwise.
const DefaultTTL = time.Hour

// Entry is one cached quote in the price document.
type Entry struct {
	LowestPrice float64 `json:"lowest_price"`
	MedianPrice float64 `json:"median_price,omitempty"`
	UpdatedAt   int64   `json:"updated_at"`
}

// Store holds the location of the price document and the freshness TTL.
// A TTL of zero (or an unresolvable path) disables the store: lookups always
// miss and writes are no-ops.
type Store struct {
	path string
	ttl  time.Duration
	mu   sync.Mutex
	now  func() time.Time
}

// New builds a Store for the given document path. An empty path resolves to
// the default location under the user cache directory.
func New(path string, ttl time.Duration) *Store {
	if path == "" {
		path, _ = DefaultPath()
	}
	return &Store{
		path: path,
		ttl:  ttl,
		now:  time.Now,
	}
}

// Dir resolves the base cache directory.
// Precedence:
//  1. SMPCTL_CACHE_DIR, if set and non-empty
//  2. os.UserCacheDir()/smpctl
//
// Returns ("", false) if a base cannot be resolved (treat as disabled).
func Dir() (string, bool) {
	if c, ok := os.LookupEnv("SMPCTL_CACHE_DIR"); ok && c != "" {
		return c, true
	}
	if dir, err := os.UserCacheDir(); err == nil && dir != "" {
		return filepath.Join(dir, "smpctl"), true
	}
	return "", false
}

// Enabled returns true unless SMPCTL_CACHE explicitly disables it ("0"/"false").
func Enabled() bool {
	enabled, _ := os.LookupEnv("SMPCTL_CACHE")
	return enabled == "" || (enabled != "0" && enabled != "false")
}

// EnsureBaseDir creates the base cache directory if caching is enabled and
// a base path can be resolved. Returns the path, whether it is usable, and an
// error if creation failed.
func EnsureBaseDir() (string, bool, error) {
	if !Enabled() {
		return "", false, nil
	}
	base, ok := Dir()
	if !ok {
		return "", false, nil
	}
	if err := os.MkdirAll(base, 0o755); err != nil { //nolint:mnd
		return base, false, fmt.Errorf("failed to create cache base directory: %w", err)
	}
	return base, true, nil
}

// DefaultPath returns where the price document lives by default.
func DefaultPath() (string, bool) {
	base, ok := Dir()
	if !ok {
		return "", false
	}
	return filepath.Join(base, documentName), true
}

// Active reports whether this store will actually cache anything.
func (s *Store) Active() bool {
	return s != nil && s.ttl > 0 && s.path != "" && Enabled()
}

// Path returns the document location, empty when unresolvable.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Lookup returns the entry for name only if it exists and is fresh, meaning
// its age is strictly less than the store TTL.
func (s *Store) Lookup(name string) (Entry, bool) {
	if !s.Active() {
		return Entry{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	entry, ok := doc[name]
	if !ok {
		return Entry{}, false
	}

	age := s.now().Unix() - entry.UpdatedAt
	if age < 0 || time.Duration(age)*time.Second >= s.ttl {
		log.Debugf("stale cache entry for %s (age %ds)", name, age)
		return Entry{}, false
	}

	log.Debugf("cache hit: %s", name)
	return entry, true
}

// Get returns the entry for name regardless of freshness.
func (s *Store) Get(name string) (Entry, bool) {
	if !s.Active() {
		return Entry{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.load()[name]
	return entry, ok
}

// Put stamps the entry and merges it into the document in one
// load-modify-store cycle. Write failures are logged, never returned.
func (s *Store) Put(name string, entry Entry) {
	if !s.Active() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	entry.UpdatedAt = s.now().Unix()
	doc[name] = entry

	if err := s.save(doc); err != nil {
		log.Warnf("failed to write price document: %v", err)
	}
}

// PutMany merges a batch of prices into the document in a single
// load-modify-store cycle, each entry stamped with the current time.
func (s *Store) PutMany(prices map[string]float64) {
	if !s.Active() || len(prices) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	now := s.now().Unix()
	for name, price := range prices {
		doc[name] = Entry{LowestPrice: price, UpdatedAt: now}
	}

	if err := s.save(doc); err != nil {
		log.Warnf("failed to write price document: %v", err)
	}
}

// Document returns the full price document. Missing or unreadable documents
// come back as an empty map.
func (s *Store) Document() map[string]Entry {
	if !s.Active() {
		return map[string]Entry{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()
}

// load reads the document from disk. A missing document is an empty store; a
// corrupt one is logged and treated the same way.
func (s *Store) load() map[string]Entry {
	doc := make(map[string]Entry)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnf("failed to read price document %s: %v", s.path, err)
		}
		return doc
	}

	if err := json.Unmarshal(data, &doc); err != nil {
		log.Warnf("corrupt price document %s, treating as empty: %v", s.path, err)
		return make(map[string]Entry)
	}

	return doc
}

// save replaces the document atomically via a temp file and rename.
func (s *Store) save(doc map[string]Entry) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode price document: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, os.FileMode(0o600)); err != nil { //nolint:mnd
		return fmt.Errorf("failed to write price document: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace price document: %w", err)
	}

	return nil
}
