// Package cache holds the loaded reference list in memory and in a
// persisted JSON file, so repeated picker requests do not re-run the
// expensive extraction.
package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/matsen/zotpick/internal/reference"
	"github.com/natefinch/atomic"
)

// CacheFile is the persisted cache file name under the cache directory.
const CacheFile = "references.json"

// ErrLoadInProgress is returned when a load is requested while another
// one is already running. It is informational: the caller should wait
// for the running load rather than treat this as a failure.
var ErrLoadInProgress = errors.New("reference load already in progress")

// Loader produces the full reference list from the source of truth.
type Loader interface {
	LoadAll() ([]reference.Reference, error)
}

// entry is the persisted cache schema.
type entry struct {
	Timestamp  int64                 `json:"timestamp"`
	References []reference.Reference `json:"references"`
}

// Cache layers an in-memory reference list over a persisted snapshot
// file over the extractor. The whole list is always replaced
// atomically; there are no partial updates.
type Cache struct {
	loader Loader
	path   string
	ttl    time.Duration

	mu       sync.Mutex
	loading  bool
	loadedAt time.Time
	refs     []reference.Reference
}

// New creates a cache persisting to path with the given expiration.
func New(loader Loader, path string, ttl time.Duration) *Cache {
	return &Cache{loader: loader, path: path, ttl: ttl}
}

// GetOrLoad returns the reference list, loading it if needed.
//
// Unless force is set, a fresh in-memory copy is served directly and a
// fresh persisted copy is adopted without touching the source. Otherwise
// the loader runs; at most one load is in flight at a time, and a
// request arriving during a load gets ErrLoadInProgress. A failed load
// leaves any previous cache entry intact.
func (c *Cache) GetOrLoad(force bool) ([]reference.Reference, error) {
	c.mu.Lock()

	if !force {
		if c.refs != nil && time.Since(c.loadedAt) < c.ttl {
			refs := c.refs
			c.mu.Unlock()
			return refs, nil
		}
		if e, ok := c.readPersisted(); ok {
			c.refs = e.References
			c.loadedAt = time.Unix(e.Timestamp, 0)
			refs := c.refs
			c.mu.Unlock()
			return refs, nil
		}
	}

	if c.loading {
		c.mu.Unlock()
		return nil, ErrLoadInProgress
	}
	c.loading = true
	c.mu.Unlock()

	refs, err := c.loader.LoadAll()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		return nil, err
	}

	c.refs = refs
	c.loadedAt = time.Now()
	c.writePersisted()

	return refs, nil
}

// ByKey looks up a reference by its stable item key, loading the list
// if needed. Returns nil when no reference has the key.
func (c *Cache) ByKey(key string) (*reference.Reference, error) {
	refs, err := c.GetOrLoad(false)
	if err != nil {
		return nil, err
	}
	for i := range refs {
		if refs[i].Key == key {
			return &refs[i], nil
		}
	}
	return nil, nil
}

// IsLoading reports whether a load is currently in flight.
func (c *Cache) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// LoadedAt returns the timestamp of the current in-memory entry, or the
// zero time when nothing is loaded.
func (c *Cache) LoadedAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadedAt
}

// readPersisted reads the persisted cache file if it exists, parses and
// is still within the expiration window. Any read or decode failure is
// a cache miss, never an error: the source of truth is re-queryable.
func (c *Cache) readPersisted() (entry, bool) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return entry{}, false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return entry{}, false
	}
	if time.Since(time.Unix(e.Timestamp, 0)) >= c.ttl {
		return entry{}, false
	}

	return e, true
}

// writePersisted stores the in-memory entry durably. Write failures are
// non-fatal: the in-memory copy keeps serving and the next load retries
// the write. Must be called with c.mu held.
func (c *Cache) writePersisted() {
	e := entry{Timestamp: c.loadedAt.Unix(), References: c.refs}
	data, err := json.Marshal(e)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: encoding reference cache: %v\n", err)
		return
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "warning: writing reference cache: %v\n", err)
		return
	}
	if err := atomic.WriteFile(c.path, bytes.NewReader(data)); err != nil {
		fmt.Fprintf(os.Stderr, "warning: writing reference cache: %v\n", err)
	}
}
