// Package filecache is a concurrent path→contents map with mtime-based
// invalidation and idle eviction, grounded on the original httppo project's
// src/files.c and adapted from ryanbekhen-ngebut's internal/filecache.
package filecache

import (
	"sync"
	"time"

	"github.com/atmatm9182/httppo-go/internal/diskfile"
	"github.com/atmatm9182/httppo-go/internal/strmap"
)

// entry is one cached file. contents always has exactly len(contents)
// bytes — there is no separate size field in the Go port since a slice
// already carries its length.
type entry struct {
	contents []byte
	modTime  time.Time
	lastRead time.Time
}

// Cache is a mutex-guarded path→entry map. Every public method holds the
// mutex for its entire critical section, so readers and writers always
// observe a consistent snapshot.
type Cache struct {
	mu            sync.Mutex
	entries       *strmap.Map[*entry]
	idleThreshold time.Duration
	now           func() time.Time // overridable for eviction tests
}

// DefaultIdleThreshold is the duration an entry may go unread before a
// Sweep evicts it. The original C source compared against tv_nsec, which
// wraps every second and made the comparison meaningless; this is the
// documented, working resolution of that bug (2.5 seconds was the
// plausible intent behind the source's 2,500,000 nanosecond constant).
const DefaultIdleThreshold = 2500 * time.Millisecond

// New creates an empty Cache with the default idle threshold.
func New() *Cache {
	return NewWithIdleThreshold(DefaultIdleThreshold)
}

// NewWithIdleThreshold creates an empty Cache with a caller-chosen idle
// threshold, so tests can use a short one instead of waiting 2.5s.
func NewWithIdleThreshold(threshold time.Duration) *Cache {
	return &Cache{
		entries:       strmap.New[*entry](),
		idleThreshold: threshold,
		now:           time.Now,
	}
}

// Get returns a copy of path's contents, reading through to disk and
// revalidating against the source mtime as needed. The bool is false if
// the path does not exist or could not be read.
//
// The critical section ends here rather than extending across the
// caller's socket write — unlike the C source's borrow-until-next-sweep
// approach — because holding this mutex across a blocking network write
// would serialize every other request behind the slowest client.
func (c *Cache) Get(path string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries.Get(path)
	if !ok {
		data, mtime, err := diskfile.Read(path)
		if err != nil {
			return nil, false
		}
		e = &entry{contents: data, modTime: mtime, lastRead: c.now()}
		c.entries.Set(path, e)
		return cloneOf(e.contents), true
	}

	mtime, err := diskfile.ModTime(path)
	if err != nil {
		// Stat failed: report the path as absent but leave the existing
		// entry in place, matching the source's behavior of not evicting
		// on a failed stat. The idle sweep removes it later.
		return nil, false
	}

	if !mtime.Equal(e.modTime) {
		data, newMtime, err := diskfile.Read(path)
		if err != nil {
			return cloneOf(e.contents), true
		}
		e.contents = data
		e.modTime = newMtime
	}

	e.lastRead = c.now()
	return cloneOf(e.contents), true
}

// Sweep removes every entry that has gone unread for longer than the
// cache's idle threshold. It's meant to be invoked periodically by an
// external scheduler (a time.Ticker owned by the server), not by the
// cache itself, so tests can trigger it deterministically.
func (c *Cache) Sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	var stale []string
	c.entries.Each(func(path string, e *entry) {
		if now.Sub(e.lastRead) > c.idleThreshold {
			stale = append(stale, path)
		}
	})
	for _, path := range stale {
		c.entries.Delete(path)
	}
}

// Len returns the number of cached entries. Exposed for tests.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}

func cloneOf(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
