// Package strmap is an open-addressed hash map over string keys with a
// pluggable hash function, used in place of the builtin map wherever the
// spec calls for an explicit hash table component (HTTP headers, the file
// cache index).
package strmap

// HashFunc hashes a key.
type HashFunc func(key string) uint64

// DefaultHash is the djb2 hash used by the original C implementation's
// hash table (src/hash.c), kept here so iteration order stays stable
// across a process run even though callers must not depend on it.
func DefaultHash(key string) uint64 {
	var h uint64 = 5381
	for i := 0; i < len(key); i++ {
		h = ((h << 5) + h) + uint64(key[i])
	}
	return h
}

type bucket[V any] struct {
	key   string
	value V
	hash  uint64
	used  bool
	tomb  bool // deleted, but probing must still skip over it
}

// Map is an open-addressed, linearly-probed hash map keyed by string.
// Not safe for concurrent use; a caller that shares one across goroutines
// (the file cache) provides its own locking, and the codec's header map is
// never shared.
type Map[V any] struct {
	buckets []bucket[V]
	count   int // used, including tombstones
	live    int // used, excluding tombstones
	mask    int
	hash    HashFunc
}

const initialCapacity = 16
const maxLoad = 0.75

// New creates an empty Map using the default hash function.
func New[V any]() *Map[V] {
	return NewWithHash[V](DefaultHash)
}

// NewWithHash creates an empty Map using a caller-supplied hash function.
func NewWithHash[V any](hash HashFunc) *Map[V] {
	return &Map[V]{
		buckets: make([]bucket[V], initialCapacity),
		mask:    initialCapacity - 1,
		hash:    hash,
	}
}

// Get returns the value for key and whether it was present.
func (m *Map[V]) Get(key string) (V, bool) {
	var zero V
	if m.live == 0 {
		return zero, false
	}
	h := m.hash(key)
	idx := int(h) & m.mask
	for i := 0; i < len(m.buckets); i++ {
		b := &m.buckets[idx]
		if !b.used {
			return zero, false
		}
		if !b.tomb && b.hash == h && b.key == key {
			return b.value, true
		}
		idx = (idx + 1) & m.mask
	}
	return zero, false
}

// Set inserts or overwrites the value for key. A repeated key replaces the
// previous value, matching the header-parsing rule that a later header
// with the same name wins.
func (m *Map[V]) Set(key string, value V) {
	if float64(m.count+1)/float64(len(m.buckets)) > maxLoad {
		m.grow()
	}

	h := m.hash(key)
	idx := int(h) & m.mask
	firstTomb := -1
	for i := 0; i < len(m.buckets); i++ {
		b := &m.buckets[idx]
		if !b.used {
			if firstTomb >= 0 {
				idx = firstTomb
				b = &m.buckets[idx]
			} else {
				m.count++
			}
			b.key, b.value, b.hash, b.used, b.tomb = key, value, h, true, false
			m.live++
			return
		}
		if b.tomb {
			if firstTomb < 0 {
				firstTomb = idx
			}
		} else if b.hash == h && b.key == key {
			b.value = value
			return
		}
		idx = (idx + 1) & m.mask
	}
}

// Delete removes key if present.
func (m *Map[V]) Delete(key string) {
	if m.live == 0 {
		return
	}
	h := m.hash(key)
	idx := int(h) & m.mask
	for i := 0; i < len(m.buckets); i++ {
		b := &m.buckets[idx]
		if !b.used {
			return
		}
		if !b.tomb && b.hash == h && b.key == key {
			b.tomb = true
			var zero V
			b.value = zero
			m.live--
			return
		}
		idx = (idx + 1) & m.mask
	}
}

// Len returns the number of live entries.
func (m *Map[V]) Len() int {
	return m.live
}

// Each calls fn for every live entry. Iteration order is bucket order,
// which is a function of hashing and insertion history — callers must
// not depend on it matching insertion order.
func (m *Map[V]) Each(fn func(key string, value V)) {
	for i := range m.buckets {
		b := &m.buckets[i]
		if b.used && !b.tomb {
			fn(b.key, b.value)
		}
	}
}

func (m *Map[V]) grow() {
	old := m.buckets
	newCap := len(old) * 2
	m.buckets = make([]bucket[V], newCap)
	m.mask = newCap - 1
	m.count = 0
	m.live = 0
	for _, b := range old {
		if b.used && !b.tomb {
			m.Set(b.key, b.value)
		}
	}
}
