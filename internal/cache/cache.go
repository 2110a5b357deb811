// Package cache holds resolved movie records between lookups.
//
// Eviction is deliberately FIFO by insertion order, not LRU: reading an
// entry does not refresh its position, so under churn the entries that
// survive are the most recently inserted, not the most recently used.
// Changing this to real LRU would silently change which titles stay warm.
package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/filmlens/filmlens/internal/provider"
)

// DefaultTTL and DefaultMaxEntries mirror the values the resolver shipped
// with: a day of freshness, a hundred titles.
const (
	DefaultTTL        = 24 * time.Hour
	DefaultMaxEntries = 100
)

type entry struct {
	key     string
	record  *provider.MovieRecord
	created time.Time
}

// Store is a bounded, time-expiring record store keyed by lowercased raw
// title. Expired entries are evicted lazily on read; there is no sweeper.
// All operations are safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	ttl      time.Duration
	capacity int
	order    *list.List // front = oldest insertion
	index    map[string]*list.Element

	now func() time.Time // test hook
}

// New creates a store with the given TTL and capacity. Non-positive
// arguments fall back to the defaults.
func New(ttl time.Duration, capacity int) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if capacity <= 0 {
		capacity = DefaultMaxEntries
	}
	return &Store{
		ttl:      ttl,
		capacity: capacity,
		order:    list.New(),
		index:    make(map[string]*list.Element),
		now:      time.Now,
	}
}

// Get returns the record stored under key if it exists and has not
// expired. Expired entries are removed on the spot and reported as a miss.
func (s *Store) Get(key string) (*provider.MovieRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.index[key]
	if !ok {
		return nil, false
	}

	ent := elem.Value.(*entry)
	if s.now().Sub(ent.created) >= s.ttl {
		s.order.Remove(elem)
		delete(s.index, key)
		return nil, false
	}

	return ent.record, true
}

// Set stores record under key. Overwriting a live entry refreshes its
// timestamp but keeps its insertion position. When the store grows past
// capacity the single oldest-inserted entry is evicted.
func (s *Store) Set(key string, record *provider.MovieRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if elem, ok := s.index[key]; ok {
		ent := elem.Value.(*entry)
		ent.record = record
		ent.created = s.now()
		return
	}

	elem := s.order.PushBack(&entry{key: key, record: record, created: s.now()})
	s.index[key] = elem

	if s.order.Len() > s.capacity {
		oldest := s.order.Front()
		s.order.Remove(oldest)
		delete(s.index, oldest.Value.(*entry).key)
	}
}

// Len returns the number of live entries, including any not yet lazily
// expired.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

// Clear drops every entry. Used on process-wide state resets.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order.Init()
	s.index = make(map[string]*list.Element)
}
