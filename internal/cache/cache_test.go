package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/filmlens/filmlens/internal/provider"
)

func record(title string) *provider.MovieRecord {
	return &provider.MovieRecord{Title: title, Response: "True"}
}

func TestGetReturnsStoredRecord(t *testing.T) {
	s := New(time.Hour, 10)
	want := record("Inception")
	s.Set("inception", want)

	got, ok := s.Get("inception")
	if !ok {
		t.Fatal("Get() miss, want hit")
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Get() record mismatch (-want +got):\n%s", diff)
	}
}

func TestGetMissOnUnknownKey(t *testing.T) {
	s := New(time.Hour, 10)
	if _, ok := s.Get("nope"); ok {
		t.Error("Get() hit for unknown key, want miss")
	}
}

func TestTTLExpiry(t *testing.T) {
	base := time.Now()
	now := base
	s := New(time.Hour, 10)
	s.now = func() time.Time { return now }

	s.Set("dune", record("Dune"))

	// Just under the TTL: still a hit.
	now = base.Add(time.Hour - time.Nanosecond)
	if _, ok := s.Get("dune"); !ok {
		t.Fatal("Get() miss just before TTL, want hit")
	}

	// Exactly at the TTL boundary: a miss, and the entry is evicted.
	now = base.Add(time.Hour)
	if _, ok := s.Get("dune"); ok {
		t.Fatal("Get() hit at TTL boundary, want miss")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d after lazy eviction, want 0", s.Len())
	}
}

func TestCapacityEvictsOldestInsertion(t *testing.T) {
	s := New(time.Hour, 3)
	for i := 1; i <= 3; i++ {
		s.Set(fmt.Sprintf("movie-%d", i), record(fmt.Sprintf("Movie %d", i)))
	}

	// Reading the oldest entry must NOT protect it: eviction is FIFO by
	// insertion, not LRU.
	if _, ok := s.Get("movie-1"); !ok {
		t.Fatal("Get(movie-1) miss, want hit")
	}

	s.Set("movie-4", record("Movie 4"))

	if _, ok := s.Get("movie-1"); ok {
		t.Error("movie-1 survived eviction, want it evicted as oldest insertion")
	}
	for _, key := range []string{"movie-2", "movie-3", "movie-4"} {
		if _, ok := s.Get(key); !ok {
			t.Errorf("Get(%s) miss, want hit", key)
		}
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
}

func TestOverwriteKeepsInsertionPosition(t *testing.T) {
	s := New(time.Hour, 2)
	s.Set("a", record("A"))
	s.Set("b", record("B"))

	// Overwriting "a" refreshes its payload but not its queue position,
	// so it is still the first to go.
	s.Set("a", record("A2"))
	s.Set("c", record("C"))

	if _, ok := s.Get("a"); ok {
		t.Error("a survived eviction after overwrite, want it evicted first")
	}
	if _, ok := s.Get("b"); !ok {
		t.Error("Get(b) miss, want hit")
	}
	if _, ok := s.Get("c"); !ok {
		t.Error("Get(c) miss, want hit")
	}
}

func TestClear(t *testing.T) {
	s := New(time.Hour, 10)
	s.Set("a", record("A"))
	s.Set("b", record("B"))

	s.Clear()

	if s.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", s.Len())
	}
	if _, ok := s.Get("a"); ok {
		t.Error("Get(a) hit after Clear, want miss")
	}
}
