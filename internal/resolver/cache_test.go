package resolver

import (
	"context"
	"fmt"
	"testing"

	"github.com/nar-resolver/internal/nar"
)

func TestNarrowCacheClearsWhenOverLimit(t *testing.T) {
	var cache narrowCache

	for i := 0; i <= narrowCacheLimit; i++ {
		cache.put(fmt.Sprintf("key-%d", i), nil)
	}
	if got := cache.size(); got != narrowCacheLimit+1 {
		t.Fatalf("size = %d, want %d", got, narrowCacheLimit+1)
	}
	if _, ok := cache.get("key-0"); !ok {
		t.Fatal("key-0 should still be cached before the clear")
	}

	// The next insert finds the cache over its limit and clears everything
	// before adding.
	cache.put("overflow", []nar.StreetTriple{{Name: ns("MAIN")}})

	if _, ok := cache.get("key-0"); ok {
		t.Error("key-0 should be gone after the clear")
	}
	if got := cache.size(); got != 1 {
		t.Errorf("size after clear = %d, want 1", got)
	}
	if rows, ok := cache.get("overflow"); !ok || len(rows) != 1 {
		t.Errorf("overflow entry missing after clear: %v %v", rows, ok)
	}
}

type countingPlaceStore struct {
	Store
	calls  int
	places []string
}

func (s *countingPlaceStore) DistinctPlaces(ctx context.Context) ([]string, error) {
	s.calls++
	return s.places, nil
}

func TestPlaceCacheLoadsOnce(t *testing.T) {
	st := &countingPlaceStore{places: []string{"Montréal", "TORONTO"}}
	var cache placeCache

	for i := 0; i < 3; i++ {
		if err := cache.load(context.Background(), st); err != nil {
			t.Fatalf("load: %v", err)
		}
	}

	if st.calls != 1 {
		t.Errorf("DistinctPlaces called %d times, want 1", st.calls)
	}
	if len(cache.simple) != 2 || cache.simple[0] != "MONTREAL" {
		t.Errorf("simplified forms = %v", cache.simple)
	}
	if got := cache.original("MONTREAL"); got != "Montréal" {
		t.Errorf("original(MONTREAL) = %q", got)
	}
}
