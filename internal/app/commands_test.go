package app_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"india_travel/internal/app"
	"india_travel/internal/catalog"
	"india_travel/internal/domain"
)

// ---- fakes ----

type fakeStore struct {
	mu      sync.Mutex
	rows    map[int]string
	failIDs map[string]bool
}

func (f *fakeStore) UpsertDestination(ctx context.Context, position int, d domain.Destination) error {
	if f.failIDs[d.ID] {
		return errors.New("write refused")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.rows == nil {
		f.rows = map[int]string{}
	}
	f.rows[position] = d.ID
	return nil
}

type staticSource []domain.Destination

func (s staticSource) Load(context.Context) ([]domain.Destination, error) { return s, nil }

// ---- tests ----

func TestSeed_WritesEveryRecordWithPosition(t *testing.T) {
	store := &fakeStore{}
	svc := app.NewSeedService(catalog.EmbeddedSource{}, store, 3)

	n, err := svc.Seed(context.Background())
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n != 10 || len(store.rows) != 10 {
		t.Fatalf("expected 10 rows, got n=%d rows=%d", n, len(store.rows))
	}
	if store.rows[0] != "ladakh" || store.rows[9] != "shimla" {
		t.Fatalf("positions not preserved: %v", store.rows)
	}
}

func TestSeed_CollectsFailures(t *testing.T) {
	src := staticSource{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	store := &fakeStore{failIDs: map[string]bool{"b": true}}
	svc := app.NewSeedService(src, store, 0)

	n, err := svc.Seed(context.Background())
	if err == nil {
		t.Fatal("expected error for failing record")
	}
	if n != 2 {
		t.Fatalf("expected 2 successful writes, got %d", n)
	}
	var got []string
	for _, id := range store.rows {
		got = append(got, id)
	}
	sort.Strings(got)
	if len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Fatalf("unexpected rows: %v", got)
	}
}
