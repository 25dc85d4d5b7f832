package repo

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/kimmyna/Tripspark-Log/internal/domain"
)

// newStores builds both backends so contract tests can run against each.
func newStores(t *testing.T) map[string]Store {
	t.Helper()
	return map[string]Store{
		"memory": NewMemoryStore(),
		"gorm":   NewGormStore(newLogDB(t)),
	}
}

func sampleInputs() []domain.LogInput {
	rating := 5.0
	fb := "Loved the sushi and alley restaurants!"
	return []domain.LogInput{
		{UserID: testUserA, UserName: "Jane Doe", PlaceName: "Tokyo", Rating: &rating, Feedback: &fb, Action: "rated_place"},
		{UserID: testUserA, UserName: "Jane Doe", PlaceName: "Kyoto", Action: "visited_place"},
		{UserID: testUserB, UserName: "John Roe", PlaceName: "Tokyo", Action: "visited_place"},
		{UserID: testUserB, UserName: "John Roe", PlaceName: "Osaka", Action: "visited_place"},
	}
}

// TestStoreEquivalence drives the same operation sequence through both
// backends and asserts the observable responses match field for field,
// timestamps aside.
func TestStoreEquivalence(t *testing.T) {
	ctx := context.Background()
	stores := newStores(t)
	inputs := sampleInputs()

	type view struct {
		ids  []int64
		rows [][]domain.Log
	}
	views := make(map[string]view)

	for name, s := range stores {
		var v view
		for _, in := range inputs {
			l, err := s.Persist(ctx, in)
			if err != nil {
				t.Fatalf("%s: Persist: %v", name, err)
			}
			v.ids = append(v.ids, l.ID)
		}
		for _, f := range []Filter{
			{},
			{UserID: testUserA},
			{PlaceName: "Tokyo"},
			{UserID: testUserB, PlaceName: "Tokyo"},
		} {
			rows, err := s.List(ctx, f, 0, 100)
			if err != nil {
				t.Fatalf("%s: List %+v: %v", name, f, err)
			}
			v.rows = append(v.rows, rows)
		}
		views[name] = v
	}

	mem, grm := views["memory"], views["gorm"]
	for i := range mem.ids {
		if mem.ids[i] != grm.ids[i] {
			t.Fatalf("id sequences diverge at %d: memory=%d gorm=%d", i, mem.ids[i], grm.ids[i])
		}
	}
	for qi := range mem.rows {
		if len(mem.rows[qi]) != len(grm.rows[qi]) {
			t.Fatalf("query %d: result sizes diverge: %d vs %d", qi, len(mem.rows[qi]), len(grm.rows[qi]))
		}
		for ri := range mem.rows[qi] {
			m, g := mem.rows[qi][ri], grm.rows[qi][ri]
			if m.ID != g.ID || m.UserID != g.UserID || m.UserName != g.UserName ||
				m.PlaceName != g.PlaceName || m.Action != g.Action {
				t.Fatalf("query %d row %d diverges:\nmemory: %+v\ngorm:   %+v", qi, ri, mem.rows[qi][ri], grm.rows[qi][ri])
			}
			if (m.Rating == nil) != (g.Rating == nil) || (m.Rating != nil && *m.Rating != *g.Rating) {
				t.Fatalf("query %d row %d: rating diverges", qi, ri)
			}
			if (m.Feedback == nil) != (g.Feedback == nil) || (m.Feedback != nil && *m.Feedback != *g.Feedback) {
				t.Fatalf("query %d row %d: feedback diverges", qi, ri)
			}
		}
	}
}

// TestStoreContract_RoundTrip runs the submit→get round-trip property
// against each backend.
func TestStoreContract_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			in := sampleInputs()[0]
			persisted, err := s.Persist(ctx, in)
			if err != nil {
				t.Fatalf("Persist: %v", err)
			}
			got, err := s.GetByID(ctx, persisted.ID)
			if err != nil {
				t.Fatalf("GetByID: %v", err)
			}
			if got.UserID != in.UserID || got.UserName != in.UserName ||
				got.PlaceName != in.PlaceName || got.Action != in.Action {
				t.Fatalf("round-trip lost fields: %+v", got)
			}
			if got.Rating == nil || *got.Rating != *in.Rating {
				t.Fatalf("round-trip lost rating: %+v", got.Rating)
			}
			if got.ID == 0 || got.CreatedAt.IsZero() {
				t.Fatalf("identity not populated: %+v", got)
			}
		})
	}
}

// TestStoreContract_NotFound checks the not-found sentinel on both backends.
func TestStoreContract_NotFound(t *testing.T) {
	ctx := context.Background()
	for name, s := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.GetByID(ctx, 12345); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

// TestGormStore_ConcurrentPersist_DistinctIDs exercises id uniqueness under
// concurrency on the relational backend (file-backed, WAL + busy timeout).
func TestGormStore_ConcurrentPersist_DistinctIDs(t *testing.T) {
	db, err := OpenSQLite(t.TempDir() + "/concurrent.db")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	s := NewGormStore(db)

	const n = 100
	var wg sync.WaitGroup
	ids := make(chan int64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l, err := s.Persist(context.Background(), domain.LogInput{
				UserID: testUserA, UserName: "Jane Doe", PlaceName: "Tokyo", Action: "visited_place",
			})
			if err != nil {
				t.Errorf("Persist: %v", err)
				return
			}
			ids <- l.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool, n)
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id issued: %d", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Fatalf("expected %d distinct ids, got %d", n, len(seen))
	}
}
