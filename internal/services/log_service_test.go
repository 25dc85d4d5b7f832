package services

import (
	"context"
	"errors"
	"testing"

	"github.com/kimmyna/Tripspark-Log/internal/repo"
)

func seededLogService(t *testing.T, n int) *LogService {
	t.Helper()
	store := repo.NewMemoryStore()
	for i := 0; i < n; i++ {
		if _, err := store.Persist(context.Background(), validInput()); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return &LogService{Store: store}
}

func TestLogService_List_Bounds(t *testing.T) {
	svc := seededLogService(t, 3)
	ctx := context.Background()

	cases := []struct {
		name          string
		offset, limit int
		ok            bool
	}{
		{"defaults", 0, DefaultLimit, true},
		{"min_limit", 0, 1, true},
		{"max_limit", 0, MaxLimit, true},
		{"zero_limit", 0, 0, false},
		{"limit_over_max", 0, MaxLimit + 1, false},
		{"negative_offset", -1, 10, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.List(ctx, repo.Filter{}, tc.offset, tc.limit)
			if tc.ok && err != nil {
				t.Fatalf("List(%d, %d): %v", tc.offset, tc.limit, err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidPage) {
				t.Fatalf("List(%d, %d): expected ErrInvalidPage, got %v", tc.offset, tc.limit, err)
			}
		})
	}
}

func TestLogService_List_EmptyPageIsNotNil(t *testing.T) {
	svc := seededLogService(t, 2)
	got, err := svc.List(context.Background(), repo.Filter{}, 10, 10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("offset past end: want empty non-nil slice, got %#v", got)
	}
}

func TestLogService_Get(t *testing.T) {
	svc := seededLogService(t, 1)

	got, err := svc.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != 1 {
		t.Fatalf("unexpected record: %+v", got)
	}

	if _, err := svc.Get(context.Background(), 999); !errors.Is(err, ErrLogNotFound) {
		t.Fatalf("expected ErrLogNotFound, got %v", err)
	}
}

func TestLogService_Stats(t *testing.T) {
	svc := seededLogService(t, 4)
	count, max, err := svc.Stats(context.Background(), repo.Filter{})
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if count != 4 || max == nil {
		t.Fatalf("stats = %d, %v", count, max)
	}
}
