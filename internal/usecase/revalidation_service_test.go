package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/afriquefoot/matchlive/internal/platform/logging"
)

type fakeRevalidator struct {
	mu      sync.Mutex
	paths   []string
	failing map[string]error
}

func (f *fakeRevalidator) RevalidatePath(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failing[path]; ok {
		return err
	}
	f.paths = append(f.paths, path)
	return nil
}

func (f *fakeRevalidator) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]string(nil), f.paths...)
	sort.Strings(out)
	return out
}

func TestMatchPaths_CoversEveryLocale(t *testing.T) {
	t.Parallel()

	paths := MatchPaths("can-2025-f1")

	want := []string{
		"/can-2025/live",
		"/can-2025/match/can-2025-f1",
		"/en/can-2025/live",
		"/en/can-2025/match/can-2025-f1",
		"/es/can-2025/live",
		"/es/can-2025/match/can-2025-f1",
		"/ar/can-2025/live",
		"/ar/can-2025/match/can-2025-f1",
	}

	if len(paths) != len(want) {
		t.Fatalf("expected %d paths, got %d: %v", len(want), len(paths), paths)
	}

	got := map[string]bool{}
	for _, path := range paths {
		got[path] = true
	}
	for _, path := range want {
		if !got[path] {
			t.Fatalf("missing path %s in %v", path, paths)
		}
	}
}

func TestRevalidateMatch_HitsEveryPath(t *testing.T) {
	t.Parallel()

	client := &fakeRevalidator{}
	service, err := NewRevalidationService(client, 2, time.Second, logging.NewNop())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	defer service.Close()

	if err := service.RevalidateMatch(context.Background(), "m1"); err != nil {
		t.Fatalf("revalidate match: %v", err)
	}

	if got := client.recorded(); len(got) != 8 {
		t.Fatalf("expected 8 revalidated paths, got %d: %v", len(got), got)
	}
}

func TestRevalidateMatch_OneFailureDoesNotStopTheRest(t *testing.T) {
	t.Parallel()

	boom := errors.New("rebuild failed")
	client := &fakeRevalidator{failing: map[string]error{"/en/can-2025/live": boom}}
	service, err := NewRevalidationService(client, 2, time.Second, logging.NewNop())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	defer service.Close()

	err = service.RevalidateMatch(context.Background(), "m1")
	if !errors.Is(err, boom) {
		t.Fatalf("expected the failure to surface, got %v", err)
	}
	if got := client.recorded(); len(got) != 7 {
		t.Fatalf("expected the other 7 paths to go through, got %d: %v", len(got), got)
	}
}

func TestRevalidateMatch_RequiresMatchID(t *testing.T) {
	t.Parallel()

	service, err := NewRevalidationService(&fakeRevalidator{}, 1, time.Second, logging.NewNop())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	defer service.Close()

	if err := service.RevalidateMatch(context.Background(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRevalidation_NilServiceIsSafe(t *testing.T) {
	t.Parallel()

	var service *RevalidationService
	service.TriggerMatch(context.Background(), "m1")
	if err := service.RevalidateMatch(context.Background(), "m1"); err != nil {
		t.Fatalf("nil service should no-op, got %v", err)
	}
}

func TestRevalidation_UnconfiguredClientIsNoop(t *testing.T) {
	t.Parallel()

	service, err := NewRevalidationService(nil, 4, time.Second, logging.NewNop())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	defer service.Close()

	service.TriggerMatch(context.Background(), "m1")
	if err := service.RevalidateMatch(context.Background(), "m1"); err != nil {
		t.Fatalf("expected no-op, got %v", err)
	}
}
