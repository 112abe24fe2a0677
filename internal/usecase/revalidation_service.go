package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/afriquefoot/matchlive/internal/domain/commentary"
	"github.com/afriquefoot/matchlive/internal/platform/logging"
)

// PageRevalidator rebuilds one cached frontend path.
type PageRevalidator interface {
	RevalidatePath(ctx context.Context, path string) error
}

// RevalidationService fans page rebuilds out across every locale variant of
// the affected pages. Triggers are fire-and-forget: ingestion never waits on
// the frontend and a failed rebuild only costs freshness until the next TTL.
type RevalidationService struct {
	client  PageRevalidator
	workers *ants.Pool
	logger  *logging.Logger
	timeout time.Duration
}

func NewRevalidationService(client PageRevalidator, workerCount int, timeout time.Duration, logger *logging.Logger) (*RevalidationService, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if workerCount < 1 {
		workerCount = 1
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	var workers *ants.Pool
	if client != nil {
		var err error
		workers, err = ants.NewPool(workerCount, ants.WithNonblocking(false))
		if err != nil {
			return nil, fmt.Errorf("create revalidation worker pool: %w", err)
		}
	}

	return &RevalidationService{
		client:  client,
		workers: workers,
		logger:  logger,
		timeout: timeout,
	}, nil
}

func (s *RevalidationService) Close() {
	if s.workers != nil {
		s.workers.Release()
	}
}

// MatchPaths lists every frontend path that renders the given match: the
// live hub and the match page, once per locale.
func MatchPaths(matchID string) []string {
	matchID = strings.TrimSpace(matchID)
	locales := commentary.Locales()
	out := make([]string, 0, len(locales)*2)
	for _, locale := range locales {
		out = append(out, commentary.LocalePath(locale, "/can-2025/live"))
		if matchID != "" {
			out = append(out, commentary.LocalePath(locale, "/can-2025/match/"+matchID))
		}
	}
	return out
}

// TriggerMatch schedules a rebuild of all pages for a match and returns
// immediately. A trigger with no configured client is a no-op.
func (s *RevalidationService) TriggerMatch(ctx context.Context, matchID string) {
	if s == nil || s.client == nil || s.workers == nil {
		return
	}

	// The HTTP request that triggered this finishes before the rebuilds do,
	// so detach from its cancellation but keep trace correlation.
	detached := context.WithoutCancel(ctx)
	err := s.workers.Submit(func() {
		runCtx, cancel := context.WithTimeout(detached, s.timeout)
		defer cancel()
		if err := s.RevalidateMatch(runCtx, matchID); err != nil {
			s.logger.WarnContext(runCtx, "match revalidation incomplete", "match_id", matchID, "error", err)
		}
	})
	if err != nil {
		s.logger.WarnContext(ctx, "revalidation task rejected", "match_id", matchID, "error", err)
	}
}

// RevalidateMatch rebuilds all locale paths for a match, in parallel. One
// failed path does not stop the rest; the joined error reports every failure.
func (s *RevalidationService) RevalidateMatch(ctx context.Context, matchID string) error {
	if s == nil || s.client == nil {
		return nil
	}

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}

	return s.RevalidatePaths(ctx, MatchPaths(matchID))
}

func (s *RevalidationService) RevalidatePaths(ctx context.Context, paths []string) error {
	if s == nil || s.client == nil || len(paths) == 0 {
		return nil
	}

	runner := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(4)
	for _, path := range paths {
		path := path
		runner.Go(func(ctx context.Context) error {
			if err := s.client.RevalidatePath(ctx, path); err != nil {
				return fmt.Errorf("revalidate %s: %w", path, err)
			}
			return nil
		})
	}
	return runner.Wait()
}
