package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/afriquefoot/matchlive/internal/domain/prematch"
)

type PrematchSource struct {
	mu      sync.RWMutex
	signals []prematch.Signal
}

func NewPrematchSource(signals []prematch.Signal) *PrematchSource {
	return &PrematchSource{signals: append([]prematch.Signal(nil), signals...)}
}

func (s *PrematchSource) ListSignals(_ context.Context) ([]prematch.Signal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := append([]prematch.Signal(nil), s.signals...)
	sort.Slice(out, func(i, j int) bool {
		return out[i].FirstSeen.After(out[j].FirstSeen)
	})
	return out, nil
}
