// Package service implements the leaderboard aggregator. Ranking is
// computed in process so ties can preserve the previous snapshot's relative
// order, which Redis sorted sets cannot express.
package service

import (
	"context"
	"sort"

	"agentportal_backend/internal/leaderboard/domain"
	"agentportal_backend/internal/leaderboard/repository"
	"agentportal_backend/platform/apperr"
	"agentportal_backend/platform/logger"

	"github.com/google/uuid"
)

// AgentDirectory resolves display names. It may be nil.
type AgentDirectory interface {
	DisplayName(agentID uuid.UUID) string
}

// PerformanceSource provides the level and streak display fields.
// It may be nil, in which case both report zero.
type PerformanceSource interface {
	Progress(ctx context.Context, agentID uuid.UUID) (level, streak int)
}

type Service struct {
	repo        *repository.Repository
	directory   AgentDirectory
	performance PerformanceSource
	log         *logger.Logger
}

func New(repo *repository.Repository, directory AgentDirectory, performance PerformanceSource, log *logger.Logger) *Service {
	return &Service{repo: repo, directory: directory, performance: performance, log: log}
}

// Entry is one ranked leaderboard row.
type Entry struct {
	AgentID uuid.UUID `json:"agentId"`
	Name    string    `json:"name"`
	Level   int       `json:"level"`
	Streak  int       `json:"streak"`
	AP      float64   `json:"ap"`
	Rank    int       `json:"rank"`
	Trend   string    `json:"trend"`
}

// SetAP overwrites the caller's AP figure for one period.
func (s *Service) SetAP(ctx context.Context, agentID uuid.UUID, period string, amount float64) error {
	if !domain.IsKnownPeriod(period) {
		return apperr.Validation("unknown period: " + period)
	}
	if amount < 0 {
		return apperr.Validation("AP cannot be negative")
	}
	return s.repo.SetAP(ctx, agentID, period, amount)
}

// AddAP increments the caller's AP figure for one period. The resulting
// total must stay non-negative.
func (s *Service) AddAP(ctx context.Context, agentID uuid.UUID, period string, delta float64) (float64, error) {
	if !domain.IsKnownPeriod(period) {
		return 0, apperr.Validation("unknown period: " + period)
	}

	current, err := s.repo.AP(ctx, agentID, period)
	if err != nil {
		return 0, err
	}
	if current+delta < 0 {
		return 0, apperr.Validation("AP cannot go negative")
	}

	return s.repo.AddAP(ctx, agentID, period, delta)
}

// Rank returns all entries for one period sorted by AP descending. Ties
// keep the previous snapshot's relative order; trend compares each entry's
// position against that snapshot, defaulting to same for first appearances.
// The computed order is persisted as the next snapshot.
func (s *Service) Rank(ctx context.Context, period string) ([]Entry, error) {
	if !domain.IsKnownPeriod(period) {
		return nil, apperr.Validation("unknown period: " + period)
	}

	aps, err := s.repo.APs(ctx, period)
	if err != nil {
		return nil, err
	}
	prev, err := s.repo.PreviousOrder(ctx, period)
	if err != nil {
		return nil, err
	}
	registered, err := s.repo.Agents(ctx)
	if err != nil {
		return nil, err
	}

	// Pre-sort order: previous snapshot first, then newcomers in
	// registration order. Stable sort then keeps this order for ties.
	inPrev := make(map[uuid.UUID]int, len(prev))
	order := make([]uuid.UUID, 0, len(registered))
	for i, id := range prev {
		inPrev[id] = i
		order = append(order, id)
	}
	for _, id := range registered {
		if _, ok := inPrev[id]; !ok {
			order = append(order, id)
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return aps[order[i]] > aps[order[j]]
	})

	entries := make([]Entry, 0, len(order))
	for pos, id := range order {
		trend := domain.TrendSame
		if prevPos, ok := inPrev[id]; ok {
			switch {
			case pos < prevPos:
				trend = domain.TrendUp
			case pos > prevPos:
				trend = domain.TrendDown
			}
		}

		entry := Entry{
			AgentID: id,
			AP:      aps[id],
			Rank:    pos + 1,
			Trend:   trend,
		}
		if s.directory != nil {
			entry.Name = s.directory.DisplayName(id)
		}
		if s.performance != nil {
			entry.Level, entry.Streak = s.performance.Progress(ctx, id)
		}
		entries = append(entries, entry)
	}

	if err := s.repo.SaveOrder(ctx, period, order); err != nil {
		s.log.Error("persisting ranking snapshot failed", "error", err, "period", period)
	}

	return entries, nil
}
