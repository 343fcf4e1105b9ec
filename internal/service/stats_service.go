package service

import (
	"context"
	"log/slog"

	"autoClaims/internal/domain"
)

type statsService struct {
	repo   StatsRepository
	cache  StatsCache
	logger *slog.Logger
}

// NewStatsService serves counts from cache when possible. Cache failures
// fall through to the repository.
func NewStatsService(repo StatsRepository, cache StatsCache, logger *slog.Logger) StatsService {
	return &statsService{repo: repo, cache: cache, logger: logger}
}

func (s *statsService) GetStats(ctx context.Context) (*domain.ClaimStats, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx)
		if err != nil {
			s.logger.Warn("stats cache read failed", slog.Any("error", err))
		} else if cached != nil {
			return cached, nil
		}
	}

	stats, err := s.repo.Counts(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, stats); err != nil {
			s.logger.Warn("stats cache write failed", slog.Any("error", err))
		}
	}
	return &stats, nil
}
