package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"autoClaims/internal/domain"
	"autoClaims/pkg/e"
)

type reviewService struct {
	repo       ClaimRepository
	stats      StatsService
	statsCache StatsCache
	logger     *slog.Logger
}

func NewReviewService(repo ClaimRepository, stats StatsService, cache StatsCache, logger *slog.Logger) ReviewService {
	return &reviewService{repo: repo, stats: stats, statsCache: cache, logger: logger}
}

func (s *reviewService) ListClaims(ctx context.Context, req domain.ListClaimsRequest) (domain.ListClaimsResponse, error) {
	filter, ok := domain.ParseStatusFilter(req.Status)
	if !ok {
		return domain.ListClaimsResponse{}, fmt.Errorf("status filter %q: %w", req.Status, e.ErrInvalidStatus)
	}

	claims, err := listClaims(ctx, s.repo, filter, req.Query)
	if err != nil {
		return domain.ListClaimsResponse{}, err
	}

	return domain.ListClaimsResponse{
		Claims: claims,
		Status: filter.String(),
		Total:  len(claims),
	}, nil
}

// listClaims loads by status, then applies the search text in memory.
func listClaims(ctx context.Context, repo ClaimRepository, filter domain.StatusFilter, q string) ([]*domain.Claim, error) {
	var (
		claims []*domain.Claim
		err    error
	)
	if filter.All() {
		claims, err = repo.ListAll(ctx)
	} else {
		claims, err = repo.ListByStatus(ctx, filter.Status)
	}
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(q) == "" {
		return claims, nil
	}
	out := make([]*domain.Claim, 0, len(claims))
	for _, c := range claims {
		if c.Matches(q) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *reviewService) GetClaim(ctx context.Context, id uuid.UUID) (*domain.Claim, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *reviewService) Approve(ctx context.Context, id uuid.UUID, notes string) (*domain.Claim, error) {
	return s.review(ctx, id, domain.ClaimApproved, notes)
}

func (s *reviewService) Reject(ctx context.Context, id uuid.UUID, notes string) (*domain.Claim, error) {
	return s.review(ctx, id, domain.ClaimRejected, notes)
}

// review writes the decision and reloads the record. There is no version
// check; concurrent reviewers overwrite each other.
func (s *reviewService) review(ctx context.Context, id uuid.UUID, status domain.ClaimStatus, notes string) (*domain.Claim, error) {
	notes = strings.TrimSpace(notes)
	if notes == "" {
		return nil, e.ErrNotesRequired
	}

	if err := s.repo.UpdateStatus(ctx, id, status, notes); err != nil {
		s.logger.Error("claim status update failed",
			slog.String("claim_id", id.String()),
			slog.String("status", string(status)),
			slog.Any("error", err))
		return nil, err
	}

	if s.statsCache != nil {
		if err := s.statsCache.Invalidate(ctx); err != nil {
			s.logger.Warn("stats cache invalidate failed", slog.Any("error", err))
		}
	}

	s.logger.Info("claim reviewed", slog.String("claim_id", id.String()), slog.String("status", string(status)))

	return s.repo.GetByID(ctx, id)
}

// Dashboard loads the filtered list and the stats panel concurrently.
func (s *reviewService) Dashboard(ctx context.Context, req domain.ListClaimsRequest) (domain.DashboardResponse, error) {
	var out domain.DashboardResponse

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := s.ListClaims(gctx, req)
		if err != nil {
			return err
		}
		out.Claims = list
		return nil
	})
	g.Go(func() error {
		stats, err := s.stats.GetStats(gctx)
		if err != nil {
			return err
		}
		out.Stats = *stats
		return nil
	})

	if err := g.Wait(); err != nil {
		return domain.DashboardResponse{}, err
	}
	return out, nil
}
