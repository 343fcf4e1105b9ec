package service

import (
	"context"
	"io"

	"github.com/google/uuid"

	"autoClaims/internal/domain"
)

func (s *Service) ListClaims(ctx context.Context, req domain.ListClaimsRequest) (domain.ListClaimsResponse, error) {
	return s.ReviewService.ListClaims(ctx, req)
}

func (s *Service) GetClaim(ctx context.Context, id uuid.UUID) (*domain.Claim, error) {
	return s.ReviewService.GetClaim(ctx, id)
}

func (s *Service) Approve(ctx context.Context, id uuid.UUID, notes string) (*domain.Claim, error) {
	return s.ReviewService.Approve(ctx, id, notes)
}

func (s *Service) Reject(ctx context.Context, id uuid.UUID, notes string) (*domain.Claim, error) {
	return s.ReviewService.Reject(ctx, id, notes)
}

func (s *Service) Dashboard(ctx context.Context, req domain.ListClaimsRequest) (domain.DashboardResponse, error) {
	return s.ReviewService.Dashboard(ctx, req)
}

func (s *Service) GetStats(ctx context.Context) (*domain.ClaimStats, error) {
	return s.StatsService.GetStats(ctx)
}

func (s *Service) ExportClaims(ctx context.Context, req domain.ListClaimsRequest, w io.Writer) (int, error) {
	return s.ExportService.ExportClaims(ctx, req, w)
}
