package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"autoClaims/internal/domain"
)

func (s *Service) CheckEligibility(ctx context.Context, accident time.Time) domain.EligibilityResponse {
	return s.SubmissionService.CheckEligibility(ctx, accident)
}

func (s *Service) StartSession(ctx context.Context) (domain.SessionView, error) {
	return s.SubmissionService.StartSession(ctx)
}

func (s *Service) GetSession(ctx context.Context, id uuid.UUID) (domain.SessionView, error) {
	return s.SubmissionService.GetSession(ctx, id)
}

func (s *Service) UpdateSession(ctx context.Context, id uuid.UUID, patch domain.FormPatch) (domain.SessionView, error) {
	return s.SubmissionService.UpdateSession(ctx, id, patch)
}

func (s *Service) NextStep(ctx context.Context, id uuid.UUID) (domain.SessionView, error) {
	return s.SubmissionService.NextStep(ctx, id)
}

func (s *Service) PrevStep(ctx context.Context, id uuid.UUID) (domain.SessionView, error) {
	return s.SubmissionService.PrevStep(ctx, id)
}

func (s *Service) CapturePhoto(ctx context.Context, id uuid.UUID, angle domain.Angle, req domain.CaptureRequest) (domain.CaptureResponse, error) {
	return s.SubmissionService.CapturePhoto(ctx, id, angle, req)
}

func (s *Service) RetakePhoto(ctx context.Context, id uuid.UUID, angle domain.Angle) (domain.SessionView, error) {
	return s.SubmissionService.RetakePhoto(ctx, id, angle)
}

func (s *Service) Submit(ctx context.Context, id uuid.UUID) (domain.SubmitResponse, error) {
	return s.SubmissionService.Submit(ctx, id)
}
