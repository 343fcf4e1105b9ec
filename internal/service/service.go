package service

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"autoClaims/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go

// Claimant-facing wizard use cases
type SubmissionService interface {
	CheckEligibility(ctx context.Context, accident time.Time) domain.EligibilityResponse
	StartSession(ctx context.Context) (domain.SessionView, error)
	GetSession(ctx context.Context, id uuid.UUID) (domain.SessionView, error)
	UpdateSession(ctx context.Context, id uuid.UUID, patch domain.FormPatch) (domain.SessionView, error)
	NextStep(ctx context.Context, id uuid.UUID) (domain.SessionView, error)
	PrevStep(ctx context.Context, id uuid.UUID) (domain.SessionView, error)
	CapturePhoto(ctx context.Context, id uuid.UUID, angle domain.Angle, req domain.CaptureRequest) (domain.CaptureResponse, error)
	RetakePhoto(ctx context.Context, id uuid.UUID, angle domain.Angle) (domain.SessionView, error)
	Submit(ctx context.Context, id uuid.UUID) (domain.SubmitResponse, error)
}

// Reviewer use cases
type ReviewService interface {
	ListClaims(ctx context.Context, req domain.ListClaimsRequest) (domain.ListClaimsResponse, error)
	GetClaim(ctx context.Context, id uuid.UUID) (*domain.Claim, error)
	Approve(ctx context.Context, id uuid.UUID, notes string) (*domain.Claim, error)
	Reject(ctx context.Context, id uuid.UUID, notes string) (*domain.Claim, error)
	Dashboard(ctx context.Context, req domain.ListClaimsRequest) (domain.DashboardResponse, error)
}

type StatsService interface {
	GetStats(ctx context.Context) (*domain.ClaimStats, error)
}

type ExportService interface {
	ExportClaims(ctx context.Context, req domain.ListClaimsRequest, w io.Writer) (int, error)
}

type ClaimRepository interface {
	Create(ctx context.Context, in domain.ClaimInsert) (*domain.Claim, error)
	ListAll(ctx context.Context) ([]*domain.Claim, error)
	ListByStatus(ctx context.Context, status domain.ClaimStatus) ([]*domain.Claim, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Claim, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ClaimStatus, notes string) error
}

type StatsRepository interface {
	Counts(ctx context.Context) (domain.ClaimStats, error)
}

type SessionStore interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.WizardSession, error)
	Save(ctx context.Context, s *domain.WizardSession) error
}

type StatsCache interface {
	Get(ctx context.Context) (*domain.ClaimStats, error)
	Set(ctx context.Context, stats domain.ClaimStats) error
	Invalidate(ctx context.Context) error
}

type PhotoUploader interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
}

type Service struct {
	SubmissionService SubmissionService
	ReviewService     ReviewService
	StatsService      StatsService
	ExportService     ExportService
}

func NewService(
	submissionService SubmissionService,
	reviewService ReviewService,
	statsService StatsService,
	exportService ExportService,
) *Service {
	return &Service{
		SubmissionService: submissionService,
		ReviewService:     reviewService,
		StatsService:      statsService,
		ExportService:     exportService,
	}
}
