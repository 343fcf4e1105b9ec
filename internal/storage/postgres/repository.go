package postgres

import (
	"context"

	"github.com/google/uuid"

	"autoClaims/internal/domain"
)

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

func (p *Postgres) Claims() ClaimRepository { return p.Claim }
func (p *Postgres) Stats() StatsRepository  { return p.Stat }
