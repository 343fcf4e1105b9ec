package postgres

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"autoClaims/internal/domain"
	"autoClaims/pkg/e"
)

type StatsRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewStats(pool *pgxpool.Pool, logger *slog.Logger) *StatsRepo {
	return &StatsRepo{pool: pool, logger: logger}
}

func (p *StatsRepo) Counts(ctx context.Context) (domain.ClaimStats, error) {
	const op = "postgres.Claim.Counts"

	const query = `
		SELECT COUNT(*),
			   COUNT(*) FILTER (WHERE status = 'pending'),
			   COUNT(*) FILTER (WHERE status = 'approved'),
			   COUNT(*) FILTER (WHERE status = 'rejected')
		FROM claims
	`

	var s domain.ClaimStats
	if err := p.pool.QueryRow(ctx, query).Scan(&s.Total, &s.Pending, &s.Approved, &s.Rejected); err != nil {
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err))
		return domain.ClaimStats{}, e.WrapError(ctx, op, err)
	}

	return s, nil
}
