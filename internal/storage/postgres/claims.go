package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"autoClaims/internal/domain"
	"autoClaims/pkg/e"
)

type ClaimRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewClaims(pool *pgxpool.Pool, logger *slog.Logger) *ClaimRepo {
	return &ClaimRepo{pool: pool, logger: logger}
}

const claimColumns = `
	id, claim_number, user_name, policy_number, contact_email, contact_phone,
	accident_datetime, submission_datetime, vehicle_plate, vehicle_make, vehicle_model,
	accident_description, photo_urls, status, COALESCE(admin_notes, ''), created_at, updated_at
`

func (p *ClaimRepo) Create(ctx context.Context, in domain.ClaimInsert) (*domain.Claim, error) {
	const op = "postgres.Claim.Create"

	if !in.Status.Valid() {
		return nil, fmt.Errorf("%s: status %q: %w", op, in.Status, e.ErrInvalidStatus)
	}

	now := time.Now().UTC()
	c := &domain.Claim{
		ID:                  uuid.New(),
		ClaimNumber:         in.ClaimNumber,
		UserName:            in.UserName,
		PolicyNumber:        in.PolicyNumber,
		ContactEmail:        in.ContactEmail,
		ContactPhone:        in.ContactPhone,
		AccidentDatetime:    in.AccidentDatetime.UTC(),
		SubmissionDatetime:  in.SubmissionDatetime.UTC(),
		VehiclePlate:        in.VehiclePlate,
		VehicleMake:         in.VehicleMake,
		VehicleModel:        in.VehicleModel,
		AccidentDescription: in.AccidentDescription,
		Photos:              in.Photos,
		Status:              in.Status,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if c.SubmissionDatetime.IsZero() {
		c.SubmissionDatetime = now
	}

	const query = `
		INSERT INTO claims (
			id, claim_number, user_name, policy_number, contact_email, contact_phone,
			accident_datetime, submission_datetime, vehicle_plate, vehicle_make, vehicle_model,
			accident_description, photo_urls, status, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := p.pool.Exec(ctx, query,
		c.ID,
		c.ClaimNumber,
		c.UserName,
		c.PolicyNumber,
		c.ContactEmail,
		c.ContactPhone,
		c.AccidentDatetime,
		c.SubmissionDatetime,
		c.VehiclePlate,
		c.VehicleMake,
		c.VehicleModel,
		c.AccidentDescription,
		c.Photos.URLs(),
		c.Status,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		p.logger.Error("db exec failed",
			slog.String("op", op),
			slog.String("claim_number", c.ClaimNumber),
			slog.Any("error", err),
		)
		return nil, e.WrapError(ctx, op, err)
	}

	return c, nil
}

func (p *ClaimRepo) ListAll(ctx context.Context) ([]*domain.Claim, error) {
	const op = "postgres.Claim.ListAll"

	query := `SELECT ` + claimColumns + ` FROM claims ORDER BY created_at DESC`
	return p.list(ctx, op, query)
}

func (p *ClaimRepo) ListByStatus(ctx context.Context, status domain.ClaimStatus) ([]*domain.Claim, error) {
	const op = "postgres.Claim.ListByStatus"

	if !status.Valid() {
		return nil, fmt.Errorf("%s: status %q: %w", op, status, e.ErrInvalidStatus)
	}

	query := `SELECT ` + claimColumns + ` FROM claims WHERE status = $1 ORDER BY created_at DESC`
	return p.list(ctx, op, query, status)
}

func (p *ClaimRepo) list(ctx context.Context, op, query string, args ...any) ([]*domain.Claim, error) {
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	claims := make([]*domain.Claim, 0)
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		claims = append(claims, c)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return claims, nil
}

func (p *ClaimRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Claim, error) {
	const op = "postgres.Claim.GetByID"

	query := `SELECT ` + claimColumns + ` FROM claims WHERE id = $1`

	c, err := scanClaim(p.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return nil, e.WrapError(ctx, op, err)
	}

	return c, nil
}

// UpdateStatus overwrites status and notes unconditionally; the last writer
// wins.
func (p *ClaimRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ClaimStatus, notes string) error {
	const op = "postgres.Claim.UpdateStatus"

	if !status.Valid() {
		return fmt.Errorf("%s: status %q: %w", op, status, e.ErrInvalidStatus)
	}

	const query = `
		UPDATE claims
		SET status      = $2,
			admin_notes = NULLIF($3, ''),
			updated_at  = $4
		WHERE id = $1
	`

	cmd, err := p.pool.Exec(ctx, query, id, status, notes, time.Now().UTC())
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return e.WrapError(ctx, op, err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, e.ErrNotFound)
	}

	return nil
}

func scanClaim(row pgx.Row) (*domain.Claim, error) {
	var (
		c    domain.Claim
		urls []string
	)
	err := row.Scan(
		&c.ID,
		&c.ClaimNumber,
		&c.UserName,
		&c.PolicyNumber,
		&c.ContactEmail,
		&c.ContactPhone,
		&c.AccidentDatetime,
		&c.SubmissionDatetime,
		&c.VehiclePlate,
		&c.VehicleMake,
		&c.VehicleModel,
		&c.AccidentDescription,
		&urls,
		&c.Status,
		&c.AdminNotes,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// rows written outside the submission flow may hold fewer urls
	photos, perr := domain.PhotoSetFromURLs(urls)
	if perr != nil {
		for i, a := range domain.Angles {
			if i < len(urls) {
				photos.Set(a, urls[i])
			}
		}
	}
	c.Photos = photos
	return &c, nil
}
