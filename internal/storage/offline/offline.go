// Package offline provides stand-ins used when the claim database or the
// photo store is not configured. Every operation fails with
// e.ErrStoreUnavailable so the wizard stays usable up to the point where it
// needs the missing store.
package offline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"autoClaims/internal/domain"
	"autoClaims/pkg/e"
)

type Claims struct {
	logger *slog.Logger
}

func NewClaims(logger *slog.Logger) *Claims {
	return &Claims{logger: logger}
}

func (c *Claims) unavailable(op string) error {
	c.logger.Warn("claim database not configured", slog.String("op", op))
	return fmt.Errorf("%s: %w", op, e.ErrStoreUnavailable)
}

func (c *Claims) Create(_ context.Context, _ domain.ClaimInsert) (*domain.Claim, error) {
	return nil, c.unavailable("offline.Claims.Create")
}

func (c *Claims) ListAll(_ context.Context) ([]*domain.Claim, error) {
	return nil, c.unavailable("offline.Claims.ListAll")
}

func (c *Claims) ListByStatus(_ context.Context, _ domain.ClaimStatus) ([]*domain.Claim, error) {
	return nil, c.unavailable("offline.Claims.ListByStatus")
}

func (c *Claims) GetByID(_ context.Context, _ uuid.UUID) (*domain.Claim, error) {
	return nil, c.unavailable("offline.Claims.GetByID")
}

func (c *Claims) UpdateStatus(_ context.Context, _ uuid.UUID, _ domain.ClaimStatus, _ string) error {
	return c.unavailable("offline.Claims.UpdateStatus")
}

func (c *Claims) Counts(_ context.Context) (domain.ClaimStats, error) {
	return domain.ClaimStats{}, c.unavailable("offline.Claims.Counts")
}

func (c *Claims) Ping(_ context.Context) error {
	return fmt.Errorf("postgres: %w", e.ErrStoreUnavailable)
}

type Photos struct {
	logger *slog.Logger
}

func NewPhotos(logger *slog.Logger) *Photos {
	return &Photos{logger: logger}
}

func (p *Photos) Upload(_ context.Context, path string, _ []byte, _ string) (string, error) {
	p.logger.Warn("photo store not configured", slog.String("path", path))
	return "", fmt.Errorf("offline.Photos.Upload: %w", e.ErrStoreUnavailable)
}

func (p *Photos) Ping(_ context.Context) error {
	return fmt.Errorf("blob: %w", e.ErrStoreUnavailable)
}
