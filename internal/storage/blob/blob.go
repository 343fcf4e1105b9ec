// Package blob stores claim photos in S3-compatible object storage.
package blob

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"autoClaims/internal/config"
	"autoClaims/pkg/e"
)

// Backend is the minimal object API a driver must provide.
type Backend interface {
	Exists(ctx context.Context, key string) (bool, error)
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Ping(ctx context.Context) error
}

type Store struct {
	backend Backend
	baseURL string
	logger  *slog.Logger
}

func NewStore(backend Backend, baseURL string, logger *slog.Logger) *Store {
	return &Store{
		backend: backend,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// New builds the configured driver and wraps it in a Store.
func New(ctx context.Context, cfg config.BlobConfig, logger *slog.Logger) (*Store, error) {
	var (
		backend Backend
		err     error
	)
	switch cfg.Driver {
	case config.BlobDriverS3:
		backend, err = NewS3Backend(ctx, cfg)
	default:
		backend, err = NewMinioBackend(ctx, cfg)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("Blob store ready", slog.String("driver", cfg.Driver), slog.String("bucket", cfg.Bucket))
	return NewStore(backend, PublicBaseURL(cfg), logger), nil
}

// Upload writes data under path and returns its public URL. Existing
// objects are never overwritten.
func (s *Store) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	const op = "blob.Store.Upload"

	path = strings.TrimLeft(path, "/")
	if path == "" || len(data) == 0 {
		return "", fmt.Errorf("%s: empty path or body: %w", op, e.ErrInvalidInput)
	}

	exists, err := s.backend.Exists(ctx, path)
	if err != nil {
		s.logger.Error("blob stat failed", slog.String("op", op), slog.String("path", path), slog.Any("error", err))
		return "", e.WrapError(ctx, op, err)
	}
	if exists {
		return "", fmt.Errorf("%s: %s already exists: %w", op, path, e.ErrConflict)
	}

	if err := s.backend.Put(ctx, path, data, contentType); err != nil {
		s.logger.Error("blob put failed", slog.String("op", op), slog.String("path", path), slog.Any("error", err))
		if errors.Is(err, e.ErrConflict) {
			return "", fmt.Errorf("%s: %w", op, err)
		}
		return "", e.WrapError(ctx, op, err)
	}

	return s.PublicURL(path), nil
}

func (s *Store) PublicURL(path string) string {
	segments := strings.Split(strings.TrimLeft(path, "/"), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return s.baseURL + "/" + strings.Join(segments, "/")
}

func (s *Store) Ping(ctx context.Context) error {
	return s.backend.Ping(ctx)
}

// PublicBaseURL is the configured public base, or the path-style bucket URL
// on the endpoint, or the virtual-hosted AWS URL when no endpoint is set.
func PublicBaseURL(cfg config.BlobConfig) string {
	if cfg.PublicBaseURL != "" {
		return strings.TrimRight(cfg.PublicBaseURL, "/")
	}
	if cfg.Endpoint == "" {
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
	host, secure := splitEndpoint(cfg.Endpoint, cfg.UseSSL)
	scheme := "http"
	if secure {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, host, cfg.Bucket)
}

// splitEndpoint strips a scheme from endpoint; an https scheme forces TLS.
func splitEndpoint(endpoint string, useSSL bool) (string, bool) {
	switch {
	case strings.HasPrefix(endpoint, "https://"):
		return strings.TrimRight(strings.TrimPrefix(endpoint, "https://"), "/"), true
	case strings.HasPrefix(endpoint, "http://"):
		return strings.TrimRight(strings.TrimPrefix(endpoint, "http://"), "/"), false
	}
	return strings.TrimRight(endpoint, "/"), useSSL
}
