package capture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"autoClaims/internal/domain"
	"autoClaims/internal/photo"
	"autoClaims/pkg/e"
)

var errReleased = errors.New("camera stream released")

type State string

const (
	StateAcquiring   State = "acquiring-camera"
	StateLivePreview State = "live-preview"
	StateCaptured    State = "captured"
	StateDone        State = "done"
	StateError       State = "error"
)

// Uploader stores an encoded photo and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
}

// Timestamped streams report when their current frame was taken. A zero
// time means unknown.
type Timestamped interface {
	CapturedAt() time.Time
}

// Compressor re-encodes a captured frame for upload.
type Compressor interface {
	Compress(b photo.Blob) (photo.Blob, error)
	Quality() int
}

type Config struct {
	ClaimNumber string
	Angle       domain.Angle
	Device      Device
	Uploader    Uploader
	Compressor  Compressor
	Constraints Constraints
	DeviceInfo  string
	Now         func() time.Time
	Logger      *slog.Logger
}

// Step is the capture state machine for one angle. A Step is not reused
// across angles; Close must be called when the caller is done with it.
type Step struct {
	mu    sync.Mutex
	cfg   Config
	state State
	lease *Lease
	photo *domain.CapturedPhoto
	err   error
}

func NewStep(cfg Config) *Step {
	if cfg.Compressor == nil {
		cfg.Compressor = photo.NewCompressor(0, 0, 0)
	}
	if cfg.Constraints == (Constraints{}) {
		cfg.Constraints = DefaultConstraints()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	cfg.Logger = cfg.Logger.With(
		slog.String("claim_number", cfg.ClaimNumber),
		slog.String("angle", string(cfg.Angle)),
	)
	return &Step{cfg: cfg, state: StateAcquiring}
}

func (s *Step) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err is the last failure, or nil after a successful transition.
func (s *Step) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Message is the user-facing text for Err.
func (s *Step) Message() string {
	return Message(s.Err())
}

func (s *Step) Photo() *domain.CapturedPhoto {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.photo
}

// Start acquires the camera and enters live-preview. On failure the step
// stays in error until Retry.
func (s *Step) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateAcquiring {
		return s.invalid("start")
	}
	return s.acquire(ctx)
}

func (s *Step) Retry(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateError {
		return s.invalid("retry")
	}
	return s.acquire(ctx)
}

// Capture runs frame, encode, size check, compress, metadata and upload.
// Any failure leaves the step in live-preview.
func (s *Step) Capture(ctx context.Context) (*domain.CapturedPhoto, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateLivePreview {
		return nil, s.invalid("capture")
	}

	p, err := s.capture(ctx)
	if err != nil {
		s.err = err
		s.cfg.Logger.Warn("photo capture failed", slog.Any("error", err))
		return nil, err
	}

	s.photo = p
	s.state = StateCaptured
	s.err = nil
	s.cfg.Logger.Info("photo captured", slog.String("url", p.URL), slog.Int64("size", p.Metadata.FileSize))
	return p, nil
}

// Retake discards the captured photo and re-acquires the camera.
func (s *Step) Retake(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateCaptured {
		return s.invalid("retake")
	}
	s.photo = nil
	s.lease.Release()
	s.lease = nil
	return s.acquire(ctx)
}

// Accept hands over the captured photo and releases the camera.
func (s *Step) Accept() (*domain.CapturedPhoto, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateCaptured {
		return nil, s.invalid("accept")
	}
	s.lease.Release()
	s.lease = nil
	s.state = StateDone
	return s.photo, nil
}

// Close releases the camera on any exit path. It is safe to call repeatedly.
func (s *Step) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lease.Release()
	s.lease = nil
}

func (s *Step) acquire(ctx context.Context) error {
	s.state = StateAcquiring

	lease, err := Acquire(ctx, s.cfg.Device, s.cfg.Constraints)
	if err != nil {
		s.state = StateError
		s.err = err
		s.cfg.Logger.Warn("camera acquisition failed", slog.Any("error", err))
		return err
	}

	s.lease = lease
	s.state = StateLivePreview
	s.err = nil
	return nil
}

func (s *Step) capture(ctx context.Context) (*domain.CapturedPhoto, error) {
	const op = "capture.Step.Capture"

	frame, err := s.lease.Frame(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: frame: %w", op, err)
	}

	takenAt := s.cfg.Now()
	if ts, ok := s.lease.Stream().(Timestamped); ok && !ts.CapturedAt().IsZero() {
		at := ts.CapturedAt()
		if !photo.IsRecent(at, takenAt) {
			return nil, fmt.Errorf("%s: taken at %s: %w", op, at.Format(time.RFC3339), e.ErrPhotoStale)
		}
		takenAt = at
	}

	raw, err := photo.EncodeJPEG(frame, s.cfg.Compressor.Quality())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !photo.FileSizeValid(raw) {
		return nil, fmt.Errorf("%s: %d bytes: %w", op, raw.Size(), e.ErrPhotoTooLarge)
	}

	compressed, err := s.cfg.Compressor.Compress(raw)
	if err != nil {
		s.cfg.Logger.Warn("compression failed, uploading original", slog.Any("error", err))
		compressed = raw
	}

	md := photo.ExtractMetadata(compressed, s.cfg.DeviceInfo, takenAt)

	url, err := s.cfg.Uploader.Upload(ctx, Path(s.cfg.ClaimNumber, s.cfg.Angle, takenAt), compressed.Data, compressed.ContentType)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, e.ErrUploadFailed, err)
	}

	return &domain.CapturedPhoto{
		Angle:       s.cfg.Angle,
		Metadata:    md,
		Timestamp:   takenAt,
		ContentType: compressed.ContentType,
		URL:         url,
		Data:        compressed.Data,
	}, nil
}

func (s *Step) invalid(action string) error {
	return fmt.Errorf("capture: cannot %s in state %s: %w", action, s.state, e.ErrInvalidState)
}

// Path is the blob key for a photo: {claim}/required/{angle}-{unixms}.jpg,
// or {claim}/optional/{unixms}.jpg when angle is empty.
func Path(claimNumber string, angle domain.Angle, at time.Time) string {
	folder, prefix := "optional", ""
	if angle != "" {
		folder, prefix = "required", string(angle)+"-"
	}
	return fmt.Sprintf("%s/%s/%s%d.jpg", claimNumber, folder, prefix, at.UnixMilli())
}
