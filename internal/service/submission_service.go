package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"autoClaims/internal/capture"
	"autoClaims/internal/domain"
	"autoClaims/internal/eligibility"
	"autoClaims/internal/photo"
	"autoClaims/internal/wizard"
	"autoClaims/pkg/e"
)

type submissionService struct {
	flow        *wizard.Flow
	eval        *eligibility.Evaluator
	sessions    SessionStore
	claims      ClaimRepository
	uploader    PhotoUploader
	statsCache  StatsCache
	compressor  *photo.Compressor
	constraints capture.Constraints
	maxBytes    int64
	logger      *slog.Logger
}

type SubmissionDeps struct {
	Flow       *wizard.Flow
	Eval       *eligibility.Evaluator
	Sessions   SessionStore
	Claims     ClaimRepository
	Uploader   PhotoUploader
	StatsCache StatsCache
	Compressor *photo.Compressor
	MaxBytes   int64
	Logger     *slog.Logger
}

func NewSubmissionService(d SubmissionDeps) SubmissionService {
	if d.Eval == nil {
		d.Eval = eligibility.NewEvaluator(0, nil)
	}
	if d.Flow == nil {
		d.Flow = wizard.New(d.Eval, 0)
	}
	if d.Compressor == nil {
		d.Compressor = photo.NewCompressor(0, 0, 0)
	}
	if d.MaxBytes <= 0 {
		d.MaxBytes = photo.MaxFileSize
	}
	return &submissionService{
		flow:        d.Flow,
		eval:        d.Eval,
		sessions:    d.Sessions,
		claims:      d.Claims,
		uploader:    d.Uploader,
		statsCache:  d.StatsCache,
		compressor:  d.Compressor,
		constraints: capture.DefaultConstraints(),
		maxBytes:    d.MaxBytes,
		logger:      d.Logger,
	}
}

func (s *submissionService) CheckEligibility(_ context.Context, accident time.Time) domain.EligibilityResponse {
	return domain.EligibilityResponse{
		WithinDeadline: s.eval.WithinDeadline(accident),
		TimeRemaining:  s.eval.TimeRemaining(accident),
	}
}

func (s *submissionService) StartSession(ctx context.Context) (domain.SessionView, error) {
	sess := s.flow.NewSession()
	if err := s.sessions.Save(ctx, sess); err != nil {
		s.logger.Error("session save failed", slog.Any("error", err))
		return domain.SessionView{}, err
	}

	s.logger.Info("wizard session started",
		slog.String("session_id", sess.ID.String()),
		slog.String("claim_number", sess.ClaimNumber))
	return s.flow.View(sess), nil
}

func (s *submissionService) GetSession(ctx context.Context, id uuid.UUID) (domain.SessionView, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return domain.SessionView{}, err
	}
	return s.flow.View(sess), nil
}

func (s *submissionService) UpdateSession(ctx context.Context, id uuid.UUID, patch domain.FormPatch) (domain.SessionView, error) {
	return s.mutate(ctx, id, func(sess *domain.WizardSession) error {
		return s.flow.Update(sess, patch)
	})
}

func (s *submissionService) NextStep(ctx context.Context, id uuid.UUID) (domain.SessionView, error) {
	return s.mutate(ctx, id, func(sess *domain.WizardSession) error {
		if err := s.flow.Next(sess); err != nil {
			s.logger.Info("forward navigation blocked",
				slog.String("session_id", id.String()),
				slog.String("step", string(sess.Step)),
				slog.Any("reason", err))
			return err
		}
		return nil
	})
}

func (s *submissionService) PrevStep(ctx context.Context, id uuid.UUID) (domain.SessionView, error) {
	return s.mutate(ctx, id, s.flow.Back)
}

func (s *submissionService) RetakePhoto(ctx context.Context, id uuid.UUID, angle domain.Angle) (domain.SessionView, error) {
	return s.mutate(ctx, id, func(sess *domain.WizardSession) error {
		return s.flow.DiscardPhoto(sess, angle)
	})
}

// CapturePhoto runs one capture step over the posted frame and attaches the
// uploaded photo to the session.
func (s *submissionService) CapturePhoto(ctx context.Context, id uuid.UUID, angle domain.Angle, req domain.CaptureRequest) (domain.CaptureResponse, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return domain.CaptureResponse{}, err
	}
	if sess.Submitted || sess.Step != domain.PhotoStep(angle) {
		return domain.CaptureResponse{}, fmt.Errorf("capture %s on step %s: %w", angle, sess.Step, e.ErrInvalidState)
	}

	if int64(len(req.Data)) > s.maxBytes {
		return domain.CaptureResponse{}, fmt.Errorf("%d bytes: %w", len(req.Data), e.ErrPhotoTooLarge)
	}
	if !photo.IsImageType(photo.Sniff(photo.Blob{Data: req.Data, ContentType: req.ContentType})) {
		return domain.CaptureResponse{}, e.ErrNotAnImage
	}

	step := capture.NewStep(capture.Config{
		ClaimNumber: sess.ClaimNumber,
		Angle:       angle,
		Device:      capture.NewFrameDevice(req.Data, req.CapturedAt),
		Uploader:    s.uploader,
		Compressor:  s.compressor,
		Constraints: s.constraints,
		DeviceInfo:  req.DeviceInfo,
		Now:         s.eval.Now,
		Logger:      s.logger,
	})
	defer step.Close()

	if err := step.Start(ctx); err != nil {
		return domain.CaptureResponse{}, err
	}
	if _, err := step.Capture(ctx); err != nil {
		return domain.CaptureResponse{}, err
	}
	p, err := step.Accept()
	if err != nil {
		return domain.CaptureResponse{}, err
	}

	next, err := s.flow.AttachPhoto(sess, p)
	if err != nil {
		return domain.CaptureResponse{}, err
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		s.logger.Error("session save failed after upload",
			slog.String("session_id", id.String()),
			slog.String("url", p.URL),
			slog.Any("error", err))
		return domain.CaptureResponse{}, err
	}

	s.logger.Info(photo.AngleName(angle)+" photo captured",
		slog.String("session_id", id.String()),
		slog.String("next_step", string(next)))

	return domain.CaptureResponse{
		Photo:         p,
		Preview:       p.DataURL(),
		NextStep:      next,
		AdvanceAfter:  wizard.AutoAdvanceDelay.Milliseconds(),
		Instructions:  photo.Instructions(angle),
		AngleName:     photo.AngleName(angle),
		PhotoPosition: angle.Index() + 1,
	}, nil
}

func (s *submissionService) Submit(ctx context.Context, id uuid.UUID) (domain.SubmitResponse, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return domain.SubmitResponse{}, err
	}

	claim, err := s.flow.Submit(ctx, sess, s.claims)
	if err != nil {
		s.logger.Warn("claim submission failed",
			slog.String("session_id", id.String()),
			slog.String("claim_number", sess.ClaimNumber),
			slog.Any("error", err))
		return domain.SubmitResponse{}, err
	}

	if err := s.sessions.Save(ctx, sess); err != nil {
		s.logger.Error("session save failed after submit", slog.String("claim_id", claim.ID.String()), slog.Any("error", err))
	}
	if s.statsCache != nil {
		if err := s.statsCache.Invalidate(ctx); err != nil {
			s.logger.Warn("stats cache invalidate failed", slog.Any("error", err))
		}
	}

	s.logger.Info("claim submitted",
		slog.String("claim_id", claim.ID.String()),
		slog.String("claim_number", claim.ClaimNumber))

	return domain.SubmitResponse{ID: claim.ID, ClaimNumber: claim.ClaimNumber}, nil
}

func (s *submissionService) mutate(ctx context.Context, id uuid.UUID, fn func(*domain.WizardSession) error) (domain.SessionView, error) {
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return domain.SessionView{}, err
	}
	if err := fn(sess); err != nil {
		return domain.SessionView{}, err
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		s.logger.Error("session save failed", slog.String("session_id", id.String()), slog.Any("error", err))
		return domain.SessionView{}, err
	}
	return s.flow.View(sess), nil
}
