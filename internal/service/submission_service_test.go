package service_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"autoClaims/internal/domain"
	"autoClaims/internal/eligibility"
	"autoClaims/internal/service"
	mock_service "autoClaims/internal/service/mocks"
	"autoClaims/internal/wizard"
	"autoClaims/pkg/e"
)

// --- helpers ---

var (
	accident = time.Date(2025, 6, 14, 8, 0, 0, 0, time.UTC)
	now      = accident.Add(2*time.Hour + 30*time.Minute)
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func str(s string) *string { return &s }

type submissionMocks struct {
	sessions *mock_service.MockSessionStore
	claims   *mock_service.MockClaimRepository
	uploader *mock_service.MockPhotoUploader
	cache    *mock_service.MockStatsCache
}

func newSubmission(t *testing.T, at time.Time) (service.SubmissionService, submissionMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := submissionMocks{
		sessions: mock_service.NewMockSessionStore(ctrl),
		claims:   mock_service.NewMockClaimRepository(ctrl),
		uploader: mock_service.NewMockPhotoUploader(ctrl),
		cache:    mock_service.NewMockStatsCache(ctrl),
	}
	eval := eligibility.NewEvaluator(0, func() time.Time { return at })
	svc := service.NewSubmissionService(service.SubmissionDeps{
		Flow:       wizard.New(eval, 0),
		Eval:       eval,
		Sessions:   m.sessions,
		Claims:     m.claims,
		Uploader:   m.uploader,
		StatsCache: m.cache,
		Logger:     newTestLogger(),
	})
	return svc, m
}

func filledSession(step domain.WizardStep) *domain.WizardSession {
	s := &domain.WizardSession{
		ID:          uuid.New(),
		ClaimNumber: "CLM-01JTEST",
		Step:        step,
	}
	s.Form.Apply(domain.FormPatch{
		UserName:            str("Amina Hassan"),
		ContactEmail:        str("amina@example.com"),
		ContactPhone:        str("+254700000000"),
		PolicyNumber:        str("POL-123"),
		AccidentDatetime:    &accident,
		VehiclePlate:        str("KDA 123A"),
		VehicleMake:         str("Toyota"),
		VehicleModel:        str("Corolla"),
		AccidentDescription: str("Rear-ended at a junction"),
	})
	return s
}

func withPhotos(s *domain.WizardSession, start time.Time, gap time.Duration) *domain.WizardSession {
	for i, a := range domain.Angles {
		s.Photos.Put(a, &domain.CapturedPhoto{
			Angle:     a,
			Timestamp: start.Add(time.Duration(i) * gap),
			URL:       "https://cdn.example.com/" + string(a) + ".jpg",
		})
	}
	return s
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x += 5 {
		img.Set(x, x%h, color.RGBA{G: 180, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

// --- eligibility ---

func TestSubmissionService_CheckEligibility(t *testing.T) {
	t.Parallel()

	svc, _ := newSubmission(t, now)

	got := svc.CheckEligibility(context.Background(), accident)
	if !got.WithinDeadline || got.TimeRemaining != "21h 30m remaining" {
		t.Fatalf("unexpected eligibility: %+v", got)
	}

	late := svc.CheckEligibility(context.Background(), now.Add(-25*time.Hour))
	if late.WithinDeadline || late.TimeRemaining != eligibility.DeadlinePassed {
		t.Fatalf("unexpected eligibility: %+v", late)
	}
}

// --- sessions ---

func TestSubmissionService_StartSession_Saves(t *testing.T) {
	t.Parallel()

	svc, m := newSubmission(t, now)

	var saved *domain.WizardSession
	m.sessions.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s *domain.WizardSession) error {
			saved = s
			return nil
		}).
		Times(1)

	v, err := svc.StartSession(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if v.Step != domain.StepInfo || v.StepNumber != 1 || v.StepCount != 8 {
		t.Fatalf("unexpected view: %+v", v)
	}
	if !strings.HasPrefix(v.ClaimNumber, wizard.ClaimNumberPrefix) || saved.ClaimNumber != v.ClaimNumber {
		t.Fatalf("claim number mismatch: %q vs %q", v.ClaimNumber, saved.ClaimNumber)
	}
}

func TestSubmissionService_NextStep_BlockedDoesNotSave(t *testing.T) {
	t.Parallel()

	svc, m := newSubmission(t, now)
	sess := &domain.WizardSession{ID: uuid.New(), Step: domain.StepInfo}

	m.sessions.EXPECT().Get(gomock.Any(), sess.ID).Return(sess, nil).Times(1)

	_, err := svc.NextStep(context.Background(), sess.ID)
	if !errors.Is(err, e.ErrIncompleteStep) {
		t.Fatalf("expected ErrIncompleteStep, got %v", err)
	}
	if sess.Step != domain.StepInfo {
		t.Fatalf("step moved to %s", sess.Step)
	}
}

func TestSubmissionService_NextStep_Advances(t *testing.T) {
	t.Parallel()

	svc, m := newSubmission(t, now)
	sess := filledSession(domain.StepInfo)

	m.sessions.EXPECT().Get(gomock.Any(), sess.ID).Return(sess, nil).Times(1)
	m.sessions.EXPECT().Save(gomock.Any(), sess).Return(nil).Times(1)

	v, err := svc.NextStep(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if v.Step != domain.StepVehicle {
		t.Fatalf("expected vehicle step, got %s", v.Step)
	}
}

func TestSubmissionService_GetSession_NotFound(t *testing.T) {
	t.Parallel()

	svc, m := newSubmission(t, now)
	id := uuid.New()

	m.sessions.EXPECT().Get(gomock.Any(), id).Return(nil, e.ErrNotFound).Times(1)

	if _, err := svc.GetSession(context.Background(), id); !errors.Is(err, e.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// --- photos ---

func TestSubmissionService_CapturePhoto_UploadsAndAdvances(t *testing.T) {
	t.Parallel()

	svc, m := newSubmission(t, now)
	sess := filledSession(domain.StepPhotosFront)

	m.sessions.EXPECT().Get(gomock.Any(), sess.ID).Return(sess, nil).Times(1)
	m.uploader.EXPECT().
		Upload(gomock.Any(), gomock.Any(), gomock.Any(), "image/jpeg").
		DoAndReturn(func(_ context.Context, path string, data []byte, _ string) (string, error) {
			if !strings.HasPrefix(path, "CLM-01JTEST/required/front-") {
				t.Errorf("unexpected path %q", path)
			}
			if len(data) == 0 {
				t.Errorf("empty upload")
			}
			return "https://cdn.example.com/" + path, nil
		}).
		Times(1)
	m.sessions.EXPECT().Save(gomock.Any(), sess).Return(nil).Times(1)

	resp, err := svc.CapturePhoto(context.Background(), sess.ID, domain.AngleFront, domain.CaptureRequest{
		Data:        pngBytes(t, 800, 600),
		ContentType: "image/png",
		DeviceInfo:  "Pixel 8",
		CapturedAt:  now,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.NextStep != domain.StepPhotosRear || sess.Step != domain.StepPhotosRear {
		t.Fatalf("expected rear step, got %s", resp.NextStep)
	}
	if resp.PhotoPosition != 1 || resp.AngleName != "Front" || resp.AdvanceAfter != 500 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if !strings.HasPrefix(resp.Preview, "data:image/jpeg;base64,") {
		t.Fatalf("unexpected preview prefix")
	}
	if p := sess.Photos.Get(domain.AngleFront); p == nil || p.Metadata.DeviceInfo != "Pixel 8" {
		t.Fatalf("photo not attached: %+v", p)
	}
}

func TestSubmissionService_CapturePhoto_WrongStep(t *testing.T) {
	t.Parallel()

	svc, m := newSubmission(t, now)
	sess := filledSession(domain.StepPhotosRear)

	m.sessions.EXPECT().Get(gomock.Any(), sess.ID).Return(sess, nil).Times(1)

	_, err := svc.CapturePhoto(context.Background(), sess.ID, domain.AngleFront, domain.CaptureRequest{Data: pngBytes(t, 800, 600)})
	if !errors.Is(err, e.ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
}

func TestSubmissionService_CapturePhoto_RejectsNonImage(t *testing.T) {
	t.Parallel()

	svc, m := newSubmission(t, now)
	sess := filledSession(domain.StepPhotosFront)

	m.sessions.EXPECT().Get(gomock.Any(), sess.ID).Return(sess, nil).Times(1)

	_, err := svc.CapturePhoto(context.Background(), sess.ID, domain.AngleFront, domain.CaptureRequest{
		Data:        []byte("%PDF-1.7 not a picture"),
		ContentType: "image/jpeg",
		CapturedAt:  now,
	})
	if !errors.Is(err, e.ErrNotAnImage) {
		t.Fatalf("expected ErrNotAnImage, got %v", err)
	}
}

func TestSubmissionService_CapturePhoto_UploadFailureKeepsStep(t *testing.T) {
	t.Parallel()

	svc, m := newSubmission(t, now)
	sess := filledSession(domain.StepPhotosFront)

	m.sessions.EXPECT().Get(gomock.Any(), sess.ID).Return(sess, nil).Times(1)
	m.uploader.EXPECT().
		Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", e.ErrStoreUnavailable).
		Times(1)

	_, err := svc.CapturePhoto(context.Background(), sess.ID, domain.AngleFront, domain.CaptureRequest{
		Data:       pngBytes(t, 800, 600),
		CapturedAt: now,
	})
	if !errors.Is(err, e.ErrUploadFailed) {
		t.Fatalf("expected ErrUploadFailed, got %v", err)
	}
	if sess.Step != domain.StepPhotosFront || sess.Photos.Get(domain.AngleFront) != nil {
		t.Fatalf("session changed after failed upload")
	}
}

func TestSubmissionService_CapturePhoto_FutureTimestampRejected(t *testing.T) {
	t.Parallel()

	svc, m := newSubmission(t, now)
	sess := filledSession(domain.StepPhotosFront)

	m.sessions.EXPECT().Get(gomock.Any(), sess.ID).Return(sess, nil).Times(1)

	_, err := svc.CapturePhoto(context.Background(), sess.ID, domain.AngleFront, domain.CaptureRequest{
		Data:       pngBytes(t, 800, 600),
		CapturedAt: now.Add(72 * time.Hour),
	})
	if !errors.Is(err, e.ErrPhotoStale) {
		t.Fatalf("expected ErrPhotoStale, got %v", err)
	}
	if sess.Photos.Get(domain.AngleFront) != nil {
		t.Fatalf("future-dated photo was attached")
	}
}

func TestSubmissionService_RetakePhoto_ReturnsToAngle(t *testing.T) {
	t.Parallel()

	svc, m := newSubmission(t, now)
	sess := withPhotos(filledSession(domain.StepReview), now.Add(-10*time.Minute), time.Minute)

	m.sessions.EXPECT().Get(gomock.Any(), sess.ID).Return(sess, nil).Times(1)
	m.sessions.EXPECT().Save(gomock.Any(), sess).Return(nil).Times(1)

	v, err := svc.RetakePhoto(context.Background(), sess.ID, domain.AngleLeft)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if v.Step != domain.StepPhotosLeft || sess.Photos.Get(domain.AngleLeft) != nil {
		t.Fatalf("unexpected state after retake: %s", v.Step)
	}
}

// --- submit ---

func TestSubmissionService_Submit_CreatesPendingClaimOnce(t *testing.T) {
	t.Parallel()

	svc, m := newSubmission(t, now)
	sess := withPhotos(filledSession(domain.StepReview), now.Add(-20*time.Minute), 5*time.Minute)
	claimID := uuid.New()

	m.sessions.EXPECT().Get(gomock.Any(), sess.ID).Return(sess, nil).Times(1)
	m.claims.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in domain.ClaimInsert) (*domain.Claim, error) {
			if in.Status != domain.ClaimPending {
				t.Errorf("expected pending status, got %s", in.Status)
			}
			if !in.Photos.Complete() || in.Photos.Front != "https://cdn.example.com/front.jpg" {
				t.Errorf("unexpected photos: %+v", in.Photos)
			}
			return &domain.Claim{ID: claimID, ClaimNumber: in.ClaimNumber, Status: in.Status}, nil
		}).
		Times(1)
	m.sessions.EXPECT().Save(gomock.Any(), sess).Return(nil).Times(1)
	m.cache.EXPECT().Invalidate(gomock.Any()).Return(nil).Times(1)

	resp, err := svc.Submit(context.Background(), sess.ID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.ID != claimID || resp.ClaimNumber != "CLM-01JTEST" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if !sess.Submitted || sess.ClaimID != claimID {
		t.Fatalf("session not marked submitted")
	}
}

func TestSubmissionService_Submit_PastDeadlineNeverCreates(t *testing.T) {
	t.Parallel()

	late := accident.Add(25 * time.Hour)
	svc, m := newSubmission(t, late)
	sess := withPhotos(filledSession(domain.StepReview), late.Add(-20*time.Minute), 5*time.Minute)

	m.sessions.EXPECT().Get(gomock.Any(), sess.ID).Return(sess, nil).Times(1)

	_, err := svc.Submit(context.Background(), sess.ID)
	if !errors.Is(err, e.ErrDeadlinePassed) {
		t.Fatalf("expected ErrDeadlinePassed, got %v", err)
	}
	if sess.Submitted {
		t.Fatalf("session must stay unsubmitted")
	}
}

func TestSubmissionService_Submit_StoreFailureLeavesSessionOnReview(t *testing.T) {
	t.Parallel()

	svc, m := newSubmission(t, now)
	sess := withPhotos(filledSession(domain.StepReview), now.Add(-20*time.Minute), 5*time.Minute)

	m.sessions.EXPECT().Get(gomock.Any(), sess.ID).Return(sess, nil).Times(1)
	m.claims.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, e.ErrStoreUnavailable).Times(1)

	_, err := svc.Submit(context.Background(), sess.ID)
	if !errors.Is(err, e.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if sess.Step != domain.StepReview || sess.Submitted {
		t.Fatalf("unexpected session state: %s submitted=%v", sess.Step, sess.Submitted)
	}
}
