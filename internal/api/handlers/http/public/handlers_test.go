package public_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"autoClaims/internal/api/handlers/http/public"
	mock_public "autoClaims/internal/api/handlers/http/public/mocks"
	"autoClaims/internal/domain"
	"autoClaims/pkg/e"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func withParams(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func decodeJSON[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response: %v, body=%s", err, rr.Body.String())
	}
	return out
}

func newHandler(t *testing.T, maxBytes int64) (*public.Handler, *mock_public.MockSubmission) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	svc := mock_public.NewMockSubmission(ctrl)
	return public.NewHandler(newTestLogger(), svc, maxBytes), svc
}

func TestEligibility_OK(t *testing.T) {
	t.Parallel()

	h, svc := newHandler(t, 0)
	accident := time.Date(2025, 6, 14, 8, 0, 0, 0, time.UTC)

	svc.EXPECT().
		CheckEligibility(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, got time.Time) domain.EligibilityResponse {
			if !got.Equal(accident) {
				t.Errorf("accident time %v, want %v", got, accident)
			}
			return domain.EligibilityResponse{WithinDeadline: true, TimeRemaining: "21h 30m remaining"}
		}).
		Times(1)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/claims/eligibility?accident_datetime=2025-06-14T08:00:00Z", nil)
	rr := httptest.NewRecorder()
	h.Eligibility(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	got := decodeJSON[domain.EligibilityResponse](t, rr)
	if !got.WithinDeadline || got.TimeRemaining != "21h 30m remaining" {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestEligibility_BadTime(t *testing.T) {
	t.Parallel()

	h, _ := newHandler(t, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/claims/eligibility?accident_datetime=yesterday", nil)
	rr := httptest.NewRecorder()
	h.Eligibility(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestSessionCreate_Created(t *testing.T) {
	t.Parallel()

	h, svc := newHandler(t, 0)
	view := domain.SessionView{ID: uuid.New(), ClaimNumber: "CLM-01J", Step: domain.StepInfo}
	svc.EXPECT().StartSession(gomock.Any()).Return(view, nil).Times(1)

	rr := httptest.NewRecorder()
	h.SessionCreate(rr, httptest.NewRequest(http.MethodPost, "/api/v1/claims/sessions", nil))

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rr.Code)
	}
	if got := decodeJSON[domain.SessionView](t, rr); got.ClaimNumber != "CLM-01J" {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestSessionGet_InvalidID(t *testing.T) {
	t.Parallel()

	h, _ := newHandler(t, 0)

	req := withParams(httptest.NewRequest(http.MethodGet, "/api/v1/claims/sessions/nope", nil), "id", "nope")
	rr := httptest.NewRecorder()
	h.SessionGet(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestSessionGet_NotFound(t *testing.T) {
	t.Parallel()

	h, svc := newHandler(t, 0)
	id := uuid.New()
	svc.EXPECT().GetSession(gomock.Any(), id).Return(domain.SessionView{}, e.ErrNotFound).Times(1)

	req := withParams(httptest.NewRequest(http.MethodGet, "/", nil), "id", id.String())
	rr := httptest.NewRecorder()
	h.SessionGet(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestSessionUpdate_PassesPatch(t *testing.T) {
	t.Parallel()

	h, svc := newHandler(t, 0)
	id := uuid.New()

	svc.EXPECT().
		UpdateSession(gomock.Any(), id, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, p domain.FormPatch) (domain.SessionView, error) {
			if p.VehicleMake == nil || *p.VehicleMake != "Toyota" || p.UserName != nil {
				t.Errorf("unexpected patch: %+v", p)
			}
			return domain.SessionView{ID: id}, nil
		}).
		Times(1)

	req := withParams(httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"vehicle_make":"Toyota"}`)), "id", id.String())
	rr := httptest.NewRecorder()
	h.SessionUpdate(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
}

func TestSessionUpdate_InvalidEmail(t *testing.T) {
	t.Parallel()

	h, _ := newHandler(t, 0)
	id := uuid.New()

	req := withParams(httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"contact_email":"not-an-email"}`)), "id", id.String())
	rr := httptest.NewRecorder()
	h.SessionUpdate(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestSessionNext_BlockedIs422(t *testing.T) {
	t.Parallel()

	h, svc := newHandler(t, 0)
	id := uuid.New()
	svc.EXPECT().NextStep(gomock.Any(), id).Return(domain.SessionView{}, e.ErrIncompleteStep).Times(1)

	req := withParams(httptest.NewRequest(http.MethodPost, "/", nil), "id", id.String())
	rr := httptest.NewRecorder()
	h.SessionNext(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
}

func TestPhotoCapture_PassesFrame(t *testing.T) {
	t.Parallel()

	h, svc := newHandler(t, 0)
	id := uuid.New()
	at := time.Date(2025, 6, 14, 9, 0, 0, 0, time.UTC)

	svc.EXPECT().
		CapturePhoto(gomock.Any(), id, domain.AngleRear, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, _ domain.Angle, req domain.CaptureRequest) (domain.CaptureResponse, error) {
			if string(req.Data) != "frame" || req.ContentType != "image/jpeg" || !req.CapturedAt.Equal(at) {
				t.Errorf("unexpected capture request: %+v", req)
			}
			if req.DeviceInfo != "test-agent" {
				t.Errorf("unexpected device info %q", req.DeviceInfo)
			}
			return domain.CaptureResponse{NextStep: domain.StepPhotosLeft, PhotoPosition: 2}, nil
		}).
		Times(1)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("frame"))
	req.Header.Set("Content-Type", "image/jpeg")
	req.Header.Set("User-Agent", "test-agent")
	req.Header.Set(public.CapturedAtHeader, at.Format(time.RFC3339))
	req = withParams(req, "id", id.String(), "angle", "rear")
	rr := httptest.NewRecorder()
	h.PhotoCapture(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	if got := decodeJSON[domain.CaptureResponse](t, rr); got.NextStep != domain.StepPhotosLeft {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestPhotoCapture_TooLarge(t *testing.T) {
	t.Parallel()

	h, _ := newHandler(t, 8)
	id := uuid.New()

	req := withParams(httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789")), "id", id.String(), "angle", "front")
	rr := httptest.NewRecorder()
	h.PhotoCapture(rr, req)

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rr.Code)
	}
}

func TestPhotoCapture_UnknownAngle(t *testing.T) {
	t.Parallel()

	h, _ := newHandler(t, 0)
	id := uuid.New()

	req := withParams(httptest.NewRequest(http.MethodPost, "/", strings.NewReader("x")), "id", id.String(), "angle", "roof")
	rr := httptest.NewRecorder()
	h.PhotoCapture(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestPhotoCapture_CameraErrorMessage(t *testing.T) {
	t.Parallel()

	h, svc := newHandler(t, 0)
	id := uuid.New()
	svc.EXPECT().
		CapturePhoto(gomock.Any(), id, domain.AngleFront, gomock.Any()).
		Return(domain.CaptureResponse{}, e.ErrCameraNotFound).
		Times(1)

	req := withParams(httptest.NewRequest(http.MethodPost, "/", strings.NewReader("x")), "id", id.String(), "angle", "front")
	rr := httptest.NewRecorder()
	h.PhotoCapture(rr, req)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
	if got := decodeJSON[map[string]string](t, rr); got["error"] != "No camera found on this device." {
		t.Fatalf("unexpected error message %q", got["error"])
	}
}

func TestSessionSubmit_StoreUnavailable(t *testing.T) {
	t.Parallel()

	h, svc := newHandler(t, 0)
	id := uuid.New()
	svc.EXPECT().Submit(gomock.Any(), id).Return(domain.SubmitResponse{}, e.ErrStoreUnavailable).Times(1)

	req := withParams(httptest.NewRequest(http.MethodPost, "/", nil), "id", id.String())
	rr := httptest.NewRecorder()
	h.SessionSubmit(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rr.Code)
	}
}

func TestSessionSubmit_Created(t *testing.T) {
	t.Parallel()

	h, svc := newHandler(t, 0)
	id := uuid.New()
	resp := domain.SubmitResponse{ID: uuid.New(), ClaimNumber: "CLM-01J"}
	svc.EXPECT().Submit(gomock.Any(), id).Return(resp, nil).Times(1)

	req := withParams(httptest.NewRequest(http.MethodPost, "/", nil), "id", id.String())
	rr := httptest.NewRecorder()
	h.SessionSubmit(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rr.Code)
	}
	if got := decodeJSON[domain.SubmitResponse](t, rr); got != resp {
		t.Fatalf("unexpected body: %+v", got)
	}
}

func TestPhotoInstructions(t *testing.T) {
	t.Parallel()

	h, _ := newHandler(t, 0)

	req := withParams(httptest.NewRequest(http.MethodGet, "/", nil), "angle", "left")
	rr := httptest.NewRecorder()
	h.PhotoInstructions(rr, req)

	got := decodeJSON[domain.InstructionsResponse](t, rr)
	if got.Name != "Left" || got.Position != 3 || len(got.Instructions) != 4 {
		t.Fatalf("unexpected body: %+v", got)
	}
}
