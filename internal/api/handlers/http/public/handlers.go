package public

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"autoClaims/internal/domain"
	"autoClaims/internal/middleware"
	"autoClaims/internal/photo"
	"autoClaims/pkg/e"
	"autoClaims/pkg/validator"
)

// CapturedAtHeader carries the client's capture time for a posted frame.
const CapturedAtHeader = "X-Captured-At"

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type Submission interface {
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

type Handler struct {
	logger        *slog.Logger
	Submission    Submission
	maxPhotoBytes int64
}

func NewHandler(logger *slog.Logger, submission Submission, maxPhotoBytes int64) *Handler {
	if maxPhotoBytes <= 0 {
		maxPhotoBytes = photo.MaxFileSize
	}
	return &Handler{
		logger:        logger,
		Submission:    submission,
		maxPhotoBytes: maxPhotoBytes,
	}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func (h *Handler) Eligibility(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("accident_datetime")
	accident, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		h.log(r).Warn("invalid accident_datetime", slog.String("value", raw))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "accident_datetime must be RFC3339"})
		return
	}

	h.writeJSON(w, http.StatusOK, h.Submission.CheckEligibility(r.Context(), accident))
}

func (h *Handler) SessionCreate(w http.ResponseWriter, r *http.Request) {
	view, err := h.Submission.StartSession(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.log(r).Info("session created", slog.String("session_id", view.ID.String()))
	h.writeJSON(w, http.StatusCreated, view)
}

func (h *Handler) SessionGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	view, err := h.Submission.GetSession(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) SessionUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var patch domain.FormPatch
	if err := middleware.BindJSON(r, &patch); err != nil {
		h.log(r).Warn("invalid session patch", slog.Any("error", err))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	view, err := h.Submission.UpdateSession(r.Context(), id, patch)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) SessionNext(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, h.Submission.NextStep)
}

func (h *Handler) SessionBack(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, r, h.Submission.PrevStep)
}

func (h *Handler) navigate(w http.ResponseWriter, r *http.Request, move func(context.Context, uuid.UUID) (domain.SessionView, error)) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	view, err := move(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

// PhotoCapture takes the raw frame as the request body.
func (h *Handler) PhotoCapture(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	angle, ok := h.angle(w, r)
	if !ok {
		return
	}

	capturedAt := time.Time{}
	if raw := r.Header.Get(CapturedAtHeader); raw != "" {
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			l.Warn("invalid capture time", slog.String("value", raw))
			h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": CapturedAtHeader + " must be RFC3339"})
			return
		}
		capturedAt = t
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxPhotoBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = fmt.Errorf("%w: %w", e.ErrPhotoTooLarge, err)
		} else {
			err = fmt.Errorf("read photo: %w: %w", e.ErrInvalidInput, err)
		}
		h.handleError(w, r, err)
		return
	}

	l.Debug("PhotoCapture",
		slog.String("session_id", id.String()),
		slog.String("angle", string(angle)),
		slog.Int("bytes", len(data)))

	resp, err := h.Submission.CapturePhoto(r.Context(), id, angle, domain.CaptureRequest{
		Data:        data,
		ContentType: r.Header.Get("Content-Type"),
		DeviceInfo:  r.UserAgent(),
		CapturedAt:  capturedAt,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) PhotoRetake(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}
	angle, ok := h.angle(w, r)
	if !ok {
		return
	}

	view, err := h.Submission.RetakePhoto(r.Context(), id, angle)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) SessionSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	resp, err := h.Submission.Submit(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.log(r).Info("claim submitted", slog.String("claim_number", resp.ClaimNumber))
	h.writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) PhotoInstructions(w http.ResponseWriter, r *http.Request) {
	angle, ok := h.angle(w, r)
	if !ok {
		return
	}

	h.writeJSON(w, http.StatusOK, domain.InstructionsResponse{
		Angle:        angle,
		Name:         photo.AngleName(angle),
		Position:     angle.Index() + 1,
		Instructions: photo.Instructions(angle),
	})
}

func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.log(r).Warn("invalid session id", slog.String("id", idStr))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session id"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) angle(w http.ResponseWriter, r *http.Request) (domain.Angle, bool) {
	raw := chi.URLParam(r, "angle")
	if err := validator.ValidateVar(raw, "required,angle"); err != nil {
		h.log(r).Warn("invalid angle", slog.String("angle", raw))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "angle must be front, rear, left or right"})
		return "", false
	}
	return domain.Angle(raw), true
}
