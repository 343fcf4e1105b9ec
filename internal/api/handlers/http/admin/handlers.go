package admin

import (
	"bytes"
	"context"
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
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type Reviewer interface {
	ListClaims(ctx context.Context, req domain.ListClaimsRequest) (domain.ListClaimsResponse, error)
	GetClaim(ctx context.Context, id uuid.UUID) (*domain.Claim, error)
	Approve(ctx context.Context, id uuid.UUID, notes string) (*domain.Claim, error)
	Reject(ctx context.Context, id uuid.UUID, notes string) (*domain.Claim, error)
	Dashboard(ctx context.Context, req domain.ListClaimsRequest) (domain.DashboardResponse, error)
}

type StatsGetter interface {
	GetStats(ctx context.Context) (*domain.ClaimStats, error)
}

type Exporter interface {
	ExportClaims(ctx context.Context, req domain.ListClaimsRequest, w io.Writer) (int, error)
}

type Handler struct {
	logger   *slog.Logger
	Reviewer Reviewer
	Stats    StatsGetter
	Exporter Exporter
	now      func() time.Time
}

func NewHandler(logger *slog.Logger, reviewer Reviewer, stats StatsGetter, exporter Exporter) *Handler {
	return &Handler{
		logger:   logger,
		Reviewer: reviewer,
		Stats:    stats,
		Exporter: exporter,
		now:      time.Now,
	}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func listRequest(r *http.Request) domain.ListClaimsRequest {
	q := r.URL.Query()
	return domain.ListClaimsRequest{Status: q.Get("status"), Query: q.Get("q")}
}

func (h *Handler) ClaimList(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)
	l.Debug("ClaimList", slog.String("query", r.URL.RawQuery), slog.String("remote", r.RemoteAddr))

	resp, err := h.Reviewer.ListClaims(r.Context(), listRequest(r))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("claims listed", slog.String("status", resp.Status), slog.Int("total", resp.Total))
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) ClaimGet(w http.ResponseWriter, r *http.Request) {
	id, ok := h.claimID(w, r)
	if !ok {
		return
	}

	claim, err := h.Reviewer.GetClaim(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, claim)
}

func (h *Handler) ClaimApprove(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.Reviewer.Approve)
}

func (h *Handler) ClaimReject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, h.Reviewer.Reject)
}

func (h *Handler) review(w http.ResponseWriter, r *http.Request, decide func(context.Context, uuid.UUID, string) (*domain.Claim, error)) {
	l := h.log(r)

	id, ok := h.claimID(w, r)
	if !ok {
		return
	}

	var req domain.ReviewRequest
	if err := middleware.BindJSON(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	claim, err := decide(r.Context(), id, req.Notes)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("claim reviewed", slog.String("id", id.String()), slog.String("status", string(claim.Status)))
	h.writeJSON(w, http.StatusOK, claim)
}

func (h *Handler) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Stats.GetStats(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Reviewer.Dashboard(r.Context(), listRequest(r))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// ClaimExport buffers the workbook so a failed export still gets a JSON
// error response.
func (h *Handler) ClaimExport(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	var buf bytes.Buffer
	rows, err := h.Exporter.ExportClaims(r.Context(), listRequest(r), &buf)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	name := fmt.Sprintf("claims-%s.xlsx", h.now().UTC().Format("20060102-150405"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		l.Error("export write failed", slog.Any("error", err))
		return
	}

	l.Info("claims exported", slog.Int("rows", rows), slog.Int("bytes", buf.Len()))
}

func (h *Handler) claimID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		h.log(r).Warn("invalid id", slog.String("id", idStr), slog.String("error", err.Error()))
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}
