package pages

import (
	"log/slog"
	"net/http"
	"strings"

	"autoClaims/internal/domain"
	"autoClaims/internal/photo"
	"autoClaims/internal/render"
	"autoClaims/internal/wizard"
)

type Handler struct {
	logger        *slog.Logger
	renderer      *render.Renderer
	deadlineHours int
}

func NewHandler(logger *slog.Logger, renderer *render.Renderer, deadlineHours int) *Handler {
	return &Handler{logger: logger, renderer: renderer, deadlineHours: deadlineHours}
}

type landingData struct {
	Title         string
	DeadlineHours int
	Angles        []string
}

func (h *Handler) Landing(w http.ResponseWriter, _ *http.Request) {
	angles := make([]string, 0, len(domain.Angles))
	for _, a := range domain.Angles {
		angles = append(angles, photo.AngleName(a))
	}

	h.renderer.Render(w, "landing.html", landingData{
		Title:         "Auto Insurance Claims",
		DeadlineHours: h.deadlineHours,
		Angles:        angles,
	})
}

// ClaimSuccess shows the confirmation; without a claim_number the
// placeholder is shown.
func (h *Handler) ClaimSuccess(w http.ResponseWriter, r *http.Request) {
	number := strings.TrimSpace(r.URL.Query().Get("claim_number"))
	if number == "" {
		number = wizard.PlaceholderClaimNumber
	}

	h.renderer.Render(w, "claim_success.html", struct{ ClaimNumber string }{number})
}
