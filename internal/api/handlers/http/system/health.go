package system

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// Check is one dependency checked by the health endpoint. Optional
// dependencies only degrade the reported status.
type Check struct {
	Name     string
	Pinger   Pinger
	Required bool
}

type Handler struct {
	logger  *slog.Logger
	checks  []Check
	timeout time.Duration
}

func NewHandler(logger *slog.Logger, checks ...Check) *Handler {
	return &Handler{logger: logger, checks: checks, timeout: 2 * time.Second}
}

type healthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

func (h *Handler) SystemHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		resp     = healthResponse{Status: "ok", Components: make(map[string]string, len(h.checks))}
		critical bool
	)
	for _, c := range h.checks {
		c := c
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := c.Pinger.Ping(ctx)

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				resp.Components[c.Name] = "ok"
				return
			}
			resp.Components[c.Name] = err.Error()
			if c.Required {
				critical = true
			} else if resp.Status == "ok" {
				resp.Status = "degraded"
			}
		}()
	}
	wg.Wait()

	code := http.StatusOK
	if critical {
		resp.Status = "down"
		code = http.StatusServiceUnavailable
		h.logger.Error("health check failed", slog.Any("components", resp.Components))
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}
