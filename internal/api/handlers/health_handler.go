package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/recipe-app/api/internal/api/types"
	appErr "github.com/recipe-app/api/pkg/errors"
	"github.com/recipe-app/api/pkg/logger"
)

// Pinger reports whether the store is reachable.
type Pinger func(ctx context.Context) error

type HealthHandler struct {
	ping Pinger
}

func NewHealthHandler(ping Pinger) *HealthHandler { return &HealthHandler{ping: ping} }

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness answers 503 while the database is unreachable.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	if h.ping != nil {
		if err := h.ping(r.Context()); err != nil {
			logger.L().Warn("readiness check failed", zap.Error(err))
			types.WriteErrorStr(w, http.StatusServiceUnavailable, string(appErr.CodeInternal), "database unavailable")
			return
		}
	}
	writeData(w, http.StatusOK, map[string]string{"status": "ready"})
}
