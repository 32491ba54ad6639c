package handler

import (
	"net/http"
	"time"

	"cuecafe/pkg/httpx"
	"cuecafe/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type HealthHandler struct {
	started time.Time
	log     *logger.Logger
}

func NewHealthHandler(log *logger.Logger) *HealthHandler {
	return &HealthHandler{started: time.Now(), log: log}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	body := map[string]any{
		"status": "ok",
		"uptime": time.Since(h.started).Round(time.Second).String(),
	}
	if err := httpx.WriteJSON(w, http.StatusOK, body); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "error", err)
	}
}
