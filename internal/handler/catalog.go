package handler

import (
	"net/http"

	"cuecafe/internal/catalog"
	apperrors "cuecafe/pkg/errors"
	"cuecafe/pkg/httpx"
	"cuecafe/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type CatalogHandler struct {
	svc *catalog.Service
	log *logger.Logger
}

func NewCatalogHandler(svc *catalog.Service, log *logger.Logger) *CatalogHandler {
	return &CatalogHandler{svc: svc, log: log}
}

func (h *CatalogHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/venue", h.Venue)
	router.GET("/api/v1/games", h.Games)
	router.GET("/api/v1/games/:id/slots", h.Slots)
}

func (h *CatalogHandler) Venue(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	venue, err := h.svc.Venue(r.Context())
	if err != nil {
		if writeErr := httpx.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Venue", "error", writeErr)
		}
		return
	}

	if err := httpx.WriteSuccess(w, venue); err != nil {
		h.log.Error("failed to write success response", "handler", "Venue", "error", err)
	}
}

func (h *CatalogHandler) Games(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httpx.WriteSuccess(w, h.svc.Games(r.Context())); err != nil {
		h.log.Error("failed to write success response", "handler", "Games", "error", err)
	}
}

func (h *CatalogHandler) Slots(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	date := r.URL.Query().Get("date")
	if date == "" {
		if writeErr := httpx.WriteError(w, apperrors.InvalidInput("date query parameter is required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Slots", "error", writeErr)
		}
		return
	}

	slots := h.svc.AvailableSlots(r.Context(), ps.ByName("id"), date)
	if err := httpx.WriteSuccess(w, slots); err != nil {
		h.log.Error("failed to write success response", "handler", "Slots", "error", err)
	}
}
