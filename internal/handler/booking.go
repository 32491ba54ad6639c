package handler

import (
	"encoding/json"
	"net/http"

	"cuecafe/internal/booking"
	"cuecafe/internal/session"
	"cuecafe/pkg/httpx"
	"cuecafe/pkg/logger"
	"cuecafe/pkg/middleware"
	"cuecafe/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type BookingHandler struct {
	svc      *booking.Service
	sessions session.Store
	log      *logger.Logger
}

func NewBookingHandler(svc *booking.Service, sessions session.Store, log *logger.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, sessions: sessions, log: log}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/bookings", middleware.RequireSession(h.sessions, h.Create))
	router.GET("/api/v1/bookings", middleware.RequireSession(h.sessions, h.List))
	router.DELETE("/api/v1/bookings/:id", middleware.RequireSession(h.sessions, h.Cancel))
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in model.CreateBookingInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		if writeErr := httpx.WriteJSON(w, http.StatusBadRequest, httpx.ErrorResponse{Error: "Invalid request body"}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	summary, err := h.svc.Create(r.Context(), middleware.SessionFromContext(r.Context()), in)
	if err != nil {
		if writeErr := httpx.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := httpx.WriteCreated(w, summary); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess := middleware.SessionFromContext(r.Context())
	bookings := h.svc.ListForUser(r.Context(), sess.UserID)
	if err := httpx.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "error", err)
	}
}

func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !h.svc.Cancel(r.Context(), ps.ByName("id")) {
		if writeErr := httpx.WriteJSON(w, http.StatusBadGateway, httpx.ErrorResponse{Error: "Cancellation failed"}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Cancel", "error", writeErr)
		}
		return
	}

	httpx.WriteNoContent(w)
}
