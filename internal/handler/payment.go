package handler

import (
	"encoding/json"
	"net/http"

	"cuecafe/internal/payment"
	"cuecafe/internal/session"
	"cuecafe/internal/validate"
	"cuecafe/pkg/httpx"
	"cuecafe/pkg/logger"
	"cuecafe/pkg/middleware"
	"cuecafe/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type PaymentHandler struct {
	svc       *payment.Service
	sessions  session.Store
	validator *validate.Validator
	log       *logger.Logger
}

func NewPaymentHandler(svc *payment.Service, sessions session.Store, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{svc: svc, sessions: sessions, validator: validate.NewValidator(), log: log}
}

func (h *PaymentHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/payments/initiate", middleware.RequireSession(h.sessions, h.Initiate))
	router.POST("/api/v1/payments/verify", h.Verify)
	router.POST("/api/v1/payments/dismiss", h.Dismiss)
	router.POST("/api/v1/payments/refund", middleware.RequireSession(h.sessions, h.Refund))
}

func (h *PaymentHandler) Initiate(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in payment.InitiateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.writeBadBody(w, "Initiate")
		return
	}
	if err := h.validator.Validate(in); err != nil {
		h.writeError(w, "Initiate", err)
		return
	}

	checkout, err := h.svc.Initiate(r.Context(), middleware.SessionFromContext(r.Context()), in)
	if err != nil {
		h.writeError(w, "Initiate", err)
		return
	}

	if err := httpx.WriteSuccess(w, checkout); err != nil {
		h.log.Error("failed to write success response", "handler", "Initiate", "error", err)
	}
}

// confirmationResponse flattens the redirect delay into milliseconds so the
// front end can reuse it as a setTimeout argument.
type confirmationResponse struct {
	BookingID string `json:"booking_id"`
	Redirect  string `json:"redirect"`
	DelayMS   int64  `json:"delay_ms"`
	Degraded  bool   `json:"degraded"`
}

// Verify is the success continuation of the checkout widget. It stays open
// to unauthenticated calls: the widget callback carries no bearer token,
// only the provider's signed result.
func (h *PaymentHandler) Verify(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var res model.CheckoutResult
	if err := json.NewDecoder(r.Body).Decode(&res); err != nil {
		h.writeBadBody(w, "Verify")
		return
	}
	if err := h.validator.Validate(res); err != nil {
		h.writeError(w, "Verify", err)
		return
	}

	conf, err := h.svc.HandleSuccess(r.Context(), res)
	if err != nil {
		h.writeError(w, "Verify", err)
		return
	}

	out := confirmationResponse{
		BookingID: conf.BookingID,
		Redirect:  conf.Redirect,
		DelayMS:   conf.Delay.Milliseconds(),
		Degraded:  conf.Degraded,
	}
	if err := httpx.WriteSuccess(w, out); err != nil {
		h.log.Error("failed to write success response", "handler", "Verify", "error", err)
	}
}

type dismissRequest struct {
	OrderID string `json:"order_id" validate:"required"`
}

// Dismiss is the cancellation continuation: the user closed the widget.
func (h *PaymentHandler) Dismiss(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req dismissRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeBadBody(w, "Dismiss")
		return
	}
	if err := h.validator.Validate(req); err != nil {
		h.writeError(w, "Dismiss", err)
		return
	}

	if err := h.svc.HandleDismiss(req.OrderID); err != nil {
		h.writeError(w, "Dismiss", err)
		return
	}

	httpx.WriteNoContent(w)
}

type refundRequest struct {
	BookingID string  `json:"booking_id" validate:"required"`
	PaymentID string  `json:"payment_id" validate:"required"`
	Amount    float64 `json:"amount" validate:"required"`
}

func (h *PaymentHandler) Refund(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req refundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeBadBody(w, "Refund")
		return
	}
	if err := h.validator.Validate(req); err != nil {
		h.writeError(w, "Refund", err)
		return
	}

	if !h.svc.Refund(r.Context(), req.BookingID, req.PaymentID, req.Amount) {
		if writeErr := httpx.WriteJSON(w, http.StatusBadGateway, httpx.ErrorResponse{Error: "Refund failed"}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Refund", "error", writeErr)
		}
		return
	}

	if err := httpx.WriteSuccess(w, map[string]string{"status": "refunded"}); err != nil {
		h.log.Error("failed to write success response", "handler", "Refund", "error", err)
	}
}

func (h *PaymentHandler) writeBadBody(w http.ResponseWriter, handlerName string) {
	if err := httpx.WriteJSON(w, http.StatusBadRequest, httpx.ErrorResponse{Error: "Invalid request body"}); err != nil {
		h.log.Error("failed to write JSON response", "handler", handlerName, "error", err)
	}
}

func (h *PaymentHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httpx.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}
