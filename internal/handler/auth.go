package handler

import (
	"encoding/json"
	"net/http"

	"cuecafe/internal/identity"
	"cuecafe/internal/session"
	"cuecafe/pkg/httpx"
	"cuecafe/pkg/logger"
	"cuecafe/pkg/middleware"
	"cuecafe/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type AuthHandler struct {
	svc      *identity.Service
	sessions session.Store
	log      *logger.Logger
}

func NewAuthHandler(svc *identity.Service, sessions session.Store, log *logger.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, sessions: sessions, log: log}
}

func (h *AuthHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/auth/signup", h.Signup)
	router.POST("/api/v1/auth/login", h.Login)
	router.POST("/api/v1/auth/logout", h.Logout)
	router.GET("/api/v1/auth/me", middleware.RequireSession(h.sessions, h.Me))
	router.PATCH("/api/v1/auth/profile", middleware.RequireSession(h.sessions, h.UpdateProfile))
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in model.SignupInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.writeBadBody(w, "Signup")
		return
	}

	sess, err := h.svc.Signup(r.Context(), in)
	if err != nil {
		h.writeError(w, "Signup", err)
		return
	}

	if err := httpx.WriteCreated(w, sess); err != nil {
		h.log.Error("failed to write created response", "handler", "Signup", "error", err)
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in model.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.writeBadBody(w, "Login")
		return
	}

	sess, err := h.svc.Login(r.Context(), in)
	if err != nil {
		h.writeError(w, "Login", err)
		return
	}

	if err := httpx.WriteSuccess(w, sess); err != nil {
		h.log.Error("failed to write success response", "handler", "Login", "error", err)
	}
}

// Logout never fails, even with a missing or stale token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.svc.Logout(middleware.BearerToken(r))
	httpx.WriteNoContent(w)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess := middleware.SessionFromContext(r.Context())
	if err := httpx.WriteSuccess(w, sess); err != nil {
		h.log.Error("failed to write success response", "handler", "Me", "error", err)
	}
}

func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var in model.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.writeBadBody(w, "UpdateProfile")
		return
	}

	sess, err := h.svc.UpdateProfile(r.Context(), middleware.BearerToken(r), in)
	if err != nil {
		h.writeError(w, "UpdateProfile", err)
		return
	}

	if err := httpx.WriteSuccess(w, sess); err != nil {
		h.log.Error("failed to write success response", "handler", "UpdateProfile", "error", err)
	}
}

func (h *AuthHandler) writeBadBody(w http.ResponseWriter, handlerName string) {
	if err := httpx.WriteJSON(w, http.StatusBadRequest, httpx.ErrorResponse{Error: "Invalid request body"}); err != nil {
		h.log.Error("failed to write JSON response", "handler", handlerName, "error", err)
	}
}

func (h *AuthHandler) writeError(w http.ResponseWriter, handlerName string, err error) {
	if writeErr := httpx.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handlerName, "error", writeErr)
	}
}
