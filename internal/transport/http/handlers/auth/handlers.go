package authhandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"leavehub/internal/domain/auth"
	"leavehub/internal/domain/directory"
	"leavehub/internal/transport/http/api"
	"leavehub/internal/transport/http/middleware"
	"leavehub/internal/transport/http/shared"
)

type Handler struct {
	Service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{Service: service}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
	r.Post("/auth/logout", h.handleLogout)
	r.Post("/auth/request-reset", h.handleRequestReset)
	r.Post("/auth/reset", h.handleResetPassword)
	r.With(middleware.RequireAuth).Get("/auth/me", h.handleMe)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	if shared.CheckPayload(w, payload, requestID) {
		return
	}

	token, employee, err := h.Service.Login(r.Context(), payload.Email, payload.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) || errors.Is(err, auth.ErrInactiveAccount) {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "login_failed", "failed to log in", requestID)
		return
	}

	api.Success(w, map[string]any{"token": token, "employee": employee}, requestID)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	// Tokens are stateless; the client discards its copy. The line is kept
	// for the audit trail.
	if identity, ok := middleware.GetIdentity(r.Context()); ok {
		log.Info().Str("employeeId", identity.EmployeeID).Msg("logout")
	}
	api.Success(w, map[string]string{"status": "logged out"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	identity, _ := middleware.GetIdentity(r.Context())

	employee, err := h.Service.Directory.Get(r.Context(), identity.EmployeeID)
	if errors.Is(err, directory.ErrNotFound) {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "account no longer exists", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "me_failed", "failed to load account", requestID)
		return
	}
	api.Success(w, employee, requestID)
}

type requestResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *Handler) handleRequestReset(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload requestResetRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	if shared.CheckPayload(w, payload, requestID) {
		return
	}

	token, err := h.Service.RequestReset(r.Context(), payload.Email)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "reset_request_failed", "failed to request reset", requestID)
		return
	}
	if token != "" {
		// Mail delivery is out of scope; surface the token in the log for
		// the operator to forward.
		log.Info().Str("email", payload.Email).Str("token", token).Msg("password reset requested")
	}

	api.Success(w, map[string]string{"status": "if the account exists, a reset was issued"}, requestID)
}

type resetRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

func (h *Handler) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload resetRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	if shared.CheckPayload(w, payload, requestID) {
		return
	}

	err := h.Service.ResetPassword(r.Context(), payload.Token, payload.NewPassword)
	if errors.Is(err, auth.ErrResetInvalid) {
		api.Fail(w, http.StatusBadRequest, "reset_invalid", "reset token invalid or expired", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "reset_failed", "failed to reset password", requestID)
		return
	}
	api.Success(w, map[string]string{"status": "password updated"}, requestID)
}
