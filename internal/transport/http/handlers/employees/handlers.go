package employeeshandler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"leavehub/internal/domain/audit"
	"leavehub/internal/domain/auth"
	"leavehub/internal/domain/directory"
	"leavehub/internal/transport/http/api"
	"leavehub/internal/transport/http/middleware"
	"leavehub/internal/transport/http/shared"
)

type Handler struct {
	Store *directory.Store
	Audit *audit.Service
}

func NewHandler(store *directory.Store, auditService *audit.Service) *Handler {
	return &Handler{Store: store, Audit: auditService}
}

func (h *Handler) recordAudit(r *http.Request, action, employeeID string) {
	identity, _ := middleware.GetIdentity(r.Context())
	err := h.Audit.Record(r.Context(), identity.EmployeeID, action, "employee", employeeID,
		middleware.GetRequestID(r.Context()), nil)
	if err != nil {
		log.Warn().Err(err).Str("action", action).Msg("audit record failed")
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.handleList)
		r.Get("/recent", h.handleRecent)
		r.Get("/departments", h.handleDepartments)
		r.Get("/{employeeID}", h.handleGet)
		r.With(middleware.RequireAdmin).Post("/", h.handleCreate)
		r.With(middleware.RequireAdmin).Put("/{employeeID}", h.handleUpdate)
		r.With(middleware.RequireAdmin).Delete("/{employeeID}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	pagination := shared.ParsePagination(r, 50, 200)

	filter := directory.ListFilter{
		Search:     r.URL.Query().Get("search"),
		Department: r.URL.Query().Get("department"),
		ActiveOnly: r.URL.Query().Get("active") == "true",
		Limit:      pagination.Limit,
		Offset:     pagination.Offset,
	}

	employees, err := h.Store.List(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employees_failed", "failed to list employees", requestID)
		return
	}
	api.Success(w, employees, requestID)
}

func (h *Handler) handleRecent(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	employees, err := h.Store.Recent(r.Context(), 5)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employees_failed", "failed to list recent employees", requestID)
		return
	}
	api.Success(w, employees, requestID)
}

func (h *Handler) handleDepartments(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	departments, err := h.Store.Departments(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "departments_failed", "failed to list departments", requestID)
		return
	}
	api.Success(w, departments, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	employee, err := h.Store.Get(r.Context(), chi.URLParam(r, "employeeID"))
	if errors.Is(err, directory.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_failed", "failed to load employee", requestID)
		return
	}
	api.Success(w, employee, requestID)
}

type employeePayload struct {
	FirstName    string `json:"firstName" validate:"required,min=2"`
	LastName     string `json:"lastName" validate:"required,min=2"`
	Email        string `json:"email" validate:"required,email"`
	Position     string `json:"position" validate:"required,min=2"`
	Department   string `json:"department" validate:"required,min=2"`
	JoinDate     string `json:"joinDate" validate:"required"`
	IsActive     bool   `json:"isActive"`
	ProfilePhoto string `json:"profilePhoto"`
	IsAdmin      bool   `json:"isAdmin"`
	Password     string `json:"password"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	if shared.CheckPayload(w, payload, requestID) {
		return
	}

	joinDate, err := shared.ParseDate(payload.JoinDate)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "joinDate must be a valid date", requestID)
		return
	}

	password := payload.Password
	if password == "" {
		// New hires get a throwaway credential until they run a reset.
		password = "Welcome123!"
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", requestID)
		return
	}

	id, err := h.Store.Create(r.Context(), directory.Employee{
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		Email:        payload.Email,
		Position:     payload.Position,
		Department:   payload.Department,
		JoinDate:     joinDate,
		IsActive:     payload.IsActive,
		ProfilePhoto: payload.ProfilePhoto,
		IsAdmin:      payload.IsAdmin,
	}, hash)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_create_failed", "failed to create employee", requestID)
		return
	}
	h.recordAudit(r, "employee.create", id)
	api.Created(w, map[string]string{"id": id}, requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload employeePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	if shared.CheckPayload(w, payload, requestID) {
		return
	}

	joinDate, err := shared.ParseDate(payload.JoinDate)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "joinDate must be a valid date", requestID)
		return
	}

	err = h.Store.Update(r.Context(), directory.Employee{
		ID:           chi.URLParam(r, "employeeID"),
		FirstName:    payload.FirstName,
		LastName:     payload.LastName,
		Email:        payload.Email,
		Position:     payload.Position,
		Department:   payload.Department,
		JoinDate:     joinDate,
		IsActive:     payload.IsActive,
		ProfilePhoto: payload.ProfilePhoto,
		IsAdmin:      payload.IsAdmin,
	})
	if errors.Is(err, directory.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_update_failed", "failed to update employee", requestID)
		return
	}
	h.recordAudit(r, "employee.update", chi.URLParam(r, "employeeID"))
	api.Success(w, map[string]string{"status": "updated"}, requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	err := h.Store.Delete(r.Context(), chi.URLParam(r, "employeeID"))
	if errors.Is(err, directory.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "employee_delete_failed", "failed to delete employee", requestID)
		return
	}
	h.recordAudit(r, "employee.delete", chi.URLParam(r, "employeeID"))
	api.Success(w, map[string]string{"status": "deleted"}, requestID)
}
