package leavehandler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"leavehub/internal/domain/audit"
	"leavehub/internal/domain/directory"
	"leavehub/internal/domain/leave"
	"leavehub/internal/transport/http/api"
	"leavehub/internal/transport/http/middleware"
	"leavehub/internal/transport/http/shared"
)

type Handler struct {
	Service *leave.Service
	Audit   *audit.Service
}

func NewHandler(service *leave.Service, auditService *audit.Service) *Handler {
	return &Handler{Service: service, Audit: auditService}
}

func (h *Handler) recordAudit(r *http.Request, action, entityType, entityID string, details any) {
	identity, _ := middleware.GetIdentity(r.Context())
	err := h.Audit.Record(r.Context(), identity.EmployeeID, action, entityType, entityID,
		middleware.GetRequestID(r.Context()), details)
	if err != nil {
		log.Warn().Err(err).Str("action", action).Msg("audit record failed")
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/leave", func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Get("/types", h.handleListTypes)
		r.With(middleware.RequireAdmin).Post("/types", h.handleCreateType)
		r.With(middleware.RequireAdmin).Put("/types/{typeID}", h.handleUpdateType)
		r.With(middleware.RequireAdmin).Post("/types/{typeID}/activate", h.handleActivateType)
		r.With(middleware.RequireAdmin).Post("/types/{typeID}/deactivate", h.handleDeactivateType)
		r.With(middleware.RequireAdmin).Delete("/types/{typeID}", h.handleDeleteType)

		r.Get("/applications", h.handleListApplications)
		r.Post("/applications", h.handleSubmitApplication)
		r.Get("/applications/{applicationID}", h.handleGetApplication)
		r.With(middleware.RequireAdmin).Post("/applications/{applicationID}/approve", h.handleApprove)
		r.With(middleware.RequireAdmin).Post("/applications/{applicationID}/reject", h.handleReject)

		r.Get("/balances", h.handleBalances)
		r.With(middleware.RequireAdmin).Get("/balances/all", h.handleAllBalances)
		r.Get("/statuses", h.handleEmployeeStatuses)
		r.Get("/calendar", h.handleCalendar)
	})
}

func (h *Handler) handleListTypes(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	identity, _ := middleware.GetIdentity(r.Context())

	// Only administrators may look at deactivated policies.
	includeInactive := identity.IsAdmin && r.URL.Query().Get("includeInactive") == "true"
	types, err := h.Service.Store.ListTypes(r.Context(), includeInactive)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_types_failed", "failed to list leave types", requestID)
		return
	}
	api.Success(w, types, requestID)
}

type leaveTypePayload struct {
	Name        string `json:"name" validate:"required,min=2"`
	Description string `json:"description" validate:"required,min=5"`
	DaysAllowed int    `json:"daysAllowed" validate:"gte=1,lte=365"`
	CarryOver   bool   `json:"carryOver"`
	IsActive    bool   `json:"isActive"`
	Color       string `json:"color" validate:"required,hexcolor"`
}

func (h *Handler) handleCreateType(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload leaveTypePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	if shared.CheckPayload(w, payload, requestID) {
		return
	}

	id, err := h.Service.Store.CreateType(r.Context(), leave.LeaveType{
		Name:        payload.Name,
		Description: payload.Description,
		DaysAllowed: payload.DaysAllowed,
		CarryOver:   payload.CarryOver,
		IsActive:    payload.IsActive,
		Color:       payload.Color,
	})
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_type_create_failed", "failed to create leave type", requestID)
		return
	}
	h.recordAudit(r, "leave_type.create", "leave_type", id, payload)
	api.Created(w, map[string]string{"id": id}, requestID)
}

func (h *Handler) handleUpdateType(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	var payload leaveTypePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	if shared.CheckPayload(w, payload, requestID) {
		return
	}

	err := h.Service.Store.UpdateType(r.Context(), leave.LeaveType{
		ID:          chi.URLParam(r, "typeID"),
		Name:        payload.Name,
		Description: payload.Description,
		DaysAllowed: payload.DaysAllowed,
		CarryOver:   payload.CarryOver,
		IsActive:    payload.IsActive,
		Color:       payload.Color,
	})
	if errors.Is(err, leave.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "leave type not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_type_update_failed", "failed to update leave type", requestID)
		return
	}
	h.recordAudit(r, "leave_type.update", "leave_type", chi.URLParam(r, "typeID"), payload)
	api.Success(w, map[string]string{"status": "updated"}, requestID)
}

func (h *Handler) handleActivateType(w http.ResponseWriter, r *http.Request) {
	h.setTypeActive(w, r, true)
}

func (h *Handler) handleDeactivateType(w http.ResponseWriter, r *http.Request) {
	h.setTypeActive(w, r, false)
}

func (h *Handler) setTypeActive(w http.ResponseWriter, r *http.Request, active bool) {
	requestID := middleware.GetRequestID(r.Context())
	typeID := chi.URLParam(r, "typeID")

	err := h.Service.Store.SetTypeActive(r.Context(), typeID, active)
	if errors.Is(err, leave.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "leave type not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_type_update_failed", "failed to update leave type", requestID)
		return
	}
	action := "leave_type.deactivate"
	if active {
		action = "leave_type.activate"
	}
	h.recordAudit(r, action, "leave_type", typeID, nil)
	api.Success(w, map[string]string{"status": "updated"}, requestID)
}

func (h *Handler) handleDeleteType(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	err := h.Service.Store.DeleteType(r.Context(), chi.URLParam(r, "typeID"))
	if errors.Is(err, leave.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "leave type not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leave_type_delete_failed", "failed to delete leave type", requestID)
		return
	}
	h.recordAudit(r, "leave_type.delete", "leave_type", chi.URLParam(r, "typeID"), nil)
	api.Success(w, map[string]string{"status": "deleted"}, requestID)
}

func (h *Handler) handleListApplications(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	identity, _ := middleware.GetIdentity(r.Context())

	// Non-admins only ever see their own applications.
	employeeID := r.URL.Query().Get("employeeId")
	if !identity.IsAdmin {
		employeeID = identity.EmployeeID
	}

	apps, err := h.Service.ListApplications(r.Context(), employeeID, leave.Status(r.URL.Query().Get("status")))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "applications_failed", "failed to list applications", requestID)
		return
	}
	api.Success(w, apps, requestID)
}

type applicationPayload struct {
	LeaveTypeID string `json:"leaveTypeId" validate:"required"`
	StartDate   string `json:"startDate" validate:"required"`
	EndDate     string `json:"endDate" validate:"required"`
	Reason      string `json:"reason" validate:"required,min=10"`
}

func (h *Handler) handleSubmitApplication(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	identity, _ := middleware.GetIdentity(r.Context())

	var payload applicationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", requestID)
		return
	}
	if shared.CheckPayload(w, payload, requestID) {
		return
	}

	startDate, err := shared.ParseDate(payload.StartDate)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "startDate must be a valid date", requestID)
		return
	}
	endDate, err := shared.ParseDate(payload.EndDate)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "endDate must be a valid date", requestID)
		return
	}

	app, err := h.Service.Submit(r.Context(), leave.SubmitInput{
		EmployeeID:  identity.EmployeeID,
		LeaveTypeID: payload.LeaveTypeID,
		StartDate:   startDate,
		EndDate:     endDate,
		Reason:      payload.Reason,
	})
	switch {
	case errors.Is(err, leave.ErrInvalidRange):
		api.Fail(w, http.StatusBadRequest, "invalid_range", "end date must be on or after start date", requestID)
		return
	case errors.Is(err, leave.ErrTypeInactive):
		api.Fail(w, http.StatusBadRequest, "type_inactive", "leave type is not active", requestID)
		return
	case errors.Is(err, leave.ErrNotFound):
		api.Fail(w, http.StatusBadRequest, "unknown_type", "leave type not found", requestID)
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "application_failed", "failed to submit application", requestID)
		return
	}
	api.Created(w, app, requestID)
}

func (h *Handler) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	identity, _ := middleware.GetIdentity(r.Context())

	app, err := h.Service.GetApplication(r.Context(), chi.URLParam(r, "applicationID"))
	if errors.Is(err, leave.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "application not found", requestID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "application_failed", "failed to load application", requestID)
		return
	}
	if !identity.IsAdmin && app.EmployeeID != identity.EmployeeID {
		api.Fail(w, http.StatusForbidden, "forbidden", "not your application", requestID)
		return
	}
	api.Success(w, app, requestID)
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, true)
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, false)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request, approve bool) {
	requestID := middleware.GetRequestID(r.Context())
	identity, _ := middleware.GetIdentity(r.Context())
	applicationID := chi.URLParam(r, "applicationID")

	var err error
	if approve {
		err = h.Service.Approve(r.Context(), applicationID, identity.EmployeeID)
	} else {
		err = h.Service.Reject(r.Context(), applicationID, identity.EmployeeID)
	}
	switch {
	case errors.Is(err, leave.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "application not found", requestID)
		return
	case errors.Is(err, leave.ErrInvalidState):
		api.Fail(w, http.StatusConflict, "invalid_state", "application is not pending", requestID)
		return
	case err != nil:
		api.Fail(w, http.StatusInternalServerError, "decision_failed", "failed to record decision", requestID)
		return
	}
	action := "application.reject"
	if approve {
		action = "application.approve"
	}
	h.recordAudit(r, action, "leave_application", applicationID, nil)
	api.Success(w, map[string]string{"status": "recorded"}, requestID)
}

func (h *Handler) handleBalances(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	identity, _ := middleware.GetIdentity(r.Context())

	employeeID := r.URL.Query().Get("employeeId")
	if employeeID == "" || !identity.IsAdmin {
		employeeID = identity.EmployeeID
	}
	includeInactive := identity.IsAdmin && r.URL.Query().Get("includeInactive") == "true"

	balances, err := h.Service.Balances(r.Context(), employeeID, includeInactive)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "balances_failed", "failed to compute balances", requestID)
		return
	}
	api.Success(w, balances, requestID)
}

func (h *Handler) handleAllBalances(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	balances, err := h.Service.AllBalances(r.Context(), r.URL.Query().Get("includeInactive") == "true")
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "balances_failed", "failed to compute balances", requestID)
		return
	}
	api.Success(w, balances, requestID)
}

func (h *Handler) handleEmployeeStatuses(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	filter := directory.ListFilter{
		Search:     r.URL.Query().Get("search"),
		Department: r.URL.Query().Get("department"),
		ActiveOnly: true,
	}

	statuses, err := h.Service.EmployeeStatuses(r.Context(), filter, time.Now())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "statuses_failed", "failed to classify employees", requestID)
		return
	}

	// Optional narrowing by availability state.
	if state := r.URL.Query().Get("status"); state != "" {
		filtered := statuses[:0]
		for _, s := range statuses {
			if string(s.Leave.Status) == state {
				filtered = append(filtered, s)
			}
		}
		statuses = filtered
	}
	api.Success(w, statuses, requestID)
}

func (h *Handler) handleCalendar(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	anchor, err := shared.ParseMonth(r.URL.Query().Get("month"), time.Now())
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_month", "month must look like 2024-03", requestID)
		return
	}

	projection, err := h.Service.Calendar(r.Context(), anchor)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "calendar_failed", "failed to project calendar", requestID)
		return
	}
	api.Success(w, projection, requestID)
}
