package reportshandler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"leavehub/internal/domain/audit"
	"leavehub/internal/domain/reports"
	"leavehub/internal/platform/metrics"
	"leavehub/internal/transport/http/api"
	"leavehub/internal/transport/http/middleware"
	"leavehub/internal/transport/http/shared"
)

type Handler struct {
	Service   *reports.Service
	Audit     *audit.Service
	Collector *metrics.Collector
}

func NewHandler(service *reports.Service, auditService *audit.Service, collector *metrics.Collector) *Handler {
	return &Handler{Service: service, Audit: auditService, Collector: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/dashboard", h.handleDashboard)
		r.With(middleware.RequireAdmin).Get("/balances", h.handleBalances)
		r.With(middleware.RequireAdmin).Get("/balances/export", h.handleBalancesExport)
		r.With(middleware.RequireAdmin).Get("/audit", h.handleAudit)
		r.With(middleware.RequireAdmin).Get("/metrics", h.handleMetrics)
	})
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	stats, err := h.Service.Dashboard(r.Context(), time.Now())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "dashboard_failed", "failed to compute dashboard", requestID)
		return
	}
	api.Success(w, stats, requestID)
}

func (h *Handler) handleBalances(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	rows, err := h.Service.BalanceReport(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build balance report", requestID)
		return
	}
	api.Success(w, rows, requestID)
}

func (h *Handler) handleBalancesExport(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	rows, err := h.Service.BalanceReport(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "report_failed", "failed to build balance report", requestID)
		return
	}

	now := time.Now()
	switch r.URL.Query().Get("format") {
	case "pdf":
		data, err := reports.BalancesPDF(rows, now)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to render report", requestID)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="leave-balances-%s.pdf"`, now.Format("2006-01-02")))
		w.WriteHeader(http.StatusOK)
		w.Write(data)
	default:
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="leave-balances-%s.csv"`, now.Format("2006-01-02")))
		w.WriteHeader(http.StatusOK)
		if err := reports.WriteBalancesCSV(w, rows); err != nil {
			// Headers are already out; nothing useful left to send.
			return
		}
	}
}

func (h *Handler) handleAudit(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	pagination := shared.ParsePagination(r, 50, 500)

	filter := audit.Filter{
		Action:     r.URL.Query().Get("action"),
		EntityType: r.URL.Query().Get("entityType"),
		ActorID:    r.URL.Query().Get("actorId"),
	}

	total, err := h.Audit.Count(r.Context(), filter)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "audit_failed", "failed to list audit events", requestID)
		return
	}
	events, err := h.Audit.List(r.Context(), filter, pagination.Limit, pagination.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "audit_failed", "failed to list audit events", requestID)
		return
	}
	api.Success(w, map[string]any{"total": total, "events": events}, requestID)
}

func (h *Handler) handleMetrics(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	api.Success(w, h.Collector.Snapshot(), requestID)
}
