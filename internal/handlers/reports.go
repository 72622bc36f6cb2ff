package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
	"github.com/ukydev/workshop-analytics/internal/analytics"
)

// ReportService computes workshop reports.
type ReportService interface {
	ComputeReport(ctx context.Context, workshopID string, q analytics.Query) (*analytics.Report, error)
	ComputeTechnicianReport(ctx context.Context, workshopID, technicianID string, q analytics.Query) (*analytics.TechnicianReport, error)
}

// ReportHandler serves the analytics endpoints
type ReportHandler struct {
	service ReportService
	timeout time.Duration
	now     func() time.Time
}

// NewReportHandler creates a report handler. A zero timeout leaves the
// request context unbounded.
func NewReportHandler(service ReportService, timeout time.Duration) *ReportHandler {
	return &ReportHandler{service: service, timeout: timeout, now: time.Now}
}

// Routes mounts the report endpoints under a workshop.
func (h *ReportHandler) Routes(r chi.Router) {
	r.Get("/workshops/{workshopID}/analytics", h.WorkshopReport)
	r.Get("/workshops/{workshopID}/technicians/{technicianID}/analytics", h.TechnicianReport)
}

// WorkshopReport handles GET .../workshops/{workshopID}/analytics
func (h *ReportHandler) WorkshopReport(w http.ResponseWriter, r *http.Request) {
	workshopID := chi.URLParam(r, "workshopID")
	params := r.URL.Query()

	q, err := analytics.ParseQuery(params.Get("start"), params.Get("end"), params.Get("technician"), params.Get("types"), h.now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	report, err := h.service.ComputeReport(ctx, workshopID, q)
	if err != nil {
		h.fail(w, err, log.Fields{"workshop_id": workshopID, "period": q.Period.String()})
		return
	}
	writeJSON(w, report)
}

// TechnicianReport handles GET .../technicians/{technicianID}/analytics
func (h *ReportHandler) TechnicianReport(w http.ResponseWriter, r *http.Request) {
	workshopID := chi.URLParam(r, "workshopID")
	technicianID := chi.URLParam(r, "technicianID")
	params := r.URL.Query()

	q, err := analytics.ParseQuery(params.Get("start"), params.Get("end"), "", "", h.now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := h.requestContext(r)
	defer cancel()

	report, err := h.service.ComputeTechnicianReport(ctx, workshopID, technicianID, q)
	if err != nil {
		h.fail(w, err, log.Fields{"workshop_id": workshopID, "technician_id": technicianID})
		return
	}
	writeJSON(w, report)
}

func (h *ReportHandler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), h.timeout)
}

func (h *ReportHandler) fail(w http.ResponseWriter, err error, fields log.Fields) {
	if errors.Is(err, analytics.ErrMissingWorkshop) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.WithFields(fields).WithError(err).Error("Failed to compute report")
	http.Error(w, "Failed to compute report", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}
