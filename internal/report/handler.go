package report

import (
	"fmt"
	"net/http"
	"time"

	"github.com/frahmantamala/attendance-tracker/internal/transport"
	"github.com/google/uuid"
)

type ServiceAPI interface {
	GeneralReport(filter Filter) ([]Row, error)
	SummaryReport(filter Filter) ([]SummaryRow, error)
	Dashboard() (*DashboardStats, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) filterFromRequest(r *http.Request) (Filter, error) {
	q := r.URL.Query()
	return ParseFilter(q.Get("from"), q.Get("to"), q.Get("employee_id"))
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	filter, err := h.filterFromRequest(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	rows, err := h.Service.GeneralReport(filter)
	if err != nil {
		h.Logger.Error("GetReport: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ReportResponse{Rows: rows, Total: len(rows)})
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	filter, err := h.filterFromRequest(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	rows, err := h.Service.SummaryReport(filter)
	if err != nil {
		h.Logger.Error("GetSummary: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, SummaryResponse{Rows: rows, Total: len(rows)})
}

// ExportExcel streams the filtered report as an xlsx download.
func (h *Handler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	filter, err := h.filterFromRequest(r)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	rows, err := h.Service.GeneralReport(filter)
	if err != nil {
		h.Logger.Error("ExportExcel: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	filename := fmt.Sprintf("asistencias_%s_%s.xlsx",
		time.Now().Format("20060102"), uuid.NewString()[:8])
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := WriteExcel(w, rows); err != nil {
		// Headers are already out; log and abandon the response.
		h.Logger.Error("ExportExcel: failed to write workbook", "error", err)
		return
	}

	h.Logger.Info("report exported", "filename", filename, "rows", len(rows))
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Dashboard()
	if err != nil {
		h.Logger.Error("GetDashboard: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, stats)
}
