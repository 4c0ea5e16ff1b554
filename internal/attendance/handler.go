package attendance

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/frahmantamala/attendance-tracker/internal"
	"github.com/frahmantamala/attendance-tracker/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	RegisterScan(dto ScanDTO) (*ScanResult, error)
	CorrectEventTime(eventID int64, dto CorrectTimeDTO) (*Event, error)
	TodayEvents() ([]*Event, error)
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

// Scan handles the QR kiosk POST. Policy rejections are not transport errors:
// the client always gets a body with accepted=false, an error kind, and a
// message to show the employee.
func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	var dto ScanDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Scan: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.Service.RegisterScan(dto)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			h.Logger.Warn("Scan: rejected", "employee_id", dto.EmployeeID, "code", appErr.Code)
			h.WriteJSON(w, appErr.StatusCode, ScanRejection{
				Accepted:  false,
				ErrorKind: string(appErr.Code),
				Message:   appErr.Message,
			})
			return
		}
		h.Logger.Error("Scan: service error", "error", err, "employee_id", dto.EmployeeID)
		h.WriteError(w, http.StatusInternalServerError, "no se pudo registrar la asistencia")
		return
	}

	h.WriteJSON(w, http.StatusCreated, result)
}

func (h *Handler) CorrectTime(w http.ResponseWriter, r *http.Request) {
	eventIDStr := chi.URLParam(r, "id")
	eventID, err := strconv.ParseInt(eventIDStr, 10, 64)
	if err != nil {
		h.Logger.Error("CorrectTime: invalid event ID", "id", eventIDStr)
		h.WriteError(w, http.StatusBadRequest, "ID de asistencia inválido")
		return
	}

	var dto CorrectTimeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CorrectTime: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := h.Service.CorrectEventTime(eventID, dto)
	if err != nil {
		h.Logger.Error("CorrectTime: service error", "error", err, "event_id", eventID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CorrectTime: event time updated", "event_id", eventID)
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":       "hora actualizada correctamente",
		"new_timestamp": event.Timestamp.Format("15:04:05"),
	})
}

func (h *Handler) TodayEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.Service.TodayEvents()
	if err != nil {
		h.Logger.Error("TodayEvents: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "no se pudieron obtener las asistencias de hoy")
		return
	}

	h.WriteJSON(w, http.StatusOK, EventsResponse{Events: events})
}
