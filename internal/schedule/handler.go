package schedule

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/frahmantamala/attendance-tracker/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	SetSchedule(employeeID string, dto SetScheduleDTO) (*WorkSchedule, error)
	ListSchedules(employeeID string) ([]*WorkSchedule, error)
	DeactivateDay(employeeID string, dayOfWeek int) error
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

func (h *Handler) Set(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employee_id")

	var dto SetScheduleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Set: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ws, err := h.Service.SetSchedule(employeeID, dto)
	if err != nil {
		h.Logger.Error("Set: service error", "error", err, "employee_id", employeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ws)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employee_id")

	schedules, err := h.Service.ListSchedules(employeeID)
	if err != nil {
		h.Logger.Error("List: service error", "error", err, "employee_id", employeeID)
		h.WriteError(w, http.StatusInternalServerError, "no se pudieron listar los horarios")
		return
	}

	h.WriteJSON(w, http.StatusOK, SchedulesResponse{EmployeeID: employeeID, Schedules: schedules})
}

func (h *Handler) DeactivateDay(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employee_id")
	dayStr := chi.URLParam(r, "day")

	day, err := strconv.Atoi(dayStr)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "día de la semana inválido")
		return
	}

	if err := h.Service.DeactivateDay(employeeID, day); err != nil {
		h.Logger.Error("DeactivateDay: service error", "error", err, "employee_id", employeeID, "day", day)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "horario desactivado correctamente"})
}
