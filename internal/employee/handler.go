package employee

import (
	"encoding/json"
	"net/http"

	"github.com/frahmantamala/attendance-tracker/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	CreateEmployee(dto CreateEmployeeDTO) (*Employee, error)
	GetEmployee(employeeID string) (*Employee, error)
	ListActiveEmployees() ([]*Employee, error)
	UpdateEmployee(employeeID string, dto UpdateEmployeeDTO) (*Employee, error)
	DeactivateEmployee(employeeID string) error
	RegenerateQRCodes() (int, error)
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

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var dto CreateEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Create: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	emp, err := h.Service.CreateEmployee(dto)
	if err != nil {
		h.Logger.Error("Create: service error", "error", err, "employee_id", dto.EmployeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, emp)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employee_id")

	emp, err := h.Service.GetEmployee(employeeID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, emp)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.ListActiveEmployees()
	if err != nil {
		h.Logger.Error("List: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "no se pudieron listar los empleados")
		return
	}

	h.WriteJSON(w, http.StatusOK, EmployeesResponse{Employees: employees, Total: len(employees)})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employee_id")

	var dto UpdateEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Update: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	emp, err := h.Service.UpdateEmployee(employeeID, dto)
	if err != nil {
		h.Logger.Error("Update: service error", "error", err, "employee_id", employeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, emp)
}

func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employee_id")

	if err := h.Service.DeactivateEmployee(employeeID); err != nil {
		h.Logger.Error("Deactivate: service error", "error", err, "employee_id", employeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "empleado desactivado correctamente"})
}

func (h *Handler) RegenerateQRCodes(w http.ResponseWriter, r *http.Request) {
	count, err := h.Service.RegenerateQRCodes()
	if err != nil {
		h.Logger.Error("RegenerateQRCodes: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "no se pudieron regenerar los códigos QR")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "códigos QR regenerados",
		"count":   count,
	})
}
