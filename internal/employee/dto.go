package employee

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/frahmantamala/attendance-tracker/internal"
)

var (
	employeeIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	namePattern       = regexp.MustCompile(`^[a-zA-ZáéíóúÁÉÍÓÚñÑ\s]+$`)
)

type CreateEmployeeDTO struct {
	EmployeeID string `json:"employee_id" validate:"required,max=20"`
	Name       string `json:"name" validate:"required,max=100"`
	LastName   string `json:"last_name" validate:"required,max=100"`
	Department string `json:"department" validate:"required,max=50"`
	Position   string `json:"position" validate:"required,max=50"`
	Email      string `json:"email" validate:"required,email,max=120"`
	Phone      string `json:"phone" validate:"required,max=20"`
}

func (dto CreateEmployeeDTO) Validate(v *validator.Validate) error {
	if err := v.Struct(dto); err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}
	if !employeeIDPattern.MatchString(dto.EmployeeID) {
		return internal.NewValidationError("ID de empleado inválido: solo letras, números, guiones y guiones bajos", internal.ErrCodeInvalidEmployeeID)
	}
	if !namePattern.MatchString(dto.Name) || !namePattern.MatchString(dto.LastName) {
		return internal.NewValidationError("nombre inválido: solo se permiten letras y espacios", internal.ErrCodeInvalidName)
	}
	return nil
}

type UpdateEmployeeDTO struct {
	Name       string `json:"name" validate:"required,max=100"`
	LastName   string `json:"last_name" validate:"required,max=100"`
	Department string `json:"department" validate:"required,max=50"`
	Position   string `json:"position" validate:"required,max=50"`
	Email      string `json:"email" validate:"required,email,max=120"`
	Phone      string `json:"phone" validate:"required,max=20"`
}

func (dto UpdateEmployeeDTO) Validate(v *validator.Validate) error {
	if err := v.Struct(dto); err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}
	if !namePattern.MatchString(dto.Name) || !namePattern.MatchString(dto.LastName) {
		return internal.NewValidationError("nombre inválido: solo se permiten letras y espacios", internal.ErrCodeInvalidName)
	}
	return nil
}

type EmployeesResponse struct {
	Employees []*Employee `json:"employees"`
	Total     int         `json:"total"`
}
