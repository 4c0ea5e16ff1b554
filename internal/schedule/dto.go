package schedule

import (
	"github.com/go-playground/validator/v10"

	"github.com/frahmantamala/attendance-tracker/internal"
)

type SetScheduleDTO struct {
	DayOfWeek int    `json:"day_of_week" validate:"min=0,max=6"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

func (dto SetScheduleDTO) Validate(v *validator.Validate) error {
	if err := v.Struct(dto); err != nil {
		return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}
	start, err := ParseTimeOfDay(dto.StartTime)
	if err != nil {
		return internal.NewValidationError("hora de inicio inválida, use HH:MM", internal.ErrCodeInvalidTimeFormat)
	}
	end, err := ParseTimeOfDay(dto.EndTime)
	if err != nil {
		return internal.NewValidationError("hora de fin inválida, use HH:MM", internal.ErrCodeInvalidTimeFormat)
	}
	if end.Hour*60+end.Minute <= start.Hour*60+start.Minute {
		return internal.NewValidationError("la hora de fin debe ser posterior a la hora de inicio", internal.ErrCodeValidationFailed)
	}
	return nil
}

type SchedulesResponse struct {
	EmployeeID string          `json:"employee_id"`
	Schedules  []*WorkSchedule `json:"schedules"`
}
