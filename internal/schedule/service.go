package schedule

import (
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/frahmantamala/attendance-tracker/internal"
	scheduleDatamodel "github.com/frahmantamala/attendance-tracker/internal/core/datamodel/schedule"
)

type RepositoryAPI interface {
	GetActiveByEmployeeAndDay(employeeID string, dayOfWeek int) (*scheduleDatamodel.WorkSchedule, error)
	ListByEmployee(employeeID string) ([]*scheduleDatamodel.WorkSchedule, error)
	Create(ws *scheduleDatamodel.WorkSchedule) error
	Update(ws *scheduleDatamodel.WorkSchedule) error
}

type Service struct {
	repo         RepositoryAPI
	defaultStart TimeOfDay
	validate     *validator.Validate
	logger       *slog.Logger
}

func NewService(repo RepositoryAPI, defaultStart TimeOfDay, logger *slog.Logger) *Service {
	return &Service{
		repo:         repo,
		defaultStart: defaultStart,
		validate:     validator.New(),
		logger:       logger,
	}
}

// ExpectedStartTime resolves the scheduled start for an employee on a
// weekday (0 = Monday). A missing or unreadable schedule silently falls back
// to the system default; that fallback is policy, not an error.
func (s *Service) ExpectedStartTime(employeeID string, dayOfWeek int) TimeOfDay {
	ws, err := s.repo.GetActiveByEmployeeAndDay(employeeID, dayOfWeek)
	if err != nil || ws == nil {
		return s.defaultStart
	}

	start, parseErr := ParseTimeOfDay(ws.StartTime)
	if parseErr != nil {
		s.logger.Warn("schedule row has malformed start time, using default",
			"employee_id", employeeID,
			"day_of_week", dayOfWeek,
			"start_time", ws.StartTime)
		return s.defaultStart
	}
	return start
}

// SetSchedule upserts the active schedule row for (employee, weekday).
func (s *Service) SetSchedule(employeeID string, dto SetScheduleDTO) (*WorkSchedule, error) {
	if err := dto.Validate(s.validate); err != nil {
		s.logger.Error("schedule validation failed", "error", err, "employee_id", employeeID)
		return nil, err
	}

	now := time.Now()
	existing, err := s.repo.GetActiveByEmployeeAndDay(employeeID, dto.DayOfWeek)
	if err == nil && existing != nil {
		existing.StartTime = dto.StartTime
		existing.EndTime = dto.EndTime
		existing.UpdatedAt = now
		if err := s.repo.Update(existing); err != nil {
			s.logger.Error("failed to update schedule", "error", err, "employee_id", employeeID)
			return nil, internal.NewInternalError("no se pudo actualizar el horario", err)
		}
		s.logger.Info("schedule updated", "employee_id", employeeID, "day_of_week", dto.DayOfWeek)
		return FromDataModel(existing), nil
	}

	record := &scheduleDatamodel.WorkSchedule{
		EmployeeID: employeeID,
		DayOfWeek:  dto.DayOfWeek,
		StartTime:  dto.StartTime,
		EndTime:    dto.EndTime,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create schedule", "error", err, "employee_id", employeeID)
		return nil, internal.NewInternalError("no se pudo crear el horario", err)
	}

	s.logger.Info("schedule created", "employee_id", employeeID, "day_of_week", dto.DayOfWeek)
	return FromDataModel(record), nil
}

func (s *Service) ListSchedules(employeeID string) ([]*WorkSchedule, error) {
	records, err := s.repo.ListByEmployee(employeeID)
	if err != nil {
		s.logger.Error("failed to list schedules", "error", err, "employee_id", employeeID)
		return nil, err
	}
	return FromDataModelSlice(records), nil
}

// DeactivateDay retires the active schedule row for a weekday so the lookup
// falls back to the default start time.
func (s *Service) DeactivateDay(employeeID string, dayOfWeek int) error {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return internal.NewValidationError("día de la semana inválido", internal.ErrCodeInvalidWeekday)
	}

	existing, err := s.repo.GetActiveByEmployeeAndDay(employeeID, dayOfWeek)
	if err != nil || existing == nil {
		return internal.NewNotFoundError("horario no encontrado", internal.ErrCodeScheduleNotFound)
	}

	existing.IsActive = false
	existing.UpdatedAt = time.Now()
	if err := s.repo.Update(existing); err != nil {
		s.logger.Error("failed to deactivate schedule", "error", err, "employee_id", employeeID)
		return internal.NewInternalError("no se pudo desactivar el horario", err)
	}

	s.logger.Info("schedule deactivated", "employee_id", employeeID, "day_of_week", dayOfWeek)
	return nil
}
