package attendance

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/attendance-tracker/internal"
	attendanceDatamodel "github.com/frahmantamala/attendance-tracker/internal/core/datamodel/attendance"
	employeeDatamodel "github.com/frahmantamala/attendance-tracker/internal/core/datamodel/employee"
	"github.com/frahmantamala/attendance-tracker/internal/schedule"
)

type RepositoryAPI interface {
	CountForDay(employeeID string, date time.Time, kind string) (int64, error)
	Create(event *attendanceDatamodel.Event) error
	GetByID(id int64) (*attendanceDatamodel.Event, error)
	UpdateTimestamp(id int64, timestamp time.Time) error
	ListForDay(date time.Time) ([]*attendanceDatamodel.Event, error)
}

// EmployeeDirectory resolves scan identifiers against employee records.
type EmployeeDirectory interface {
	GetActiveByEmployeeID(employeeID string) (*employeeDatamodel.Employee, error)
}

// StartTimeResolver is the schedule lookup: expected start for an employee on
// a weekday, with the configured default as silent fallback.
type StartTimeResolver interface {
	ExpectedStartTime(employeeID string, dayOfWeek int) schedule.TimeOfDay
}

// Service is the event resolver. Per-day check-in/check-out counts are
// recomputed from storage on every scan; nothing is cached across requests,
// so concurrent scans for the same employee can race. Duplicates that slip
// through are absorbed downstream by interval reconciliation.
type Service struct {
	repo       RepositoryAPI
	employees  EmployeeDirectory
	schedules  StartTimeResolver
	allowEarly bool
	logger     *slog.Logger
	now        func() time.Time
}

func NewService(repo RepositoryAPI, employees EmployeeDirectory, schedules StartTimeResolver, allowEarly bool, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		employees:  employees,
		schedules:  schedules,
		allowEarly: allowEarly,
		logger:     logger,
		now:        time.Now,
	}
}

// WithClock overrides the service clock. Intended for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// RegisterScan classifies one scan as check-in or check-out and persists it,
// or rejects it with a policy error.
func (s *Service) RegisterScan(dto ScanDTO) (*ScanResult, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("scan validation failed", "error", err)
		return nil, err
	}

	emp, err := s.employees.GetActiveByEmployeeID(dto.EmployeeID)
	if err != nil || emp == nil {
		s.logger.Warn("scan for unknown or inactive employee", "employee_id", dto.EmployeeID)
		return nil, internal.ErrEmployeeNotFound
	}

	now := s.now()
	today := DateOf(now)

	checkIns, err := s.repo.CountForDay(dto.EmployeeID, today, KindCheckIn)
	if err != nil {
		return nil, internal.NewInternalError("no se pudo consultar la asistencia de hoy", err)
	}
	checkOuts, err := s.repo.CountForDay(dto.EmployeeID, today, KindCheckOut)
	if err != nil {
		return nil, internal.NewInternalError("no se pudo consultar la asistencia de hoy", err)
	}

	switch {
	case checkIns == 0:
		return s.registerCheckIn(dto, now, today)
	case checkIns == 1 && checkOuts == 0:
		return s.registerCheckOut(dto, now, today)
	default:
		s.logger.Info("scan rejected, day already completed",
			"employee_id", dto.EmployeeID,
			"check_ins", checkIns,
			"check_outs", checkOuts)
		return nil, internal.ErrAlreadyCompletedToday
	}
}

func (s *Service) registerCheckIn(dto ScanDTO, now, today time.Time) (*ScanResult, error) {
	expected := s.schedules.ExpectedStartTime(dto.EmployeeID, schedule.WeekdayIndex(now))
	startAt := expected.At(now)

	if !s.allowEarly && now.Before(startAt) {
		s.logger.Info("scan rejected, before permitted start",
			"employee_id", dto.EmployeeID,
			"expected_start", expected.String())
		return nil, internal.NewRejectionError(
			fmt.Sprintf("no se puede marcar asistencia antes de la hora permitida (%s)", expected),
			internal.ErrCodeTooEarly)
	}

	isLate := now.After(startAt)

	event := &attendanceDatamodel.Event{
		EmployeeID: dto.EmployeeID,
		Kind:       KindCheckIn,
		Timestamp:  now,
		Date:       today,
		IsLate:     isLate,
		Latitude:   dto.Latitude,
		Longitude:  dto.Longitude,
		Address:    dto.Address,
		CreatedAt:  now,
	}
	if err := s.repo.Create(event); err != nil {
		s.logger.Error("failed to persist check-in", "error", err, "employee_id", dto.EmployeeID)
		return nil, internal.NewInternalError("no se pudo registrar la asistencia", err)
	}

	s.logger.Info("check-in registered",
		"employee_id", dto.EmployeeID,
		"late", isLate,
		"expected_start", expected.String())

	return &ScanResult{
		Accepted:  true,
		EventKind: KindCheckIn,
		Late:      isLate,
		Timestamp: now,
		Message:   "¡Se registró tu asistencia correctamente!",
	}, nil
}

func (s *Service) registerCheckOut(dto ScanDTO, now, today time.Time) (*ScanResult, error) {
	// Checkout lateness is not modeled.
	event := &attendanceDatamodel.Event{
		EmployeeID: dto.EmployeeID,
		Kind:       KindCheckOut,
		Timestamp:  now,
		Date:       today,
		IsLate:     false,
		Latitude:   dto.Latitude,
		Longitude:  dto.Longitude,
		Address:    dto.Address,
		CreatedAt:  now,
	}
	if err := s.repo.Create(event); err != nil {
		s.logger.Error("failed to persist check-out", "error", err, "employee_id", dto.EmployeeID)
		return nil, internal.NewInternalError("no se pudo registrar la salida", err)
	}

	s.logger.Info("check-out registered", "employee_id", dto.EmployeeID)

	return &ScanResult{
		Accepted:  true,
		EventKind: KindCheckOut,
		Late:      false,
		Timestamp: now,
		Message:   "¡Se registró tu salida correctamente!",
	}, nil
}

// CorrectEventTime replaces the time-of-day of a persisted event, keeping its
// calendar date. This is the only update path for attendance events.
func (s *Service) CorrectEventTime(eventID int64, dto CorrectTimeDTO) (*Event, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("time correction validation failed", "error", err, "event_id", eventID)
		return nil, err
	}

	record, err := s.repo.GetByID(eventID)
	if err != nil || record == nil {
		return nil, internal.ErrEventNotFound
	}

	newTime, _ := time.Parse("15:04:05", dto.NewTime)
	orig := record.Timestamp
	updated := time.Date(orig.Year(), orig.Month(), orig.Day(),
		newTime.Hour(), newTime.Minute(), newTime.Second(), 0, orig.Location())

	if err := s.repo.UpdateTimestamp(eventID, updated); err != nil {
		s.logger.Error("failed to update event time", "error", err, "event_id", eventID)
		return nil, internal.NewInternalError("no se pudo actualizar la hora", err)
	}

	record.Timestamp = updated
	s.logger.Info("event time corrected",
		"event_id", eventID,
		"new_time", dto.NewTime,
		"date", record.Date.Format("2006-01-02"))
	return FromDataModel(record), nil
}

// TodayEvents returns today's scans, newest first, for the scanner feed.
func (s *Service) TodayEvents() ([]*Event, error) {
	records, err := s.repo.ListForDay(DateOf(s.now()))
	if err != nil {
		s.logger.Error("failed to list today's events", "error", err)
		return nil, err
	}
	return FromDataModelSlice(records), nil
}
