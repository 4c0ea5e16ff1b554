package employee

import (
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/frahmantamala/attendance-tracker/internal"
	employeeDatamodel "github.com/frahmantamala/attendance-tracker/internal/core/datamodel/employee"
)

type RepositoryAPI interface {
	GetByEmployeeID(employeeID string) (*employeeDatamodel.Employee, error)
	GetActiveByEmployeeID(employeeID string) (*employeeDatamodel.Employee, error)
	GetByEmail(email string) (*employeeDatamodel.Employee, error)
	ListActive() ([]*employeeDatamodel.Employee, error)
	CountActive() (int64, error)
	Create(emp *employeeDatamodel.Employee) error
	Update(emp *employeeDatamodel.Employee) error
}

// QRGenerator produces the badge image scanned at the kiosk.
type QRGenerator interface {
	Generate(data, employeeID string) (string, error)
}

type Service struct {
	repo     RepositoryAPI
	qr       QRGenerator
	validate *validator.Validate
	logger   *slog.Logger
}

func NewService(repo RepositoryAPI, qr QRGenerator, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		qr:       qr,
		validate: validator.New(),
		logger:   logger,
	}
}

// CreateEmployee registers a new employee and generates their QR badge. The
// QR encodes the external employee identifier, which is what the scanner
// posts back on every scan.
func (s *Service) CreateEmployee(dto CreateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(s.validate); err != nil {
		s.logger.Error("employee validation failed", "error", err, "employee_id", dto.EmployeeID)
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(dto.Email))

	if existing, err := s.repo.GetByEmployeeID(dto.EmployeeID); err == nil && existing != nil {
		return nil, internal.ErrDuplicateEmployeeID
	}
	if existing, err := s.repo.GetByEmail(email); err == nil && existing != nil {
		return nil, internal.ErrDuplicateEmail
	}

	qrPath, err := s.qr.Generate(dto.EmployeeID, dto.EmployeeID)
	if err != nil {
		s.logger.Error("failed to generate qr code", "error", err, "employee_id", dto.EmployeeID)
		return nil, internal.NewInternalError("no se pudo generar el código QR", err)
	}

	now := time.Now()
	record := &employeeDatamodel.Employee{
		EmployeeID: dto.EmployeeID,
		Name:       strings.TrimSpace(dto.Name),
		LastName:   strings.TrimSpace(dto.LastName),
		Department: strings.TrimSpace(dto.Department),
		Position:   strings.TrimSpace(dto.Position),
		Email:      email,
		Phone:      strings.TrimSpace(dto.Phone),
		QRCode:     &qrPath,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create employee", "error", err, "employee_id", dto.EmployeeID)
		return nil, internal.NewInternalError("no se pudo registrar el empleado", err)
	}

	s.logger.Info("employee created", "employee_id", record.EmployeeID, "department", record.Department)
	return FromDataModel(record), nil
}

func (s *Service) GetEmployee(employeeID string) (*Employee, error) {
	record, err := s.repo.GetByEmployeeID(employeeID)
	if err != nil {
		s.logger.Error("failed to get employee", "error", err, "employee_id", employeeID)
		return nil, internal.ErrEmployeeNotFound
	}
	return FromDataModel(record), nil
}

func (s *Service) ListActiveEmployees() ([]*Employee, error) {
	records, err := s.repo.ListActive()
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, err
	}
	return FromDataModelSlice(records), nil
}

func (s *Service) UpdateEmployee(employeeID string, dto UpdateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(s.validate); err != nil {
		s.logger.Error("employee validation failed", "error", err, "employee_id", employeeID)
		return nil, err
	}

	record, err := s.repo.GetByEmployeeID(employeeID)
	if err != nil {
		return nil, internal.ErrEmployeeNotFound
	}

	email := strings.ToLower(strings.TrimSpace(dto.Email))
	if other, err := s.repo.GetByEmail(email); err == nil && other != nil && other.EmployeeID != employeeID {
		return nil, internal.ErrDuplicateEmail
	}

	record.Name = strings.TrimSpace(dto.Name)
	record.LastName = strings.TrimSpace(dto.LastName)
	record.Department = strings.TrimSpace(dto.Department)
	record.Position = strings.TrimSpace(dto.Position)
	record.Email = email
	record.Phone = strings.TrimSpace(dto.Phone)
	record.UpdatedAt = time.Now()

	if err := s.repo.Update(record); err != nil {
		s.logger.Error("failed to update employee", "error", err, "employee_id", employeeID)
		return nil, internal.NewInternalError("no se pudo actualizar el empleado", err)
	}

	s.logger.Info("employee updated", "employee_id", employeeID)
	return FromDataModel(record), nil
}

// DeactivateEmployee flips the active flag. Attendance history is never
// deleted.
func (s *Service) DeactivateEmployee(employeeID string) error {
	record, err := s.repo.GetByEmployeeID(employeeID)
	if err != nil {
		return internal.ErrEmployeeNotFound
	}

	record.IsActive = false
	record.UpdatedAt = time.Now()

	if err := s.repo.Update(record); err != nil {
		s.logger.Error("failed to deactivate employee", "error", err, "employee_id", employeeID)
		return internal.NewInternalError("no se pudo desactivar el empleado", err)
	}

	s.logger.Info("employee deactivated", "employee_id", employeeID)
	return nil
}

// RegenerateQRCodes rewrites the badge image for every active employee and
// updates the stored path when it changed.
func (s *Service) RegenerateQRCodes() (int, error) {
	records, err := s.repo.ListActive()
	if err != nil {
		return 0, err
	}

	count := 0
	for _, record := range records {
		qrPath, err := s.qr.Generate(record.EmployeeID, record.EmployeeID)
		if err != nil {
			s.logger.Error("failed to regenerate qr code", "error", err, "employee_id", record.EmployeeID)
			continue
		}
		if record.QRCode == nil || *record.QRCode != qrPath {
			record.QRCode = &qrPath
			record.UpdatedAt = time.Now()
			if err := s.repo.Update(record); err != nil {
				s.logger.Error("failed to store qr path", "error", err, "employee_id", record.EmployeeID)
				continue
			}
		}
		count++
	}

	s.logger.Info("qr codes regenerated", "count", count)
	return count, nil
}
