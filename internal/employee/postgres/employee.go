package postgres

import (
	"github.com/frahmantamala/attendance-tracker/internal/employee"

	employeeDatamodel "github.com/frahmantamala/attendance-tracker/internal/core/datamodel/employee"
	"gorm.io/gorm"
)

// EmployeeRepository implements employee.RepositoryAPI using GORM.
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.RepositoryAPI {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) GetByEmployeeID(employeeID string) (*employeeDatamodel.Employee, error) {
	var emp employeeDatamodel.Employee
	err := r.db.Where("employee_id = ?", employeeID).First(&emp).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) GetActiveByEmployeeID(employeeID string) (*employeeDatamodel.Employee, error) {
	var emp employeeDatamodel.Employee
	err := r.db.Where("employee_id = ? AND is_active = ?", employeeID, true).First(&emp).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) GetByEmail(email string) (*employeeDatamodel.Employee, error) {
	var emp employeeDatamodel.Employee
	err := r.db.Where("email = ?", email).First(&emp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) ListActive() ([]*employeeDatamodel.Employee, error) {
	var employees []*employeeDatamodel.Employee
	err := r.db.Where("is_active = ?", true).
		Order("employee_id ASC").
		Find(&employees).Error
	return employees, err
}

func (r *EmployeeRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&employeeDatamodel.Employee{}).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}

func (r *EmployeeRepository) Create(emp *employeeDatamodel.Employee) error {
	return r.db.Create(emp).Error
}

func (r *EmployeeRepository) Update(emp *employeeDatamodel.Employee) error {
	return r.db.Save(emp).Error
}
