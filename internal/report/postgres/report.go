package postgres

import (
	"time"

	"github.com/frahmantamala/attendance-tracker/internal/report"

	attendanceDatamodel "github.com/frahmantamala/attendance-tracker/internal/core/datamodel/attendance"
	employeeDatamodel "github.com/frahmantamala/attendance-tracker/internal/core/datamodel/employee"
	"gorm.io/gorm"
)

// ReportRepository reads attendance events joined with employee identity.
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) report.RepositoryAPI {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) ListEvents(filter report.Filter) ([]*report.EventRecord, error) {
	type joinedRow struct {
		EventID    int64
		EmployeeID string
		Name       string
		LastName   string
		Department string
		Kind       string
		Timestamp  time.Time
		Date       time.Time
		IsLate     bool
		Address    *string
	}

	query := r.db.Model(&attendanceDatamodel.Event{}).
		Select(`attendance_events.id AS event_id,
			attendance_events.employee_id,
			employees.name,
			employees.last_name,
			employees.department,
			attendance_events.kind,
			attendance_events.timestamp,
			attendance_events.date,
			attendance_events.is_late,
			attendance_events.address`).
		Joins("JOIN employees ON employees.employee_id = attendance_events.employee_id")

	if filter.From != nil {
		query = query.Where("attendance_events.date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("attendance_events.date <= ?", *filter.To)
	}
	if filter.EmployeeID != "" {
		query = query.Where("attendance_events.employee_id = ?", filter.EmployeeID)
	}

	var rows []joinedRow
	if err := query.Order("attendance_events.timestamp ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]*report.EventRecord, len(rows))
	for i, row := range rows {
		records[i] = &report.EventRecord{
			EventID:      row.EventID,
			EmployeeID:   row.EmployeeID,
			EmployeeName: row.Name + " " + row.LastName,
			Department:   row.Department,
			Kind:         row.Kind,
			Timestamp:    row.Timestamp,
			Date:         row.Date,
			IsLate:       row.IsLate,
			Address:      row.Address,
		}
	}
	return records, nil
}

func (r *ReportRepository) CountEventsOn(date time.Time, kind string, lateOnly bool) (int64, error) {
	query := r.db.Model(&attendanceDatamodel.Event{}).
		Where("date = ? AND kind = ?", date, kind)
	if lateOnly {
		query = query.Where("is_late = ?", true)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (r *ReportRepository) CountActiveEmployees() (int64, error) {
	var count int64
	err := r.db.Model(&employeeDatamodel.Employee{}).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}
