package postgres

import (
	"time"

	"github.com/frahmantamala/attendance-tracker/internal/attendance"

	attendanceDatamodel "github.com/frahmantamala/attendance-tracker/internal/core/datamodel/attendance"
	"gorm.io/gorm"
)

// AttendanceRepository implements attendance.RepositoryAPI using GORM.
type AttendanceRepository struct {
	db *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) attendance.RepositoryAPI {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) CountForDay(employeeID string, date time.Time, kind string) (int64, error) {
	var count int64
	err := r.db.Model(&attendanceDatamodel.Event{}).
		Where("employee_id = ? AND date = ? AND kind = ?", employeeID, date, kind).
		Count(&count).Error
	return count, err
}

// Create inserts the event in its own transaction so a failed write leaves
// no partial state behind.
func (r *AttendanceRepository) Create(event *attendanceDatamodel.Event) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(event).Error
	})
}

func (r *AttendanceRepository) GetByID(id int64) (*attendanceDatamodel.Event, error) {
	var event attendanceDatamodel.Event
	err := r.db.Where("id = ?", id).First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *AttendanceRepository) UpdateTimestamp(id int64, timestamp time.Time) error {
	return r.db.Model(&attendanceDatamodel.Event{}).
		Where("id = ?", id).
		Update("timestamp", timestamp).Error
}

func (r *AttendanceRepository) ListForDay(date time.Time) ([]*attendanceDatamodel.Event, error) {
	var events []*attendanceDatamodel.Event
	err := r.db.Where("date = ?", date).
		Order("timestamp DESC").
		Find(&events).Error
	return events, err
}
