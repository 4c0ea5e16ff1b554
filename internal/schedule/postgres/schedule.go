package postgres

import (
	"github.com/frahmantamala/attendance-tracker/internal/schedule"

	scheduleDatamodel "github.com/frahmantamala/attendance-tracker/internal/core/datamodel/schedule"
	"gorm.io/gorm"
)

// ScheduleRepository implements schedule.RepositoryAPI using GORM.
type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepository(db *gorm.DB) schedule.RepositoryAPI {
	return &ScheduleRepository{db: db}
}

// GetActiveByEmployeeAndDay returns the first active row for the pair. If
// duplicates exist the oldest wins, matching the lookup contract.
func (r *ScheduleRepository) GetActiveByEmployeeAndDay(employeeID string, dayOfWeek int) (*scheduleDatamodel.WorkSchedule, error) {
	var ws scheduleDatamodel.WorkSchedule
	err := r.db.Where("employee_id = ? AND day_of_week = ? AND is_active = ?", employeeID, dayOfWeek, true).
		Order("id ASC").
		First(&ws).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &ws, nil
}

func (r *ScheduleRepository) ListByEmployee(employeeID string) ([]*scheduleDatamodel.WorkSchedule, error) {
	var schedules []*scheduleDatamodel.WorkSchedule
	err := r.db.Where("employee_id = ?", employeeID).
		Order("day_of_week ASC, id ASC").
		Find(&schedules).Error
	return schedules, err
}

func (r *ScheduleRepository) Create(ws *scheduleDatamodel.WorkSchedule) error {
	return r.db.Create(ws).Error
}

func (r *ScheduleRepository) Update(ws *scheduleDatamodel.WorkSchedule) error {
	return r.db.Save(ws).Error
}
