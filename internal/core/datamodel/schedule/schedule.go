package schedule

import "time"

// WorkSchedule is one weekly schedule row. DayOfWeek follows the original
// convention: 0 = Monday ... 6 = Sunday. Start and end times are stored as
// "HH:MM" strings.
type WorkSchedule struct {
	ID         int64     `gorm:"primaryKey"`
	EmployeeID string    `gorm:"column:employee_id;size:20;index;not null"`
	DayOfWeek  int       `gorm:"column:day_of_week;not null"`
	StartTime  string    `gorm:"column:start_time;size:5;not null"`
	EndTime    string    `gorm:"column:end_time;size:5;not null"`
	IsActive   bool      `gorm:"column:is_active;default:true"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (WorkSchedule) TableName() string {
	return "work_schedules"
}
