package attendance

import "time"

// Event is the persistence model for one check-in/check-out scan. Date holds
// the calendar day of Timestamp redundantly so day grouping stays a plain
// indexed equality filter; the two must be kept consistent on every write.
type Event struct {
	ID         int64     `gorm:"primaryKey"`
	EmployeeID string    `gorm:"column:employee_id;size:20;index:idx_attendance_day;not null"`
	Kind       string    `gorm:"column:kind;size:10;index:idx_attendance_day;not null"`
	Timestamp  time.Time `gorm:"column:timestamp;not null"`
	Date       time.Time `gorm:"column:date;type:date;index:idx_attendance_day;not null"`
	IsLate     bool      `gorm:"column:is_late;default:false"`
	Latitude   *float64  `gorm:"column:latitude"`
	Longitude  *float64  `gorm:"column:longitude"`
	Address    *string   `gorm:"column:address;size:255"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (Event) TableName() string {
	return "attendance_events"
}
