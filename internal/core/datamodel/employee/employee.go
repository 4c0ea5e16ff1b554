package employee

import (
	"fmt"
	"time"
)

// Employee is the persistence model for employee records. Deactivation is a
// soft flag so attendance history survives.
type Employee struct {
	ID         int64     `gorm:"primaryKey"`
	EmployeeID string    `gorm:"column:employee_id;size:20;uniqueIndex;not null"`
	Name       string    `gorm:"column:name;size:100;not null"`
	LastName   string    `gorm:"column:last_name;size:100;not null"`
	Department string    `gorm:"column:department;size:50;not null"`
	Position   string    `gorm:"column:position;size:50;not null"`
	Email      string    `gorm:"column:email;size:120;uniqueIndex;not null"`
	Phone      string    `gorm:"column:phone;size:20;not null"`
	QRCode     *string   `gorm:"column:qr_code;size:255"`
	IsActive   bool      `gorm:"column:is_active;default:true"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) FullName() string {
	return fmt.Sprintf("%s %s", e.Name, e.LastName)
}
