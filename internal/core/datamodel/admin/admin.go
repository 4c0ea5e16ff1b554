package admin

import "time"

// AdminUser is the persistence model for administrative accounts.
type AdminUser struct {
	ID           int64     `gorm:"primaryKey"`
	Username     string    `gorm:"column:username;size:50;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password_hash;size:128;not null"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (AdminUser) TableName() string {
	return "admin_users"
}
