package postgres

import (
	"errors"

	"github.com/frahmantamala/attendance-tracker/internal/auth"

	adminDatamodel "github.com/frahmantamala/attendance-tracker/internal/core/datamodel/admin"
	"gorm.io/gorm"
)

type AdminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) auth.RepositoryAPI {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) GetByUsername(username string) (*adminDatamodel.AdminUser, error) {
	var admin adminDatamodel.AdminUser
	err := r.db.Where("username = ?", username).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

func (r *AdminRepository) Create(admin *adminDatamodel.AdminUser) error {
	return r.db.Create(admin).Error
}
