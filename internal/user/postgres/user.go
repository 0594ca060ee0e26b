package postgres

import (
	"time"

	userDatamodel "github.com/assetdesk/asset-management/internal/core/datamodel/user"
	"github.com/assetdesk/asset-management/internal/user"
	"gorm.io/gorm"
)

// UserRepository implements the user.Repository interface using GORM
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *user.User) error {
	dm := user.ToDataModel(u)
	if err := r.db.Create(dm).Error; err != nil {
		return err
	}
	u.ID = dm.ID
	return nil
}

func (r *UserRepository) GetByID(userID int64) (*user.User, error) {
	var dm userDatamodel.User
	err := r.db.Where("id = ?", userID).First(&dm).Error
	if err != nil {
		return nil, err
	}
	return user.FromDataModel(&dm), nil
}

func (r *UserRepository) GetByEmail(email string) (*user.User, error) {
	var dm userDatamodel.User
	err := r.db.Where("email = ?", email).First(&dm).Error
	if err != nil {
		return nil, err
	}
	return user.FromDataModel(&dm), nil
}

func (r *UserRepository) GetAll() ([]*user.User, error) {
	var dms []*userDatamodel.User
	err := r.db.Order("created_at DESC").Find(&dms).Error
	if err != nil {
		return nil, err
	}
	return user.FromDataModelSlice(dms), nil
}

func (r *UserRepository) UpdateRole(userID int64, role string) error {
	return r.db.Model(&userDatamodel.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"role":       role,
			"updated_at": time.Now(),
		}).Error
}
