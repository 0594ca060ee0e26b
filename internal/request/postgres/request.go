package postgres

import (
	"time"

	requestDatamodel "github.com/assetdesk/asset-management/internal/core/datamodel/request"
	"github.com/assetdesk/asset-management/internal/request"
	"gorm.io/gorm"
)

// RequestRepository implements the request.Repository interface using GORM
type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) request.Repository {
	return &RequestRepository{db: db}
}

const requestWithManagerSelect = `
SELECT r.*,
       m.first_name AS manager_first_name,
       m.last_name  AS manager_last_name
FROM requests r
LEFT JOIN users m ON m.id = r.department_manager_id`

func (r *RequestRepository) Create(req *request.Request) error {
	dm := request.ToDataModel(req)
	if err := r.db.Create(dm).Error; err != nil {
		return err
	}
	req.ID = dm.ID
	return nil
}

func (r *RequestRepository) GetByID(id int64) (*request.Request, error) {
	var dm requestDatamodel.RequestWithManager
	err := r.db.Raw(requestWithManagerSelect+" WHERE r.id = ?", id).Scan(&dm).Error
	if err != nil {
		return nil, err
	}
	if dm.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return request.FromDataModelWithManager(&dm), nil
}

func (r *RequestRepository) GetByUserID(userID int64, limit, offset int) ([]*request.Request, error) {
	var dms []*requestDatamodel.RequestWithManager
	err := r.db.Raw(requestWithManagerSelect+" WHERE r.user_id = ? ORDER BY r.created_at DESC LIMIT ? OFFSET ?",
		userID, limit, offset).Scan(&dms).Error
	if err != nil {
		return nil, err
	}
	return request.FromDataModelWithManagerSlice(dms), nil
}

func (r *RequestRepository) GetAll(limit, offset int) ([]*request.Request, error) {
	var dms []*requestDatamodel.RequestWithManager
	err := r.db.Raw(requestWithManagerSelect+" ORDER BY r.created_at DESC LIMIT ? OFFSET ?",
		limit, offset).Scan(&dms).Error
	if err != nil {
		return nil, err
	}
	return request.FromDataModelWithManagerSlice(dms), nil
}

func (r *RequestRepository) UpdateStatus(id int64, status string, processedAt time.Time) error {
	return r.db.Model(&requestDatamodel.Request{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       status,
			"processed_at": processedAt,
			"updated_at":   time.Now(),
		}).Error
}

func (r *RequestRepository) Delete(id int64) error {
	return r.db.Delete(&requestDatamodel.Request{}, id).Error
}
