package postgres

import (
	"time"

	"github.com/assetdesk/asset-management/internal/asset"
	assetDatamodel "github.com/assetdesk/asset-management/internal/core/datamodel/asset"
	"gorm.io/gorm"
)

// AssetRepository implements the asset.Repository interface using GORM
type AssetRepository struct {
	db *gorm.DB
}

func NewAssetRepository(db *gorm.DB) asset.Repository {
	return &AssetRepository{db: db}
}

const assetWithNamesSelect = `
SELECT a.*,
       u.first_name AS user_first_name,
       u.last_name  AS user_last_name,
       m.first_name AS manager_first_name,
       m.last_name  AS manager_last_name
FROM assets a
LEFT JOIN users u ON u.id = a.user_id
LEFT JOIN users m ON m.id = a.department_manager_id`

func (r *AssetRepository) Create(a *asset.Asset) error {
	dm := asset.ToDataModel(a)
	if err := r.db.Create(dm).Error; err != nil {
		return err
	}
	a.ID = dm.ID
	return nil
}

func (r *AssetRepository) GetByID(id int64) (*asset.Asset, error) {
	var dm assetDatamodel.AssetWithNames
	err := r.db.Raw(assetWithNamesSelect+" WHERE a.id = ?", id).Scan(&dm).Error
	if err != nil {
		return nil, err
	}
	if dm.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return asset.FromDataModelWithNames(&dm), nil
}

func (r *AssetRepository) GetByTagNumber(tagNumber string) (*asset.Asset, error) {
	var dm assetDatamodel.Asset
	err := r.db.Where("tag_number = ?", tagNumber).First(&dm).Error
	if err != nil {
		return nil, err
	}
	return asset.FromDataModel(&dm), nil
}

func (r *AssetRepository) GetAll(limit, offset int) ([]*asset.Asset, error) {
	var dms []*assetDatamodel.AssetWithNames
	err := r.db.Raw(assetWithNamesSelect+" ORDER BY a.created_at DESC LIMIT ? OFFSET ?", limit, offset).
		Scan(&dms).Error
	if err != nil {
		return nil, err
	}
	return asset.FromDataModelWithNamesSlice(dms), nil
}

func (r *AssetRepository) Update(a *asset.Asset) error {
	dm := asset.ToDataModel(a)
	dm.UpdatedAt = time.Now()
	return r.db.Save(dm).Error
}

func (r *AssetRepository) Delete(id int64) error {
	return r.db.Delete(&assetDatamodel.Asset{}, id).Error
}
