package asset

import (
	"time"

	assetDatamodel "github.com/assetdesk/asset-management/internal/core/datamodel/asset"
	"github.com/shopspring/decimal"
)

// PersonRef is the resolved form of a user reference on an asset.
type PersonRef struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstname,omitempty"`
	LastName  string `json:"lastname,omitempty"`
}

type Asset struct {
	ID                      int64           `json:"id"`
	TagNumber               string          `json:"tag_number"`
	DateOfRegister          time.Time       `json:"date_of_register"`
	ItemDescription         string          `json:"item_description"`
	Department              string          `json:"department"`
	DepartmentManager       PersonRef       `json:"department_manager"`
	User                    PersonRef       `json:"user"`
	PhysicalLocation        string          `json:"physical_location"`
	AssetCondition          string          `json:"asset_condition"`
	Quantity                int             `json:"quantity"`
	Category                string          `json:"category"`
	CostPerItem             decimal.Decimal `json:"cost_per_item"`
	TotalAmount             decimal.Decimal `json:"total_amount"`
	DepreciationRate        decimal.Decimal `json:"depreciation_rate"`
	UsefulLifeMonths        int             `json:"useful_life_months"`
	NumberOfMonthsInUse     int             `json:"number_of_months_in_use"`
	NumberOfRemainingMonths int             `json:"number_of_remaining_months"`
	MonthlyDepreciation     decimal.Decimal `json:"monthly_depreciation"`
	AccumulatedDepreciation decimal.Decimal `json:"accumulated_depreciation"`
	InvoiceNumber           int64           `json:"invoice_number"`
	CreatedAt               time.Time       `json:"created_at"`
	UpdatedAt               time.Time       `json:"updated_at"`
}

// ApplySchedule copies a computed depreciation schedule onto the asset.
func (a *Asset) ApplySchedule(s DepreciationSchedule) {
	a.MonthlyDepreciation = s.MonthlyDepreciation
	a.AccumulatedDepreciation = s.AccumulatedDepreciation
	a.NumberOfRemainingMonths = s.RemainingMonths
}

// FullyDepreciated reports whether the accumulated depreciation has reached
// the asset's total amount.
func (a *Asset) FullyDepreciated() bool {
	return a.AccumulatedDepreciation.GreaterThanOrEqual(a.TotalAmount)
}

func ToDataModel(a *Asset) *assetDatamodel.Asset {
	return &assetDatamodel.Asset{
		ID:                      a.ID,
		TagNumber:               a.TagNumber,
		DateOfRegister:          a.DateOfRegister,
		ItemDescription:         a.ItemDescription,
		Department:              a.Department,
		PhysicalLocation:        a.PhysicalLocation,
		AssetCondition:          a.AssetCondition,
		Quantity:                a.Quantity,
		Category:                a.Category,
		CostPerItem:             a.CostPerItem,
		TotalAmount:             a.TotalAmount,
		DepreciationRate:        a.DepreciationRate,
		UsefulLifeMonths:        a.UsefulLifeMonths,
		NumberOfMonthsInUse:     a.NumberOfMonthsInUse,
		NumberOfRemainingMonths: a.NumberOfRemainingMonths,
		MonthlyDepreciation:     a.MonthlyDepreciation,
		AccumulatedDepreciation: a.AccumulatedDepreciation,
		InvoiceNumber:           a.InvoiceNumber,
		UserID:                  a.User.ID,
		DepartmentManagerID:     a.DepartmentManager.ID,
		CreatedAt:               a.CreatedAt,
		UpdatedAt:               a.UpdatedAt,
	}
}

func FromDataModel(dm *assetDatamodel.Asset) *Asset {
	return &Asset{
		ID:                      dm.ID,
		TagNumber:               dm.TagNumber,
		DateOfRegister:          dm.DateOfRegister,
		ItemDescription:         dm.ItemDescription,
		Department:              dm.Department,
		DepartmentManager:       PersonRef{ID: dm.DepartmentManagerID},
		User:                    PersonRef{ID: dm.UserID},
		PhysicalLocation:        dm.PhysicalLocation,
		AssetCondition:          dm.AssetCondition,
		Quantity:                dm.Quantity,
		Category:                dm.Category,
		CostPerItem:             dm.CostPerItem,
		TotalAmount:             dm.TotalAmount,
		DepreciationRate:        dm.DepreciationRate,
		UsefulLifeMonths:        dm.UsefulLifeMonths,
		NumberOfMonthsInUse:     dm.NumberOfMonthsInUse,
		NumberOfRemainingMonths: dm.NumberOfRemainingMonths,
		MonthlyDepreciation:     dm.MonthlyDepreciation,
		AccumulatedDepreciation: dm.AccumulatedDepreciation,
		InvoiceNumber:           dm.InvoiceNumber,
		CreatedAt:               dm.CreatedAt,
		UpdatedAt:               dm.UpdatedAt,
	}
}

func FromDataModelWithNames(dm *assetDatamodel.AssetWithNames) *Asset {
	a := FromDataModel(&dm.Asset)
	a.User.FirstName = dm.UserFirstName
	a.User.LastName = dm.UserLastName
	a.DepartmentManager.FirstName = dm.ManagerFirstName
	a.DepartmentManager.LastName = dm.ManagerLastName
	return a
}

func FromDataModelWithNamesSlice(dms []*assetDatamodel.AssetWithNames) []*Asset {
	result := make([]*Asset, len(dms))
	for i, dm := range dms {
		result[i] = FromDataModelWithNames(dm)
	}
	return result
}
