package asset

import (
	"time"

	internal "github.com/assetdesk/asset-management/internal"
	"github.com/assetdesk/asset-management/internal/core/common/validation"
	"github.com/shopspring/decimal"
)

// CreateAssetDTO is the transport shape for registering an asset. The total
// amount and the depreciation bookkeeping are always derived server-side.
type CreateAssetDTO struct {
	TagNumber           string          `json:"tag_number"`
	DateOfRegister      *time.Time      `json:"date_of_register,omitempty"`
	ItemDescription     string          `json:"item_description"`
	Department          string          `json:"department"`
	DepartmentManagerID int64           `json:"department_manager_id"`
	UserID              int64           `json:"user_id"`
	PhysicalLocation    string          `json:"physical_location"`
	AssetCondition      string          `json:"asset_condition"`
	Quantity            int             `json:"quantity"`
	Category            string          `json:"category"`
	CostPerItem         decimal.Decimal `json:"cost_per_item"`
	DepreciationRate    decimal.Decimal `json:"depreciation_rate"`
	UsefulLifeMonths    int             `json:"useful_life_months"`
	NumberOfMonthsInUse int             `json:"number_of_months_in_use"`
	InvoiceNumber       int64           `json:"invoice_number"`
}

func (d *CreateAssetDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("tag_number", d.TagNumber).Required().MaxLength(100)
	v.Field("item_description", d.ItemDescription).Required().MaxLength(500)
	v.Field("department", d.Department).Required().MaxLength(100)
	v.Field("department_manager_id", d.DepartmentManagerID).Required()
	v.Field("user_id", d.UserID).Required()
	v.Field("physical_location", d.PhysicalLocation).Required().MaxLength(255)
	v.Field("asset_condition", d.AssetCondition).Required().MaxLength(100)
	v.Field("quantity", d.Quantity).MinInt(1, internal.ErrCodeInvalidQuantity)
	v.Field("cost_per_item", d.CostPerItem).NonNegative(internal.ErrCodeInvalidAmount)
	v.Field("depreciation_rate", d.DepreciationRate).NonNegative(internal.ErrCodeInvalidRate)
	v.Field("useful_life_months", d.UsefulLifeMonths).MinInt(1, internal.ErrCodeInvalidLifetime)
	v.Field("number_of_months_in_use", d.NumberOfMonthsInUse).
		MinInt(0, internal.ErrCodeInvalidLifetime).
		MaxInt(d.UsefulLifeMonths, internal.ErrCodeInvalidLifetime)
	if d.DateOfRegister != nil {
		v.Field("date_of_register", *d.DateOfRegister).NotFuture()
	}
	return v.Validate()
}

// UpdateAssetDTO carries a full replacement of an asset's mutable fields.
type UpdateAssetDTO struct {
	CreateAssetDTO
}

func (d *UpdateAssetDTO) Validate() *internal.AppError {
	return d.CreateAssetDTO.Validate()
}

// ToDomain builds the domain asset with the derived total amount and a
// freshly computed depreciation schedule.
func (d *CreateAssetDTO) ToDomain() (*Asset, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	totalAmount := d.CostPerItem.Mul(decimal.NewFromInt(int64(d.Quantity)))

	schedule, err := ComputeDepreciation(totalAmount, d.DepreciationRate, d.UsefulLifeMonths, d.NumberOfMonthsInUse)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	dateOfRegister := now
	if d.DateOfRegister != nil {
		dateOfRegister = *d.DateOfRegister
	}

	a := &Asset{
		TagNumber:           d.TagNumber,
		DateOfRegister:      dateOfRegister,
		ItemDescription:     d.ItemDescription,
		Department:          d.Department,
		DepartmentManager:   PersonRef{ID: d.DepartmentManagerID},
		User:                PersonRef{ID: d.UserID},
		PhysicalLocation:    d.PhysicalLocation,
		AssetCondition:      d.AssetCondition,
		Quantity:            d.Quantity,
		Category:            d.Category,
		CostPerItem:         d.CostPerItem,
		TotalAmount:         totalAmount,
		DepreciationRate:    d.DepreciationRate,
		UsefulLifeMonths:    d.UsefulLifeMonths,
		NumberOfMonthsInUse: d.NumberOfMonthsInUse,
		InvoiceNumber:       d.InvoiceNumber,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	a.ApplySchedule(schedule)

	return a, nil
}
