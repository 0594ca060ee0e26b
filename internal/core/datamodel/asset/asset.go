package asset

import (
	"time"

	"github.com/shopspring/decimal"
)

type Asset struct {
	ID                      int64           `gorm:"primaryKey"`
	TagNumber               string          `gorm:"column:tag_number;uniqueIndex;not null"`
	DateOfRegister          time.Time       `gorm:"column:date_of_register;default:now()"`
	ItemDescription         string          `gorm:"column:item_description;not null"`
	Department              string          `gorm:"column:department;not null"`
	PhysicalLocation        string          `gorm:"column:physical_location;not null"`
	AssetCondition          string          `gorm:"column:asset_condition;not null"`
	Quantity                int             `gorm:"column:quantity;not null"`
	Category                string          `gorm:"column:category"`
	CostPerItem             decimal.Decimal `gorm:"column:cost_per_item;type:numeric(14,2);not null"`
	TotalAmount             decimal.Decimal `gorm:"column:total_amount;type:numeric(14,2);not null"`
	DepreciationRate        decimal.Decimal `gorm:"column:depreciation_rate;type:numeric(7,4);not null"`
	UsefulLifeMonths        int             `gorm:"column:useful_life_months;not null"`
	NumberOfMonthsInUse     int             `gorm:"column:months_in_use;not null"`
	NumberOfRemainingMonths int             `gorm:"column:remaining_months;not null"`
	MonthlyDepreciation     decimal.Decimal `gorm:"column:monthly_depreciation;type:numeric(14,2);not null"`
	AccumulatedDepreciation decimal.Decimal `gorm:"column:accumulated_depreciation;type:numeric(14,2);not null"`
	InvoiceNumber           int64           `gorm:"column:invoice_number;not null"`
	UserID                  int64           `gorm:"column:user_id;index;not null"`
	DepartmentManagerID     int64           `gorm:"column:department_manager_id;not null"`
	CreatedAt               time.Time       `gorm:"column:created_at;default:now()"`
	UpdatedAt               time.Time       `gorm:"column:updated_at;default:now()"`
}

func (Asset) TableName() string {
	return "assets"
}

// AssetWithNames carries an asset row joined with the first/last names of the
// assigned user and the department manager, the resolved form list endpoints return.
type AssetWithNames struct {
	Asset
	UserFirstName    string `gorm:"column:user_first_name"`
	UserLastName     string `gorm:"column:user_last_name"`
	ManagerFirstName string `gorm:"column:manager_first_name"`
	ManagerLastName  string `gorm:"column:manager_last_name"`
}
