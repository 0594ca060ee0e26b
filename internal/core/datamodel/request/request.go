package request

import "time"

type Request struct {
	ID                  int64      `gorm:"primaryKey"`
	FirstName           string     `gorm:"column:first_name;not null"`
	LastName            string     `gorm:"column:last_name;not null"`
	Date                time.Time  `gorm:"column:date;default:now()"`
	Department          string     `gorm:"column:department;not null"`
	DepartmentManagerID int64      `gorm:"column:department_manager_id;not null"`
	AssetType           string     `gorm:"column:asset_type;not null"`
	Quantity            int        `gorm:"column:quantity;not null"`
	Description         string     `gorm:"column:description"`
	Status              string     `gorm:"column:status;default:Pending"`
	UserID              int64      `gorm:"column:user_id;index;not null"`
	ProcessedAt         *time.Time `gorm:"column:processed_at"`
	CreatedAt           time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt           time.Time  `gorm:"column:updated_at;default:now()"`
}

func (Request) TableName() string {
	return "requests"
}

// RequestWithManager carries a request row joined with the department
// manager's first/last names.
type RequestWithManager struct {
	Request
	ManagerFirstName string `gorm:"column:manager_first_name"`
	ManagerLastName  string `gorm:"column:manager_last_name"`
}
