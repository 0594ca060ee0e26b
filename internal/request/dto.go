package request

import (
	"time"

	internal "github.com/assetdesk/asset-management/internal"
	"github.com/assetdesk/asset-management/internal/core/common/validation"
)

// CreateRequestDTO is the transport shape for submitting an asset request.
// The owner and the Pending status are always set server-side.
type CreateRequestDTO struct {
	FirstName           string     `json:"firstname"`
	LastName            string     `json:"lastname"`
	Date                *time.Time `json:"date,omitempty"`
	Department          string     `json:"department"`
	DepartmentManagerID int64      `json:"department_manager_id"`
	AssetType           string     `json:"asset_type"`
	Quantity            int        `json:"quantity"`
	Description         string     `json:"description,omitempty"`
}

func (d *CreateRequestDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("firstname", d.FirstName).Required().MaxLength(50)
	v.Field("lastname", d.LastName).Required().MaxLength(50)
	v.Field("department", d.Department).Required().MaxLength(100)
	v.Field("department_manager_id", d.DepartmentManagerID).Required()
	v.Field("asset_type", d.AssetType).Required().MaxLength(100)
	v.Field("quantity", d.Quantity).MinInt(1, internal.ErrCodeInvalidQuantity)
	v.Field("description", d.Description).MaxLength(500)
	return v.Validate()
}

// UpdateStatusDTO carries the status decision for a pending request.
type UpdateStatusDTO struct {
	Status string `json:"status"`
}

func (d *UpdateStatusDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("status", d.Status).Required().
		OneOf([]string{StatusPending, StatusApproved, StatusRejected}, internal.ErrCodeInvalidStatus)
	return v.Validate()
}
