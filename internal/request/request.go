package request

import (
	"time"

	requestDatamodel "github.com/assetdesk/asset-management/internal/core/datamodel/request"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

// ValidStatus reports whether status is one of the known workflow states.
func ValidStatus(status string) bool {
	return status == StatusPending || status == StatusApproved || status == StatusRejected
}

type Request struct {
	ID                int64      `json:"id"`
	FirstName         string     `json:"firstname"`
	LastName          string     `json:"lastname"`
	Date              time.Time  `json:"date"`
	Department        string     `json:"department"`
	DepartmentManager PersonRef  `json:"department_manager"`
	AssetType         string     `json:"asset_type"`
	Quantity          int        `json:"quantity"`
	Description       string     `json:"description,omitempty"`
	Status            string     `json:"status"`
	UserID            int64      `json:"user_id"`
	ProcessedAt       *time.Time `json:"processed_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// PersonRef is the resolved form of the department manager reference.
type PersonRef struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstname,omitempty"`
	LastName  string `json:"lastname,omitempty"`
}

// IsTerminal reports whether the request has reached a final state. Terminal
// requests can never transition again.
func (r *Request) IsTerminal() bool {
	return r.Status == StatusApproved || r.Status == StatusRejected
}

// CanTransitionTo reports whether the request may move to the given status.
func (r *Request) CanTransitionTo(status string) bool {
	if !ValidStatus(status) {
		return false
	}
	return !r.IsTerminal()
}

func (r *Request) Approve() {
	r.Status = StatusApproved
	now := time.Now()
	r.ProcessedAt = &now
	r.UpdatedAt = now
}

func (r *Request) Reject() {
	r.Status = StatusRejected
	now := time.Now()
	r.ProcessedAt = &now
	r.UpdatedAt = now
}

func ToDataModel(r *Request) *requestDatamodel.Request {
	return &requestDatamodel.Request{
		ID:                  r.ID,
		FirstName:           r.FirstName,
		LastName:            r.LastName,
		Date:                r.Date,
		Department:          r.Department,
		DepartmentManagerID: r.DepartmentManager.ID,
		AssetType:           r.AssetType,
		Quantity:            r.Quantity,
		Description:         r.Description,
		Status:              r.Status,
		UserID:              r.UserID,
		ProcessedAt:         r.ProcessedAt,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}
}

func FromDataModel(dm *requestDatamodel.Request) *Request {
	return &Request{
		ID:                dm.ID,
		FirstName:         dm.FirstName,
		LastName:          dm.LastName,
		Date:              dm.Date,
		Department:        dm.Department,
		DepartmentManager: PersonRef{ID: dm.DepartmentManagerID},
		AssetType:         dm.AssetType,
		Quantity:          dm.Quantity,
		Description:       dm.Description,
		Status:            dm.Status,
		UserID:            dm.UserID,
		ProcessedAt:       dm.ProcessedAt,
		CreatedAt:         dm.CreatedAt,
		UpdatedAt:         dm.UpdatedAt,
	}
}

func FromDataModelWithManager(dm *requestDatamodel.RequestWithManager) *Request {
	r := FromDataModel(&dm.Request)
	r.DepartmentManager.FirstName = dm.ManagerFirstName
	r.DepartmentManager.LastName = dm.ManagerLastName
	return r
}

func FromDataModelWithManagerSlice(dms []*requestDatamodel.RequestWithManager) []*Request {
	result := make([]*Request, len(dms))
	for i, dm := range dms {
		result[i] = FromDataModelWithManager(dm)
	}
	return result
}
