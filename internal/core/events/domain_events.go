package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeRequestCreated       = "request.created"
	EventTypeRequestStatusChanged = "request.status_changed"
	EventTypeAssetRegistered      = "asset.registered"
	EventTypeAssetDepreciated     = "asset.depreciated"
)

type RequestCreatedEvent struct {
	BaseEvent
	RequestID int64  `json:"request_id"`
	UserID    int64  `json:"user_id"`
	AssetType string `json:"asset_type"`
	Quantity  int    `json:"quantity"`
}

func NewRequestCreatedEvent(requestID, userID int64, assetType string, quantity int) *RequestCreatedEvent {
	return &RequestCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeRequestCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"request_id": requestID,
				"user_id":    userID,
				"asset_type": assetType,
				"quantity":   quantity,
			},
		},
		RequestID: requestID,
		UserID:    userID,
		AssetType: assetType,
		Quantity:  quantity,
	}
}

type RequestStatusChangedEvent struct {
	BaseEvent
	RequestID      int64  `json:"request_id"`
	UserID         int64  `json:"user_id"`
	PreviousStatus string `json:"previous_status"`
	NewStatus      string `json:"new_status"`
	ChangedBy      int64  `json:"changed_by"`
}

func NewRequestStatusChangedEvent(requestID, userID int64, previousStatus, newStatus string, changedBy int64) *RequestStatusChangedEvent {
	return &RequestStatusChangedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeRequestStatusChanged,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"request_id":      requestID,
				"user_id":         userID,
				"previous_status": previousStatus,
				"new_status":      newStatus,
				"changed_by":      changedBy,
			},
		},
		RequestID:      requestID,
		UserID:         userID,
		PreviousStatus: previousStatus,
		NewStatus:      newStatus,
		ChangedBy:      changedBy,
	}
}

type AssetRegisteredEvent struct {
	BaseEvent
	AssetID     int64  `json:"asset_id"`
	TagNumber   string `json:"tag_number"`
	TotalAmount string `json:"total_amount"`
	Department  string `json:"department"`
}

func NewAssetRegisteredEvent(assetID int64, tagNumber, totalAmount, department string) *AssetRegisteredEvent {
	return &AssetRegisteredEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeAssetRegistered,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"asset_id":     assetID,
				"tag_number":   tagNumber,
				"total_amount": totalAmount,
				"department":   department,
			},
		},
		AssetID:     assetID,
		TagNumber:   tagNumber,
		TotalAmount: totalAmount,
		Department:  department,
	}
}

type AssetDepreciatedEvent struct {
	BaseEvent
	AssetID                 int64  `json:"asset_id"`
	TagNumber               string `json:"tag_number"`
	MonthsInUse             int    `json:"months_in_use"`
	AccumulatedDepreciation string `json:"accumulated_depreciation"`
}

func NewAssetDepreciatedEvent(assetID int64, tagNumber string, monthsInUse int, accumulatedDepreciation string) *AssetDepreciatedEvent {
	return &AssetDepreciatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypeAssetDepreciated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"asset_id":                 assetID,
				"tag_number":               tagNumber,
				"months_in_use":            monthsInUse,
				"accumulated_depreciation": accumulatedDepreciation,
			},
		},
		AssetID:                 assetID,
		TagNumber:               tagNumber,
		MonthsInUse:             monthsInUse,
		AccumulatedDepreciation: accumulatedDepreciation,
	}
}
