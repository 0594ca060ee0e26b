package request

import (
	"context"
	"errors"
	"log/slog"
	"time"

	internal "github.com/assetdesk/asset-management/internal"
	"github.com/assetdesk/asset-management/internal/auth"
	"github.com/assetdesk/asset-management/internal/core/events"
	"gorm.io/gorm"
)

// Repository defines the data access methods for asset requests
type Repository interface {
	Create(r *Request) error
	GetByID(id int64) (*Request, error)
	GetByUserID(userID int64, limit, offset int) ([]*Request, error)
	GetAll(limit, offset int) ([]*Request, error)
	UpdateStatus(id int64, status string, processedAt time.Time) error
	Delete(id int64) error
}

// Service handles the request approval workflow
type Service struct {
	repo     Repository
	policy   *auth.Policy
	eventBus *events.EventBus
	logger   *slog.Logger
}

func NewService(repo Repository, policy *auth.Policy, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		policy:   policy,
		eventBus: eventBus,
		logger:   logger,
	}
}

// CreateRequest submits a new asset request. The request is always owned by
// the submitting user and always starts out Pending, whatever the client sent.
func (s *Service) CreateRequest(actor *auth.User, dto CreateRequestDTO) (*Request, error) {
	if actor == nil {
		return nil, internal.ErrAccessDenied
	}

	if err := dto.Validate(); err != nil {
		s.logger.Error("request validation failed", "error", err, "user_id", actor.ID)
		return nil, err
	}

	now := time.Now()
	date := now
	if dto.Date != nil {
		date = *dto.Date
	}

	req := &Request{
		FirstName:         dto.FirstName,
		LastName:          dto.LastName,
		Date:              date,
		Department:        dto.Department,
		DepartmentManager: PersonRef{ID: dto.DepartmentManagerID},
		AssetType:         dto.AssetType,
		Quantity:          dto.Quantity,
		Description:       dto.Description,
		Status:            StatusPending,
		UserID:            actor.ID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repo.Create(req); err != nil {
		s.logger.Error("failed to create request", "error", err, "user_id", actor.ID)
		return nil, err
	}

	s.eventBus.Publish(context.Background(),
		events.NewRequestCreatedEvent(req.ID, req.UserID, req.AssetType, req.Quantity))

	s.logger.Info("request created",
		"request_id", req.ID,
		"user_id", actor.ID,
		"asset_type", req.AssetType,
		"quantity", req.Quantity)

	return req, nil
}

// GetRequestByID retrieves a request, visible to its owner or administrators.
func (s *Service) GetRequestByID(actor *auth.User, id int64) (*Request, error) {
	req, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrRequestNotFound
		}
		s.logger.Error("failed to get request", "error", err, "request_id", id)
		return nil, internal.NewInternalError("failed to load request", err)
	}

	if err := s.policy.CanViewRequest(actor, req.UserID); err != nil {
		s.logger.Warn("request access denied", "request_id", id, "actor", actorID(actor))
		return nil, internal.ErrAccessDenied
	}

	return req, nil
}

// GetMyRequests lists the actor's own requests, newest first.
func (s *Service) GetMyRequests(actor *auth.User, limit, offset int) ([]*Request, error) {
	if actor == nil {
		return nil, internal.ErrAccessDenied
	}

	requests, err := s.repo.GetByUserID(actor.ID, limit, offset)
	if err != nil {
		s.logger.Error("failed to get user requests", "error", err, "user_id", actor.ID)
		return nil, err
	}
	return requests, nil
}

// GetAllRequests lists every request, newest first. Administrators only.
func (s *Service) GetAllRequests(actor *auth.User, limit, offset int) ([]*Request, error) {
	if actor == nil || !s.policy.CanAdminister(actor.Role) {
		s.logger.Warn("list all requests denied: admin required", "actor", actorID(actor))
		return nil, internal.ErrAdminRequired
	}

	requests, err := s.repo.GetAll(limit, offset)
	if err != nil {
		s.logger.Error("failed to list requests", "error", err)
		return nil, err
	}
	return requests, nil
}

// SetStatus moves a pending request to a new state. Approved and Rejected are
// terminal, a processed request can never transition again.
func (s *Service) SetStatus(actor *auth.User, id int64, dto UpdateStatusDTO) (*Request, error) {
	if actor == nil || !s.policy.CanAdminister(actor.Role) {
		s.logger.Warn("status change denied: admin required", "request_id", id, "actor", actorID(actor))
		return nil, internal.ErrAdminRequired
	}

	if err := dto.Validate(); err != nil {
		s.logger.Error("status validation failed", "error", err, "request_id", id)
		return nil, err
	}

	req, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrRequestNotFound
		}
		s.logger.Error("failed to load request for status change", "error", err, "request_id", id)
		return nil, internal.NewInternalError("failed to load request", err)
	}

	if !req.CanTransitionTo(dto.Status) {
		s.logger.Warn("cannot change status of processed request",
			"request_id", id,
			"current_status", req.Status,
			"requested_status", dto.Status)
		return nil, internal.ErrAlreadyProcessed
	}

	previousStatus := req.Status
	processedAt := time.Now()
	if err := s.repo.UpdateStatus(id, dto.Status, processedAt); err != nil {
		s.logger.Error("failed to update request status", "error", err, "request_id", id)
		return nil, err
	}

	req.Status = dto.Status
	req.ProcessedAt = &processedAt
	req.UpdatedAt = processedAt

	s.eventBus.Publish(context.Background(),
		events.NewRequestStatusChangedEvent(req.ID, req.UserID, previousStatus, req.Status, actor.ID))

	s.logger.Info("request status updated",
		"request_id", id,
		"previous_status", previousStatus,
		"new_status", req.Status,
		"actor", actor.ID)

	return req, nil
}

// DeleteRequest removes a request. Administrators only.
func (s *Service) DeleteRequest(actor *auth.User, id int64) error {
	if actor == nil || !s.policy.CanAdminister(actor.Role) {
		s.logger.Warn("delete request denied: admin required", "request_id", id, "actor", actorID(actor))
		return internal.ErrAdminRequired
	}

	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return internal.ErrRequestNotFound
		}
		s.logger.Error("failed to load request for delete", "error", err, "request_id", id)
		return internal.NewInternalError("failed to load request", err)
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete request", "error", err, "request_id", id)
		return err
	}

	s.logger.Info("request deleted", "request_id", id, "actor", actor.ID)
	return nil
}

func actorID(u *auth.User) int64 {
	if u == nil {
		return 0
	}
	return u.ID
}
