package asset

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

// Repository defines the data access methods for assets
type Repository interface {
	Create(a *Asset) error
	GetByID(id int64) (*Asset, error)
	GetByTagNumber(tagNumber string) (*Asset, error)
	GetAll(limit, offset int) ([]*Asset, error)
	Update(a *Asset) error
	Delete(id int64) error
}

// CategoryValidator checks whether an asset category name is known and active.
type CategoryValidator interface {
	IsValidCategory(name string) bool
}

// Service handles asset registration and depreciation bookkeeping
type Service struct {
	repo       Repository
	policy     *auth.Policy
	categories CategoryValidator
	eventBus   *events.EventBus
	logger     *slog.Logger
}

func NewService(repo Repository, policy *auth.Policy, categories CategoryValidator, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		policy:     policy,
		categories: categories,
		eventBus:   eventBus,
		logger:     logger,
	}
}

// CreateAsset registers a new asset. Only administrators may register assets,
// and the depreciation schedule is always recomputed from the cost basis.
func (s *Service) CreateAsset(actor *auth.User, dto CreateAssetDTO) (*Asset, error) {
	if actor == nil || !s.policy.CanAdminister(actor.Role) {
		s.logger.Warn("create asset denied: admin required", "actor", actorID(actor))
		return nil, internal.ErrAdminRequired
	}

	a, err := dto.ToDomain()
	if err != nil {
		s.logger.Error("asset validation failed", "error", err, "tag_number", dto.TagNumber)
		return nil, err
	}

	if a.Category != "" && s.categories != nil && !s.categories.IsValidCategory(a.Category) {
		s.logger.Warn("unknown asset category", "category", a.Category, "tag_number", a.TagNumber)
		return nil, internal.NewValidationFieldError("category", "unknown asset category", internal.ErrCodeCategoryNotFound)
	}

	if existing, err := s.repo.GetByTagNumber(a.TagNumber); err == nil && existing != nil {
		s.logger.Warn("asset tag number already registered", "tag_number", a.TagNumber)
		return nil, internal.NewConflictError("Asset tag number already registered", internal.ErrCodeTagExists)
	}

	if err := s.repo.Create(a); err != nil {
		s.logger.Error("failed to create asset", "error", err, "tag_number", a.TagNumber)
		return nil, err
	}

	s.eventBus.Publish(context.Background(),
		events.NewAssetRegisteredEvent(a.ID, a.TagNumber, a.TotalAmount.String(), a.Department))

	s.logger.Info("asset registered",
		"asset_id", a.ID,
		"tag_number", a.TagNumber,
		"total_amount", a.TotalAmount,
		"monthly_depreciation", a.MonthlyDepreciation)

	return a, nil
}

// GetAsset retrieves a single asset with resolved user names.
func (s *Service) GetAsset(id int64) (*Asset, error) {
	a, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrAssetNotFound
		}
		s.logger.Error("failed to get asset", "error", err, "asset_id", id)
		return nil, internal.NewInternalError("failed to load asset", err)
	}
	return a, nil
}

// GetAllAssets lists registered assets, newest first.
func (s *Service) GetAllAssets(limit, offset int) ([]*Asset, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	assets, err := s.repo.GetAll(limit, offset)
	if err != nil {
		s.logger.Error("failed to list assets", "error", err)
		return nil, err
	}
	return assets, nil
}

// UpdateAsset replaces an asset's mutable fields. The total amount and the
// depreciation schedule are recomputed, client supplied bookkeeping is ignored.
func (s *Service) UpdateAsset(actor *auth.User, id int64, dto UpdateAssetDTO) (*Asset, error) {
	if actor == nil || !s.policy.CanAdminister(actor.Role) {
		s.logger.Warn("update asset denied: admin required", "actor", actorID(actor), "asset_id", id)
		return nil, internal.ErrAdminRequired
	}

	existing, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrAssetNotFound
		}
		s.logger.Error("failed to load asset for update", "error", err, "asset_id", id)
		return nil, internal.NewInternalError("failed to load asset", err)
	}

	updated, err := dto.ToDomain()
	if err != nil {
		s.logger.Error("asset validation failed", "error", err, "asset_id", id)
		return nil, err
	}

	if updated.Category != "" && s.categories != nil && !s.categories.IsValidCategory(updated.Category) {
		s.logger.Warn("unknown asset category", "category", updated.Category, "asset_id", id)
		return nil, internal.NewValidationFieldError("category", "unknown asset category", internal.ErrCodeCategoryNotFound)
	}

	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()

	if err := s.repo.Update(updated); err != nil {
		s.logger.Error("failed to update asset", "error", err, "asset_id", id)
		return nil, err
	}

	s.logger.Info("asset updated",
		"asset_id", id,
		"tag_number", updated.TagNumber,
		"total_amount", updated.TotalAmount)

	return updated, nil
}

// DeleteAsset removes an asset from the register.
func (s *Service) DeleteAsset(actor *auth.User, id int64) error {
	if actor == nil || !s.policy.CanAdminister(actor.Role) {
		s.logger.Warn("delete asset denied: admin required", "actor", actorID(actor), "asset_id", id)
		return internal.ErrAdminRequired
	}

	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return internal.ErrAssetNotFound
		}
		s.logger.Error("failed to load asset for delete", "error", err, "asset_id", id)
		return internal.NewInternalError("failed to load asset", err)
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete asset", "error", err, "asset_id", id)
		return err
	}

	s.logger.Info("asset deleted", "asset_id", id)
	return nil
}

func actorID(u *auth.User) int64 {
	if u == nil {
		return 0
	}
	return u.ID
}
