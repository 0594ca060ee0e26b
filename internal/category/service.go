package category

import (
	"log/slog"
	"strings"

	internal "github.com/assetdesk/asset-management/internal"
	categoryDatamodel "github.com/assetdesk/asset-management/internal/core/datamodel/category"
)

type RepositoryAPI interface {
	GetAll() ([]*categoryDatamodel.AssetCategory, error)
	GetByID(id int64) (*categoryDatamodel.AssetCategory, error)
	GetByName(name string) (*categoryDatamodel.AssetCategory, error)
	Create(category *categoryDatamodel.AssetCategory) error
	Update(category *categoryDatamodel.AssetCategory) error
	Delete(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// GetAllCategories returns the active categories in response form.
func (s *Service) GetAllCategories() ([]CategoryResponse, error) {
	dataCategories, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to get categories from repository", "error", err)
		return nil, err
	}

	var responses []CategoryResponse
	for _, dataCategory := range dataCategories {
		domainCategory := FromDataModel(dataCategory)
		if domainCategory.IsActiveCategory() {
			responses = append(responses, domainCategory.ToResponse())
		}
	}

	s.logger.Info("retrieved categories", "count", len(responses))
	return responses, nil
}

func (s *Service) GetCategoryByName(name string) (*CategoryResponse, error) {
	dataCategory, err := s.repo.GetByName(name)
	if err != nil {
		s.logger.Error("failed to get category from repository", "error", err, "name", name)
		return nil, err
	}
	if dataCategory == nil {
		return nil, nil
	}

	domainCategory := FromDataModel(dataCategory)
	if !domainCategory.IsActiveCategory() {
		return nil, nil
	}

	response := domainCategory.ToResponse()
	return &response, nil
}

// IsValidCategory reports whether an active category with this name exists.
func (s *Service) IsValidCategory(name string) bool {
	category, err := s.GetCategoryByName(name)
	if err != nil {
		s.logger.Warn("error checking category validity", "name", name, "error", err)
		return false
	}
	return category != nil
}

// Create adds a new asset category.
func (s *Service) Create(dto CreateCategoryDTO) (*Category, error) {
	name := strings.TrimSpace(dto.Name)
	if name == "" {
		return nil, internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed)
	}

	if existing, err := s.repo.GetByName(name); err == nil && existing != nil {
		return nil, internal.NewConflictError("Category already exists", internal.ErrCodeValidationFailed)
	}

	c := NewCategory(name, dto.Description)
	dm := ToDataModel(c)
	if err := s.repo.Create(dm); err != nil {
		s.logger.Error("failed to create category", "error", err, "name", name)
		return nil, err
	}
	c.ID = dm.ID

	s.logger.Info("category created", "category_id", c.ID, "name", c.Name)
	return c, nil
}

// Delete soft-deletes a category by deactivating it.
func (s *Service) Delete(id int64) error {
	dataCategory, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get category", "error", err, "category_id", id)
		return err
	}
	if dataCategory == nil {
		return internal.NewNotFoundError("Category not found", internal.ErrCodeCategoryNotFound)
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete category", "error", err, "category_id", id)
		return err
	}

	s.logger.Info("category deactivated", "category_id", id)
	return nil
}
