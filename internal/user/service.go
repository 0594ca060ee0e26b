package user

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	internal "github.com/assetdesk/asset-management/internal"
	"github.com/assetdesk/asset-management/internal/auth"
	"gorm.io/gorm"
)

// PasswordHasher hashes plaintext passwords before they reach the repository.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

// Repository defines the data access methods for user accounts
type Repository interface {
	Create(u *User) error
	GetByID(userID int64) (*User, error)
	GetByEmail(email string) (*User, error)
	GetAll() ([]*User, error)
	UpdateRole(userID int64, role string) error
}

// Service handles user account business logic
type Service struct {
	repo   Repository
	hasher PasswordHasher
	policy *auth.Policy
	logger *slog.Logger
}

func NewService(repo Repository, hasher PasswordHasher, policy *auth.Policy, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		policy: policy,
		logger: logger,
	}
}

// Register creates a new account with the default role. Email addresses are
// unique, registering an existing one is a conflict.
func (s *Service) Register(dto RegisterDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("registration validation failed", "error", err)
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(dto.Email))

	if existing, err := s.repo.GetByEmail(email); err == nil && existing != nil {
		s.logger.Warn("registration rejected: email already registered", "email", email)
		return nil, internal.ErrEmailExists
	}

	hash, err := s.hasher.HashPassword(dto.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	now := time.Now()
	u := &User{
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		Email:        email,
		PasswordHash: hash,
		Role:         auth.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(u); err != nil {
		s.logger.Error("failed to create user", "error", err, "email", email)
		return nil, err
	}

	s.logger.Info("user registered", "user_id", u.ID, "email", u.Email)

	return u, nil
}

// GetByID retrieves a single user account.
func (s *Service) GetByID(userID int64) (*User, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		s.logger.Error("failed to get user by id", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to load user", err)
	}
	return u, nil
}

// GetAll lists every account, newest first.
func (s *Service) GetAll(actor *auth.User) ([]*User, error) {
	if actor == nil || !s.policy.CanAdminister(actor.Role) {
		s.logger.Warn("list users denied: admin required", "actor", actorID(actor))
		return nil, internal.ErrAdminRequired
	}

	users, err := s.repo.GetAll()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, err
	}
	return users, nil
}

// UpdateRole changes the role on a user account. Only administrators may do
// this, and only a superadmin may grant the superadmin role.
func (s *Service) UpdateRole(actor *auth.User, userID int64, dto UpdateRoleDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("role update validation failed", "error", err, "user_id", userID)
		return nil, err
	}

	if err := s.policy.CanManageUsers(actor, dto.Role); err != nil {
		s.logger.Warn("role update denied", "actor", actorID(actor), "user_id", userID, "role", dto.Role)
		return nil, internal.ErrAdminRequired
	}

	u, err := s.repo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		s.logger.Error("failed to load user for role update", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to load user", err)
	}

	if err := s.repo.UpdateRole(userID, dto.Role); err != nil {
		s.logger.Error("failed to update user role", "error", err, "user_id", userID)
		return nil, err
	}

	u.Role = dto.Role
	u.UpdatedAt = time.Now()

	s.logger.Info("user role updated",
		"user_id", userID,
		"role", dto.Role,
		"actor", actorID(actor))

	return u, nil
}

func actorID(u *auth.User) int64 {
	if u == nil {
		return 0
	}
	return u.ID
}
