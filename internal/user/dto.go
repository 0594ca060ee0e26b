package user

import (
	internal "github.com/assetdesk/asset-management/internal"
	"github.com/assetdesk/asset-management/internal/auth"
	"github.com/assetdesk/asset-management/internal/core/common/validation"
)

// RegisterDTO is the transport shape for account registration.
type RegisterDTO struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func (d *RegisterDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("firstname", d.FirstName).Required().MinLength(2).MaxLength(50)
	v.Field("lastname", d.LastName).Required().MinLength(2).MaxLength(50)
	v.Field("email", d.Email).Required().MinLength(10).MaxLength(255).Email()
	v.Field("password", d.Password).Required().MinLength(5).MaxLength(1024)
	return v.Validate()
}

// UpdateRoleDTO carries a role change for a user account.
type UpdateRoleDTO struct {
	Role string `json:"role"`
}

func (d *UpdateRoleDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("role", d.Role).Required().
		OneOf([]string{auth.RoleUser, auth.RoleAdmin, auth.RoleSuperAdmin}, internal.ErrCodeInvalidRole)
	return v.Validate()
}
