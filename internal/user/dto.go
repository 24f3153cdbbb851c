package user

import (
	"time"

	errors "github.com/frahmantamala/enterprise-access/internal"
	"github.com/frahmantamala/enterprise-access/internal/core/common/validation"
)

type CreateUserDTO struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	RoleIDs  []string `json:"role_ids"`
}

func (d CreateUserDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("email", d.Email).Required().Email().MaxLength(255)
	v.Field("password", d.Password).Required().MinLength(8).MaxLength(72)
	v.Field("role_ids", d.RoleIDs).Required()
	return v.Validate()
}

type UpdateUserRolesDTO struct {
	RoleIDs []string `json:"role_ids"`
}

func (d UpdateUserRolesDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("role_ids", d.RoleIDs).Required()
	return v.Validate()
}

type ChangePasswordDTO struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (d ChangePasswordDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("current_password", d.CurrentPassword).Required()
	v.Field("new_password", d.NewPassword).Required().MinLength(8).MaxLength(72)
	return v.Validate()
}

type UserResponse struct {
	ID             string    `json:"id"`
	EnterpriseID   string    `json:"enterprise_id"`
	Email          string    `json:"email"`
	Blocked        bool      `json:"blocked"`
	TempPassword   bool      `json:"temp_password"`
	EmailConfirmed bool      `json:"email_confirmed"`
	Roles          []RoleRef `json:"roles"`
	CreatedAt      time.Time `json:"created_at"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:             u.ID,
		EnterpriseID:   u.EnterpriseID,
		Email:          u.Email,
		Blocked:        u.Blocked,
		TempPassword:   u.TempPassword,
		EmailConfirmed: u.EmailConfirmed,
		Roles:          u.Roles,
		CreatedAt:      u.CreatedAt,
	}
}
