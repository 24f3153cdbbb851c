package role

import (
	errors "github.com/frahmantamala/enterprise-access/internal"
	"github.com/frahmantamala/enterprise-access/internal/core/common/validation"
)

type CreateRoleDTO struct {
	Name          string   `json:"name"`
	PermissionIDs []string `json:"permission_ids"`
}

func (d CreateRoleDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(100)
	v.Field("permission_ids", d.PermissionIDs).Required()
	return v.Validate()
}

// UpdateRoleDTO is a partial patch: nil fields are left untouched. A non-nil
// PermissionIDs replaces the role's whole permission set via diff
// reconciliation.
type UpdateRoleDTO struct {
	Name          *string  `json:"name,omitempty"`
	Status        *bool    `json:"status,omitempty"`
	PermissionIDs []string `json:"permission_ids,omitempty"`
}

func (d UpdateRoleDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	if d.Name != nil {
		v.Field("name", *d.Name).Required().MaxLength(100)
	}
	if d.PermissionIDs != nil {
		v.Field("permission_ids", d.PermissionIDs).Required()
	}
	return v.Validate()
}

type RoleResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Status      bool            `json:"status"`
	Editable    bool            `json:"editable"`
	Permissions []PermissionRef `json:"permissions"`
}

func (r *Role) ToResponse() RoleResponse {
	return RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Status:      r.Status,
		Editable:    r.Editable,
		Permissions: r.Permissions,
	}
}
