package permission

import (
	errors "github.com/frahmantamala/enterprise-access/internal"
	"github.com/frahmantamala/enterprise-access/internal/core/common/validation"
)

type CreatePermissionDTO struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (d CreatePermissionDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(100)
	v.Field("slug", d.Slug).Required().MaxLength(100)
	return v.Validate()
}

type UpdatePermissionDTO struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (d UpdatePermissionDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(100)
	v.Field("slug", d.Slug).Required().MaxLength(100)
	return v.Validate()
}

type PermissionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (p *Permission) ToResponse() PermissionResponse {
	return PermissionResponse{
		ID:   p.ID,
		Name: p.Name,
		Slug: p.Slug,
	}
}
