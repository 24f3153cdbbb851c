package permission

import (
	"time"

	permissionDatamodel "github.com/frahmantamala/enterprise-access/internal/core/datamodel/permission"
)

type Permission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToDataModel(p *Permission) *permissionDatamodel.Permission {
	return &permissionDatamodel.Permission{
		ID:        p.ID,
		Name:      p.Name,
		Slug:      p.Slug,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func FromDataModel(p *permissionDatamodel.Permission) *Permission {
	return &Permission{
		ID:        p.ID,
		Name:      p.Name,
		Slug:      p.Slug,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
