package enterprise

import (
	"time"

	enterpriseDatamodel "github.com/frahmantamala/enterprise-access/internal/core/datamodel/enterprise"
)

type Enterprise struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	CellPhone   string    `json:"cell_phone"`
	LogoURL     string    `json:"logo_url"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToDataModel(e *Enterprise) *enterpriseDatamodel.Enterprise {
	return &enterpriseDatamodel.Enterprise{
		ID:          e.ID,
		Name:        e.Name,
		Email:       e.Email,
		CellPhone:   e.CellPhone,
		LogoURL:     e.LogoURL,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func FromDataModel(e *enterpriseDatamodel.Enterprise) *Enterprise {
	return &Enterprise{
		ID:          e.ID,
		Name:        e.Name,
		Email:       e.Email,
		CellPhone:   e.CellPhone,
		LogoURL:     e.LogoURL,
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
