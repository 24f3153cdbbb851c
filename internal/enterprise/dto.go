package enterprise

import (
	errors "github.com/frahmantamala/enterprise-access/internal"
	"github.com/frahmantamala/enterprise-access/internal/core/common/validation"
)

type CreateEnterpriseUserDTO struct {
	Password string `json:"password"`
}

type CreateEnterpriseDTO struct {
	Name        string                  `json:"name"`
	Email       string                  `json:"email"`
	CellPhone   string                  `json:"cell_phone"`
	LogoURL     string                  `json:"logo_url"`
	Description string                  `json:"description"`
	User        CreateEnterpriseUserDTO `json:"user"`
}

func (d CreateEnterpriseDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().MaxLength(255)
	v.Field("email", d.Email).Required().Email().MaxLength(255)
	v.Field("cell_phone", d.CellPhone).Required().MaxLength(30)
	v.Field("user.password", d.User.Password).Required().MinLength(8).MaxLength(72)
	return v.Validate()
}

type EnterpriseResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	CellPhone   string `json:"cell_phone"`
	LogoURL     string `json:"logo_url"`
	Description string `json:"description"`
}

func (e *Enterprise) ToResponse() EnterpriseResponse {
	return EnterpriseResponse{
		ID:          e.ID,
		Name:        e.Name,
		Email:       e.Email,
		CellPhone:   e.CellPhone,
		LogoURL:     e.LogoURL,
		Description: e.Description,
	}
}
