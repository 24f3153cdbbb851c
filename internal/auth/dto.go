package auth

import (
	"time"

	errors "github.com/frahmantamala/enterprise-access/internal"
	"github.com/frahmantamala/enterprise-access/internal/core/common/validation"
)

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d LoginDTO) Validate() *errors.AppError {
	v := validation.NewValidator()
	v.Field("email", d.Email).Required().Email()
	v.Field("password", d.Password).Required()
	return v.Validate()
}

// UserSummary is the slice of the account echoed back on login and refresh.
type UserSummary struct {
	ID           string `json:"id"`
	EnterpriseID string `json:"enterprise_id"`
	Email        string `json:"email"`
	TempPassword bool   `json:"temp_password"`
}

type AuthTokens struct {
	AccessToken          string      `json:"access_token"`
	RefreshToken         string      `json:"refresh_token"`
	AccessTokenExpiresAt time.Time   `json:"access_token_expires_at"`
	User                 UserSummary `json:"user"`
}
