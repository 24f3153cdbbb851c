package user

import (
	"time"

	userDatamodel "github.com/frahmantamala/enterprise-access/internal/core/datamodel/user"
)

// RoleRef is the flattened projection of a role held by a user; the
// enterprise_user_roles join rows stay inside the repository.
type RoleRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type User struct {
	ID             string    `json:"id"`
	EnterpriseID   string    `json:"enterprise_id"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Blocked        bool      `json:"blocked"`
	TempPassword   bool      `json:"temp_password"`
	EmailConfirmed bool      `json:"email_confirmed"`
	Deleted        bool      `json:"-"`
	Roles          []RoleRef `json:"roles"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (u *User) RoleIDs() []string {
	ids := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		ids = append(ids, r.ID)
	}
	return ids
}

// CanAuthenticate reports whether the account may start or continue a
// session.
func (u *User) CanAuthenticate() bool {
	return !u.Blocked && !u.Deleted
}

func ToDataModel(u *User) *userDatamodel.EnterpriseUser {
	return &userDatamodel.EnterpriseUser{
		ID:             u.ID,
		EnterpriseID:   u.EnterpriseID,
		Email:          u.Email,
		PasswordHash:   u.PasswordHash,
		Blocked:        u.Blocked,
		TempPassword:   u.TempPassword,
		EmailConfirmed: u.EmailConfirmed,
		Deleted:        u.Deleted,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func FromDataModel(u *userDatamodel.EnterpriseUser, roles []RoleRef) *User {
	if roles == nil {
		roles = []RoleRef{}
	}
	return &User{
		ID:             u.ID,
		EnterpriseID:   u.EnterpriseID,
		Email:          u.Email,
		PasswordHash:   u.PasswordHash,
		Blocked:        u.Blocked,
		TempPassword:   u.TempPassword,
		EmailConfirmed: u.EmailConfirmed,
		Deleted:        u.Deleted,
		Roles:          roles,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
