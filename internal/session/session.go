package session

import (
	"time"

	sessionDatamodel "github.com/frahmantamala/enterprise-access/internal/core/datamodel/session"
)

// Session is one login's server-side state. Refresh rotates SecretHash in
// place; logout clears Active and the session never comes back.
type Session struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	SecretHash string    `json:"-"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func FromDataModel(s *sessionDatamodel.Session) *Session {
	return &Session{
		ID:         s.ID,
		UserID:     s.UserID,
		SecretHash: s.SecretHash,
		Active:     s.Active,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}
