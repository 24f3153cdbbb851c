package session

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session tracks one login. The stored secret hash rotates on every refresh;
// an inactive session is terminal and never refreshes again.
type Session struct {
	ID         string    `gorm:"primaryKey"`
	UserID     string    `gorm:"column:user_id;index;not null"`
	SecretHash string    `gorm:"column:secret_hash;not null"`
	Active     bool      `gorm:"column:active"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Session) TableName() string {
	return "sessions"
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
