package permission

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Permission is immutable reference data shared across enterprises; the slug
// is the globally unique action identifier embedded in token claims.
type Permission struct {
	ID        string    `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;uniqueIndex;not null"`
	Slug      string    `gorm:"column:slug;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Permission) TableName() string {
	return "permissions"
}

func (p *Permission) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
