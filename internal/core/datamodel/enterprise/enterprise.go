package enterprise

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Enterprise struct {
	ID          string    `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Email       string    `gorm:"column:email;uniqueIndex;not null"`
	CellPhone   string    `gorm:"column:cell_phone;uniqueIndex;not null"`
	LogoURL     string    `gorm:"column:logo_url"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Enterprise) TableName() string {
	return "enterprises"
}

func (e *Enterprise) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
