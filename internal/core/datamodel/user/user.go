package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EnterpriseUser struct {
	ID             string    `gorm:"primaryKey"`
	EnterpriseID   string    `gorm:"column:enterprise_id;index;not null"`
	Email          string    `gorm:"column:email;not null"`
	PasswordHash   string    `gorm:"column:password_hash;not null"`
	Blocked        bool      `gorm:"column:blocked"`
	TempPassword   bool      `gorm:"column:temp_password"`
	EmailConfirmed bool      `gorm:"column:email_confirmed"`
	Deleted        bool      `gorm:"column:deleted"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (EnterpriseUser) TableName() string {
	return "enterprise_users"
}

func (u *EnterpriseUser) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

type EnterpriseUserRole struct {
	UserID    string    `gorm:"column:user_id;primaryKey"`
	RoleID    string    `gorm:"column:role_id;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (EnterpriseUserRole) TableName() string {
	return "enterprise_user_roles"
}
