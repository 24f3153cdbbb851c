package role

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role carries no gorm default tags on its flags: gorm drops zero-valued
// fields that carry one from the INSERT, which would silently store an
// editable=false role as editable. The repository sets both explicitly.
type Role struct {
	ID           string    `gorm:"primaryKey"`
	EnterpriseID string    `gorm:"column:enterprise_id;index;not null"`
	Name         string    `gorm:"column:name;not null"`
	Status       bool      `gorm:"column:status"`
	Editable     bool      `gorm:"column:editable"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Role) TableName() string {
	return "roles"
}

func (r *Role) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// RolePermission is the join edge between a role and a permission. The pair is
// the primary key, so a grant can never be duplicated.
type RolePermission struct {
	RoleID       string    `gorm:"column:role_id;primaryKey"`
	PermissionID string    `gorm:"column:permission_id;primaryKey"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (RolePermission) TableName() string {
	return "role_permissions"
}
