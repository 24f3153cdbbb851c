package postgres

import (
	permissionDatamodel "github.com/frahmantamala/enterprise-access/internal/core/datamodel/permission"

	"github.com/frahmantamala/enterprise-access/internal/core/common/pagination"
	"github.com/frahmantamala/enterprise-access/internal/permission"
	"gorm.io/gorm"
)

type PermissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) permission.RepositoryAPI {
	return &PermissionRepository{db: db}
}

func (r *PermissionRepository) GetAll(opts pagination.Options) ([]*permissionDatamodel.Permission, error) {
	var permissions []*permissionDatamodel.Permission
	err := r.db.Order("slug ASC").
		Limit(opts.Limit).
		Offset(opts.Offset()).
		Find(&permissions).Error
	return permissions, err
}

func (r *PermissionRepository) GetByID(id string) (*permissionDatamodel.Permission, error) {
	var perm permissionDatamodel.Permission
	err := r.db.Where("id = ?", id).First(&perm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &perm, nil
}

func (r *PermissionRepository) GetByIDs(ids []string) ([]*permissionDatamodel.Permission, error) {
	var permissions []*permissionDatamodel.Permission
	err := r.db.Where("id IN ?", ids).Find(&permissions).Error
	return permissions, err
}

func (r *PermissionRepository) GetBySlug(slug string) (*permissionDatamodel.Permission, error) {
	var perm permissionDatamodel.Permission
	err := r.db.Where("slug = ?", slug).First(&perm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &perm, nil
}

func (r *PermissionRepository) GetByName(name string) (*permissionDatamodel.Permission, error) {
	var perm permissionDatamodel.Permission
	err := r.db.Where("name = ?", name).First(&perm).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &perm, nil
}

// GetSlugsByRoleIDs resolves the union of slugs granted by the given roles.
// DISTINCT guarantees a slug appears once no matter how many roles grant it.
func (r *PermissionRepository) GetSlugsByRoleIDs(roleIDs []string) ([]string, error) {
	var slugs []string
	err := r.db.Model(&permissionDatamodel.Permission{}).
		Distinct("permissions.slug").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Where("role_permissions.role_id IN ?", roleIDs).
		Order("permissions.slug ASC").
		Pluck("permissions.slug", &slugs).Error
	if err != nil {
		return nil, err
	}
	if slugs == nil {
		slugs = []string{}
	}
	return slugs, nil
}

func (r *PermissionRepository) Create(perm *permissionDatamodel.Permission) error {
	return r.db.Create(perm).Error
}

func (r *PermissionRepository) Update(perm *permissionDatamodel.Permission) error {
	return r.db.Save(perm).Error
}
