package postgres

import (
	"github.com/frahmantamala/enterprise-access/internal/core/common/pagination"
	roleDatamodel "github.com/frahmantamala/enterprise-access/internal/core/datamodel/role"
	"github.com/frahmantamala/enterprise-access/internal/role"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) role.RepositoryAPI {
	return &RoleRepository{db: db}
}

type permissionRow struct {
	RoleID string
	ID     string
	Name   string
	Slug   string
}

// permissionsByRole loads the flattened permission projection for a set of
// roles in one query, grouped by role id.
func (r *RoleRepository) permissionsByRole(tx *gorm.DB, roleIDs []string) (map[string][]role.PermissionRef, error) {
	if len(roleIDs) == 0 {
		return map[string][]role.PermissionRef{}, nil
	}

	var rows []permissionRow
	err := tx.Table("role_permissions").
		Select("role_permissions.role_id AS role_id, permissions.id AS id, permissions.name AS name, permissions.slug AS slug").
		Joins("JOIN permissions ON permissions.id = role_permissions.permission_id").
		Where("role_permissions.role_id IN ?", roleIDs).
		Order("permissions.slug ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]role.PermissionRef, len(roleIDs))
	for _, row := range rows {
		grouped[row.RoleID] = append(grouped[row.RoleID], role.PermissionRef{
			ID:   row.ID,
			Name: row.Name,
			Slug: row.Slug,
		})
	}
	return grouped, nil
}

func (r *RoleRepository) GetByID(id string) (*role.Role, error) {
	var record roleDatamodel.Role
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	permissions, err := r.permissionsByRole(r.db, []string{record.ID})
	if err != nil {
		return nil, err
	}

	return role.FromDataModel(&record, permissions[record.ID]), nil
}

func (r *RoleRepository) GetAllByEnterprise(enterpriseID string, opts pagination.Options) ([]*role.Role, error) {
	var records []roleDatamodel.Role
	err := r.db.Where("enterprise_id = ? AND status = ?", enterpriseID, true).
		Order("created_at ASC").
		Limit(opts.Limit).
		Offset(opts.Offset()).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	roleIDs := make([]string, 0, len(records))
	for _, record := range records {
		roleIDs = append(roleIDs, record.ID)
	}

	permissions, err := r.permissionsByRole(r.db, roleIDs)
	if err != nil {
		return nil, err
	}

	roles := make([]*role.Role, 0, len(records))
	for i := range records {
		roles = append(roles, role.FromDataModel(&records[i], permissions[records[i].ID]))
	}
	return roles, nil
}

func (r *RoleRepository) Create(enterpriseID, name string, editable bool, permissionIDs []string) (*role.Role, error) {
	record := roleDatamodel.Role{
		EnterpriseID: enterpriseID,
		Name:         name,
		Status:       true,
		Editable:     editable,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		if len(permissionIDs) == 0 {
			return nil
		}

		joins := make([]roleDatamodel.RolePermission, 0, len(permissionIDs))
		for _, permissionID := range permissionIDs {
			joins = append(joins, roleDatamodel.RolePermission{
				RoleID:       record.ID,
				PermissionID: permissionID,
			})
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&joins).Error
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(record.ID)
}

// Update writes the role's scalar fields and reconciles its permission set in
// one transaction. Only the diff touches the join table: added grants are
// inserted ignoring duplicates, removed grants are deleted, rows in both sets
// are never rewritten. A concurrent reader sees either the old set or the new
// one, never a partial state.
func (r *RoleRepository) Update(updated *role.Role, desiredPermissionIDs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&roleDatamodel.Role{}).
			Where("id = ?", updated.ID).
			Updates(map[string]interface{}{
				"name":   updated.Name,
				"status": updated.Status,
			}).Error
		if err != nil {
			return err
		}

		if desiredPermissionIDs == nil {
			return nil
		}

		var currentIDs []string
		err = tx.Model(&roleDatamodel.RolePermission{}).
			Where("role_id = ?", updated.ID).
			Pluck("permission_id", &currentIDs).Error
		if err != nil {
			return err
		}

		toAdd, toRemove := role.DiffStringSets(currentIDs, desiredPermissionIDs)

		if len(toAdd) > 0 {
			joins := make([]roleDatamodel.RolePermission, 0, len(toAdd))
			for _, permissionID := range toAdd {
				joins = append(joins, roleDatamodel.RolePermission{
					RoleID:       updated.ID,
					PermissionID: permissionID,
				})
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&joins).Error; err != nil {
				return err
			}
		}

		if len(toRemove) > 0 {
			err := tx.Where("role_id = ? AND permission_id IN ?", updated.ID, toRemove).
				Delete(&roleDatamodel.RolePermission{}).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}
