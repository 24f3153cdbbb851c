package postgres

import (
	"github.com/frahmantamala/enterprise-access/internal/core/common/pagination"
	userDatamodel "github.com/frahmantamala/enterprise-access/internal/core/datamodel/user"
	"github.com/frahmantamala/enterprise-access/internal/role"
	"github.com/frahmantamala/enterprise-access/internal/user"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.RepositoryAPI {
	return &UserRepository{db: db}
}

type roleRow struct {
	UserID string
	ID     string
	Name   string
}

func (r *UserRepository) rolesByUser(userIDs []string) (map[string][]user.RoleRef, error) {
	if len(userIDs) == 0 {
		return map[string][]user.RoleRef{}, nil
	}

	var rows []roleRow
	err := r.db.Table("enterprise_user_roles").
		Select("enterprise_user_roles.user_id AS user_id, roles.id AS id, roles.name AS name").
		Joins("JOIN roles ON roles.id = enterprise_user_roles.role_id").
		Where("enterprise_user_roles.user_id IN ?", userIDs).
		Order("roles.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]user.RoleRef, len(userIDs))
	for _, row := range rows {
		grouped[row.UserID] = append(grouped[row.UserID], user.RoleRef{ID: row.ID, Name: row.Name})
	}
	return grouped, nil
}

func (r *UserRepository) getOne(query *gorm.DB) (*user.User, error) {
	var record userDatamodel.EnterpriseUser
	err := query.First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	roles, err := r.rolesByUser([]string{record.ID})
	if err != nil {
		return nil, err
	}
	return user.FromDataModel(&record, roles[record.ID]), nil
}

func (r *UserRepository) GetByID(id string) (*user.User, error) {
	return r.getOne(r.db.Where("id = ?", id))
}

func (r *UserRepository) GetByEmail(email string) (*user.User, error) {
	return r.getOne(r.db.Where("email = ? AND deleted = ?", email, false))
}

func (r *UserRepository) GetAllByEnterprise(enterpriseID, excludeUserID, search string, opts pagination.Options) ([]*user.User, error) {
	query := r.db.Where("enterprise_id = ? AND deleted = ?", enterpriseID, false)
	if excludeUserID != "" {
		query = query.Where("id <> ?", excludeUserID)
	}
	if search != "" {
		query = query.Where("email LIKE ?", "%"+search+"%")
	}

	var records []userDatamodel.EnterpriseUser
	err := query.Order("created_at ASC").
		Limit(opts.Limit).
		Offset(opts.Offset()).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return r.attachRoles(records)
}

func (r *UserRepository) GetByRoleID(roleID, enterpriseID string) ([]*user.User, error) {
	var records []userDatamodel.EnterpriseUser
	err := r.db.
		Joins("JOIN enterprise_user_roles ON enterprise_user_roles.user_id = enterprise_users.id").
		Where("enterprise_user_roles.role_id = ? AND enterprise_users.enterprise_id = ? AND enterprise_users.deleted = ?",
			roleID, enterpriseID, false).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return r.attachRoles(records)
}

func (r *UserRepository) attachRoles(records []userDatamodel.EnterpriseUser) ([]*user.User, error) {
	userIDs := make([]string, 0, len(records))
	for _, record := range records {
		userIDs = append(userIDs, record.ID)
	}

	roles, err := r.rolesByUser(userIDs)
	if err != nil {
		return nil, err
	}

	users := make([]*user.User, 0, len(records))
	for i := range records {
		users = append(users, user.FromDataModel(&records[i], roles[records[i].ID]))
	}
	return users, nil
}

func (r *UserRepository) Create(u *user.User, roleIDs []string) error {
	record := user.ToDataModel(u)

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(record).Error; err != nil {
			return err
		}

		if len(roleIDs) == 0 {
			return nil
		}
		joins := make([]userDatamodel.EnterpriseUserRole, 0, len(roleIDs))
		for _, roleID := range roleIDs {
			joins = append(joins, userDatamodel.EnterpriseUserRole{
				UserID: record.ID,
				RoleID: roleID,
			})
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&joins).Error
	})
	if err != nil {
		return err
	}

	u.ID = record.ID
	return nil
}

func (r *UserRepository) UpdatePasswordHash(userID, passwordHash string, tempPassword bool) error {
	return r.db.Model(&userDatamodel.EnterpriseUser{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password_hash": passwordHash,
			"temp_password": tempPassword,
		}).Error
}

// UpdateRoles reconciles the user's role set the same way role permissions
// are reconciled: insert only what is missing, delete only what was dropped,
// inside one transaction.
func (r *UserRepository) UpdateRoles(userID string, desiredRoleIDs []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var currentIDs []string
		err := tx.Model(&userDatamodel.EnterpriseUserRole{}).
			Where("user_id = ?", userID).
			Pluck("role_id", &currentIDs).Error
		if err != nil {
			return err
		}

		toAdd, toRemove := role.DiffStringSets(currentIDs, desiredRoleIDs)

		if len(toAdd) > 0 {
			joins := make([]userDatamodel.EnterpriseUserRole, 0, len(toAdd))
			for _, roleID := range toAdd {
				joins = append(joins, userDatamodel.EnterpriseUserRole{
					UserID: userID,
					RoleID: roleID,
				})
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&joins).Error; err != nil {
				return err
			}
		}

		if len(toRemove) > 0 {
			err := tx.Where("user_id = ? AND role_id IN ?", userID, toRemove).
				Delete(&userDatamodel.EnterpriseUserRole{}).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *UserRepository) SetBlocked(userID string, blocked bool) error {
	return r.db.Model(&userDatamodel.EnterpriseUser{}).
		Where("id = ?", userID).
		Update("blocked", blocked).Error
}

func (r *UserRepository) SoftDelete(userID string) error {
	return r.db.Model(&userDatamodel.EnterpriseUser{}).
		Where("id = ?", userID).
		Update("deleted", true).Error
}
