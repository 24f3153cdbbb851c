package postgres

import (
	enterpriseDatamodel "github.com/frahmantamala/enterprise-access/internal/core/datamodel/enterprise"
	"github.com/frahmantamala/enterprise-access/internal/enterprise"
	"gorm.io/gorm"
)

type EnterpriseRepository struct {
	db *gorm.DB
}

func NewEnterpriseRepository(db *gorm.DB) enterprise.RepositoryAPI {
	return &EnterpriseRepository{db: db}
}

func (r *EnterpriseRepository) GetByID(id string) (*enterpriseDatamodel.Enterprise, error) {
	var record enterpriseDatamodel.Enterprise
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *EnterpriseRepository) GetByEmailOrCellPhone(email, cellPhone string) (*enterpriseDatamodel.Enterprise, error) {
	var record enterpriseDatamodel.Enterprise
	err := r.db.Where("email = ? OR cell_phone = ?", email, cellPhone).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *EnterpriseRepository) Create(record *enterpriseDatamodel.Enterprise) error {
	return r.db.Create(record).Error
}
