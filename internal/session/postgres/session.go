package postgres

import (
	sessionDatamodel "github.com/frahmantamala/enterprise-access/internal/core/datamodel/session"
	"github.com/frahmantamala/enterprise-access/internal/session"
	"gorm.io/gorm"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) session.RepositoryAPI {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) GetByID(id string) (*sessionDatamodel.Session, error) {
	var record sessionDatamodel.Session
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *SessionRepository) Create(record *sessionDatamodel.Session) error {
	return r.db.Create(record).Error
}

func (r *SessionRepository) UpdateSecretHash(id, secretHash string) error {
	return r.db.Model(&sessionDatamodel.Session{}).
		Where("id = ?", id).
		Update("secret_hash", secretHash).Error
}

func (r *SessionRepository) InactivateByID(id string) error {
	return r.db.Model(&sessionDatamodel.Session{}).
		Where("id = ?", id).
		Update("active", false).Error
}

func (r *SessionRepository) InactivateByUserID(userID string) error {
	return r.db.Model(&sessionDatamodel.Session{}).
		Where("user_id = ?", userID).
		Update("active", false).Error
}
