package session

import (
	"log/slog"

	errors "github.com/frahmantamala/enterprise-access/internal"
	sessionDatamodel "github.com/frahmantamala/enterprise-access/internal/core/datamodel/session"
)

type RepositoryAPI interface {
	GetByID(id string) (*sessionDatamodel.Session, error)
	Create(session *sessionDatamodel.Session) error
	UpdateSecretHash(id, secretHash string) error
	InactivateByID(id string) error
	InactivateByUserID(userID string) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) Create(userID, secretHash string) (*Session, error) {
	record := &sessionDatamodel.Session{
		UserID:     userID,
		SecretHash: secretHash,
		Active:     true,
	}
	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create session", "user_id", userID, "error", err)
		return nil, errors.NewInternalError("failed to create session", err)
	}
	return FromDataModel(record), nil
}

func (s *Service) FindByID(id string) (*Session, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get session", "session_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get session", err)
	}
	if record == nil {
		return nil, nil
	}
	return FromDataModel(record), nil
}

// Rotate swaps the session's secret hash. The session identity persists; any
// refresh token minted against the previous hash stops matching.
func (s *Service) Rotate(id, newSecretHash string) error {
	if err := s.repo.UpdateSecretHash(id, newSecretHash); err != nil {
		s.logger.Error("failed to rotate session secret", "session_id", id, "error", err)
		return errors.NewInternalError("failed to rotate session", err)
	}
	return nil
}

// InactivateByID is idempotent: inactivating an already-inactive session is a
// no-op.
func (s *Service) InactivateByID(id string) error {
	if err := s.repo.InactivateByID(id); err != nil {
		s.logger.Error("failed to inactivate session", "session_id", id, "error", err)
		return errors.NewInternalError("failed to inactivate session", err)
	}
	return nil
}

// InactivateByUserID kills every session a user holds; used when the user is
// blocked.
func (s *Service) InactivateByUserID(userID string) error {
	if err := s.repo.InactivateByUserID(userID); err != nil {
		s.logger.Error("failed to inactivate user sessions", "user_id", userID, "error", err)
		return errors.NewInternalError("failed to inactivate sessions", err)
	}
	return nil
}
