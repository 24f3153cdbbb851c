package user

import (
	"context"
	"log/slog"
	"strings"

	errors "github.com/frahmantamala/enterprise-access/internal"
	"github.com/frahmantamala/enterprise-access/internal/core/common/pagination"
	"github.com/frahmantamala/enterprise-access/internal/core/events"
	"golang.org/x/crypto/bcrypt"
)

type RepositoryAPI interface {
	GetByID(id string) (*User, error)
	GetByEmail(email string) (*User, error)
	GetAllByEnterprise(enterpriseID, excludeUserID, search string, opts pagination.Options) ([]*User, error)
	GetByRoleID(roleID, enterpriseID string) ([]*User, error)
	Create(user *User, roleIDs []string) error
	UpdatePasswordHash(userID, passwordHash string, tempPassword bool) error
	UpdateRoles(userID string, desiredRoleIDs []string) error
	SetBlocked(userID string, blocked bool) error
	SoftDelete(userID string) error
}

// SessionInactivator lets the identity service kill live sessions when an
// account is blocked, without importing the session package.
type SessionInactivator interface {
	InactivateByUserID(userID string) error
}

// RoleValidator guards role assignment: every id must name a role of the
// caller's own enterprise.
type RoleValidator interface {
	ValidateIDsForEnterprise(enterpriseID string, ids []string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo       RepositoryAPI
	sessions   SessionInactivator
	roles      RoleValidator
	eventBus   EventPublisher
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo RepositoryAPI, sessions SessionInactivator, roles RoleValidator, eventBus EventPublisher, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		sessions:   sessions,
		roles:      roles,
		eventBus:   eventBus,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) FindByEmail(email string) (*User, error) {
	u, err := s.repo.GetByEmail(strings.ToLower(email))
	if err != nil {
		s.logger.Error("failed to get user by email", "error", err)
		return nil, errors.NewInternalError("failed to get user", err)
	}
	return u, nil
}

func (s *Service) FindByID(id string) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get user", "user_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get user", err)
	}
	return u, nil
}

func (s *Service) FindManyWithPagination(enterpriseID, requestingUserID, search string, opts pagination.Options) ([]UserResponse, error) {
	users, err := s.repo.GetAllByEnterprise(enterpriseID, requestingUserID, search, opts)
	if err != nil {
		s.logger.Error("failed to list users", "enterprise_id", enterpriseID, "error", err)
		return nil, errors.NewInternalError("failed to list users", err)
	}

	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, u.ToResponse())
	}
	return responses, nil
}

func (s *Service) FindByRoleID(roleID, enterpriseID string) ([]UserResponse, error) {
	users, err := s.repo.GetByRoleID(roleID, enterpriseID)
	if err != nil {
		s.logger.Error("failed to list users by role", "role_id", roleID, "error", err)
		return nil, errors.NewInternalError("failed to list users", err)
	}

	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, u.ToResponse())
	}
	return responses, nil
}

func (s *Service) Create(enterpriseID string, dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if err := s.roles.ValidateIDsForEnterprise(enterpriseID, dto.RoleIDs); err != nil {
		return nil, err
	}

	email := strings.ToLower(dto.Email)
	existing, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, errors.NewInternalError("failed to check email", err)
	}
	if existing != nil {
		return nil, errors.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, errors.NewInternalError("failed to hash password", err)
	}

	u := &User{
		EnterpriseID: enterpriseID,
		Email:        email,
		PasswordHash: string(hash),
		TempPassword: true,
	}
	if err := s.repo.Create(u, dto.RoleIDs); err != nil {
		s.logger.Error("failed to create user", "enterprise_id", enterpriseID, "error", err)
		return nil, errors.NewInternalError("failed to create user", err)
	}

	s.logger.Info("user created", "user_id", u.ID, "enterprise_id", enterpriseID)
	return s.FindByID(u.ID)
}

func (s *Service) UpdateRoles(userID, enterpriseID string, dto UpdateUserRolesDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	u, err := s.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if u == nil || u.EnterpriseID != enterpriseID || u.Deleted {
		return nil, errors.ErrUserNotFound
	}

	if err := s.roles.ValidateIDsForEnterprise(enterpriseID, dto.RoleIDs); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateRoles(userID, dto.RoleIDs); err != nil {
		s.logger.Error("failed to update user roles", "user_id", userID, "error", err)
		return nil, errors.NewInternalError("failed to update user roles", err)
	}

	return s.FindByID(userID)
}

func (s *Service) ChangePassword(userID string, dto ChangePasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	u, err := s.FindByID(userID)
	if err != nil {
		return err
	}
	if u == nil {
		return errors.ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.CurrentPassword)); err != nil {
		return errors.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.NewPassword), s.bcryptCost)
	if err != nil {
		return errors.NewInternalError("failed to hash password", err)
	}

	// a self-chosen password is no longer temporary
	if err := s.repo.UpdatePasswordHash(userID, string(hash), false); err != nil {
		s.logger.Error("failed to update password", "user_id", userID, "error", err)
		return errors.NewInternalError("failed to update password", err)
	}
	return nil
}

// Block locks the account and kills every live session it holds.
func (s *Service) Block(userID, enterpriseID, blockedBy string) error {
	u, err := s.FindByID(userID)
	if err != nil {
		return err
	}
	if u == nil || u.EnterpriseID != enterpriseID || u.Deleted {
		return errors.ErrUserNotFound
	}

	if err := s.repo.SetBlocked(userID, true); err != nil {
		s.logger.Error("failed to block user", "user_id", userID, "error", err)
		return errors.NewInternalError("failed to block user", err)
	}
	if err := s.sessions.InactivateByUserID(userID); err != nil {
		return err
	}

	if s.eventBus != nil {
		if err := s.eventBus.Publish(context.Background(), events.NewUserBlockedEvent(userID, enterpriseID, blockedBy)); err != nil {
			s.logger.Warn("failed to publish event", "error", err)
		}
	}

	s.logger.Info("user blocked", "user_id", userID)
	return nil
}

func (s *Service) Delete(userID, enterpriseID string) error {
	u, err := s.FindByID(userID)
	if err != nil {
		return err
	}
	if u == nil || u.EnterpriseID != enterpriseID || u.Deleted {
		return errors.ErrUserNotFound
	}

	if err := s.repo.SoftDelete(userID); err != nil {
		s.logger.Error("failed to delete user", "user_id", userID, "error", err)
		return errors.NewInternalError("failed to delete user", err)
	}
	return s.sessions.InactivateByUserID(userID)
}

// HashPassword is used by seeding and enterprise bootstrap.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
