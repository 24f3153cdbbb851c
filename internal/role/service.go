package role

import (
	"log/slog"

	errors "github.com/frahmantamala/enterprise-access/internal"
	"github.com/frahmantamala/enterprise-access/internal/core/common/pagination"
)

type RepositoryAPI interface {
	GetByID(id string) (*Role, error)
	GetAllByEnterprise(enterpriseID string, opts pagination.Options) ([]*Role, error)
	Create(enterpriseID, name string, editable bool, permissionIDs []string) (*Role, error)
	// Update persists the scalar patch and reconciles the permission set in a
	// single transaction. A nil desiredPermissionIDs leaves the set untouched.
	Update(role *Role, desiredPermissionIDs []string) error
}

// PermissionValidator guards role writes against unknown permission ids.
type PermissionValidator interface {
	ValidateIDsExist(ids []string) error
}

type Service struct {
	repo        RepositoryAPI
	permissions PermissionValidator
	logger      *slog.Logger
}

func NewService(repo RepositoryAPI, permissions PermissionValidator, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		permissions: permissions,
		logger:      logger,
	}
}

func (s *Service) FindManyWithPagination(enterpriseID string, opts pagination.Options) ([]RoleResponse, error) {
	roles, err := s.repo.GetAllByEnterprise(enterpriseID, opts)
	if err != nil {
		s.logger.Error("failed to list roles", "enterprise_id", enterpriseID, "error", err)
		return nil, errors.NewInternalError("failed to list roles", err)
	}

	responses := make([]RoleResponse, 0, len(roles))
	for _, r := range roles {
		responses = append(responses, r.ToResponse())
	}
	return responses, nil
}

func (s *Service) FindByID(id, enterpriseID string) (*Role, error) {
	role, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get role", "role_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get role", err)
	}
	if role == nil || role.EnterpriseID != enterpriseID {
		return nil, errors.ErrRoleNotFound
	}
	return role, nil
}

// ValidateIDsForEnterprise rejects role ids that do not exist or belong to
// another enterprise, so user role assignment can never reach across tenants.
func (s *Service) ValidateIDsForEnterprise(enterpriseID string, ids []string) error {
	for _, id := range ids {
		role, err := s.repo.GetByID(id)
		if err != nil {
			s.logger.Error("failed to get role", "role_id", id, "error", err)
			return errors.NewInternalError("failed to validate roles", err)
		}
		if role == nil || role.EnterpriseID != enterpriseID {
			return errors.ErrRoleNotFound
		}
	}
	return nil
}

func (s *Service) Create(enterpriseID string, dto CreateRoleDTO) (*Role, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if err := s.permissions.ValidateIDsExist(dto.PermissionIDs); err != nil {
		return nil, err
	}

	role, err := s.repo.Create(enterpriseID, dto.Name, true, dto.PermissionIDs)
	if err != nil {
		s.logger.Error("failed to create role", "enterprise_id", enterpriseID, "error", err)
		return nil, errors.NewInternalError("failed to create role", err)
	}

	s.logger.Info("role created", "role_id", role.ID, "enterprise_id", enterpriseID,
		"permission_count", len(role.Permissions))
	return role, nil
}

// CreateUneditable creates a role that cannot be modified afterwards; used by
// enterprise signup to bootstrap the Admin role.
func (s *Service) CreateUneditable(enterpriseID, name string, permissionIDs []string) (*Role, error) {
	if len(permissionIDs) == 0 {
		return nil, errors.NewValidationError("permission ids must not be empty", errors.ErrCodeEmptyPermissions)
	}

	role, err := s.repo.Create(enterpriseID, name, false, permissionIDs)
	if err != nil {
		s.logger.Error("failed to create role", "enterprise_id", enterpriseID, "error", err)
		return nil, errors.NewInternalError("failed to create role", err)
	}
	return role, nil
}

func (s *Service) Update(id, enterpriseID string, dto UpdateRoleDTO) (*Role, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	role, err := s.FindByID(id, enterpriseID)
	if err != nil {
		return nil, err
	}

	if !role.Editable {
		return nil, errors.ErrRoleNotEditable
	}

	if dto.PermissionIDs != nil {
		if err := s.permissions.ValidateIDsExist(dto.PermissionIDs); err != nil {
			return nil, err
		}
	}

	if dto.Name != nil {
		role.Name = *dto.Name
	}
	if dto.Status != nil {
		role.Status = *dto.Status
	}

	if err := s.repo.Update(role, dto.PermissionIDs); err != nil {
		s.logger.Error("failed to update role", "role_id", id, "error", err)
		return nil, errors.NewInternalError("failed to update role", err)
	}

	updated, err := s.repo.GetByID(id)
	if err != nil {
		return nil, errors.NewInternalError("failed to reload role", err)
	}

	s.logger.Info("role updated", "role_id", id, "enterprise_id", enterpriseID)
	return updated, nil
}
