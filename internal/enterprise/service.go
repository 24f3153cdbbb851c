package enterprise

import (
	"log/slog"
	"strings"

	errors "github.com/frahmantamala/enterprise-access/internal"
	"github.com/frahmantamala/enterprise-access/internal/core/common/pagination"
	enterpriseDatamodel "github.com/frahmantamala/enterprise-access/internal/core/datamodel/enterprise"
	"github.com/frahmantamala/enterprise-access/internal/permission"
	"github.com/frahmantamala/enterprise-access/internal/role"
	"github.com/frahmantamala/enterprise-access/internal/user"
)

type RepositoryAPI interface {
	GetByID(id string) (*enterpriseDatamodel.Enterprise, error)
	GetByEmailOrCellPhone(email, cellPhone string) (*enterpriseDatamodel.Enterprise, error)
	Create(enterprise *enterpriseDatamodel.Enterprise) error
}

type UserDirectory interface {
	FindByEmail(email string) (*user.User, error)
	Create(enterpriseID string, dto user.CreateUserDTO) (*user.User, error)
}

type RoleCreator interface {
	CreateUneditable(enterpriseID, name string, permissionIDs []string) (*role.Role, error)
}

type PermissionDirectory interface {
	FindManyWithPagination(opts pagination.Options) ([]permission.PermissionResponse, error)
}

type Service struct {
	repo        RepositoryAPI
	users       UserDirectory
	roles       RoleCreator
	permissions PermissionDirectory
	logger      *slog.Logger
}

func NewService(repo RepositoryAPI, users UserDirectory, roles RoleCreator, permissions PermissionDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		users:       users,
		roles:       roles,
		permissions: permissions,
		logger:      logger,
	}
}

func (s *Service) FindByID(id string) (*Enterprise, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get enterprise", "enterprise_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get enterprise", err)
	}
	if record == nil {
		return nil, errors.ErrEnterpriseNotFound
	}
	return FromDataModel(record), nil
}

// Create is the signup flow: it registers the tenant, bootstraps an
// uneditable Admin role granted every permission known at signup time, and
// creates the admin user holding that role. The admin's login email is the
// enterprise contact email.
func (s *Service) Create(dto CreateEnterpriseDTO) (*Enterprise, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	email := strings.ToLower(dto.Email)

	existing, err := s.repo.GetByEmailOrCellPhone(email, dto.CellPhone)
	if err != nil {
		return nil, errors.NewInternalError("failed to check enterprise", err)
	}
	if existing != nil {
		return nil, errors.ErrEnterpriseAlreadyExists
	}

	existingUser, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existingUser != nil {
		return nil, errors.ErrEmailAlreadyExists
	}

	catalog, err := s.permissions.FindManyWithPagination(pagination.Options{Page: 1, Limit: 999})
	if err != nil {
		return nil, err
	}
	if len(catalog) == 0 {
		return nil, errors.NewInternalError("permission catalog is empty; run the seeder first", nil)
	}
	permissionIDs := make([]string, 0, len(catalog))
	for _, p := range catalog {
		permissionIDs = append(permissionIDs, p.ID)
	}

	record := &enterpriseDatamodel.Enterprise{
		Name:        dto.Name,
		Email:       email,
		CellPhone:   dto.CellPhone,
		LogoURL:     dto.LogoURL,
		Description: dto.Description,
	}
	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create enterprise", "error", err)
		return nil, errors.NewInternalError("failed to create enterprise", err)
	}

	adminRole, err := s.roles.CreateUneditable(record.ID, "Admin", permissionIDs)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.Create(record.ID, user.CreateUserDTO{
		Email:    email,
		Password: dto.User.Password,
		RoleIDs:  []string{adminRole.ID},
	}); err != nil {
		return nil, err
	}

	s.logger.Info("enterprise created", "enterprise_id", record.ID,
		"admin_role_id", adminRole.ID, "permission_count", len(permissionIDs))
	return FromDataModel(record), nil
}
