package permission

import (
	"log/slog"

	errors "github.com/frahmantamala/enterprise-access/internal"
	"github.com/frahmantamala/enterprise-access/internal/core/common/pagination"
	permissionDatamodel "github.com/frahmantamala/enterprise-access/internal/core/datamodel/permission"
)

type RepositoryAPI interface {
	GetAll(opts pagination.Options) ([]*permissionDatamodel.Permission, error)
	GetByID(id string) (*permissionDatamodel.Permission, error)
	GetByIDs(ids []string) ([]*permissionDatamodel.Permission, error)
	GetBySlug(slug string) (*permissionDatamodel.Permission, error)
	GetByName(name string) (*permissionDatamodel.Permission, error)
	GetSlugsByRoleIDs(roleIDs []string) ([]string, error)
	Create(permission *permissionDatamodel.Permission) error
	Update(permission *permissionDatamodel.Permission) error
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

func (s *Service) FindManyWithPagination(opts pagination.Options) ([]PermissionResponse, error) {
	records, err := s.repo.GetAll(opts)
	if err != nil {
		s.logger.Error("failed to list permissions", "error", err)
		return nil, errors.NewInternalError("failed to list permissions", err)
	}

	responses := make([]PermissionResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, FromDataModel(record).ToResponse())
	}
	return responses, nil
}

func (s *Service) FindByID(id string) (*Permission, error) {
	record, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get permission", "permission_id", id, "error", err)
		return nil, errors.NewInternalError("failed to get permission", err)
	}
	if record == nil {
		return nil, errors.ErrPermissionNotFound
	}
	return FromDataModel(record), nil
}

func (s *Service) FindBySlug(slug string) (*Permission, error) {
	record, err := s.repo.GetBySlug(slug)
	if err != nil {
		s.logger.Error("failed to get permission by slug", "slug", slug, "error", err)
		return nil, errors.NewInternalError("failed to get permission", err)
	}
	if record == nil {
		return nil, errors.ErrPermissionNotFound
	}
	return FromDataModel(record), nil
}

// ValidateIDsExist checks that every given permission id is registered. Role
// create/update call this before touching join rows.
func (s *Service) ValidateIDsExist(ids []string) error {
	if len(ids) == 0 {
		return errors.NewValidationError("permission ids must not be empty", errors.ErrCodeEmptyPermissions)
	}

	records, err := s.repo.GetByIDs(ids)
	if err != nil {
		s.logger.Error("failed to look up permissions", "error", err)
		return errors.NewInternalError("failed to look up permissions", err)
	}

	found := make(map[string]struct{}, len(records))
	for _, record := range records {
		found[record.ID] = struct{}{}
	}
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			return errors.ErrPermissionNotFound
		}
	}
	return nil
}

// FindSlugsByRoleIDs aggregates the distinct permission slugs granted by any
// of the given roles. This is the claim set embedded in access tokens.
func (s *Service) FindSlugsByRoleIDs(roleIDs []string) ([]string, error) {
	if len(roleIDs) == 0 {
		return []string{}, nil
	}

	slugs, err := s.repo.GetSlugsByRoleIDs(roleIDs)
	if err != nil {
		s.logger.Error("failed to aggregate permission slugs", "role_ids", roleIDs, "error", err)
		return nil, errors.NewInternalError("failed to aggregate permissions", err)
	}
	return slugs, nil
}

func (s *Service) Create(dto CreatePermissionDTO) (*Permission, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetBySlug(dto.Slug)
	if err != nil {
		return nil, errors.NewInternalError("failed to check permission slug", err)
	}
	if existing != nil {
		return nil, errors.ErrSlugAlreadyExists
	}

	existing, err = s.repo.GetByName(dto.Name)
	if err != nil {
		return nil, errors.NewInternalError("failed to check permission name", err)
	}
	if existing != nil {
		return nil, errors.ErrNameAlreadyExists
	}

	record := &permissionDatamodel.Permission{
		Name: dto.Name,
		Slug: dto.Slug,
	}
	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create permission", "slug", dto.Slug, "error", err)
		return nil, errors.NewInternalError("failed to create permission", err)
	}

	s.logger.Info("permission created", "permission_id", record.ID, "slug", record.Slug)
	return FromDataModel(record), nil
}

func (s *Service) Update(id string, dto UpdatePermissionDTO) (*Permission, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	record, err := s.repo.GetByID(id)
	if err != nil {
		return nil, errors.NewInternalError("failed to get permission", err)
	}
	if record == nil {
		return nil, errors.ErrPermissionNotFound
	}

	if dto.Slug != record.Slug {
		conflict, err := s.repo.GetBySlug(dto.Slug)
		if err != nil {
			return nil, errors.NewInternalError("failed to check permission slug", err)
		}
		if conflict != nil {
			return nil, errors.ErrSlugAlreadyExists
		}
	}

	record.Name = dto.Name
	record.Slug = dto.Slug
	if err := s.repo.Update(record); err != nil {
		s.logger.Error("failed to update permission", "permission_id", id, "error", err)
		return nil, errors.NewInternalError("failed to update permission", err)
	}

	return FromDataModel(record), nil
}
