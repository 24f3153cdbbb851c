package enterprise

import (
	"log/slog"
	"testing"

	errors "github.com/frahmantamala/enterprise-access/internal"
	"github.com/frahmantamala/enterprise-access/internal/core/common/pagination"
	enterpriseDatamodel "github.com/frahmantamala/enterprise-access/internal/core/datamodel/enterprise"
	"github.com/frahmantamala/enterprise-access/internal/permission"
	"github.com/frahmantamala/enterprise-access/internal/role"
	"github.com/frahmantamala/enterprise-access/internal/user"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func TestEnterprise(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Enterprise Module Suite")
}

type mockEnterpriseRepository struct {
	enterprises map[string]*enterpriseDatamodel.Enterprise
}

func newMockEnterpriseRepository() *mockEnterpriseRepository {
	return &mockEnterpriseRepository{enterprises: map[string]*enterpriseDatamodel.Enterprise{}}
}

func (m *mockEnterpriseRepository) GetByID(id string) (*enterpriseDatamodel.Enterprise, error) {
	return m.enterprises[id], nil
}

func (m *mockEnterpriseRepository) GetByEmailOrCellPhone(email, cellPhone string) (*enterpriseDatamodel.Enterprise, error) {
	for _, e := range m.enterprises {
		if e.Email == email || e.CellPhone == cellPhone {
			return e, nil
		}
	}
	return nil, nil
}

func (m *mockEnterpriseRepository) Create(record *enterpriseDatamodel.Enterprise) error {
	record.ID = "ent-1"
	m.enterprises[record.ID] = record
	return nil
}

type mockUserDirectory struct {
	byEmail map[string]*user.User
	created []user.CreateUserDTO
}

func (m *mockUserDirectory) FindByEmail(email string) (*user.User, error) {
	return m.byEmail[email], nil
}

func (m *mockUserDirectory) Create(enterpriseID string, dto user.CreateUserDTO) (*user.User, error) {
	m.created = append(m.created, dto)
	return &user.User{ID: "user-admin", EnterpriseID: enterpriseID, Email: dto.Email}, nil
}

type mockRoleCreator struct {
	createdName  string
	grantedPerms []string
}

func (m *mockRoleCreator) CreateUneditable(enterpriseID, name string, permissionIDs []string) (*role.Role, error) {
	m.createdName = name
	m.grantedPerms = permissionIDs
	return &role.Role{ID: "role-admin", EnterpriseID: enterpriseID, Name: name, Editable: false}, nil
}

type mockPermissionDirectory struct {
	catalog []permission.PermissionResponse
}

func (m *mockPermissionDirectory) FindManyWithPagination(opts pagination.Options) ([]permission.PermissionResponse, error) {
	return m.catalog, nil
}

var _ = ginkgo.Describe("EnterpriseService", func() {
	var (
		service *Service
		repo    *mockEnterpriseRepository
		users   *mockUserDirectory
		roles   *mockRoleCreator
		perms   *mockPermissionDirectory
	)

	signup := CreateEnterpriseDTO{
		Name:      "Acme Corp",
		Email:     "admin@acme.test",
		CellPhone: "+15550100",
		User:      CreateEnterpriseUserDTO{Password: "ChangeMe123!"},
	}

	ginkgo.BeforeEach(func() {
		repo = newMockEnterpriseRepository()
		users = &mockUserDirectory{byEmail: map[string]*user.User{}}
		roles = &mockRoleCreator{}
		perms = &mockPermissionDirectory{
			catalog: []permission.PermissionResponse{
				{ID: "perm-1", Name: "Read users", Slug: "READ_USERS"},
				{ID: "perm-2", Name: "Create users", Slug: "CREATE_USERS"},
				{ID: "perm-3", Name: "Read roles", Slug: "READ_ROLES"},
			},
		}
		service = NewService(repo, users, roles, perms, slog.Default())
	})

	ginkgo.Describe("Create", func() {
		ginkgo.It("registers the tenant and bootstraps the admin", func() {
			created, err := service.Create(signup)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(created.ID).To(gomega.Equal("ent-1"))
			gomega.Expect(created.Email).To(gomega.Equal("admin@acme.test"))

			gomega.Expect(roles.createdName).To(gomega.Equal("Admin"))
			gomega.Expect(roles.grantedPerms).To(gomega.ConsistOf("perm-1", "perm-2", "perm-3"))

			gomega.Expect(users.created).To(gomega.HaveLen(1))
			gomega.Expect(users.created[0].Email).To(gomega.Equal("admin@acme.test"))
			gomega.Expect(users.created[0].RoleIDs).To(gomega.Equal([]string{"role-admin"}))
		})

		ginkgo.It("lowercases the contact email before any lookup", func() {
			upper := signup
			upper.Email = "Admin@Acme.Test"

			created, err := service.Create(upper)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(created.Email).To(gomega.Equal("admin@acme.test"))
		})

		ginkgo.It("rejects a second signup with the same email", func() {
			_, err := service.Create(signup)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			second := signup
			second.CellPhone = "+15550199"
			_, err = service.Create(second)
			gomega.Expect(err).To(gomega.Equal(errors.ErrEnterpriseAlreadyExists))
		})

		ginkgo.It("rejects a second signup with the same cell phone", func() {
			_, err := service.Create(signup)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			second := signup
			second.Email = "other@acme.test"
			_, err = service.Create(second)
			gomega.Expect(err).To(gomega.Equal(errors.ErrEnterpriseAlreadyExists))
		})

		ginkgo.It("rejects signup when a user already holds the email", func() {
			users.byEmail["admin@acme.test"] = &user.User{ID: "user-9", Email: "admin@acme.test"}

			_, err := service.Create(signup)
			gomega.Expect(err).To(gomega.Equal(errors.ErrEmailAlreadyExists))
		})

		ginkgo.It("refuses to bootstrap on an empty permission catalog", func() {
			perms.catalog = nil

			_, err := service.Create(signup)
			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(roles.createdName).To(gomega.BeEmpty())
		})

		ginkgo.It("rejects a weak admin password", func() {
			weak := signup
			weak.User.Password = "short"

			_, err := service.Create(weak)
			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("FindByID", func() {
		ginkgo.It("reports not found for an unknown tenant", func() {
			_, err := service.FindByID("missing")
			gomega.Expect(err).To(gomega.Equal(errors.ErrEnterpriseNotFound))
		})

		ginkgo.It("returns the stored tenant", func() {
			created, err := service.Create(signup)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			found, err := service.FindByID(created.ID)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(found.Name).To(gomega.Equal("Acme Corp"))
		})
	})
})
