package postgres_test

import (
	"testing"

	"github.com/frahmantamala/enterprise-access/internal/core/common/pagination"
	permissionDatamodel "github.com/frahmantamala/enterprise-access/internal/core/datamodel/permission"
	roleDatamodel "github.com/frahmantamala/enterprise-access/internal/core/datamodel/role"
	"github.com/frahmantamala/enterprise-access/internal/permission"
	permissionPostgres "github.com/frahmantamala/enterprise-access/internal/permission/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestPermissionPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Permission Postgres Suite")
}

var _ = Describe("Permission PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo permission.RepositoryAPI
	)

	seed := func(name, slug string) *permissionDatamodel.Permission {
		record := &permissionDatamodel.Permission{Name: name, Slug: slug}
		Expect(repo.Create(record)).To(Succeed())
		return record
	}

	grant := func(roleID, permissionID string) {
		Expect(db.Create(&roleDatamodel.RolePermission{
			RoleID:       roleID,
			PermissionID: permissionID,
		}).Error).NotTo(HaveOccurred())
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&permissionDatamodel.Permission{},
			&roleDatamodel.RolePermission{},
		)
		Expect(err).NotTo(HaveOccurred())

		repo = permissionPostgres.NewPermissionRepository(db)
	})

	Describe("Create", func() {
		It("assigns an id and persists the record", func() {
			record := seed("Read users", "READ_USERS")

			Expect(record.ID).NotTo(BeEmpty())
			found, err := repo.GetByID(record.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Slug).To(Equal("READ_USERS"))
		})

		It("rejects a duplicate slug", func() {
			seed("Read users", "READ_USERS")

			err := repo.Create(&permissionDatamodel.Permission{
				Name: "Read users again",
				Slug: "READ_USERS",
			})
			Expect(err).To(HaveOccurred())
		})

		It("rejects a duplicate name", func() {
			seed("Read users", "READ_USERS")

			err := repo.Create(&permissionDatamodel.Permission{
				Name: "Read users",
				Slug: "READ_USERS_V2",
			})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("lookups", func() {
		It("returns nil without error for a missing id, slug and name", func() {
			byID, err := repo.GetByID("missing")
			Expect(err).NotTo(HaveOccurred())
			Expect(byID).To(BeNil())

			bySlug, err := repo.GetBySlug("MISSING")
			Expect(err).NotTo(HaveOccurred())
			Expect(bySlug).To(BeNil())

			byName, err := repo.GetByName("missing")
			Expect(err).NotTo(HaveOccurred())
			Expect(byName).To(BeNil())
		})

		It("finds records by slug and by name", func() {
			record := seed("Read users", "READ_USERS")

			bySlug, err := repo.GetBySlug("READ_USERS")
			Expect(err).NotTo(HaveOccurred())
			Expect(bySlug.ID).To(Equal(record.ID))

			byName, err := repo.GetByName("Read users")
			Expect(err).NotTo(HaveOccurred())
			Expect(byName.ID).To(Equal(record.ID))
		})

		It("fetches a batch by ids", func() {
			a := seed("Read users", "READ_USERS")
			b := seed("Create users", "CREATE_USERS")
			seed("Update users", "UPDATE_USERS")

			batch, err := repo.GetByIDs([]string{a.ID, b.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(batch).To(HaveLen(2))
		})
	})

	Describe("GetAll", func() {
		It("pages the catalog ordered by slug", func() {
			seed("Update users", "UPDATE_USERS")
			seed("Create users", "CREATE_USERS")
			seed("Read users", "READ_USERS")

			page, err := repo.GetAll(pagination.Options{Page: 1, Limit: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(page).To(HaveLen(2))
			Expect(page[0].Slug).To(Equal("CREATE_USERS"))
			Expect(page[1].Slug).To(Equal("READ_USERS"))
		})
	})

	Describe("GetSlugsByRoleIDs", func() {
		It("returns the union of slugs granted by the roles, each slug once", func() {
			read := seed("Read users", "READ_USERS")
			create := seed("Create users", "CREATE_USERS")
			update := seed("Update users", "UPDATE_USERS")

			grant("role-admin", read.ID)
			grant("role-admin", create.ID)
			grant("role-admin", update.ID)
			grant("role-viewer", read.ID)

			slugs, err := repo.GetSlugsByRoleIDs([]string{"role-admin", "role-viewer"})
			Expect(err).NotTo(HaveOccurred())
			Expect(slugs).To(Equal([]string{"CREATE_USERS", "READ_USERS", "UPDATE_USERS"}))
		})

		It("returns an empty slice for roles with no grants", func() {
			slugs, err := repo.GetSlugsByRoleIDs([]string{"role-none"})
			Expect(err).NotTo(HaveOccurred())
			Expect(slugs).NotTo(BeNil())
			Expect(slugs).To(BeEmpty())
		})
	})

	Describe("Update", func() {
		It("persists changed fields", func() {
			record := seed("Read users", "READ_USERS")
			record.Name = "Read all users"
			Expect(repo.Update(record)).To(Succeed())

			found, err := repo.GetByID(record.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Name).To(Equal("Read all users"))
		})
	})
})
