package postgres_test

import (
	"testing"
	"time"

	"github.com/frahmantamala/enterprise-access/internal/core/common/pagination"
	permissionDatamodel "github.com/frahmantamala/enterprise-access/internal/core/datamodel/permission"
	roleDatamodel "github.com/frahmantamala/enterprise-access/internal/core/datamodel/role"
	"github.com/frahmantamala/enterprise-access/internal/role"
	rolePostgres "github.com/frahmantamala/enterprise-access/internal/role/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestRolePostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Role Postgres Suite")
}

var _ = Describe("Role PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo role.RepositoryAPI

		permRead   *permissionDatamodel.Permission
		permCreate *permissionDatamodel.Permission
		permUpdate *permissionDatamodel.Permission
	)

	seedPermission := func(name, slug string) *permissionDatamodel.Permission {
		record := &permissionDatamodel.Permission{Name: name, Slug: slug}
		Expect(db.Create(record).Error).NotTo(HaveOccurred())
		return record
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&permissionDatamodel.Permission{},
			&roleDatamodel.Role{},
			&roleDatamodel.RolePermission{},
		)
		Expect(err).NotTo(HaveOccurred())

		permRead = seedPermission("Read users", "READ_USERS")
		permCreate = seedPermission("Create users", "CREATE_USERS")
		permUpdate = seedPermission("Update users", "UPDATE_USERS")

		repo = rolePostgres.NewRoleRepository(db)
	})

	Describe("Create", func() {
		It("creates a role with its permission grants", func() {
			created, err := repo.Create("ent-1", "Support", true, []string{permRead.ID, permCreate.ID})

			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).NotTo(BeEmpty())
			Expect(created.EnterpriseID).To(Equal("ent-1"))
			Expect(created.Name).To(Equal("Support"))
			Expect(created.Status).To(BeTrue())
			Expect(created.Editable).To(BeTrue())
			Expect(created.Permissions).To(HaveLen(2))
			Expect(created.PermissionIDs()).To(ConsistOf(permRead.ID, permCreate.ID))
		})

		It("creates a role with no permissions", func() {
			created, err := repo.Create("ent-1", "Empty", true, nil)

			Expect(err).NotTo(HaveOccurred())
			Expect(created.Permissions).To(BeEmpty())
		})

		It("collapses duplicate permission ids into one grant", func() {
			created, err := repo.Create("ent-1", "Support", true, []string{permRead.ID, permRead.ID})

			Expect(err).NotTo(HaveOccurred())
			Expect(created.Permissions).To(HaveLen(1))
		})

		It("stores uneditable system roles", func() {
			created, err := repo.Create("ent-1", "Admin", false, []string{permRead.ID})

			Expect(err).NotTo(HaveOccurred())
			Expect(created.Editable).To(BeFalse())

			// the false must survive the INSERT itself, not just the reload
			var row roleDatamodel.Role
			Expect(db.Where("id = ?", created.ID).First(&row).Error).NotTo(HaveOccurred())
			Expect(row.Editable).To(BeFalse())
		})
	})

	Describe("GetByID", func() {
		It("returns nil without error when the role does not exist", func() {
			found, err := repo.GetByID("missing")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeNil())
		})

		It("returns permissions sorted by slug", func() {
			created, err := repo.Create("ent-1", "Support", true,
				[]string{permUpdate.ID, permRead.ID, permCreate.ID})
			Expect(err).NotTo(HaveOccurred())

			found, err := repo.GetByID(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Permissions).To(HaveLen(3))
			Expect(found.Permissions[0].Slug).To(Equal("CREATE_USERS"))
			Expect(found.Permissions[1].Slug).To(Equal("READ_USERS"))
			Expect(found.Permissions[2].Slug).To(Equal("UPDATE_USERS"))
		})
	})

	Describe("GetAllByEnterprise", func() {
		It("only lists active roles of the requested enterprise", func() {
			_, err := repo.Create("ent-1", "Support", true, []string{permRead.ID})
			Expect(err).NotTo(HaveOccurred())
			_, err = repo.Create("ent-2", "Other", true, nil)
			Expect(err).NotTo(HaveOccurred())

			disabled, err := repo.Create("ent-1", "Retired", true, nil)
			Expect(err).NotTo(HaveOccurred())
			disabled.Status = false
			Expect(repo.Update(disabled, nil)).To(Succeed())

			roles, err := repo.GetAllByEnterprise("ent-1", pagination.Options{Page: 1, Limit: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(roles).To(HaveLen(1))
			Expect(roles[0].Name).To(Equal("Support"))
		})

		It("paginates", func() {
			for _, name := range []string{"A", "B", "C"} {
				_, err := repo.Create("ent-1", name, true, nil)
				Expect(err).NotTo(HaveOccurred())
			}

			page, err := repo.GetAllByEnterprise("ent-1", pagination.Options{Page: 2, Limit: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(page).To(HaveLen(1))
		})
	})

	Describe("Update", func() {
		var created *role.Role

		BeforeEach(func() {
			var err error
			created, err = repo.Create("ent-1", "Support", true, []string{permRead.ID, permCreate.ID})
			Expect(err).NotTo(HaveOccurred())
		})

		It("renames without touching permissions when the desired set is nil", func() {
			created.Name = "Helpdesk"
			Expect(repo.Update(created, nil)).To(Succeed())

			found, err := repo.GetByID(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Name).To(Equal("Helpdesk"))
			Expect(found.PermissionIDs()).To(ConsistOf(permRead.ID, permCreate.ID))
		})

		It("adds and removes only the grants in the diff", func() {
			Expect(repo.Update(created, []string{permRead.ID, permUpdate.ID})).To(Succeed())

			found, err := repo.GetByID(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.PermissionIDs()).To(ConsistOf(permRead.ID, permUpdate.ID))
		})

		It("leaves join rows in both sets untouched", func() {
			var before roleDatamodel.RolePermission
			err := db.Where("role_id = ? AND permission_id = ?", created.ID, permRead.ID).
				First(&before).Error
			Expect(err).NotTo(HaveOccurred())

			time.Sleep(5 * time.Millisecond)
			Expect(repo.Update(created, []string{permRead.ID, permUpdate.ID})).To(Succeed())

			var after roleDatamodel.RolePermission
			err = db.Where("role_id = ? AND permission_id = ?", created.ID, permRead.ID).
				First(&after).Error
			Expect(err).NotTo(HaveOccurred())
			Expect(after.CreatedAt).To(BeTemporally("==", before.CreatedAt))
		})

		It("clears every grant when the desired set is empty", func() {
			Expect(repo.Update(created, []string{})).To(Succeed())

			found, err := repo.GetByID(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Permissions).To(BeEmpty())
		})

		It("disables a role", func() {
			created.Status = false
			Expect(repo.Update(created, nil)).To(Succeed())

			found, err := repo.GetByID(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Status).To(BeFalse())
		})
	})
})
