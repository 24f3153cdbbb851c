package cmd

import (
	"log"

	"github.com/frahmantamala/enterprise-access/internal/enterprise"
	enterprisePostgres "github.com/frahmantamala/enterprise-access/internal/enterprise/postgres"
	"github.com/frahmantamala/enterprise-access/internal/permission"
	permissionPostgres "github.com/frahmantamala/enterprise-access/internal/permission/postgres"
	"github.com/frahmantamala/enterprise-access/internal/role"
	rolePostgres "github.com/frahmantamala/enterprise-access/internal/role/postgres"
	"github.com/frahmantamala/enterprise-access/internal/session"
	sessionPostgres "github.com/frahmantamala/enterprise-access/internal/session/postgres"
	"github.com/frahmantamala/enterprise-access/internal/transport/rest"
	"github.com/frahmantamala/enterprise-access/internal/user"
	userPostgres "github.com/frahmantamala/enterprise-access/internal/user/postgres"
	"github.com/frahmantamala/enterprise-access/pkg/logger"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// permissionCatalog is the full set of management permissions. Enterprise
// signup grants all of them to the bootstrap Admin role, so the catalog must
// be seeded before the first signup.
var permissionCatalog = []struct {
	Name string
	Slug string
}{
	{"Read users", rest.PermReadUsers},
	{"Create users", rest.PermCreateUsers},
	{"Update users", rest.PermUpdateUsers},
	{"Read roles", rest.PermReadRoles},
	{"Create roles", rest.PermCreateRoles},
	{"Update roles", rest.PermUpdateRoles},
	{"Read permissions", rest.PermReadPermissions},
	{"Create permissions", rest.PermCreatePermissions},
	{"Update permissions", rest.PermUpdatePermissions},
	{"Read enterprise", rest.PermReadEnterprise},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with the permission catalog and a demo tenant",
	Long:  `Seed the permission catalog and, for development, a demo enterprise with its bootstrap admin user.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		logger.Init(cfg.Observability.Logging.Level, cfg.Observability.Logging.Format)
		lg := logger.L()

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlDB.Close()

		gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			tables := []string{
				"enterprise_user_roles", "role_permissions", "sessions",
				"enterprise_users", "roles", "enterprises", "permissions",
			}
			for _, table := range tables {
				if err := gormDB.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear table %s: %v", table, err)
				}
			}
			lg.Info("cleared existing data")
		}

		permissionRepo := permissionPostgres.NewPermissionRepository(gormDB)
		permissionService := permission.NewService(permissionRepo, lg)

		for _, p := range permissionCatalog {
			existing, err := permissionRepo.GetBySlug(p.Slug)
			if err != nil {
				log.Fatalf("failed to check permission %s: %v", p.Slug, err)
			}
			if existing != nil {
				continue
			}
			if _, err := permissionService.Create(permission.CreatePermissionDTO{
				Name: p.Name,
				Slug: p.Slug,
			}); err != nil {
				log.Fatalf("failed to seed permission %s: %v", p.Slug, err)
			}
			lg.Info("seeded permission", "slug", p.Slug)
		}

		roleRepo := rolePostgres.NewRoleRepository(gormDB)
		sessionRepo := sessionPostgres.NewSessionRepository(gormDB)
		userRepo := userPostgres.NewUserRepository(gormDB)
		enterpriseRepo := enterprisePostgres.NewEnterpriseRepository(gormDB)

		roleService := role.NewService(roleRepo, permissionService, lg)
		sessionService := session.NewService(sessionRepo, lg)
		userService := user.NewService(userRepo, sessionService, roleService, nil, cfg.Security.BCryptCost, lg)
		enterpriseService := enterprise.NewService(enterpriseRepo, userService, roleService, permissionService, lg)

		demoEmail := "admin@acme.test"
		existing, err := enterpriseRepo.GetByEmailOrCellPhone(demoEmail, "+15550100")
		if err != nil {
			log.Fatalf("failed to check demo enterprise: %v", err)
		}
		if existing != nil {
			lg.Info("demo enterprise already exists", "email", demoEmail)
			return
		}

		ent, err := enterpriseService.Create(enterprise.CreateEnterpriseDTO{
			Name:      "Acme Corp",
			Email:     demoEmail,
			CellPhone: "+15550100",
			User: enterprise.CreateEnterpriseUserDTO{
				Password: "ChangeMe123!",
			},
		})
		if err != nil {
			log.Fatalf("failed to seed demo enterprise: %v", err)
		}

		lg.Info("seeded demo enterprise", "enterprise_id", ent.ID, "admin_email", demoEmail)
	},
}
