package auth

import (
	"fmt"
	"log/slog"
	"testing"
	"time"

	errors "github.com/frahmantamala/enterprise-access/internal"
	"github.com/frahmantamala/enterprise-access/internal/session"
	"github.com/frahmantamala/enterprise-access/internal/user"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

type mockUserDirectory struct {
	byEmail map[string]*user.User
	byID    map[string]*user.User
}

func newMockUserDirectory() *mockUserDirectory {
	hash, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.MinCost)

	admin := &user.User{
		ID:           "user-admin",
		EnterpriseID: "ent-1",
		Email:        "admin@acme.test",
		PasswordHash: string(hash),
		Roles: []user.RoleRef{
			{ID: "role-admin", Name: "Admin"},
			{ID: "role-viewer", Name: "Viewer"},
		},
	}
	blocked := &user.User{
		ID:           "user-blocked",
		EnterpriseID: "ent-1",
		Email:        "blocked@acme.test",
		PasswordHash: string(hash),
		Blocked:      true,
	}

	return &mockUserDirectory{
		byEmail: map[string]*user.User{
			admin.Email:   admin,
			blocked.Email: blocked,
		},
		byID: map[string]*user.User{
			admin.ID:   admin,
			blocked.ID: blocked,
		},
	}
}

func (m *mockUserDirectory) FindByEmail(email string) (*user.User, error) {
	return m.byEmail[email], nil
}

func (m *mockUserDirectory) FindByID(id string) (*user.User, error) {
	return m.byID[id], nil
}

type mockSessionStore struct {
	sessions map[string]*session.Session
	counter  int
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: map[string]*session.Session{}}
}

func (m *mockSessionStore) Create(userID, secretHash string) (*session.Session, error) {
	m.counter++
	sess := &session.Session{
		ID:         fmt.Sprintf("sess-%d", m.counter),
		UserID:     userID,
		SecretHash: secretHash,
		Active:     true,
	}
	m.sessions[sess.ID] = sess
	return sess, nil
}

func (m *mockSessionStore) FindByID(id string) (*session.Session, error) {
	sess, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	copied := *sess
	return &copied, nil
}

func (m *mockSessionStore) Rotate(id, newSecretHash string) error {
	if sess, ok := m.sessions[id]; ok {
		sess.SecretHash = newSecretHash
	}
	return nil
}

func (m *mockSessionStore) InactivateByID(id string) error {
	if sess, ok := m.sessions[id]; ok {
		sess.Active = false
	}
	return nil
}

type mockPermissionAggregator struct {
	slugsByRole map[string][]string
}

func (m *mockPermissionAggregator) FindSlugsByRoleIDs(roleIDs []string) ([]string, error) {
	seen := map[string]struct{}{}
	slugs := []string{}
	for _, roleID := range roleIDs {
		for _, slug := range m.slugsByRole[roleID] {
			if _, ok := seen[slug]; ok {
				continue
			}
			seen[slug] = struct{}{}
			slugs = append(slugs, slug)
		}
	}
	return slugs, nil
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		service  *Service
		users    *mockUserDirectory
		sessions *mockSessionStore
		tokenGen *JWTTokenGenerator
	)

	ginkgo.BeforeEach(func() {
		users = newMockUserDirectory()
		sessions = newMockSessionStore()
		perms := &mockPermissionAggregator{
			slugsByRole: map[string][]string{
				"role-admin":  {"READ_USERS", "CREATE_USERS", "READ_ROLES"},
				"role-viewer": {"READ_USERS", "READ_ROLES"},
			},
		}
		tokenGen = NewJWTTokenGenerator(
			"test-access-secret-0123456789abcdef",
			"test-refresh-secret-0123456789abcdef",
			15*time.Minute,
			24*time.Hour,
		)
		service = NewService(users, sessions, perms, tokenGen, nil, slog.Default())
	})

	ginkgo.Describe("Login", func() {
		ginkgo.Context("when credentials are valid", func() {
			ginkgo.It("returns a token pair with the user summary", func() {
				tokens, err := service.Login(LoginDTO{
					Email:    "admin@acme.test",
					Password: "correct_password",
				})

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(tokens.AccessToken).ToNot(gomega.BeEmpty())
				gomega.Expect(tokens.RefreshToken).ToNot(gomega.BeEmpty())
				gomega.Expect(tokens.AccessToken).ToNot(gomega.Equal(tokens.RefreshToken))
				gomega.Expect(tokens.AccessTokenExpiresAt).To(gomega.BeTemporally(">", time.Now()))
				gomega.Expect(tokens.User.ID).To(gomega.Equal("user-admin"))
				gomega.Expect(tokens.User.EnterpriseID).To(gomega.Equal("ent-1"))
			})

			ginkgo.It("embeds roles and deduplicated permissions in the access token", func() {
				tokens, err := service.Login(LoginDTO{
					Email:    "admin@acme.test",
					Password: "correct_password",
				})
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				claims, err := service.ValidateAccessToken(tokens.AccessToken)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(claims.Subject).To(gomega.Equal("user-admin"))
				gomega.Expect(claims.EnterpriseID).To(gomega.Equal("ent-1"))
				gomega.Expect(claims.SessionID).ToNot(gomega.BeEmpty())
				gomega.Expect(claims.Roles).To(gomega.HaveLen(2))
				gomega.Expect(claims.Permissions).To(gomega.ConsistOf(
					"READ_USERS", "CREATE_USERS", "READ_ROLES"))
			})

			ginkgo.It("accepts email in any case", func() {
				_, err := service.Login(LoginDTO{
					Email:    "Admin@Acme.Test",
					Password: "correct_password",
				})
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
			})
		})

		ginkgo.Context("when credentials are invalid", func() {
			ginkgo.It("reports the same error for unknown email and wrong password", func() {
				_, unknownErr := service.Login(LoginDTO{
					Email:    "nobody@acme.test",
					Password: "whatever",
				})
				_, wrongErr := service.Login(LoginDTO{
					Email:    "admin@acme.test",
					Password: "wrong_password",
				})

				gomega.Expect(unknownErr).To(gomega.Equal(errors.ErrInvalidCredentials))
				gomega.Expect(wrongErr).To(gomega.Equal(errors.ErrInvalidCredentials))
			})

			ginkgo.It("rejects blocked accounts before checking the password", func() {
				_, err := service.Login(LoginDTO{
					Email:    "blocked@acme.test",
					Password: "correct_password",
				})
				gomega.Expect(err).To(gomega.Equal(errors.ErrUserBlocked))
			})
		})

		ginkgo.Context("token kind separation", func() {
			ginkgo.It("never validates a refresh token as an access token", func() {
				tokens, err := service.Login(LoginDTO{
					Email:    "admin@acme.test",
					Password: "correct_password",
				})
				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				_, err = service.ValidateAccessToken(tokens.RefreshToken)
				gomega.Expect(err).To(gomega.Equal(errors.ErrInvalidToken))

				_, err = service.ValidateRefreshToken(tokens.AccessToken)
				gomega.Expect(err).To(gomega.Equal(errors.ErrInvalidToken))
			})
		})
	})

	ginkgo.Describe("Refresh", func() {
		login := func() *AuthTokens {
			tokens, err := service.Login(LoginDTO{
				Email:    "admin@acme.test",
				Password: "correct_password",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			return tokens
		}

		ginkgo.It("rotates the session secret and issues a fresh pair", func() {
			first := login()
			claims, err := service.ValidateRefreshToken(first.RefreshToken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			second, err := service.Refresh(claims)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(second.AccessToken).ToNot(gomega.BeEmpty())
			gomega.Expect(second.RefreshToken).ToNot(gomega.Equal(first.RefreshToken))

			newClaims, err := service.ValidateRefreshToken(second.RefreshToken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(newClaims.SessionID).To(gomega.Equal(claims.SessionID))
			gomega.Expect(newClaims.SecretHash).ToNot(gomega.Equal(claims.SecretHash))
		})

		ginkgo.It("rejects a replayed refresh token after rotation", func() {
			first := login()
			claims, err := service.ValidateRefreshToken(first.RefreshToken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.Refresh(claims)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = service.Refresh(claims)
			gomega.Expect(err).To(gomega.Equal(errors.ErrInvalidToken))
		})

		ginkgo.It("rejects refresh for an inactive session", func() {
			tokens := login()
			claims, err := service.ValidateRefreshToken(tokens.RefreshToken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			gomega.Expect(service.Logout(claims.SessionID)).To(gomega.Succeed())

			_, err = service.Refresh(claims)
			gomega.Expect(err).To(gomega.Equal(errors.ErrInvalidToken))
		})

		ginkgo.It("rejects refresh for an unknown session", func() {
			_, err := service.Refresh(&RefreshClaims{SessionID: "sess-missing", SecretHash: "x"})
			gomega.Expect(err).To(gomega.Equal(errors.ErrInvalidToken))
		})

		ginkgo.It("rejects refresh when the account got blocked mid-session", func() {
			tokens := login()
			claims, err := service.ValidateRefreshToken(tokens.RefreshToken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			users.byID["user-admin"].Blocked = true

			_, err = service.Refresh(claims)
			gomega.Expect(err).To(gomega.Equal(errors.ErrInvalidToken))
		})
	})

	ginkgo.Describe("Logout", func() {
		ginkgo.It("inactivates the session and stays successful on repeat", func() {
			tokens, err := service.Login(LoginDTO{
				Email:    "admin@acme.test",
				Password: "correct_password",
			})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			claims, err := service.ValidateAccessToken(tokens.AccessToken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			gomega.Expect(service.Logout(claims.SessionID)).To(gomega.Succeed())
			gomega.Expect(sessions.sessions[claims.SessionID].Active).To(gomega.BeFalse())

			gomega.Expect(service.Logout(claims.SessionID)).To(gomega.Succeed())
		})
	})

	ginkgo.Describe("NewSessionSecret", func() {
		ginkgo.It("produces unique hex-encoded sha256 digests", func() {
			a := NewSessionSecret()
			b := NewSessionSecret()
			gomega.Expect(a).To(gomega.HaveLen(64))
			gomega.Expect(b).To(gomega.HaveLen(64))
			gomega.Expect(a).ToNot(gomega.Equal(b))
		})
	})

	ginkgo.Describe("JWTTokenGenerator", func() {
		ginkgo.It("rejects an expired access token", func() {
			short := NewJWTTokenGenerator(
				"test-access-secret-0123456789abcdef",
				"test-refresh-secret-0123456789abcdef",
				-1*time.Minute,
				24*time.Hour,
			)
			token, _, err := short.GenerateAccessToken(AccessClaims{})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = short.ValidateAccessToken(token)
			gomega.Expect(err).To(gomega.Equal(errors.ErrTokenExpired))
		})

		ginkgo.It("rejects a token signed with a different secret", func() {
			other := NewJWTTokenGenerator(
				"some-other-access-secret-0987654321",
				"some-other-refresh-secret-0987654321",
				15*time.Minute,
				24*time.Hour,
			)
			token, _, err := other.GenerateAccessToken(AccessClaims{})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			_, err = tokenGen.ValidateAccessToken(token)
			gomega.Expect(err).To(gomega.Equal(errors.ErrInvalidToken))
		})
	})
})
