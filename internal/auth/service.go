package auth

import (
	"context"
	"log/slog"
	"strings"

	errors "github.com/frahmantamala/enterprise-access/internal"
	"github.com/frahmantamala/enterprise-access/internal/core/events"
	"github.com/frahmantamala/enterprise-access/internal/session"
	"github.com/frahmantamala/enterprise-access/internal/user"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type UserDirectory interface {
	FindByEmail(email string) (*user.User, error)
	FindByID(id string) (*user.User, error)
}

type SessionStore interface {
	Create(userID, secretHash string) (*session.Session, error)
	FindByID(id string) (*session.Session, error)
	Rotate(id, newSecretHash string) error
	InactivateByID(id string) error
}

type PermissionAggregator interface {
	FindSlugsByRoleIDs(roleIDs []string) ([]string, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	users       UserDirectory
	sessions    SessionStore
	permissions PermissionAggregator
	tokenGen    TokenGenerator
	eventBus    EventPublisher
	logger      *slog.Logger
}

func NewService(users UserDirectory, sessions SessionStore, permissions PermissionAggregator, tokenGen TokenGenerator, eventBus EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		users:       users,
		sessions:    sessions,
		permissions: permissions,
		tokenGen:    tokenGen,
		eventBus:    eventBus,
		logger:      logger,
	}
}

func (s *Service) publish(event events.Event) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(context.Background(), event); err != nil {
		s.logger.Warn("failed to publish event", "event_type", event.EventType(), "error", err)
	}
}

// Login verifies credentials, opens a session and issues the token pair.
// Unknown email and wrong password report the same error, so the response
// never reveals which half failed.
func (s *Service) Login(dto LoginDTO) (*AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	account, err := s.users.FindByEmail(strings.ToLower(dto.Email))
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, errors.ErrInvalidCredentials
	}
	if !account.CanAuthenticate() {
		return nil, errors.ErrUserBlocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(dto.Password)); err != nil {
		return nil, errors.ErrInvalidCredentials
	}

	secretHash := NewSessionSecret()
	sess, err := s.sessions.Create(account.ID, secretHash)
	if err != nil {
		return nil, err
	}

	tokens, err := s.issueTokens(account, sess.ID, secretHash)
	if err != nil {
		return nil, err
	}

	s.publish(events.NewUserLoggedInEvent(account.ID, account.EnterpriseID, sess.ID))
	s.logger.Info("user logged in", "user_id", account.ID,
		"enterprise_id", account.EnterpriseID, "session_id", sess.ID)
	return tokens, nil
}

// Refresh exchanges a verified refresh token for a fresh pair. The session
// secret rotates on every exchange; presenting a refresh token whose secret
// no longer matches means the token was already spent.
func (s *Service) Refresh(claims *RefreshClaims) (*AuthTokens, error) {
	sess, err := s.sessions.FindByID(claims.SessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil || !sess.Active {
		return nil, errors.ErrInvalidToken
	}
	if sess.SecretHash != claims.SecretHash {
		s.logger.Warn("refresh token replay rejected", "session_id", sess.ID)
		return nil, errors.ErrInvalidToken
	}

	account, err := s.users.FindByID(sess.UserID)
	if err != nil {
		return nil, err
	}
	if account == nil || !account.CanAuthenticate() {
		return nil, errors.ErrInvalidToken
	}

	newSecretHash := NewSessionSecret()
	if err := s.sessions.Rotate(sess.ID, newSecretHash); err != nil {
		return nil, err
	}

	tokens, err := s.issueTokens(account, sess.ID, newSecretHash)
	if err != nil {
		return nil, err
	}

	s.publish(events.NewSessionRefreshedEvent(account.ID, sess.ID))
	s.logger.Info("session refreshed", "user_id", account.ID, "session_id", sess.ID)
	return tokens, nil
}

// Logout inactivates the session. Repeating it is a no-op, so a token that
// already logged out still gets a success.
func (s *Service) Logout(sessionID string) error {
	if err := s.sessions.InactivateByID(sessionID); err != nil {
		return err
	}
	s.publish(events.NewUserLoggedOutEvent(sessionID))
	return nil
}

func (s *Service) ValidateAccessToken(tokenString string) (*AccessClaims, error) {
	return s.tokenGen.ValidateAccessToken(tokenString)
}

func (s *Service) ValidateRefreshToken(tokenString string) (*RefreshClaims, error) {
	return s.tokenGen.ValidateRefreshToken(tokenString)
}

func (s *Service) issueTokens(account *user.User, sessionID, secretHash string) (*AuthTokens, error) {
	slugs, err := s.permissions.FindSlugsByRoleIDs(account.RoleIDs())
	if err != nil {
		return nil, err
	}

	roles := make([]RoleClaim, 0, len(account.Roles))
	for _, r := range account.Roles {
		roles = append(roles, RoleClaim{ID: r.ID, Name: r.Name})
	}

	accessToken, expiresAt, err := s.tokenGen.GenerateAccessToken(AccessClaims{
		EnterpriseID: account.EnterpriseID,
		SessionID:    sessionID,
		Roles:        roles,
		Permissions:  slugs,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: account.ID,
		},
	})
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.tokenGen.GenerateRefreshToken(sessionID, secretHash)
	if err != nil {
		return nil, err
	}

	return &AuthTokens{
		AccessToken:          accessToken,
		RefreshToken:         refreshToken,
		AccessTokenExpiresAt: expiresAt,
		User: UserSummary{
			ID:           account.ID,
			EnterpriseID: account.EnterpriseID,
			Email:        account.Email,
			TempPassword: account.TempPassword,
		},
	}, nil
}
