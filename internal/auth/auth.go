package auth

import (
	"crypto/sha256"
	"encoding/hex"
	stderrors "errors"
	"time"

	errors "github.com/frahmantamala/enterprise-access/internal"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// RoleClaim is the role projection embedded in access tokens.
type RoleClaim struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AccessClaims carries everything the authorization layer needs, so guarded
// requests never touch the database. Subject is the user id.
type AccessClaims struct {
	EnterpriseID string      `json:"enterpriseId"`
	SessionID    string      `json:"sessionId"`
	Roles        []RoleClaim `json:"roles"`
	Permissions  []string    `json:"permissions"`
	jwt.RegisteredClaims
}

// RefreshClaims identifies a session and proves possession of its current
// secret. The secret hash is rotated on every refresh, so an old refresh
// token stops matching the moment a new one is issued.
type RefreshClaims struct {
	SessionID  string `json:"sessionId"`
	SecretHash string `json:"hash"`
	jwt.RegisteredClaims
}

// TokenGenerator creates and verifies the two token kinds. Access and
// refresh tokens are signed with distinct secrets; a token of one kind never
// validates as the other.
type TokenGenerator interface {
	GenerateAccessToken(claims AccessClaims) (token string, expiresAt time.Time, err error)
	GenerateRefreshToken(sessionID, secretHash string) (string, error)
	ValidateAccessToken(tokenString string) (*AccessClaims, error)
	ValidateRefreshToken(tokenString string) (*RefreshClaims, error)
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

func NewJWTTokenGenerator(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *JWTTokenGenerator {
	return &JWTTokenGenerator{
		AccessTokenSecret:  []byte(accessSecret),
		RefreshTokenSecret: []byte(refreshSecret),
		AccessTokenTTL:     accessTTL,
		RefreshTokenTTL:    refreshTTL,
	}
}

func (j *JWTTokenGenerator) GenerateAccessToken(claims AccessClaims) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(j.AccessTokenTTL)

	claims.RegisteredClaims.IssuedAt = jwt.NewNumericDate(now)
	claims.RegisteredClaims.ExpiresAt = jwt.NewNumericDate(expiresAt)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.AccessTokenSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

func (j *JWTTokenGenerator) GenerateRefreshToken(sessionID, secretHash string) (string, error) {
	now := time.Now()

	claims := RefreshClaims{
		SessionID:  sessionID,
		SecretHash: secretHash,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.RefreshTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.RefreshTokenSecret)
}

func (j *JWTTokenGenerator) ValidateAccessToken(tokenString string) (*AccessClaims, error) {
	var claims AccessClaims
	if err := j.parse(tokenString, &claims, j.AccessTokenSecret); err != nil {
		return nil, err
	}
	return &claims, nil
}

func (j *JWTTokenGenerator) ValidateRefreshToken(tokenString string) (*RefreshClaims, error) {
	var claims RefreshClaims
	if err := j.parse(tokenString, &claims, j.RefreshTokenSecret); err != nil {
		return nil, err
	}
	return &claims, nil
}

func (j *JWTTokenGenerator) parse(tokenString string, claims jwt.Claims, secret []byte) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.ErrInvalidToken
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return errors.ErrTokenExpired
		}
		return errors.ErrInvalidToken
	}
	if !token.Valid {
		return errors.ErrInvalidToken
	}
	return nil
}

// NewSessionSecret returns the session secret stored (hashed) server-side and
// embedded in refresh tokens. The raw UUID never leaves this function.
func NewSessionSecret() string {
	sum := sha256.Sum256([]byte(uuid.NewString()))
	return hex.EncodeToString(sum[:])
}
