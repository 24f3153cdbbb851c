package internal

import (
	"context"
	"time"
)

type ctxKey string

const ContextUserKey ctxKey = "authUser"

// AuthUser is the request-scoped identity decoded from a verified access
// token. Authorization reads the embedded permission set; no store lookup
// happens per request.
type AuthUser struct {
	ID           string
	EnterpriseID string
	SessionID    string
	Email        string
	Permissions  []string
}

func (u *AuthUser) HasAnyPermission(required []string) bool {
	for _, held := range u.Permissions {
		for _, want := range required {
			if held == want {
				return true
			}
		}
	}
	return false
}

func UserFromContext(ctx context.Context) (*AuthUser, bool) {
	if ctx == nil {
		return nil, false
	}
	user, ok := ctx.Value(ContextUserKey).(*AuthUser)
	return user, ok
}

func ContextWithUser(ctx context.Context, user *AuthUser) context.Context {
	return context.WithValue(ctx, ContextUserKey, user)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
