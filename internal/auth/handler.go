package auth

import (
	"encoding/json"
	"net/http"

	internal "github.com/frahmantamala/enterprise-access/internal"
	"github.com/frahmantamala/enterprise-access/internal/transport"
)

type ServiceAPI interface {
	Login(dto LoginDTO) (*AuthTokens, error)
	Refresh(claims *RefreshClaims) (*AuthTokens, error)
	Logout(sessionID string) error
	ValidateAccessToken(tokenString string) (*AccessClaims, error)
	ValidateRefreshToken(tokenString string) (*RefreshClaims, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, err := h.Service.Login(dto)
	if err != nil {
		h.WriteDomainError(w, err, "login failed")
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

// RefreshToken reads the refresh token from the Authorization header,
// mirroring how access tokens travel.
func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	tokenString := h.ExtractTokenFromHeader(r)
	if tokenString == "" {
		h.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	claims, err := h.Service.ValidateRefreshToken(tokenString)
	if err != nil {
		h.WriteDomainError(w, err, "refresh failed")
		return
	}

	tokens, err := h.Service.Refresh(claims)
	if err != nil {
		h.WriteDomainError(w, err, "refresh failed")
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

// Logout ends the caller's own session, taken from the verified access
// token rather than the request body.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	authUser, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.Service.Logout(authUser.SessionID); err != nil {
		h.WriteDomainError(w, err, "logout failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AuthMiddleware verifies the access token and publishes the claims as the
// request's AuthUser. Authorization happens entirely off the claims; no
// database round trip per request.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := h.ExtractTokenFromHeader(r)
		if tokenString == "" {
			h.WriteError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		claims, err := h.Service.ValidateAccessToken(tokenString)
		if err != nil {
			h.WriteDomainError(w, err, "invalid token")
			return
		}

		authUser := &internal.AuthUser{
			ID:           claims.Subject,
			EnterpriseID: claims.EnterpriseID,
			SessionID:    claims.SessionID,
			Permissions:  claims.Permissions,
		}

		next.ServeHTTP(w, r.WithContext(internal.ContextWithUser(r.Context(), authUser)))
	})
}
