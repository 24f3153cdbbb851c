package enterprise

import (
	"encoding/json"
	"net/http"

	internal "github.com/frahmantamala/enterprise-access/internal"
	"github.com/frahmantamala/enterprise-access/internal/transport"
)

type ServiceAPI interface {
	FindByID(id string) (*Enterprise, error)
	Create(dto CreateEnterpriseDTO) (*Enterprise, error)
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

// GetCurrentEnterprise returns the tenant of the authenticated user.
func (h *Handler) GetCurrentEnterprise(w http.ResponseWriter, r *http.Request) {
	authUser, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ent, err := h.Service.FindByID(authUser.EnterpriseID)
	if err != nil {
		h.WriteDomainError(w, err, "failed to get enterprise")
		return
	}

	h.WriteJSON(w, http.StatusOK, ent.ToResponse())
}

// CreateEnterprise is the unauthenticated signup endpoint.
func (h *Handler) CreateEnterprise(w http.ResponseWriter, r *http.Request) {
	var dto CreateEnterpriseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ent, err := h.Service.Create(dto)
	if err != nil {
		h.WriteDomainError(w, err, "failed to create enterprise")
		return
	}

	h.WriteJSON(w, http.StatusCreated, ent.ToResponse())
}
