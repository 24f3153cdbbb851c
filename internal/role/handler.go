package role

import (
	"encoding/json"
	"net/http"

	internal "github.com/frahmantamala/enterprise-access/internal"
	"github.com/frahmantamala/enterprise-access/internal/core/common/pagination"
	"github.com/frahmantamala/enterprise-access/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	FindManyWithPagination(enterpriseID string, opts pagination.Options) ([]RoleResponse, error)
	FindByID(id, enterpriseID string) (*Role, error)
	Create(enterpriseID string, dto CreateRoleDTO) (*Role, error)
	Update(id, enterpriseID string, dto UpdateRoleDTO) (*Role, error)
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

func (h *Handler) GetRoles(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	opts := pagination.FromRequest(r)

	roles, err := h.Service.FindManyWithPagination(user.EnterpriseID, opts)
	if err != nil {
		h.WriteDomainError(w, err, "failed to list roles")
		return
	}

	h.WriteJSON(w, http.StatusOK, pagination.NewInfinityResponse(roles, opts))
}

func (h *Handler) GetRole(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	role, err := h.Service.FindByID(chi.URLParam(r, "id"), user.EnterpriseID)
	if err != nil {
		h.WriteDomainError(w, err, "failed to get role")
		return
	}

	h.WriteJSON(w, http.StatusOK, role.ToResponse())
}

func (h *Handler) CreateRole(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	role, err := h.Service.Create(user.EnterpriseID, dto)
	if err != nil {
		h.WriteDomainError(w, err, "failed to create role")
		return
	}

	h.WriteJSON(w, http.StatusCreated, role.ToResponse())
}

func (h *Handler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	user, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto UpdateRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	role, err := h.Service.Update(chi.URLParam(r, "id"), user.EnterpriseID, dto)
	if err != nil {
		h.WriteDomainError(w, err, "failed to update role")
		return
	}

	h.WriteJSON(w, http.StatusOK, role.ToResponse())
}
