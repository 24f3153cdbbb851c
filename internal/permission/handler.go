package permission

import (
	"encoding/json"
	"net/http"

	"github.com/frahmantamala/enterprise-access/internal/core/common/pagination"
	"github.com/frahmantamala/enterprise-access/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	FindManyWithPagination(opts pagination.Options) ([]PermissionResponse, error)
	FindByID(id string) (*Permission, error)
	Create(dto CreatePermissionDTO) (*Permission, error)
	Update(id string, dto UpdatePermissionDTO) (*Permission, error)
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

func (h *Handler) GetPermissions(w http.ResponseWriter, r *http.Request) {
	opts := pagination.FromRequest(r)

	permissions, err := h.Service.FindManyWithPagination(opts)
	if err != nil {
		h.WriteDomainError(w, err, "failed to list permissions")
		return
	}

	h.WriteJSON(w, http.StatusOK, pagination.NewInfinityResponse(permissions, opts))
}

func (h *Handler) GetPermission(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	perm, err := h.Service.FindByID(id)
	if err != nil {
		h.WriteDomainError(w, err, "failed to get permission")
		return
	}

	h.WriteJSON(w, http.StatusOK, perm.ToResponse())
}

func (h *Handler) CreatePermission(w http.ResponseWriter, r *http.Request) {
	var dto CreatePermissionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	perm, err := h.Service.Create(dto)
	if err != nil {
		h.WriteDomainError(w, err, "failed to create permission")
		return
	}

	h.WriteJSON(w, http.StatusCreated, perm.ToResponse())
}

func (h *Handler) UpdatePermission(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var dto UpdatePermissionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	perm, err := h.Service.Update(id, dto)
	if err != nil {
		h.WriteDomainError(w, err, "failed to update permission")
		return
	}

	h.WriteJSON(w, http.StatusOK, perm.ToResponse())
}
