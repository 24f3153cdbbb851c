package user

import (
	"encoding/json"
	"net/http"

	internal "github.com/frahmantamala/enterprise-access/internal"
	"github.com/frahmantamala/enterprise-access/internal/core/common/pagination"
	"github.com/frahmantamala/enterprise-access/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	FindByID(id string) (*User, error)
	FindManyWithPagination(enterpriseID, requestingUserID, search string, opts pagination.Options) ([]UserResponse, error)
	FindByRoleID(roleID, enterpriseID string) ([]UserResponse, error)
	Create(enterpriseID string, dto CreateUserDTO) (*User, error)
	UpdateRoles(userID, enterpriseID string, dto UpdateUserRolesDTO) (*User, error)
	ChangePassword(userID string, dto ChangePasswordDTO) error
	Block(userID, enterpriseID, blockedBy string) error
	Delete(userID, enterpriseID string) error
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

func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	authUser, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	u, err := h.Service.FindByID(authUser.ID)
	if err != nil {
		h.WriteDomainError(w, err, "failed to get user")
		return
	}
	if u == nil {
		h.WriteError(w, http.StatusNotFound, "user not found")
		return
	}

	h.WriteJSON(w, http.StatusOK, u.ToResponse())
}

func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	authUser, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	opts := pagination.FromRequest(r)
	search := r.URL.Query().Get("search")

	users, err := h.Service.FindManyWithPagination(authUser.EnterpriseID, authUser.ID, search, opts)
	if err != nil {
		h.WriteDomainError(w, err, "failed to list users")
		return
	}

	h.WriteJSON(w, http.StatusOK, pagination.NewInfinityResponse(users, opts))
}

func (h *Handler) GetUsersByRole(w http.ResponseWriter, r *http.Request) {
	authUser, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	users, err := h.Service.FindByRoleID(chi.URLParam(r, "roleId"), authUser.EnterpriseID)
	if err != nil {
		h.WriteDomainError(w, err, "failed to list users")
		return
	}

	h.WriteJSON(w, http.StatusOK, users)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	authUser, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.Service.Create(authUser.EnterpriseID, dto)
	if err != nil {
		h.WriteDomainError(w, err, "failed to create user")
		return
	}

	h.WriteJSON(w, http.StatusCreated, u.ToResponse())
}

func (h *Handler) UpdateUserRoles(w http.ResponseWriter, r *http.Request) {
	authUser, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto UpdateUserRolesDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.Service.UpdateRoles(chi.URLParam(r, "id"), authUser.EnterpriseID, dto)
	if err != nil {
		h.WriteDomainError(w, err, "failed to update user roles")
		return
	}

	h.WriteJSON(w, http.StatusOK, u.ToResponse())
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	authUser, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto ChangePasswordDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.ChangePassword(authUser.ID, dto); err != nil {
		h.WriteDomainError(w, err, "failed to change password")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) BlockUser(w http.ResponseWriter, r *http.Request) {
	authUser, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.Service.Block(chi.URLParam(r, "id"), authUser.EnterpriseID, authUser.ID); err != nil {
		h.WriteDomainError(w, err, "failed to block user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	authUser, ok := internal.UserFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.Service.Delete(chi.URLParam(r, "id"), authUser.EnterpriseID); err != nil {
		h.WriteDomainError(w, err, "failed to delete user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
