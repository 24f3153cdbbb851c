package role

import (
	"time"

	roleDatamodel "github.com/frahmantamala/enterprise-access/internal/core/datamodel/role"
)

// PermissionRef is the flattened projection of a granted permission. The
// role_permissions join rows are an implementation detail and never leave the
// repository.
type PermissionRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Role struct {
	ID           string          `json:"id"`
	EnterpriseID string          `json:"enterprise_id"`
	Name         string          `json:"name"`
	Status       bool            `json:"status"`
	Editable     bool            `json:"editable"`
	Permissions  []PermissionRef `json:"permissions"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (r *Role) PermissionIDs() []string {
	ids := make([]string, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		ids = append(ids, p.ID)
	}
	return ids
}

func FromDataModel(r *roleDatamodel.Role, permissions []PermissionRef) *Role {
	if permissions == nil {
		permissions = []PermissionRef{}
	}
	return &Role{
		ID:           r.ID,
		EnterpriseID: r.EnterpriseID,
		Name:         r.Name,
		Status:       r.Status,
		Editable:     r.Editable,
		Permissions:  permissions,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// DiffStringSets reports which members of desired are missing from current
// (toAdd) and which members of current are absent from desired (toRemove).
// Members present in both are left alone, which is what keeps a permission
// update from re-inserting rows it does not need to touch.
func DiffStringSets(current, desired []string) (toAdd, toRemove []string) {
	currentSet := make(map[string]struct{}, len(current))
	for _, id := range current {
		currentSet[id] = struct{}{}
	}
	desiredSet := make(map[string]struct{}, len(desired))
	for _, id := range desired {
		desiredSet[id] = struct{}{}
	}

	for id := range desiredSet {
		if _, ok := currentSet[id]; !ok {
			toAdd = append(toAdd, id)
		}
	}
	for id := range currentSet {
		if _, ok := desiredSet[id]; !ok {
			toRemove = append(toRemove, id)
		}
	}
	return toAdd, toRemove
}
