package repository

import (
	"context"
	"encoding/json"

	"github.com/iliyamo/user-directory/internal/model"
)

// RoleRepo persists roles in the `roles` hash collection, keyed by the
// generated role id. Name lookups scan the collection values; the role
// set is tiny and effectively static after seeding.
type RoleRepo struct {
	Store KeyHashStore
}

func NewRoleRepo(store KeyHashStore) *RoleRepo {
	return &RoleRepo{Store: store}
}

// FindAll returns every stored role in unspecified order.
func (r *RoleRepo) FindAll(ctx context.Context) ([]model.Role, error) {
	raws, err := r.Store.Values(ctx, RolesCollection)
	if err != nil {
		return nil, err
	}
	roles := make([]model.Role, 0, len(raws))
	for _, raw := range raws {
		var role model.Role
		if err := json.Unmarshal(raw, &role); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, nil
}

// FindByName returns the role with the given unique name, or
// ErrKeyNotFound when no such role exists.
func (r *RoleRepo) FindByName(ctx context.Context, name string) (model.Role, error) {
	roles, err := r.FindAll(ctx)
	if err != nil {
		return model.Role{}, err
	}
	for _, role := range roles {
		if role.Name == name {
			return role, nil
		}
	}
	return model.Role{}, ErrKeyNotFound
}

// FindByNames returns the persisted roles whose names appear in names.
// Unknown names are skipped; the result may be empty.
func (r *RoleRepo) FindByNames(ctx context.Context, names []string) ([]model.Role, error) {
	roles, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}
	matched := make([]model.Role, 0, len(names))
	for _, role := range roles {
		if wanted[role.Name] {
			matched = append(matched, role)
		}
	}
	return matched, nil
}

// Save writes the role under its id key.
func (r *RoleRepo) Save(ctx context.Context, role model.Role) (model.Role, error) {
	raw, err := json.Marshal(role)
	if err != nil {
		return model.Role{}, err
	}
	if err := r.Store.Put(ctx, RolesCollection, role.ID, raw); err != nil {
		return model.Role{}, err
	}
	return role, nil
}

// Count returns the number of stored roles.
func (r *RoleRepo) Count(ctx context.Context) (int64, error) {
	return r.Store.Count(ctx, RolesCollection)
}
