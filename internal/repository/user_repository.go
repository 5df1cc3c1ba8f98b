package repository

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/iliyamo/user-directory/internal/model"
)

// UserRepo persists user records in the `users` hash collection, keyed by
// normalized email. Records are stored as JSON; the hash stays inside the
// value and is only stripped further up the stack.
type UserRepo struct {
	Store KeyHashStore
}

func NewUserRepo(store KeyHashStore) *UserRepo {
	return &UserRepo{Store: store}
}

// NormalizeEmail lowercases and trims an email so lookups and writes use
// one canonical key form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FindByEmail fetches a user by its business key. Returns ErrKeyNotFound
// when no record exists.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (model.User, error) {
	raw, err := r.Store.Get(ctx, UsersCollection, NormalizeEmail(email))
	if err != nil {
		return model.User{}, err
	}
	var u model.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return model.User{}, err
	}
	return u, nil
}

// FindAll returns every stored user in unspecified order.
func (r *UserRepo) FindAll(ctx context.Context) ([]model.User, error) {
	raws, err := r.Store.Values(ctx, UsersCollection)
	if err != nil {
		return nil, err
	}
	users := make([]model.User, 0, len(raws))
	for _, raw := range raws {
		var u model.User
		if err := json.Unmarshal(raw, &u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

// Save writes the user under its email key, overwriting any previous
// record at that key.
func (r *UserRepo) Save(ctx context.Context, u model.User) (model.User, error) {
	u.Email = NormalizeEmail(u.Email)
	raw, err := json.Marshal(u)
	if err != nil {
		return model.User{}, err
	}
	if err := r.Store.Put(ctx, UsersCollection, u.Email, raw); err != nil {
		return model.User{}, err
	}
	return u, nil
}

// Delete removes the record under email and reports how many entries
// were removed. Zero means the key was already gone.
func (r *UserRepo) Delete(ctx context.Context, email string) (int64, error) {
	return r.Store.Remove(ctx, UsersCollection, NormalizeEmail(email))
}

// Count returns the number of stored users.
func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	return r.Store.Count(ctx, UsersCollection)
}
