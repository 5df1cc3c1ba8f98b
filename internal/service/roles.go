package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/iliyamo/user-directory/internal/model"
	"github.com/iliyamo/user-directory/internal/repository"
	"github.com/iliyamo/user-directory/internal/utils"
)

// RoleService resolves requested role names against the persisted roles
// and seeds the store with its initial records. It never invents roles:
// when nothing matches, the caller applies its own fallback policy.
type RoleService struct {
	Roles *repository.RoleRepo
	Users *repository.UserRepo
	Log   zerolog.Logger
}

func NewRoleService(roles *repository.RoleRepo, users *repository.UserRepo, log zerolog.Logger) *RoleService {
	return &RoleService{Roles: roles, Users: users, Log: log}
}

// GetAll returns every persisted role.
func (s *RoleService) GetAll(ctx context.Context) ([]model.Role, error) {
	return s.Roles.FindAll(ctx)
}

// ResolveByNames maps requested role names to persisted roles. Unknown
// names are dropped and the result may be empty, including for an empty
// request.
func (s *RoleService) ResolveByNames(ctx context.Context, names []string) ([]model.Role, error) {
	if len(names) == 0 {
		return nil, nil
	}
	return s.Roles.FindByNames(ctx, names)
}

// Guest returns the persisted Guest role when present, or a fresh Guest
// value otherwise so callers can still fall back during the seeding
// window.
func (s *RoleService) Guest(ctx context.Context) model.Role {
	role, err := s.Roles.FindByName(ctx, model.RoleGuest)
	if err != nil {
		return model.Role{ID: uuid.NewString(), Name: model.RoleGuest}
	}
	return role
}

// Seed initializes an empty store: the Administrator and Guest roles
// when no roles exist, and a root administrator account when no users
// exist. Both checks make repeated runs no-ops; concurrent requests
// during the window are tolerated rather than locked out.
func (s *RoleService) Seed(ctx context.Context, rootEmail, rootPassword string, bcryptCost int) error {
	roleCount, err := s.Roles.Count(ctx)
	if err != nil {
		return err
	}
	if roleCount == 0 {
		for _, name := range []string{model.RoleAdministrator, model.RoleGuest} {
			if _, err := s.Roles.Save(ctx, model.Role{ID: uuid.NewString(), Name: name}); err != nil {
				return err
			}
			s.Log.Info().Str("role", name).Msg("seeded role")
		}
	}

	userCount, err := s.Users.Count(ctx)
	if err != nil {
		return err
	}
	if userCount == 0 {
		admin, err := s.Roles.FindByName(ctx, model.RoleAdministrator)
		if err != nil {
			return err
		}
		hash, err := utils.HashPassword(rootPassword, bcryptCost)
		if err != nil {
			return err
		}
		root := model.User{
			ID:       uuid.NewString(),
			Email:    rootEmail,
			Password: hash,
			Name:     model.RoleAdministrator,
			Roles:    []model.Role{admin},
		}
		if _, err := s.Users.Save(ctx, root); err != nil {
			return err
		}
		s.Log.Info().Str("email", root.Email).Msg("seeded root administrator")
	}
	return nil
}
