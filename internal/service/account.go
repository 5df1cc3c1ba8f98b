package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/iliyamo/user-directory/internal/model"
	"github.com/iliyamo/user-directory/internal/repository"
	"github.com/iliyamo/user-directory/internal/utils"
)

// UserService orchestrates login, create, update, delete and the read
// paths over the user collection. It holds no state across requests
// beyond its dependencies; correctness under concurrent mutation of the
// same email rests on the store's atomic single-key put/remove.
type UserService struct {
	Users      *repository.UserRepo
	Roles      *RoleService
	JWTSecret  string
	Validity   time.Duration
	BcryptCost int
	Log        zerolog.Logger
}

func NewUserService(users *repository.UserRepo, roles *RoleService, secret string, validity time.Duration, bcryptCost int, log zerolog.Logger) *UserService {
	return &UserService{
		Users:      users,
		Roles:      roles,
		JWTSecret:  secret,
		Validity:   validity,
		BcryptCost: bcryptCost,
		Log:        log,
	}
}

// Login verifies the credential pair and issues a signed token. Unknown
// email and wrong password both come back as ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, login model.Login) (model.Authentication, error) {
	user, err := s.Users.FindByEmail(ctx, login.Email)
	if err != nil {
		if errors.Is(err, repository.ErrKeyNotFound) {
			return model.Authentication{}, ErrInvalidCredentials
		}
		return model.Authentication{}, err
	}
	if !utils.VerifyPassword(user.Password, login.Password) {
		s.Log.Warn().Str("email", user.Email).Msg("login rejected")
		return model.Authentication{}, ErrInvalidCredentials
	}
	return utils.IssueToken(s.JWTSecret, user, s.Validity)
}

// Create registers a new account. The email must be free; requested
// roles are resolved against the persisted set and fall back to Guest
// when nothing resolves. The check-then-put pair is not transactional:
// two concurrent creates for the same fresh email can both pass the
// check, and the later put wins.
func (s *UserService) Create(ctx context.Context, newUser model.User) (model.User, error) {
	if _, err := s.Users.FindByEmail(ctx, newUser.Email); err == nil {
		return model.User{}, ErrEmailNotAvailable
	} else if !errors.Is(err, repository.ErrKeyNotFound) {
		return model.User{}, err
	}

	roles, err := s.Roles.ResolveByNames(ctx, newUser.RoleNames())
	if err != nil {
		return model.User{}, err
	}
	if len(roles) == 0 {
		roles = []model.Role{s.Roles.Guest(ctx)}
	}
	newUser.Roles = roles

	hash, err := utils.HashPassword(newUser.Password, s.BcryptCost)
	if err != nil {
		return model.User{}, err
	}
	newUser.Password = hash
	if newUser.ID == "" {
		newUser.ID = uuid.NewString()
	}

	stored, err := s.Users.Save(ctx, newUser)
	if err != nil {
		return model.User{}, err
	}
	s.Log.Info().Str("email", stored.Email).Strs("roles", stored.RoleNames()).Msg("user created")
	return stored.Redacted(), nil
}

// Update replaces the record at id. When the email changes, the record
// moves keys: the target must be free and the old key is removed before
// the new one is written. A removal count other than one means another
// request already took the record away, reported as ErrNotFound instead
// of silently re-creating it. Roles that resolve to nothing keep the
// existing assignment; the password is always re-hashed from the request.
func (s *UserService) Update(ctx context.Context, id string, updated model.User) (model.User, error) {
	existing, err := s.Users.FindByEmail(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrKeyNotFound) {
			return model.User{}, ErrEmailNotFound
		}
		return model.User{}, err
	}

	rename := repository.NormalizeEmail(updated.Email) != repository.NormalizeEmail(id)
	if rename {
		if _, err := s.Users.FindByEmail(ctx, updated.Email); err == nil {
			return model.User{}, ErrEmailNotAvailable
		} else if !errors.Is(err, repository.ErrKeyNotFound) {
			return model.User{}, err
		}
	}

	roles, err := s.Roles.ResolveByNames(ctx, updated.RoleNames())
	if err != nil {
		return model.User{}, err
	}
	if len(roles) == 0 {
		roles = existing.Roles
	}
	updated.Roles = roles

	hash, err := utils.HashPassword(updated.Password, s.BcryptCost)
	if err != nil {
		return model.User{}, err
	}
	updated.Password = hash
	updated.ID = existing.ID

	if rename {
		count, err := s.Users.Delete(ctx, id)
		if err != nil {
			return model.User{}, err
		}
		if count != 1 {
			return model.User{}, ErrNotFound
		}
	}
	stored, err := s.Users.Save(ctx, updated)
	if err != nil {
		return model.User{}, err
	}
	s.Log.Info().Str("email", stored.Email).Bool("renamed", rename).Msg("user updated")
	return stored.Redacted(), nil
}

// Delete removes the record at id. The store reports a removal count;
// anything other than exactly one is ErrNotFound.
func (s *UserService) Delete(ctx context.Context, id string) error {
	count, err := s.Users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if count != 1 {
		return ErrNotFound
	}
	s.Log.Info().Str("email", id).Msg("user deleted")
	return nil
}

// GetByID returns the record at id with the password redacted.
func (s *UserService) GetByID(ctx context.Context, id string) (model.User, error) {
	user, err := s.Users.FindByEmail(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrKeyNotFound) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, err
	}
	return user.Redacted(), nil
}

// GetAll returns every user with passwords redacted.
func (s *UserService) GetAll(ctx context.Context) ([]model.User, error) {
	users, err := s.Users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.Redacted())
	}
	return out, nil
}

// HasAdminRole reports whether Administrator is among the user's roles.
// It is a pure membership check used both by the access guard and by the
// escalation rule on create/update.
func (s *UserService) HasAdminRole(user model.User) bool {
	return user.HasRole(model.RoleAdministrator)
}
