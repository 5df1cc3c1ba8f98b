package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/user-directory/internal/model"
	"github.com/iliyamo/user-directory/internal/repository"
	"github.com/iliyamo/user-directory/internal/utils"
)

const testSecret = "test-secret"

func newFixture(t *testing.T) (*UserService, *RoleService) {
	t.Helper()
	store := repository.NewMemoryStore()
	users := repository.NewUserRepo(store)
	roles := repository.NewRoleRepo(store)
	roleSvc := NewRoleService(roles, users, zerolog.Nop())
	require.NoError(t, roleSvc.Seed(context.Background(), "root@test.local", "rootpw", bcrypt.MinCost))
	userSvc := NewUserService(users, roleSvc, testSecret, time.Hour, bcrypt.MinCost, zerolog.Nop())
	return userSvc, roleSvc
}

func newUser(email, password, name string, roleNames ...string) model.User {
	u := model.User{Email: email, Password: password, Name: name}
	for _, n := range roleNames {
		u.Roles = append(u.Roles, model.Role{Name: n})
	}
	return u
}

func TestCreate_DuplicateEmail(t *testing.T) {
	t.Parallel()
	svc, _ := newFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, newUser("a@x.com", "pw", "A"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, newUser("a@x.com", "other", "A2"))
	assert.ErrorIs(t, err, ErrEmailNotAvailable)
}

func TestCreate_NoRolesFallsBackToGuest(t *testing.T) {
	t.Parallel()
	svc, _ := newFixture(t)

	created, err := svc.Create(context.Background(), newUser("a@x.com", "pw", "A"))
	require.NoError(t, err)
	require.Len(t, created.Roles, 1)
	assert.Equal(t, model.RoleGuest, created.Roles[0].Name)
	assert.Equal(t, model.RedactedPassword, created.Password)
}

func TestCreate_UnknownRolesResolveToGuest(t *testing.T) {
	t.Parallel()
	svc, _ := newFixture(t)

	created, err := svc.Create(context.Background(), newUser("a@x.com", "pw", "A", "Wizard"))
	require.NoError(t, err)
	require.Len(t, created.Roles, 1)
	assert.Equal(t, model.RoleGuest, created.Roles[0].Name)
}

func TestCreate_AdministratorRoleResolves(t *testing.T) {
	t.Parallel()
	svc, _ := newFixture(t)

	created, err := svc.Create(context.Background(), newUser("a@x.com", "pw", "A", model.RoleAdministrator))
	require.NoError(t, err)
	require.Len(t, created.Roles, 1)
	assert.Equal(t, model.RoleAdministrator, created.Roles[0].Name)
	assert.True(t, svc.HasAdminRole(created))
}

func TestLogin_AfterCreate(t *testing.T) {
	t.Parallel()
	svc, _ := newFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, newUser("a@x.com", "pw", "A"))
	require.NoError(t, err)

	auth, err := svc.Login(ctx, model.Login{Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)
	caller, err := utils.VerifyToken(testSecret, auth.Token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", caller.Email)

	_, err = svc.Login(ctx, model.Login{Email: "a@x.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	t.Parallel()
	svc, _ := newFixture(t)

	// Same failure as a wrong password; the caller cannot tell which.
	_, err := svc.Login(context.Background(), model.Login{Email: "ghost@x.com", Password: "pw"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdate_SameEmailKeepsRecord(t *testing.T) {
	t.Parallel()
	svc, _ := newFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, newUser("a@x.com", "pw", "A"))
	require.NoError(t, err)

	before, err := svc.Users.Count(ctx)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "a@x.com", newUser("a@x.com", "pw2", "A2"))
	require.NoError(t, err)
	assert.Equal(t, "A2", updated.Name)
	assert.Equal(t, created.ID, updated.ID)

	after, err := svc.Users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	// The password was re-hashed from the request.
	_, err = svc.Login(ctx, model.Login{Email: "a@x.com", Password: "pw2"})
	assert.NoError(t, err)
}

func TestUpdate_RenameMovesAccount(t *testing.T) {
	t.Parallel()
	svc, _ := newFixture(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, newUser("a@x.com", "pw", "A"))
	require.NoError(t, err)

	moved, err := svc.Update(ctx, "a@x.com", newUser("b@x.com", "pw2", "A2"))
	require.NoError(t, err)
	assert.Equal(t, "b@x.com", moved.Email)
	assert.Equal(t, created.ID, moved.ID)

	_, err = svc.GetByID(ctx, "a@x.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Login(ctx, model.Login{Email: "b@x.com", Password: "pw2"})
	assert.NoError(t, err)
	_, err = svc.Login(ctx, model.Login{Email: "a@x.com", Password: "pw"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdate_RenameToTakenEmail(t *testing.T) {
	t.Parallel()
	svc, _ := newFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, newUser("a@x.com", "pw", "A"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, newUser("b@x.com", "pw", "B"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, "a@x.com", newUser("b@x.com", "pw2", "A2"))
	assert.ErrorIs(t, err, ErrEmailNotAvailable)

	// The account at the original key is untouched.
	u, err := svc.GetByID(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "A", u.Name)
	_, err = svc.Login(ctx, model.Login{Email: "a@x.com", Password: "pw"})
	assert.NoError(t, err)
}

func TestUpdate_UnknownSubject(t *testing.T) {
	t.Parallel()
	svc, _ := newFixture(t)

	_, err := svc.Update(context.Background(), "ghost@x.com", newUser("ghost@x.com", "pw", "G"))
	assert.ErrorIs(t, err, ErrEmailNotFound)
}

func TestUpdate_EmptyRoleResolutionKeepsExistingRoles(t *testing.T) {
	t.Parallel()
	svc, _ := newFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, newUser("a@x.com", "pw", "A", model.RoleAdministrator))
	require.NoError(t, err)

	// Unresolvable role names must not strip the Administrator role.
	updated, err := svc.Update(ctx, "a@x.com", newUser("a@x.com", "pw", "A", "Wizard"))
	require.NoError(t, err)
	require.Len(t, updated.Roles, 1)
	assert.Equal(t, model.RoleAdministrator, updated.Roles[0].Name)
}

func TestDelete_ThenLoginFails(t *testing.T) {
	t.Parallel()
	svc, _ := newFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, newUser("a@x.com", "pw", "A"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "a@x.com"))

	_, err = svc.Login(ctx, model.Login{Email: "a@x.com", Password: "pw"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	assert.ErrorIs(t, svc.Delete(ctx, "a@x.com"), ErrNotFound)
}

func TestGetAll_RedactsPasswords(t *testing.T) {
	t.Parallel()
	svc, _ := newFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, newUser("a@x.com", "pw", "A"))
	require.NoError(t, err)

	users, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, users)
	for _, u := range users {
		assert.Equal(t, model.RedactedPassword, u.Password)
	}
}

func TestHasAdminRole(t *testing.T) {
	t.Parallel()
	svc, _ := newFixture(t)

	admin := model.User{Roles: []model.Role{{Name: model.RoleAdministrator}}}
	guest := model.User{Roles: []model.Role{{Name: model.RoleGuest}}}
	assert.True(t, svc.HasAdminRole(admin))
	assert.False(t, svc.HasAdminRole(guest))
	assert.False(t, svc.HasAdminRole(model.User{}))
}
