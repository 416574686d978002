package authservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Leopold1975/projects_control/internal/pkg/config"
	"github.com/Leopold1975/projects_control/internal/pkg/jwtauth"
	"github.com/Leopold1975/projects_control/internal/pkg/passwords"
	"github.com/Leopold1975/projects_control/internal/projects/domain/apperr"
	"github.com/Leopold1975/projects_control/internal/projects/domain/models"
	"github.com/Leopold1975/projects_control/internal/projects/repository/userrepo"
	"github.com/Leopold1975/projects_control/pkg/logger"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var authCfg = config.Auth{ //nolint:exhaustruct
	TTL:               time.Hour,
	Secret:            "test-secret-key",
	AllowRegistration: true,
	BcryptCost:        bcrypt.MinCost,
}

func newService(t *testing.T, cfg config.Auth) (*AuthService, *MockRepository, *MockTokenStore) {
	t.Helper()

	repo := new(MockRepository)
	store := new(MockTokenStore)

	return New(repo, store, cfg, logger.NewNop()), repo, store
}

func userWithPassword(t *testing.T, password string) models.User {
	t.Helper()

	hash, err := passwords.Hash(password, bcrypt.MinCost)
	require.NoError(t, err)

	return models.User{ID: 7, Username: "alice", PasswordHash: hash, Role: models.RoleEmployee, Active: true}
}

func TestLogin(t *testing.T) {
	as, repo, _ := newService(t, authCfg)
	ctx := context.Background()
	u := userWithPassword(t, "qwerty123")

	repo.On("GetUserByUsername", ctx, "alice").Return(u, nil)
	repo.On("UpdateLastLogin", ctx, int64(7), mock.AnythingOfType("time.Time")).Return(nil)

	token, err := as.Login(ctx, "alice", "qwerty123")
	require.NoError(t, err)

	claims, err := jwtauth.ParseToken(token, authCfg.Secret)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, string(models.RoleEmployee), claims.Role)
	repo.AssertExpectations(t)
}

func TestLoginFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown user", func(t *testing.T) {
		as, repo, _ := newService(t, authCfg)
		repo.On("GetUserByUsername", ctx, "ghost").Return(models.User{}, userrepo.ErrNotFound)

		var compared []string

		as.compare = func(hash, password string) error {
			compared = append(compared, hash)

			return passwords.Compare(hash, password)
		}

		_, err := as.Login(ctx, "ghost", "x")
		require.ErrorIs(t, err, ErrBadCredentials)
		require.Equal(t, []string{as.dummyHash}, compared, "unknown users still pay for a bcrypt compare")
		require.NotEmpty(t, as.dummyHash)
	})

	t.Run("wrong password", func(t *testing.T) {
		as, repo, _ := newService(t, authCfg)
		repo.On("GetUserByUsername", ctx, "alice").Return(userWithPassword(t, "right-one"), nil)

		_, err := as.Login(ctx, "alice", "wrong-one")
		require.ErrorIs(t, err, ErrBadCredentials)
	})

	t.Run("inactive", func(t *testing.T) {
		as, repo, _ := newService(t, authCfg)
		u := userWithPassword(t, "right-one")
		u.Active = false
		repo.On("GetUserByUsername", ctx, "alice").Return(u, nil)

		_, err := as.Login(ctx, "alice", "right-one")
		require.ErrorIs(t, err, ErrInactive)
	})

	t.Run("repository failure", func(t *testing.T) {
		as, repo, _ := newService(t, authCfg)
		repo.On("GetUserByUsername", ctx, "alice").Return(models.User{}, errors.New("db down"))

		_, err := as.Login(ctx, "alice", "x")
		require.Error(t, err)
		require.NotErrorIs(t, err, apperr.ErrUnauthorized)
	})
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	req := RegisterRequest{Username: "bob", Email: "bob@example.com", Password: "long-password"}

	t.Run("ok", func(t *testing.T) {
		as, repo, _ := newService(t, authCfg)
		repo.On("CreateUser", ctx, mock.MatchedBy(func(u models.User) bool {
			return u.Username == "bob" && u.Role == models.RoleUser && u.Active &&
				passwords.Compare(u.PasswordHash, "long-password") == nil
		})).Return(int64(11), nil)

		token, err := as.Register(ctx, req)
		require.NoError(t, err)

		claims, err := jwtauth.ParseToken(token, authCfg.Secret)
		require.NoError(t, err)

		id, err := claims.UserID()
		require.NoError(t, err)
		require.Equal(t, int64(11), id)
	})

	t.Run("duplicate", func(t *testing.T) {
		as, repo, _ := newService(t, authCfg)
		repo.On("CreateUser", ctx, mock.Anything).Return(int64(0), userrepo.ErrAlreadyExists)

		_, err := as.Register(ctx, req)
		require.ErrorIs(t, err, apperr.ErrConflict)
	})

	t.Run("invalid", func(t *testing.T) {
		as, _, _ := newService(t, authCfg)

		_, err := as.Register(ctx, RegisterRequest{Username: "b", Email: "nope", Password: "short"})
		require.ErrorIs(t, err, apperr.ErrInvalid)
	})

	t.Run("closed", func(t *testing.T) {
		cfg := authCfg
		cfg.AllowRegistration = false
		as, _, _ := newService(t, cfg)

		_, err := as.Register(ctx, req)
		require.ErrorIs(t, err, apperr.ErrForbidden)
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	customerID := int64(3)
	u := models.User{ID: 7, Username: "alice", Role: models.RoleCustomer, CustomerID: &customerID, Active: true}

	token, err := jwtauth.GetToken(u.ID, u.Username, string(models.RoleEmployee), time.Hour, authCfg.Secret)
	require.NoError(t, err)

	t.Run("uses stored role", func(t *testing.T) {
		as, repo, store := newService(t, authCfg)
		store.On("IsRevoked", ctx, mock.AnythingOfType("string")).Return(false, nil)
		repo.On("GetUser", ctx, int64(7)).Return(u, nil)

		p, err := as.Authenticate(ctx, token)
		require.NoError(t, err)
		require.Equal(t, models.RoleCustomer, p.Role)
		require.Equal(t, &customerID, p.CustomerID)
		require.NotEmpty(t, p.TokenID)
	})

	t.Run("revoked", func(t *testing.T) {
		as, _, store := newService(t, authCfg)
		store.On("IsRevoked", ctx, mock.AnythingOfType("string")).Return(true, nil)

		_, err := as.Authenticate(ctx, token)
		require.ErrorIs(t, err, ErrRevoked)
	})

	t.Run("deactivated", func(t *testing.T) {
		as, repo, store := newService(t, authCfg)
		inactive := u
		inactive.Active = false
		store.On("IsRevoked", ctx, mock.AnythingOfType("string")).Return(false, nil)
		repo.On("GetUser", ctx, int64(7)).Return(inactive, nil)

		_, err := as.Authenticate(ctx, token)
		require.ErrorIs(t, err, ErrInactive)
	})

	t.Run("garbage", func(t *testing.T) {
		as, _, _ := newService(t, authCfg)

		_, err := as.Authenticate(ctx, "garbage")
		require.ErrorIs(t, err, apperr.ErrUnauthorized)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	as, _, store := newService(t, authCfg)

	token, err := jwtauth.GetToken(7, "alice", string(models.RoleUser), time.Hour, authCfg.Secret)
	require.NoError(t, err)

	claims, err := jwtauth.ParseToken(token, authCfg.Secret)
	require.NoError(t, err)

	store.On("Revoke", ctx, claims.Id, mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 59*time.Minute && ttl <= time.Hour
	})).Return(nil)

	require.NoError(t, as.Logout(ctx, token))
	store.AssertExpectations(t)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	p := models.Principal{UserID: 7, Role: models.RoleEmployee}

	t.Run("ok", func(t *testing.T) {
		as, repo, _ := newService(t, authCfg)
		repo.On("GetUser", ctx, int64(7)).Return(userWithPassword(t, "old-password"), nil)
		repo.On("UpdatePassword", ctx, int64(7), mock.MatchedBy(func(hash string) bool {
			return passwords.Compare(hash, "new-password") == nil
		})).Return(nil)

		require.NoError(t, as.ChangePassword(ctx, p, ChangePasswordRequest{
			OldPassword: "old-password", NewPassword: "new-password",
		}))
		repo.AssertExpectations(t)
	})

	t.Run("wrong old password", func(t *testing.T) {
		as, repo, _ := newService(t, authCfg)
		repo.On("GetUser", ctx, int64(7)).Return(userWithPassword(t, "old-password"), nil)

		err := as.ChangePassword(ctx, p, ChangePasswordRequest{OldPassword: "nope", NewPassword: "new-password"})
		require.ErrorIs(t, err, ErrBadCredentials)
	})
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	cfg := authCfg
	cfg.Admin = config.Admin{Username: "root", Password: "root-password"}

	t.Run("creates", func(t *testing.T) {
		as, repo, _ := newService(t, cfg)
		repo.On("CountUsers", ctx, models.RoleSuperAdmin).Return(0, nil)
		repo.On("CreateUser", ctx, mock.MatchedBy(func(u models.User) bool {
			return u.Username == "root" && u.Role == models.RoleSuperAdmin && u.Email == "root@localhost"
		})).Return(int64(1), nil)

		require.NoError(t, as.EnsureAdmin(ctx))
		repo.AssertExpectations(t)
	})

	t.Run("exists", func(t *testing.T) {
		as, repo, _ := newService(t, cfg)
		repo.On("CountUsers", ctx, models.RoleSuperAdmin).Return(1, nil)

		require.NoError(t, as.EnsureAdmin(ctx))
		repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("not configured", func(t *testing.T) {
		as, repo, _ := newService(t, authCfg)

		require.NoError(t, as.EnsureAdmin(ctx))
		repo.AssertNotCalled(t, "CountUsers", mock.Anything, mock.Anything)
	})
}
