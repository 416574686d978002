package authservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Leopold1975/projects_control/internal/pkg/config"
	"github.com/Leopold1975/projects_control/internal/pkg/jwtauth"
	"github.com/Leopold1975/projects_control/internal/pkg/passwords"
	"github.com/Leopold1975/projects_control/internal/pkg/validation"
	"github.com/Leopold1975/projects_control/internal/projects/domain/apperr"
	"github.com/Leopold1975/projects_control/internal/projects/domain/models"
	"github.com/Leopold1975/projects_control/internal/projects/repository/userrepo"
	"github.com/Leopold1975/projects_control/pkg/logger"
	"github.com/google/uuid"
)

var (
	ErrBadCredentials     = fmt.Errorf("%w: wrong username or password", apperr.ErrUnauthorized)
	ErrInactive           = fmt.Errorf("%w: user is deactivated", apperr.ErrUnauthorized)
	ErrRevoked            = fmt.Errorf("%w: token revoked", apperr.ErrUnauthorized)
	ErrRegistrationClosed = fmt.Errorf("%w: registration is disabled", apperr.ErrForbidden)
)

type AuthService struct {
	userRepo   Repository
	tokenStore TokenStore
	cfg        config.Auth
	lg         logger.Logger
	now        func() time.Time
	compare    func(hash, password string) error
	// dummyHash is compared against for unknown usernames so both paths cost one bcrypt round.
	dummyHash string
}

type Repository interface {
	CreateUser(context.Context, models.User) (int64, error)
	GetUser(context.Context, int64) (models.User, error)
	GetUserByUsername(context.Context, string) (models.User, error)
	UpdatePassword(ctx context.Context, id int64, hash string) error
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
	CountUsers(context.Context, models.Role) (int, error)
}

type TokenStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

func New(userRepo Repository, tokenStore TokenStore, cfg config.Auth, lg logger.Logger) *AuthService {
	dummyHash, err := passwords.Hash(uuid.NewString(), cfg.BcryptCost)
	if err != nil {
		lg.Errorf("dummy hash error: %s", err.Error())
	}

	return &AuthService{
		userRepo:   userRepo,
		tokenStore: tokenStore,
		cfg:        cfg,
		lg:         lg,
		now:        time.Now,
		compare:    passwords.Compare,
		dummyHash:  dummyHash,
	}
}

func (as *AuthService) token(u models.User) (string, error) {
	token, err := jwtauth.GetToken(u.ID, u.Username, string(u.Role), as.cfg.TTL, as.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("can't get token error: %w", err)
	}

	return token, nil
}

func (as *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	u, err := as.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			as.compare(as.dummyHash, password) //nolint:errcheck

			return "", ErrBadCredentials
		}

		return "", fmt.Errorf("get user error: %w", err)
	}

	if err := as.compare(u.PasswordHash, password); err != nil {
		return "", ErrBadCredentials
	}

	if !u.Active {
		return "", ErrInactive
	}

	if err := as.userRepo.UpdateLastLogin(ctx, u.ID, as.now()); err != nil {
		as.lg.Errorf("update last login of user %d error: %s", u.ID, err.Error())
	}

	return as.token(u)
}

func (as *AuthService) Register(ctx context.Context, req RegisterRequest) (string, error) {
	if !as.cfg.AllowRegistration {
		return "", ErrRegistrationClosed
	}

	if err := validation.Struct(req); err != nil {
		return "", fmt.Errorf("%w: %w", apperr.ErrInvalid, err)
	}

	hash, err := passwords.Hash(req.Password, as.cfg.BcryptCost)
	if err != nil {
		return "", err //nolint:wrapcheck
	}

	now := as.now()
	u := models.User{ //nolint:exhaustruct
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         models.RoleUser,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	u.ID, err = as.userRepo.CreateUser(ctx, u)
	if err != nil {
		if errors.Is(err, userrepo.ErrAlreadyExists) {
			return "", fmt.Errorf("%w: %w", apperr.ErrConflict, err)
		}

		return "", fmt.Errorf("create user error: %w", err)
	}

	return as.token(u)
}

// Authenticate validates token and resolves the caller from the stored user,
// so deactivation and role changes apply to tokens already issued.
func (as *AuthService) Authenticate(ctx context.Context, token string) (models.Principal, error) {
	claims, err := jwtauth.ParseToken(token, as.cfg.Secret)
	if err != nil {
		return models.Principal{}, fmt.Errorf("%w: %w", apperr.ErrUnauthorized, err)
	}

	revoked, err := as.tokenStore.IsRevoked(ctx, claims.Id)
	if err != nil {
		return models.Principal{}, fmt.Errorf("check revocation error: %w", err)
	}

	if revoked {
		return models.Principal{}, ErrRevoked
	}

	id, err := claims.UserID()
	if err != nil {
		return models.Principal{}, fmt.Errorf("%w: %w", apperr.ErrUnauthorized, err)
	}

	u, err := as.userRepo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return models.Principal{}, fmt.Errorf("%w: %w", apperr.ErrUnauthorized, err)
		}

		return models.Principal{}, fmt.Errorf("get user error: %w", err)
	}

	if !u.Active {
		return models.Principal{}, ErrInactive
	}

	p := u.Principal()
	p.TokenID = claims.Id

	return p, nil
}

func (as *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := jwtauth.ParseToken(token, as.cfg.Secret)
	if err != nil {
		return fmt.Errorf("%w: %w", apperr.ErrUnauthorized, err)
	}

	if err := as.tokenStore.Revoke(ctx, claims.Id, claims.ExpiresIn(as.now())); err != nil {
		return fmt.Errorf("revoke token error: %w", err)
	}

	return nil
}

func (as *AuthService) Me(ctx context.Context, p models.Principal) (models.User, error) {
	u, err := as.userRepo.GetUser(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, userrepo.ErrNotFound) {
			return models.User{}, fmt.Errorf("%w: %w", apperr.ErrNotFound, err)
		}

		return models.User{}, fmt.Errorf("get user error: %w", err)
	}

	return u, nil
}

func (as *AuthService) ChangePassword(ctx context.Context, p models.Principal, req ChangePasswordRequest) error {
	if err := validation.Struct(req); err != nil {
		return fmt.Errorf("%w: %w", apperr.ErrInvalid, err)
	}

	u, err := as.Me(ctx, p)
	if err != nil {
		return err
	}

	if err := as.compare(u.PasswordHash, req.OldPassword); err != nil {
		return ErrBadCredentials
	}

	hash, err := passwords.Hash(req.NewPassword, as.cfg.BcryptCost)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if err := as.userRepo.UpdatePassword(ctx, u.ID, hash); err != nil {
		return fmt.Errorf("update password error: %w", err)
	}

	return nil
}

// EnsureAdmin creates the configured super admin unless one already exists.
func (as *AuthService) EnsureAdmin(ctx context.Context) error {
	admin := as.cfg.Admin
	if admin.Username == "" || admin.Password == "" {
		return nil
	}

	n, err := as.userRepo.CountUsers(ctx, models.RoleSuperAdmin)
	if err != nil {
		return fmt.Errorf("count admins error: %w", err)
	}

	if n > 0 {
		return nil
	}

	hash, err := passwords.Hash(admin.Password, as.cfg.BcryptCost)
	if err != nil {
		return err //nolint:wrapcheck
	}

	email := admin.Email
	if email == "" {
		email = admin.Username + "@localhost"
	}

	now := as.now()

	_, err = as.userRepo.CreateUser(ctx, models.User{ //nolint:exhaustruct
		Username:     admin.Username,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleSuperAdmin,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil && !errors.Is(err, userrepo.ErrAlreadyExists) {
		return fmt.Errorf("create admin error: %w", err)
	}

	as.lg.Infof("super admin %q is ready", admin.Username)

	return nil
}
