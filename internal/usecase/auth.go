package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/webstudio/internal/domain/errors"
	"github.com/polkiloo/webstudio/internal/domain/model"
	"github.com/polkiloo/webstudio/internal/domain/repository"
	pkgAuth "github.com/polkiloo/webstudio/internal/pkg/auth"
)

// AuthUseCase handles user lifecycle and token management.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
	now    func() time.Time
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy, now: time.Now}
}

// Register creates a new customer with login/password and returns auth token.
func (u *AuthUseCase) Register(ctx context.Context, login, password, name string) (*model.User, string, error) {
	usr, err := u.create(ctx, login, password, name, model.RoleCustomer)
	if err != nil {
		return nil, "", err
	}

	token, err := u.issue(usr)
	if err != nil {
		return nil, "", err
	}
	return usr, token, nil
}

// Authenticate validates credentials and returns auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.issue(usr)
	if err != nil {
		return nil, "", err
	}
	return usr, token, nil
}

// ParseToken extracts the actor from provided token.
func (u *AuthUseCase) ParseToken(token string) (model.Actor, error) {
	if token == "" {
		return model.Actor{}, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id string) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

// EnsureAdmin creates the admin account unless it already exists.
// It reports whether a new account was created.
func (u *AuthUseCase) EnsureAdmin(ctx context.Context, login, password string) (bool, error) {
	existing, err := u.users.GetByLogin(ctx, strings.TrimSpace(login))
	switch {
	case err == nil:
		if existing.Role != model.RoleAdmin {
			return false, fmt.Errorf("ensure admin %q: login belongs to a %s: %w", login, existing.Role, domainErrors.ErrAlreadyExists)
		}
		return false, nil
	case !errors.Is(err, domainErrors.ErrNotFound):
		return false, err
	}

	if _, err := u.create(ctx, login, password, "Administrator", model.RoleAdmin); err != nil {
		// A concurrent instance may have created it first.
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (u *AuthUseCase) create(ctx context.Context, login, password, name string, role model.Role) (*model.User, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, domainErrors.ErrInvalidCredentials
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = login
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, pkgAuth.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: password longer than %d bytes", domainErrors.ErrValidation, pkgAuth.MaxPasswordBytes)
		}
		return nil, err
	}

	usr := model.NewUser(login, name, hash, role, u.now())
	if err := u.users.Create(ctx, usr); err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return usr, nil
}

func (u *AuthUseCase) issue(usr *model.User) (string, error) {
	return u.tokens.IssueToken(model.Actor{UserID: usr.ID, Role: usr.Role})
}
