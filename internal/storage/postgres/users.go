package postgres

import (
	"context"

	domainErrors "github.com/polkiloo/webstudio/internal/domain/errors"
	"github.com/polkiloo/webstudio/internal/domain/model"
)

type userRepository struct {
	db querier
}

const userColumns = `id, login, name, password_hash, role, created_at`

func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	const query = `INSERT INTO users (id, login, name, password_hash, role, created_at) VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.Exec(ctx, query, u.ID, u.Login, u.Name, u.PasswordHash, u.Role, u.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domainErrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE login=$1`, login)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1`, id)
}

func (r *userRepository) getOne(ctx context.Context, query string, arg string) (*model.User, error) {
	var u model.User
	err := r.db.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Login, &u.Name, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return &u, nil
}
