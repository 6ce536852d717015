package pg

import (
	"context"
	"errors"

	"github.com/dropDatabas3/acmedash/internal/store/core"
	"github.com/jackc/pgx/v5"
)

func (s *Store) CreateUser(ctx context.Context, u *core.User) error {
	const q = `
INSERT INTO app_user (id, name, email, role)
VALUES ($1, $2, $3, $4)
RETURNING created_at;`
	err := s.pool.QueryRow(ctx, q, u.ID, u.Name, u.Email, u.Role).Scan(&u.CreatedAt)
	if isUniqueViolation(err) {
		return core.ErrConflict
	}
	return err
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*core.User, error) {
	const q = `
SELECT id, name, email, role, created_at
FROM app_user
WHERE lower(email) = lower($1);`
	var u core.User
	err := s.pool.QueryRow(ctx, q, email).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
