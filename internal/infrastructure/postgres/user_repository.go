package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Inventario-ledger/internal/domain"
	"github.com/jhoicas/Inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/Inventario-ledger/internal/domain/repository"
)

// UserRepository implementa repository.UserRepository sobre PostgreSQL.
type UserRepository struct {
	q Querier
}

var _ repository.UserRepository = (*UserRepository)(nil)

func NewUserRepository(q Querier) *UserRepository {
	return &UserRepository{q: q}
}

const userColumns = `id, email, password_hash, name, role, status, created_at, updated_at`

func (r *UserRepository) Create(user *entity.User) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, name, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		user.ID, user.Email, user.PasswordHash, user.Name,
		user.Role, user.Status, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insertar usuario: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(id string) (*entity.User, error) {
	return r.getBy(`id = $1`, id)
}

func (r *UserRepository) GetByEmail(email string) (*entity.User, error) {
	return r.getBy(`email = $1`, email)
}

func (r *UserRepository) getBy(where string, arg any) (*entity.User, error) {
	ctx := context.Background()
	row := r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, arg)
	var u entity.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("consultar usuario: %w", err)
	}
	return &u, nil
}
