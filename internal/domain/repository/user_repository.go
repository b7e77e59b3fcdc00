package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"store_ratings/internal/common"
	"store_ratings/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// UserListFilter narrows and orders the admin user listing. SortField and
// SortDir are whitelisted by the implementation, never interpolated raw.
type UserListFilter struct {
	Query   string // matches name, email or address, case-insensitive
	Role    string // exact role, empty for all
	SortBy  string // "name" or "email"
	SortDir string // "asc" or "desc"
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	UpdatePassword(ctx context.Context, userID int64, newHash string) error
	List(ctx context.Context, filter UserListFilter) ([]model.User, error)
	Count(ctx context.Context) (int, error)
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (name, email, address, hashed_password, role)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, user.Name, user.Email, user.Address, user.HashedPassword, user.Role).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint violation
			return fmt.Errorf("user with given email already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT id, name, email, address, hashed_password, role, created_at, updated_at
	          FROM users WHERE email = $1`
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.Name, &user.Email, &user.Address, &user.HashedPassword, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByEmail: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT id, name, email, address, hashed_password, role, created_at, updated_at
	          FROM users WHERE id = $1`
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.Address, &user.HashedPassword, &user.Role, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByID: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) UpdatePassword(ctx context.Context, userID int64, newHash string) error {
	query := `UPDATE users SET hashed_password = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, newHash, userID)
	if err != nil {
		return fmt.Errorf("pgUserRepository.UpdatePassword: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgUserRepository) List(ctx context.Context, filter UserListFilter) ([]model.User, error) {
	orderCol := "name"
	if filter.SortBy == "email" {
		orderCol = "email"
	}
	orderDir := "ASC"
	if filter.SortDir == "desc" {
		orderDir = "DESC"
	}

	query := `SELECT id, name, email, address, role, created_at, updated_at FROM users`
	args := []interface{}{}
	where := ""
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		where = ` WHERE (name ILIKE $1 OR email ILIKE $1 OR COALESCE(address, '') ILIKE $1)`
	}
	if filter.Role != "" {
		args = append(args, filter.Role)
		if where == "" {
			where = fmt.Sprintf(` WHERE role = $%d`, len(args))
		} else {
			where += fmt.Sprintf(` AND role = $%d`, len(args))
		}
	}
	query += where + ` ORDER BY ` + orderCol + ` ` + orderDir

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgUserRepository.List: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Address, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pgUserRepository.List scan: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *pgUserRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("pgUserRepository.Count: %w", err)
	}
	return count, nil
}
