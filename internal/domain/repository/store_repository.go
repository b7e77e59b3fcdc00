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

// StoreListFilter narrows and orders the public store listing.
type StoreListFilter struct {
	Query   string // matches name or address, case-insensitive
	SortBy  string // "name" or "address"
	SortDir string // "asc" or "desc"
}

type StoreRepository interface {
	Create(ctx context.Context, store *model.Store) error
	FindByID(ctx context.Context, id int64) (*model.Store, error)
	List(ctx context.Context, filter StoreListFilter) ([]model.Store, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Store, error)
	Count(ctx context.Context) (int, error)
}

type pgStoreRepository struct {
	db *sql.DB
}

func NewPgStoreRepository(db *sql.DB) StoreRepository {
	return &pgStoreRepository{db: db}
}

func (r *pgStoreRepository) Create(ctx context.Context, store *model.Store) error {
	query := `INSERT INTO stores (name, slug, address, owner_id)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, store.Name, store.Slug, store.Address, store.OwnerID).
		Scan(&store.ID, &store.CreatedAt, &store.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint for slug
			return fmt.Errorf("store with this slug already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgStoreRepository.Create: %w", err)
	}
	return nil
}

func (r *pgStoreRepository) FindByID(ctx context.Context, id int64) (*model.Store, error) {
	query := `SELECT id, name, slug, address, owner_id, created_at, updated_at
	          FROM stores WHERE id = $1`
	store := &model.Store{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&store.ID, &store.Name, &store.Slug, &store.Address, &store.OwnerID, &store.CreatedAt, &store.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgStoreRepository.FindByID: %w", err)
	}
	return store, nil
}

func (r *pgStoreRepository) List(ctx context.Context, filter StoreListFilter) ([]model.Store, error) {
	orderCol := "name"
	if filter.SortBy == "address" {
		orderCol = "address"
	}
	orderDir := "ASC"
	if filter.SortDir == "desc" {
		orderDir = "DESC"
	}

	query := `SELECT id, name, slug, address, owner_id, created_at, updated_at FROM stores`
	args := []interface{}{}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		query += ` WHERE (name ILIKE $1 OR address ILIKE $1)`
	}
	query += ` ORDER BY ` + orderCol + ` ` + orderDir

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgStoreRepository.List: %w", err)
	}
	defer rows.Close()

	return scanStores(rows)
}

func (r *pgStoreRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.Store, error) {
	query := `SELECT id, name, slug, address, owner_id, created_at, updated_at
	          FROM stores WHERE owner_id = $1 ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("pgStoreRepository.ListByOwner: %w", err)
	}
	defer rows.Close()

	return scanStores(rows)
}

func (r *pgStoreRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stores`).Scan(&count); err != nil {
		return 0, fmt.Errorf("pgStoreRepository.Count: %w", err)
	}
	return count, nil
}

func scanStores(rows *sql.Rows) ([]model.Store, error) {
	stores := []model.Store{}
	for rows.Next() {
		var s model.Store
		if err := rows.Scan(&s.ID, &s.Name, &s.Slug, &s.Address, &s.OwnerID, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanStores: %w", err)
		}
		stores = append(stores, s)
	}
	return stores, rows.Err()
}
