package repository

import (
	"context"
	"database/sql"
	"fmt"
	"store_ratings/internal/domain/model"
)

type RatingRepository interface {
	// Upsert atomically inserts or overwrites the caller's rating for a
	// store, keyed on the (user_id, store_id) unique index.
	Upsert(ctx context.Context, userID, storeID int64, score int, comment *string) (*model.Rating, error)
	ListForStore(ctx context.Context, storeID int64) ([]model.Rating, error)
	ListForStores(ctx context.Context, storeIDs []int64) (map[int64][]model.Rating, error)
	Count(ctx context.Context) (int, error)
}

type pgRatingRepository struct {
	db *sql.DB
}

func NewPgRatingRepository(db *sql.DB) RatingRepository {
	return &pgRatingRepository{db: db}
}

func (r *pgRatingRepository) Upsert(ctx context.Context, userID, storeID int64, score int, comment *string) (*model.Rating, error) {
	// Single statement so concurrent submissions for the same pair race
	// safely inside Postgres: last write wins, never a second row.
	query := `INSERT INTO ratings (user_id, store_id, score, comment)
	          VALUES ($1, $2, $3, $4)
	          ON CONFLICT (user_id, store_id)
	          DO UPDATE SET score = EXCLUDED.score, comment = EXCLUDED.comment, updated_at = CURRENT_TIMESTAMP
	          RETURNING id, user_id, store_id, score, comment, created_at, updated_at`
	rating := &model.Rating{}
	err := r.db.QueryRowContext(ctx, query, userID, storeID, score, comment).Scan(
		&rating.ID, &rating.UserID, &rating.StoreID, &rating.Score, &rating.Comment, &rating.CreatedAt, &rating.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("pgRatingRepository.Upsert: %w", err)
	}
	return rating, nil
}

func (r *pgRatingRepository) ListForStore(ctx context.Context, storeID int64) ([]model.Rating, error) {
	query := `SELECT r.id, r.user_id, r.store_id, r.score, r.comment, r.created_at, r.updated_at, u.name
	          FROM ratings r
	          JOIN users u ON r.user_id = u.id
	          WHERE r.store_id = $1
	          ORDER BY r.updated_at DESC`
	rows, err := r.db.QueryContext(ctx, query, storeID)
	if err != nil {
		return nil, fmt.Errorf("pgRatingRepository.ListForStore: %w", err)
	}
	defer rows.Close()

	ratings := []model.Rating{}
	for rows.Next() {
		var rt model.Rating
		if err := rows.Scan(&rt.ID, &rt.UserID, &rt.StoreID, &rt.Score, &rt.Comment, &rt.CreatedAt, &rt.UpdatedAt, &rt.UserName); err != nil {
			return nil, fmt.Errorf("pgRatingRepository.ListForStore scan: %w", err)
		}
		ratings = append(ratings, rt)
	}
	return ratings, rows.Err()
}

func (r *pgRatingRepository) ListForStores(ctx context.Context, storeIDs []int64) (map[int64][]model.Rating, error) {
	byStore := map[int64][]model.Rating{}
	if len(storeIDs) == 0 {
		return byStore, nil
	}

	query := `SELECT id, user_id, store_id, score, comment, created_at, updated_at
	          FROM ratings WHERE store_id = ANY($1)`
	rows, err := r.db.QueryContext(ctx, query, storeIDs)
	if err != nil {
		return nil, fmt.Errorf("pgRatingRepository.ListForStores: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rt model.Rating
		if err := rows.Scan(&rt.ID, &rt.UserID, &rt.StoreID, &rt.Score, &rt.Comment, &rt.CreatedAt, &rt.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pgRatingRepository.ListForStores scan: %w", err)
		}
		byStore[rt.StoreID] = append(byStore[rt.StoreID], rt)
	}
	return byStore, rows.Err()
}

func (r *pgRatingRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ratings`).Scan(&count); err != nil {
		return 0, fmt.Errorf("pgRatingRepository.Count: %w", err)
	}
	return count, nil
}
