package repository

import (
	"context"
	"testing"
	"time"

	"store_ratings/internal/common"
	"store_ratings/internal/domain/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestUpsertIsSingleStatement(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "store_id", "score", "comment", "created_at", "updated_at"}).
		AddRow(int64(1), int64(7), int64(3), 4, "ok", now, now)

	mock.ExpectQuery(`(?s)INSERT INTO ratings.*ON CONFLICT \(user_id, store_id\)`).
		WithArgs(int64(7), int64(3), 4, "ok").
		WillReturnRows(rows)

	comment := "ok"
	repo := NewPgRatingRepository(db)
	rating, err := repo.Upsert(context.Background(), 7, 3, 4, &comment)
	require.NoError(t, err)
	require.Equal(t, int64(1), rating.ID)
	require.Equal(t, 4, rating.Score)
	require.Equal(t, "ok", *rating.Comment)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListForStoreJoinsRaterIdentity(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "store_id", "score", "comment", "created_at", "updated_at", "name"}).
		AddRow(int64(2), int64(8), int64(3), 5, nil, now, now, "Normal User Seed Account").
		AddRow(int64(1), int64(7), int64(3), 4, "ok", now.Add(-time.Hour), now.Add(-time.Hour), "Another Rater Display Name")

	mock.ExpectQuery(`(?s)SELECT.*FROM ratings r.*JOIN users u ON r.user_id = u.id`).
		WithArgs(int64(3)).
		WillReturnRows(rows)

	repo := NewPgRatingRepository(db)
	ratings, err := repo.ListForStore(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, ratings, 2)
	require.Equal(t, "Normal User Seed Account", *ratings[0].UserName)
	require.Nil(t, ratings[0].Comment)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserMapsUniqueViolationToConflict(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	repo := NewPgUserRepository(db)
	user := &model.User{Name: "Normal User Seed Account", Email: "user@example.com", HashedPassword: "x", Role: model.RoleUser}
	require.ErrorIs(t, repo.Create(context.Background(), user), common.ErrConflict)

	require.NoError(t, mock.ExpectationsWereMet())
}
