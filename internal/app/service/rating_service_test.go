package service

import (
	"context"
	"sync"
	"testing"

	"store_ratings/internal/common"
	"store_ratings/internal/domain/model"
	"store_ratings/internal/domain/policy"

	"github.com/stretchr/testify/require"
)

func newRatingFixture(t *testing.T) (*RatingService, *fakeStoreRepo, *fakeRatingRepo, int64) {
	t.Helper()
	storeRepo := newFakeStoreRepo()
	ratingRepo := newFakeRatingRepo()

	store := &model.Store{Name: "Bluebird Market", Slug: "bluebird-market", Address: "123 Main Street"}
	require.NoError(t, storeRepo.Create(context.Background(), store))

	return NewRatingService(ratingRepo, storeRepo), storeRepo, ratingRepo, store.ID
}

func strPtr(s string) *string { return &s }

func TestSubmitRequiresAuthentication(t *testing.T) {
	svc, _, _, storeID := newRatingFixture(t)

	_, err := svc.Submit(context.Background(), policy.Anonymous(), SubmitRatingRequest{StoreID: storeID, Score: 4})
	require.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestSubmitRejectsOutOfRangeScore(t *testing.T) {
	svc, _, _, storeID := newRatingFixture(t)
	caller := policy.Authenticated(1, model.RoleUser)

	_, err := svc.Submit(context.Background(), caller, SubmitRatingRequest{StoreID: storeID, Score: 0})
	require.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.Submit(context.Background(), caller, SubmitRatingRequest{StoreID: storeID, Score: 6})
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestSubmitUnknownStore(t *testing.T) {
	svc, _, _, _ := newRatingFixture(t)
	caller := policy.Authenticated(1, model.RoleUser)

	_, err := svc.Submit(context.Background(), caller, SubmitRatingRequest{StoreID: 9999, Score: 4})
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestSubmitUpsertsInPlace(t *testing.T) {
	svc, _, ratingRepo, storeID := newRatingFixture(t)
	caller := policy.Authenticated(1, model.RoleUser)

	first, err := svc.Submit(context.Background(), caller, SubmitRatingRequest{StoreID: storeID, Score: 4, Comment: strPtr("ok")})
	require.NoError(t, err)

	second, err := svc.Submit(context.Background(), caller, SubmitRatingRequest{StoreID: storeID, Score: 2, Comment: strPtr("changed mind")})
	require.NoError(t, err)

	// Same record, overwritten; never a second row for the pair.
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, 2, second.Score)
	require.Equal(t, "changed mind", *second.Comment)

	count, err := ratingRepo.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestSubmitConcurrentSamePair(t *testing.T) {
	svc, _, ratingRepo, storeID := newRatingFixture(t)
	caller := policy.Authenticated(1, model.RoleUser)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			_, err := svc.Submit(context.Background(), caller, SubmitRatingRequest{StoreID: storeID, Score: score})
			errs <- err
		}(1 + i%5)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	count, err := ratingRepo.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestSubmitDistinctUsersKeepDistinctRows(t *testing.T) {
	svc, _, ratingRepo, storeID := newRatingFixture(t)

	_, err := svc.Submit(context.Background(), policy.Authenticated(1, model.RoleUser), SubmitRatingRequest{StoreID: storeID, Score: 5})
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), policy.Authenticated(2, model.RoleUser), SubmitRatingRequest{StoreID: storeID, Score: 3})
	require.NoError(t, err)

	count, err := ratingRepo.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestSubmitRejectsOverlongComment(t *testing.T) {
	svc, _, _, storeID := newRatingFixture(t)
	caller := policy.Authenticated(1, model.RoleUser)

	long := make([]byte, 401)
	for i := range long {
		long[i] = 'a'
	}
	_, err := svc.Submit(context.Background(), caller, SubmitRatingRequest{StoreID: storeID, Score: 4, Comment: strPtr(string(long))})
	require.ErrorIs(t, err, common.ErrValidation)
}
