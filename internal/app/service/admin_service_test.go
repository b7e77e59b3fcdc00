package service

import (
	"context"
	"testing"

	"store_ratings/internal/common"
	"store_ratings/internal/domain/model"
	"store_ratings/internal/domain/policy"
	"store_ratings/internal/domain/repository"

	"github.com/stretchr/testify/require"
)

type adminFixture struct {
	svc        *AdminService
	stores     *StoreService
	userRepo   *fakeUserRepo
	storeRepo  *fakeStoreRepo
	ratingRepo *fakeRatingRepo
	admin      policy.Caller
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()
	userRepo := newFakeUserRepo()
	storeRepo := newFakeStoreRepo()
	ratingRepo := newFakeRatingRepo()

	admin := &model.User{Name: "Administrator Seed Account", Email: "admin@example.com", Role: model.RoleAdmin}
	require.NoError(t, userRepo.Create(context.Background(), admin))

	return &adminFixture{
		// nil stats cache: caching is skipped entirely in tests
		svc:        NewAdminService(userRepo, storeRepo, ratingRepo, nil),
		stores:     NewStoreService(storeRepo, ratingRepo, userRepo),
		userRepo:   userRepo,
		storeRepo:  storeRepo,
		ratingRepo: ratingRepo,
		admin:      policy.Authenticated(admin.ID, admin.Role),
	}
}

func TestStatsAdminOnly(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	_, err := f.svc.Stats(ctx, policy.Anonymous())
	require.ErrorIs(t, err, common.ErrUnauthorized)

	_, err = f.svc.Stats(ctx, policy.Authenticated(5, model.RoleOwner))
	require.ErrorIs(t, err, common.ErrForbidden)
}

func TestStatsCounts(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	owner := &model.User{Name: "Owner Seed Account Holder", Email: "owner@example.com", Role: model.RoleOwner}
	require.NoError(t, f.userRepo.Create(ctx, owner))

	store, err := f.stores.CreateStore(ctx, f.admin, CreateStoreRequest{Name: "Bluebird Market", Address: "123 Main Street"})
	require.NoError(t, err)
	_, err = f.ratingRepo.Upsert(ctx, owner.ID, store.ID, 4, nil)
	require.NoError(t, err)

	stats, err := f.svc.Stats(ctx, f.admin)
	require.NoError(t, err)
	require.Equal(t, &GlobalStats{Users: 2, Stores: 1, Ratings: 1}, stats)
}

func TestListUsersFiltersAndSorts(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	owner := &model.User{Name: "Owner Seed Account Holder", Email: "owner@example.com", Role: model.RoleOwner}
	require.NoError(t, f.userRepo.Create(ctx, owner))

	users, err := f.svc.ListUsers(ctx, f.admin, repository.UserListFilter{Role: model.RoleOwner})
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, "owner@example.com", users[0].Email)

	_, err = f.svc.ListUsers(ctx, f.admin, repository.UserListFilter{Role: "SUPERUSER"})
	require.ErrorIs(t, err, common.ErrBadRequest)

	_, err = f.svc.ListUsers(ctx, policy.Authenticated(9, model.RoleUser), repository.UserListFilter{})
	require.ErrorIs(t, err, common.ErrForbidden)
}

func TestGetUserDetailOwnerAverage(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	owner := &model.User{Name: "Owner Seed Account Holder", Email: "owner@example.com", Role: model.RoleOwner}
	require.NoError(t, f.userRepo.Create(ctx, owner))

	s1, err := f.stores.CreateStore(ctx, f.admin, CreateStoreRequest{Name: "Bluebird Market", Address: "123 Main Street", OwnerID: &owner.ID})
	require.NoError(t, err)
	s2, err := f.stores.CreateStore(ctx, f.admin, CreateStoreRequest{Name: "Sunset Grocers", Address: "45 Sunset Blvd", OwnerID: &owner.ID})
	require.NoError(t, err)

	_, err = f.ratingRepo.Upsert(ctx, 10, s1.ID, 4, nil)
	require.NoError(t, err)
	_, err = f.ratingRepo.Upsert(ctx, 10, s2.ID, 5, nil)
	require.NoError(t, err)

	detail, err := f.svc.GetUserDetail(ctx, f.admin, owner.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.OwnerAverage)
	require.Equal(t, 4.50, *detail.OwnerAverage)
	require.Empty(t, detail.User.HashedPassword)

	// Non-owner users carry no owner average.
	adminDetail, err := f.svc.GetUserDetail(ctx, f.admin, 1)
	require.NoError(t, err)
	require.Nil(t, adminDetail.OwnerAverage)

	_, err = f.svc.GetUserDetail(ctx, f.admin, 9999)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestAdminCreateUser(t *testing.T) {
	f := newAdminFixture(t)
	ctx := context.Background()

	created, err := f.svc.CreateUser(ctx, f.admin, CreateUserRequest{
		Name:     "Another Store Owner Person",
		Email:    "owner2@example.com",
		Password: "Owner#123",
		Role:     model.RoleOwner,
	})
	require.NoError(t, err)
	require.Equal(t, model.RoleOwner, created.Role)
	require.Empty(t, created.HashedPassword)

	_, err = f.svc.CreateUser(ctx, f.admin, CreateUserRequest{
		Name:     "Another Store Owner Person",
		Email:    "owner3@example.com",
		Password: "Owner#123",
		Role:     "SUPERUSER",
	})
	require.ErrorIs(t, err, common.ErrBadRequest)

	_, err = f.svc.CreateUser(ctx, policy.Authenticated(9, model.RoleOwner), CreateUserRequest{
		Name:     "Another Store Owner Person",
		Email:    "owner4@example.com",
		Password: "Owner#123",
		Role:     model.RoleUser,
	})
	require.ErrorIs(t, err, common.ErrForbidden)
}
