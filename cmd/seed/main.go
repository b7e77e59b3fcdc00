package main

import (
	"context"
	"errors"
	"log"
	"store_ratings/internal/app/service"
	"store_ratings/internal/common"
	"store_ratings/internal/common/security"
	"store_ratings/internal/domain/model"
	"store_ratings/internal/domain/policy"
	"store_ratings/internal/domain/repository"
	"store_ratings/internal/platform/config"
	"store_ratings/internal/platform/database"
)

// Seeds a default admin, owner and user account plus two demo stores with
// ratings. Safe to run repeatedly.
func main() {
	config.Load()
	database.Connect()
	defer database.Close()

	ctx := context.Background()
	if err := database.Migrate(ctx, database.DB); err != nil {
		log.Fatalf("Could not apply schema: %v", err)
	}

	userRepo := repository.NewPgUserRepository(database.DB)
	storeRepo := repository.NewPgStoreRepository(database.DB)
	ratingRepo := repository.NewPgRatingRepository(database.DB)
	storeService := service.NewStoreService(storeRepo, ratingRepo, userRepo)

	admin := ensureUser(ctx, userRepo, "System Administrator Default", "admin@example.com", "HQ", "Admin@123", model.RoleAdmin)
	owner := ensureUser(ctx, userRepo, "Default Store Owner Account", "owner@example.com", "Owner Address", "Owner@123", model.RoleOwner)
	user := ensureUser(ctx, userRepo, "Normal User Seed Account", "user@example.com", "User Address", "User@123", model.RoleUser)

	adminCaller := policy.Authenticated(admin.ID, admin.Role)
	store1 := ensureStore(ctx, storeRepo, storeService, adminCaller, "Bluebird Market", "123 Main Street", owner.ID)
	store2 := ensureStore(ctx, storeRepo, storeService, adminCaller, "Sunset Grocers", "45 Sunset Blvd", owner.ID)

	seedRating(ctx, ratingRepo, user.ID, store1.ID, 4, "Nice selection")
	seedRating(ctx, ratingRepo, user.ID, store2.ID, 5, "Great staff!")

	log.Println("Seed complete")
}

func ensureUser(ctx context.Context, users repository.UserRepository, name, email, address, password, role string) *model.User {
	existing, err := users.FindByEmail(ctx, email)
	if err == nil {
		return existing
	}
	if !errors.Is(err, common.ErrNotFound) {
		log.Fatalf("Could not look up %s: %v", email, err)
	}

	hashed, err := security.HashPassword(password)
	if err != nil {
		log.Fatalf("Could not hash password for %s: %v", email, err)
	}
	u := &model.User{Name: name, Email: email, Address: &address, HashedPassword: hashed, Role: role}
	if err := users.Create(ctx, u); err != nil {
		log.Fatalf("Could not create %s: %v", email, err)
	}
	return u
}

func ensureStore(ctx context.Context, stores repository.StoreRepository, svc *service.StoreService, caller policy.Caller, name, address string, ownerID int64) *model.Store {
	existing, err := stores.List(ctx, repository.StoreListFilter{Query: name})
	if err != nil {
		log.Fatalf("Could not look up store %q: %v", name, err)
	}
	for i := range existing {
		if existing[i].Name == name {
			return &existing[i]
		}
	}

	created, err := svc.CreateStore(ctx, caller, service.CreateStoreRequest{Name: name, Address: address, OwnerID: &ownerID})
	if err != nil {
		log.Fatalf("Could not create store %q: %v", name, err)
	}
	return created
}

func seedRating(ctx context.Context, ratings repository.RatingRepository, userID, storeID int64, score int, comment string) {
	if _, err := ratings.Upsert(ctx, userID, storeID, score, &comment); err != nil {
		log.Fatalf("Could not seed rating for store %d: %v", storeID, err)
	}
}
