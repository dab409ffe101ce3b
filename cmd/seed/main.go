package main

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"stallfinder/internal/config"
	"stallfinder/internal/db"
	"stallfinder/internal/logger"
	"stallfinder/internal/model"
	"stallfinder/internal/repository"
)

// Seeds a few demo owners, customers and stalls for local development.
// Every seeded account uses the password "password123".
func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Stall{},
		&model.MenuItem{},
		&model.Review{},
	); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	userRepo := repository.NewUserRepository(gormDB)
	stallRepo := repository.NewStallRepository(gormDB)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), 10)
	if err != nil {
		log.Fatal().Err(err).Msg("hash seed password")
	}

	owners := []model.User{
		{Email: "mei@example.com", FullName: "Mei Lin", PasswordHash: string(hash), Role: model.RoleOwner},
		{Email: "arjun@example.com", FullName: "Arjun Nair", PasswordHash: string(hash), Role: model.RoleOwner},
	}
	customers := []model.User{
		{Email: "sam@example.com", FullName: "Sam Carter", PasswordHash: string(hash), Role: model.RoleCustomer},
	}

	for i := range owners {
		if err := userRepo.Create(ctx, &owners[i]); err != nil {
			log.Fatal().Err(err).Str("email", owners[i].Email).Msg("seed owner")
		}
	}
	for i := range customers {
		if err := userRepo.Create(ctx, &customers[i]); err != nil {
			log.Fatal().Err(err).Str("email", customers[i].Email).Msg("seed customer")
		}
	}

	stalls := []model.Stall{
		{
			OwnerID:     owners[0].ID,
			Name:        "Mei's Noodle Cart",
			Description: "Hand-pulled noodles, open late.",
			Location:    model.Location{Latitude: 1.2839, Longitude: 103.8436, Address: "18 Raffles Quay"},
		},
		{
			OwnerID:     owners[0].ID,
			Name:        "Dumpling Corner",
			Description: "Steamed and fried dumplings.",
			Location:    model.Location{Latitude: 1.3048, Longitude: 103.8318, Address: "2 Orchard Turn"},
		},
		{
			OwnerID:     owners[1].ID,
			Name:        "Arjun's Dosa Stand",
			Description: "Crispy dosas with fresh chutney.",
			Location:    model.Location{Latitude: 1.3061, Longitude: 103.8518, Address: "48 Serangoon Road"},
		},
	}

	for i := range stalls {
		if err := stallRepo.Create(ctx, &stalls[i]); err != nil {
			log.Fatal().Err(err).Str("name", stalls[i].Name).Msg("seed stall")
		}
	}

	log.Info().Int("users", len(owners)+len(customers)).Int("stalls", len(stalls)).Msg("seed completed")
}
