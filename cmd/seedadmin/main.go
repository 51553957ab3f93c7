package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	repo "github.com/ballothub/ballot/internal/adapters/repository/postgres"
	"github.com/ballothub/ballot/internal/config"
	"github.com/ballothub/ballot/internal/core/domain"
)

// Seeds the bootstrap administrator if no account with that username exists.
// The bootstrap admin is created verified so it can log in and approve the
// first batch of voters.
func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnvForMigrations()
	if err != nil {
		log.Fatal(err)
	}

	username := envOr("BALLOT_ADMIN_USERNAME", "admin")
	email := envOr("BALLOT_ADMIN_EMAIL", "admin@example.com")
	password := os.Getenv("BALLOT_ADMIN_PASSWORD")
	if password == "" {
		log.Fatal("BALLOT_ADMIN_PASSWORD is required")
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	ctx := context.Background()
	accounts := repo.NewAccountRepository(db)

	existing, err := accounts.GetByUsername(ctx, username)
	if err != nil {
		log.Fatal(err)
	}
	if existing != nil {
		log.Printf("administrator %q already exists", username)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}

	admin := &domain.Account{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Admin:        true,
		Verified:     true,
		CreatedAt:    time.Now(),
	}

	if err := accounts.Create(ctx, admin); err != nil {
		log.Fatal(err)
	}
	log.Printf("administrator %q created", username)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
