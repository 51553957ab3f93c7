// Package config collects every environment-driven setting into one struct
// built at startup. Nothing in the core reads the environment; the flags
// (identity verification included) are passed into constructors explicitly.
package config

import (
	"fmt"
	"os"
)

type Config struct {
	Addr         string
	DatabaseURL  string
	ArtifactRoot string
	SessionKey   []byte
	// RequireIDVerification gates document validation at registration and
	// the verified-before-login / verified-before-vote rules.
	RequireIDVerification bool
}

func FromEnv() (Config, error) {
	cfg := Config{
		Addr:                  getenv("BALLOT_ADDR", "0.0.0.0:8080"),
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		ArtifactRoot:          getenv("BALLOT_ARTIFACT_DIR", "data/artifacts"),
		SessionKey:            []byte(os.Getenv("BALLOT_SESSION_KEY")),
		RequireIDVerification: getenv("BALLOT_REQUIRE_ID_VERIFICATION", "true") == "true",
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = connStringFromParts()
	}
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL (or DB_HOST/DB_USER/DB_PASSWORD/DB_NAME) is required")
	}
	if len(cfg.SessionKey) == 0 {
		return Config{}, fmt.Errorf("BALLOT_SESSION_KEY is required")
	}

	return cfg, nil
}

// FromEnvForMigrations builds a config for the migration and seed commands,
// which need the database settings only.
func FromEnvForMigrations() (Config, error) {
	cfg := Config{DatabaseURL: os.Getenv("DATABASE_URL")}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = connStringFromParts()
	}
	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL (or DB_HOST/DB_USER/DB_PASSWORD/DB_NAME) is required")
	}
	return cfg, nil
}

func connStringFromParts() string {
	host := os.Getenv("DB_HOST")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	name := os.Getenv("DB_NAME")
	if host == "" || user == "" || name == "" {
		return ""
	}
	port := getenv("DB_PORT", "5432")
	sslmode := getenv("DB_SSLMODE", "disable")
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, name, sslmode)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
