package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr         string
	FirestoreProject string
	CredentialsFile  string
	JWTSecret        string
	AdminEmail       string
	AdminPass        string
}

func Load() *Config {
	// Local development reads a .env file; deployed environments set real env vars.
	godotenv.Load()

	return &Config{
		HTTPAddr:         getEnv("VDT_ADDR", ":8080"),
		FirestoreProject: getEnv("VDT_FIRESTORE_PROJECT", "vdtcheck-dev"),
		CredentialsFile:  getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		JWTSecret:        getEnv("VDT_JWT_SECRET", "vdtcheck-dev-secret-change-me"),
		AdminEmail:       getEnv("VDT_ADMIN_EMAIL", "admin@vdtcheck.local"),
		AdminPass:        getEnv("VDT_ADMIN_PASS", "admin123"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
