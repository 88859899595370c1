// Package config loads all runtime configuration in one place.
//
// The Config struct is built once in main and passed down explicitly —
// no package-level globals, no os.Getenv calls scattered through handlers.
// A .env file is supported for local development (godotenv); real
// deployments set plain environment variables.
package config

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

// GitHubConfig holds the OAuth app credentials.
// Register an OAuth App at https://github.com/settings/developers to get them.
type GitHubConfig struct {
	ClientID     string
	ClientSecret string
}

type Config struct {
	Port        string
	DatabaseURL string
	Environment string
	// FrontendURL is the base URL the OAuth callback redirects back to,
	// with either ?githubId= or ?error= appended.
	FrontendURL string
	GitHub      GitHubConfig
	Cors        cors.Options
}

// Load reads configuration from the environment, with an optional .env file.
// Missing GitHub credentials are not fatal here — the server still starts
// and the login routes report the misconfiguration — so Load never errors.
func Load() Config {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no", envFile, "file found, using environment only")
	}

	return Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		Environment: getEnv("ENV", "development"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),
		GitHub: GitHubConfig{
			ClientID:     getEnv("GITHUB_CLIENT_ID", ""),
			ClientSecret: getEnv("GITHUB_CLIENT_SECRET", ""),
		},
		Cors: corsOptions(),
	}
}

// getEnv returns the env value by key or the fallback.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func corsOptions() cors.Options {
	return cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}
}
