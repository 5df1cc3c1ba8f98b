// Package config loads application configuration from environment
// variables and builds the Redis client backing the credential store.
package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable; required ones are enforced by must() and
// abort startup when missing.
type Config struct {
	Env              string // application environment (e.g. "dev", "prod")
	Port             string // HTTP port to listen on
	JWTSecret        string // symmetric key for signing tokens
	TokenValidityMin int    // token validity in minutes
	BcryptCost       int    // bcrypt cost for password hashing
	SeedDomain       string // domain for the seeded root administrator email
	SeedPassword     string // initial password of the seeded root administrator
}

// Load reads configuration from the environment. Seed values have
// defaults so a bare dev environment can boot; everything else is
// required.
func Load() Config {
	return Config{
		Env:              must("APP_ENV"),
		Port:             must("APP_PORT"),
		JWTSecret:        must("JWT_SECRET"),
		TokenValidityMin: mustInt("TOKEN_VALIDITY_MIN"),
		BcryptCost:       mustInt("BCRYPT_COST"),
		SeedDomain:       getenv("SEED_DOMAIN", "gmail.com"),
		SeedPassword:     getenv("SEED_PASSWORD", "123456"),
	}
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the value to an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
