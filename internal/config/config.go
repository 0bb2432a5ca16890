// Package config loads application configuration from environment
// variables into explicit structs. Nothing else in the codebase reads
// the environment directly; everything receives its settings from here.
package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds the core runtime settings. Each field maps to one
// environment variable; required ones are enforced by must() at startup
// so a misconfigured deployment fails fast instead of limping along.
type Config struct {
	Env            string // APP_ENV: dev, test or prod
	Port           string // APP_PORT: HTTP port to listen on
	DBUser         string // DB_USER
	DBPass         string // DB_PASS (empty allowed)
	DBHost         string // DB_HOST
	DBPort         string // DB_PORT
	DBName         string // DB_NAME
	JWTSecret      string // JWT_SECRET: HS256 signing secret
	AccessTTLMin   int    // ACCESS_TOKEN_TTL_MIN
	RefreshTTLDays int    // REFRESH_TOKEN_TTL_DAYS
	BcryptCost     int    // BCRYPT_COST
	RabbitURL      string // RABBITMQ_URL (empty disables event publishing)
}

// Load reads the environment and returns a Config. Missing required
// variables are fatal.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),
		RabbitURL:      os.Getenv("RABBITMQ_URL"),
	}
}

func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
