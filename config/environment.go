package config

import "github.com/kelseyhightower/envconfig"

type Environment struct {
	Port           string   `envconfig:"PORT" default:"8080"`
	DBURL          string   `envconfig:"DB_URL"`
	SQLitePath     string   `envconfig:"SQLITE_PATH" default:"flashcards.db"`
	JWTSecret      string   `envconfig:"JWT_SECRET_KEY"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

var Env Environment

// Load populates Env from the process environment.
func Load() error {
	return envconfig.Process("", &Env)
}
