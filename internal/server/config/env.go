package config

import (
	"os"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// dotEnvFile is loaded into the process environment when present.
var dotEnvFile = ".env"

// parseEnv overlays SMHOME_* environment variables onto config. Variables
// that are unset leave the current value untouched. A .env file in the
// working directory is loaded first without overriding real variables.
func parseEnv(config *Config) {
	if _, err := os.Stat(dotEnvFile); err == nil {
		if err := godotenv.Load(dotEnvFile); err != nil {
			panic(err)
		}
	}

	if err := env.Parse(config); err != nil {
		panic(err)
	}
}
