package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every env tag of Config.
const EnvPrefix = "VILARBUCKS_"

// loadDotenv exports variables from the given files into the process
// environment. Variables already set win, and missing files are skipped.
func loadDotenv(paths ...string) {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			panic(fmt.Errorf("load %s: %w", p, err))
		}
	}
}

// parseEnv overlays cfg with VILARBUCKS_* variables. Unset variables keep
// the current value.
func parseEnv(cfg *Config) {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		panic(fmt.Errorf("parse env: %w", err))
	}
}
