// Package config loads pbkdf2vec settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/hasbyte1/go-passlib-pbkdf2/hashing"
)

// Environment variable names.
const (
	EnvDigest     = "PBKDF2VEC_DIGEST"
	EnvIterations = "PBKDF2VEC_ITERATIONS"
	EnvKeyLen     = "PBKDF2VEC_KEY_LEN"
	EnvSalt       = "PBKDF2VEC_SALT"
	EnvWorkers    = "PBKDF2VEC_WORKERS"
)

// DefaultSalt is the fixed salt used when none is configured. Pinned vectors
// need a stable salt; never use a fixed salt for real credentials.
var DefaultSalt = []byte("saltsaltsaltsalt")

// DefaultWorkers bounds concurrent hashing when PBKDF2VEC_WORKERS is unset.
const DefaultWorkers = 4

// Config centralises generator settings.
type Config struct {
	Driver     hashing.DriverName
	Iterations int
	KeyLen     int
	Salt       []byte
	Workers    int
}

// Load reads the listed .env files (or ./.env when none are given and it
// exists), then the PBKDF2VEC_* variables, and applies the digest's
// defaults for anything unset. Variables already in the process
// environment take precedence over .env entries.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		// A missing ./.env is fine; a broken one is not.
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load .env: %w", err)
		}
	} else if err := godotenv.Load(envFiles...); err != nil {
		return nil, fmt.Errorf("config: load env file: %w", err)
	}

	cfg := &Config{
		Driver: hashing.DriverName(strings.TrimSpace(getEnv(EnvDigest, string(hashing.DriverPBKDF2SHA256)))),
	}

	defaults, err := hashing.DefaultPBKDF2Options(cfg.Driver)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", EnvDigest, err)
	}

	if cfg.Iterations, err = parseIntEnv(EnvIterations, defaults.Iterations); err != nil {
		return nil, err
	}
	if cfg.KeyLen, err = parseIntEnv(EnvKeyLen, defaults.KeyLen); err != nil {
		return nil, err
	}
	if cfg.Workers, err = parseIntEnv(EnvWorkers, DefaultWorkers); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.Salt = DefaultSalt
	if s := strings.TrimSpace(getEnv(EnvSalt, "")); s != "" {
		if cfg.Salt, err = hashing.AB64Decode(s); err != nil {
			return nil, fmt.Errorf("config: %s: %w", EnvSalt, err)
		}
	}

	return cfg, nil
}

// Validate checks settings that the hasher does not check itself. Call it
// again after overriding fields.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("config: workers must be ≥ 1, got %d", c.Workers)
	}
	return nil
}

// Options returns the hasher options described by c. SaltLen reflects the
// configured salt, since vectors are always made with it.
func (c *Config) Options() hashing.PBKDF2Options {
	return hashing.PBKDF2Options{
		Iterations: c.Iterations,
		SaltLen:    len(c.Salt),
		KeyLen:     c.KeyLen,
	}
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return def
}

func parseIntEnv(key string, def int) (int, error) {
	val := strings.TrimSpace(getEnv(key, ""))
	if val == "" {
		return def, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("config: %s: invalid integer %q", key, val)
	}
	return n, nil
}
