// Command pbkdf2vec prints PBKDF2 known-answer vectors as Go literals.
//
//	pbkdf2vec                         # built-in password list, pbkdf2-sha256
//	pbkdf2vec -digest pbkdf2-sha512 -password hunter2 -password ''
//
// Settings come from PBKDF2VEC_* environment variables (optionally in a
// .env file) and are overridden by flags. Vectors go to stdout, logs to
// stderr.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hasbyte1/go-passlib-pbkdf2/hashing"
	"github.com/hasbyte1/go-passlib-pbkdf2/internal/config"
	"github.com/hasbyte1/go-passlib-pbkdf2/internal/vectors"
)

func main() {
	log.Logger = newLogger(os.Stderr)
	if err := run(context.Background(), os.Args[1:], os.Stdout, log.Logger); err != nil {
		log.Fatal().Err(err).Msg("pbkdf2vec failed")
	}
}

type passwordList []string

func (p *passwordList) String() string { return strings.Join(*p, ",") }

func (p *passwordList) Set(v string) error {
	*p = append(*p, v)
	return nil
}

func newLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    !isTerminal(w),
	}).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func run(ctx context.Context, args []string, stdout io.Writer, logger zerolog.Logger) error {
	fs := flag.NewFlagSet("pbkdf2vec", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var (
		envFile    = fs.String("env", "", "env file to load instead of ./.env")
		digest     = fs.String("digest", "", "pbkdf2, pbkdf2-sha256 or pbkdf2-sha512")
		iterations = fs.Int("iterations", 0, "iteration count (default: digest's recommended rounds)")
		keyLen     = fs.Int("keylen", 0, "derived key length in bytes (default: digest size)")
		salt       = fs.String("salt", "", "salt in ab64 (default: ab64 of \"saltsaltsaltsalt\")")
		workers    = fs.Int("workers", 0, "concurrent hashing goroutines")
		level      = fs.String("log-level", "info", "zerolog level")
		passwords  passwordList
	)
	fs.Var(&passwords, "password", "password to hash; repeatable (default: built-in list)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("flags: %w", err)
	}

	lvl, err := zerolog.ParseLevel(*level)
	if err != nil {
		return fmt.Errorf("flags: -log-level: %w", err)
	}
	logger = logger.Level(lvl)

	var envFiles []string
	if *envFile != "" {
		envFiles = append(envFiles, *envFile)
	}
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	// A new digest resets iterations and key length to its own defaults.
	if set["digest"] {
		cfg.Driver = hashing.DriverName(*digest)
		defaults, err := hashing.DefaultPBKDF2Options(cfg.Driver)
		if err != nil {
			return fmt.Errorf("flags: -digest: %w", err)
		}
		cfg.Iterations, cfg.KeyLen = defaults.Iterations, defaults.KeyLen
	}
	if set["iterations"] {
		cfg.Iterations = *iterations
	}
	if set["keylen"] {
		cfg.KeyLen = *keyLen
	}
	if set["salt"] {
		if cfg.Salt, err = hashing.AB64Decode(*salt); err != nil {
			return fmt.Errorf("flags: -salt: %w", err)
		}
	}
	if set["workers"] {
		cfg.Workers = *workers
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("flags: %w", err)
	}

	h, err := hashing.NewPBKDF2Hasher(cfg.Driver, cfg.Options())
	if err != nil {
		return err
	}

	list := []string(passwords)
	if !set["password"] {
		list = vectors.Passwords()
	}

	logger.Info().
		Str("digest", string(cfg.Driver)).
		Int("iterations", cfg.Iterations).
		Int("key_len", cfg.KeyLen).
		Str("salt", hashing.AB64Encode(cfg.Salt)).
		Int("passwords", len(list)).
		Int("workers", cfg.Workers).
		Msg("generating vectors")

	start := time.Now()
	vs, err := vectors.Generate(ctx, h, cfg.Salt, list, cfg.Workers)
	if err != nil {
		return err
	}
	if err := vectors.Render(stdout, vs); err != nil {
		return fmt.Errorf("write vectors: %w", err)
	}

	logger.Debug().Dur("elapsed", time.Since(start)).Int("vectors", len(vs)).Msg("done")
	return nil
}
