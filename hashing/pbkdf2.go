package hashing

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

// ──────────────────────────────────────────────────────────────────────────────
// Options
// ──────────────────────────────────────────────────────────────────────────────

const (
	// RecommendedRoundsSHA1 is the default iteration count for [DriverPBKDF2SHA1].
	RecommendedRoundsSHA1 = 131000

	// RecommendedRoundsSHA256 is the default iteration count for [DriverPBKDF2SHA256].
	RecommendedRoundsSHA256 = 29000

	// RecommendedRoundsSHA512 is the default iteration count for [DriverPBKDF2SHA512].
	RecommendedRoundsSHA512 = 25000

	// DefaultSaltLen is the default random salt length in bytes.
	DefaultSaltLen = 16

	// MinIterations is the smallest iteration count accepted anywhere.
	MinIterations = 1

	// MaxIterations caps iteration counts at the 32-bit signed integer limit.
	MaxIterations = 0x7fffffff
)

// PBKDF2Options configures a [PBKDF2Hasher].
//
// Iterations and salt are encoded in every hash string, so changing them
// only affects newly produced hashes.
type PBKDF2Options struct {
	// Iterations is the PBKDF2 iteration count.
	// Valid range: [MinIterations, MaxIterations].
	Iterations int

	// SaltLen is the length of the random salt in bytes.
	// Default: [DefaultSaltLen] (16).
	SaltLen int

	// KeyLen is the length of the derived key in bytes.
	// Default: the digest size (20, 32 or 64).
	KeyLen int
}

// DefaultPBKDF2Options returns the passlib defaults for driver: its
// recommended rounds, a 16-byte salt and a digest-sized key.
func DefaultPBKDF2Options(driver DriverName) (PBKDF2Options, error) {
	d, ok := digests[driver]
	if !ok {
		return PBKDF2Options{}, fmt.Errorf("%w: unknown pbkdf2 driver %q", ErrAlgorithmMismatch, driver)
	}
	return PBKDF2Options{
		Iterations: d.recommendedRounds,
		SaltLen:    DefaultSaltLen,
		KeyLen:     d.size,
	}, nil
}

func validateParams(iterations, keyLen int) error {
	if iterations < MinIterations || iterations > MaxIterations {
		return fmt.Errorf("%w: pbkdf2 iterations must be in [%d, %d], got %d",
			ErrInvalidOption, MinIterations, MaxIterations, iterations)
	}
	if keyLen < 1 {
		return fmt.Errorf("%w: pbkdf2 key_len must be ≥ 1, got %d", ErrInvalidOption, keyLen)
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Primitive
// ──────────────────────────────────────────────────────────────────────────────

// Key derives keyLen bytes from password and salt with PBKDF2, using HMAC
// over driver's digest as the pseudorandom function (RFC 8018 §5.2).
//
// Empty passwords and salts are valid. The output depends only on the
// arguments.
func Key(driver DriverName, password, salt []byte, iterations, keyLen int) ([]byte, error) {
	d, ok := digests[driver]
	if !ok {
		return nil, fmt.Errorf("%w: unknown pbkdf2 driver %q", ErrAlgorithmMismatch, driver)
	}
	if err := validateParams(iterations, keyLen); err != nil {
		return nil, err
	}
	return pbkdf2.Key(password, salt, iterations, keyLen, d.newHash), nil
}

// randomSalt returns n cryptographically random bytes.
func randomSalt(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return nil, fmt.Errorf("hashing: pbkdf2: failed to generate salt: %w", err)
	}
	return b, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// PBKDF2Hasher
// ──────────────────────────────────────────────────────────────────────────────

// PBKDF2Hasher hashes passwords with PBKDF2 and stores them in the modular
// crypt format used by Python's passlib:
//
//	$pbkdf2-sha256$29000$<ab64-salt>$<ab64-key>
//
// Hashes produced here verify under passlib and vice versa.
//
// # Thread safety
//
// PBKDF2Hasher is immutable after construction and safe for concurrent use.
type PBKDF2Hasher struct {
	driver DriverName
	opts   PBKDF2Options
}

// NewPBKDF2Hasher constructs a PBKDF2Hasher for driver with the given
// options. Use [DefaultPBKDF2Options] for the recommended defaults.
func NewPBKDF2Hasher(driver DriverName, opts PBKDF2Options) (*PBKDF2Hasher, error) {
	if _, ok := digests[driver]; !ok {
		return nil, fmt.Errorf("%w: unknown pbkdf2 driver %q", ErrAlgorithmMismatch, driver)
	}
	if err := validateParams(opts.Iterations, opts.KeyLen); err != nil {
		return nil, err
	}
	if opts.SaltLen < 0 {
		return nil, fmt.Errorf("%w: pbkdf2 salt_len must be ≥ 0, got %d", ErrInvalidOption, opts.SaltLen)
	}
	return &PBKDF2Hasher{driver: driver, opts: opts}, nil
}

// NewDefaultPBKDF2Hasher returns a hasher for driver with [DefaultPBKDF2Options].
func NewDefaultPBKDF2Hasher(driver DriverName) (*PBKDF2Hasher, error) {
	opts, err := DefaultPBKDF2Options(driver)
	if err != nil {
		return nil, err
	}
	return NewPBKDF2Hasher(driver, opts)
}

// Driver returns the digest this hasher was built for.
func (h *PBKDF2Hasher) Driver() DriverName { return h.driver }

// Options returns the configured parameter set.
func (h *PBKDF2Hasher) Options() PBKDF2Options { return h.opts }

// Make hashes password with a fresh random salt of the configured length.
func (h *PBKDF2Hasher) Make(password string) (string, error) {
	salt, err := randomSalt(h.opts.SaltLen)
	if err != nil {
		return "", err
	}
	return h.MakeWithSalt(password, salt)
}

// MakeWithSalt hashes password with a caller-supplied salt. The result is
// deterministic, which makes it suitable for pinned test vectors; use
// [PBKDF2Hasher.Make] for stored credentials.
func (h *PBKDF2Hasher) MakeWithSalt(password string, salt []byte) (string, error) {
	key, err := Key(h.driver, []byte(password), salt, h.opts.Iterations, h.opts.KeyLen)
	if err != nil {
		return "", err
	}
	return Encode(h.driver, h.opts.Iterations, salt, key), nil
}

// Check verifies that password matches hash. The iteration count, salt and
// key length are read from the hash itself, so verification keeps working
// after the hasher's options change.
func (h *PBKDF2Hasher) Check(password, hash string) (bool, error) {
	d, err := h.decode(hash)
	if err != nil {
		return false, err
	}
	computed, err := Key(d.Driver, []byte(password), d.Salt, d.Iterations, len(d.Key))
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(computed, d.Key) == 1, nil
}

// Info parses hash and returns the encoded parameters.
//
// Returned [HashInfo].Params:
//   - "iterations" → int
//   - "salt_len"   → int
//   - "key_len"    → int
func (h *PBKDF2Hasher) Info(hash string) (HashInfo, error) {
	d, err := h.decode(hash)
	if err != nil {
		return HashInfo{}, err
	}
	return HashInfo{
		Driver: d.Driver,
		Params: map[string]any{
			"iterations": d.Iterations,
			"salt_len":   len(d.Salt),
			"key_len":    len(d.Key),
		},
	}, nil
}

func (h *PBKDF2Hasher) decode(hash string) (*Decoded, error) {
	d, err := Decode(hash)
	if err != nil {
		return nil, err
	}
	if d.Driver != h.driver {
		return nil, fmt.Errorf("%w: hash is %s, not %s", ErrAlgorithmMismatch, d.Driver, h.driver)
	}
	return d, nil
}
