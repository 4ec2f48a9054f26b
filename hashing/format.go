package hashing

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// ab64 is passlib's "adapted base64": the standard alphabet with "+"
// replaced by "." and no "=" padding. Strict mode rejects non-zero trailing
// bits so every salt or key has exactly one textual form.
var ab64 = base64.NewEncoding(
	"ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789./",
).WithPadding(base64.NoPadding).Strict()

// AB64Encode encodes src with the ab64 alphabet used in modular crypt hashes.
func AB64Encode(src []byte) string {
	return ab64.EncodeToString(src)
}

// AB64Decode decodes an ab64 string. Any character outside the alphabet,
// including "+", "=" and line breaks, yields [ErrInvalidHash].
func AB64Decode(src string) ([]byte, error) {
	// encoding/base64 silently skips CR and LF.
	if strings.ContainsAny(src, "\r\n") {
		return nil, fmt.Errorf("%w: line break in ab64 data", ErrInvalidHash)
	}
	b, err := ab64.DecodeString(src)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid ab64: %v", ErrInvalidHash, err)
	}
	return b, nil
}

// Decoded holds the components of a parsed PBKDF2 modular crypt string.
type Decoded struct {
	Driver     DriverName
	Iterations int
	Salt       []byte
	Key        []byte
}

// Encode serialises a derived key in passlib's modular crypt format:
//
//	$pbkdf2-sha256$29000$<ab64-salt>$<ab64-key>
//
// Encode does not validate its arguments; [Decode] rejects anything it
// would not round-trip.
func Encode(driver DriverName, iterations int, salt, key []byte) string {
	return fmt.Sprintf("$%s$%d$%s$%s",
		string(driver),
		iterations,
		AB64Encode(salt),
		AB64Encode(key),
	)
}

// Decode parses a PBKDF2 modular crypt string and returns its components.
// For every valid driver, iteration count, salt and non-empty key,
// Decode(Encode(d, i, s, k)) returns (d, i, s, k) unchanged.
//
// Expected format (5 dollar-delimited segments, first is empty):
//
//	$<driver>$<iterations>$<salt>$<key>
func Decode(encoded string) (*Decoded, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 5 || parts[0] != "" {
		return nil, fmt.Errorf("%w: expected 4-segment modular crypt string, got %d segments",
			ErrInvalidHash, len(parts)-1)
	}

	driver := DriverName(parts[1])
	if _, ok := digests[driver]; !ok {
		return nil, fmt.Errorf("%w: unknown pbkdf2 identifier %q", ErrInvalidHash, parts[1])
	}

	iterations, err := parseIterations(parts[2])
	if err != nil {
		return nil, err
	}

	salt, err := AB64Decode(parts[3])
	if err != nil {
		return nil, fmt.Errorf("salt: %w", err)
	}

	key, err := AB64Decode(parts[4])
	if err != nil {
		return nil, fmt.Errorf("key: %w", err)
	}
	if len(key) == 0 {
		return nil, fmt.Errorf("%w: empty derived key", ErrInvalidHash)
	}

	return &Decoded{
		Driver:     driver,
		Iterations: iterations,
		Salt:       salt,
		Key:        key,
	}, nil
}

// parseIterations accepts only the canonical decimal form produced by Encode.
func parseIterations(s string) (int, error) {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return 0, fmt.Errorf("%w: non-canonical iteration count %q", ErrInvalidHash, s)
	}
	n, err := strconv.ParseUint(s, 10, 31)
	if err != nil {
		return 0, fmt.Errorf("%w: iteration count %q: %v", ErrInvalidHash, s, err)
	}
	if n < MinIterations {
		return 0, fmt.Errorf("%w: iteration count must be ≥ %d, got %d", ErrInvalidHash, MinIterations, n)
	}
	return int(n), nil
}
