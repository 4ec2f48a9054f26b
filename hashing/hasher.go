package hashing

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"
	"strings"
)

// DriverName identifies a PBKDF2 digest. Its value is the identifier that
// appears between the first two "$" separators of an encoded hash.
type DriverName string

const (
	// DriverPBKDF2SHA1 selects PBKDF2-HMAC-SHA1 ("$pbkdf2$").
	//
	// SHA-1 is kept for verifying legacy hashes only; do not use it for new
	// applications.
	DriverPBKDF2SHA1 DriverName = "pbkdf2"
	// DriverPBKDF2SHA256 selects PBKDF2-HMAC-SHA256 ("$pbkdf2-sha256$").
	DriverPBKDF2SHA256 DriverName = "pbkdf2-sha256"
	// DriverPBKDF2SHA512 selects PBKDF2-HMAC-SHA512 ("$pbkdf2-sha512$").
	DriverPBKDF2SHA512 DriverName = "pbkdf2-sha512"
)

// Hasher is the interface satisfied by password-hashing drivers.
//
// All implementations must be safe for concurrent use by multiple goroutines.
type Hasher interface {
	// Make hashes a plaintext password and returns the encoded hash string.
	// A fresh cryptographic salt is generated for every call, so two calls
	// with the same password will produce different outputs.
	Make(password string) (string, error)

	// Check verifies that password matches the previously encoded hash.
	// Returns (true, nil) on match, (false, nil) on mismatch, or
	// (false, err) if the hash is structurally invalid.
	//
	// Comparison is performed in constant time.
	Check(password, hash string) (bool, error)

	// Info extracts metadata from an encoded hash string without verifying it.
	Info(hash string) (HashInfo, error)

	// Driver returns the DriverName implemented by this hasher.
	Driver() DriverName
}

// HashInfo carries metadata parsed from an encoded hash string.
type HashInfo struct {
	// Driver is the digest that produced the hash.
	Driver DriverName

	// Params holds the derivation parameters extracted from the hash string:
	//
	//   "iterations" → int
	//   "salt_len"   → int (bytes)
	//   "key_len"    → int (bytes)
	Params map[string]any
}

type digest struct {
	newHash           func() hash.Hash
	size              int
	recommendedRounds int
}

var digests = map[DriverName]digest{
	DriverPBKDF2SHA1:   {newHash: sha1.New, size: sha1.Size, recommendedRounds: RecommendedRoundsSHA1},
	DriverPBKDF2SHA256: {newHash: sha256.New, size: sha256.Size, recommendedRounds: RecommendedRoundsSHA256},
	DriverPBKDF2SHA512: {newHash: sha512.New, size: sha512.Size, recommendedRounds: RecommendedRoundsSHA512},
}

// Drivers returns every supported driver, strongest digest first.
func Drivers() []DriverName {
	return []DriverName{DriverPBKDF2SHA512, DriverPBKDF2SHA256, DriverPBKDF2SHA1}
}

// DetectDriver inspects a hash string and returns the [DriverName] that
// produced it. It only looks at the identifier field and does not validate
// the rest of the string.
//
// The second return value is false when the identifier is not recognised.
func DetectDriver(hash string) (DriverName, bool) {
	if !strings.HasPrefix(hash, "$") {
		return "", false
	}
	ident, _, ok := strings.Cut(hash[1:], "$")
	if !ok {
		return "", false
	}
	name := DriverName(ident)
	if _, known := digests[name]; !known {
		return "", false
	}
	return name, true
}
