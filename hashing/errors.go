package hashing

import "errors"

// Sentinel errors returned by hashing operations.
//
// Use [errors.Is] for comparisons:
//
//	d, err := hashing.Decode(stored)
//	if errors.Is(err, hashing.ErrInvalidHash) {
//	    // hash string is malformed
//	}
var (
	// ErrInvalidHash is returned when a hash string cannot be parsed because
	// it has the wrong prefix, the wrong number of fields, a non-canonical
	// iteration count, or characters outside the ab64 alphabet.
	ErrInvalidHash = errors.New("hashing: invalid or unrecognised hash string")

	// ErrInvalidOption is returned when a derivation parameter falls outside
	// the allowed range (e.g., zero iterations or a zero-length key).
	ErrInvalidOption = errors.New("hashing: invalid option value")

	// ErrAlgorithmMismatch is returned when a hash string was produced with a
	// different digest than the one implemented by the hasher, or when a
	// driver name does not identify a known PBKDF2 digest.
	ErrAlgorithmMismatch = errors.New("hashing: hash was produced by a different algorithm")
)
