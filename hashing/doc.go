// Package hashing derives PBKDF2 password hashes and stores them in the
// modular crypt format used by Python's passlib.
//
// # Architecture
//
// [Key] is the raw primitive: PBKDF2 (RFC 8018) with HMAC-SHA1, HMAC-SHA256
// or HMAC-SHA512 as the pseudorandom function. [Encode] and [Decode] convert
// between a derived key and its string form. [PBKDF2Hasher] ties the two
// together behind the [Hasher] interface and handles salt generation and
// constant-time verification.
//
// # Quick start
//
//	h, err := hashing.NewDefaultPBKDF2Hasher(hashing.DriverPBKDF2SHA256)
//	if err != nil { log.Fatal(err) }
//
//	hash, _ := h.Make("my-secret-password")
//	ok, _ := h.Check("my-secret-password", hash) // true
//
// # Hash format
//
//	$pbkdf2-sha256$29000$<ab64-salt>$<ab64-key>
//
// The identifier is "pbkdf2" for SHA-1, "pbkdf2-sha256" or "pbkdf2-sha512".
// Salt and key use ab64: standard base64 with "+" written as "." and no
// "=" padding. Iteration count and salt travel inside the string, so no
// external configuration is needed to verify a stored hash.
//
// # Defaults
//
//   - pbkdf2-sha256: 29000 iterations, 16-byte salt, 32-byte key.
//   - pbkdf2-sha512: 25000 iterations, 16-byte salt, 64-byte key.
//   - pbkdf2 (SHA-1): 131000 iterations, 16-byte salt, 20-byte key. Legacy only.
package hashing
