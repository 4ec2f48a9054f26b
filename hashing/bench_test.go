package hashing_test

import (
	"testing"

	"github.com/hasbyte1/go-passlib-pbkdf2/hashing"
)

// ──────────────────────────────────────────────────────────────────────────────
// PBKDF2 benchmarks
// ──────────────────────────────────────────────────────────────────────────────
//
// Note: the recommended round counts are intentionally slow. The Fast
// variants measure encoding and framework overhead only.

func BenchmarkPBKDF2SHA256_Default_Make(b *testing.B) {
	h, _ := hashing.NewDefaultPBKDF2Hasher(hashing.DriverPBKDF2SHA256)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = h.Make("bench-password")
	}
}

func BenchmarkPBKDF2SHA256_Default_Check(b *testing.B) {
	h, _ := hashing.NewDefaultPBKDF2Hasher(hashing.DriverPBKDF2SHA256)
	hash, _ := h.Make("bench-password")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = h.Check("bench-password", hash)
	}
}

func BenchmarkPBKDF2SHA512_Default_Make(b *testing.B) {
	h, _ := hashing.NewDefaultPBKDF2Hasher(hashing.DriverPBKDF2SHA512)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = h.Make("bench-password")
	}
}

func BenchmarkPBKDF2SHA256_Fast_Make(b *testing.B) {
	h := newTestPBKDF2Hasher(b, hashing.DriverPBKDF2SHA256)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = h.Make("bench-password")
	}
}

func BenchmarkDecode(b *testing.B) {
	const hash = "$pbkdf2-sha256$29000$c2FsdHNhbHRzYWx0c2FsdA$qf6JmBhsasInHxjHlNWEJ9CPSeaJGms3UvYb25GLxTc"
	for i := 0; i < b.N; i++ {
		_, _ = hashing.Decode(hash)
	}
}
