package vectors_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/hasbyte1/go-passlib-pbkdf2/hashing"
	"github.com/hasbyte1/go-passlib-pbkdf2/internal/vectors"
)

func TestPasswords(t *testing.T) {
	pw := vectors.Passwords()
	if len(pw) != 91 {
		t.Fatalf("len = %d, want 91", len(pw))
	}
	if pw[0] != "" || pw[1] != "a" || pw[3] != "abc" {
		t.Errorf("unexpected head: %q", pw[:4])
	}
	if pw[17] != "qrstuvwxyz012345" || pw[20] != "QRSTUVWXYZ012345" {
		t.Errorf("unexpected mixed-class entries: %q", pw[17:21])
	}
	prefixes := pw[21:]
	for i, p := range prefixes {
		if len(p) != i || !strings.HasPrefix(strings.Repeat("password", 10), p) {
			t.Errorf("prefix %d = %q", i, p)
		}
	}
}

// TestGenerate_Golden regenerates the pinned pbkdf2-sha256 vectors and
// compares the rendered output byte-for-byte.
func TestGenerate_Golden(t *testing.T) {
	h, err := hashing.NewDefaultPBKDF2Hasher(hashing.DriverPBKDF2SHA256)
	if err != nil {
		t.Fatal(err)
	}
	vs, err := vectors.Generate(context.Background(), h, []byte("saltsaltsaltsalt"), vectors.Passwords(), 4)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := vectors.Render(&buf, vs); err != nil {
		t.Fatal(err)
	}
	want, err := os.ReadFile(filepath.Join("testdata", "pbkdf2_sha256.golden"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Errorf("rendered vectors differ from golden file\n got:\n%s", buf.String())
	}
}

func TestGenerate_PreservesOrder(t *testing.T) {
	h, _ := hashing.NewPBKDF2Hasher(hashing.DriverPBKDF2SHA256,
		hashing.PBKDF2Options{Iterations: 1, SaltLen: 16, KeyLen: 32})
	pw := []string{"c", "b", "a", "", "zz"}
	vs, err := vectors.Generate(context.Background(), h, []byte("salt"), pw, 3)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range vs {
		if v.Password != pw[i] {
			t.Errorf("vs[%d].Password = %q, want %q", i, v.Password, pw[i])
		}
		want, _ := h.MakeWithSalt(pw[i], []byte("salt"))
		if v.Hash != want {
			t.Errorf("vs[%d].Hash = %q, want %q", i, v.Hash, want)
		}
	}
}

type failingMaker struct {
	calls atomic.Int32
}

var errBoom = errors.New("boom")

func (f *failingMaker) MakeWithSalt(password string, _ []byte) (string, error) {
	f.calls.Add(1)
	if password == "bad" {
		return "", errBoom
	}
	return "$ok", nil
}

func TestGenerate_PropagatesError(t *testing.T) {
	m := &failingMaker{}
	_, err := vectors.Generate(context.Background(), m, nil, []string{"a", "bad", "c"}, 1)
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected errBoom, got %v", err)
	}
}

func TestGenerate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := &failingMaker{}
	_, err := vectors.Generate(ctx, m, nil, []string{"a", "b"}, 2)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if n := m.calls.Load(); n != 0 {
		t.Errorf("maker called %d times after cancellation", n)
	}
}

func TestRender_QuotesStrings(t *testing.T) {
	var buf bytes.Buffer
	err := vectors.Render(&buf, []vectors.Vector{
		{Password: `a"b\c`, Hash: "$pbkdf2-sha256$1$$AA"},
	})
	if err != nil {
		t.Fatal(err)
	}
	want := `  {"a\"b\\c", "$pbkdf2-sha256$1$$AA"},` + "\n"
	if buf.String() != want {
		t.Errorf("Render = %q, want %q", buf.String(), want)
	}
}
