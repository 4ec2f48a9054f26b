// Package vectors produces known-answer PBKDF2 hashes and renders them as
// Go composite literals for pasting into another project's test table.
package vectors

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/hasbyte1/go-passlib-pbkdf2/hashing"
)

// Vector is one password and its encoded hash.
type Vector struct {
	Password string
	Hash     string
}

// Maker is satisfied by [hashing.PBKDF2Hasher].
type Maker interface {
	MakeWithSalt(password string, salt []byte) (string, error)
}

var _ Maker = (*hashing.PBKDF2Hasher)(nil)

// Passwords returns the standard input list: the empty string, growing
// prefixes of the alphabet, a few mixed-class strings, and the first 70
// prefixes of "password" repeated.
func Passwords() []string {
	pw := []string{""}
	const alpha = "abcdefghijklmnop"
	for i := 1; i <= len(alpha); i++ {
		pw = append(pw, alpha[:i])
	}
	pw = append(pw,
		"qrstuvwxyz012345",
		"67890./",
		"ABCDEFGHIJKLMNOP",
		"QRSTUVWXYZ012345",
	)
	long := strings.Repeat("password", 10)
	for i := 0; i < 70; i++ {
		pw = append(pw, long[:i])
	}
	return pw
}

// Generate hashes every password with salt using up to workers goroutines.
// Results keep the order of passwords. The first failure cancels the
// remaining work and is returned.
func Generate(ctx context.Context, m Maker, salt []byte, passwords []string, workers int) ([]Vector, error) {
	if workers < 1 {
		workers = 1
	}
	out := make([]Vector, len(passwords))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, pw := range passwords {
		i, pw := i, pw
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			h, err := m.MakeWithSalt(pw, salt)
			if err != nil {
				return fmt.Errorf("vectors: password #%d: %w", i, err)
			}
			out[i] = Vector{Password: pw, Hash: h}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Render writes one `  {"<password>", "<hash>"},` line per vector, indented
// for pasting into a table literal.
func Render(w io.Writer, vs []Vector) error {
	for _, v := range vs {
		if _, err := fmt.Fprintf(w, "  {%s, %s},\n", strconv.Quote(v.Password), strconv.Quote(v.Hash)); err != nil {
			return err
		}
	}
	return nil
}
