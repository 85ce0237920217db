// Package idcodec converts between the opaque identifier strings exchanged over
// the HTTP API and the storage keys used by the repository layer.
//
// Identifiers are ULIDs rendered as 26-character Crockford base32 strings.
// They sort by creation time, which keeps the primary key index append-only.
package idcodec

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ErrMalformed is returned by Parse when the input is not a ULID.
var ErrMalformed = errors.New("malformed identifier")

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// New returns a fresh identifier.
func New() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// Parse validates s and returns its canonical (upper-case) form. Surrounding
// whitespace is ignored; anything else that is not a ULID yields ErrMalformed.
func Parse(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) != ulid.EncodedSize {
		return "", ErrMalformed
	}
	id, err := ulid.ParseStrict(s)
	if err != nil {
		return "", ErrMalformed
	}
	return id.String(), nil
}

// Valid reports whether s parses as an identifier.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}
