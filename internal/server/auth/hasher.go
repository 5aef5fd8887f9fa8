// Package auth holds the password hashers and the session token service.
package auth

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedDigest is returned by Verify for a digest no hasher can
	// parse. A plain mismatch is (false, nil), never an error.
	ErrMalformedDigest = errors.New("malformed password digest")

	// ErrPasswordTooLong is returned by Hash when the algorithm cannot take
	// the whole password.
	ErrPasswordTooLong = errors.New("password too long")
)

// PasswordHasher hashes and verifies passwords. Implementations are safe for
// concurrent use.
type PasswordHasher interface {
	// Hash returns a salted digest; two calls never return the same value.
	Hash(password string) (string, error)

	// Verify compares password against digest in constant time.
	Verify(password, digest string) (bool, error)
}

// MultiHasher hashes with one algorithm and verifies digests of every
// supported algorithm, picked by digest prefix.
type MultiHasher struct {
	primary PasswordHasher
	bcrypt  *BcryptHasher
	argon   *Argon2idHasher
}

// NewPasswordHasher returns a MultiHasher creating new digests with
// algorithm ("bcrypt" or "argon2id").
func NewPasswordHasher(algorithm string, bcryptCost int) (*MultiHasher, error) {
	m := &MultiHasher{
		bcrypt: NewBcryptHasher(bcryptCost),
		argon:  NewArgon2idHasher(),
	}

	switch algorithm {
	case "bcrypt":
		m.primary = m.bcrypt
	case "argon2id":
		m.primary = m.argon
	default:
		return nil, fmt.Errorf("unknown password hasher %q", algorithm)
	}

	return m, nil
}

func (m *MultiHasher) Hash(password string) (string, error) {
	return m.primary.Hash(password)
}

func (m *MultiHasher) Verify(password, digest string) (bool, error) {
	switch {
	case strings.HasPrefix(digest, argon2idPrefix):
		return m.argon.Verify(password, digest)
	case isBcryptDigest(digest):
		return m.bcrypt.Verify(password, digest)
	}
	return false, ErrMalformedDigest
}
