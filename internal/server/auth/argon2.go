package auth

import (
	"fmt"

	"github.com/alexedwards/argon2id"
)

const argon2idPrefix = "$argon2id$"

// Argon2idHasher stores passwords as PHC-formatted argon2id strings.
type Argon2idHasher struct {
	params *argon2id.Params
}

func NewArgon2idHasher() *Argon2idHasher {
	return &Argon2idHasher{params: argon2id.DefaultParams}
}

func (h *Argon2idHasher) Hash(password string) (string, error) {
	digest, err := argon2id.CreateHash(password, h.params)
	if err != nil {
		return "", fmt.Errorf("argon2id: %w", err)
	}
	return digest, nil
}

func (h *Argon2idHasher) Verify(password, digest string) (bool, error) {
	ok, err := argon2id.ComparePasswordAndHash(password, digest)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedDigest, err)
	}
	return ok, nil
}
