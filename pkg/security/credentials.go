package security

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrHashingFailed = errors.New("password hashing failed")

// CredentialVerifier checks a claimed secret against the secret stored on a
// user record. Swapping the implementation must not change the auth
// service's external contract.
type CredentialVerifier interface {
	Verify(claimed, stored string) bool
}

type plaintextVerifier struct{}

// NewPlaintextVerifier verifies by exact, case-sensitive comparison against
// a plaintext stored secret.
func NewPlaintextVerifier() CredentialVerifier {
	return plaintextVerifier{}
}

func (plaintextVerifier) Verify(claimed, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(claimed), []byte(stored)) == 1
}

type bcryptVerifier struct{}

// NewBcryptVerifier verifies a claimed secret against a stored bcrypt hash.
func NewBcryptVerifier() CredentialVerifier {
	return bcryptVerifier{}
}

func (bcryptVerifier) Verify(claimed, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(claimed)) == nil
}

// HashPassword produces a bcrypt hash suitable for the bcrypt verifier,
// for provisioning stored records.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", ErrHashingFailed
	}
	return string(bytes), nil
}
