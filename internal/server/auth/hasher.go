package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher is a one-way transform for credentials.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify never errors on a simple mismatch; it just returns false.
	Verify(plaintext, digest string) bool
}

// BcryptHasher hashes with bcrypt. The cost factor is tunable; bcrypt is an
// adaptive hash, so raising the cost keeps brute force expensive as hardware
// improves.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

func (h *BcryptHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
