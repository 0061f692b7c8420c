package auth

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/patientauth/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the fixed work factor passwords are hashed with.
const DefaultBcryptCost = 10

// Hasher turns plaintext passwords into storage form and checks them back.
type Hasher interface {
	Hash(password string) (string, error)
	// Verify returns nil on a match and common.ErrorUnauthorized on a mismatch.
	Verify(password, hash string) error
}

// BcryptHasher implements Hasher with bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher using cost, or DefaultBcryptCost when cost
// is outside bcrypt's accepted range.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &BcryptHasher{cost: cost}
}

// Cost reports the work factor used by Hash.
func (h *BcryptHasher) Cost() int {
	return h.cost
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func (h *BcryptHasher) Verify(password, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return common.ErrorUnauthorized
	}
	return fmt.Errorf("compare password: %w", err)
}
