package auth

import (
	"sync"

	"github.com/google/uuid"
	goerrors "github.com/goliatone/go-errors"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword will generate a salted, irreversible password hash
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost())
	return string(h), err
}

// ComparePasswordAndHash will validate the given cleartext
// password matches the hashed password
func ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if goerrors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatchedHashAndPassword
		}
		return err
	}
	return nil
}

// RandomPasswordHash is a temporary password
func RandomPasswordHash() string {
	pwd := uuid.New()

	h, err := HashPassword(pwd.String())
	if err != nil {
		return RandomPasswordHash()
	}

	return h
}

var (
	guardHashOnce sync.Once
	guardHash     string
)

// compareAgainstGuardHash burns a bcrypt comparison when no user record
// exists, so unknown-email and wrong-password failures take the same time.
func compareAgainstGuardHash(password string) {
	guardHashOnce.Do(func() {
		guardHash = RandomPasswordHash()
	})
	_ = bcrypt.CompareHashAndPassword([]byte(guardHash), []byte(password))
}
