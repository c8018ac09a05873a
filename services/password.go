package services

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt only looks at the first 72 bytes and rejects longer input
const bcryptMaxInput = 72

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// HashPassword returns a bcrypt hash of the plain-text password
func HashPassword(plain string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(passwordInput(plain), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares a bcrypt hash against the plain-text candidate
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), passwordInput(plain)) == nil
}

// burnPasswordCheck spends the same time as a real comparison for unknown usernames
func burnPasswordCheck(plain string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, passwordInput(plain))
}

// Passwords longer than bcrypt accepts are reduced to a fixed-size digest first
func passwordInput(plain string) []byte {
	if len(plain) <= bcryptMaxInput {
		return []byte(plain)
	}
	sum := sha256.Sum256([]byte(plain))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}
