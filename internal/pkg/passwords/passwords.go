package passwords

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

func Hash(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("generate from password error: %w", err)
	}

	return string(hash), nil
}

func Compare(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return fmt.Errorf("compare password error: %w", err)
	}

	return nil
}
