package jwtauth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.StandardClaims
}

// UserID returns the numeric subject of the token.
func (c Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse subject error: %w", err)
	}

	return id, nil
}

// ExpiresIn is the time left until the token expires, zero when already expired.
func (c Claims) ExpiresIn(now time.Time) time.Duration {
	left := time.Unix(c.ExpiresAt, 0).Sub(now)
	if left < 0 {
		return 0
	}

	return left
}

func GetToken(userID int64, username, role string, ttl time.Duration, secret string) (string, error) {
	now := time.Now()

	claims := Claims{
		Username: username,
		Role:     role,
		StandardClaims: jwt.StandardClaims{ //nolint:exhaustruct
			Id:        uuid.NewString(),
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token error: %w", err)
	}

	return signed, nil
}

func ParseToken(tokenString, secret string) (Claims, error) {
	var claims Claims

	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"]) //nolint:goerr113
		}

		return []byte(secret), nil
	})
	if err != nil {
		return Claims{}, fmt.Errorf("parse token error: %w", err)
	}

	if !token.Valid || claims.Id == "" {
		return Claims{}, ErrInvalidToken
	}

	return claims, nil
}
