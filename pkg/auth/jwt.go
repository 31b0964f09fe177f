package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const watchScope = "watch"

var (
	ErrEmptySecret  = errors.New("token secret is empty")
	ErrInvalidToken = errors.New("invalid token")
)

// WatchClaims are carried by spectator tokens.
type WatchClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// GenerateWatchToken creates an HS256 token that lets a client follow
// games for ttl.
func GenerateWatchToken(secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	now := time.Now()
	claims := &WatchClaims{
		Scope: watchScope,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateWatchToken checks the signature, expiry and scope of a token.
func ValidateWatchToken(secret, tokenString string) (*WatchClaims, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}

	token, err := jwt.ParseWithClaims(tokenString, &WatchClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*WatchClaims)
	if !ok || !token.Valid || claims.Scope != watchScope {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
