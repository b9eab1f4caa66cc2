package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the structure of the JWT claims the application uses.
type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role,omitempty"` // Role is included for quick checks, but DB is source of truth
	jwt.RegisteredClaims
}

// GenerateAccessToken issues a short-lived access token for a user.
func GenerateAccessToken(userID uint, role string, secretKey string, expiryMinutes int) (string, error) {
	return generate(userID, role, secretKey, time.Duration(expiryMinutes)*time.Minute)
}

// GenerateRefreshToken issues a long-lived refresh token for a user.
func GenerateRefreshToken(userID uint, secretKey string, expiryDays int) (string, error) {
	return generate(userID, "", secretKey, time.Duration(expiryDays)*24*time.Hour)
}

func generate(userID uint, role string, secretKey string, ttl time.Duration) (string, error) {
	if secretKey == "" {
		return "", errors.New("jwt secret key is empty")
	}
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "racketball-api",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}

// ValidateJWT parses, validates, and returns claims from a JWT string.
func ValidateJWT(tokenString string, secretKey string) (*Claims, error) {
	if tokenString == "" {
		return nil, errors.New("token string is empty")
	}
	if secretKey == "" {
		return nil, errors.New("jwt secret key is empty")
	}

	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.New("token has expired")
		}
		if errors.Is(err, jwt.ErrTokenNotValidYet) {
			return nil, errors.New("token is not yet valid")
		}
		if errors.Is(err, jwt.ErrSignatureInvalid) {
			return nil, errors.New("token signature is invalid")
		}
		return nil, fmt.Errorf("could not parse token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("token is invalid")
	}

	if claims.UserID == 0 { // Basic validation for our custom claim
		return nil, errors.New("user_id claim is missing or zero")
	}

	return claims, nil
}
