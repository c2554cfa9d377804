package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

type ClaimsData struct {
	UserID   string `json:"userID"`
	Email    string `json:"email"`
	Elevated bool   `json:"elevated"`
	jwt.RegisteredClaims
}

// GenerateAuthToken issues a signed access token. The elevated claim gates
// the unmasked-identifier path and is never set by the ordinary login flow.
func GenerateAuthToken(userID string, email string, elevated bool) (*string, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("jwt secret missing")
	}
	claims := ClaimsData{
		UserID:   userID,
		Email:    email,
		Elevated: elevated,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "kyc.igtapps.io",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return nil, err
	}
	return &signed, nil
}

// DecodeAuthToken validates a token and returns its claims.
func DecodeAuthToken(tokenString string) (*ClaimsData, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("jwt secret missing")
	}
	claims := &ClaimsData{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
