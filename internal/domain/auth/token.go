package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the authenticated caller carried through the request context.
// The derived-computation core never sees it; handlers pass plain ids down.
type Identity struct {
	EmployeeID string `json:"employeeId"`
	Email      string `json:"email"`
	IsAdmin    bool   `json:"isAdmin"`
}

type Claims struct {
	EmployeeID string `json:"employeeId"`
	Email      string `json:"email"`
	IsAdmin    bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

func GenerateToken(secret string, identity Identity, ttl time.Duration) (string, error) {
	claims := Claims{
		EmployeeID: identity.EmployeeID,
		Email:      identity.Email,
		IsAdmin:    identity.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseToken(secret, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
