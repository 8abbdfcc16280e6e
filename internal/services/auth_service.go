package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"agrilink-backend/internal/apperr"
	"agrilink-backend/internal/models"
)

// AuthService issues and validates JWT access tokens
type AuthService struct {
	secret    []byte
	expiresIn time.Duration
	issuer    string
}

// Claims carries the identity embedded in a token
type Claims struct {
	UserID string          `json:"uid"`
	Role   models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

func NewAuthService(secret string, expiresIn time.Duration, issuer string) *AuthService {
	return &AuthService{
		secret:    []byte(secret),
		expiresIn: expiresIn,
		issuer:    issuer,
	}
}

// GenerateToken creates a signed token for the user
func (s *AuthService) GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiresIn)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a token, returning its claims
func (s *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, apperr.Unauthenticated("invalid or expired token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperr.Unauthenticated("invalid token claims")
	}
	return claims, nil
}
