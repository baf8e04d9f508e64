package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const RoleAdmin = "admin"

var (
	ErrAuthNotConfigured = errors.New("admin authentication not configured (missing ADMIN_JWT_SECRET)")
	ErrNotAdmin          = errors.New("token does not grant admin access")
)

// AdminAuthService issues and verifies the bearer tokens that guard catalog
// administration.
type AdminAuthService struct {
	jwtSecret string
	jwtExpiry time.Duration
}

func NewAdminAuthService(jwtSecret string, jwtExpiry time.Duration) *AdminAuthService {
	return &AdminAuthService{
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
	}
}

func (s *AdminAuthService) IssueToken(subject string) (string, error) {
	if s.jwtSecret == "" {
		return "", ErrAuthNotConfigured
	}

	claims := jwt.MapClaims{
		"sub":  subject,
		"role": RoleAdmin,
		"exp":  time.Now().Add(s.jwtExpiry).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify checks the signature and expiry of tokenString and that it carries
// the admin role. It returns the token subject.
func (s *AdminAuthService) Verify(tokenString string) (string, error) {
	if s.jwtSecret == "" {
		return "", ErrAuthNotConfigured
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	if role, _ := claims["role"].(string); role != RoleAdmin {
		return "", ErrNotAdmin
	}

	subject, _ := claims.GetSubject()
	return subject, nil
}
