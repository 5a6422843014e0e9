package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/marcos-nsantos/satellite-imagery-backend/internal/domain"
)

// JWTService validates HMAC-signed bearer tokens issued to API clients.
type JWTService struct {
	secretKey []byte
	issuer    string
}

func NewJWTService(secretKey, issuer string) *JWTService {
	return &JWTService{
		secretKey: []byte(secretKey),
		issuer:    issuer,
	}
}

// GenerateToken signs a token for subject. Used by operators to mint client credentials.
func (s *JWTService) GenerateToken(subject string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(ttl)

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    s.issuer,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing token: %w", err)
	}

	return tokenStr, expiresAt, nil
}

// ValidateToken returns the token subject.
func (s *JWTService) ValidateToken(tokenStr string) (string, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(*jwt.Token) (any, error) {
		return s.secretKey, nil
	}, opts...)
	if err != nil {
		return "", domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", domain.ErrTokenInvalid
	}

	return claims.Subject, nil
}
