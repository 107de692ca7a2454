package token

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
)

var (
	// ErrInvalidToken is returned for tokens that fail signature, expiry or issuer checks.
	ErrInvalidToken = errors.New("invalid token")
)

// JwtService signs and verifies HS256 tokens.
// Implements i.Tokenizer.
type JwtService struct {
	secretKey string
	issuer    string
}

// NewJwtService creates a new JWT Service with the provided configuration.
func NewJwtService(secretKey, issuer string) (*JwtService, error) {
	if secretKey == "" {
		return nil, errors.New("empty jwt secret")
	}
	return &JwtService{
		secretKey: secretKey,
		issuer:    issuer,
	}, nil
}

// Generate creates a JWT for the given claims. The issuer, issue time and
// expiry claims are set by the service.
func (s *JwtService) Generate(claims map[string]interface{}, expTime time.Duration) (string, error) {
	now := time.Now().UTC()
	jwtClaims := jwt.MapClaims{}
	for key, val := range claims {
		jwtClaims[key] = val
	}
	jwtClaims["exp"] = now.Add(expTime).Unix()
	jwtClaims["iat"] = now.Unix()
	if s.issuer != "" {
		jwtClaims["iss"] = s.issuer
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims)
	return token.SignedString([]byte(s.secretKey))
}

// Decode parses and validates a JWT, returning the claims if valid.
func (s *JwtService) Decode(tokenString string) (map[string]interface{}, error) {
	token, err := jwt.Parse(tokenString, s.getSigningKey)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if s.issuer != "" && !claims.VerifyIssuer(s.issuer, true) {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// getSigningKey returns the signing key for token validation.
func (s *JwtService) getSigningKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return []byte(s.secretKey), nil
}
