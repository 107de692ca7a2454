package service

import (
	"errors"
	"time"

	"github.com/beka-birhanu/qmaze/service/i"
)

const defaultTokenTTL = 24 * time.Hour

// Auth issues the bearer tokens that guard the generating endpoints.
type Auth struct {
	tokenizer i.Tokenizer
}

// NewAuth creates an Auth backed by tokenizer.
func NewAuth(tokenizer i.Tokenizer) (*Auth, error) {
	if tokenizer == nil {
		return nil, errors.New("nil tokenizer")
	}
	return &Auth{tokenizer: tokenizer}, nil
}

// IssueToken signs a token for subject. A non-positive ttl means one day.
func (a *Auth) IssueToken(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", errors.New("empty subject")
	}
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	return a.tokenizer.Generate(map[string]interface{}{
		"sub": subject,
	}, ttl)
}
