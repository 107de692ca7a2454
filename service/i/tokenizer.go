package i

import (
	"time"
)

// Tokenizer signs and verifies the bearer tokens of the protected routes.
type Tokenizer interface {
	// Generate creates a token carrying claims that expires after expTime.
	Generate(claims map[string]interface{}, expTime time.Duration) (string, error)

	// Decode validates a token and returns its claims.
	Decode(token string) (map[string]interface{}, error)
}
