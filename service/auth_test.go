package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTokenizer struct {
	claims map[string]interface{}
	ttl    time.Duration
}

func (r *recordingTokenizer) Generate(claims map[string]interface{}, ttl time.Duration) (string, error) {
	r.claims, r.ttl = claims, ttl
	return "token", nil
}

func (r *recordingTokenizer) Decode(string) (map[string]interface{}, error) {
	return r.claims, nil
}

func TestAuthIssueToken(t *testing.T) {
	tok := &recordingTokenizer{}
	auth, err := NewAuth(tok)
	require.NoError(t, err)

	token, err := auth.IssueToken("ci", 0)
	require.NoError(t, err)
	assert.Equal(t, "token", token)
	assert.Equal(t, "ci", tok.claims["sub"])
	assert.Equal(t, defaultTokenTTL, tok.ttl)

	_, err = auth.IssueToken("ci", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, tok.ttl)

	_, err = auth.IssueToken("", time.Hour)
	assert.Error(t, err)

	_, err = NewAuth(nil)
	assert.Error(t, err)
}
