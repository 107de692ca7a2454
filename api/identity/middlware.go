// Package identity guards routes with bearer tokens.
package identity

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/qmaze/service/i"
	"github.com/gin-gonic/gin"
)

const (
	// ContextClaims is the key used to store token claims in the Gin context.
	ContextClaims = "tokenClaims"
	// ContextSubject is the key used to store the token subject in the Gin context.
	ContextSubject = "tokenSubject"
)

// Authoriz rejects requests without a valid "Bearer <token>" Authorization header.
func Authoriz(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Retrieve the access token from the Authorization header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		// Split the "Bearer" prefix from the token.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.Header("WWW-Authenticate", "Bearer")
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		claims, err := ts.Decode(strings.TrimSpace(parts[1]))
		if err != nil {
			c.Header("WWW-Authenticate", `Bearer error="invalid_token"`)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(ContextClaims, claims)
		if sub, ok := claims["sub"].(string); ok {
			c.Set(ContextSubject, sub)
		}
		c.Next()
	}
}
