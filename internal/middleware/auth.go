package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	iauth "github.com/quillchat/quill/internal/auth"
	"github.com/quillchat/quill/pkg/errors"
	"github.com/quillchat/quill/pkg/response"
)

const (
	CtxClaimsKey    = "authClaims"
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"

	// SessionCookieName is the HTTP-only cookie carrying the session token.
	SessionCookieName = "token"
)

// Auth enforces JWT authentication using the supplied JWT service. The token
// is read from the session cookie first, falling back to a Bearer header for
// non-browser clients.
func Auth(jwt *iauth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if jwt == nil {
			// Refusing with 500 rather than 401 so a missing signing secret
			// is not mistaken for a credential problem.
			response.Error(c, errors.ErrServerMisconfigured)
			c.Abort()
			return
		}

		token := sessionToken(c)
		if token == "" {
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		claims, err := jwt.ValidateSessionToken(token)
		if err != nil {
			// Normalise all validation failures to 401
			c.Header("WWW-Authenticate", "Bearer")
			response.Error(c, errors.ErrUnauthorized)
			c.Abort()
			return
		}

		// Propagate identity into request context
		c.Set(CtxClaimsKey, claims)
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUserEmailKey, claims.Email)

		c.Next()
	}
}

// OptionalAuth resolves the caller's identity when a valid token is present
// but lets anonymous requests through untouched.
func OptionalAuth(jwt *iauth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if jwt == nil {
			c.Next()
			return
		}

		token := sessionToken(c)
		if token == "" {
			c.Next()
			return
		}

		if claims, err := jwt.ValidateSessionToken(token); err == nil {
			c.Set(CtxClaimsKey, claims)
			c.Set(CtxUserIDKey, claims.UserID)
			c.Set(CtxUserEmailKey, claims.Email)
		}

		c.Next()
	}
}

func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}

	authz := c.GetHeader("Authorization")
	if len(authz) >= 8 && strings.EqualFold(authz[:7], "Bearer ") {
		return strings.TrimSpace(authz[7:])
	}

	return ""
}
