package middleware

import (
	"strings"

	"github.com/LARRYDMO/Job-portal-website/internal/domain"
	"github.com/LARRYDMO/Job-portal-website/pkg/apperror"
	"github.com/LARRYDMO/Job-portal-website/pkg/auth"

	"github.com/gin-gonic/gin"
)

// TokenParser verifies a bearer token.
type TokenParser interface {
	Parse(token string) (auth.Subject, error)
}

// Authenticate resolves the caller from the Authorization header or, failing
// that, the auth cookie. It never rejects a request: anonymous and
// invalid-token callers continue without an identity.
func Authenticate(tokens TokenParser, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" && cookieName != "" {
			if cookie, err := c.Cookie(cookieName); err == nil {
				tokenString = cookie
			}
		}
		if tokenString == "" {
			c.Next()
			return
		}

		sub, err := tokens.Parse(tokenString)
		if err != nil {
			c.Set(keyTokenRejected, true)
			c.Next()
			return
		}

		role, _ := domain.ParseRole(sub.Role)
		identity := domain.Identity{ID: sub.ID, Name: sub.Name, Role: role, Email: sub.Email}

		c.Set(string(domain.KeyIdentity), identity)
		c.Set(string(domain.KeyUserID), identity.ID)
		c.Set(string(domain.KeyUserName), identity.Name)
		c.Set(string(domain.KeyUserEmail), identity.Email)
		c.Set(string(domain.KeyUserRole), string(identity.Role))
		c.Next()
	}
}

const keyTokenRejected = "TokenRejected"

// RequireAuth aborts with 401 unless Authenticate resolved a caller.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if Identity(c).IsAuthenticated() {
			c.Next()
			return
		}
		if c.GetBool(keyTokenRejected) {
			c.Error(apperror.Unauthorized("Invalid or expired token"))
		} else {
			c.Error(apperror.Unauthorized("Authorization header or auth cookie required"))
		}
		c.Abort()
	}
}

// Identity returns the caller resolved by Authenticate, or the zero identity.
func Identity(c *gin.Context) domain.Identity {
	v, ok := c.Get(string(domain.KeyIdentity))
	if !ok {
		return domain.Identity{}
	}
	identity, _ := v.(domain.Identity)
	return identity
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
