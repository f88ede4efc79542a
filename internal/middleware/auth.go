package middleware

import (
	"context"
	"strings"

	"Club_Portal/internal/apperr"
	"Club_Portal/internal/authz"
	"Club_Portal/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	ContextIdentityKey = "identity"
	ContextTokenIDKey  = "token_id"
)

type Resolver interface {
	Resolve(ctx context.Context, token string) (service.Resolved, error)
}

// Authenticate resolves the bearer token on every request. Requests without an
// Authorization header continue as anonymous; a bad header or token aborts with 401.
func Authenticate(r Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Set(ContextIdentityKey, authz.Anonymous())
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			_ = c.Error(apperr.Unauthorized(apperr.ReasonInvalidToken, "invalid authorization format"))
			c.Abort()
			return
		}

		res, err := r.Resolve(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Set(ContextIdentityKey, res.Identity)
		c.Set(ContextTokenIDKey, res.TokenID)
		c.Next()
	}
}

// RequireAuth admits only resolved, active identities.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := IdentityFrom(c)
		if id.IsAnonymous() {
			_ = c.Error(apperr.Unauthorized(apperr.ReasonMissingToken, "authentication required"))
			c.Abort()
			return
		}
		if !id.Active {
			_ = c.Error(apperr.Forbidden(apperr.ReasonNotActivated, "account is not activated", nil, id.ActualRole()))
			c.Abort()
			return
		}
		c.Next()
	}
}

func IdentityFrom(c *gin.Context) authz.Identity {
	if v, ok := c.Get(ContextIdentityKey); ok {
		if id, ok := v.(authz.Identity); ok {
			return id
		}
	}
	return authz.Anonymous()
}

func TokenIDFrom(c *gin.Context) string {
	return c.GetString(ContextTokenIDKey)
}
