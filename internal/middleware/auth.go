package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/coach-crm/internal/auth"
	"github.com/BruksfildServices01/coach-crm/internal/domain/account"
	"github.com/BruksfildServices01/coach-crm/internal/httperr"
	"github.com/BruksfildServices01/coach-crm/internal/models"
)

const ContextIdentity = "identity"

// AuthMiddleware resolves the bearer token into an account.Identity once;
// handlers read it back with MustIdentity.
func AuthMiddleware(issuer *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.AbortWith(c, httperr.ErrUnauthenticated("missing_authorization_header", "Authorization header is required."))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			httperr.AbortWith(c, httperr.ErrUnauthenticated("invalid_authorization_header", "Expected a Bearer token."))
			return
		}

		claims, err := issuer.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.AbortWith(c, err)
			return
		}

		id, err := claims.Identity()
		if err != nil {
			httperr.AbortWith(c, err)
			return
		}

		c.Set(ContextIdentity, id)
		c.Next()
	}
}

func MustIdentity(c *gin.Context) account.Identity {
	return c.MustGet(ContextIdentity).(account.Identity)
}

// RequireKind rejects callers of another account kind with 403.
func RequireKind(kind models.AccountKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := MustIdentity(c)

		var err error
		switch kind {
		case models.AccountKindCoach:
			_, err = id.RequireCoach()
		case models.AccountKindPlayer:
			_, err = id.RequirePlayer()
		}
		if err != nil {
			httperr.AbortWith(c, err)
			return
		}
		c.Next()
	}
}
