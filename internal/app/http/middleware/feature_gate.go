package middleware

import (
	"context"
	"errors"
	"net/http"

	"entitlements-api/internal/app/gate"
	"entitlements-api/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// UserFinder loads the authenticated user by the email carried in the token.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*users.User, error)
}

// RequireFeature lets the request through only when the current user is
// entitled to feature. Denials answer 402 with the upgrade details.
func RequireFeature(finder UserFinder, g *gate.Gate, feature string) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.GetString(ContextEmail)
		if email == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		user, err := finder.FindByEmail(c.Request.Context(), email)
		if errors.Is(err, users.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
			return
		}

		decision, err := g.Check(*user, feature)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Feature gate misconfigured"})
			return
		}

		if !decision.Allowed {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, gin.H{
				"error":         "upgrade_required",
				"feature":       decision.Feature,
				"required_tier": decision.RequiredTier,
			})
			return
		}

		c.Next()
	}
}
