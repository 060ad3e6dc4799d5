package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutorboard-api/internal/models"
	appErrors "github.com/noah-isme/tutorboard-api/pkg/errors"
	"github.com/noah-isme/tutorboard-api/pkg/logger"
	"github.com/noah-isme/tutorboard-api/pkg/response"
)

// ContextClaimsKey is the gin context key storing verified hub claims.
const ContextClaimsKey = "hubClaims"

type tokenVerifier interface {
	Verify(token string) (*models.HubClaims, error)
}

// HubIdentity requires a hub-signed bearer token and stores its claims on the context.
func HubIdentity(verifier tokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "missing authorization header"))
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := verifier.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextClaimsKey, claims)
		logger.WithHubID(c, claims.HubID())
		c.Next()
	}
}

// HubID returns the caller's hub identity, or "" when no claims are attached.
func HubID(c *gin.Context) string {
	value, exists := c.Get(ContextClaimsKey)
	if !exists {
		return ""
	}
	claims, ok := value.(*models.HubClaims)
	if !ok || claims == nil {
		return ""
	}
	return claims.HubID()
}
