package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutorboard-api/internal/middleware"
	appErrors "github.com/noah-isme/tutorboard-api/pkg/errors"
)

func hubIDFromContext(c *gin.Context) (string, error) {
	hubID := middleware.HubID(c)
	if hubID == "" {
		return "", appErrors.ErrUnauthorized
	}
	return hubID, nil
}

func trimmedQuery(c *gin.Context, key string) string {
	return strings.TrimSpace(c.Query(key))
}
