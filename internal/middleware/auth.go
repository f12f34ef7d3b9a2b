// Package middleware contains gin middleware for viewer identity, request
// logging and metrics.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/streamhub/video-platform-go/pkg/logger"
)

// viewerKey is the gin context key holding the authenticated viewer's id.
const viewerKey = "viewerID"

// viewerClaims carries the viewer's id issued by the auth service. Older
// tokens use the _id claim; newer ones use the registered subject.
type viewerClaims struct {
	UserID string `json:"_id"`
	jwt.RegisteredClaims
}

// ViewerIdentity resolves the optional viewer identity from a Bearer token.
// Requests without a token, or with an invalid one, proceed anonymously;
// endpoints that need a viewer stack RequireViewer on top.
func ViewerIdentity(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.Next()
			return
		}

		claims := &viewerClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			logger.Log.Debug("Rejected bearer token", zap.Error(err))
			c.Next()
			return
		}

		subject := claims.UserID
		if subject == "" {
			subject = claims.Subject
		}

		viewerID, err := uuid.Parse(subject)
		if err != nil {
			logger.Log.Debug("Bearer token subject is not a user id", zap.Error(err))
			c.Next()
			return
		}

		c.Set(viewerKey, viewerID)
		c.Next()
	}
}

// RequireViewer aborts with 401 when ViewerIdentity resolved no viewer.
func RequireViewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := ViewerFrom(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"statusCode": http.StatusUnauthorized,
				"data":       nil,
				"message":    "authentication required",
				"success":    false,
			})
			return
		}
		c.Next()
	}
}

// ViewerFrom returns the authenticated viewer's id, if any.
func ViewerFrom(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(viewerKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// ViewerPtr returns the viewer's id as a nullable pointer, the shape the
// repositories take for viewer-relative enrichment.
func ViewerPtr(c *gin.Context) *uuid.UUID {
	if id, ok := ViewerFrom(c); ok {
		return &id
	}
	return nil
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
