package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/alexanderramin/horizon/internal/auth"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/alexanderramin/horizon/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const actorKey = "horizon.actor"

// Authenticate resolves the bearer token to an active user and stores it on
// the request context. The token's role is informational; permissions use
// the role stored with the user.
func Authenticate(tokens *auth.TokenManager, users service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			HTTPError(c, http.StatusUnauthorized, "missing bearer token", Unauthenticated)
			return
		}
		id, err := tokens.Check(strings.TrimSpace(raw))
		if err != nil {
			HTTPError(c, http.StatusUnauthorized, err.Error(), Unauthenticated)
			return
		}
		u, err := users.GetByID(c.Request.Context(), id.UserID)
		if err != nil {
			HTTPError(c, http.StatusUnauthorized, "token user is not active", Unauthenticated)
			return
		}
		c.Set(actorKey, u)
		c.Next()
	}
}

// actor returns the user set by Authenticate.
func actor(c *gin.Context) *domain.User {
	v, ok := c.Get(actorKey)
	if !ok {
		return nil
	}
	u, _ := v.(*domain.User)
	return u
}

// RequestLogger writes one entry per request. Server errors log at error,
// client errors at warn.
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		entry := logger.WithFields(logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"client_ip":  c.ClientIP(),
		})
		if u := actor(c); u != nil {
			entry = entry.WithField("user_id", u.ID)
		}
		switch {
		case status >= http.StatusInternalServerError:
			entry.Error("http_request")
		case status >= http.StatusBadRequest:
			entry.Warn("http_request")
		default:
			entry.Info("http_request")
		}
	}
}
