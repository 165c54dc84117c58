package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"complaintdesk/internal/auth"
	"complaintdesk/pkg/types"
)

const claimsKey = "claims"

// requireAdmin accepts only verified tokens carrying the admin role.
func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.TokenFromRequest(c.Request)
		if token == "" {
			s.sendError(c, http.StatusUnauthorized, "Access token required")
			return
		}

		claims, err := s.verifier.Verify(token)
		if err != nil {
			message := "Invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				message = "Token expired"
			}
			s.sendError(c, http.StatusUnauthorized, message)
			return
		}
		if claims.Role != types.RoleAdmin {
			s.sendError(c, http.StatusForbidden, "Admin access required")
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// rateLimit applies the per-IP submission limit. Retry-After rounds up to
// whole seconds.
func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, retryAfter := s.limiter.Allow(c.ClientIP())
		if !allowed {
			seconds := int((retryAfter + time.Second - 1) / time.Second)
			c.Header("Retry-After", strconv.Itoa(seconds))
			s.sendError(c, http.StatusTooManyRequests, "Too many complaint submissions, please try again later.")
			return
		}
		c.Next()
	}
}

// requestLogger replaces gin.Logger with a structured access log.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := s.logger.Debug()
		if status >= http.StatusInternalServerError {
			event = s.logger.Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}
