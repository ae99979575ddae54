package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mygames/internal/domain"
)

const callerKey = "mygames.caller"

// authRequired verifies the bearer token, re-resolves the user from the
// store and stashes an explicit Caller for the handlers. Role and account
// state come from the store, never from the token, so admin changes apply on
// the very next request. Anything short of a valid token on a protected
// route is a plain 403.
func (h *Handler) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			forbid(c)
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			forbid(c)
			return
		}

		subject, err := h.tokens.VerifySubject(parts[1])
		if err != nil {
			forbid(c)
			return
		}

		user, err := h.users.GetByUsername(c.Request.Context(), subject)
		if err != nil || !user.Active() {
			forbid(c)
			return
		}

		c.Set(callerKey, domain.Caller{Username: user.Username, Role: user.Role})
		c.Next()
	}
}

// requireRole gates a route group on the caller's freshly resolved role.
func (h *Handler) requireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if caller(c).Role != role {
			forbid(c)
			return
		}
		c.Next()
	}
}

func caller(c *gin.Context) domain.Caller {
	v, _ := c.Get(callerKey)
	cl, _ := v.(domain.Caller)
	return cl
}

func forbid(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
}
