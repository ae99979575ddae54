package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mygames/internal/apperr"
)

// writeError is the single place mapping failure kinds to HTTP statuses.
// Handlers never pick status codes for domain failures themselves.
func (h *Handler) writeError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		h.logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

var statusByKind = map[apperr.Kind]int{
	apperr.Validation:     http.StatusBadRequest,
	apperr.Authentication: http.StatusUnauthorized,
	apperr.Forbidden:      http.StatusForbidden,
	apperr.NotFound:       http.StatusNotFound,
	apperr.Conflict:       http.StatusConflict,
	apperr.Unprocessable:  http.StatusUnprocessableEntity,
	apperr.InvalidToken:   http.StatusBadRequest,
	apperr.TokenExpired:   http.StatusUnauthorized,
}

// bindingError reports a malformed or incomplete request body.
func bindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
