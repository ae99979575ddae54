package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"mygames/internal/apperr"
)

func TestWriteErrorStatusByKind(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	h := &Handler{logger: logger}

	cases := []struct {
		err    error
		status int
	}{
		{apperr.New(apperr.Validation, "bad input"), http.StatusBadRequest},
		{apperr.New(apperr.Authentication, "invalid credentials"), http.StatusUnauthorized},
		{apperr.New(apperr.Forbidden, "forbidden"), http.StatusForbidden},
		{apperr.New(apperr.NotFound, "missing"), http.StatusNotFound},
		{apperr.New(apperr.Conflict, "duplicate"), http.StatusConflict},
		{apperr.New(apperr.Unprocessable, "dangling reference"), http.StatusUnprocessableEntity},
		{apperr.New(apperr.InvalidToken, "bad token"), http.StatusBadRequest},
		{apperr.New(apperr.TokenExpired, "expired token"), http.StatusUnauthorized},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

		h.writeError(c, tc.err)
		assert.Equal(t, tc.status, rec.Code)
	}
}

func TestWriteErrorHidesInternalDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	h := &Handler{logger: logger}

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	h.writeError(c, errors.New("sqlite: disk I/O error"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "sqlite")
	assert.Contains(t, rec.Body.String(), "internal server error")
}
