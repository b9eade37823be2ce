package handler

import (
	"PdfVault/internal/authz"
	"PdfVault/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// caller builds the authenticated identity from the request context set by
// the auth middleware.
func caller(c *gin.Context) authz.Caller {
	return authz.Caller{
		ID:    c.MustGet("user_id").(uint64),
		Level: c.MustGet("level").(string),
	}
}

// fail maps a service error to an HTTP status and a short message.
// Storage internals stay server-side.
func fail(c *gin.Context, err error) {
	var appErr *service.AppError
	if !errors.As(err, &appErr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	status := http.StatusInternalServerError
	switch appErr.Kind {
	case service.KindValidation:
		status = http.StatusBadRequest
	case service.KindConflict:
		status = http.StatusConflict
	case service.KindNotFound:
		status = http.StatusNotFound
	case service.KindAuthorization:
		status = http.StatusForbidden
	}
	c.JSON(status, gin.H{"error": appErr.Msg})
}

// ok writes a success JSON response.
func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"code": 0,
		"msg":  "ok",
		"data": data,
	})
}
