package httperr

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/coach-crm/internal/logging"
)

type HTTPError struct {
	Code    string `json:"error"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

// Respond writes err as a JSON error. Business errors map to their kind's
// status; anything else is logged and answered with a generic 500.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		Write(c, be.Kind.Status(), be.Code, be.Message)
		return
	}

	logging.LogError(c.Request.Context(), slog.Default(), "request failed", err)
	Internal(c, "internal_error", "Unexpected server error.")
}

// AbortWith is Respond for middleware.
func AbortWith(c *gin.Context, err error) {
	Respond(c, err)
	c.Abort()
}
