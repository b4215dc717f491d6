// Package httpkit holds the gin helpers shared by every module: response
// writing, error mapping, identity extraction and the auth middleware.
package httpkit

import (
	"errors"
	"net/http"

	"serveportal_backend/platform/apperr"

	"github.com/gin-gonic/gin"
)

const msgInternal = "internal server error"

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func JSON(c *gin.Context, status int, payload any) { c.JSON(status, payload) }

func OK(c *gin.Context, payload any) { c.JSON(http.StatusOK, payload) }

func Created(c *gin.Context, payload any) { c.JSON(http.StatusCreated, payload) }

// Error writes an error body with an explicit status.
func Error(c *gin.Context, status int, message string, details any) {
	c.JSON(status, ErrorResponse{Error: message, Details: details})
}

// HandleError writes the response for err and reports whether there was one.
// Typed errors keep their message; anything else becomes a bare 500 and the
// cause is recorded on the context for the request logger.
func HandleError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	var typed *apperr.Error
	if !errors.As(err, &typed) {
		_ = c.Error(err)
		Error(c, http.StatusInternalServerError, msgInternal, nil)
		return true
	}

	status := typed.HTTPStatus()
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	Error(c, status, typed.Message, typed.Details)
	return true
}
