package errors

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error is the application error type controllers attach to the gin
// context; ErrorMiddleware renders it as the response body.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error.
func New(code int, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Shared responses for the identity middlewares.
var (
	ErrUnauthorized = New(http.StatusUnauthorized, "Unauthorized", nil)
	ErrForbidden    = New(http.StatusForbidden, "Forbidden", nil)
)

// ErrorMiddleware converts errors attached to the gin context into JSON
// responses with the proper status code. Errors of any other type are
// reported as a generic 500 so internals never leak to clients.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			err := c.Errors.Last().Err
			appErr, ok := err.(*Error)
			if !ok {
				appErr = New(http.StatusInternalServerError, "Internal server error", err)
			}
			c.JSON(appErr.Code, appErr)
		}
	}
}
