package httperr

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error is an HTTP-mapped error. Handlers return it from helper code and
// translate it to a response at a single boundary instead of aborting
// mid-flight.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// New creates an Error with the given status code and message.
func New(status int, format string, args ...interface{}) *Error {
	return &Error{Status: status, Message: fmt.Sprintf(format, args...)}
}

// BadRequest returns a 400 error.
func BadRequest(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, format, args...)
}

// NotFound returns a 404 error.
func NotFound(format string, args ...interface{}) *Error {
	return New(http.StatusNotFound, format, args...)
}

// NotAcceptable returns a 406 error.
func NotAcceptable(format string, args ...interface{}) *Error {
	return New(http.StatusNotAcceptable, format, args...)
}

// PayloadTooLarge returns a 413 error.
func PayloadTooLarge(format string, args ...interface{}) *Error {
	return New(http.StatusRequestEntityTooLarge, format, args...)
}

// UnsupportedMediaType returns a 415 error.
func UnsupportedMediaType(format string, args ...interface{}) *Error {
	return New(http.StatusUnsupportedMediaType, format, args...)
}

// Respond writes err as a JSON error body. Unknown error types map to a
// generic 500 so internals never leak to the client.
func Respond(c *gin.Context, err error) {
	if he, ok := err.(*Error); ok {
		c.JSON(he.Status, gin.H{"message": he.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
}
