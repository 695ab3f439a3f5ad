// Package response renders the uniform API envelope and maps service errors
// to HTTP status codes at the boundary.
package response

import (
	"errors"
	"net/http"

	"technext-be/internal/apperr"

	"github.com/gin-gonic/gin"
)

// Envelope is the response shape shared by every endpoint.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// NotFoundBody is the envelope rendered for unmatched routes.
type NotFoundBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   struct {
		Path    string `json:"path"`
		Message string `json:"message"`
	} `json:"error"`
}

// OK writes a success envelope with the given status code.
func OK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error converts a service error into the envelope with a status derived
// from the error taxonomy. Unknown errors become a generic 500 so internals
// never leak to clients.
func Error(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "Something went wrong"

	switch {
	case errors.Is(err, apperr.ErrInvalidURL):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, apperr.ErrNotFoundOrForbidden):
		// Merged on purpose: a 404 here never reveals whether the code exists.
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, apperr.ErrConflict):
		status = http.StatusConflict
		message = err.Error()
	case errors.Is(err, apperr.ErrUnauthorized):
		status = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, apperr.ErrForbidden):
		status = http.StatusForbidden
		message = err.Error()
	case errors.Is(err, apperr.ErrAllocationExhausted):
		status = http.StatusInternalServerError
		message = err.Error()
	}

	c.JSON(status, Envelope{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// BadRequest writes a validation failure envelope.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Envelope{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// NoRoute handles unmatched paths.
func NoRoute(c *gin.Context) {
	body := NotFoundBody{
		Success: false,
		Message: "API NOT FOUND!",
	}
	body.Error.Path = c.Request.URL.Path
	body.Error.Message = "Your requested path is not found!"
	c.JSON(http.StatusNotFound, body)
}
