package util

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the wire shape for every failed request. Errors is only
// populated for validation failures, where all violated fields are reported
// together.
type ErrorResponse struct {
	Error  string   `json:"error"`
	Errors []string `json:"errors,omitempty"`
}

// MessageResponse is the wire shape for acknowledgments that carry no record.
type MessageResponse struct {
	Message string `json:"message"`
}

// CallCreated returns 201 with the persisted record as the body.
func CallCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// CallSuccessOK returns 200 with data as the body.
func CallSuccessOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// CallMessageOK returns 200 with a plain acknowledgment message.
func CallMessageOK(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, MessageResponse{Message: msg})
}

// CallUserError returns 400 with a single error message.
func CallUserError(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

// CallValidationError returns 400 enumerating every violated field.
func CallValidationError(c *gin.Context, violations []string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:  "Validation failed",
		Errors: violations,
	})
}

// CallErrorNotFound returns 404 when the operation target does not exist.
func CallErrorNotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: msg})
}

// CallServerError returns 500 for unexpected failures inside the service.
func CallServerError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error: fmt.Sprintf("Server error: %s", err.Error()),
	})
}

// CallRateLimited returns 429 when a client exceeds the request budget.
func CallRateLimited(c *gin.Context) {
	c.JSON(http.StatusTooManyRequests, ErrorResponse{
		Error: "Too many requests. Please try again later.",
	})
}
