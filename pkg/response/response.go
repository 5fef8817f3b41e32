package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/office-space-api/pkg/errors"
)

// ErrorBody is the error contract shared by all endpoints.
type ErrorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// JSON sends a success response.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(status, data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Message responds with a plain confirmation payload.
func Message(c *gin.Context, status int, message string) {
	JSON(c, status, gin.H{"message": message})
}

// Error sends an error response converting the error to the common structure.
// Wrapped store errors surface their cause in the details field; validation and
// not-found conditions carry only the message.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	body := ErrorBody{Error: appErr.Message}
	if appErr.Status >= http.StatusInternalServerError && appErr.Err != nil {
		body.Details = appErr.Err.Error()
	}
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(appErr.Status, body)
}
