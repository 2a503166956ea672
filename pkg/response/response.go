// Package response writes the wire contract the panel client consumes:
// success bodies are raw JSON records, failures carry a {"message"} body.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/undiziwa/userpanel/internal/dto"
	appErrors "github.com/undiziwa/userpanel/pkg/errors"
)

// JSON sends a success response.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Error sends a failure response with a human-readable message.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, dto.ErrorResponse{Message: appErr.Message})
}
