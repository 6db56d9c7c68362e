package middlewares

import (
	"log"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform response body shape: success mirrors the HTTP
// status class, data carries the payload, message the human-readable note.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// RespondData writes a successful JSON envelope to the client.
func RespondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

// RespondMessage writes a successful JSON envelope carrying only a message.
func RespondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Success: true, Message: message})
}

// RespondError writes a failure envelope to the client.
func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Success: false, Message: message})
}

// HttpError logs an error and writes a failure envelope to the client.
// Internal detail stays in the log; the client only sees the message.
func HttpError(c *gin.Context, message string, status int, err error) {
	log.Printf("HTTP %d - %s: %v", status, message, err)
	c.JSON(status, Envelope{Success: false, Message: message})
}
