package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// Envelope is the body of every JSON response.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func Success(c *gin.Context, code int, message string, data any) {
	c.JSON(code, Envelope{Status: StatusSuccess, Message: message, Data: data})
}

// Fail answers a client error.
func Fail(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, Envelope{Status: StatusFail, Message: message})
}

// Error answers a server error. The message must not carry internal detail.
func Error(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, Envelope{Status: StatusError, Message: message})
}
