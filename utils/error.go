package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorBody is the machine-readable error part of the response envelope.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error": ErrorBody{
						Code:    "INTERNAL",
						Message: "An unexpected error occurred. Please try again later.",
					},
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONData sends a success envelope with the given payload.
func JSONData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

// JSONError sends a standardized JSON error envelope with a stable code.
func JSONError(c *gin.Context, status int, code, message string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("code", code))
	c.JSON(status, gin.H{"success": false, "error": ErrorBody{Code: code, Message: message}})
}
