package response

import "github.com/gin-gonic/gin"

// ErrorBody is the error half of the envelope. Details carries a
// field->tag map on validation failures and is omitted otherwise.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type successEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

type errorEnvelope struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, successEnvelope{Success: true, Data: data})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, errorEnvelope{
		Success: false,
		Error:   ErrorBody{Code: code, Message: message},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details interface{}) {
	c.JSON(statusCode, errorEnvelope{
		Success: false,
		Error:   ErrorBody{Code: code, Message: message, Details: details},
	})
}
