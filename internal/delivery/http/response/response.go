package response

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON response
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"requestId,omitempty"`
}

// Now is the clock stamped into every envelope.
var Now = time.Now

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, envelope(c, true, message, data))
}

// Error sends an error response
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, envelope(c, false, message, nil))
}

func envelope(c *gin.Context, success bool, message string, data interface{}) Response {
	reqID, _ := c.Get("RequestID")
	idStr, _ := reqID.(string) // Safe type assertion

	return Response{
		Success:   success,
		Message:   message,
		Data:      data,
		Timestamp: Now().UTC(),
		RequestID: idStr,
	}
}
