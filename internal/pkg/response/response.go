package response

import "github.com/gin-gonic/gin"

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

// List is the envelope for collection endpoints: {success, count, data}.
func List(c *gin.Context, statusCode int, count int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"count":   count,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   message,
	})
}
