package middleware

import "github.com/gin-gonic/gin"

// operatorKey is the key used to store the authenticated back-office operator.
const operatorKey = contextKey("operator")

// GetOperatorFromContext retrieves the authenticated operator name from the Gin context.
// It returns the name and a boolean indicating if it was found.
func GetOperatorFromContext(c *gin.Context) (string, bool) {
	if v, exists := c.Get(string(operatorKey)); exists {
		operator, ok := v.(string)
		return operator, ok
	}
	// check in the request context as well
	if v, ok := c.Request.Context().Value(operatorKey).(string); ok {
		return v, true
	}
	return "", false
}
