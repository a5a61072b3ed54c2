package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/SscSPs/fee_management_app/internal/utils/onelink"
	"github.com/gin-gonic/gin"
)

// 1Link sends its credentials as plain request headers.
const (
	OneLinkUsernameHeader = "username"
	OneLinkPasswordHeader = "password"
)

// OneLinkAuth rejects requests whose username/password headers do not match
// the configured 1Link credentials. Empty configured credentials reject everything.
func OneLinkAuth(username, password string) gin.HandlerFunc {
	return func(c *gin.Context) {
		gotUser := c.GetHeader(OneLinkUsernameHeader)
		gotPass := c.GetHeader(OneLinkPasswordHeader)

		userOK := subtle.ConstantTimeCompare([]byte(gotUser), []byte(username)) == 1
		passOK := subtle.ConstantTimeCompare([]byte(gotPass), []byte(password)) == 1
		if username == "" || password == "" || !userOK || !passOK {
			GetLoggerFromCtx(c.Request.Context()).Warn("1Link authentication failed")
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				onelink.BuildErrorResponse("401", "Invalid authentication credentials"))
			return
		}
		c.Next()
	}
}
