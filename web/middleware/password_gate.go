package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vcorps/corps-panel/web/session"
)

// PasswordGate blocks every panel operation while the session user still
// carries the must-change-password flag, except the password change itself.
// Logout is blocked too: the gate cannot be dismissed, only satisfied by a
// successful change.
func PasswordGate(exemptSuffixes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := session.GetLoginUser(c)
		if user == nil || !user.MustChangePassword {
			c.Next()
			return
		}

		for _, suffix := range exemptSuffixes {
			if strings.HasSuffix(c.Request.URL.Path, suffix) {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"success": false,
			"msg":     "You must change your password before continuing",
		})
	}
}
