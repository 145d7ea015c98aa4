package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vcorps/corps-panel/database/model"
	"github.com/vcorps/corps-panel/web/session"
)

// RequireRole rejects requests whose session user does not hold one of the
// given roles.
func RequireRole(roles ...model.UserRole) gin.HandlerFunc {
	allowed := make(map[model.UserRole]bool)
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *gin.Context) {
		user := session.GetLoginUser(c)
		if user == nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		if !allowed[user.Role] {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}
