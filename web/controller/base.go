// Package controller provides the HTTP handlers for the corps-panel API:
// authentication, user and worker management, dashboards and settings.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vcorps/corps-panel/logger"
	"github.com/vcorps/corps-panel/web/service"
	"github.com/vcorps/corps-panel/web/session"
)

// BaseController provides common functionality for all controllers, including
// the authentication check.
type BaseController struct {
	userService service.UserService
}

// checkLogin verifies the session and refreshes its user from the directory,
// so role, membership and password changes are visible without re-login. A
// session whose directory record is gone is cleared. API callers get a JSON
// 401; plain browser requests are sent back to the login view.
func (a *BaseController) checkLogin(c *gin.Context) {
	cached := session.GetLoginUser(c)
	if cached == nil {
		a.rejectUnauthorized(c)
		return
	}

	user, err := a.userService.GetUser(cached.Id)
	if err != nil {
		if err := session.ClearSession(c); err != nil {
			logger.Warning("clear session failed:", err)
		}
		a.rejectUnauthorized(c)
		return
	}

	if *user != *cached {
		if err := session.SetLoginUser(c, user); err != nil {
			logger.Warning("refresh session user failed:", err)
		}
	}
	c.Next()
}

func (a *BaseController) rejectUnauthorized(c *gin.Context) {
	if isAjax(c) {
		pureJsonMsg(c, http.StatusUnauthorized, false, I18nWeb(c, "pages.login.toasts.loginAgain"))
	} else {
		c.Redirect(http.StatusTemporaryRedirect, "/")
	}
	c.Abort()
}

// I18nWeb retrieves a localized message for the panel based on the request locale.
func I18nWeb(c *gin.Context, name string, params ...string) string {
	anyfunc, funcExists := c.Get("I18n")
	if !funcExists {
		logger.Warning("I18n function not exists in gin context!")
		return name
	}
	i18nFunc, _ := anyfunc.(func(key string, params ...string) string)
	return i18nFunc(name, params...)
}
