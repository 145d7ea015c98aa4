package controller

import (
	"net/http"
	"text/template"

	"github.com/gin-gonic/gin"

	"github.com/vcorps/corps-panel/logger"
	"github.com/vcorps/corps-panel/web/service"
	"github.com/vcorps/corps-panel/web/session"
)

// LoginForm represents the login request structure.
type LoginForm struct {
	Email         string `json:"email" form:"email"`
	Password      string `json:"password" form:"password"`
	TwoFactorCode string `json:"twoFactorCode" form:"twoFactorCode"`
}

// IndexController handles login and logout.
type IndexController struct {
	BaseController

	settingService service.SettingService
	userService    service.UserService
}

// NewIndexController creates a new IndexController and initializes its routes.
func NewIndexController(g *gin.RouterGroup) *IndexController {
	a := &IndexController{}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.POST("/login", a.login)
	g.GET("/logout", a.logout)
}

// login authenticates the user and binds the directory record to the session.
func (a *IndexController) login(c *gin.Context) {
	var form LoginForm

	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.login.toasts.invalidFormData"))
		return
	}
	if form.Email == "" {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.login.toasts.emptyEmail"))
		return
	}
	if form.Password == "" {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.login.toasts.emptyPassword"))
		return
	}

	user := a.userService.CheckUser(form.Email, form.Password, form.TwoFactorCode)
	safeEmail := template.HTMLEscapeString(form.Email)

	if user == nil {
		logger.Warningf("wrong credentials for email: \"%s\", IP: \"%s\"", safeEmail, getRemoteIp(c))
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.login.toasts.wrongEmailOrPassword"))
		return
	}

	sessionMaxAge, err := a.settingService.GetSessionMaxAge()
	if err != nil {
		logger.Warning("Unable to get session's max age from DB")
	}

	if err := session.SetMaxAge(c, sessionMaxAge*60); err != nil {
		logger.Warning("Unable to set session's max age:", err)
	}
	if err := session.SetLoginUser(c, user); err != nil {
		logger.Warning("Unable to save session:", err)
		return
	}

	logger.Infof("%s logged in successfully, IP: %s", safeEmail, getRemoteIp(c))
	jsonMsgObj(c, I18nWeb(c, "pages.login.toasts.successLogin"), user, nil)
}

// logout clears the session. A user who still must change their password
// cannot dismiss the gate by logging out.
func (a *IndexController) logout(c *gin.Context) {
	user := session.GetLoginUser(c)
	if user != nil && user.MustChangePassword {
		pureJsonMsg(c, http.StatusForbidden, false, I18nWeb(c, "pages.users.toasts.mustChangePassword"))
		return
	}
	if user != nil {
		logger.Infof("%s logged out successfully", user.Email)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("Unable to clear session:", err)
	}
	pureJsonMsg(c, http.StatusOK, true, "")
}
