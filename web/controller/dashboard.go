package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vcorps/corps-panel/web/service"
	"github.com/vcorps/corps-panel/web/session"
)

// DashboardController serves the role-dispatched landing view payload.
type DashboardController struct {
	BaseController

	dashboardService service.DashboardService
}

// NewDashboardController creates a new DashboardController and initializes its routes.
func NewDashboardController(g *gin.RouterGroup) *DashboardController {
	a := &DashboardController{}
	a.initRouter(g)
	return a
}

func (a *DashboardController) initRouter(g *gin.RouterGroup) {
	g.GET("/dashboard", a.getDashboard)
}

func (a *DashboardController) getDashboard(c *gin.Context) {
	user := session.GetLoginUser(c)
	if user == nil {
		pureJsonMsg(c, http.StatusUnauthorized, false, I18nWeb(c, "pages.login.toasts.loginAgain"))
		return
	}

	dashboard, err := a.dashboardService.GetDashboard(user.Role)
	if err != nil {
		jsonMsg(c, I18nWeb(c, "fail"), err)
		return
	}
	jsonObj(c, dashboard, nil)
}
