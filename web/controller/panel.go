package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/vcorps/corps-panel/web/middleware"
)

// PanelController groups every authenticated API route behind the login check
// and the must-change-password gate.
type PanelController struct {
	BaseController

	userController      *UserController
	workerController    *WorkerController
	dashboardController *DashboardController
	serverController    *ServerController
	settingController   *SettingController
}

// NewPanelController creates the authenticated API controller tree.
func NewPanelController(g *gin.RouterGroup) *PanelController {
	a := &PanelController{}
	a.initRouter(g)
	return a
}

func (a *PanelController) initRouter(g *gin.RouterGroup) {
	g.Use(a.checkLogin)
	g.Use(middleware.PasswordGate("/users/password"))

	a.userController = NewUserController(g)
	a.workerController = NewWorkerController(g)
	a.dashboardController = NewDashboardController(g)
	a.serverController = NewServerController(g)
	a.settingController = NewSettingController(g)
}
