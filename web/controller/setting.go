package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vcorps/corps-panel/database/model"
	"github.com/vcorps/corps-panel/web/entity"
	"github.com/vcorps/corps-panel/web/middleware"
	"github.com/vcorps/corps-panel/web/service"
)

// SettingController manages panel settings.
type SettingController struct {
	BaseController

	settingService service.SettingService
}

// NewSettingController creates a new SettingController and initializes its routes.
func NewSettingController(g *gin.RouterGroup) *SettingController {
	a := &SettingController{}
	a.initRouter(g)
	return a
}

func (a *SettingController) initRouter(g *gin.RouterGroup) {
	settings := g.Group("/settings")
	settings.Use(middleware.RequireRole(model.RoleAdmin))
	{
		settings.GET("", a.getAllSetting)
		settings.POST("", a.updateAllSetting)
	}
}

func (a *SettingController) getAllSetting(c *gin.Context) {
	allSetting, err := a.settingService.GetAllSetting()
	if err != nil {
		jsonMsg(c, I18nWeb(c, "fail"), err)
		return
	}
	jsonObj(c, allSetting, nil)
}

func (a *SettingController) updateAllSetting(c *gin.Context) {
	allSetting := &entity.AllSetting{}
	if err := c.ShouldBind(allSetting); err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.settings.toasts.settingsInvalid"))
		return
	}
	err := a.settingService.UpdateAllSetting(allSetting)
	jsonMsg(c, I18nWeb(c, "pages.settings.toasts.settingsUpdated"), err)
}
