package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vcorps/corps-panel/database/model"
	"github.com/vcorps/corps-panel/logger"
	"github.com/vcorps/corps-panel/web/middleware"
	"github.com/vcorps/corps-panel/web/service"
)

// ServerController exposes host status for the admin view.
type ServerController struct {
	BaseController

	serverService service.ServerService
}

// NewServerController creates a new ServerController and initializes its routes.
func NewServerController(g *gin.RouterGroup) *ServerController {
	a := &ServerController{}
	a.initRouter(g)
	return a
}

func (a *ServerController) initRouter(g *gin.RouterGroup) {
	server := g.Group("/server")
	server.Use(middleware.RequireRole(model.RoleAdmin))
	{
		server.GET("/status", a.status)
		server.GET("/logs/:count", a.getLogs)
	}
}

func (a *ServerController) status(c *gin.Context) {
	jsonObj(c, a.serverService.GetStatus(), nil)
}

func (a *ServerController) getLogs(c *gin.Context) {
	count, err := strconv.Atoi(c.Param("count"))
	if err != nil || count <= 0 {
		count = 50
	}
	level := c.DefaultQuery("level", "info")
	jsonObj(c, logger.GetLogs(count, level), nil)
}
