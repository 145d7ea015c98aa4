package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vcorps/corps-panel/database/model"
	"github.com/vcorps/corps-panel/util/random"
	"github.com/vcorps/corps-panel/web/middleware"
	"github.com/vcorps/corps-panel/web/service"
)

// WorkerController handles the field-personnel registry.
type WorkerController struct {
	BaseController

	workerService service.WorkerService
}

// NewWorkerController creates a new WorkerController and initializes its routes.
func NewWorkerController(g *gin.RouterGroup) *WorkerController {
	a := &WorkerController{}
	a.initRouter(g)
	return a
}

func (a *WorkerController) initRouter(g *gin.RouterGroup) {
	workers := g.Group("/workers")
	workers.Use(middleware.RequireRole(model.RoleAdmin, model.RoleStaff))
	{
		workers.GET("", a.getWorkers)
		workers.GET("/departments", a.getDepartments)
		workers.GET("/:id", a.getWorker)
		workers.POST("", a.addWorker)
		workers.POST("/update", a.updateWorker)
		workers.DELETE("/:id", a.deleteWorker)
	}
}

func (a *WorkerController) getWorkers(c *gin.Context) {
	filter := service.WorkerFilter{
		Search:     c.Query("search"),
		Status:     c.Query("status"),
		Department: c.Query("department"),
	}
	workers, err := a.workerService.GetWorkers(filter)
	if err != nil {
		jsonMsg(c, I18nWeb(c, "fail"), err)
		return
	}
	jsonObj(c, workers, nil)
}

func (a *WorkerController) getDepartments(c *gin.Context) {
	departments, err := a.workerService.GetDepartments()
	jsonObj(c, departments, err)
}

func (a *WorkerController) getWorker(c *gin.Context) {
	worker, err := a.workerService.GetWorker(c.Param("id"))
	if err != nil {
		jsonMsg(c, I18nWeb(c, "fail"), err)
		return
	}
	jsonObj(c, worker, nil)
}

func (a *WorkerController) addWorker(c *gin.Context) {
	var worker model.Worker
	if err := c.ShouldBind(&worker); err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.login.toasts.invalidFormData"))
		return
	}
	if !model.ValidDepartment(worker.Department) {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.workers.toasts.invalidDepartment", "Department=="+worker.Department))
		return
	}

	worker.Id = random.Id(userIdLength)
	if worker.Status == "" {
		worker.Status = model.StatusActive
	}
	if worker.JoinDate == "" {
		worker.JoinDate = time.Now().Format("2006-01-02")
	}

	err := a.workerService.AddWorker(&worker)
	jsonMsgObj(c, I18nWeb(c, "pages.workers.toasts.workerAdded"), worker, err)
}

// updateWorker replaces the stored record in full.
func (a *WorkerController) updateWorker(c *gin.Context) {
	var worker model.Worker
	if err := c.ShouldBind(&worker); err != nil || worker.Id == "" {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.login.toasts.invalidFormData"))
		return
	}
	if !model.ValidDepartment(worker.Department) {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.workers.toasts.invalidDepartment", "Department=="+worker.Department))
		return
	}

	err := a.workerService.UpdateWorker(&worker)
	jsonMsgObj(c, I18nWeb(c, "pages.workers.toasts.workerUpdated"), worker, err)
}

func (a *WorkerController) deleteWorker(c *gin.Context) {
	err := a.workerService.DeleteWorker(c.Param("id"))
	jsonMsg(c, I18nWeb(c, "pages.workers.toasts.workerDeleted"), err)
}
