// Package web provides the web server for the corps-panel service, including
// routing, session handling and background job scheduling.
package web

import (
	"context"
	"embed"
	"io"
	"net"
	"net/http"
	"strconv"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"github.com/vcorps/corps-panel/config"
	"github.com/vcorps/corps-panel/logger"
	"github.com/vcorps/corps-panel/util/common"
	"github.com/vcorps/corps-panel/web/controller"
	"github.com/vcorps/corps-panel/web/job"
	"github.com/vcorps/corps-panel/web/locale"
	"github.com/vcorps/corps-panel/web/middleware"
	"github.com/vcorps/corps-panel/web/service"
)

//go:embed translation/*
var i18nFS embed.FS

// Server is the corps-panel web server with its controllers and scheduled jobs.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	index *controller.IndexController
	panel *controller.PanelController

	settingService service.SettingService

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new web server instance with a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{ctx: ctx, cancel: cancel}
}

// initRouter initializes Gin, registers middleware and controllers and
// returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	secret, err := s.settingService.GetSecret()
	if err != nil {
		return nil, err
	}

	basePath, err := s.settingService.GetBasePath()
	if err != nil {
		return nil, err
	}

	store := cookie.NewStore(secret)
	engine.Use(sessions.Sessions("corps-panel", store))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))
	engine.Use(middleware.RequestId())
	engine.Use(locale.LocalizerMiddleware())

	if err := locale.InitLocalizer(i18nFS); err != nil {
		return nil, err
	}

	g := engine.Group(basePath)
	s.index = controller.NewIndexController(g)

	api := engine.Group(basePath + "panel/api")
	s.panel = controller.NewPanelController(api)

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

// startTask schedules the background jobs. Jobs only read state; nothing
// scheduled ever mutates the directory.
func (s *Server) startTask() {
	reportRuntime, err := s.settingService.GetReportRuntime()
	if err != nil || reportRuntime == "" {
		reportRuntime = "@daily"
	}
	if _, err := s.cron.AddJob(reportRuntime, job.NewDirectoryReportJob()); err != nil {
		logger.Warning("add directory report job failed:", err)
	}

	if cpuThreshold, err := s.settingService.GetCpuThreshold(); err == nil && cpuThreshold > 0 {
		if _, err := s.cron.AddJob("@every 1m", job.NewCheckCpuJob()); err != nil {
			logger.Warning("add cpu check job failed:", err)
		}
	}
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	loc, err := s.settingService.GetTimeLocation()
	if err != nil {
		return err
	}
	s.cron = cron.New(cron.WithLocation(loc), cron.WithSeconds())
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listen, err := s.settingService.GetListen()
	if err != nil {
		return err
	}
	port, err := s.settingService.GetPort()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(listen, strconv.Itoa(port))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("Web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{Handler: engine}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	s.startTask()

	return nil
}

// Stop gracefully shuts down the web server and its cron jobs.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2 error
	if s.httpServer != nil {
		err1 = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
	}
	return common.Combine(err1, err2)
}

// GetCtx returns the server's context.
func (s *Server) GetCtx() context.Context { return s.ctx }

// GetCron returns the server's cron scheduler instance.
func (s *Server) GetCron() *cron.Cron { return s.cron }
