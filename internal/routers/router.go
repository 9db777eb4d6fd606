package routers

import (
	"net/http"
	"time"

	"github.com/AnushaPriya2003/anusha/internal/app"
	"github.com/AnushaPriya2003/anusha/internal/middleware"
	"github.com/AnushaPriya2003/anusha/internal/routers/api_router"
	"github.com/AnushaPriya2003/anusha/internal/task"

	"github.com/gin-gonic/gin"
)

// NewPrivateRouter creates the private router: metrics, health check and manual task triggers
// NewPrivateRouter 创建私有路由：指标、健康检查和手动触发任务
func NewPrivateRouter(appContainer *app.App, scheduler *task.Scheduler) *gin.Engine {
	cfg := appContainer.Config()
	logger := appContainer.Logger()

	r := gin.New()
	if cfg.Server.RunMode == "debug" {
		r.Use(gin.Recovery())
	} else {
		r.Use(middleware.RecoveryWithLogger(logger))
	}
	r.Use(middleware.RequestInfo(app.Name, appContainer.Version().Version))
	r.Use(middleware.AccessLogWithLogger(logger))
	r.HandleMethodNotAllowed = true
	r.NoRoute(middleware.NoRoute())
	r.NoMethod(middleware.NoMethod())

	h := api_router.NewHandler(appContainer, scheduler)

	// prom监控
	r.GET("/debug/vars", api_router.NewVarsHandler(h).Vars)
	r.GET("/metrics", api_router.Metrics(appContainer.Registry))

	healthHandler := api_router.NewHealthHandler(h)
	versionHandler := api_router.NewVersionHandler(h)
	taskHandler := api_router.NewTaskHandler(h)

	api := r.Group("/", middleware.ContextTimeout(time.Duration(cfg.Server.ReadTimeout)*time.Second))
	{
		api.GET("/healthz", healthHandler.Check)
		api.GET("/version", versionHandler.ServerVersion)
		api.GET("/tasks", taskHandler.List)
		api.POST("/tasks/:name/run", taskHandler.Run)
		api.GET("/tasks/:name/history", taskHandler.History)
	}

	if cfg.Server.RunMode == "debug" {
		registerPprof(r)
	}

	return r
}

// NewPrivateServer wraps the router into an http.Server bound to server.private-http-listen
// NewPrivateServer 创建私有 HTTP 服务
func NewPrivateServer(appContainer *app.App, scheduler *task.Scheduler) *http.Server {
	cfg := appContainer.Config().Server
	return &http.Server{
		Addr:           cfg.PrivateHttpListen,
		Handler:        NewPrivateRouter(appContainer, scheduler),
		ReadTimeout:    time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout:   time.Duration(cfg.WriteTimeout) * time.Second,
		MaxHeaderBytes: 1 << 20,
	}
}
