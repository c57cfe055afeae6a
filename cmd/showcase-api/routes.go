package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/innovators-hub-api/internal/handler"
	"github.com/noah-isme/innovators-hub-api/internal/middleware"
	"github.com/noah-isme/innovators-hub-api/internal/models"
	"github.com/noah-isme/innovators-hub-api/internal/service"
	"github.com/noah-isme/innovators-hub-api/pkg/config"
	appErrors "github.com/noah-isme/innovators-hub-api/pkg/errors"
	"github.com/noah-isme/innovators-hub-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/innovators-hub-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/innovators-hub-api/pkg/middleware/requestid"
	"github.com/noah-isme/innovators-hub-api/pkg/response"
)

type routeDeps struct {
	auth    middleware.SessionAuthenticator
	metrics *service.MetricsService

	home       *handler.HomeHandler
	authH      *handler.AuthHandler
	lookups    *handler.LookupHandler
	gallery    *handler.GalleryHandler
	student    *handler.StudentHandler
	supervisor *handler.SupervisorHandler
	admin      *handler.AdminHandler
	downloads  *handler.DownloadHandler
	ops        *handler.MetricsHandler
}

func newRouter(cfg *config.Config, logr *zap.Logger, deps routeDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.metrics, "/metrics"))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", deps.ops.Health)
	r.GET("/ready", deps.ops.Ready)
	r.GET("/metrics", deps.ops.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.GET("/", middleware.OptionalJWT(deps.auth), deps.home.Index)

	auth := r.Group("/auth")
	auth.POST("/signup", deps.authH.SignUp)
	auth.POST("/login", deps.authH.Login)
	signedIn := auth.Group("", middleware.JWT(deps.auth), middleware.RequireRoles())
	signedIn.GET("/me", deps.authH.Me)
	signedIn.GET("/home", deps.authH.Home)

	lookups := r.Group("/lookups")
	lookups.GET("/faculties", deps.lookups.Faculties)
	lookups.GET("/categories", deps.lookups.Categories)
	lookups.GET("/technologies", deps.lookups.Technologies)

	r.GET("/gallery", deps.gallery.List)
	r.GET("/gallery/:id", deps.gallery.Detail)
	r.GET("/downloads/:token", deps.downloads.Download)

	student := r.Group("/student", middleware.JWT(deps.auth), middleware.RequireRoles(models.RoleStudent))
	student.GET("/dashboard", deps.student.Dashboard)
	student.GET("/submit", deps.student.SubmissionForm)
	student.POST("/submit", deps.student.Submit)
	student.PUT("/projects/:id/resubmit", deps.student.Resubmit)

	supervisor := r.Group("/supervisor", middleware.JWT(deps.auth), middleware.RequireRoles(models.RoleSupervisor))
	supervisor.GET("/dashboard", deps.supervisor.Dashboard)
	supervisor.GET("/projects/:id/reviews", deps.supervisor.Reviews)
	supervisor.POST("/projects/:id/review", deps.supervisor.Review)

	admin := r.Group("/admin", middleware.JWT(deps.auth), middleware.RequireRoles(models.RoleAdmin))
	admin.GET("/dashboard", deps.admin.Dashboard)
	admin.POST("/dashboard/export", deps.admin.Export)
	admin.GET("/system", deps.admin.System)

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "route not found"))
	})

	return r
}
