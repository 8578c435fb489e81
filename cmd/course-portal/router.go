package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/course-portal-api/internal/handler"
	"github.com/noah-isme/course-portal-api/internal/middleware"
	"github.com/noah-isme/course-portal-api/internal/models"
	"github.com/noah-isme/course-portal-api/internal/service"
	"github.com/noah-isme/course-portal-api/pkg/config"
	"github.com/noah-isme/course-portal-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/course-portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/course-portal-api/pkg/middleware/requestid"
)

type routerDeps struct {
	tokens       middleware.TokenValidator
	metrics      *service.MetricsService
	catalog      *handler.CatalogHandler
	journey      *handler.JourneyHandler
	savedSearch  *handler.SavedSearchHandler
	observations *handler.MetricsHandler
}

func newRouter(cfg *config.Config, logr *zap.Logger, deps routerDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr, "/health", "/ready", "/metrics"))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.metrics, "/health", "/ready", "/metrics"))

	r.GET("/health", deps.observations.Health)
	r.GET("/ready", deps.observations.Ready)
	r.GET("/metrics", deps.observations.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.GET("/courses", deps.catalog.List)
	api.GET("/courses/export", deps.catalog.Export)
	api.GET("/courses/:id/payment-options", deps.catalog.PaymentOptions)
	api.GET("/filter-presets", deps.catalog.Presets)
	api.GET("/filter-presets/:name", deps.catalog.ApplyPreset)

	me := api.Group("/me", middleware.JWT(deps.tokens), middleware.RequireRoles(models.RoleStudent, models.RoleAdmin))
	me.GET("/journey", deps.journey.Journey)
	me.GET("/eligible-courses", deps.journey.EligibleCourses)
	me.GET("/saved-searches", deps.savedSearch.List)
	me.POST("/saved-searches", deps.savedSearch.Create)
	me.DELETE("/saved-searches/:index", deps.savedSearch.Delete)

	admin := api.Group("/admin", middleware.JWT(deps.tokens), middleware.RequireRoles(models.RoleAdmin))
	admin.DELETE("/catalog/cache", deps.catalog.InvalidateCache)
	admin.GET("/metrics/summary", deps.observations.Summary)

	return r
}
