package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/securecheck/internal/cache"
	"github.com/jengzang/securecheck/internal/config"
	"github.com/jengzang/securecheck/internal/database"
	"github.com/jengzang/securecheck/internal/handler"
	"github.com/jengzang/securecheck/internal/middleware"
	"github.com/jengzang/securecheck/internal/repository"
	"github.com/jengzang/securecheck/internal/service"
)

// Server bundles the router with the resources it must release
type Server struct {
	Router  *gin.Engine
	limiter *middleware.RateLimiter
}

// Close stops background work started by the router
func (s *Server) Close() {
	s.limiter.Stop()
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, store *database.Store) *Server {
	trafficRepo := repository.NewTrafficRepository(store)
	reportRepo := repository.NewReportRepository(store)

	dashboardService := service.NewDashboardService(trafficRepo, cache.NewRecordCache(cfg.CacheTTL))
	reportService := service.NewReportService(reportRepo)
	predictionService := service.NewPredictionService()

	recordsHandler := handler.NewRecordsHandler(dashboardService)
	insightsHandler := handler.NewInsightsHandler(dashboardService)
	reportHandler := handler.NewReportHandler(reportService)
	predictionHandler := handler.NewPredictionHandler(predictionService)

	limiter := middleware.NewRateLimiter(cfg.RateLimit, time.Minute)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		body := gin.H{"status": "ok", "message": "SecureCheck API is running"}
		if err := store.Ping(c.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			body = gin.H{"status": "degraded", "message": err.Error()}
		}
		c.JSON(status, body)
	})

	// API 路由组
	api := r.Group("/api/v1")
	api.Use(limiter.Middleware())
	{
		records := api.Group("/records")
		{
			records.GET("", recordsHandler.GetRecords)
			records.GET("/filtered", recordsHandler.GetFilteredRecords)
		}

		api.GET("/filters", recordsHandler.GetFilterOptions)
		api.POST("/cache/invalidate", recordsHandler.InvalidateCache)

		insights := api.Group("/insights")
		{
			insights.GET("", insightsHandler.GetInsights)
			insights.GET("/value-counts", insightsHandler.GetValueCounts)
			insights.GET("/group-mean", insightsHandler.GetGroupMean)
			insights.GET("/arrests-by-hour", insightsHandler.GetArrestsByHour)
		}

		reports := api.Group("/reports")
		{
			reports.GET("", reportHandler.ListReports)
			reports.GET("/run", reportHandler.RunReport)
		}

		api.POST("/predictions", predictionHandler.Predict)
	}

	return &Server{Router: r, limiter: limiter}
}
