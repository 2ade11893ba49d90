package app

import (
	"examprep_backend/docs"
	"examprep_backend/internal/config"
	"examprep_backend/internal/middleware"
	"examprep_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.Profile)

		planner := authGroup.Group("/planner")
		{
			planner.GET("", c.planner.State)
			planner.GET("/week", c.planner.Week)
			planner.GET("/revision-queue", c.planner.RevisionQueue)
			planner.POST("/tasks/:taskId/toggle", c.planner.ToggleTask)
			planner.POST("/replan", c.planner.Replan)
			planner.PUT("/settings", c.planner.UpdateSettings)
			planner.POST("/export", c.planner.Export)
		}

		practice := authGroup.Group("/practice")
		{
			practice.POST("/attempts", c.practice.RecordAttempts)
		}
	}
}
