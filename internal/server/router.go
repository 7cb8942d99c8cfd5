package server

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/explainmycode-backend/internal/http/handlers"
	"github.com/yungbote/explainmycode-backend/internal/http/middleware"
	"github.com/yungbote/explainmycode-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log                *logger.Logger
	HealthHandler      *handlers.HealthHandler
	UserHandler        *handlers.UserHandler
	ExplanationHandler *handlers.ExplanationHandler
	TutorialHandler    *handlers.TutorialHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.AttachTraceContext())
	router.Use(middleware.RequestLogger(cfg.Log))

	router.GET("/healthcheck", cfg.HealthHandler.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/auth/sync-user", cfg.UserHandler.SyncUser)

		explanations := api.Group("/explanations")
		{
			explanations.POST("/generate", cfg.ExplanationHandler.Generate)
			explanations.POST("/save", cfg.ExplanationHandler.Save)
			explanations.GET("/user", cfg.ExplanationHandler.ListByUser)
			explanations.GET("/:id", cfg.ExplanationHandler.GetByID)
			explanations.PUT("/:id", cfg.ExplanationHandler.Update)
			explanations.DELETE("/:id", cfg.ExplanationHandler.Delete)

			learn := explanations.Group("/learn")
			{
				learn.POST("", cfg.TutorialHandler.Generate)
				learn.POST("/save", cfg.TutorialHandler.Save)
				learn.GET("/user", cfg.TutorialHandler.ListByUser)
				learn.GET("/:id", cfg.TutorialHandler.GetByID)
				learn.DELETE("/:id", cfg.TutorialHandler.Delete)
			}
		}
	}

	return router
}
