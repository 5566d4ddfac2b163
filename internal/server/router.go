package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/placementflow/placementflow-backend/internal/config"
	"github.com/placementflow/placementflow-backend/internal/handlers"
	"github.com/placementflow/placementflow-backend/internal/logger"
	"github.com/placementflow/placementflow-backend/internal/middleware"
	"github.com/placementflow/placementflow-backend/internal/services"
)

type RouterConfig struct {
	Log  *logger.Logger
	Cfg  *config.Config
	Auth services.AuthService

	AuthHandler       *handlers.AuthHandler
	JobHandler        *handlers.JobHandler
	GenerationHandler *handlers.GenerationHandler
	SessionHandler    *handlers.SessionHandler
	ProfileHandler    *handlers.ProfileHandler
	TrackingHandler   *handlers.TrackingHandler
}

func NewRouter(rc *RouterConfig) *gin.Engine {
	if rc.Cfg.LogMode == "prod" || rc.Cfg.LogMode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthcheck", handlers.Healthcheck)

	api := r.Group("/api")
	{
		api.POST("/register", rc.AuthHandler.Register)
		api.POST("/login", rc.AuthHandler.Login)
		api.GET("/jobs", rc.JobHandler.ListJobs)
	}

	protected := api.Group("")
	protected.Use(middleware.Auth(rc.Auth))
	{
		protected.POST("/generate-answer", rc.GenerationHandler.GenerateAnswer)
		protected.POST("/generate-cover-letters", rc.GenerationHandler.GenerateCoverLetters)
		protected.GET("/cover-letters", rc.GenerationHandler.ListCoverLetters)
		protected.GET("/credits", rc.GenerationHandler.GetCredits)

		protected.POST("/sessions", rc.SessionHandler.GetOrCreate)
		protected.GET("/sessions", rc.SessionHandler.List)
		protected.GET("/sessions/:id/history", rc.SessionHandler.History)

		protected.GET("/profile", rc.ProfileHandler.GetProfile)
		protected.PUT("/profile", rc.ProfileHandler.UpsertProfile)
		protected.GET("/skills", rc.ProfileHandler.GetSkills)
		protected.PUT("/skills", rc.ProfileHandler.UpsertSkills)

		protected.GET("/tracking", rc.TrackingHandler.List)
		protected.PUT("/tracking", rc.TrackingHandler.Upsert)
		protected.DELETE("/tracking/:jobId", rc.TrackingHandler.Delete)
	}

	return r
}
