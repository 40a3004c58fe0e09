package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Thaihung204/CreditNoVa/internal/auth"
	"github.com/Thaihung204/CreditNoVa/internal/config"
	"github.com/Thaihung204/CreditNoVa/internal/http/handlers"
	"github.com/Thaihung204/CreditNoVa/internal/http/middleware"
	"github.com/Thaihung204/CreditNoVa/internal/version"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Dependencies struct {
	Pinger        handlers.Pinger
	SurveyHandler *handlers.SurveyHandler
	AuthHandler   *handlers.AuthHandler
	AdminHandler  *handlers.AdminHandler
	JWTManager    *auth.JWTManager
}

func NewRouter(cfg config.Config, logger *slog.Logger, deps Dependencies) *gin.Engine {
	if cfg.Env == "prod" || cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(func(c *gin.Context) {
		logger.Info("request", "method", c.Request.Method, "path", c.Request.URL.Path)
		c.Next()
	})
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: cfg.CORSAllowCredentials,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestBodyLimit(cfg.MaxUploadBytes))

	health := handlers.NewHealthHandler(deps.Pinger)
	meta := handlers.NewMetaHandler(cfg.Env, version.Version)

	r.GET("/health", health.Health)
	r.GET("/ready", health.Ready)
	r.GET("/v1/meta", meta.GetMeta)

	if deps.SurveyHandler != nil {
		surveyGroup := r.Group("/survey")
		surveyGroup.GET("", deps.SurveyHandler.ListSurveys)
		surveyGroup.GET("/:id", deps.SurveyHandler.GetSurvey)
		surveyGroup.POST("", deps.SurveyHandler.CreateSurvey)
		surveyGroup.PUT("/:id", deps.SurveyHandler.UpdateSurvey)
		surveyGroup.PATCH("/:id", deps.SurveyHandler.PatchSurvey)
		surveyGroup.PUT("/:id/score", deps.SurveyHandler.UpdateScore)
		surveyGroup.DELETE("/:id", deps.SurveyHandler.DeleteSurvey)
		surveyGroup.POST("/:id/upload-salary", deps.SurveyHandler.UploadSalarySlip)
		surveyGroup.POST("/:id/upload-utility", deps.SurveyHandler.UploadUtilityBill)
		surveyGroup.GET("/:id/salary-slip", deps.SurveyHandler.GetSalarySlip)
		surveyGroup.GET("/:id/utility-bill", deps.SurveyHandler.GetUtilityBill)
	}

	if deps.AuthHandler != nil && deps.JWTManager != nil {
		authGroup := r.Group("/v1/auth")
		authGroup.POST("/login", deps.AuthHandler.Login)
		authGroup.POST("/refresh", deps.AuthHandler.Refresh)
		authGroup.POST("/logout", deps.AuthHandler.Logout)

		protected := authGroup.Group("")
		protected.Use(middleware.RequireAuth(deps.JWTManager))
		protected.GET("/me", deps.AuthHandler.Me)

		if deps.AdminHandler != nil {
			adminGroup := r.Group("/admin")
			adminGroup.Use(middleware.RequireAuth(deps.JWTManager))
			adminGroup.GET("/stats", deps.AdminHandler.GetStats)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
	})

	return r
}
