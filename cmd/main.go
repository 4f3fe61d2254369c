package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lunora-app/lunora/config"
	"github.com/lunora-app/lunora/database"
	_ "github.com/lunora-app/lunora/docs" // Swagger docs - auto-generated
	userctrl "github.com/lunora-app/lunora/internal/controller/user"
	webhookctrl "github.com/lunora-app/lunora/internal/controller/webhook"
	"github.com/lunora-app/lunora/internal/logger"
	"github.com/lunora-app/lunora/internal/mirror"
	"github.com/lunora-app/lunora/internal/model"
	"github.com/lunora-app/lunora/internal/repository"
	"github.com/lunora-app/lunora/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Lunora Study Session API
// @version 1.0
// @description API for AI-generated study quizzes: sessions, per-subtopic performance, attempt history and subscription webhooks.
// @contact.name API Support
// @contact.email support@lunora.app
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			database.NewRedis,    // Provides redis.UniversalClient
			NewGinEngine,         // Provides *gin.Engine
		),

		// Storage layer
		fx.Provide(
			repository.NewSessionRepository,
			repository.NewUserRepository,
			mirror.NewSessionMirror,
		),

		// Services layer
		fx.Provide(
			service.NewGeminiQuizService,
			service.NewSessionService,
			service.NewProgressService,
			service.NewLifecycleService,
			service.NewBillingWebhookService,
		),

		// API controllers layer
		fx.Provide(
			userctrl.NewSessionController,
			webhookctrl.NewBillingWebhookController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Route gin's request log through zerolog.
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", webhookctrl.SignatureHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages the server
// lifecycle through fx hooks.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	sessionCtrl *userctrl.SessionController,
	billingCtrl *webhookctrl.BillingWebhookController,
) {
	apiGroup := router.Group("/api/v1")
	{
		sessionsGroup := apiGroup.Group("/sessions")
		sessionsGroup.POST("", sessionCtrl.CreateSession)
		sessionsGroup.GET("", sessionCtrl.ListSessions)
		sessionsGroup.DELETE("", sessionCtrl.DeleteSessionsBySubject)
		sessionsGroup.GET("/:session_id", sessionCtrl.GetSession)
		sessionsGroup.DELETE("/:session_id", sessionCtrl.DeleteSession)
		sessionsGroup.POST("/:session_id/answers", sessionCtrl.RecordAnswer)
		sessionsGroup.POST("/:session_id/complete", sessionCtrl.CompleteSession)
		sessionsGroup.POST("/:session_id/reset", sessionCtrl.ResetSession)
		sessionsGroup.POST("/:session_id/questions", sessionCtrl.AddExtraQuestions)

		apiGroup.POST("/webhooks/billing", billingCtrl.HandleBillingEvent)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Lunora API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Session{},
		&model.User{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
