package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/qrfolio-api/internal/config"
	"github.com/yourusername/qrfolio-api/internal/handler"
	"github.com/yourusername/qrfolio-api/internal/middleware"
	"github.com/yourusername/qrfolio-api/internal/repository"
	"github.com/yourusername/qrfolio-api/internal/service"
)

func main() {
	// ── Logging ──────────────────────────────────────────
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// ── Config ───────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("Starting QRFolio API")

	// ── Database ─────────────────────────────────────────
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Database connected")

	// ── Repositories ─────────────────────────────────────
	userRepo := repository.NewUserRepo(pool)
	resumeRepo := repository.NewResumeRepo(pool)
	sectionRepo := repository.NewSectionRepo(pool)
	custRepo := repository.NewStripeCustomerRepo(pool)
	subRepo := repository.NewSubscriptionRepo(pool)

	// ── Services ─────────────────────────────────────────
	qrClient := service.NewQRClient(cfg.QRAPIBaseURL)
	stripeService := service.NewStripeService(cfg, custRepo, subRepo, userRepo)

	storageService, err := service.NewStorageService(ctx, cfg.StorageBucket)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize cloud storage")
	}

	// ── Handlers ─────────────────────────────────────────
	authHandler := handler.NewAuthHandler(userRepo)
	resumeHandler := handler.NewResumeHandler(cfg, resumeRepo, sectionRepo)
	publicHandler := handler.NewPublicHandler(resumeRepo, sectionRepo)
	qrHandler := handler.NewQRHandler(cfg, qrClient, resumeRepo, subRepo)
	photoHandler := handler.NewPhotoHandler(storageService, resumeRepo)
	importHandler := handler.NewImportHandler()
	billingHandler := handler.NewBillingHandler(stripeService, subRepo)
	dashboardHandler := handler.NewDashboardHandler(cfg, resumeRepo, sectionRepo, subRepo)

	// ── Middleware ────────────────────────────────────────
	authMiddleware, err := middleware.NewAuthMiddleware(cfg.FirebaseProjectID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize Firebase auth")
	}
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS)

	// ── Router ───────────────────────────────────────────
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger())

	// CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check (unauthenticated)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "qrfolio-api",
			"time":    time.Now().UTC(),
		})
	})

	// ── Public Routes ────────────────────────────────────
	// Shared resume pages and the Stripe webhook skip Firebase auth.
	r.GET("/resume/public/:slug", publicHandler.GetBySlug)
	r.POST("/billing/webhook", billingHandler.HandleWebhook)

	// ── Authenticated Routes ─────────────────────────────
	api := r.Group("/", authMiddleware.Authenticate(), rateLimiter.Limit())
	{
		// After auth middleware verifies Firebase token, resolve internal user ID
		api.Use(resolveUserID(userRepo))

		// Auth
		api.POST("/auth/session", authHandler.Session)

		// Resume editor
		api.GET("/resume", resumeHandler.GetResume)
		api.PUT("/resume", resumeHandler.UpdateResume)
		api.PUT("/resume/sections/:section", resumeHandler.UpdateSection)
		api.GET("/resume/preview", resumeHandler.Preview)
		api.GET("/resume/score", resumeHandler.Score)
		api.GET("/resume/share", resumeHandler.Share)
		api.PUT("/resume/active", resumeHandler.SetActive)

		// Photo
		api.POST("/resume/photo", photoHandler.Upload)
		api.DELETE("/resume/photo", photoHandler.Delete)

		// PDF import
		api.POST("/resume/import", importHandler.Import)

		// QR codes. SVG and 1000px output are checked against the plan per
		// request inside the download handlers.
		api.POST("/qr", qrHandler.CreateQR)
		api.GET("/qr/download", qrHandler.DownloadQR)
		api.POST("/qr/bulk", qrHandler.CreateBulk)
		api.POST("/qr/bulk/download", qrHandler.DownloadBulk)

		// Billing
		api.GET("/billing/subscription", billingHandler.GetSubscription)
		api.POST("/billing/checkout", billingHandler.CreateCheckout)
		api.POST("/billing/portal", billingHandler.CreatePortal)

		// Dashboard
		api.GET("/dashboard", dashboardHandler.Get)
	}

	// ── Server ───────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Msg("QRFolio API server running")

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

// resolveUserID maps Firebase UID to internal user UUID for all subsequent handlers
func resolveUserID(userRepo *repository.UserRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		firebaseUID := middleware.GetFirebaseUID(c)
		if firebaseUID == "" {
			c.Next()
			return
		}

		user, err := userRepo.FindByFirebaseUID(c.Request.Context(), firebaseUID)
		if err != nil {
			log.Error().Err(err).Msg("Failed to resolve user ID")
			c.Next()
			return
		}
		if user != nil {
			c.Set(middleware.ContextKeyUserID, user.ID.String())
		}

		c.Next()
	}
}

// requestLogger logs every request with zerolog
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= 400 {
			event = log.Warn()
		}
		if status >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", status).
			Dur("latency", latency).
			Str("ip", c.ClientIP()).
			Msg(fmt.Sprintf("%s %s", c.Request.Method, path))
	}
}
