package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"technext-be/internal/cache"
	"technext-be/internal/config"
	"technext-be/internal/controllers"
	"technext-be/internal/database"
	"technext-be/internal/entities"
	"technext-be/internal/jwt"
	"technext-be/internal/logger"
	"technext-be/internal/middleware"
	"technext-be/internal/repository"
	"technext-be/internal/response"
	"technext-be/internal/service"
	"technext-be/internal/shortcode"
	"technext-be/internal/upload"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

func main() {
	log := logger.New()
	defer log.Sync()

	cfg := config.Load()

	// One database handle for the whole process, injected into every
	// repository and closed on shutdown.
	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}
	log.Info("database ready")

	// Redis is optional; without it every redirect lookup hits Postgres.
	var cacheClient cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			log.Warn("failed to connect to Redis, continuing without cache", zap.Error(err))
			cacheClient = nil
		} else {
			log.Info("connected to Redis cache")
			defer cacheClient.Close()
		}
	}

	uploads, err := upload.NewDiskStore(cfg.UploadDir, cfg.BaseURL)
	if err != nil {
		log.Fatal("failed to prepare upload directory", zap.Error(err))
	}

	urlRepo := repository.NewURLRepository(db, log)
	userRepo := repository.NewUserRepository(db, log)

	jwtService := jwt.NewJWTService(cfg.JWTSecret, time.Duration(cfg.JWTTTL)*time.Hour)

	allocator := shortcode.NewAllocator(shortcode.NewGenerator(), urlRepo)

	urlService := service.NewURLService(urlRepo, allocator, cacheClient, cfg.BaseURL, log)
	userService := service.NewUserService(userRepo, uploads)
	authService := service.NewAuthService(userRepo, jwtService)

	shortenerController := controllers.NewShortenerController(urlService, log)
	userController := controllers.NewUserController(userService)
	authController := controllers.NewAuthController(authService, cfg.JWTTTL*3600)
	qrcodeController := controllers.NewQRCodeController(urlService)

	generalRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	authRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst)
	shortenRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitShortenRPS), cfg.RateLimitShortenBurst)

	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Technext Project API"})
	})

	// Uploaded profile images are served statically.
	router.Static("/uploads", cfg.UploadDir)

	router.NoRoute(response.NoRoute)

	api := router.Group("/api/v1")
	api.Use(generalRateLimiter.LimitMiddleware())
	{
		auth := api.Group("/auth")
		auth.Use(authRateLimiter.LimitMiddleware())
		{
			auth.POST("/login", authController.Login)
			auth.POST("/logout", authController.Logout)
		}

		url := api.Group("/url")
		{
			url.POST("/shorten", shortenRateLimiter.LimitMiddleware(), middleware.Auth(jwtService), shortenerController.CreateShortURL)
			url.GET("/my-urls", middleware.Auth(jwtService), shortenerController.GetUserURLs)
			url.DELETE("/:shortCode", middleware.Auth(jwtService), shortenerController.DeleteURL)
			url.GET("/:shortCode/analytics", middleware.Auth(jwtService), shortenerController.GetURLAnalytics)
			url.GET("/:shortCode/qr", middleware.Auth(jwtService), qrcodeController.GenerateQRCode)

			// Public redirect, no auth
			url.GET("/:shortCode", shortenerController.RedirectToURL)
		}

		users := api.Group("/users")
		{
			users.GET("",
				middleware.Auth(jwtService, entities.RoleAdmin, entities.RoleSuperAdmin),
				userController.GetAllUsers)
			users.GET("/my-profile", middleware.Auth(jwtService), userController.GetMyProfile)
			users.POST("",
				middleware.Auth(jwtService, entities.RoleSuperAdmin),
				userController.CreateUser)
			users.PATCH("/update", middleware.Auth(jwtService), userController.UpdateUser)
			users.PATCH("/my-account",
				middleware.Auth(jwtService, entities.RoleUser, entities.RoleBusinessPartner),
				userController.DeleteMyAccount)
			users.GET("/:id", middleware.Auth(jwtService), userController.GetUserByID)
		}
	}

	// Short redirect without the API prefix
	router.GET("/url/:shortCode", shortenerController.RedirectToURL)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
}
