package routes

import (
	"net/http"

	"device-checkout/internal/config"
	"device-checkout/internal/delivery/http/handler"
	"device-checkout/internal/infrastructure/database/postgres"
	"device-checkout/internal/logger"
	"device-checkout/internal/middleware"
	"device-checkout/internal/usecase/auth"
	"device-checkout/internal/usecase/device"
	"device-checkout/internal/usecase/devicelog"
	"device-checkout/internal/usecase/repair"
	"device-checkout/internal/usecase/school"
	"device-checkout/pkg/opshero"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(cfg *config.Config, db *postgres.DB) *gin.Engine {
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(&cfg.CORS))
	router.Use(middleware.RequestSizeLimitMiddleware(middleware.DefaultMaxRequestSize))
	router.Use(middleware.RateLimitMiddleware(cfg.RateLimit.GeneralRPS, cfg.RateLimit.GeneralBurst))

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"message": "Database connection failed",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Service is running",
		})
	})

	deviceRepository := postgres.NewDeviceRepository(db)
	logRepository := postgres.NewDeviceLogRepository(db)
	schoolRepository := postgres.NewSchoolRepository(db)
	repairRepository := postgres.NewRepairTicketRepository(db)
	userRepository := postgres.NewUserRepository(db)
	sessionRepository := postgres.NewSessionRepository(db)

	authService := auth.NewService(userRepository, sessionRepository, &cfg.Auth)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(authService)

	deviceService := device.NewService(deviceRepository, schoolRepository)
	deviceHandler := handler.NewDeviceHandler(deviceService)

	logService := devicelog.NewService(logRepository)
	logHandler := handler.NewLogHandler(logService)

	schoolService := school.NewService(schoolRepository)
	schoolHandler := handler.NewSchoolHandler(schoolService)

	opsHeroClient := opshero.NewClient(&cfg.OpsHero)
	repairService := repair.NewService(repairRepository, opsHeroClient)
	repairHandler := handler.NewRepairHandler(repairService)

	api := router.Group("/api")
	{
		// Login carries its own stricter limiter on top of the general one.
		api.POST("/auth/login",
			middleware.RateLimitMiddleware(cfg.RateLimit.LoginRPS, cfg.RateLimit.LoginBurst),
			authHandler.Login,
		)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(authService))
		{
			authHandler.RegisterProtectedRoutes(protected)
			deviceHandler.RegisterRoutes(protected)
			schoolHandler.RegisterRoutes(protected)
			repairHandler.RegisterRoutes(protected)

			admin := protected.Group("")
			admin.Use(middleware.AdminOnly())
			{
				deviceHandler.RegisterAdminRoutes(admin)
				schoolHandler.RegisterAdminRoutes(admin)
				logHandler.RegisterAdminRoutes(admin)
				repairHandler.RegisterAdminRoutes(admin)
				userHandler.RegisterAdminRoutes(admin)
			}
		}
	}

	logger.Info("All routes initialized")
	return router
}
