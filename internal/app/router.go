package app

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"logitrack/internal/domain"
	"logitrack/internal/handler"
	"logitrack/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	UserHandler    *handler.UserHandler
	CargoHandler   *handler.CargoHandler
	RequestHandler *handler.RequestHandler
	RedisClient    *redis.Client
	NewRelicApp    *newrelic.Application
	JWTSecret      []byte
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(cors.Default())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.Idempotency(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	business := string(domain.RoleBusiness)
	driver := string(domain.RoleDriver)
	customer := string(domain.RoleCustomer)

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Public auth routes.
		auth := v1.Group("/auth")
		{
			auth.POST("/register", deps.UserHandler.Register)
			auth.POST("/login", deps.UserHandler.Login)
		}

		// Everything below requires a valid token.
		authed := v1.Group("")
		authed.Use(middleware.Authenticate(deps.JWTSecret))

		// Profile routes.
		users := authed.Group("/users")
		{
			users.GET("/me", deps.UserHandler.Me)
			users.PUT("/me", deps.UserHandler.UpdateMe)
		}

		// Driver directory.
		drivers := authed.Group("/drivers")
		{
			drivers.GET("/available", middleware.Authorize(business), deps.UserHandler.AvailableDrivers)
		}

		// Cargo routes.
		cargos := authed.Group("/cargos")
		{
			cargos.POST("", middleware.Authorize(business), deps.CargoHandler.Create)
			cargos.GET("", deps.CargoHandler.List)
			cargos.GET("/available", deps.CargoHandler.ListAvailable)
			cargos.PUT("/:id", middleware.Authorize(business), deps.CargoHandler.Update)
			cargos.DELETE("/:id", middleware.Authorize(business), deps.CargoHandler.Delete)
			cargos.POST("/:id/assign", middleware.Authorize(business), deps.CargoHandler.Assign)
			cargos.POST("/:id/accept", middleware.Authorize(driver), deps.CargoHandler.Accept)
			cargos.PATCH("/:id/status", middleware.Authorize(business, driver), deps.CargoHandler.UpdateStatus)
			cargos.PATCH("/:id/location", middleware.Authorize(business, driver), deps.CargoHandler.UpdateLocation)
			cargos.GET("/:id/track", deps.CargoHandler.Track)
		}

		// Cargo request routes.
		requests := authed.Group("/requests")
		{
			requests.POST("", middleware.Authorize(customer), deps.RequestHandler.Create)
			requests.GET("", middleware.Authorize(customer), deps.RequestHandler.ListOwn)
			requests.GET("/pending", middleware.Authorize(business), deps.RequestHandler.ListPending)
			requests.PUT("/:id", middleware.Authorize(customer), deps.RequestHandler.Update)
			requests.DELETE("/:id", middleware.Authorize(customer), deps.RequestHandler.Delete)
			requests.POST("/:id/accept", middleware.Authorize(business), deps.RequestHandler.Accept)
			requests.PATCH("/:id/reject", middleware.Authorize(business), deps.RequestHandler.Reject)
		}
	}

	return router
}
