package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rentease/rentease-backend/config"
	"github.com/rentease/rentease-backend/internal/app/controller"
	"github.com/rentease/rentease-backend/internal/middleware"
)

type Router struct {
	authController     *controller.AuthController
	propertyController *controller.PropertyController
	authMiddleware     *middleware.AuthMiddleware
	config             *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	propertyController *controller.PropertyController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:     authController,
		propertyController: propertyController,
		authMiddleware:     authMiddleware,
		config:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "RentEase API is running",
		})
	})

	api := router.Group("/api")
	{
		api.POST("/signup", r.authController.Signup)
		api.POST("/login", r.authController.Login)
		api.POST("/forgot-password", r.authController.ForgotPassword)
		api.POST("/reset-password", r.authController.ResetPassword)

		properties := api.Group("/properties")
		{
			properties.GET("", r.propertyController.GetAll)

			// Literal routes before :id so gin does not treat them as ids
			properties.GET("/my-properties",
				r.authMiddleware.Authenticate(),
				r.propertyController.GetMyProperties,
			)
			properties.POST("/add-property",
				r.authMiddleware.Authenticate(),
				r.propertyController.Create,
			)

			properties.GET("/:id", r.propertyController.GetByID)
			properties.PUT("/:id",
				r.authMiddleware.Authenticate(),
				r.propertyController.Update,
			)
			properties.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.propertyController.Delete,
			)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
