package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/arora427/HomeVerse/internal/api/handlers"
	"github.com/arora427/HomeVerse/internal/api/middleware"
	"github.com/arora427/HomeVerse/internal/config"
	"github.com/arora427/HomeVerse/internal/services"
	"github.com/arora427/HomeVerse/internal/storage"
)

// SetupRouter configures and returns the main Gin engine.
func SetupRouter(cfg *config.Config, db *mongo.Database, store storage.Storage) *gin.Engine {
	userService := services.NewUserService(db)
	propertyService := services.NewPropertyService(db, cfg)
	contactService := services.NewContactService(db)

	authHandler := handlers.NewAuthHandler(cfg, userService)
	propertyHandler := handlers.NewPropertyHandler(cfg, propertyService, store)
	contactHandler := handlers.NewContactHandler(contactService)

	r := gin.Default()
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	api := r.Group("/api")
	{
		authRoutes := api.Group("/auth")
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.GET("/user", middleware.AuthMiddleware(cfg.JwtSecret), authHandler.CurrentUser)

		// Public browse routes
		api.GET("/properties", propertyHandler.ListProperties)
		api.GET("/properties/:id", propertyHandler.GetPropertyByID)

		// Owner-only mutations
		propertyMutations := api.Group("/properties")
		propertyMutations.Use(middleware.AuthMiddleware(cfg.JwtSecret))
		{
			propertyMutations.POST("", propertyHandler.CreateProperty)
			propertyMutations.PUT("/:id", propertyHandler.UpdateProperty)
			propertyMutations.DELETE("/:id", propertyHandler.DeleteProperty)
		}

		api.POST("/contact", contactHandler.CreateContact)
		api.GET("/contact", contactHandler.ListContacts)

		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Server is running"})
		})
	}

	// Locally stored uploads are served by this process; S3 references are
	// absolute URLs served by the bucket.
	if cfg.StorageDriver == "local" {
		r.Static("/uploads", cfg.UploadDir)
	}

	return r
}
