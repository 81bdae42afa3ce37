package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ren89/property-listing-app/internal/api/handlers"
	"github.com/ren89/property-listing-app/internal/api/middleware"
	"github.com/ren89/property-listing-app/internal/config"
	"github.com/ren89/property-listing-app/internal/services"
	"github.com/ren89/property-listing-app/internal/session"
	"github.com/ren89/property-listing-app/internal/storage"
	"github.com/ren89/property-listing-app/internal/store"
)

// SetupRouter configures and returns the main Gin engine.
func SetupRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client) *gin.Engine {
	// Initialize services needed by API handlers HERE
	s3StorageService, err := storage.NewS3Storage(cfg)
	if err != nil {
		log.Fatalf("CRITICAL: Failed to initialize S3 storage for API: %v", err)
	}
	userService := services.NewUserService(db)
	propertyService := services.NewPropertyService(db, s3StorageService)

	sessionStore := session.NewStore(db, rdb, userService, cfg.JwtSecret, cfg.SessionTTL)
	sessionStore.Subscribe(func(ev session.Event) {
		if ev.SignedIn && ev.User != nil {
			log.Printf("Session started for user %s", ev.User.ID)
		} else if !ev.SignedIn {
			log.Printf("Session ended")
		}
	})

	listings := store.New(propertyService)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	// Initialize handlers
	restAuthHandler := handlers.NewRestAuthHandler(sessionStore, int(cfg.SessionTTL.Seconds()))
	restPropertyHandler := handlers.NewRestPropertyHandler(propertyService, listings)
	restUserHandler := handlers.NewRestUserHandler()
	restStorageHandler := handlers.NewRestStorageHandler(s3StorageService, cfg.ImageMaxSizeMB)

	// Page routes: browser navigation goes through the access table and is
	// redirected home when the session does not clear the bar.
	pages := r.Group("/")
	pages.Use(middleware.PageGuard(sessionStore))
	{
		pages.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"page": "home"})
		})
		pages.GET("/property", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"page": "property"})
		})
		pages.GET("/admin", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"page": "admin"})
		})
	}

	// Auth routes are public.
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", restAuthHandler.SignUp)
		authGroup.POST("/signin", restAuthHandler.SignIn)
		authGroup.POST("/signout", restAuthHandler.SignOut)
	}

	v1 := r.Group("/v1")
	{
		v1.GET("/ping", func(c *gin.Context) {
			c.String(http.StatusOK, "pong")
		})

		// Authenticated routes: any signed-in role may browse.
		authRequired := v1.Group("/")
		authRequired.Use(middleware.AuthMiddleware(sessionStore))
		{
			authRequired.GET("/me", restUserHandler.GetMe)
			authRequired.GET("/properties", restPropertyHandler.ListProperties)
			authRequired.GET("/properties/:id", restPropertyHandler.GetPropertyByID)
		}

		// Admin routes: listing mutations and image uploads.
		adminRequired := v1.Group("/")
		adminRequired.Use(middleware.AuthMiddleware(sessionStore), middleware.RequireRole("Admin"))
		{
			adminRequired.POST("/properties", restPropertyHandler.CreateProperty)
			adminRequired.PATCH("/properties/:id", restPropertyHandler.UpdateProperty)
			adminRequired.DELETE("/properties/:id", restPropertyHandler.DeleteProperty)
			adminRequired.POST("/images", restStorageHandler.UploadImage)
		}
	}

	return r
}
