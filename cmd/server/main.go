package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging
	"os"      // Creating the upload directory

	"github.com/satya-datta/beyond-dreams/internal/api"        // Custom package for API handlers
	"github.com/satya-datta/beyond-dreams/internal/config"     // Custom package for configuration
	"github.com/satya-datta/beyond-dreams/internal/db"         // Custom package for the database
	"github.com/satya-datta/beyond-dreams/internal/middleware" // Custom package for middleware
	"github.com/satya-datta/beyond-dreams/internal/referral"   // Referral commission core

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	database, err := db.Open(cfg.DSN())
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Make sure the upload directory exists
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logrus.Fatalf("failed to create upload dir: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Referral service shares the process-wide DB handle
	referrals := referral.NewService(database)

	// Uploaded avatar and package images are served as static files
	r.Static("/uploads", cfg.UploadDir)

	// Inject Redis client into context for handlers that invalidate caches
	withRedis := func(c *gin.Context) {
		c.Set("redisClient", redisClient)
		c.Next()
	}

	// Public routes (rate limited)
	public := r.Group("/")
	public.Use(middleware.RateLimitMiddleware(), withRedis)
	public.POST("/create-user", api.CreateUserHandler(database, referrals, cfg.UploadDir))
	public.PUT("/update_user/:user_id", api.UpdateUserHandler(database, referrals, cfg.UploadDir))
	public.GET("/getuser_details/:user_id", api.GetUserDetailsHandler(database, redisClient))
	public.GET("/getwallet/:user_id", api.GetWalletHandler(database, redisClient))
	public.GET("/wallet_transactions/:user_id", api.GetWalletTransactionsHandler(database))
	public.POST("/user-bank-details", api.CreateBankDetailsHandler(database))
	public.GET("/user-bank-details/:user_id", api.GetBankDetailsHandler(database))
	public.PUT("/user-bank-details/:user_id", api.UpdateBankDetailsHandler(database))
	public.POST("/authadmin", api.AuthAdminHandler(database, cfg.JWTSecret))
	public.POST("/logout", api.LogoutHandler())

	// Admin routes (protected by JWT, re-checked against admin_details)
	admin := r.Group("/")
	admin.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnlyMiddleware(database), withRedis)
	admin.GET("/auth/validate", api.ValidateAdminHandler(database)) // Token validation endpoint

	// Course management
	admin.POST("/create-course", api.CreateCourseHandler(database))
	admin.GET("/getallcourses", api.GetAllCoursesHandler(database))
	admin.GET("/getspecific_course/:course_id", api.GetCourseHandler(database))
	admin.PUT("/updatecoursedetails/:course_id", api.UpdateCourseHandler(database))
	admin.DELETE("/delete-course/:course_id", api.DeleteCourseHandler(database))
	admin.POST("/create-topic", api.CreateTopicHandler(database))
	admin.GET("/gettopics/:course_id", api.GetTopicsHandler(database))
	admin.DELETE("/delete-topic/:topic_id", api.DeleteTopicHandler(database))

	// Package management
	admin.POST("/create-package", api.CreatePackageHandler(database, cfg.UploadDir))
	admin.PUT("/update-package/:package_id", api.UpdatePackageHandler(database, cfg.UploadDir))
	admin.DELETE("/delete-package/:package_id", api.DeletePackageHandler(database))
	admin.GET("/packages-with-courses", api.ListPackagesHandler(database, redisClient))
	admin.GET("/package/:package_id", api.GetPackageHandler(database))
	admin.POST("/course-mapping", api.MapCoursesHandler(database))
	admin.DELETE("/package-courses/:package_id", api.RemoveCoursesHandler(database))
	admin.GET("/courses", api.ListCourseOptionsHandler(database))

	// Dashboard listings
	admin.GET("/users", api.ListUsersHandler(database, redisClient))
	admin.GET("/transactions", api.ListTransactionsHandler(database, redisClient))

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
