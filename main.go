package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"agrilink-backend/config"
	"agrilink-backend/database"
	"agrilink-backend/internal/api"
	"agrilink-backend/internal/middleware"
	"agrilink-backend/internal/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	// Initialize database
	db, err := database.Initialize(cfg.Database.Path)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	// Run database migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Initialize services
	authService := services.NewAuthService(cfg.JWT.Secret, cfg.JWT.ExpiresIn, cfg.JWT.Issuer)
	userService := services.NewUserService(db)
	productService := services.NewProductService(db)
	orderService := services.NewOrderService(db)
	supplyChainService := services.NewSupplyChainService(db)
	programService := services.NewProgramService(db)
	inventoryService := services.NewInventoryService(db)
	forumService := services.NewForumService(db)
	sensorService := services.NewSensorService(db)
	geoDataService := services.NewGeoDataService(db)
	notificationService := services.NewNotificationService(db)
	analyticsService := services.NewAnalyticsService(db)
	weatherService := services.NewWeatherService(cfg.Weather)
	recommendationService := services.NewRecommendationService(db, geoDataService)

	// Initialize handlers
	authHandler := api.NewAuthHandler(authService, userService)
	userHandler := api.NewUserHandler(userService)
	productHandler := api.NewProductHandler(productService)
	orderHandler := api.NewOrderHandler(orderService)
	supplyChainHandler := api.NewSupplyChainHandler(supplyChainService)
	programHandler := api.NewProgramHandler(programService)
	inventoryHandler := api.NewInventoryHandler(inventoryService)
	forumHandler := api.NewForumHandler(forumService)
	sensorHandler := api.NewSensorHandler(sensorService)
	geoDataHandler := api.NewGeoDataHandler(geoDataService)
	recommendationHandler := api.NewRecommendationHandler(recommendationService)
	notificationHandler := api.NewNotificationHandler(notificationService)
	analyticsHandler := api.NewAnalyticsHandler(analyticsService)
	weatherHandler := api.NewWeatherHandler(weatherService)

	authMiddleware := middleware.NewAuthMiddleware(authService, userService)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})

	v1 := router.Group("/api/v1")
	{
		// Public auth endpoints
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", authMiddleware.AuthRequired(), authHandler.Me)
			auth.PUT("/me", authMiddleware.AuthRequired(), authHandler.UpdateMe)
		}

		// Product browsing is public; mutations require auth
		products := v1.Group("/products")
		{
			products.GET("", authMiddleware.OptionalAuth(), productHandler.List)
			products.GET("/:id", authMiddleware.OptionalAuth(), productHandler.Get)
			products.POST("", authMiddleware.AuthRequired(), productHandler.Create)
			products.GET("/mine", authMiddleware.AuthRequired(), productHandler.ListMine)
			products.PUT("/:id", authMiddleware.AuthRequired(), productHandler.Update)
			products.DELETE("/:id", authMiddleware.AuthRequired(), productHandler.Delete)
		}

		orders := v1.Group("/orders", authMiddleware.AuthRequired())
		{
			orders.POST("", orderHandler.Create)
			orders.GET("", orderHandler.List)
			orders.GET("/:id", orderHandler.Get)
			orders.DELETE("/:id", orderHandler.Cancel)
			orders.PUT("/:id/status", orderHandler.UpdateStatus)
		}

		supplyChain := v1.Group("/supply-chain", authMiddleware.AuthRequired())
		{
			supplyChain.GET("/:orderId", supplyChainHandler.Get)
			supplyChain.PUT("/:orderId", supplyChainHandler.Update)
		}

		programs := v1.Group("/programs", authMiddleware.AuthRequired())
		{
			programs.GET("", programHandler.List)
			programs.GET("/:id", programHandler.Get)
			programs.POST("", programHandler.Create)
			programs.POST("/:id/apply", programHandler.Apply)
			programs.PUT("/:id/applicants/:farmerId", programHandler.UpdateApplicant)
			programs.DELETE("/:id", programHandler.Delete)
		}

		inventory := v1.Group("/inventory", authMiddleware.AuthRequired())
		{
			inventory.POST("", inventoryHandler.Create)
			inventory.GET("", inventoryHandler.List)
			inventory.GET("/:id", inventoryHandler.Get)
			inventory.PUT("/:id", inventoryHandler.Update)
			inventory.DELETE("/:id", inventoryHandler.Delete)
		}

		// Post browsing is public; writing requires auth
		posts := v1.Group("/posts")
		{
			posts.GET("", authMiddleware.OptionalAuth(), forumHandler.ListPosts)
			posts.GET("/:id", authMiddleware.OptionalAuth(), forumHandler.GetPost)
			posts.POST("", authMiddleware.AuthRequired(), forumHandler.CreatePost)
			posts.POST("/:id/comments", authMiddleware.AuthRequired(), forumHandler.AddComment)
			posts.POST("/:id/like", authMiddleware.AuthRequired(), forumHandler.ToggleLike)
			posts.DELETE("/:id", authMiddleware.AuthRequired(), forumHandler.DeletePost)
			posts.DELETE("/:id/comments/:commentId", authMiddleware.AuthRequired(), forumHandler.DeleteComment)
		}

		sensors := v1.Group("/sensors", authMiddleware.AuthRequired())
		{
			sensors.POST("", sensorHandler.Record)
			sensors.GET("", sensorHandler.List)
			sensors.GET("/advice", sensorHandler.Advice)
			sensors.DELETE("/:id", sensorHandler.Delete)
		}

		geoData := v1.Group("/geo-data", authMiddleware.AuthRequired())
		{
			geoData.POST("", geoDataHandler.Create)
			geoData.GET("", geoDataHandler.ListAll)
			geoData.GET("/my-farm", geoDataHandler.ListMine)
			geoData.GET("/:id", geoDataHandler.Get)
			geoData.PUT("/:id", geoDataHandler.Update)
			geoData.DELETE("/:id", geoDataHandler.Delete)
		}

		notifications := v1.Group("/notifications", authMiddleware.AuthRequired())
		{
			notifications.POST("", notificationHandler.Send)
			notifications.POST("/broadcast", notificationHandler.Broadcast)
			notifications.GET("", notificationHandler.List)
			notifications.PATCH("/:id/read", notificationHandler.MarkRead)
			notifications.DELETE("/:id", notificationHandler.Delete)
		}

		users := v1.Group("/users", authMiddleware.AuthRequired())
		{
			users.GET("", userHandler.List)
			users.PUT("/me", authHandler.UpdateMe)
			users.GET("/:id", userHandler.Get)
			users.DELETE("/:id", userHandler.Delete)
		}

		analytics := v1.Group("/analytics", authMiddleware.AuthRequired())
		{
			analytics.GET("/dashboard", analyticsHandler.Dashboard)
			analytics.GET("/sales", analyticsHandler.Sales)
			analytics.GET("/top-products", analyticsHandler.TopProducts)
			analytics.GET("/irrigation-trends", analyticsHandler.IrrigationTrends)
			analytics.GET("/forum", analyticsHandler.Forum)
		}

		v1.GET("/weather", authMiddleware.AuthRequired(), weatherHandler.Current)
		v1.GET("/recommendations", authMiddleware.AuthRequired(), recommendationHandler.ForFarmer)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Printf("Server listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed:", err)
		}
	}()

	// Graceful shutdown on interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown:", err)
	}
	log.Println("Server stopped")
}
