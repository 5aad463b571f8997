package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"sheharfix-be/config"
	"sheharfix-be/controllers"
	"sheharfix-be/middlewares"
	"sheharfix-be/routes"
	"sheharfix-be/store"
	"sheharfix-be/uploads"
)

func openStore() store.Store {
	if os.Getenv("DATABASE_URL") != "" {
		db := config.ConnectPostgres()
		pgStore, err := store.NewPostgresStore(db)
		if err != nil {
			log.Fatalf("Failed to set up Postgres store: %v", err)
		}
		if os.Getenv("SEED_DEMO_DATA") == "true" {
			if err := pgStore.SeedDemoData(context.Background()); err != nil {
				log.Println("Demo seed failed:", err)
			}
		}
		return pgStore
	}

	db := config.ConnectDB()
	mongoStore, err := store.NewMongoStore(db)
	if err != nil {
		log.Fatalf("Failed to set up MongoDB store: %v", err)
	}
	return mongoStore
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	st := openStore()

	uploadsDir := os.Getenv("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = "./uploads"
	}
	uploader := uploads.FromEnv(uploadsDir)

	rateLimit := 20
	if v, err := strconv.Atoi(os.Getenv("ISSUE_RATE_LIMIT")); err == nil && v > 0 {
		rateLimit = v
	}
	rateLimiter := middlewares.IssueRateLimiter(config.ConnectRedis(), rateLimit)

	r := gin.Default()
	r.Use(cors.Default())
	r.Static("/uploads", uploadsDir)

	authController := controllers.NewAuthController(st, uploader)
	issueController := controllers.NewIssueController(st, uploader)
	ngoController := controllers.NewNGOController(st)
	analyticsController := controllers.NewAnalyticsController(st)

	routes.AuthRoutes(r, authController)
	routes.IssueRoutes(r, issueController, ngoController, rateLimiter)
	routes.NGORoutes(r, ngoController)
	routes.AnalyticsRoutes(r, analyticsController)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
