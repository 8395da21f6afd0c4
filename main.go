// main.go
package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healthtrack/treatment-tracker/config"
	"github.com/healthtrack/treatment-tracker/endpoint"
	"github.com/healthtrack/treatment-tracker/middleware"
	"github.com/healthtrack/treatment-tracker/model"
)

func main() {
	// Load the configuration
	cfg := config.LoadConfig()

	db, err := config.ConnectMySQL()
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err := db.AutoMigrate(&model.Treatment{}); err != nil {
		log.Fatalf("Error migrating schema: %v", err)
	}

	// Rate limiting is optional; the limiter fails open without Redis.
	if _, err := config.ConnectRedis(); err != nil {
		log.Printf("Redis unavailable, rate limiting disabled: %v", err)
	}

	// Set Gin mode from config
	gin.SetMode(cfg.GinMode)

	// Create a Gin router with default middleware
	router := gin.Default()
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DatabaseMiddleware(db))

	router.HandleMethodNotAllowed = true
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
	})

	// Basic HTTP handler for root path
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Welcome to %s!", cfg.AppName),
		})
	})

	mutationLimiter := middleware.RateLimiter(middleware.RateLimitConfig{})

	router.GET("/health", endpoint.HealthCheck)
	router.GET("/treatments", endpoint.ListTreatments)
	router.POST("/treatments", mutationLimiter, endpoint.CreateTreatment)
	router.DELETE("/treatments/:id", mutationLimiter, endpoint.DeleteTreatment)

	// Start server on specified port
	address := fmt.Sprintf(":%d", cfg.AppPort)
	if err := router.Run(address); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
