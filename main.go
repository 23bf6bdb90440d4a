package main

import (
	"context"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/wanderlog/backend/internal/client"
	"github.com/wanderlog/backend/internal/config"
	"github.com/wanderlog/backend/internal/db"
	"github.com/wanderlog/backend/internal/handler"
	"github.com/wanderlog/backend/internal/service"
)

// @title wanderlog API
// @version 1.0
// @description Travel planning API: tours, memories, expenses.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[Main] No .env file loaded: %v", err)
	}

	cfg := config.Load()
	ctx := context.Background()

	pool, err := db.NewPostgresPool(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("[Main] Postgres init failed: %v", err)
	}
	defer pool.Close()

	repo := &db.Postgres{Pool: pool}
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("[Main] Schema bootstrap failed: %v", err)
	}

	media, err := client.NewMediaClient(ctx, cfg.Media)
	if err != nil {
		log.Fatalf("[Main] Media client init failed: %v", err)
	}

	authService, err := service.NewAuthService(repo, media, cfg.Auth)
	if err != nil {
		log.Fatalf("[Main] Auth service init failed: %v", err)
	}
	tourService := service.NewTourService(repo, media)
	memoryService := service.NewMemoryService(repo, repo, media)
	expenseService := service.NewExpenseService(repo, repo, media)

	authHandler := handler.NewAuthHandler(authService)
	tourHandler := handler.NewTourHandler(tourService)
	memoryHandler := handler.NewMemoryHandler(memoryService)
	expenseHandler := handler.NewExpenseHandler(expenseService)

	router := gin.Default()
	router.Use(handler.CORSMiddleware(strings.Split(cfg.Server.AllowedOrigins, ","), true))

	router.GET("/", handler.Root)
	router.GET("/ping", handler.Ping)
	router.GET("/openapi.json", handler.OpenAPIDoc)

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	authed := v1.Group("", handler.AuthMiddleware(authService))
	authed.POST("/auth/logout", authHandler.Logout)
	authed.GET("/auth/me", authHandler.Me)

	authed.POST("/tours", tourHandler.CreateTour)
	authed.GET("/tours", tourHandler.GetUserTours)
	authed.GET("/tours/:tourId", tourHandler.GetTourByID)
	authed.PATCH("/tours/:tourId", tourHandler.UpdateTour)
	authed.DELETE("/tours/:tourId", tourHandler.DeleteTour)

	authed.POST("/tours/:tourId/memories", memoryHandler.AddMemory)
	authed.GET("/tours/:tourId/memories", memoryHandler.GetTourMemories)
	authed.GET("/memories/:memoryId", memoryHandler.GetMemoryByID)
	authed.PATCH("/memories/:memoryId", memoryHandler.UpdateMemory)
	authed.DELETE("/memories/:memoryId", memoryHandler.DeleteMemory)

	authed.POST("/tours/:tourId/expenses", expenseHandler.AddExpense)
	authed.GET("/tours/:tourId/expenses", expenseHandler.GetTourExpenses)
	authed.DELETE("/expenses/:expenseId", expenseHandler.DeleteExpense)

	addr := ":" + cfg.Server.Port
	log.Printf("[Main] Listening on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("[Main] Server stopped: %v", err)
	}
}
