package main

import (
	"log"
	"net/http"
	"os"

	"little-lemon-api/config"
	"little-lemon-api/handlers"
	"little-lemon-api/middleware"
	"little-lemon-api/repository"
	"little-lemon-api/routes"
	"little-lemon-api/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	cfg := config.Load()

	db, err := config.OpenDB(cfg.DBPath)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := config.Seed(db, cfg); err != nil {
		log.Fatal("Failed to seed database:", err)
	}

	// Repositories
	users := repository.NewUserRepository(db)
	categories := repository.NewCategoryRepository(db)
	items := repository.NewMenuItemRepository(db)
	carts := repository.NewCartRepository(db)
	orders := repository.NewOrderRepository(db)

	// Services
	roles := services.NewRoleResolver(users)
	roster := services.NewRosterService(users)
	menu := services.NewMenuService(categories, items)
	cart := services.NewCartService(carts, items)
	order := services.NewOrderService(db, orders, carts, roles)

	// Middleware
	auth := middleware.NewAuth([]byte(cfg.JWTSecret), cfg.JWTTTL)
	gate := middleware.NewRoleGate(roles)

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()
	r.Use(middleware.RequestID())

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Little Lemon Restaurant API",
			"version": "1.0.0",
		})
	})

	routes.Setup(r, auth, gate, routes.Handlers{
		Auth:   &handlers.AuthHandler{Users: users, Roles: roles, Auth: auth},
		Menu:   &handlers.MenuHandler{Svc: menu},
		Roster: &handlers.RosterHandler{Svc: roster},
		Cart:   &handlers.CartHandler{Svc: cart},
		Order:  &handlers.OrderHandler{Svc: order, Roles: roles},
	})

	log.Printf("🍋 Little Lemon API running on http://localhost:%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
