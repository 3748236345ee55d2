package main

import (
	"context"
	"log"
	"os"
	"time"

	"comanda/internal/db"
	"comanda/internal/inventory"
	"comanda/internal/menu"
	"comanda/internal/order"
	"comanda/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	if os.Getenv("DATABASE_URL") == "" {
		log.Fatal("❌ Missing env var: DATABASE_URL")
	}

	// ───────────────────────── DB ─────────────────────────
	pgDB := db.ConnectPostgres()
	defer pgDB.Close()

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── STORAGE (optional) ─────────────────────────
	var iconStore menu.Storage
	if os.Getenv("R2_BUCKET_NAME") != "" {
		r2Client, err := storage.NewR2Client(context.Background())
		if err != nil {
			log.Fatal("❌ R2 init failed:", err)
		}
		iconStore = r2Client
	} else {
		log.Println("R2 not configured, icon uploads disabled")
	}

	// ───────────────────────── LEDGER ─────────────────────────
	ledger := inventory.NewLedger()

	inventoryRepo := inventory.NewPostgresRepository(pgDB)
	inventoryService := inventory.NewService(ledger, inventoryRepo)

	if err := inventoryService.Load(context.Background()); err != nil {
		log.Fatal("❌ Failed to load ledger:", err)
	}

	// ───────────────────────── SERVICES ─────────────────────────
	menuRepo := menu.NewPostgresRepository(pgDB)
	menuService := menu.NewService(menuRepo, ledger, iconStore)

	orderRepo := order.NewPostgresRepository(pgDB)
	orderService := order.NewService(ledger, menuService, orderRepo, inventoryRepo)

	// ───────────────────────── HANDLERS ─────────────────────────
	inventoryHandler := inventory.NewHandler(inventoryService)
	menuHandler := menu.NewHandler(menuService)
	orderHandler := order.NewHandler(orderService)

	// ───────────────────────── INGREDIENT ROUTES ─────────────────────────
	ingredients := r.Group("/ingredients")
	{
		ingredients.GET("", inventoryHandler.List)
		ingredients.POST("", inventoryHandler.Create)
		ingredients.GET("/stats", inventoryHandler.Stats)
		ingredients.GET("/low-stock", inventoryHandler.LowStock)
		ingredients.POST("/import", inventoryHandler.Import)
		ingredients.PATCH("/:name/quantity", inventoryHandler.SetQuantity)
		ingredients.DELETE("/:name", inventoryHandler.Delete)
	}

	// ───────────────────────── MENU ROUTES ─────────────────────────
	menus := r.Group("/menus")
	{
		menus.GET("", menuHandler.List)
		menus.POST("", menuHandler.Create)
		menus.GET("/:name/availability", menuHandler.Availability)
		menus.POST("/:name/icon", menuHandler.UploadIcon)
		menus.DELETE("/:name", menuHandler.Delete)
	}

	// ───────────────────────── ORDER ROUTES ─────────────────────────
	orders := r.Group("/order")
	{
		orders.GET("", orderHandler.Current)
		orders.POST("/items", orderHandler.AddItem)
		orders.DELETE("/items/:name", orderHandler.RemoveItem)
		orders.POST("/checkout", orderHandler.Checkout)
	}
	r.GET("/orders", orderHandler.History)

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── SERVER ─────────────────────────
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("Server running on http://localhost:" + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
