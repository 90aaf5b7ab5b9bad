package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-product-inventory/internal/handler"
	"go-product-inventory/internal/middleware"
	"go-product-inventory/internal/model"
	"go-product-inventory/internal/repository"
	"go-product-inventory/internal/service"
	"go-product-inventory/pkg/database"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto Migrate (use a dedicated migration tool for production schemas)
	db.AutoMigrate(&model.Product{}, &model.InventoryHistory{}, &model.User{})

	// 3. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	historyRepo := repository.NewHistoryRepo(db)
	userRepo := repository.NewUserRepo(db)

	productService := service.NewProductService(productRepo, historyRepo, db)
	importExportService := service.NewImportExportService(productService, productRepo)
	statsService := service.NewStatsService(productRepo, historyRepo)
	authService := service.NewAuthService(userRepo)

	productHandler := handler.NewProductHandler(productService, importExportService)
	statsHandler := handler.NewStatsHandler(statsService)
	authHandler := handler.NewAuthHandler(authService)

	// 4. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Product Inventory v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 5. Routes
	api := app.Group("/api")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.SignUp)
	auth.Post("/signin", authHandler.SignIn)
	auth.Get("/me", middleware.RequireAuth(), authHandler.Me)

	// ============ PROTECTED ROUTES ============
	// All routes below require a valid session
	protected := api.Group("", middleware.RequireAuth())

	products := protected.Group("/products")
	products.Get("/", productHandler.GetProducts)
	products.Post("/", productHandler.CreateProduct)
	products.Get("/search", productHandler.SearchProducts)
	products.Get("/export", productHandler.ExportCSV)
	products.Post("/import", productHandler.ImportCSV)
	products.Get("/stats", statsHandler.GetOverview)
	products.Get("/stock-movement", statsHandler.GetStockMovement)
	products.Get("/:id", productHandler.GetProduct)
	products.Put("/:id", productHandler.UpdateProduct)
	products.Delete("/:id", productHandler.DeleteProduct)
	products.Get("/:id/history", productHandler.GetHistory)

	// 6. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	// Release the storage handle last
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	log.Println("Server exited")
}
