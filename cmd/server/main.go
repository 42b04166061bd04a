package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"condogest_echo/internal/handlers"
	appmw "condogest_echo/internal/middleware"
	"condogest_echo/internal/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	// Initialize Database
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := services.InitDB(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := services.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Initialize Redis (optional: caching and rate limiting degrade gracefully)
	var cache *services.RedisCache
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cache, err = services.NewRedisCache(redisURL)
		if err != nil {
			log.Printf("Warning: Redis initialization failed: %v", err)
			log.Println("Response caching and rate limiting are disabled")
			cache = nil
		} else {
			defer cache.Close()
		}
	} else {
		log.Println("Warning: REDIS_URL not set, response caching disabled")
	}

	// Create Echo instance
	e := echo.New()
	e.HTTPErrorHandler = appmw.JSONErrorHandler
	e.Validator = handlers.NewValidator()

	// Middleware
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(appmw.RateLimit(cache, "api", 1000, time.Hour))

	// Initialize services and handlers
	paymentService := services.NewPaymentService(db)
	reportService := services.NewReportService(db)

	authHandler := handlers.NewAuthHandler(db, secret)
	userHandler := handlers.NewUserHandler(db)
	condominiumHandler := handlers.NewCondominiumHandler(db)
	unitHandler := handlers.NewUnitHandler(db)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	maintenanceHandler := handlers.NewMaintenanceHandler(db)
	supplierHandler := handlers.NewSupplierHandler(db)
	inventoryHandler := handlers.NewInventoryHandler(db)
	notificationHandler := handlers.NewNotificationHandler(db)
	contractHandler := handlers.NewContractHandler(db)
	financeHandler := handlers.NewFinanceHandler(db, reportService)
	reportHandler := handlers.NewReportHandler(reportService)
	dashboardHandler := handlers.NewDashboardHandler(reportService, cache)

	// Public routes
	e.POST("/registrar", authHandler.Register)
	e.POST("/login", authHandler.Login, appmw.RateLimit(cache, "login", 20, 15*time.Minute))

	// Protected routes
	api := e.Group("")
	api.Use(appmw.RequireAuth(secret))

	api.POST("/pagamentos", paymentHandler.Create)
	api.GET("/pagamentos", paymentHandler.List)
	api.GET("/pagamentos/:id", paymentHandler.Get)
	api.GET("/pagamentos/unidade/:id", paymentHandler.ListByUnit)

	api.GET("/usuarios", userHandler.List)
	api.GET("/usuarios/:id", userHandler.Get)
	api.PUT("/usuarios/:id", userHandler.Update)
	api.DELETE("/usuarios/:id", userHandler.Delete)

	api.POST("/condominios", condominiumHandler.Create)
	api.GET("/condominios", condominiumHandler.List)
	api.GET("/condominios/:id", condominiumHandler.Get)
	api.PUT("/condominios/:id", condominiumHandler.Update)
	api.DELETE("/condominios/:id", condominiumHandler.Delete)

	api.POST("/unidades", unitHandler.Create)
	api.GET("/unidades", unitHandler.List)
	api.GET("/unidades/:id", unitHandler.Get)
	api.PUT("/unidades/:id", unitHandler.Update)
	api.DELETE("/unidades/:id", unitHandler.Delete)

	api.POST("/manutencoes", maintenanceHandler.Create)
	api.GET("/manutencoes", maintenanceHandler.List)
	api.GET("/manutencoes/:id", maintenanceHandler.Get)
	api.PATCH("/manutencoes/:id/status", maintenanceHandler.UpdateStatus)
	api.DELETE("/manutencoes/:id", maintenanceHandler.Delete)

	api.POST("/fornecedores", supplierHandler.Create)
	api.GET("/fornecedores", supplierHandler.List)
	api.GET("/fornecedores/:id", supplierHandler.Get)
	api.PUT("/fornecedores/:id", supplierHandler.Update)
	api.DELETE("/fornecedores/:id", supplierHandler.Delete)

	api.POST("/inventario", inventoryHandler.Create)
	api.GET("/inventario", inventoryHandler.List)
	api.GET("/inventario/:id", inventoryHandler.Get)
	api.POST("/inventario/:id/manutencao", inventoryHandler.RecordMaintenance)

	api.GET("/notificacoes", notificationHandler.List)
	api.POST("/notificacoes", notificationHandler.Create)
	api.PATCH("/notificacoes/:id/lida", notificationHandler.MarkRead)

	api.POST("/contratos", contractHandler.Create)
	api.GET("/contratos", contractHandler.List)
	api.GET("/contratos/:id", contractHandler.Get)
	api.PUT("/contratos/:id", contractHandler.Update)
	api.PATCH("/contratos/:id/status", contractHandler.UpdateStatus)

	api.POST("/financeiro", financeHandler.Create)
	api.GET("/financeiro", financeHandler.List)
	api.GET("/financeiro/fluxo-caixa", financeHandler.CashFlow)

	// Reports are cached: they only change as payments land
	reports := api.Group("/relatorios", appmw.CacheResponse(cache, 5*time.Minute))
	reports.GET("/financeiro", reportHandler.Financial)
	reports.GET("/ocupacao", reportHandler.Occupancy)
	reports.GET("/manutencoes", reportHandler.Maintenances)
	reports.GET("/inadimplencia", reportHandler.Arrears)

	api.GET("/dashboard/metricas", dashboardHandler.Metrics)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	e.Logger.Fatal(e.Start(":" + port))
}
