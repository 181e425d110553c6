package config

import (
	"os"
	"time"

	"pantry-backend/internal/api/handlers"
	"pantry-backend/internal/api/routes"
	"pantry-backend/internal/middleware"
	"pantry-backend/internal/utils"
	"pantry-backend/internal/utils/storage"
	"pantry-backend/pkg/catalog"
	"pantry-backend/pkg/inventory"
	"pantry-backend/pkg/jwt"
	"pantry-backend/pkg/receipt"
	"pantry-backend/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "America/Sao_Paulo",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	catalogRepository := catalog.NewCatalogRepository(db)
	receiptRepository := receipt.NewReceiptRepository(db)
	batchRepository := inventory.NewBatchRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	resolver := catalog.NewEntityResolver(catalogRepository)
	matcher := catalog.NewProductMatcher(catalogRepository, resolver)
	catalogService := catalog.NewCatalogService(catalogRepository, resolver, matcher)
	receiptService := receipt.NewReceiptService(receiptRepository, s3)
	batchFactory := inventory.NewBatchFactory()
	inventoryService := inventory.NewInventoryService(batchRepository, catalogRepository)
	coordinator := receipt.NewImportCoordinator(receiptRepository, matcher, batchFactory, batchRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	catalogHandler := handlers.NewCatalogHandler(catalogService, validator)
	receiptHandler := handlers.NewReceiptHandler(receiptService, coordinator, validator)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, validator)

	// routes
	routesConfig := routes.Config{
		App:              app,
		UserHandler:      userHandler,
		CatalogHandler:   catalogHandler,
		ReceiptHandler:   receiptHandler,
		InventoryHandler: inventoryHandler,
		Middleware:       middlewares,
		JWTService:       jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
