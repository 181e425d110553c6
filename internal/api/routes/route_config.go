package routes

import (
	"pantry-backend/internal/api/handlers"
	"pantry-backend/internal/middleware"
	"pantry-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App              *fiber.App
	UserHandler      handlers.UserHandler
	CatalogHandler   handlers.CatalogHandler
	ReceiptHandler   handlers.ReceiptHandler
	InventoryHandler handlers.InventoryHandler
	Middleware       middleware.Middleware
	JWTService       jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Catalog()
	c.Receipts()
	c.Inventory()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Post("/send_verify", c.UserHandler.SendVerificationEmail)
		user.Get("/verify", c.UserHandler.VerifyEmail)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/update", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateUser)
		user.Post("/forget", c.UserHandler.ForgotPassword)
		user.Post("/reset", c.UserHandler.ResetPassword)
	}
}

func (c *Config) Catalog() {
	products := c.App.Group("/api/v1/products", c.Middleware.AuthMiddleware(c.JWTService))
	{
		products.Post("", c.CatalogHandler.CreateProduct)
		products.Get("", c.CatalogHandler.GetProducts)
		products.Get("/:id", c.CatalogHandler.GetProductDetails)
		products.Put("/:id", c.CatalogHandler.UpdateProduct)
		products.Delete("/:id", c.CatalogHandler.DeleteProduct)
	}

	categories := c.App.Group("/api/v1/categories", c.Middleware.AuthMiddleware(c.JWTService))
	{
		categories.Post("", c.CatalogHandler.CreateCategory)
		categories.Get("", c.CatalogHandler.GetCategories)
	}

	brands := c.App.Group("/api/v1/brands", c.Middleware.AuthMiddleware(c.JWTService))
	{
		brands.Post("", c.CatalogHandler.CreateBrand)
		brands.Get("", c.CatalogHandler.GetBrands)
	}

	units := c.App.Group("/api/v1/units", c.Middleware.AuthMiddleware(c.JWTService))
	{
		units.Post("", c.CatalogHandler.CreateUnit)
		units.Get("", c.CatalogHandler.GetUnits)
	}
}

func (c *Config) Receipts() {
	receipts := c.App.Group("/api/v1/receipts", c.Middleware.AuthMiddleware(c.JWTService))
	{
		receipts.Post("", c.ReceiptHandler.RegisterReceipt)
		receipts.Post("/qr", c.ReceiptHandler.RegisterFromQr)
		receipts.Get("", c.ReceiptHandler.GetReceipts)
		receipts.Get("/:id", c.ReceiptHandler.GetReceiptDetails)
		receipts.Delete("/:id", c.ReceiptHandler.DeleteReceipt)
		receipts.Post("/image", c.ReceiptHandler.UploadReceiptImage)
		receipts.Post("/:id/process", c.ReceiptHandler.ProcessReceipt)
		receipts.Post("/import-items", c.ReceiptHandler.ImportItems)
	}
}

func (c *Config) Inventory() {
	batches := c.App.Group("/api/v1/batches", c.Middleware.AuthMiddleware(c.JWTService))
	{
		batches.Get("/dashboard", c.InventoryHandler.GetDashboardStats)
		batches.Get("/expiring", c.InventoryHandler.GetExpiringBatches)
		batches.Post("", c.InventoryHandler.CreateBatch)
		batches.Get("", c.InventoryHandler.GetBatches)
		batches.Get("/:id", c.InventoryHandler.GetBatchDetails)
		batches.Put("/:id", c.InventoryHandler.UpdateBatch)
		batches.Delete("/:id", c.InventoryHandler.DeleteBatch)
		batches.Post("/consume", c.InventoryHandler.ConsumeBatch)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
