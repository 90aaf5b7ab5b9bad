package handler

import (
	"errors"
	"io"
	"log"
	"strconv"
	"strings"

	"go-product-inventory/internal/repository"
	"go-product-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProductHandler struct {
	service      service.ProductService
	importExport service.ImportExportService
}

func NewProductHandler(s service.ProductService, ie service.ImportExportService) *ProductHandler {
	return &ProductHandler{service: s, importExport: ie}
}

// Helper to build the history attribution actor from the JWT context
// (set by the auth middleware). Zero value falls back to the system sentinel.
func getActor(c *fiber.Ctx) service.Actor {
	actor := service.Actor{}
	if id, ok := c.Locals("user_id").(string); ok {
		actor.ID = id
	}
	if name, ok := c.Locals("user_name").(string); ok {
		actor.Name = name
	}
	return actor
}

// respondError maps service errors onto the HTTP status taxonomy. Unknown
// errors (storage failures) are logged and surfaced opaquely.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		return c.Status(401).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrProductNotFound), errors.Is(err, service.ErrUserNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrDuplicateName), errors.Is(err, service.ErrEmailExists):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	default:
		log.Printf("unexpected error: %v", err)
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// GetProducts lists products, optionally filtered.
// GET /api/products?name=&category=
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	filter := repository.ProductFilter{
		Name:     c.Query("name"),
		Category: c.Query("category"),
	}

	products, err := h.service.ListProducts(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"products": products})
}

// GET /api/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.service.GetProduct(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"product": product})
}

// POST /api/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req service.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.CreateProduct(&req, getActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"product": product})
}

// PUT /api/products/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var req service.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	product, err := h.service.UpdateProduct(id, &req, getActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"product": product})
}

// DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.service.DeleteProduct(id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}

// GetHistory returns the stock-change ledger for a product, newest first.
// GET /api/products/:id/history
func (h *ProductHandler) GetHistory(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	history, err := h.service.GetHistory(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"history": history})
}

// GET /api/products/search?name=&category=
func (h *ProductHandler) SearchProducts(c *fiber.Ctx) error {
	name := c.Query("name")
	category := c.Query("category")

	products, err := h.service.SearchProducts(name, category)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"products":     products,
		"searchQuery":  fiber.Map{"name": name, "category": category},
		"totalResults": len(products),
	})
}

// GET /api/products/export
func (h *ProductHandler) ExportCSV(c *fiber.Ctx) error {
	csvContent, err := h.importExport.ExportCSV()
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="products.csv"`)
	return c.SendString(csvContent)
}

// POST /api/products/import
func (h *ProductHandler) ImportCSV(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Please select a CSV file to import"})
	}

	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".csv") {
		return c.Status(400).JSON(fiber.Map{"error": "Please select a valid CSV file. Only .csv files are supported."})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Failed to read uploaded file"})
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Failed to read uploaded file"})
	}

	results, err := h.importExport.ImportCSV(string(content), getActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Import completed", "results": results})
}

// parseDays reads a positive ?days= query value with a default.
func parseDays(c *fiber.Ctx, def int) int {
	days, err := strconv.Atoi(c.Query("days", strconv.Itoa(def)))
	if err != nil || days <= 0 {
		return def
	}
	return days
}
