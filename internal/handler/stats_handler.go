package handler

import (
	"go-product-inventory/internal/service"

	"github.com/gofiber/fiber/v2"
)

type StatsHandler struct {
	service service.StatsService
}

func NewStatsHandler(s service.StatsService) *StatsHandler {
	return &StatsHandler{service: s}
}

// GetOverview returns product count statistics
// GET /api/products/stats
func (h *StatsHandler) GetOverview(c *fiber.Ctx) error {
	stats, err := h.service.GetOverview()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch stats"})
	}
	return c.JSON(stats)
}

// GetStockMovement returns per-day ledger aggregates for charts
// GET /api/products/stock-movement?days=7
func (h *StatsHandler) GetStockMovement(c *fiber.Ctx) error {
	days := parseDays(c, 7)

	data, err := h.service.GetStockMovement(days)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch stock movement"})
	}

	return c.JSON(fiber.Map{
		"period": days,
		"data":   data,
	})
}
