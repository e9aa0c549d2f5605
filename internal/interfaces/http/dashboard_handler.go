package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/hotel-warehouse/internal/application/analytics"
)

// DashboardHandler serves the warehouse overview.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler builds the handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary returns stock value, units, below-par and expiring items, zone totals and the
// latest movements.
// GET /api/dashboard/summary
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(summary)
}
