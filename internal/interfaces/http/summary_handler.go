package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/sales-analytics-api/internal/application/usecase"
)

// SummaryHandler maneja el endpoint combinado de resumen.
type SummaryHandler struct {
	uc *usecase.SummaryUseCase
}

// NewSummaryHandler construye el handler.
func NewSummaryHandler(uc *usecase.SummaryUseCase) *SummaryHandler {
	return &SummaryHandler{uc: uc}
}

// GetSummary GET /api/analytics/summary?start&end
//
// Respuesta: SummaryDTO (totalRevenue, totalOrders, totalCustomers,
// averageOrderValue) calculado con cuatro consultas en paralelo.
func (h *SummaryHandler) GetSummary(c *fiber.Ctx) error {
	tr, err := parseTimeRange(c)
	if err != nil {
		return badParams(c, err)
	}
	summary, err := h.uc.GetSummary(c.Context(), tr)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(summary)
}
