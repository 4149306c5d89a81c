package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/tu-usuario/sales-analytics-api/internal/application/dto"
	"github.com/tu-usuario/sales-analytics-api/internal/application/usecase"
	"github.com/tu-usuario/sales-analytics-api/internal/domain"
)

// ReportingHandler maneja los endpoints de reportes de ventas. Todos aceptan
// start/end opcionales (ISO-8601, rango inclusivo sobre la fecha de venta).
type ReportingHandler struct {
	uc *usecase.ReportingUseCase
}

// NewReportingHandler construye el handler.
func NewReportingHandler(uc *usecase.ReportingUseCase) *ReportingHandler {
	return &ReportingHandler{uc: uc}
}

// badParams respuesta 400 por parámetros no tipables.
func badParams(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code: "INVALID_PARAMS", Message: err.Error(),
	})
}

// fail mapea errores del core: entrada inválida → 400; fallo del store → 500
// sin reintentos (las consultas son idempotentes, reintenta el cliente).
func fail(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "BAD_REQUEST", Message: err.Error(),
		})
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("reporte falló")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code: "INTERNAL", Message: err.Error(),
	})
}

// TotalRevenue GET /api/analytics/revenue/total?start&end → { total }
func (h *ReportingHandler) TotalRevenue(c *fiber.Ctx) error {
	tr, err := parseTimeRange(c)
	if err != nil {
		return badParams(c, err)
	}
	result, err := h.uc.TotalRevenue(c.Context(), tr)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(result)
}

// RevenueByProduct GET /api/analytics/revenue/by-product?start&end
// → [{ productId, name, revenue }] descendente por ingreso.
func (h *ReportingHandler) RevenueByProduct(c *fiber.Ctx) error {
	tr, err := parseTimeRange(c)
	if err != nil {
		return badParams(c, err)
	}
	result, err := h.uc.RevenueByProduct(c.Context(), tr)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(result)
}

// RevenueByCategory GET /api/analytics/revenue/by-category?start&end
// → [{ category, revenue }]; sin categoría = "unspecified".
func (h *ReportingHandler) RevenueByCategory(c *fiber.Ctx) error {
	tr, err := parseTimeRange(c)
	if err != nil {
		return badParams(c, err)
	}
	result, err := h.uc.RevenueByCategory(c.Context(), tr)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(result)
}

// RevenueByRegion GET /api/analytics/revenue/by-region?start&end
// → [{ region, revenue }]; sin región = "unspecified".
func (h *ReportingHandler) RevenueByRegion(c *fiber.Ctx) error {
	tr, err := parseTimeRange(c)
	if err != nil {
		return badParams(c, err)
	}
	result, err := h.uc.RevenueByRegion(c.Context(), tr)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(result)
}

// RevenueTrends GET /api/analytics/revenue/trends?start&end&interval
// → [{ period, revenue }] ascendente por período. interval:
// yearly|quarterly|monthly; valores no reconocidos caen a monthly.
func (h *ReportingHandler) RevenueTrends(c *fiber.Ctx) error {
	tr, err := parseTimeRange(c)
	if err != nil {
		return badParams(c, err)
	}
	result, err := h.uc.RevenueTrends(c.Context(), tr, c.Query("interval"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(result)
}

// TopProductsOverall GET /api/analytics/top-products/overall?start&end&n
// → [{ productId, name, quantity }] descendente por cantidad, máximo n (default 10).
func (h *ReportingHandler) TopProductsOverall(c *fiber.Ctx) error {
	tr, err := parseTimeRange(c)
	if err != nil {
		return badParams(c, err)
	}
	n, err := parseIntParam(c, "n")
	if err != nil {
		return badParams(c, err)
	}
	result, err := h.uc.TopProductsOverall(c.Context(), tr, n)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(result)
}

// TopProductsByCategory GET /api/analytics/top-products/by-category?category&start&end&n
// category es obligatorio (igualdad exacta, sensible a mayúsculas).
func (h *ReportingHandler) TopProductsByCategory(c *fiber.Ctx) error {
	tr, err := parseTimeRange(c)
	if err != nil {
		return badParams(c, err)
	}
	n, err := parseIntParam(c, "n")
	if err != nil {
		return badParams(c, err)
	}
	result, err := h.uc.TopProductsByCategory(c.Context(), tr, c.Query("category"), n)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(result)
}

// TopProductsByRegion GET /api/analytics/top-products/by-region?region&start&end&n
// region es obligatorio (igualdad exacta, sensible a mayúsculas).
func (h *ReportingHandler) TopProductsByRegion(c *fiber.Ctx) error {
	tr, err := parseTimeRange(c)
	if err != nil {
		return badParams(c, err)
	}
	n, err := parseIntParam(c, "n")
	if err != nil {
		return badParams(c, err)
	}
	result, err := h.uc.TopProductsByRegion(c.Context(), tr, c.Query("region"), n)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(result)
}

// TotalCustomers GET /api/analytics/customers/count?start&end → { count }
func (h *ReportingHandler) TotalCustomers(c *fiber.Ctx) error {
	tr, err := parseTimeRange(c)
	if err != nil {
		return badParams(c, err)
	}
	result, err := h.uc.TotalCustomers(c.Context(), tr)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(result)
}

// TotalOrders GET /api/analytics/customers/orders/count?start&end → { count }
func (h *ReportingHandler) TotalOrders(c *fiber.Ctx) error {
	tr, err := parseTimeRange(c)
	if err != nil {
		return badParams(c, err)
	}
	result, err := h.uc.TotalOrders(c.Context(), tr)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(result)
}

// AverageOrderValue GET /api/analytics/customers/average-order-value?start&end
// → { averageOrderValue }; 0 si no hay órdenes en el rango.
func (h *ReportingHandler) AverageOrderValue(c *fiber.Ctx) error {
	tr, err := parseTimeRange(c)
	if err != nil {
		return badParams(c, err)
	}
	result, err := h.uc.AverageOrderValue(c.Context(), tr)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(result)
}

// ProfitMarginByProduct GET /api/analytics/profit-margin/by-product?start&end&costPercent
// → [{ productId, name, revenue, cost, profit, margin }]. costPercent es una
// fracción (default 0.6); margin es 0 cuando revenue es 0.
func (h *ReportingHandler) ProfitMarginByProduct(c *fiber.Ctx) error {
	tr, err := parseTimeRange(c)
	if err != nil {
		return badParams(c, err)
	}
	costPercent, err := parseDecimalParam(c, "costPercent")
	if err != nil {
		return badParams(c, err)
	}
	result, err := h.uc.ProfitMarginByProduct(c.Context(), tr, costPercent)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(result)
}
