package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/sales-analytics-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ReportingUC *usecase.ReportingUseCase
	SummaryUC   *usecase.SummaryUseCase
}

// Router registra las rutas de la API. Todos los endpoints son de solo
// lectura; no hay rutas de mutación.
func Router(app *fiber.App, deps RouterDeps) {
	analytics := app.Group("/api/analytics")

	reportingHandler := NewReportingHandler(deps.ReportingUC)

	revenue := analytics.Group("/revenue")
	revenue.Get("/total", reportingHandler.TotalRevenue)
	revenue.Get("/by-product", reportingHandler.RevenueByProduct)
	revenue.Get("/by-category", reportingHandler.RevenueByCategory)
	revenue.Get("/by-region", reportingHandler.RevenueByRegion)
	revenue.Get("/trends", reportingHandler.RevenueTrends)

	topProducts := analytics.Group("/top-products")
	topProducts.Get("/overall", reportingHandler.TopProductsOverall)
	topProducts.Get("/by-category", reportingHandler.TopProductsByCategory)
	topProducts.Get("/by-region", reportingHandler.TopProductsByRegion)

	customers := analytics.Group("/customers")
	customers.Get("/count", reportingHandler.TotalCustomers)
	customers.Get("/orders/count", reportingHandler.TotalOrders)
	customers.Get("/average-order-value", reportingHandler.AverageOrderValue)

	analytics.Get("/profit-margin/by-product", reportingHandler.ProfitMarginByProduct)

	summaryHandler := NewSummaryHandler(deps.SummaryUC)
	analytics.Get("/summary", summaryHandler.GetSummary)
}
