// Package usecase contiene los casos de uso del servicio de reportes de
// ventas. Cada reporte es una función pura de (contenido del store,
// parámetros) → resultado: sin estado compartido, seguro bajo concurrencia.
package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/sales-analytics-api/internal/application/dto"
	"github.com/tu-usuario/sales-analytics-api/internal/domain"
	"github.com/tu-usuario/sales-analytics-api/internal/domain/repository"
)

const defaultTopN = 10

// defaultCostPercent fracción de los ingresos asumida como costo cuando el
// cliente no envía costPercent. No son datos reales de costo: es un supuesto
// para estimar margen.
var defaultCostPercent = decimal.RequireFromString("0.6")

// interval granularidad de las tendencias de ingreso.
type interval int

const (
	intervalMonthly interval = iota
	intervalQuarterly
	intervalYearly
)

// normalizeInterval interpreta el parámetro `interval` sin distinguir
// mayúsculas. Cualquier valor no reconocido cae a monthly; es el fallback
// documentado del contrato, no un error.
func normalizeInterval(s string) interval {
	switch strings.ToLower(s) {
	case "yearly":
		return intervalYearly
	case "quarterly":
		return intervalQuarterly
	default:
		return intervalMonthly
	}
}

// periodLabel formatea la etiqueta de un bucket temporal a partir del mes
// calendario: "2024" (yearly), "2024-Q2" (quarterly), "2024-03" (monthly).
// El trimestre es floor((mes−1)/3)+1.
func periodLabel(year int, month int, iv interval) string {
	switch iv {
	case intervalYearly:
		return strconv.Itoa(year)
	case intervalQuarterly:
		return fmt.Sprintf("%d-Q%d", year, (month-1)/3+1)
	default:
		return fmt.Sprintf("%d-%02d", year, month)
	}
}

// ReportingUseCase implementa los doce reportes de agregación sobre el
// dataset de ventas. Delega el filtrado y la agregación en el
// ReportingRepository (una consulta por reporte) y aplica aquí los defaults,
// la normalización de intervalos y las derivaciones (costo, utilidad,
// margen) con aritmética decimal.
type ReportingUseCase struct {
	repo repository.ReportingRepository
}

// NewReportingUseCase construye el caso de uso.
func NewReportingUseCase(repo repository.ReportingRepository) *ReportingUseCase {
	return &ReportingUseCase{repo: repo}
}

// TotalRevenue suma TotalPrice de todas las líneas del rango. Cero si no hay
// ventas (nunca null, nunca error).
func (uc *ReportingUseCase) TotalRevenue(ctx context.Context, tr repository.TimeRange) (*dto.TotalRevenueDTO, error) {
	total, err := uc.repo.TotalRevenue(ctx, tr)
	if err != nil {
		return nil, fmt.Errorf("reportes: ingreso total: %w", err)
	}
	return &dto.TotalRevenueDTO{Total: total.Round(2)}, nil
}

// RevenueByProduct agrupa ingresos por producto, descendente por ingreso.
func (uc *ReportingUseCase) RevenueByProduct(ctx context.Context, tr repository.TimeRange) ([]dto.ProductRevenueDTO, error) {
	rows, err := uc.repo.RevenueByProduct(ctx, tr)
	if err != nil {
		return nil, fmt.Errorf("reportes: ingreso por producto: %w", err)
	}
	out := make([]dto.ProductRevenueDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ProductRevenueDTO{
			ProductID: r.ProductID,
			Name:      r.ProductName,
			Revenue:   r.Revenue.Round(2),
		})
	}
	return out, nil
}

// RevenueByCategory agrupa ingresos por categoría del producto, descendente
// por ingreso. Los productos sin categoría aparecen bajo "unspecified".
func (uc *ReportingUseCase) RevenueByCategory(ctx context.Context, tr repository.TimeRange) ([]dto.CategoryRevenueDTO, error) {
	rows, err := uc.repo.RevenueByCategory(ctx, tr)
	if err != nil {
		return nil, fmt.Errorf("reportes: ingreso por categoría: %w", err)
	}
	out := make([]dto.CategoryRevenueDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.CategoryRevenueDTO{Category: r.Key, Revenue: r.Revenue.Round(2)})
	}
	return out, nil
}

// RevenueByRegion agrupa ingresos por región de la orden, descendente por
// ingreso. Las órdenes sin región aparecen bajo "unspecified".
func (uc *ReportingUseCase) RevenueByRegion(ctx context.Context, tr repository.TimeRange) ([]dto.RegionRevenueDTO, error) {
	rows, err := uc.repo.RevenueByRegion(ctx, tr)
	if err != nil {
		return nil, fmt.Errorf("reportes: ingreso por región: %w", err)
	}
	out := make([]dto.RegionRevenueDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.RegionRevenueDTO{Region: r.Key, Revenue: r.Revenue.Round(2)})
	}
	return out, nil
}

// RevenueTrends agrupa ingresos por bucket temporal según el intervalo
// pedido, ascendente por etiqueta de período. El store entrega buckets
// mensuales (date_of_sale de la orden); los intervalos quarterly y yearly se
// consolidan aquí sumando meses, con lo que las tres granularidades comparten
// la misma consulta.
func (uc *ReportingUseCase) RevenueTrends(ctx context.Context, tr repository.TimeRange, intervalParam string) ([]dto.TrendPointDTO, error) {
	months, err := uc.repo.MonthlyRevenue(ctx, tr)
	if err != nil {
		return nil, fmt.Errorf("reportes: tendencias: %w", err)
	}

	iv := normalizeInterval(intervalParam)
	totals := make(map[string]decimal.Decimal, len(months))
	for _, m := range months {
		label := periodLabel(m.Month.Year(), int(m.Month.Month()), iv)
		totals[label] = totals[label].Add(m.Revenue)
	}

	labels := make([]string, 0, len(totals))
	for label := range totals {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	out := make([]dto.TrendPointDTO, 0, len(labels))
	for _, label := range labels {
		out = append(out, dto.TrendPointDTO{Period: label, Revenue: totals[label].Round(2)})
	}
	return out, nil
}

// TopProductsOverall ranking de productos por unidades vendidas, descendente,
// máximo n filas (default 10 si n ≤ 0).
func (uc *ReportingUseCase) TopProductsOverall(ctx context.Context, tr repository.TimeRange, n int) ([]dto.TopProductDTO, error) {
	return uc.topProducts(ctx, tr, repository.ProductFilter{}, n)
}

// TopProductsByCategory ranking restringido a una categoría exacta.
func (uc *ReportingUseCase) TopProductsByCategory(ctx context.Context, tr repository.TimeRange, category string, n int) ([]dto.TopProductDTO, error) {
	if category == "" {
		return nil, fmt.Errorf("categoría requerida: %w", domain.ErrInvalidInput)
	}
	return uc.topProducts(ctx, tr, repository.ProductFilter{Category: &category}, n)
}

// TopProductsByRegion ranking restringido a una región exacta.
func (uc *ReportingUseCase) TopProductsByRegion(ctx context.Context, tr repository.TimeRange, region string, n int) ([]dto.TopProductDTO, error) {
	if region == "" {
		return nil, fmt.Errorf("región requerida: %w", domain.ErrInvalidInput)
	}
	return uc.topProducts(ctx, tr, repository.ProductFilter{Region: &region}, n)
}

func (uc *ReportingUseCase) topProducts(ctx context.Context, tr repository.TimeRange, f repository.ProductFilter, n int) ([]dto.TopProductDTO, error) {
	if n <= 0 {
		n = defaultTopN
	}
	rows, err := uc.repo.TopProducts(ctx, tr, f, n)
	if err != nil {
		return nil, fmt.Errorf("reportes: top productos: %w", err)
	}
	out := make([]dto.TopProductDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopProductDTO{
			ProductID: r.ProductID,
			Name:      r.ProductName,
			Quantity:  r.Quantity,
		})
	}
	return out, nil
}

// TotalCustomers cuenta los clientes distintos con órdenes en el rango.
func (uc *ReportingUseCase) TotalCustomers(ctx context.Context, tr repository.TimeRange) (*dto.CountDTO, error) {
	count, err := uc.repo.CountDistinctCustomers(ctx, tr)
	if err != nil {
		return nil, fmt.Errorf("reportes: conteo de clientes: %w", err)
	}
	return &dto.CountDTO{Count: count}, nil
}

// TotalOrders cuenta las órdenes del rango.
func (uc *ReportingUseCase) TotalOrders(ctx context.Context, tr repository.TimeRange) (*dto.CountDTO, error) {
	count, err := uc.repo.CountOrders(ctx, tr)
	if err != nil {
		return nil, fmt.Errorf("reportes: conteo de órdenes: %w", err)
	}
	return &dto.CountDTO{Count: count}, nil
}

// AverageOrderValue promedio del total por orden sobre las órdenes del rango
// (una orden sin líneas aporta 0). Cero si no hay órdenes.
func (uc *ReportingUseCase) AverageOrderValue(ctx context.Context, tr repository.TimeRange) (*dto.AverageOrderValueDTO, error) {
	avg, err := uc.repo.AverageOrderValue(ctx, tr)
	if err != nil {
		return nil, fmt.Errorf("reportes: valor promedio de orden: %w", err)
	}
	return &dto.AverageOrderValueDTO{AverageOrderValue: avg.Round(2)}, nil
}

// ProfitMarginByProduct estima margen por producto a partir del ingreso
// agregado y el supuesto de costo:
//
//	cost   = revenue × costPercent
//	profit = revenue − cost
//	margin = profit / revenue   (0 si revenue es 0, nunca error)
//
// costPercent nil usa el default 0.6. El orden de las filas es el del
// agrupamiento del store (el contrato no define orden para este reporte).
func (uc *ReportingUseCase) ProfitMarginByProduct(ctx context.Context, tr repository.TimeRange, costPercent *decimal.Decimal) ([]dto.ProductMarginDTO, error) {
	pct := defaultCostPercent
	if costPercent != nil {
		pct = *costPercent
	}

	rows, err := uc.repo.RevenueByProduct(ctx, tr)
	if err != nil {
		return nil, fmt.Errorf("reportes: margen por producto: %w", err)
	}

	out := make([]dto.ProductMarginDTO, 0, len(rows))
	for _, r := range rows {
		revenue := r.Revenue.Round(2)
		cost := revenue.Mul(pct).Round(2)
		profit := revenue.Sub(cost)
		margin := decimal.Zero
		if !revenue.IsZero() {
			margin = profit.Div(revenue).Round(4)
		}
		out = append(out, dto.ProductMarginDTO{
			ProductID: r.ProductID,
			Name:      r.ProductName,
			Revenue:   revenue,
			Cost:      cost,
			Profit:    profit,
			Margin:    margin,
		})
	}
	return out, nil
}
