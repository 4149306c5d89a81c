package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/sales-analytics-api/internal/application/usecase"
	"github.com/tu-usuario/sales-analytics-api/internal/domain"
	"github.com/tu-usuario/sales-analytics-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stub del repositorio de reportes
// ──────────────────────────────────────────────────────────────────────────────

// stubRepo implementa repository.ReportingRepository con funciones
// intercambiables por test. Los métodos sin stub devuelven cero.
type stubRepo struct {
	totalRevenue     func(repository.TimeRange) (decimal.Decimal, error)
	revenueByProduct func(repository.TimeRange) ([]repository.ProductRevenueRow, error)
	monthlyRevenue   func(repository.TimeRange) ([]repository.MonthlyRevenueRow, error)
	topProducts      func(repository.TimeRange, repository.ProductFilter, int) ([]repository.ProductQuantityRow, error)
	avgOrderValue    func(repository.TimeRange) (decimal.Decimal, error)
}

func (s *stubRepo) TotalRevenue(_ context.Context, tr repository.TimeRange) (decimal.Decimal, error) {
	if s.totalRevenue != nil {
		return s.totalRevenue(tr)
	}
	return decimal.Zero, nil
}

func (s *stubRepo) RevenueByProduct(_ context.Context, tr repository.TimeRange) ([]repository.ProductRevenueRow, error) {
	if s.revenueByProduct != nil {
		return s.revenueByProduct(tr)
	}
	return nil, nil
}

func (s *stubRepo) RevenueByCategory(context.Context, repository.TimeRange) ([]repository.GroupRevenueRow, error) {
	return nil, nil
}

func (s *stubRepo) RevenueByRegion(context.Context, repository.TimeRange) ([]repository.GroupRevenueRow, error) {
	return nil, nil
}

func (s *stubRepo) MonthlyRevenue(_ context.Context, tr repository.TimeRange) ([]repository.MonthlyRevenueRow, error) {
	if s.monthlyRevenue != nil {
		return s.monthlyRevenue(tr)
	}
	return nil, nil
}

func (s *stubRepo) TopProducts(_ context.Context, tr repository.TimeRange, f repository.ProductFilter, limit int) ([]repository.ProductQuantityRow, error) {
	if s.topProducts != nil {
		return s.topProducts(tr, f, limit)
	}
	return nil, nil
}

func (s *stubRepo) CountDistinctCustomers(context.Context, repository.TimeRange) (int64, error) {
	return 0, nil
}

func (s *stubRepo) CountOrders(context.Context, repository.TimeRange) (int64, error) {
	return 0, nil
}

func (s *stubRepo) AverageOrderValue(_ context.Context, tr repository.TimeRange) (decimal.Decimal, error) {
	if s.avgOrderValue != nil {
		return s.avgOrderValue(tr)
	}
	return decimal.Zero, nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func monthlyRows(rows ...repository.MonthlyRevenueRow) func(repository.TimeRange) ([]repository.MonthlyRevenueRow, error) {
	return func(repository.TimeRange) ([]repository.MonthlyRevenueRow, error) { return rows, nil }
}

// ──────────────────────────────────────────────────────────────────────────────
// Tendencias: buckets temporales
// ──────────────────────────────────────────────────────────────────────────────

// Mensual: un mes se etiqueta {año}-{mes con 2 dígitos}.
func TestRevenueTrends_Mensual(t *testing.T) {
	uc := usecase.NewReportingUseCase(&stubRepo{
		monthlyRevenue: monthlyRows(
			repository.MonthlyRevenueRow{Month: month(2024, time.March), Revenue: dec("19.00")},
		),
	})

	points, err := uc.RevenueTrends(context.Background(), repository.TimeRange{}, "monthly")
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "2024-03", points[0].Period)
	assert.True(t, points[0].Revenue.Equal(dec("19.00")))
}

// Trimestral: mes 1 → Q1, mes 4 → Q2, mes 12 → Q4; los meses del mismo
// trimestre se suman.
func TestRevenueTrends_Trimestral(t *testing.T) {
	uc := usecase.NewReportingUseCase(&stubRepo{
		monthlyRevenue: monthlyRows(
			repository.MonthlyRevenueRow{Month: month(2024, time.January), Revenue: dec("10")},
			repository.MonthlyRevenueRow{Month: month(2024, time.February), Revenue: dec("5")},
			repository.MonthlyRevenueRow{Month: month(2024, time.April), Revenue: dec("7")},
			repository.MonthlyRevenueRow{Month: month(2024, time.December), Revenue: dec("3")},
		),
	})

	points, err := uc.RevenueTrends(context.Background(), repository.TimeRange{}, "quarterly")
	require.NoError(t, err)
	require.Len(t, points, 3)

	assert.Equal(t, "2024-Q1", points[0].Period)
	assert.True(t, points[0].Revenue.Equal(dec("15")), "Q1 debe sumar enero y febrero")
	assert.Equal(t, "2024-Q2", points[1].Period)
	assert.True(t, points[1].Revenue.Equal(dec("7")))
	assert.Equal(t, "2024-Q4", points[2].Period)
	assert.True(t, points[2].Revenue.Equal(dec("3")))
}

// Anual: todos los meses del año se consolidan bajo "{año}".
func TestRevenueTrends_Anual(t *testing.T) {
	uc := usecase.NewReportingUseCase(&stubRepo{
		monthlyRevenue: monthlyRows(
			repository.MonthlyRevenueRow{Month: month(2023, time.November), Revenue: dec("100")},
			repository.MonthlyRevenueRow{Month: month(2024, time.January), Revenue: dec("40")},
			repository.MonthlyRevenueRow{Month: month(2024, time.June), Revenue: dec("60")},
		),
	})

	points, err := uc.RevenueTrends(context.Background(), repository.TimeRange{}, "yearly")
	require.NoError(t, err)
	require.Len(t, points, 2)
	assert.Equal(t, "2023", points[0].Period)
	assert.True(t, points[0].Revenue.Equal(dec("100")))
	assert.Equal(t, "2024", points[1].Period)
	assert.True(t, points[1].Revenue.Equal(dec("100")))
}

// Un intervalo no reconocido se comporta exactamente igual que monthly
// (fallback documentado, no error). La comparación ignora mayúsculas.
func TestRevenueTrends_IntervaloNoReconocidoCaeAMensual(t *testing.T) {
	rows := monthlyRows(
		repository.MonthlyRevenueRow{Month: month(2024, time.February), Revenue: dec("19.00")},
		repository.MonthlyRevenueRow{Month: month(2024, time.July), Revenue: dec("8.50")},
	)

	ucWeekly := usecase.NewReportingUseCase(&stubRepo{monthlyRevenue: rows})
	ucMonthly := usecase.NewReportingUseCase(&stubRepo{monthlyRevenue: rows})

	weekly, err := ucWeekly.RevenueTrends(context.Background(), repository.TimeRange{}, "weekly")
	require.NoError(t, err)
	monthly, err := ucMonthly.RevenueTrends(context.Background(), repository.TimeRange{}, "monthly")
	require.NoError(t, err)

	assert.Equal(t, monthly, weekly, "weekly debe comportarse igual que monthly")

	upper, err := ucMonthly.RevenueTrends(context.Background(), repository.TimeRange{}, "QUARTERLY")
	require.NoError(t, err)
	assert.Equal(t, "2024-Q1", upper[0].Period, "el intervalo no distingue mayúsculas")
}

// Sin ventas: lista vacía, nunca nil ni error.
func TestRevenueTrends_SinVentas(t *testing.T) {
	uc := usecase.NewReportingUseCase(&stubRepo{})
	points, err := uc.RevenueTrends(context.Background(), repository.TimeRange{}, "monthly")
	require.NoError(t, err)
	assert.NotNil(t, points)
	assert.Empty(t, points)
}

// ──────────────────────────────────────────────────────────────────────────────
// Top productos: defaults y filtros
// ──────────────────────────────────────────────────────────────────────────────

func TestTopProductsOverall_DefaultN(t *testing.T) {
	var gotLimit int
	uc := usecase.NewReportingUseCase(&stubRepo{
		topProducts: func(_ repository.TimeRange, _ repository.ProductFilter, limit int) ([]repository.ProductQuantityRow, error) {
			gotLimit = limit
			return nil, nil
		},
	})

	_, err := uc.TopProductsOverall(context.Background(), repository.TimeRange{}, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, gotLimit, "n ausente debe usar el default 10")

	_, err = uc.TopProductsOverall(context.Background(), repository.TimeRange{}, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, gotLimit)
}

func TestTopProductsByCategory_CategoriaRequerida(t *testing.T) {
	uc := usecase.NewReportingUseCase(&stubRepo{})
	_, err := uc.TopProductsByCategory(context.Background(), repository.TimeRange{}, "", 5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTopProductsByRegion_FiltroLlegaAlStore(t *testing.T) {
	var gotFilter repository.ProductFilter
	uc := usecase.NewReportingUseCase(&stubRepo{
		topProducts: func(_ repository.TimeRange, f repository.ProductFilter, _ int) ([]repository.ProductQuantityRow, error) {
			gotFilter = f
			return nil, nil
		},
	})

	_, err := uc.TopProductsByRegion(context.Background(), repository.TimeRange{}, "Norte", 5)
	require.NoError(t, err)
	require.NotNil(t, gotFilter.Region)
	assert.Equal(t, "Norte", *gotFilter.Region)
	assert.Nil(t, gotFilter.Category)
}

// ──────────────────────────────────────────────────────────────────────────────
// Margen por producto
// ──────────────────────────────────────────────────────────────────────────────

// Caso de referencia: revenue 19.00 con costPercent default 0.6 →
// cost 11.40, profit 7.60, margin 0.4.
func TestProfitMarginByProduct_DefaultCostPercent(t *testing.T) {
	uc := usecase.NewReportingUseCase(&stubRepo{
		revenueByProduct: func(repository.TimeRange) ([]repository.ProductRevenueRow, error) {
			return []repository.ProductRevenueRow{
				{ProductID: "p1", ProductName: "P1", Revenue: dec("19.00")},
			}, nil
		},
	})

	rows, err := uc.ProfitMarginByProduct(context.Background(), repository.TimeRange{}, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.True(t, rows[0].Revenue.Equal(dec("19.00")))
	assert.True(t, rows[0].Cost.Equal(dec("11.40")), "cost fue %s", rows[0].Cost)
	assert.True(t, rows[0].Profit.Equal(dec("7.60")), "profit fue %s", rows[0].Profit)
	assert.True(t, rows[0].Margin.Equal(dec("0.4")), "margin fue %s", rows[0].Margin)
}

// Margin es 0 cuando revenue es 0, sin importar costPercent: nunca divide
// por cero ni devuelve error.
func TestProfitMarginByProduct_RevenueCeroMargenCero(t *testing.T) {
	uc := usecase.NewReportingUseCase(&stubRepo{
		revenueByProduct: func(repository.TimeRange) ([]repository.ProductRevenueRow, error) {
			return []repository.ProductRevenueRow{
				{ProductID: "p1", ProductName: "P1", Revenue: decimal.Zero},
			}, nil
		},
	})

	pct := dec("0.9")
	rows, err := uc.ProfitMarginByProduct(context.Background(), repository.TimeRange{}, &pct)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Margin.IsZero())
	assert.True(t, rows[0].Cost.IsZero())
	assert.True(t, rows[0].Profit.IsZero())
}

func TestProfitMarginByProduct_CostPercentExplicito(t *testing.T) {
	uc := usecase.NewReportingUseCase(&stubRepo{
		revenueByProduct: func(repository.TimeRange) ([]repository.ProductRevenueRow, error) {
			return []repository.ProductRevenueRow{
				{ProductID: "p1", ProductName: "P1", Revenue: dec("100.00")},
			}, nil
		},
	})

	pct := dec("0.25")
	rows, err := uc.ProfitMarginByProduct(context.Background(), repository.TimeRange{}, &pct)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Cost.Equal(dec("25.00")))
	assert.True(t, rows[0].Profit.Equal(dec("75.00")))
	assert.True(t, rows[0].Margin.Equal(dec("0.75")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Totales y promedios
// ──────────────────────────────────────────────────────────────────────────────

// Rango sin órdenes: promedio 0, nunca error.
func TestAverageOrderValue_SinOrdenes(t *testing.T) {
	uc := usecase.NewReportingUseCase(&stubRepo{})
	result, err := uc.AverageOrderValue(context.Background(), repository.TimeRange{})
	require.NoError(t, err)
	assert.True(t, result.AverageOrderValue.IsZero())
}

func TestTotalRevenue_RedondeaADosDecimales(t *testing.T) {
	uc := usecase.NewReportingUseCase(&stubRepo{
		totalRevenue: func(repository.TimeRange) (decimal.Decimal, error) {
			return dec("10.005"), nil
		},
	})
	result, err := uc.TotalRevenue(context.Background(), repository.TimeRange{})
	require.NoError(t, err)
	assert.True(t, result.Total.Equal(dec("10.01")), "total fue %s", result.Total)
}

// Resultados vacíos son listas vacías, nunca nil (el transporte serializa []).
func TestRevenueByProduct_VacioNoEsNil(t *testing.T) {
	uc := usecase.NewReportingUseCase(&stubRepo{})
	rows, err := uc.RevenueByProduct(context.Background(), repository.TimeRange{})
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

// Un fallo del store se propaga envuelto, sin reintentos.
func TestTotalRevenue_ErrorDelStoreSePropaga(t *testing.T) {
	storeErr := errors.New("conexión rechazada")
	uc := usecase.NewReportingUseCase(&stubRepo{
		totalRevenue: func(repository.TimeRange) (decimal.Decimal, error) {
			return decimal.Zero, storeErr
		},
	})
	_, err := uc.TotalRevenue(context.Background(), repository.TimeRange{})
	assert.ErrorIs(t, err, storeErr)
}
