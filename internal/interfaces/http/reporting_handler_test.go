package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/sales-analytics-api/internal/application/usecase"
	"github.com/tu-usuario/sales-analytics-api/internal/domain/repository"
	apphttp "github.com/tu-usuario/sales-analytics-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// fakeRepo implementa repository.ReportingRepository con datos fijos. err,
// si está definido, hace fallar todas las consultas (store caído).
type fakeRepo struct {
	err      error
	revenue  decimal.Decimal
	products []repository.ProductRevenueRow
	top      []repository.ProductQuantityRow
	months   []repository.MonthlyRevenueRow

	lastRange  repository.TimeRange
	lastFilter repository.ProductFilter
	lastLimit  int
}

func (f *fakeRepo) TotalRevenue(_ context.Context, tr repository.TimeRange) (decimal.Decimal, error) {
	f.lastRange = tr
	return f.revenue, f.err
}

func (f *fakeRepo) RevenueByProduct(_ context.Context, tr repository.TimeRange) ([]repository.ProductRevenueRow, error) {
	f.lastRange = tr
	return f.products, f.err
}

func (f *fakeRepo) RevenueByCategory(context.Context, repository.TimeRange) ([]repository.GroupRevenueRow, error) {
	return nil, f.err
}

func (f *fakeRepo) RevenueByRegion(context.Context, repository.TimeRange) ([]repository.GroupRevenueRow, error) {
	return nil, f.err
}

func (f *fakeRepo) MonthlyRevenue(_ context.Context, tr repository.TimeRange) ([]repository.MonthlyRevenueRow, error) {
	f.lastRange = tr
	return f.months, f.err
}

func (f *fakeRepo) TopProducts(_ context.Context, tr repository.TimeRange, filter repository.ProductFilter, limit int) ([]repository.ProductQuantityRow, error) {
	f.lastRange = tr
	f.lastFilter = filter
	f.lastLimit = limit
	return f.top, f.err
}

func (f *fakeRepo) CountDistinctCustomers(context.Context, repository.TimeRange) (int64, error) {
	return 0, f.err
}

func (f *fakeRepo) CountOrders(context.Context, repository.TimeRange) (int64, error) {
	return 0, f.err
}

func (f *fakeRepo) AverageOrderValue(context.Context, repository.TimeRange) (decimal.Decimal, error) {
	return decimal.Zero, f.err
}

// buildTestApp construye una app Fiber con el router real sobre un fakeRepo.
func buildTestApp(repo repository.ReportingRepository) *fiber.App {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ReportingUC: usecase.NewReportingUseCase(repo),
		SummaryUC:   usecase.NewSummaryUseCase(repo),
	})
	return app
}

// doGet lanza una petición GET y devuelve status y body.
func doGet(t *testing.T, app *fiber.App, path string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

// ──────────────────────────────────────────────────────────────────────────────
// Respuestas felices
// ──────────────────────────────────────────────────────────────────────────────

func TestTotalRevenue_RespondeTotal(t *testing.T) {
	app := buildTestApp(&fakeRepo{revenue: dec("19.00")})
	status, body := doGet(t, app, "/api/analytics/revenue/total")

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"total":"19"`)
}

func TestRevenueByProduct_RespondeFilas(t *testing.T) {
	app := buildTestApp(&fakeRepo{products: []repository.ProductRevenueRow{
		{ProductID: "id-p1", ProductName: "P1", Revenue: dec("19.00")},
	}})
	status, body := doGet(t, app, "/api/analytics/revenue/by-product")

	assert.Equal(t, http.StatusOK, status)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "id-p1", rows[0]["productId"])
	assert.Equal(t, "P1", rows[0]["name"])
	assert.Equal(t, "19", rows[0]["revenue"])
}

// Ejemplo de punta a punta del reporte de márgenes: revenue 19.00 con el
// default costPercent=0.6 → cost 11.40, profit 7.60, margin 0.4.
func TestProfitMarginByProduct_EjemploReferencia(t *testing.T) {
	app := buildTestApp(&fakeRepo{products: []repository.ProductRevenueRow{
		{ProductID: "id-p1", ProductName: "P1", Revenue: dec("19.00")},
	}})
	status, body := doGet(t, app, "/api/analytics/profit-margin/by-product")

	assert.Equal(t, http.StatusOK, status)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "19", rows[0]["revenue"])
	assert.Equal(t, "11.4", rows[0]["cost"])
	assert.Equal(t, "7.6", rows[0]["profit"])
	assert.Equal(t, "0.4", rows[0]["margin"])
}

func TestRevenueTrends_Mensual(t *testing.T) {
	app := buildTestApp(&fakeRepo{months: []repository.MonthlyRevenueRow{
		{Month: time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), Revenue: dec("19.00")},
	}})
	status, body := doGet(t, app, "/api/analytics/revenue/trends?interval=monthly")

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `"period":"2024-02"`)
}

// Listas vacías serializan como [] (nunca null).
func TestTopProductsOverall_VacioSerializaComoLista(t *testing.T) {
	app := buildTestApp(&fakeRepo{})
	status, body := doGet(t, app, "/api/analytics/top-products/overall")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "[]", body)
}

// ──────────────────────────────────────────────────────────────────────────────
// Coerción de parámetros
// ──────────────────────────────────────────────────────────────────────────────

// start/end aceptan RFC3339 y fecha simple; el rango llega tipado al core.
func TestParametrosDeFecha_FormatosAceptados(t *testing.T) {
	repo := &fakeRepo{}
	app := buildTestApp(repo)

	status, _ := doGet(t, app, "/api/analytics/revenue/total?start=2024-01-01&end=2024-12-31T23:59:59Z")
	assert.Equal(t, http.StatusOK, status)
	require.NotNil(t, repo.lastRange.Start)
	require.NotNil(t, repo.lastRange.End)
	assert.Equal(t, 2024, repo.lastRange.Start.Year())
	assert.Equal(t, time.December, repo.lastRange.End.Month())
}

func TestParametrosDeFecha_InvalidoRetorna400(t *testing.T) {
	app := buildTestApp(&fakeRepo{})
	status, body := doGet(t, app, "/api/analytics/revenue/total?start=no-es-fecha")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "INVALID_PARAMS")
}

func TestTopProducts_NInvalidoRetorna400(t *testing.T) {
	app := buildTestApp(&fakeRepo{})
	status, body := doGet(t, app, "/api/analytics/top-products/overall?n=muchos")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "INVALID_PARAMS")
}

func TestTopProductsByCategory_SinCategoriaRetorna400(t *testing.T) {
	app := buildTestApp(&fakeRepo{})
	status, body := doGet(t, app, "/api/analytics/top-products/by-category")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "BAD_REQUEST")
}

func TestTopProductsByCategory_FiltroYLimiteLleganAlStore(t *testing.T) {
	repo := &fakeRepo{}
	app := buildTestApp(repo)

	status, _ := doGet(t, app, "/api/analytics/top-products/by-category?category=Widgets&n=5")
	assert.Equal(t, http.StatusOK, status)
	require.NotNil(t, repo.lastFilter.Category)
	assert.Equal(t, "Widgets", *repo.lastFilter.Category)
	assert.Equal(t, 5, repo.lastLimit)
}

func TestProfitMargin_CostPercentInvalidoRetorna400(t *testing.T) {
	app := buildTestApp(&fakeRepo{})
	status, body := doGet(t, app, "/api/analytics/profit-margin/by-product?costPercent=casi-todo")

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body, "INVALID_PARAMS")
}

// ──────────────────────────────────────────────────────────────────────────────
// Fallos del store
// ──────────────────────────────────────────────────────────────────────────────

// Un store caído es un error de servidor; se propaga sin reintentos.
func TestStoreCaido_Retorna500(t *testing.T) {
	app := buildTestApp(&fakeRepo{err: errors.New("conexión rechazada")})
	status, body := doGet(t, app, "/api/analytics/revenue/total")

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Contains(t, body, "INTERNAL")
}
