package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/sales-analytics-api/internal/domain/repository"
)

var _ repository.ReportingRepository = (*ReportingRepo)(nil)

// totalPriceExpr derivación de TotalPrice por línea. Nunca se persiste; esta
// expresión es la única definición en SQL y debe coincidir con
// entity.OrderItem.TotalPrice.
const totalPriceExpr = `(oi.unit_price * oi.quantity * (1 - oi.discount) + oi.shipping_cost)`

// dateRangeCond filtro inclusivo por fecha de venta de la orden. Los extremos
// llegan como parámetros NULL cuando el rango está abierto por ese lado.
const dateRangeCond = `($1::timestamptz IS NULL OR o.date_of_sale >= $1)
	  AND ($2::timestamptz IS NULL OR o.date_of_sale <= $2)`

// ReportingRepo consultas de agregación de solo lectura sobre el dataset de
// ventas. Cada reporte es una sola consulta: filtrar → agrupar → agregar en
// PostgreSQL, sin cargar tablas sin filtrar en memoria.
type ReportingRepo struct {
	pool *pgxpool.Pool
}

// NewReportingRepository construye el adaptador de reportes.
func NewReportingRepository(pool *pgxpool.Pool) *ReportingRepo {
	return &ReportingRepo{pool: pool}
}

// TotalRevenue suma TotalPrice de todas las líneas del rango. COALESCE
// devuelve cero cuando no hay ventas en el período.
func (r *ReportingRepo) TotalRevenue(ctx context.Context, tr repository.TimeRange) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(` + totalPriceExpr + `), 0) AS total
	FROM order_items oi
	JOIN orders o ON o.id = oi.order_id
	WHERE ` + dateRangeCond

	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, tr.Start, tr.End).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("reporting.TotalRevenue: %w", err)
	}
	return total, nil
}

// RevenueByProduct agrupa ingresos por (producto, nombre), descendente por
// ingreso.
func (r *ReportingRepo) RevenueByProduct(ctx context.Context, tr repository.TimeRange) ([]repository.ProductRevenueRow, error) {
	const query = `
	SELECT
	    p.id,
	    p.name,
	    SUM(` + totalPriceExpr + `) AS revenue
	FROM order_items oi
	JOIN orders   o ON o.id = oi.order_id
	JOIN products p ON p.id = oi.product_id
	WHERE ` + dateRangeCond + `
	GROUP BY p.id, p.name
	ORDER BY revenue DESC`

	rows, err := r.pool.Query(ctx, query, tr.Start, tr.End)
	if err != nil {
		return nil, fmt.Errorf("reporting.RevenueByProduct: %w", err)
	}
	defer rows.Close()

	var results []repository.ProductRevenueRow
	for rows.Next() {
		var row repository.ProductRevenueRow
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.Revenue); err != nil {
			return nil, fmt.Errorf("reporting.RevenueByProduct scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// RevenueByCategory agrupa ingresos por categoría del producto, descendente
// por ingreso. Las categorías NULL se consolidan bajo "unspecified".
func (r *ReportingRepo) RevenueByCategory(ctx context.Context, tr repository.TimeRange) ([]repository.GroupRevenueRow, error) {
	const query = `
	SELECT
	    COALESCE(p.category, 'unspecified') AS category,
	    SUM(` + totalPriceExpr + `)         AS revenue
	FROM order_items oi
	JOIN orders   o ON o.id = oi.order_id
	JOIN products p ON p.id = oi.product_id
	WHERE ` + dateRangeCond + `
	GROUP BY COALESCE(p.category, 'unspecified')
	ORDER BY revenue DESC`

	return r.groupRevenue(ctx, "reporting.RevenueByCategory", query, tr)
}

// RevenueByRegion agrupa ingresos por región de la orden, descendente por
// ingreso. Las regiones NULL se consolidan bajo "unspecified".
func (r *ReportingRepo) RevenueByRegion(ctx context.Context, tr repository.TimeRange) ([]repository.GroupRevenueRow, error) {
	const query = `
	SELECT
	    COALESCE(o.region, 'unspecified') AS region,
	    SUM(` + totalPriceExpr + `)       AS revenue
	FROM order_items oi
	JOIN orders o ON o.id = oi.order_id
	WHERE ` + dateRangeCond + `
	GROUP BY COALESCE(o.region, 'unspecified')
	ORDER BY revenue DESC`

	return r.groupRevenue(ctx, "reporting.RevenueByRegion", query, tr)
}

func (r *ReportingRepo) groupRevenue(ctx context.Context, op, query string, tr repository.TimeRange) ([]repository.GroupRevenueRow, error) {
	rows, err := r.pool.Query(ctx, query, tr.Start, tr.End)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var results []repository.GroupRevenueRow
	for rows.Next() {
		var row repository.GroupRevenueRow
		if err := rows.Scan(&row.Key, &row.Revenue); err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// MonthlyRevenue agrupa ingresos por mes calendario de date_of_sale,
// ascendente. El use case deriva los intervalos quarterly y yearly de estos
// buckets.
func (r *ReportingRepo) MonthlyRevenue(ctx context.Context, tr repository.TimeRange) ([]repository.MonthlyRevenueRow, error) {
	const query = `
	SELECT
	    date_trunc('month', o.date_of_sale) AS month,
	    SUM(` + totalPriceExpr + `)         AS revenue
	FROM order_items oi
	JOIN orders o ON o.id = oi.order_id
	WHERE ` + dateRangeCond + `
	GROUP BY date_trunc('month', o.date_of_sale)
	ORDER BY month`

	rows, err := r.pool.Query(ctx, query, tr.Start, tr.End)
	if err != nil {
		return nil, fmt.Errorf("reporting.MonthlyRevenue: %w", err)
	}
	defer rows.Close()

	var results []repository.MonthlyRevenueRow
	for rows.Next() {
		var row repository.MonthlyRevenueRow
		if err := rows.Scan(&row.Month, &row.Revenue); err != nil {
			return nil, fmt.Errorf("reporting.MonthlyRevenue scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// TopProducts devuelve los `limit` productos con más unidades vendidas en el
// rango, con pre-filtro opcional por categoría del producto o región de la
// orden (igualdad exacta; NULL nunca coincide). Empates desempatados por id
// de producto para un orden estable.
func (r *ReportingRepo) TopProducts(ctx context.Context, tr repository.TimeRange, f repository.ProductFilter, limit int) ([]repository.ProductQuantityRow, error) {
	const query = `
	SELECT
	    p.id,
	    p.name,
	    SUM(oi.quantity) AS quantity
	FROM order_items oi
	JOIN orders   o ON o.id = oi.order_id
	JOIN products p ON p.id = oi.product_id
	WHERE ` + dateRangeCond + `
	  AND ($3::text IS NULL OR p.category = $3)
	  AND ($4::text IS NULL OR o.region   = $4)
	GROUP BY p.id, p.name
	ORDER BY quantity DESC, p.id
	LIMIT $5`

	rows, err := r.pool.Query(ctx, query, tr.Start, tr.End, f.Category, f.Region, limit)
	if err != nil {
		return nil, fmt.Errorf("reporting.TopProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.ProductQuantityRow
	for rows.Next() {
		var row repository.ProductQuantityRow
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.Quantity); err != nil {
			return nil, fmt.Errorf("reporting.TopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// CountDistinctCustomers cuenta clientes distintos referenciados por las
// órdenes del rango.
func (r *ReportingRepo) CountDistinctCustomers(ctx context.Context, tr repository.TimeRange) (int64, error) {
	const query = `
	SELECT COUNT(DISTINCT o.customer_id)
	FROM orders o
	WHERE ` + dateRangeCond

	var count int64
	if err := r.pool.QueryRow(ctx, query, tr.Start, tr.End).Scan(&count); err != nil {
		return 0, fmt.Errorf("reporting.CountDistinctCustomers: %w", err)
	}
	return count, nil
}

// CountOrders cuenta las órdenes del rango.
func (r *ReportingRepo) CountOrders(ctx context.Context, tr repository.TimeRange) (int64, error) {
	const query = `
	SELECT COUNT(*)
	FROM orders o
	WHERE ` + dateRangeCond

	var count int64
	if err := r.pool.QueryRow(ctx, query, tr.Start, tr.End).Scan(&count); err != nil {
		return 0, fmt.Errorf("reporting.CountOrders: %w", err)
	}
	return count, nil
}

// AverageOrderValue promedia el total por orden en un solo agregado agrupado:
// subconsulta con el total de cada orden (LEFT JOIN: una orden sin líneas
// aporta 0) y AVG por encima. COALESCE externo cubre el rango sin órdenes.
func (r *ReportingRepo) AverageOrderValue(ctx context.Context, tr repository.TimeRange) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(AVG(t.order_total), 0)
	FROM (
	    SELECT o.id, COALESCE(SUM(` + totalPriceExpr + `), 0) AS order_total
	    FROM orders o
	    LEFT JOIN order_items oi ON oi.order_id = o.id
	    WHERE ` + dateRangeCond + `
	    GROUP BY o.id
	) t`

	var avg decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, tr.Start, tr.End).Scan(&avg); err != nil {
		return decimal.Zero, fmt.Errorf("reporting.AverageOrderValue: %w", err)
	}
	return avg, nil
}
