package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TimeRange filtro [start, end] inclusivo sobre orders.date_of_sale.
// Un extremo nil significa sin cota por ese lado. Las líneas de orden no
// tienen marca de tiempo propia; el rango aplica siempre a la orden.
type TimeRange struct {
	Start *time.Time
	End   *time.Time
}

// ProductFilter pre-filtro para los rankings de productos. A lo sumo uno de
// los campos viene definido; la igualdad es exacta y sensible a mayúsculas.
type ProductFilter struct {
	Category *string // products.category
	Region   *string // orders.region
}

// ProductRevenueRow ingreso agregado por producto.
type ProductRevenueRow struct {
	ProductID   string
	ProductName string
	Revenue     decimal.Decimal // SUM(TotalPrice) de las líneas del grupo
}

// GroupRevenueRow ingreso agregado por una dimensión de texto (categoría o
// región). Los valores NULL se consolidan bajo la clave "unspecified".
type GroupRevenueRow struct {
	Key     string
	Revenue decimal.Decimal
}

// MonthlyRevenueRow ingreso agregado por mes calendario (Month es el primer
// día del mes). El use case consolida meses en trimestres o años según el
// intervalo pedido.
type MonthlyRevenueRow struct {
	Month   time.Time
	Revenue decimal.Decimal
}

// ProductQuantityRow unidades vendidas agregadas por producto.
type ProductQuantityRow struct {
	ProductID   string
	ProductName string
	Quantity    int64 // SUM(quantity)
}

// ReportingRepository define las consultas de agregación del servicio de
// reportes. Las implementaciones son read-only: cada método es una sola
// consulta que filtra, agrupa y agrega en el store (nunca carga tablas sin
// filtrar en memoria).
type ReportingRepository interface {
	// TotalRevenue suma TotalPrice de todas las líneas cuyas órdenes caen en
	// el rango. Devuelve cero si no hay filas.
	TotalRevenue(ctx context.Context, tr TimeRange) (decimal.Decimal, error)

	// RevenueByProduct agrupa ingresos por (producto, nombre), orden
	// descendente por ingreso. También alimenta el reporte de márgenes.
	RevenueByProduct(ctx context.Context, tr TimeRange) ([]ProductRevenueRow, error)

	// RevenueByCategory agrupa ingresos por categoría del producto,
	// descendente por ingreso. NULL → "unspecified".
	RevenueByCategory(ctx context.Context, tr TimeRange) ([]GroupRevenueRow, error)

	// RevenueByRegion agrupa ingresos por región de la orden, descendente por
	// ingreso. NULL → "unspecified".
	RevenueByRegion(ctx context.Context, tr TimeRange) ([]GroupRevenueRow, error)

	// MonthlyRevenue agrupa ingresos por mes de date_of_sale, ascendente.
	// Granularidad fija mensual: los intervalos yearly/quarterly se derivan
	// de estos buckets sin volver al store.
	MonthlyRevenue(ctx context.Context, tr TimeRange) ([]MonthlyRevenueRow, error)

	// TopProducts devuelve los `limit` productos con más unidades vendidas,
	// descendente por cantidad (empates desempatados por id de producto para
	// que el orden sea estable). El filtro restringe por categoría o región
	// antes de agregar.
	TopProducts(ctx context.Context, tr TimeRange, f ProductFilter, limit int) ([]ProductQuantityRow, error)

	// CountDistinctCustomers cuenta clientes distintos referenciados por las
	// órdenes del rango.
	CountDistinctCustomers(ctx context.Context, tr TimeRange) (int64, error)

	// CountOrders cuenta las órdenes del rango.
	CountOrders(ctx context.Context, tr TimeRange) (int64, error)

	// AverageOrderValue promedia el total por orden (órdenes sin líneas
	// cuentan como 0). Un solo agregado agrupado; cero si no hay órdenes.
	AverageOrderValue(ctx context.Context, tr TimeRange) (decimal.Decimal, error)
}
