package dto

import "github.com/shopspring/decimal"

// TotalRevenueDTO respuesta de /revenue/total.
type TotalRevenueDTO struct {
	Total decimal.Decimal `json:"total"`
}

// ProductRevenueDTO fila de /revenue/by-product.
type ProductRevenueDTO struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// CategoryRevenueDTO fila de /revenue/by-category.
// Los productos sin categoría se consolidan bajo "unspecified".
type CategoryRevenueDTO struct {
	Category string          `json:"category"`
	Revenue  decimal.Decimal `json:"revenue"`
}

// RegionRevenueDTO fila de /revenue/by-region.
// Las órdenes sin región se consolidan bajo "unspecified".
type RegionRevenueDTO struct {
	Region  string          `json:"region"`
	Revenue decimal.Decimal `json:"revenue"`
}

// TrendPointDTO fila de /revenue/trends. Period según el intervalo:
// "2024" (yearly), "2024-Q2" (quarterly), "2024-03" (monthly).
type TrendPointDTO struct {
	Period  string          `json:"period"`
	Revenue decimal.Decimal `json:"revenue"`
}

// TopProductDTO fila de los rankings /top-products/*.
type TopProductDTO struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
}

// CountDTO respuesta de los conteos (/customers/count, /customers/orders/count).
type CountDTO struct {
	Count int64 `json:"count"`
}

// AverageOrderValueDTO respuesta de /customers/average-order-value.
type AverageOrderValueDTO struct {
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
}

// ProductMarginDTO fila de /profit-margin/by-product.
// cost = revenue × costPercent; profit = revenue − cost;
// margin = profit / revenue (0 si revenue es 0).
type ProductMarginDTO struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Revenue   decimal.Decimal `json:"revenue"`
	Cost      decimal.Decimal `json:"cost"`
	Profit    decimal.Decimal `json:"profit"`
	Margin    decimal.Decimal `json:"margin"`
}

// SummaryDTO respuesta de /summary: los agregados globales del período en
// una sola llamada (estilo dashboard).
type SummaryDTO struct {
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalOrders       int64           `json:"totalOrders"`
	TotalCustomers    int64           `json:"totalCustomers"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
}
