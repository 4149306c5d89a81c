package entity

import "github.com/shopspring/decimal"

// OrderItem representa una línea de una orden de venta. Los montos son
// decimales con 2 dígitos de precisión; Discount es una fracción (0.10 = 10%).
type OrderItem struct {
	ID           string
	OrderID      string // FK obligatoria; borrar la orden elimina sus líneas
	ProductID    string // FK obligatoria; el producto no puede borrarse mientras esté referenciado
	Quantity     int64
	UnitPrice    decimal.Decimal
	Discount     decimal.Decimal
	ShippingCost decimal.Decimal
}

// TotalPrice calcula el valor derivado de la línea:
//
//	unitPrice * quantity * (1 - discount) + shippingCost
//
// Nunca se persiste; toda suma de ingresos, promedio y margen usa exactamente
// esta misma derivación (en Go o como expresión SQL equivalente).
func (i OrderItem) TotalPrice() decimal.Decimal {
	qty := decimal.NewFromInt(i.Quantity)
	factor := decimal.NewFromInt(1).Sub(i.Discount)
	return i.UnitPrice.Mul(qty).Mul(factor).Add(i.ShippingCost)
}
