package entity

import "time"

// Order representa la cabecera de una venta. DateOfSale es la única marca de
// tiempo usada para filtrar por rango y para los buckets de tendencias.
type Order struct {
	ID            string
	OrderCode     string // código externo, único
	DateOfSale    time.Time
	Region        *string // nil = sin región (grupo "unspecified" en los reportes)
	PaymentMethod *string
	CustomerID    string // FK obligatoria; borrar el cliente elimina sus órdenes
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
