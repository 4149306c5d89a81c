package entity

import "time"

// Customer representa un cliente del dataset de ventas. Los reportes solo lo
// consultan a través de sus órdenes (conteo de clientes distintos).
type Customer struct {
	ID           string
	CustomerCode string // código externo, único
	Name         *string
	Email        *string
	Address      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
