package repository

import (
	"context"

	"github.com/tu-usuario/sales-analytics-api/internal/domain/entity"
)

// Puertos de escritura del dataset de ventas. Los usa el cargador de datos
// (cmd/seed); el servicio de reportes nunca muta el dataset.

// ProductRepository persistencia de productos.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	// Delete falla con domain.ErrProductInUse si alguna línea de orden aún
	// referencia al producto (regla RESTRICT del store).
	Delete(ctx context.Context, id string) error
}

// CustomerRepository persistencia de clientes.
type CustomerRepository interface {
	Create(ctx context.Context, c *entity.Customer) error
	GetByCode(ctx context.Context, code string) (*entity.Customer, error)
	// Delete elimina el cliente; el store elimina en cascada sus órdenes y
	// las líneas de éstas.
	Delete(ctx context.Context, id string) error
}

// OrderRepository persistencia de órdenes y sus líneas.
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	CreateItem(ctx context.Context, item *entity.OrderItem) error
}
