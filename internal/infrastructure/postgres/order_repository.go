package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/sales-analytics-api/internal/domain"
	"github.com/tu-usuario/sales-analytics-api/internal/domain/entity"
	"github.com/tu-usuario/sales-analytics-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la cabecera de una orden.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	const query = `
		INSERT INTO orders (id, order_code, date_of_sale, region, payment_method, customer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.OrderCode, o.DateOfSale, o.Region, o.PaymentMethod, o.CustomerID,
		o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de orden. Los montos van a columnas
// NUMERIC(18,2); TotalPrice no se guarda nunca (se deriva al leer).
func (r *OrderRepo) CreateItem(ctx context.Context, item *entity.OrderItem) error {
	const query = `
		INSERT INTO order_items (id, order_id, product_id, quantity, unit_price, discount, shipping_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.OrderID, item.ProductID, item.Quantity,
		item.UnitPrice, item.Discount, item.ShippingCost,
	)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}
