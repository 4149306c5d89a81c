package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/sales-analytics-api/internal/domain"
	"github.com/tu-usuario/sales-analytics-api/internal/domain/entity"
	"github.com/tu-usuario/sales-analytics-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	const query = `
		INSERT INTO customers (id, customer_code, name, email, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.CustomerCode, c.Name, c.Email, c.Address, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByCode obtiene un cliente por su código externo. nil si no existe.
func (r *CustomerRepo) GetByCode(ctx context.Context, code string) (*entity.Customer, error) {
	const query = `
		SELECT id, customer_code, name, email, address, created_at, updated_at
		FROM customers WHERE customer_code = $1`
	var c entity.Customer
	err := r.q.QueryRow(ctx, query, code).Scan(
		&c.ID, &c.CustomerCode, &c.Name, &c.Email, &c.Address, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer by code: %w", err)
	}
	return &c, nil
}

// Delete elimina un cliente por ID. El store elimina en cascada sus órdenes
// y las líneas de éstas.
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}
