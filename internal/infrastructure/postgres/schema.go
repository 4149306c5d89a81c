package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaStatements DDL del dataset de ventas. Idempotente: se ejecuta en cada
// arranque (el esquema lo posee el proceso de ingesta; aquí solo se asegura).
//
// Reglas referenciales:
//   - orders.customer_id    → customers  ON DELETE CASCADE
//   - order_items.order_id  → orders     ON DELETE CASCADE
//   - order_items.product_id→ products   ON DELETE RESTRICT
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id            UUID PRIMARY KEY,
		customer_code VARCHAR(50)  NOT NULL UNIQUE,
		name          VARCHAR(255),
		email         VARCHAR(255),
		address       VARCHAR(500),
		created_at    TIMESTAMPTZ  NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ  NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id           UUID PRIMARY KEY,
		product_code VARCHAR(50)  NOT NULL UNIQUE,
		name         VARCHAR(255) NOT NULL,
		category     VARCHAR(100),
		created_at   TIMESTAMPTZ  NOT NULL DEFAULT now(),
		updated_at   TIMESTAMPTZ  NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id             UUID PRIMARY KEY,
		order_code     VARCHAR(50)  NOT NULL UNIQUE,
		date_of_sale   TIMESTAMPTZ  NOT NULL,
		region         VARCHAR(100),
		payment_method VARCHAR(100),
		customer_id    UUID         NOT NULL REFERENCES customers(id) ON DELETE CASCADE,
		created_at     TIMESTAMPTZ  NOT NULL DEFAULT now(),
		updated_at     TIMESTAMPTZ  NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id            UUID PRIMARY KEY,
		order_id      UUID          NOT NULL REFERENCES orders(id)   ON DELETE CASCADE,
		product_id    UUID          NOT NULL REFERENCES products(id) ON DELETE RESTRICT,
		quantity      INTEGER       NOT NULL CHECK (quantity >= 0),
		unit_price    NUMERIC(18,2) NOT NULL CHECK (unit_price >= 0),
		discount      NUMERIC(18,2) NOT NULL DEFAULT 0 CHECK (discount >= 0),
		shipping_cost NUMERIC(18,2) NOT NULL DEFAULT 0 CHECK (shipping_cost >= 0)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_date_of_sale ON orders (date_of_sale)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders (customer_id)`,
	`CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items (order_id)`,
	`CREATE INDEX IF NOT EXISTS idx_order_items_product ON order_items (product_id)`,
}

// EnsureSchema crea las tablas e índices del dataset si no existen.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
