// seed carga un dataset de ventas de ejemplo para probar los reportes en
// local: clientes, productos (con y sin categoría), órdenes repartidas en
// varios meses y regiones, y líneas con descuento y costo de envío.
//
// Uso: go run ./cmd/seed
// Es re-ejecutable: primero elimina el dataset de ejemplo anterior (el
// borrado de clientes cae en cascada a órdenes y líneas) y luego inserta
// todo dentro de una sola transacción.
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/sales-analytics-api/internal/domain"
	"github.com/tu-usuario/sales-analytics-api/internal/domain/entity"
	"github.com/tu-usuario/sales-analytics-api/internal/domain/repository"
	"github.com/tu-usuario/sales-analytics-api/internal/infrastructure/postgres"
	"github.com/tu-usuario/sales-analytics-api/pkg/config"
	"github.com/tu-usuario/sales-analytics-api/pkg/logger"
)

type itemSpec struct {
	productCode  string
	quantity     int64
	unitPrice    string
	discount     string
	shippingCost string
}

type orderSpec struct {
	code          string
	customerCode  string
	dateOfSale    time.Time
	region        *string
	paymentMethod *string
	items         []itemSpec
}

func strPtr(s string) *string { return &s }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

var sampleCustomers = []entity.Customer{
	{CustomerCode: "CUST-001", Name: strPtr("Acme Retail"), Email: strPtr("compras@acme.test")},
	{CustomerCode: "CUST-002", Name: strPtr("Norte Mayorista"), Email: strPtr("ventas@norte.test")},
	{CustomerCode: "CUST-003", Name: strPtr("Tienda Sur")},
}

var sampleProducts = []entity.Product{
	{ProductCode: "P1", Name: "P1", Category: strPtr("Widgets")},
	{ProductCode: "P2", Name: "Gadget Pro", Category: strPtr("Gadgets")},
	{ProductCode: "P3", Name: "Widget Mini", Category: strPtr("Widgets")},
	{ProductCode: "P4", Name: "Misceláneo", Category: nil}, // sin categoría → "unspecified"
}

var sampleOrders = []orderSpec{
	{
		code: "ORD-1001", customerCode: "CUST-001",
		dateOfSale: date(2024, time.February, 10),
		region:     strPtr("Norte"), paymentMethod: strPtr("tarjeta"),
		items: []itemSpec{
			{"P1", 2, "10.00", "0.10", "1.00"}, // TotalPrice = 19.00
			{"P2", 1, "45.50", "0", "3.00"},
		},
	},
	{
		code: "ORD-1002", customerCode: "CUST-002",
		dateOfSale: date(2024, time.April, 3),
		region:     strPtr("Sur"), paymentMethod: strPtr("transferencia"),
		items: []itemSpec{
			{"P3", 10, "4.25", "0.05", "2.50"},
			{"P4", 1, "99.99", "0", "0"},
		},
	},
	{
		code: "ORD-1003", customerCode: "CUST-001",
		dateOfSale: date(2024, time.April, 28),
		region:     nil, paymentMethod: strPtr("efectivo"), // sin región → "unspecified"
		items: []itemSpec{
			{"P1", 5, "10.00", "0", "0"},
		},
	},
	{
		code: "ORD-1004", customerCode: "CUST-003",
		dateOfSale: date(2024, time.December, 15),
		region:     strPtr("Norte"), paymentMethod: nil,
		items: []itemSpec{
			{"P2", 3, "45.50", "0.15", "5.00"},
			{"P3", 2, "4.25", "0", "1.25"},
		},
	},
	{
		// Orden sin líneas: aporta 0 al valor promedio de orden.
		code: "ORD-1005", customerCode: "CUST-002",
		dateOfSale: date(2025, time.January, 7),
		region:     strPtr("Sur"), paymentMethod: strPtr("tarjeta"),
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("asegurar esquema")
	}

	customerRepo := postgres.NewCustomerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)

	// Reset del dataset de ejemplo. Borrar el cliente elimina en cascada sus
	// órdenes y líneas; después los productos quedan sin referencias y pueden
	// borrarse (si otro dato ajeno al seed los referencia, el store lo
	// rechaza con RESTRICT y el producto se conserva).
	for _, c := range sampleCustomers {
		existing, err := customerRepo.GetByCode(ctx, c.CustomerCode)
		if err != nil {
			log.Fatal().Err(err).Str("customer", c.CustomerCode).Msg("buscar cliente")
		}
		if existing != nil {
			if err := customerRepo.Delete(ctx, existing.ID); err != nil {
				log.Fatal().Err(err).Str("customer", c.CustomerCode).Msg("borrar cliente")
			}
		}
	}
	for _, p := range sampleProducts {
		existing, err := productRepo.GetByCode(ctx, p.ProductCode)
		if err != nil {
			log.Fatal().Err(err).Str("product", p.ProductCode).Msg("buscar producto")
		}
		if existing == nil {
			continue
		}
		if err := productRepo.Delete(ctx, existing.ID); err != nil {
			if errors.Is(err, domain.ErrProductInUse) {
				log.Warn().Str("product", p.ProductCode).Msg("producto referenciado por otras órdenes, se conserva")
				continue
			}
			log.Fatal().Err(err).Str("product", p.ProductCode).Msg("borrar producto")
		}
	}

	txRunner := postgres.NewTxRunner(pool)
	err = txRunner.Run(ctx, func(
		customers repository.CustomerRepository,
		products repository.ProductRepository,
		orders repository.OrderRepository,
	) error {
		now := time.Now().UTC()

		customerIDs := make(map[string]string, len(sampleCustomers))
		for _, c := range sampleCustomers {
			c.ID = uuid.NewString()
			c.CreatedAt, c.UpdatedAt = now, now
			if err := customers.Create(ctx, &c); err != nil {
				return err
			}
			customerIDs[c.CustomerCode] = c.ID
		}

		productIDs := make(map[string]string, len(sampleProducts))
		for _, p := range sampleProducts {
			// El reset pudo haber conservado el producto si seguía referenciado.
			existing, err := products.GetByCode(ctx, p.ProductCode)
			if err != nil {
				return err
			}
			if existing != nil {
				productIDs[p.ProductCode] = existing.ID
				continue
			}
			p.ID = uuid.NewString()
			p.CreatedAt, p.UpdatedAt = now, now
			if err := products.Create(ctx, &p); err != nil {
				return err
			}
			productIDs[p.ProductCode] = p.ID
		}

		for _, od := range sampleOrders {
			order := entity.Order{
				ID:            uuid.NewString(),
				OrderCode:     od.code,
				DateOfSale:    od.dateOfSale,
				Region:        od.region,
				PaymentMethod: od.paymentMethod,
				CustomerID:    customerIDs[od.customerCode],
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := orders.Create(ctx, &order); err != nil {
				return err
			}
			for _, it := range od.items {
				item := entity.OrderItem{
					ID:           uuid.NewString(),
					OrderID:      order.ID,
					ProductID:    productIDs[it.productCode],
					Quantity:     it.quantity,
					UnitPrice:    decimal.RequireFromString(it.unitPrice),
					Discount:     decimal.RequireFromString(it.discount),
					ShippingCost: decimal.RequireFromString(it.shippingCost),
				}
				if err := orders.CreateItem(ctx, &item); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("cargar dataset de ejemplo")
		os.Exit(1)
	}

	log.Info().
		Int("customers", len(sampleCustomers)).
		Int("products", len(sampleProducts)).
		Int("orders", len(sampleOrders)).
		Msg("dataset de ejemplo cargado")
}
