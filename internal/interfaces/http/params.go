package http

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/sales-analytics-api/internal/domain/repository"
)

// Coerción de query params. El transporte convierte los strings a tipos; los
// casos de uso reciben entradas ya tipadas. Un valor no parseable corta aquí
// con error de cliente (400), nunca llega al core.

// timeLayouts formatos aceptados para start/end: RFC3339 o fecha simple.
var timeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// parseTimeRange lee start/end; vacío = rango abierto por ese lado.
func parseTimeRange(c *fiber.Ctx) (repository.TimeRange, error) {
	var tr repository.TimeRange
	start, err := parseTimeParam(c, "start")
	if err != nil {
		return tr, err
	}
	end, err := parseTimeParam(c, "end")
	if err != nil {
		return tr, err
	}
	tr.Start = start
	tr.End = end
	return tr, nil
}

func parseTimeParam(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("parámetro %q no es una fecha ISO-8601: %q", key, raw)
}

// parseIntParam lee un entero opcional; 0 si está ausente.
func parseIntParam(c *fiber.Ctx, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parámetro %q no es un entero: %q", key, raw)
	}
	return n, nil
}

// parseDecimalParam lee un decimal opcional; nil si está ausente.
func parseDecimalParam(c *fiber.Ctx, key string) (*decimal.Decimal, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, fmt.Errorf("parámetro %q no es un decimal: %q", key, raw)
	}
	return &d, nil
}
