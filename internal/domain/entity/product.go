package entity

import "time"

// Product representa un artículo del catálogo de ventas. Lo carga el proceso
// de ingesta; este servicio lo trata como solo lectura.
type Product struct {
	ID          string
	ProductCode string // código externo, único
	Name        string
	Category    *string // nil = sin categoría (grupo "unspecified" en los reportes)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
